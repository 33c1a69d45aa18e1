package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	dbutil "github.com/router-for-me/guildrpc/internal/db"
	"github.com/router-for-me/guildrpc/internal/metrics"
	"github.com/router-for-me/guildrpc/internal/store"
	"gorm.io/gorm"
)

func serve(t *testing.T, m Method, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/call", m.Handle)
	req := httptest.NewRequest(http.MethodPost, "/call", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if errDecode := json.Unmarshal(w.Body.Bytes(), &body); errDecode != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), errDecode)
	}
	return body
}

func TestUnaryMapsPostgresFaultToInternal(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint \"guild_pkey\""}
	m := unary(Deps{Metrics: metrics.NewRPC(nil)}, GuildServiceName, "CreateGuild", func(context.Context, *Guild) (*Empty, error) {
		return nil, &store.Error{Op: "create", Entity: "guild", Err: pgErr}
	}, nil)

	w := serve(t, m, `{"guild_id":1}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	body := errorBody(t, w)
	if body["error"] != "Internal" || body["message"] != pgErr.Error() {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestUnaryNotFound(t *testing.T) {
	m := unary(Deps{}, LogsServiceName, "GetSettings", func(context.Context, *LogsSettingsRequest) (*LogsSettings, error) {
		return nil, fmt.Errorf("get: %w", store.ErrNotFound)
	}, nil)

	w := serve(t, m, `{"guild_id":1}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if body := errorBody(t, w); body["error"] != "NotFound" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestUnaryDecodeFailureSkipsCall(t *testing.T) {
	called := false
	m := unary(Deps{}, GuildServiceName, "DeleteGuild", func(context.Context, *Guild) (*Empty, error) {
		called = true
		return &Empty{}, nil
	}, nil)

	w := serve(t, m, `[1,2]`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if called {
		t.Fatalf("repository call must not run on decode failure")
	}
}

func TestClosedStoreSurfacesInternal(t *testing.T) {
	dsn := fmt.Sprintf("file:handlers_%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := dbutil.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}
	sqlDB, errDB := conn.DB()
	if errDB != nil {
		t.Fatalf("sql db: %v", errDB)
	}
	_ = sqlDB.Close()

	svc := NewModerationHandler(conn, Deps{}).Service()
	var getWarns Method
	for _, m := range svc.Methods {
		if m.Name == "GetWarns" {
			getWarns = m
		}
	}
	if getWarns.Handle == nil {
		t.Fatalf("GetWarns not registered")
	}

	w := serve(t, getWarns, `{"guild_id":1,"target_user_id":2}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}
	body := errorBody(t, w)
	if body["error"] != "Internal" || body["message"] == "" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestServicesExposeEveryMethod(t *testing.T) {
	conn, errOpen := gorm.Open(sqlite.Open("file:handlers_names?mode=memory&cache=shared"), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	want := map[string][]string{
		GuildServiceName:      {"CreateGuild", "DeleteGuild"},
		LogsServiceName:       {"CreateOrUpdateSettings", "GetSettings"},
		ModerationServiceName: {"CreateOrUpdateSettings", "GetSettings", "CreateWarn", "GetWarn", "GetWarns", "DeleteWarn"},
		TicketsServiceName:    {"CreateOrUpdateSettings", "GetSettings", "CreateTicket", "GetTicket", "GetTickets", "DeleteTicket"},
	}
	for _, svc := range []Service{
		NewGuildHandler(conn, Deps{}).Service(),
		NewLogsHandler(conn, Deps{}).Service(),
		NewModerationHandler(conn, Deps{}).Service(),
		NewTicketsHandler(conn, Deps{}).Service(),
	} {
		var got []string
		for _, m := range svc.Methods {
			got = append(got, m.Name)
		}
		if fmt.Sprint(got) != fmt.Sprint(want[svc.Name]) {
			t.Fatalf("%s: expected %v, got %v", svc.Name, want[svc.Name], got)
		}
	}
}
