// Package handlers implements the guild RPC services on top of the store
// repositories. Every method decodes one JSON message, performs exactly one
// repository call and encodes the result or a classified error.
package handlers

import (
	"context"
	"net/http"
	"reflect"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/router-for-me/guildrpc/internal/logging"
	"github.com/router-for-me/guildrpc/internal/metrics"
	"github.com/router-for-me/guildrpc/internal/notify"
	"github.com/router-for-me/guildrpc/internal/rpcerror"
)

// Service names as clients address them.
const (
	GuildServiceName      = "guild.GuildService"
	LogsServiceName       = "logs.LogsService"
	ModerationServiceName = "moderation.ModerationService"
	TicketsServiceName    = "tickets.TicketsService"
)

const codeOK = "OK"

// Deps are the side channels shared by every handler.
type Deps struct {
	Publisher notify.Publisher // receives one event per successful mutation
	Metrics   *metrics.RPC     // optional
}

// Method is one callable RPC.
type Method struct {
	Name     string
	Request  reflect.Type
	Response reflect.Type
	Handle   gin.HandlerFunc
}

// Service groups the methods registered under one service name.
type Service struct {
	Name    string
	Methods []Method
}

type guildScoped interface {
	GetGuildID() int64
}

// unary adapts fn into a gin handler. When event is non-nil it builds the
// notification sent after fn succeeds.
func unary[Req, Resp any](deps Deps, service, name string, fn func(context.Context, *Req) (*Resp, error), event func(*Req) notify.Event) Method {
	handle := func(c *gin.Context) {
		start := time.Now()
		req := new(Req)
		if errBind := c.ShouldBindJSON(req); errBind != nil {
			fail(c, deps, service, name, start, rpcerror.NewInvalidArgument(errBind))
			return
		}

		entry := logging.WithRequest(c).WithField("rpc", service+"/"+name)
		if scoped, ok := any(req).(guildScoped); ok {
			entry = entry.WithField("guild_id", scoped.GetGuildID())
		}
		entry.Debugf("handling %s", name)

		resp, err := fn(c.Request.Context(), req)
		if err != nil {
			fail(c, deps, service, name, start, rpcerror.Translate(err))
			return
		}
		if event != nil {
			ev := event(req)
			ev.Type = service + "." + name
			notify.Emit(c.Request.Context(), deps.Publisher, ev)
		}
		deps.Metrics.Observe(service, name, codeOK, time.Since(start))
		c.JSON(http.StatusOK, resp)
	}
	return Method{
		Name:     name,
		Request:  reflect.TypeOf((*Req)(nil)).Elem(),
		Response: reflect.TypeOf((*Resp)(nil)).Elem(),
		Handle:   handle,
	}
}

func fail(c *gin.Context, deps Deps, service, name string, start time.Time, rpcErr *rpcerror.Error) {
	deps.Metrics.Observe(service, name, string(rpcErr.Code), time.Since(start))
	_ = c.Error(rpcErr)

	entry := logging.WithRequest(c).WithField("rpc", service+"/"+name)
	if rpcErr.Code == rpcerror.Internal {
		if state := rpcerror.SQLState(rpcErr); state != "" {
			entry = entry.WithField("sqlstate", state)
		}
		entry.WithError(rpcErr.Unwrap()).Error("rpc failed")
	} else {
		entry.WithField("code", rpcErr.Code).Debug(rpcErr.Message)
	}
	c.AbortWithStatusJSON(rpcErr.Code.HTTPStatus(), rpcErr.Body())
}

func guildEvent(guildID int64) notify.Event {
	return notify.Event{GuildID: guildID, At: time.Now().Unix()}
}
