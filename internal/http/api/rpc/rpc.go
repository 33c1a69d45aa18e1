package rpc

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/router-for-me/guildrpc/internal/http/api/rpc/handlers"
	"github.com/router-for-me/guildrpc/internal/rpcerror"
	"github.com/router-for-me/guildrpc/internal/security"
	"gorm.io/gorm"
)

// BasePath prefixes every RPC route.
const BasePath = "/rpc"

// Options configure RPC route registration.
type Options struct {
	JWTSecret string // when set every call needs a service token
	Deps      handlers.Deps
}

// RegisterRPCRoutes mounts every service under BasePath and returns what was registered.
func RegisterRPCRoutes(r *gin.Engine, db *gorm.DB, opts Options) []handlers.Service {
	if r == nil || db == nil {
		return nil
	}

	services := []handlers.Service{
		handlers.NewGuildHandler(db, opts.Deps).Service(),
		handlers.NewLogsHandler(db, opts.Deps).Service(),
		handlers.NewModerationHandler(db, opts.Deps).Service(),
		handlers.NewTicketsHandler(db, opts.Deps).Service(),
	}

	group := r.Group(BasePath)
	if secret := strings.TrimSpace(opts.JWTSecret); secret != "" {
		group.Use(serviceAuthMiddleware(secret))
	}
	for _, svc := range services {
		for _, m := range svc.Methods {
			group.POST("/"+svc.Name+"/"+m.Name, m.Handle)
		}
	}
	group.GET("", describeHandler(buildDescription(services)))
	return services
}

func serviceAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := security.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthenticated(c, "missing bearer token")
			return
		}
		claims, errJWT := security.ParseServiceToken(secret, token)
		if errJWT != nil {
			abortUnauthenticated(c, errJWT.Error())
			return
		}
		c.Set("serviceSubject", claims.Subject)
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, rpcerror.Body{Error: rpcerror.Unauthenticated, Message: msg})
}

// Description is the discovery document served at GET BasePath.
type Description struct {
	Services []ServiceDescription `json:"services"`
}

type ServiceDescription struct {
	Name    string              `json:"name"`
	Methods []MethodDescription `json:"methods"`
}

type MethodDescription struct {
	Name     string             `json:"name"`
	Path     string             `json:"path"`
	Request  MessageDescription `json:"request"`
	Response MessageDescription `json:"response"`
}

type MessageDescription struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

func buildDescription(services []handlers.Service) Description {
	out := Description{Services: make([]ServiceDescription, 0, len(services))}
	for _, svc := range services {
		sd := ServiceDescription{Name: svc.Name, Methods: make([]MethodDescription, 0, len(svc.Methods))}
		for _, m := range svc.Methods {
			sd.Methods = append(sd.Methods, MethodDescription{
				Name:     m.Name,
				Path:     BasePath + "/" + svc.Name + "/" + m.Name,
				Request:  describeMessage(m.Request),
				Response: describeMessage(m.Response),
			})
		}
		out.Services = append(out.Services, sd)
	}
	return out
}

// describeMessage lists the JSON field names of a message struct.
func describeMessage(t reflect.Type) MessageDescription {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	md := MessageDescription{Name: t.Name(), Fields: []string{}}
	if t.Kind() != reflect.Struct {
		return md
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}
		md.Fields = append(md.Fields, name)
	}
	return md
}

func describeHandler(desc Description) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, desc)
	}
}
