package http

import (
	"github.com/gin-gonic/gin"
	"github.com/router-for-me/guildrpc/internal/http/api/rpc"
	"github.com/router-for-me/guildrpc/internal/http/api/rpc/handlers"
	"github.com/router-for-me/guildrpc/internal/logging"
	"github.com/router-for-me/guildrpc/internal/metrics"
	"github.com/router-for-me/guildrpc/internal/notify"
	"gorm.io/gorm"
)

// RouterOptions configure NewRouter.
type RouterOptions struct {
	JWTSecret string
	Publisher notify.Publisher
	Metrics   *metrics.RPC // nil disables /metrics and RPC instrumentation
}

// NewRouter builds the gin engine serving health, metrics and the RPC services.
func NewRouter(conn *gorm.DB, opts RouterOptions) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), logging.RequestID(), logging.AccessLog(), CORSMiddleware())

	health := NewHealthHandler(conn)
	engine.GET("/healthz", health.Healthz)
	if opts.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	rpc.RegisterRPCRoutes(engine, conn, rpc.Options{
		JWTSecret: opts.JWTSecret,
		Deps: handlers.Deps{
			Publisher: opts.Publisher,
			Metrics:   opts.Metrics,
		},
	})
	return engine
}
