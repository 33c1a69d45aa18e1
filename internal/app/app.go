package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/router-for-me/guildrpc/internal/config"
	"github.com/router-for-me/guildrpc/internal/db"
	internalhttp "github.com/router-for-me/guildrpc/internal/http"
	"github.com/router-for-me/guildrpc/internal/logging"
	"github.com/router-for-me/guildrpc/internal/metrics"
	"github.com/router-for-me/guildrpc/internal/notify"
	"github.com/router-for-me/guildrpc/internal/security"
	"github.com/router-for-me/guildrpc/internal/util"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Migrate opens the database and runs migrations.
func Migrate(ctx context.Context, cfg config.AppConfig) error {
	conf, err := config.Load(config.ResolveConfigPath(cfg.ConfigPath))
	if err != nil {
		return err
	}
	conn, err := openDatabase(conf.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close(conn) }()
	return db.Migrate(conn)
}

// IssueToken mints a service token signed with auth.jwt_secret. A zero expiry
// falls back to auth.token_expiry.
func IssueToken(cfg config.AppConfig, subject string, expiry time.Duration) (string, error) {
	conf, err := config.Load(config.ResolveConfigPath(cfg.ConfigPath))
	if err != nil {
		return "", err
	}
	if !conf.Auth.Enabled() {
		return "", errors.New("auth.jwt_secret is not configured")
	}
	if expiry == 0 {
		expiry = conf.Auth.TokenExpiry
	}
	return security.GenerateServiceToken(conf.Auth.JWTSecret, subject, expiry)
}

// RunServer serves the RPC API until ctx is cancelled, then shuts down gracefully.
func RunServer(ctx context.Context, cfg config.AppConfig) error {
	configPath := config.ResolveConfigPath(cfg.ConfigPath)
	conf, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logCloser, err := logging.Setup(conf.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logCloser.Close() }()

	conn, err := openDatabase(conf.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close(conn) }()
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}

	publisher, err := newPublisher(ctx, conf.Notify)
	if err != nil {
		return err
	}
	defer func() { _ = publisher.Close() }()

	var rpcMetrics *metrics.RPC
	if conf.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		rpcMetrics = metrics.NewRPC(reg)
	}

	if log.GetLevel() < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	router := internalhttp.NewRouter(conn, internalhttp.RouterOptions{
		JWTSecret: conf.Auth.JWTSecret,
		Publisher: publisher,
		Metrics:   rpcMetrics,
	})
	server := &http.Server{
		Addr:         conf.Server.Listen,
		Handler:      router,
		ReadTimeout:  conf.Server.ReadTimeout,
		WriteTimeout: conf.Server.WriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.WithFields(log.Fields{
			"listen": conf.Server.Listen,
			"config": configPath,
			"auth":   conf.Auth.Enabled(),
		}).Info("guildrpc listening")
		if errServe := server.ListenAndServe(); errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			return fmt.Errorf("serve %s: %w", conf.Server.Listen, errServe)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), conf.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	})
	return group.Wait()
}

func openDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	conn, err := db.Open(cfg.DSN, db.Options{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", util.MaskDSN(cfg.DSN), err)
	}
	log.WithField("dialect", db.DialectName(conn)).Debug("database connected")
	return conn, nil
}

func newPublisher(ctx context.Context, cfg config.NotifyConfig) (notify.Publisher, error) {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		return notify.Nop{}, nil
	}
	publisher, err := notify.NewRedisPublisher(ctx, cfg.RedisURL, cfg.Channel, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	log.WithField("channel", publisher.Channel()).Info("publishing guild events to redis")
	return publisher, nil
}
