package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/router-for-me/guildrpc/internal/app"
	"github.com/router-for-me/guildrpc/internal/config"
	log "github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		log.WithError(err).Error("exiting")
		os.Exit(1)
	}
}

func run(args []string) error {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cliApp := cli.App{
		Name:  "guildrpc",
		Usage: "guild settings and moderation RPC backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to the YAML config file",
				EnvVars: []string{"GUILDRPC_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			serveCmd,
			migrateCmd,
			tokenCmd,
		},
		Action: serve,
	}
	return cliApp.Run(args)
}

func appConfig(cctx *cli.Context) config.AppConfig {
	return config.AppConfig{ConfigPath: cctx.String("config")}
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

var serveCmd = &cli.Command{
	Name:   "serve",
	Usage:  "run the RPC server (default)",
	Action: serve,
}

func serve(cctx *cli.Context) error {
	ctx, stop := signalContext(cctx.Context)
	defer stop()
	return app.RunServer(ctx, appConfig(cctx))
}

var migrateCmd = &cli.Command{
	Name:  "migrate",
	Usage: "create or update the database schema and exit",
	Action: func(cctx *cli.Context) error {
		ctx, stop := signalContext(cctx.Context)
		defer stop()
		if err := app.Migrate(ctx, appConfig(cctx)); err != nil {
			return err
		}
		log.Info("migration complete")
		return nil
	},
}

var tokenCmd = &cli.Command{
	Name:  "token",
	Usage: "mint a service token signed with auth.jwt_secret",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "subject",
			Usage:    "name of the calling service, e.g. bot-shard-0",
			Required: true,
		},
		&cli.DurationFlag{
			Name:  "expiry",
			Usage: "token lifetime; defaults to auth.token_expiry",
		},
	},
	Action: func(cctx *cli.Context) error {
		token, err := app.IssueToken(appConfig(cctx), cctx.String("subject"), cctx.Duration("expiry"))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cctx.App.Writer, token)
		return err
	},
}
