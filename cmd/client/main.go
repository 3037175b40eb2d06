package main

import (
	"context"

	"github.com/hockeyclub/club-system/internal/client/api"
	"github.com/hockeyclub/club-system/internal/client/cli"
	"github.com/hockeyclub/club-system/internal/client/config"
	"github.com/hockeyclub/club-system/internal/client/router"
	"github.com/hockeyclub/club-system/internal/client/session"
	"github.com/hockeyclub/club-system/internal/client/storage"
	"github.com/hockeyclub/club-system/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	store, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open session storage")
	}
	defer func() {
		_ = store.Close()
	}()

	apiClient := api.New(api.Options{
		BaseURL: cfg.APIURL,
		Tokens:  store,
	})

	sess := session.NewStore(apiClient, store, log)
	guard := router.NewGuard(sess, router.DefaultRoutes())
	app := cli.NewApp(sess, guard, log)

	// A 401 on any non-login call tears the session down and drops the shell
	// back onto the login page.
	apiClient.SetUnauthorizedHandler(func() {
		sess.ForceSignOut(context.Background())
		app.ForceSignOut()
	})

	if err := app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client shell exited with error")
	}
}
