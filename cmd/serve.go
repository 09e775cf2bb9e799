package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/moviebox/internal/server"
	"github.com/desertthunder/moviebox/internal/store"
	"github.com/desertthunder/moviebox/internal/web"
	"github.com/urfave/cli/v3"
)

// Serve runs the web view until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	handler, err := r.webHandler(ctx)
	if err != nil {
		return err
	}

	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := cmd.Int("port"); port > 0 {
		cfg.Port = port
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx, cfg.Addr(), handler, r.logger)
}

// webHandler wires the stores into the web app behind the router middleware.
func (r *Runner) webHandler(ctx context.Context) (*server.ChiRouter, error) {
	api, err := r.requireAPI()
	if err != nil {
		return nil, err
	}

	favorites, err := r.favorites(ctx)
	if err != nil {
		return nil, err
	}

	app, err := web.New(web.Opts{
		Catalog:   store.NewCatalog(api, r.logger),
		Favorites: favorites,
		Detail:    store.NewDetail(),
		ImageBase: r.config.TMDB.ImageBaseURL,
		Logger:    r.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create web app: %w", err)
	}

	router := server.NewRouter(r.logger)
	router.Handler(app)
	return router, nil
}
