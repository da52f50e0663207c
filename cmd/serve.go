package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songtable/internal/repositories"
	"github.com/desertthunder/songtable/internal/server"
	"github.com/desertthunder/songtable/internal/shared"
	"github.com/desertthunder/songtable/internal/tasks"
	"github.com/desertthunder/songtable/internal/web"
	"github.com/urfave/cli/v3"
)

// Serve opens the database and runs the JSON API and web table until SIGINT or SIGTERM.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Port = int(cmd.Int("port"))
	}

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	router, err := newRouter(cfg, db, r.logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.logger.Info("serving songs", "db", r.config.Database.Path, "url", fmt.Sprintf("http://%s", cfg.Addr()))
	return server.Run(ctx, server.NewHTTPServer(cfg, router), shared.WithLogger(r.logger, "component", "server"))
}

// newRouter wires the song store, engine, JSON handler and web page behind the middleware stack.
func newRouter(cfg shared.ServerConfig, db *sql.DB, logger *log.Logger) (*server.BasicRouter, error) {
	engine := tasks.NewLibraryEngine(repositories.NewSongRepository(db), shared.WithLogger(logger, "component", "engine"))

	page, err := web.NewHandler(engine, shared.WithLogger(logger, "component", "web"))
	if err != nil {
		return nil, err
	}

	router := server.New(cfg, shared.WithLogger(logger, "component", "http"))
	router.Handler(server.NewSongsHandler(engine, logger))
	router.Handle(http.MethodGet, "/api/songs/export", server.ExportHandler(engine))
	router.Handler(page)
	return router, nil
}
