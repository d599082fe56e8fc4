package main

import (
	"carp-solver/internal/adapters/repositories"
	"carp-solver/internal/api"
	"carp-solver/internal/config"
	"carp-solver/internal/platform/db"
	"carp-solver/internal/platform/obs"
	"carp-solver/internal/ports"
	"carp-solver/internal/services"
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// main is the application composition root.
// It wires the instance store (Postgres when DATABASE_URL is set, memory otherwise)
// and the route builders behind the HTTP API.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := obs.SetupLogging(obs.LogOptions{Level: cfg.LogLevel, File: cfg.LogFile}); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	repo, closeRepo, err := openRepository(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer closeRepo()

	builders := services.DefaultBuilders()
	router := api.NewRouter(repo, builders, cfg)

	log.WithFields(log.Fields{
		"addr":       ":" + cfg.Server.Port,
		"strategies": builders.List(),
	}).Info("server listening")

	// Write timeout leaves room for large instances plus the local-search budget.
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.Solver.TimeLimit + 60*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openRepository(ctx context.Context, databaseURL string) (ports.InstanceRepository, func(), error) {
	if strings.TrimSpace(databaseURL) == "" {
		log.Warn("DATABASE_URL not set, using in-memory instance store")
		return repositories.NewMemoryInstanceRepository(), func() {}, nil
	}

	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := repositories.InitSchema(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return repositories.NewPostgresInstanceRepository(conn), func() { closeDB(conn) }, nil
}

func closeDB(conn *sql.DB) {
	if err := conn.Close(); err != nil {
		log.WithError(err).Warn("close database")
	}
}
