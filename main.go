package main

import (
	"embed"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"datadash/adapters/excel"
	"datadash/internal"
	"datadash/internal/cache"
	"datadash/internal/config"
	"datadash/ui"
)

//go:embed ui/templates/*
var embeddedFiles embed.FS

func main() {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	// Rebuild the logger so a LOG_LEVEL set in .env takes effect.
	internal.DefaultLogger = internal.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	tableCache := cache.NewTableCache(excel.NewLoader())

	server, err := ui.NewServer(cfg, tableCache, embeddedFiles)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	var g errgroup.Group
	g.Go(server.Run)
	if cfg.Profiling.Enabled {
		g.Go(func() error { return runOpsServer(cfg) })
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}

// runOpsServer exposes health and pprof on a side port, away from the
// dashboard itself.
func runOpsServer(cfg *config.Config) error {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Mount("/debug", chimiddleware.Profiler())

	internal.DefaultLogger.Info("[Ops] pprof and health listening on :%s", cfg.Profiling.Port)
	return http.ListenAndServe(":"+cfg.Profiling.Port, r)
}
