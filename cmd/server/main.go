package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	httpadapter "humanizepro/internal/adapters/http"
	pg "humanizepro/internal/adapters/postgres"
	"humanizepro/internal/auth"
	"humanizepro/internal/config"
	"humanizepro/internal/detect"
	"humanizepro/internal/ports"
	"humanizepro/internal/rewrite"
	humsvc "humanizepro/internal/services/humanizer"
	projsvc "humanizepro/internal/services/projects"
	"humanizepro/internal/store"
	"humanizepro/internal/workers/syncer"
	"humanizepro/pkg/logger"
)

func main() {
	cfg, warn := config.Load()
	log := logger.New(cfg.LogLevel)
	if warn != nil {
		log.Warn("config", "warning", warn)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := store.NewMemory()
	queue := store.NewQueue()

	// Optional durable copy of the project collection.
	var remote ports.RemoteProjectStore
	if cfg.DatabaseURL != "" {
		db, err := pg.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("db connect", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			log.Error("db migrate", "error", err)
			os.Exit(1)
		}
		persisted, err := db.List(ctx)
		if err != nil {
			log.Error("load persisted projects", "error", err)
			os.Exit(1)
		}
		for i := len(persisted) - 1; i >= 0; i-- {
			if err := repo.Insert(ctx, persisted[i]); err != nil {
				log.Warn("rehydrate project", "id", persisted[i].ID, "error", err)
			}
		}
		log.Info("projects loaded", "count", len(persisted))
		remote = db
	}

	// The rewriter is chosen once at startup, not per call.
	var rewriter ports.TextRewriter
	if cfg.OpenAIAPIKey != "" {
		rewriter = rewrite.NewOpenAI(rewrite.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBase,
		}, log)
		log.Info("rewriter selected", "kind", "openai")
	} else {
		rewriter = rewrite.NewRules()
		log.Info("rewriter selected", "kind", "rules")
	}

	humanizer := humsvc.New(rewriter, log)
	projects := projsvc.New(repo, queue, log)
	checker := detect.New()
	authSvc := auth.New(auth.NewStore(), cfg.AuthSecret, log)
	go authSvc.RunSweeper(ctx, time.Minute)

	if remote != nil && cfg.SyncWorkers > 0 {
		syncer.Run(ctx, queue, repo, remote, cfg.SyncWorkers, 500*time.Millisecond, log)
		log.Info("sync workers started", "count", cfg.SyncWorkers)
	}

	srv := httpadapter.New(humanizer, checker, projects, authSvc, log)
	r := chi.NewRouter()
	r.Mount("/", srv.Routes())

	server := &http.Server{Addr: cfg.ListenAddr, Handler: r}
	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()
	log.Info("listening", "addr", cfg.ListenAddr, "env", cfg.Env)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown", "error", err)
		}
		cancel()
		if remote != nil {
			syncer.Drain(shutdownCtx, queue, repo, remote, log)
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}
}
