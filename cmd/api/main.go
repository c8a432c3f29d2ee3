package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/bryanwahyu/hemolab/internal/application"
	appanalysis "github.com/bryanwahyu/hemolab/internal/application/analysis"
	"github.com/bryanwahyu/hemolab/internal/application/crew"
	"github.com/bryanwahyu/hemolab/internal/config"
	domain "github.com/bryanwahyu/hemolab/internal/domain/analysis"
	aiopenai "github.com/bryanwahyu/hemolab/internal/infra/ai/openai"
	"github.com/bryanwahyu/hemolab/internal/infra/db/mysql"
	"github.com/bryanwahyu/hemolab/internal/infra/db/postgres"
	"github.com/bryanwahyu/hemolab/internal/infra/db/sqlite"
	"github.com/bryanwahyu/hemolab/internal/infra/docload"
	"github.com/bryanwahyu/hemolab/internal/infra/httpserver"
	"github.com/bryanwahyu/hemolab/internal/infra/storage"
	"github.com/bryanwahyu/hemolab/internal/middleware"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	if cfg.OpenAI.APIKey == "" {
		log.Fatal("OPENAI_API_KEY is required")
	}

	ctx := context.Background()

	// connect datastore
	var db *sql.DB
	var repo domain.Repository
	switch cfg.Database.Driver {
	case "sqlite":
		db, err = sqlite.Connect(ctx, cfg.Database.Path)
		if err == nil {
			repo = sqlite.NewAnalysisRepository(db)
		}
	case "mysql":
		db, err = mysql.Connect(ctx, cfg.MySQLDSN())
		if err == nil {
			repo = mysql.NewAnalysisRepository(db)
		}
	case "postgres":
		db, err = postgres.Connect(ctx, cfg.PostgresDSN())
		if err == nil {
			repo = postgres.NewAnalysisRepository(db)
		}
	default:
		log.Fatalf("unknown database driver: %s", cfg.Database.Driver)
	}
	if err != nil {
		log.Fatalf("database connect error (%s): %v", cfg.Database.Driver, err)
	}
	defer db.Close()

	// optional report archive
	var archive appanalysis.Archive
	if cfg.Archive.Enabled {
		store, err := storage.New(ctx,
			cfg.Archive.Endpoint,
			cfg.Archive.Region,
			cfg.Archive.BucketName,
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			cfg.Archive.UseSSL,
		)
		if err != nil {
			log.Fatalf("archive init error: %v", err)
		}
		archive = store
	}

	llm := aiopenai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)

	svc := &appanalysis.Service{
		Repo:    repo,
		Loader:  docload.NewPDFLoader(),
		Crew:    crew.New(llm),
		Archive: archive,
		Clock:   application.SystemClock{},
		Timeout: time.Duration(cfg.Orchestrator.TimeoutSeconds) * time.Second,
	}

	checkers := map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}

	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.APIKeyAuth(cfg.Server.APIKeys))
	mux.Use(middleware.RateLimitMiddleware(cfg.Server.RateCapacity, cfg.Server.RateRefill))
	mux.Mount("/", httpserver.NewRouter(svc, cfg.Upload.Dir, checkers))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // orchestration responses are slow
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
