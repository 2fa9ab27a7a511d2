package main

import (
	"context"
	"database/sql"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ApexSites26/route-care-app-78-sub000/internal/app"
	"github.com/ApexSites26/route-care-app-78-sub000/internal/config"
	"github.com/ApexSites26/route-care-app-78-sub000/internal/logging"
	rotamigrations "github.com/ApexSites26/route-care-app-78-sub000/migrations"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional, env vars override)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fallback := logging.New(config.LoggingConfig{Format: "json"}, "rota")
		fallback.Fatal().Err(err).Msg("config error")
	}

	logger := logging.New(cfg.Logging, "rota")
	logger.Debug().
		Str("http_addr", cfg.HTTPAddr).
		Str("identity_base_url", cfg.IdentityBaseURL).
		Int("db_max_open", cfg.DB.MaxOpenConns).
		Int("db_max_idle", cfg.DB.MaxIdleConns).
		Dur("db_conn_max_lifetime", cfg.DB.ConnMaxLifetime).
		Msg("config loaded")

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := rotamigrations.Up(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}
	logger.Debug().Msg("migrations completed")

	application := app.New(db, cfg.IdentityBaseURL, logger)

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           application.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-shutdownCtx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("http shutdown error")
		}
	}()

	logger.Info().Str("addr", cfg.HTTPAddr).Msg("rota service listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("http server error")
	}
}
