// @title           Markeep API
// @version         1.0
// @description     Bookmark folders ranked by pins, with local and social login.
// @host            localhost:8080
// @schemes         http https
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"markeep/internal/account"
	"markeep/internal/api"
	"markeep/internal/auth"
	"markeep/internal/config"
	"markeep/internal/database"
	"markeep/internal/logger"
	"markeep/internal/mail"
	"markeep/internal/metrics"
	"markeep/internal/storage"
	"markeep/internal/websocket"

	_ "markeep/docs"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.SetupDefault(os.Stdout, cfg.Log.Format, cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.RunMigrations(cfg.DB.Source); err != nil {
		return err
	}
	log.Info("database migrations applied")

	dbpool, err := pgxpool.New(ctx, cfg.DB.Source)
	if err != nil {
		return err
	}
	defer dbpool.Close()

	if err := dbpool.Ping(ctx); err != nil {
		return err
	}
	log.Info("connected to database")

	images, err := storage.NewLocalStorage(cfg.Storage.Path, cfg.Storage.MaxImageBytes)
	if err != nil {
		return err
	}
	log.Info("profile images stored on disk", slog.String("path", cfg.Storage.Path))

	tokens, err := auth.NewTokenIssuer(cfg.JWT)
	if err != nil {
		return err
	}

	codes, err := mail.NewCodeGenerator()
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	providers := auth.NewProviders(cfg.OAuth, auth.NewHTTPClient(cfg.OAuth.Timeout))
	for name := range providers {
		log.Info("oauth provider enabled", slog.String("provider", name))
	}

	store := database.NewStore(dbpool)

	accounts := account.NewService(account.Deps{
		Store:           store,
		Tokens:          tokens,
		Providers:       providers,
		Mailer:          mail.NewSender(cfg.Mail, log),
		Images:          images,
		Codes:           codes,
		CodeTTL:         cfg.Mail.CodeTTL,
		MaxCodeAttempts: cfg.Mail.MaxCodeAttempts,
		Metrics:         collector,
		Logger:          log,
	})

	wsHub := websocket.NewHub(log)
	go wsHub.Run(ctx)

	server := api.NewServer(api.Deps{
		Config:   cfg,
		Store:    store,
		Accounts: accounts,
		Tokens:   tokens,
		Hub:      wsHub,
		Metrics:  collector,
		Gatherer: registry,
		Logger:   log,
	})

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", slog.String("addr", cfg.Server.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}
