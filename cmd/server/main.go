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

	"blogApp/internal/api"
	"blogApp/internal/config"
	"blogApp/internal/db"
	grpcserver "blogApp/internal/grpc"
	"blogApp/internal/logger"
)

func main() {
	load := config.LoadWithDefaults
	if os.Getenv("APP_ENV") == "production" {
		load = config.Load
	}
	cfg, err := load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Environment: cfg.Env,
		Level:       logger.ParseLevel(cfg.LogLevel),
		AddSource:   !cfg.IsProduction(),
	})
	log.Info("configuration loaded", "config", cfg.String())

	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Error("open db", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Error("close db", "error", err)
		}
	}()
	if v, err := db.CurrentVersion(d); err == nil {
		log.Info("database ready", "path", cfg.Database.Path, "schema_version", v)
	}

	stopGRPC, err := grpcserver.StartGRPC(cfg, d, log)
	if err != nil {
		log.Error("start grpc", "error", err)
		os.Exit(1)
	}

	apiServer := api.NewServer(d, api.Options{
		JWTSecret:      cfg.Auth.JWTSecret,
		TokenTTL:       cfg.Auth.TokenTTL,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		LoginPerMinute: cfg.RateLimit.LoginPerMinute,
		LoginBurst:     cfg.RateLimit.LoginBurst,

		TrustProxyHeaders: cfg.HTTP.TrustProxyHeaders,
	}, log)
	defer apiServer.Close()

	httpServer := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      apiServer,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}
	serveErr := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", cfg.HTTP.Address)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-serveErr:
		log.Error("http server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", "error", err)
	}
	if err := stopGRPC(shutdownCtx); err != nil {
		log.Error("grpc shutdown", "error", err)
	}
	log.Info("stopped")
}
