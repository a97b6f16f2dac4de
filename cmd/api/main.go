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

	"github.com/keremsimsek1907/nova-app/internal/config"
	"github.com/keremsimsek1907/nova-app/internal/logging"
	"github.com/keremsimsek1907/nova-app/internal/repository"
	"github.com/keremsimsek1907/nova-app/internal/server"
	"github.com/keremsimsek1907/nova-app/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stdout,
	})
	slog.SetDefault(log)

	store, err := repository.Open(context.Background(), cfg.Store)
	if err != nil {
		log.Error("store unavailable", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	log.Info("store connected", "driver", store.Driver())

	authService := service.NewAuthService(store.Users, cfg.JWTSecret, cfg.TokenTTL)
	itemService := service.NewItemService(store.Items)

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: server.NewRouter(server.Deps{
			Store:       store,
			Auth:        authService,
			Items:       itemService,
			Log:         log,
			CORSOrigins: cfg.CORSOrigins,
			StaticDir:   cfg.StaticDir,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced shutdown", "error", err)
	}
	if err := store.Close(ctx); err != nil {
		log.Error("store close failed", "error", err)
	}

	log.Info("server stopped")
}
