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

	"github.com/osse101/pisle-planner/internal/bootstrap"
	"github.com/osse101/pisle-planner/internal/calculator"
	"github.com/osse101/pisle-planner/internal/config"
	"github.com/osse101/pisle-planner/internal/planner"
	"github.com/osse101/pisle-planner/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	bootstrap.SetupLogger(cfg)

	tunables, err := bootstrap.LoadTunables(cfg)
	if err != nil {
		slog.Error("Failed to load game tunables", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	storage, err := bootstrap.InitializeStorage(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	engine := planner.NewEngine(tunables)
	service := calculator.NewService(calculator.New(engine), storage.State)
	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, storage.Pinger, engine, service)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:  srv,
		Storage: storage,
	})
}
