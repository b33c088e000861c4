package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brisatech/backoffice/internal/config"
	"github.com/brisatech/backoffice/internal/devserver"
	"github.com/joho/godotenv"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	devserver.SetLogger(logger)

	logger.Info("starting back-office dev server",
		slog.String("version", version),
		slog.String("build_time", buildTime),
		slog.String("addr", cfg.Addr),
	)

	srv, err := devserver.New(cfg.AdminEmail, cfg.AdminPassword, cfg.JWTSecret, cfg.TokenDuration.Std())
	if err != nil {
		log.Fatalf("Failed to build server: %v", err)
	}

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Router(),
		ReadTimeout:  cfg.APITimeout.Std(),
		WriteTimeout: cfg.APITimeout.Std(),
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("server exited")
}
