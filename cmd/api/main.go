package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/AlibekovAA/microblog/internal/common/bootstrap"
	"github.com/AlibekovAA/microblog/internal/common/config"
	"github.com/AlibekovAA/microblog/internal/common/logger"
	srv "github.com/AlibekovAA/microblog/internal/common/server"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(os.Getenv("LOG_DIR"), bootstrap.ServiceName, os.Getenv("LOG_LEVEL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort), app.Handler)
	if err := srv.Run(ctx, server, log, bootstrap.ServiceName, app.ShutdownHooks()...); err != nil {
		log.Errorf("server stopped with error: %v", err)
		os.Exit(1)
	}
}
