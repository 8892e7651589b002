package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/stocksense/internal/buildinfo"
	"github.com/dmitrijs2005/stocksense/internal/client/config"
	"github.com/dmitrijs2005/stocksense/internal/client/web"
	"github.com/dmitrijs2005/stocksense/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	logger := logging.New(os.Stdout, logging.FormatJSON, cfg.LogLevel)

	if err := web.Run(ctx, cfg, logger); err != nil {
		logger.Error(ctx, "web front stopped", "error", err)
		os.Exit(1)
	}
}
