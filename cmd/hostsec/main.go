package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/oneearth-admin/oeff-docs/internal/hostsec"
	"github.com/oneearth-admin/oeff-docs/internal/hostsec/config"
	"github.com/oneearth-admin/oeff-docs/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewJSON(os.Stderr, cfg.LogLevel)

	if err := hostsec.NewApp(cfg, logger).Run(ctx); err != nil {
		logger.Error(ctx, "hostsec failed", "error", err)
		stop()
		os.Exit(1)
	}
}
