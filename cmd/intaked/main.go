package main

import (
	"context"
	"os"
	_ "time/tzdata"

	"github.com/oneearth-admin/oeff-docs/internal/logging"
	"github.com/oneearth-admin/oeff-docs/internal/server"
	"github.com/oneearth-admin/oeff-docs/internal/server/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSON(os.Stdout, cfg.LogLevel)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "init failed", "error", err)
		os.Exit(1)
	}

	err = app.Run(ctx)
	_ = app.Close()
	if err != nil {
		logger.Error(ctx, "run failed", "error", err)
		os.Exit(1)
	}
}
