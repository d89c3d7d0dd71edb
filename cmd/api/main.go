package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"salesdash/app"
	"salesdash/internal"
	"salesdash/internal/config"
	"salesdash/ui"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := internal.NewDefaultLogger()
	dash := app.NewDashboard(logger, cfg.Data.DefaultTopN)
	server := ui.NewServer(dash, logger, int(cfg.Server.MaxUploadMB))

	if cfg.Data.SampleFile != "" {
		t, err := dash.Load(cfg.Data.SampleFile)
		if err != nil {
			logger.Warn("sample file %s not loaded: %v", cfg.Data.SampleFile, err)
		} else {
			id := server.AddTable(t)
			logger.Info("sample dataset %s preloaded: %d rows", id, t.Len())
		}
	}

	if err := server.Run(":" + cfg.Server.Port); err != nil {
		logger.Error("server exited: %v", err)
		os.Exit(1)
	}
}
