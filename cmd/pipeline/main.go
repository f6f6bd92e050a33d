// Command pipeline runs one batch pass over the raw trade-event feed:
// normalize, clean, enrich and persist the canonical dataset.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/exportiq/tradescore/internal/app"
	"github.com/exportiq/tradescore/internal/config"
	"github.com/exportiq/tradescore/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	loggerInstance := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}

	svc := app.New(cfg, app.WithLogger(loggerInstance))
	if err := svc.StartPipeline(ctx); err != nil {
		loggerInstance.Error(ctx, "pipeline startup failed", logger.Error(err))
		os.Exit(1)
	}
	defer svc.Stop()

	report, err := svc.RunPipeline(ctx)
	if err != nil {
		loggerInstance.Error(ctx, "pipeline run failed", logger.Error(err))
		os.Exit(1)
	}

	loggerInstance.Info(ctx, "pipeline finished",
		logger.Int("raw_rows", report.RawRows),
		logger.Int("persisted", report.Persisted),
	)
}
