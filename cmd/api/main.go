package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/robfig/cron"

	"github.com/olbb/expense-console-backend/internal/adapters/cardfeed"
	"github.com/olbb/expense-console-backend/internal/adapters/extract"
	"github.com/olbb/expense-console-backend/internal/api"
	"github.com/olbb/expense-console-backend/internal/application/service"
	"github.com/olbb/expense-console-backend/internal/domain/currency"
	"github.com/olbb/expense-console-backend/internal/domain/matcher"
	"github.com/olbb/expense-console-backend/internal/infrastructure/config"
	"github.com/olbb/expense-console-backend/internal/infrastructure/logging"
	"github.com/olbb/expense-console-backend/internal/infrastructure/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadOrEnv()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Observability.Logging)

	repo := store.NewMemorySeeded()
	feed := cardfeed.NewStaticProvider()

	converter := currency.NewConverter(nil, logger)
	m := matcher.NewMatcher(matcher.DefaultConfig())

	sync := service.NewSyncService(repo, feed, logger)
	reports := service.NewReportService(repo, converter, m, logger)
	dashboard := service.NewDashboardService(repo, logger)
	extractor := extract.NewClient(cfg.Services, logger)

	// Load the ledger before serving, then keep it fresh on the
	// configured schedule.
	if n, err := sync.Refresh(context.Background()); err != nil {
		logger.Error("initial card feed refresh failed", "error", err)
	} else {
		logger.Info("card feed loaded", "provider", feed.Name(), "transactions", n)
	}
	dashboard.RecomputeBudgets()

	if cfg.Sync.Enabled {
		scheduler := cron.New()
		err := scheduler.AddFunc(cfg.Sync.Schedule, func() {
			if n, err := sync.Refresh(context.Background()); err != nil {
				logger.Error("scheduled card feed refresh failed", "error", err)
			} else {
				logger.Debug("card feed refreshed", "transactions", n)
				dashboard.RecomputeBudgets()
			}
		})
		if err != nil {
			logger.Error("invalid sync schedule", "schedule", cfg.Sync.Schedule, "error", err)
			os.Exit(1)
		}
		scheduler.Start()
		defer scheduler.Stop()
		logger.Info("card feed refresh scheduled", "schedule", cfg.Sync.Schedule)
	}

	server := api.NewServer(cfg, logger, repo, reports, dashboard, sync, extractor)
	if err := server.Run(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
