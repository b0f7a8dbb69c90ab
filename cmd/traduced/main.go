package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"traduce/internal/config"
	"traduce/internal/crossref"
	"traduce/internal/daemon"
	"traduce/internal/investigation"
	"traduce/internal/logging"
	"traduce/internal/notifications"
	"traduce/internal/preflight"
	"traduce/internal/queue"
	"traduce/internal/workflow"
)

func main() {
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("prepare directories: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	logging.CleanupOldLogs(logger, logging.RetentionTarget{
		Directory: cfg.Paths.LogDir,
		MaxAge:    time.Duration(cfg.Logging.RetentionDays) * 24 * time.Hour,
	})

	for _, result := range preflight.RunAll(ctx, cfg) {
		if result.Passed {
			logger.Info("preflight check passed",
				logging.String("check", result.Name),
				logging.String("detail", result.Detail))
		} else {
			logger.Warn("preflight check failed",
				logging.String("check", result.Name),
				logging.String("detail", result.Detail))
		}
	}

	store, err := queue.Open(cfg)
	if err != nil {
		logger.Error("open queue store", logging.Error(err))
		return
	}

	tables, err := crossref.Load(cfg.Investigation.CrossrefTablesPath)
	if err != nil {
		logger.Error("load cross-reference tables", logging.Error(err))
		_ = store.Close()
		return
	}

	engine, err := investigation.New(cfg, logger, tables)
	if err != nil {
		logger.Error("build investigation engine", logging.Error(err))
		_ = store.Close()
		return
	}

	notifier := notifications.NewService(cfg)
	workflowManager := workflow.NewManagerWithNotifier(cfg, store, engine, logger, notifier)

	d, err := daemon.New(cfg, store, logger, workflowManager)
	if err != nil {
		logger.Error("create daemon", logging.Error(err))
		_ = store.Close()
		return
	}
	defer d.Close()

	if err := d.Start(ctx); err != nil {
		logger.Error("daemon start", logging.Error(err))
		return
	}

	<-ctx.Done()
	logger.Info("traduced shutting down")
}
