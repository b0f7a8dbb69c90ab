package workflow

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"traduce/internal/books"
	"traduce/internal/config"
	"traduce/internal/investigation"
	"traduce/internal/logging"
	"traduce/internal/notifications"
	"traduce/internal/queue"
)

// Engine is the investigation entry point the manager drives. Satisfied by
// *investigation.Investigator.
type Engine interface {
	Investigate(ctx context.Context, source books.SourceBook, targetLanguage string) (*investigation.Result, error)
}

// Manager coordinates queue processing.
type Manager struct {
	cfg          *config.Config
	store        *queue.Store
	engine       Engine
	logger       *slog.Logger
	notifier     notifications.Service
	pollInterval time.Duration

	heartbeat *HeartbeatMonitor

	mu       sync.RWMutex
	running  bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	lastErr  error
	lastItem *queue.Item

	queueActive bool
	queueStart  time.Time
}

// NewManager constructs a workflow manager with the notifier built from config.
func NewManager(cfg *config.Config, store *queue.Store, engine Engine, logger *slog.Logger) *Manager {
	return NewManagerWithNotifier(cfg, store, engine, logger, notifications.NewService(cfg))
}

// NewManagerWithNotifier constructs a workflow manager with a custom notifier
// (used in tests).
func NewManagerWithNotifier(cfg *config.Config, store *queue.Store, engine Engine, logger *slog.Logger, notifier notifications.Service) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Manager{
		cfg:          cfg,
		store:        store,
		engine:       engine,
		logger:       logging.NewComponentLogger(logger, "workflow"),
		notifier:     notifier,
		pollInterval: time.Duration(cfg.Workflow.QueuePollInterval) * time.Second,
		heartbeat: NewHeartbeatMonitor(
			store,
			logger,
			time.Duration(cfg.Workflow.HeartbeatInterval)*time.Second,
			time.Duration(cfg.Workflow.HeartbeatTimeout)*time.Second,
		),
	}
}
