package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"traduce/internal/investigation"
	"traduce/internal/logging"
	"traduce/internal/notifications"
	"traduce/internal/queue"
	"traduce/internal/scoring"
)

func (m *Manager) notifyResult(ctx context.Context, item *queue.Item, result *investigation.Result) {
	if m.notifier == nil || result == nil {
		return
	}
	var event notifications.Event
	payload := notifications.Payload{"title": item.Title}
	switch result.Method {
	case scoring.MethodConfident:
		event = notifications.EventMatchFound
		payload["score"] = result.ConfidenceScore
		if result.Winner != nil {
			payload["candidate"] = result.Winner.Title
		}
	case scoring.MethodLowConfidence:
		event = notifications.EventReviewNeeded
		payload["reason"] = item.ReviewReason
	default:
		return
	}
	if err := m.notifier.Publish(ctx, event, payload); err != nil {
		m.notifyLogWarn(ctx, "result notification failed", err)
	}
}

func (m *Manager) notifyError(ctx context.Context, item *queue.Item, failure error) {
	if m.notifier == nil || failure == nil {
		return
	}
	contextLabel := fmt.Sprintf("%s (item #%d)", stageName, item.ID)
	if err := m.notifier.Publish(ctx, notifications.EventError, notifications.Payload{
		"error":   failure,
		"context": contextLabel,
	}); err != nil {
		m.notifyLogWarn(ctx, "error notification failed", err)
	}
}

func (m *Manager) onItemStarted(ctx context.Context) {
	if m.notifier == nil {
		return
	}
	stats, err := m.store.Stats(ctx)
	if err != nil {
		m.notifyLogWarn(ctx, "queue stats unavailable for start notification", err)
		return
	}
	m.mu.Lock()
	if m.queueActive {
		m.mu.Unlock()
		return
	}
	m.queueActive = true
	m.queueStart = time.Now()
	m.mu.Unlock()

	count := stats[queue.StatusPending] + stats[queue.StatusChecking]
	if err := m.notifier.Publish(ctx, notifications.EventQueueStarted, notifications.Payload{"count": count}); err != nil {
		m.notifyLogWarn(ctx, "queue start notification failed", err)
	}
}

func (m *Manager) checkQueueCompletion(ctx context.Context) {
	if m.notifier == nil {
		return
	}
	stats, err := m.store.Stats(ctx)
	if err != nil {
		m.notifyLogWarn(ctx, "queue stats unavailable for completion notification", err)
		return
	}
	if active := stats[queue.StatusPending] + stats[queue.StatusChecking]; active > 0 {
		return
	}

	m.mu.Lock()
	if !m.queueActive {
		m.mu.Unlock()
		return
	}
	start := m.queueStart
	m.queueActive = false
	m.queueStart = time.Time{}
	m.mu.Unlock()

	duration := time.Duration(0)
	if !start.IsZero() {
		duration = time.Since(start)
	}
	processed := stats[queue.StatusFound] + stats[queue.StatusNoMatch] + stats[queue.StatusReview]
	failed := stats[queue.StatusFailed]
	if err := m.notifier.Publish(ctx, notifications.EventQueueCompleted, notifications.Payload{
		"processed": processed,
		"failed":    failed,
		"duration":  duration,
	}); err != nil {
		m.notifyLogWarn(ctx, "queue completion notification failed", err)
	}
}

func (m *Manager) notifyLogWarn(ctx context.Context, message string, err error) {
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		m.logger.Debug("daemon shutting down, notification skipped")
		return
	}
	m.logger.Debug(message, logging.Error(err))
}
