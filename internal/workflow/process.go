package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"traduce/internal/books"
	"traduce/internal/investigation"
	"traduce/internal/logging"
	"traduce/internal/queue"
	"traduce/internal/scoring"
	"traduce/internal/services"
)

const stageName = "investigation"

func (m *Manager) processItem(ctx context.Context, item *queue.Item) error {
	itemCtx := services.WithItemID(ctx, item.ID)
	itemCtx = services.WithStage(itemCtx, stageName)
	itemCtx = services.WithRequestID(itemCtx, uuid.NewString())
	logger := logging.WithContext(itemCtx, m.logger)

	m.onItemStarted(itemCtx)
	m.setLastItem(item)
	start := time.Now()
	logger.Info("investigation claimed",
		logging.String("title", item.Title),
		logging.String("target_language", item.TargetLanguage))

	var source books.SourceBook
	if err := json.Unmarshal([]byte(item.SourceJSON), &source); err != nil {
		wrapped := services.Wrap(services.ErrValidation, stageName, "decode source", "stored source record is invalid", err)
		m.handleFailure(itemCtx, logger, item, wrapped)
		return wrapped
	}

	result, err := m.investigateWithHeartbeat(itemCtx, source, item)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Debug("investigation interrupted by shutdown")
			return err
		}
		m.handleFailure(itemCtx, logger, item, err)
		return err
	}

	return m.persistResult(itemCtx, logger, item, result, time.Since(start))
}

// investigateWithHeartbeat runs the engine while a background loop stamps
// the item's heartbeat so a crashed daemon leaves a reclaimable record.
func (m *Manager) investigateWithHeartbeat(ctx context.Context, source books.SourceBook, item *queue.Item) (*investigation.Result, error) {
	hbCtx, hbCancel := context.WithCancel(ctx)
	var hbWG sync.WaitGroup
	hbWG.Add(1)
	go m.heartbeat.StartLoop(hbCtx, &hbWG, item.ID)

	result, err := m.engine.Investigate(ctx, source, item.TargetLanguage)
	hbCancel()
	hbWG.Wait()
	return result, err
}

func (m *Manager) persistResult(ctx context.Context, logger *slog.Logger, item *queue.Item, result *investigation.Result, elapsed time.Duration) error {
	breakdown, err := json.Marshal(result.Breakdown)
	if err != nil {
		return fmt.Errorf("encode breakdown: %w", err)
	}
	notes, err := json.Marshal(result.Notes)
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}

	item.Method = string(result.Method)
	item.ConfidenceScore = result.ConfidenceScore
	item.BreakdownJSON = string(breakdown)
	item.NotesJSON = string(notes)
	item.WinnerJSON = ""
	item.ErrorMessage = ""
	item.LastHeartbeat = nil
	if result.Winner != nil {
		winner, err := json.Marshal(result.Winner)
		if err != nil {
			return fmt.Errorf("encode winning candidate: %w", err)
		}
		item.WinnerJSON = string(winner)
	}

	switch result.Method {
	case scoring.MethodConfident:
		item.Status = queue.StatusFound
		item.NeedsReview = false
		item.ReviewReason = ""
		item.SetProgress("Found", fmt.Sprintf("Confident match (score %d)", result.ConfidenceScore))
	case scoring.MethodLowConfidence:
		item.Status = queue.StatusReview
		item.NeedsReview = true
		item.ReviewReason = fmt.Sprintf("low confidence match (score %d)", result.ConfidenceScore)
		item.SetProgress("Review", item.ReviewReason)
	default:
		item.Status = queue.StatusNoMatch
		item.NeedsReview = false
		item.ReviewReason = ""
		item.SetProgress("No match", fmt.Sprintf("No translation found (best score %d)", result.ConfidenceScore))
	}

	if err := m.store.Update(ctx, item); err != nil {
		wrapped := fmt.Errorf("persist investigation result: %w", err)
		logger.Error("failed to persist investigation result", logging.Error(wrapped))
		m.setLastError(wrapped)
		return wrapped
	}

	logger.Info("investigation persisted",
		logging.String("status", string(item.Status)),
		logging.String("method", item.Method),
		logging.Int("score", item.ConfidenceScore),
		logging.Duration("elapsed", elapsed))

	m.setLastItem(item)
	m.notifyResult(ctx, item, result)
	m.checkQueueCompletion(ctx)
	return nil
}

func (m *Manager) handleFailure(ctx context.Context, logger *slog.Logger, item *queue.Item, failure error) {
	status := services.FailureStatus(failure)
	message := strings.TrimSpace(failure.Error())

	switch status {
	case queue.StatusPending:
		item.Status = queue.StatusPending
		item.ErrorMessage = message
		item.LastHeartbeat = nil
		item.SetProgress("Waiting for catalog", "Catalog unavailable, will retry")
	case queue.StatusReview:
		item.Status = queue.StatusReview
		item.NeedsReview = true
		item.ReviewReason = message
		item.ErrorMessage = message
		item.LastHeartbeat = nil
		item.SetProgress("Review", message)
	default:
		item.SetFailed(message)
	}

	logger.Error("investigation failed",
		logging.String("resolved_status", string(item.Status)),
		logging.Error(failure))

	if err := m.store.Update(ctx, item); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Debug("daemon shutting down, could not persist failure")
		} else {
			logger.Error("failed to persist investigation failure", logging.Error(err))
		}
	}

	m.setLastError(failure)
	m.setLastItem(item)
	if status != queue.StatusPending {
		m.notifyError(ctx, item, failure)
	}
	m.checkQueueCompletion(ctx)
}
