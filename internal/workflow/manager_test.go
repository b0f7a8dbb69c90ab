package workflow_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"traduce/internal/books"
	"traduce/internal/investigation"
	"traduce/internal/notifications"
	"traduce/internal/queue"
	"traduce/internal/scoring"
	"traduce/internal/services"
	"traduce/internal/testsupport"
	"traduce/internal/workflow"
)

type stubEngine struct {
	mu       sync.Mutex
	result   *investigation.Result
	err      error
	failures int
	calls    int
}

func (s *stubEngine) Investigate(_ context.Context, _ books.SourceBook, _ string) (*investigation.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failures > 0 {
		s.failures--
		return nil, s.err
	}
	if s.err != nil && s.result == nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubEngine) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubNotifier struct {
	mu     sync.Mutex
	events []notifications.Event
}

func (s *stubNotifier) Publish(_ context.Context, event notifications.Event, _ notifications.Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *stubNotifier) saw(event notifications.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, seen := range s.events {
		if seen == event {
			return true
		}
	}
	return false
}

func sampleSource() books.SourceBook {
	return books.SourceBook{
		Title:    "El Reino",
		Authors:  []string{"Jordi Galcerán"},
		Year:     2015,
		Language: "es",
	}
}

func startManager(t *testing.T, engine workflow.Engine, notifier notifications.Service) (*queue.Store, *workflow.Manager, *queue.Item) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	cfg.Workflow.QueuePollInterval = 1
	cfg.Workflow.ErrorRetryInterval = 1
	store := testsupport.MustOpenStore(t, cfg)
	item := testsupport.NewBook(t, store, sampleSource(), "en")

	manager := workflow.NewManagerWithNotifier(cfg, store, engine, nil, notifier)
	if err := manager.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(manager.Stop)
	return store, manager, item
}

func waitForItem(t *testing.T, store *queue.Store, id int64, accept func(*queue.Item) bool) *queue.Item {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		item, err := store.GetByID(context.Background(), id)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if item != nil && accept(item) {
			return item
		}
		time.Sleep(25 * time.Millisecond)
	}
	t.Fatal("timed out waiting for queue item state")
	return nil
}

func TestManagerPersistsConfidentMatch(t *testing.T) {
	winner := books.Candidate{VolumeID: "vol-1", Title: "The Kingdom", Language: "en"}
	engine := &stubEngine{result: &investigation.Result{
		Found:           true,
		Method:          scoring.MethodConfident,
		ConfidenceScore: 95,
		Breakdown:       scoring.Breakdown{AuthorMatch: 40, TitleSimilarity: 40, ISBNLinked: 10, DateReasonable: 5, Total: 95},
		Winner:          &winner,
		Notes:           []string{"query \"intitle:...\" returned 1 items, 1 candidates accepted"},
	}}
	notifier := &stubNotifier{}
	store, _, item := startManager(t, engine, notifier)

	updated := waitForItem(t, store, item.ID, func(i *queue.Item) bool {
		return i.Status == queue.StatusFound
	})
	if updated.Method != string(scoring.MethodConfident) {
		t.Fatalf("method = %q, want confident", updated.Method)
	}
	if updated.ConfidenceScore != 95 {
		t.Fatalf("score = %d, want 95", updated.ConfidenceScore)
	}
	if !strings.Contains(updated.WinnerJSON, "The Kingdom") {
		t.Fatalf("winner JSON missing candidate: %q", updated.WinnerJSON)
	}
	if updated.BreakdownJSON == "" || updated.NotesJSON == "" {
		t.Fatal("expected breakdown and notes persisted")
	}
	if updated.NeedsReview {
		t.Fatal("confident match should not need review")
	}
	if !notifier.saw(notifications.EventMatchFound) {
		t.Fatal("expected match-found notification")
	}
}

func TestManagerRoutesLowConfidenceToReview(t *testing.T) {
	engine := &stubEngine{result: &investigation.Result{
		Found:           true,
		Method:          scoring.MethodLowConfidence,
		ConfidenceScore: 55,
		Breakdown:       scoring.Breakdown{AuthorMatch: 40, CategoryMatch: 5, TitleSimilarity: 10, Total: 55},
		Winner:          &books.Candidate{VolumeID: "vol-2", Title: "Kingdoms"},
	}}
	notifier := &stubNotifier{}
	store, _, item := startManager(t, engine, notifier)

	updated := waitForItem(t, store, item.ID, func(i *queue.Item) bool {
		return i.Status == queue.StatusReview
	})
	if !updated.NeedsReview {
		t.Fatal("expected needs-review flag")
	}
	if !strings.Contains(updated.ReviewReason, "55") {
		t.Fatalf("review reason = %q, want score mention", updated.ReviewReason)
	}
	if !notifier.saw(notifications.EventReviewNeeded) {
		t.Fatal("expected review notification")
	}
}

func TestManagerRecordsNoMatch(t *testing.T) {
	engine := &stubEngine{result: &investigation.Result{
		Method: scoring.MethodNotFound,
		Notes:  []string{"no candidates found in target language"},
	}}
	store, _, item := startManager(t, engine, &stubNotifier{})

	updated := waitForItem(t, store, item.ID, func(i *queue.Item) bool {
		return i.Status == queue.StatusNoMatch
	})
	if updated.WinnerJSON != "" {
		t.Fatalf("expected no winner persisted, got %q", updated.WinnerJSON)
	}
	if updated.Method != string(scoring.MethodNotFound) {
		t.Fatalf("method = %q, want not_found", updated.Method)
	}
}

func TestManagerRequeuesAndRetriesOnCatalogOutage(t *testing.T) {
	engine := &stubEngine{
		err:      services.Wrap(services.ErrCatalogUnavailable, "investigation", "catalog search", "", errors.New("503")),
		failures: 1,
		result:   &investigation.Result{Method: scoring.MethodNotFound},
	}
	store, _, item := startManager(t, engine, &stubNotifier{})

	updated := waitForItem(t, store, item.ID, func(i *queue.Item) bool {
		return i.Status == queue.StatusNoMatch
	})
	if engine.callCount() < 2 {
		t.Fatalf("expected a requeued retry, engine ran %d times", engine.callCount())
	}
	if updated.ErrorMessage != "" {
		t.Fatalf("error message should clear after successful retry, got %q", updated.ErrorMessage)
	}
}

func TestManagerMarksUnexpectedErrorFailed(t *testing.T) {
	engine := &stubEngine{err: errors.New("scoring exploded")}
	notifier := &stubNotifier{}
	store, _, item := startManager(t, engine, notifier)

	updated := waitForItem(t, store, item.ID, func(i *queue.Item) bool {
		return i.Status == queue.StatusFailed
	})
	if !strings.Contains(updated.ErrorMessage, "scoring exploded") {
		t.Fatalf("error message = %q", updated.ErrorMessage)
	}
	if !notifier.saw(notifications.EventError) {
		t.Fatal("expected error notification")
	}
}

func TestManagerRoutesValidationFailureToReview(t *testing.T) {
	engine := &stubEngine{err: services.Wrap(services.ErrValidation, "investigation", "validate", "unrecognized target language", nil)}
	store, _, item := startManager(t, engine, &stubNotifier{})

	updated := waitForItem(t, store, item.ID, func(i *queue.Item) bool {
		return i.Status == queue.StatusReview
	})
	if !updated.NeedsReview {
		t.Fatal("expected needs-review flag")
	}
	if !strings.Contains(updated.ReviewReason, "unrecognized target language") {
		t.Fatalf("review reason = %q", updated.ReviewReason)
	}
}

func TestManagerStatusReportsQueueStats(t *testing.T) {
	engine := &stubEngine{result: &investigation.Result{Method: scoring.MethodNotFound}}
	store, manager, item := startManager(t, engine, &stubNotifier{})

	waitForItem(t, store, item.ID, func(i *queue.Item) bool {
		return i.Status == queue.StatusNoMatch
	})
	summary := manager.Status(context.Background())
	if !summary.Running {
		t.Fatal("expected running manager")
	}
	if summary.QueueStats[queue.StatusNoMatch] != 1 {
		t.Fatalf("stats = %v, want one no_match", summary.QueueStats)
	}
}
