package main

import (
	"context"
	"testing"

	"traduce/internal/books"
	"traduce/internal/queue"
	"traduce/internal/testsupport"
)

func TestQueueRetryRequeuesFailedItems(t *testing.T) {
	env := setupCLITestEnv(t)
	ctx := context.Background()

	item := testsupport.NewBook(t, env.store, books.SourceBook{Title: "Alpha", Language: "en"}, "es")
	item.SetFailed("catalog exploded")
	if err := env.store.Update(ctx, item); err != nil {
		t.Fatalf("fail item: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "queue", "retry")
	if err != nil {
		t.Fatalf("queue retry: %v", err)
	}
	requireContains(t, out, "Requeued 1 items")

	updated, err := env.store.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if updated.Status != queue.StatusPending {
		t.Fatalf("status = %s, want pending", updated.Status)
	}
	if updated.ErrorMessage != "" {
		t.Fatalf("error message not cleared: %q", updated.ErrorMessage)
	}
}

func TestQueueClearFinishedKeepsPending(t *testing.T) {
	env := setupCLITestEnv(t)
	ctx := context.Background()

	testsupport.NewBook(t, env.store, books.SourceBook{Title: "Pending", Language: "en"}, "es")
	done := testsupport.NewBook(t, env.store, books.SourceBook{Title: "Done", Language: "en"}, "fr")
	done.Status = queue.StatusNoMatch
	if err := env.store.Update(ctx, done); err != nil {
		t.Fatalf("finish item: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "queue", "clear")
	if err != nil {
		t.Fatalf("queue clear: %v", err)
	}
	requireContains(t, out, "Removed 1 items")

	remaining, err := env.store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Title != "Pending" {
		t.Fatalf("unexpected remaining items: %+v", remaining)
	}
}

func TestQueueClearFailed(t *testing.T) {
	env := setupCLITestEnv(t)
	ctx := context.Background()

	item := testsupport.NewBook(t, env.store, books.SourceBook{Title: "Broken", Language: "en"}, "es")
	item.SetFailed("boom")
	if err := env.store.Update(ctx, item); err != nil {
		t.Fatalf("fail item: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "queue", "clear-failed")
	if err != nil {
		t.Fatalf("queue clear-failed: %v", err)
	}
	requireContains(t, out, "Removed 1 failed items")
}

func TestQueueStats(t *testing.T) {
	env := setupCLITestEnv(t)
	ctx := context.Background()

	testsupport.NewBook(t, env.store, books.SourceBook{Title: "One", Language: "en"}, "es")
	two := testsupport.NewBook(t, env.store, books.SourceBook{Title: "Two", Language: "en"}, "fr")
	two.Status = queue.StatusFound
	if err := env.store.Update(ctx, two); err != nil {
		t.Fatalf("mark found: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "queue", "stats")
	if err != nil {
		t.Fatalf("queue stats: %v", err)
	}
	requireContains(t, out, "Pending")
	requireContains(t, out, "Found")
}
