package testsupport

import (
	"context"
	"testing"

	"traduce/internal/books"
	"traduce/internal/config"
	"traduce/internal/queue"
)

// MustOpenStore opens a queue.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *queue.Store {
	t.Helper()

	store, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("queue.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewBook enqueues a source book for tests using the provided store.
func NewBook(t testing.TB, store *queue.Store, source books.SourceBook, targetLanguage string) *queue.Item {
	t.Helper()

	item, err := store.NewBook(context.Background(), source, targetLanguage)
	if err != nil {
		t.Fatalf("store.NewBook: %v", err)
	}
	return item
}
