package workflow

import (
	"context"
	"errors"
	"fmt"

	"traduce/internal/queue"
)

// RunOnce investigates a single stored record synchronously, using the same
// claim and persistence rules as the background loop. Records already being
// checked are refused; finished records are re-investigated.
func (m *Manager) RunOnce(ctx context.Context, id int64) (*queue.Item, error) {
	item, err := m.store.ClaimByID(ctx, id)
	if errors.Is(err, queue.ErrAlreadyClaimed) {
		return nil, fmt.Errorf("queue item %d is already being investigated", id)
	}
	if err != nil {
		return nil, fmt.Errorf("claim queue item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("queue item %d not found", id)
	}

	if err := m.processItem(ctx, item); err != nil {
		return m.store.GetByID(ctx, id)
	}
	return m.store.GetByID(ctx, id)
}
