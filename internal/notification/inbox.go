package notification

import (
	"context"
	"sync"
)

// Inbox remembers which orders were already notified so a replayed event is
// reacted to at most once per claim.
type Inbox interface {
	// Claim reports true only for the first caller to claim orderID.
	Claim(ctx context.Context, orderID string) (bool, error)
	// Release drops a claim so the order can be notified again.
	Release(ctx context.Context, orderID string) error
}

// MemoryInbox deduplicates for the lifetime of the process only.
type MemoryInbox struct {
	mu      sync.Mutex
	claimed map[string]struct{}
}

func NewMemoryInbox() *MemoryInbox {
	return &MemoryInbox{claimed: make(map[string]struct{})}
}

func (i *MemoryInbox) Claim(_ context.Context, orderID string) (bool, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if _, ok := i.claimed[orderID]; ok {
		return false, nil
	}
	i.claimed[orderID] = struct{}{}
	return true, nil
}

func (i *MemoryInbox) Release(_ context.Context, orderID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	delete(i.claimed, orderID)
	return nil
}
