package repositories

import "context"

// PendingRegistry tracks the transactions this client currently believes
// are pending, so the poller re-checks exactly what a user-facing pass
// observed in flight. Entries are TTL-bounded; a transaction the registry
// forgot is simply no longer polled.
type PendingRegistry interface {
	Track(ctx context.Context, transactionID string) error
	Remove(ctx context.Context, transactionID string) error
	List(ctx context.Context) ([]string, error)
}
