package reminder

import "context"

// EventStore holds the full reminder list. Save replaces the list wholesale:
// the store is single-writer and the last writer wins, there is no merge.
// Watch delivers a signal whenever any writer (this process or another one)
// saves the list; receivers are expected to reload and reconcile.
type EventStore interface {
	Load(ctx context.Context) ([]Event, error)
	Save(ctx context.Context, events []Event) error
	Watch(ctx context.Context) (<-chan struct{}, error)
}
