// Package docstore contains the document store port the board talks to.
// The board only needs "read whole document, subscribe to changes,
// merge-write fields, patch single fields" — any store with those semantics
// can sit behind the Store interface. The production implementation is
// Postgres (one JSONB row per document, LISTEN/NOTIFY for subscriptions);
// an in-memory implementation backs tests and local runs.
package docstore

import "context"

// Ref addresses one document. Collection and Doc are opaque strings from the
// board's perspective.
type Ref struct {
	Collection string
	Doc        string
}

// Snapshot is one decoded-at-the-edge view of a document: the raw JSON bytes
// of its data at some point in time.
type Snapshot struct {
	Ref  Ref
	Data []byte
}

// CancelFunc stops a subscription. It is safe to call more than once and
// stops all future deliveries deterministically.
type CancelFunc func()

// Store is the document store port.
type Store interface {
	// Read returns the document's data as raw JSON.
	// Returns domain.ErrNotFound when the document does not exist.
	Read(ctx context.Context, ref Ref) ([]byte, error)

	// Merge writes the given top-level fields into the document, creating it
	// if absent. Fields not named are left untouched (merge semantics).
	Merge(ctx context.Context, ref Ref, fields map[string]any) error

	// SetField sets one nested field addressed by path, creating the
	// document and intermediate objects as needed. Used for single done-map
	// keys to keep write size minimal.
	SetField(ctx context.Context, ref Ref, path []string, value any) error

	// DeleteField removes one nested field addressed by path. Removing a
	// missing field or document is a no-op.
	DeleteField(ctx context.Context, ref Ref, path []string) error

	// Subscribe delivers the current snapshot followed by one snapshot per
	// change until cancelled. The channel is closed after cancellation.
	Subscribe(ctx context.Context, ref Ref) (<-chan Snapshot, CancelFunc, error)
}
