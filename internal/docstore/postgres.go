package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dokim/shuttleboard/internal/domain"
)

// notifyChannel is the Postgres NOTIFY channel all document writes fire on.
// The payload is "collection/doc_id"; subscribers filter by ref.
const notifyChannel = "app_documents"

// Postgres implements Store on a single app_documents table with one JSONB
// row per document. Merge-writes use the JSONB || operator (shallow field
// merge, Firestore-style), field patches use jsonb_set / #-, and a trigger
// pg_notify's on every write so subscriptions ride LISTEN/NOTIFY.
type Postgres struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

var _ Store = (*Postgres)(nil)

// NewPostgres constructs a Postgres store on the given pool.
// A nil logger falls back to slog.Default.
func NewPostgres(pool *pgxpool.Pool, log *slog.Logger) *Postgres {
	if log == nil {
		log = slog.Default()
	}
	return &Postgres{pool: pool, log: log}
}

// Read returns the document's JSONB data.
func (s *Postgres) Read(ctx context.Context, ref Ref) ([]byte, error) {
	const q = `
		SELECT data
		FROM app_documents
		WHERE collection = @collection AND doc_id = @doc_id`

	var data []byte
	err := s.pool.QueryRow(ctx, q, pgx.NamedArgs{
		"collection": ref.Collection,
		"doc_id":     ref.Doc,
	}).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("docstore.Postgres.Read: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("docstore.Postgres.Read: %w", err)
	}
	return data, nil
}

// Merge upserts the document and shallow-merges fields into its data.
func (s *Postgres) Merge(ctx context.Context, ref Ref, fields map[string]any) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("docstore.Postgres.Merge: marshal: %w", err)
	}

	const q = `
		INSERT INTO app_documents (collection, doc_id, data)
		VALUES (@collection, @doc_id, @data::jsonb)
		ON CONFLICT (collection, doc_id)
		DO UPDATE SET data = app_documents.data || EXCLUDED.data,
		              updated_at = now()`

	_, err = s.pool.Exec(ctx, q, pgx.NamedArgs{
		"collection": ref.Collection,
		"doc_id":     ref.Doc,
		"data":       string(payload),
	})
	if err != nil {
		return fmt.Errorf("docstore.Postgres.Merge: %w", err)
	}
	return nil
}

// SetField patches one nested field, creating the document if absent.
func (s *Postgres) SetField(ctx context.Context, ref Ref, path []string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("docstore.Postgres.SetField: marshal: %w", err)
	}

	const q = `
		INSERT INTO app_documents (collection, doc_id, data)
		VALUES (@collection, @doc_id, jsonb_set('{}'::jsonb, @path, @value::jsonb, true))
		ON CONFLICT (collection, doc_id)
		DO UPDATE SET data = jsonb_set(app_documents.data, @path, @value::jsonb, true),
		              updated_at = now()`

	_, err = s.pool.Exec(ctx, q, pgx.NamedArgs{
		"collection": ref.Collection,
		"doc_id":     ref.Doc,
		"path":       path,
		"value":      string(payload),
	})
	if err != nil {
		return fmt.Errorf("docstore.Postgres.SetField: %w", err)
	}
	return nil
}

// DeleteField removes one nested field. Missing documents are a no-op.
func (s *Postgres) DeleteField(ctx context.Context, ref Ref, path []string) error {
	const q = `
		UPDATE app_documents
		SET data = data #- @path, updated_at = now()
		WHERE collection = @collection AND doc_id = @doc_id`

	_, err := s.pool.Exec(ctx, q, pgx.NamedArgs{
		"collection": ref.Collection,
		"doc_id":     ref.Doc,
		"path":       path,
	})
	if err != nil {
		return fmt.Errorf("docstore.Postgres.DeleteField: %w", err)
	}
	return nil
}

// Subscribe LISTENs on a dedicated connection and re-reads the document on
// every matching notification. The initial snapshot is delivered first; a
// document that does not exist yet yields an empty snapshot.
func (s *Postgres) Subscribe(ctx context.Context, ref Ref) (<-chan Snapshot, CancelFunc, error) {
	subCtx, cancelCtx := context.WithCancel(ctx)

	conn, err := s.pool.Acquire(subCtx)
	if err != nil {
		cancelCtx()
		return nil, nil, fmt.Errorf("docstore.Postgres.Subscribe: acquire: %w", err)
	}
	if _, err := conn.Exec(subCtx, "LISTEN "+notifyChannel); err != nil {
		conn.Release()
		cancelCtx()
		return nil, nil, fmt.Errorf("docstore.Postgres.Subscribe: listen: %w", err)
	}

	ch := make(chan Snapshot, 8)

	go func() {
		defer close(ch)
		defer func() {
			// A connection with LISTEN active must not return to the pool.
			_ = conn.Conn().Close(context.Background())
			conn.Release()
		}()

		if !s.deliver(subCtx, ch, ref) {
			return
		}

		for {
			n, err := conn.Conn().WaitForNotification(subCtx)
			if err != nil {
				if subCtx.Err() == nil {
					s.log.Error("docstore: notification wait failed",
						"collection", ref.Collection, "doc", ref.Doc, "error", err)
				}
				return
			}
			if n.Payload != ref.Collection+"/"+ref.Doc {
				continue
			}
			if !s.deliver(subCtx, ch, ref) {
				return
			}
		}
	}()

	var once sync.Once
	cancel := func() { once.Do(cancelCtx) }
	return ch, cancel, nil
}

// deliver reads the document and pushes a snapshot. Returns false when the
// subscription context is done.
func (s *Postgres) deliver(ctx context.Context, ch chan<- Snapshot, ref Ref) bool {
	data, err := s.Read(ctx, ref)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			data = []byte("{}")
		} else {
			if ctx.Err() == nil {
				s.log.Error("docstore: snapshot read failed",
					"collection", ref.Collection, "doc", ref.Doc, "error", err)
			}
			return ctx.Err() == nil
		}
	}
	select {
	case ch <- Snapshot{Ref: ref, Data: data}:
		return true
	case <-ctx.Done():
		return false
	}
}
