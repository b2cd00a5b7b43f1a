package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dokim/shuttleboard/internal/domain"
)

// Memory is an in-process Store with the same semantics as the Postgres
// implementation. It backs unit tests and store-less local runs.
type Memory struct {
	mu   sync.Mutex
	docs map[Ref]map[string]any
	subs map[Ref][]chan Snapshot
}

var _ Store = (*Memory)(nil)

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		docs: map[Ref]map[string]any{},
		subs: map[Ref][]chan Snapshot{},
	}
}

// Read returns the document's data as JSON.
func (s *Memory) Read(_ context.Context, ref Ref) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[ref]
	if !ok {
		return nil, fmt.Errorf("docstore.Memory.Read: %w", domain.ErrNotFound)
	}
	return marshalDoc(doc)
}

// Merge shallow-merges fields into the document, creating it if absent.
func (s *Memory) Merge(_ context.Context, ref Ref, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.docs[ref]
	if doc == nil {
		doc = map[string]any{}
		s.docs[ref] = doc
	}
	for k, v := range fields {
		doc[k] = normalize(v)
	}
	s.notifyLocked(ref)
	return nil
}

// SetField sets one nested field, creating intermediate objects as needed.
func (s *Memory) SetField(_ context.Context, ref Ref, path []string, value any) error {
	if len(path) == 0 {
		return fmt.Errorf("docstore.Memory.SetField: %w: empty path", domain.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.docs[ref]
	if doc == nil {
		doc = map[string]any{}
		s.docs[ref] = doc
	}

	node := doc
	for _, key := range path[:len(path)-1] {
		child, ok := node[key].(map[string]any)
		if !ok {
			child = map[string]any{}
			node[key] = child
		}
		node = child
	}
	node[path[len(path)-1]] = normalize(value)
	s.notifyLocked(ref)
	return nil
}

// DeleteField removes one nested field; missing paths are a no-op.
func (s *Memory) DeleteField(_ context.Context, ref Ref, path []string) error {
	if len(path) == 0 {
		return fmt.Errorf("docstore.Memory.DeleteField: %w: empty path", domain.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.docs[ref]
	if doc == nil {
		return nil
	}

	node := doc
	for _, key := range path[:len(path)-1] {
		child, ok := node[key].(map[string]any)
		if !ok {
			return nil
		}
		node = child
	}
	if _, ok := node[path[len(path)-1]]; !ok {
		return nil
	}
	delete(node, path[len(path)-1])
	s.notifyLocked(ref)
	return nil
}

// Subscribe delivers the current snapshot followed by one per change.
func (s *Memory) Subscribe(_ context.Context, ref Ref) (<-chan Snapshot, CancelFunc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Snapshot, 64)
	s.subs[ref] = append(s.subs[ref], ch)

	data, err := marshalDoc(s.docs[ref])
	if err != nil {
		return nil, nil, err
	}
	ch <- Snapshot{Ref: ref, Data: data}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			subs := s.subs[ref]
			for i, c := range subs {
				if c == ch {
					s.subs[ref] = append(subs[:i], subs[i+1:]...)
					break
				}
			}
			close(ch)
		})
	}
	return ch, cancel, nil
}

// notifyLocked pushes the current snapshot to every subscriber of ref.
// Caller holds s.mu. Slow subscribers drop notifications rather than block;
// each snapshot is a full document, so a later one supersedes anything
// dropped.
func (s *Memory) notifyLocked(ref Ref) {
	subs := s.subs[ref]
	if len(subs) == 0 {
		return
	}
	data, err := marshalDoc(s.docs[ref])
	if err != nil {
		return
	}
	for _, ch := range subs {
		select {
		case ch <- Snapshot{Ref: ref, Data: data}:
		default:
		}
	}
}

// marshalDoc renders a document as JSON; nil documents render as "{}".
func marshalDoc(doc map[string]any) ([]byte, error) {
	if doc == nil {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("docstore.Memory: marshal: %w", err)
	}
	return data, nil
}

// normalize round-trips a value through JSON so stored shapes match what a
// real document store would hand back (structs become maps, ints become
// float64). Unmarshalable values store as nil.
func normalize(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}
