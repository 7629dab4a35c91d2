package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/wraplayout/pkg/errors"
	"github.com/matzehuels/wraplayout/pkg/scene"
)

// MemoryStore keeps results in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	results map[string]scene.Result
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		results: make(map[string]scene.Result),
		now:     time.Now,
	}
}

func (s *MemoryStore) Save(ctx context.Context, res scene.Result) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	res.ID = uuid.NewString()
	res.CreatedAt = s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[res.ID] = cloneResult(res)
	return res.ID, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (scene.Result, error) {
	if err := ctx.Err(); err != nil {
		return scene.Result{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.results[id]
	if !ok {
		return scene.Result{}, errors.New(errors.ErrCodeNotFound, "layout %q not found", id)
	}
	return cloneResult(res), nil
}

// Len returns the number of stored results.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}

func (s *MemoryStore) Close() error { return nil }

// cloneResult copies the slices of res so callers cannot mutate stored data.
func cloneResult(res scene.Result) scene.Result {
	lines := make([]scene.ResultLine, len(res.Lines))
	for i, l := range res.Lines {
		l.Items = append([]string(nil), l.Items...)
		lines[i] = l
	}
	res.Lines = lines
	res.Items = append([]scene.Placed(nil), res.Items...)
	return res
}

var _ Store = (*MemoryStore)(nil)
