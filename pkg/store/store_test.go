package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/wraplayout/pkg/core/wrap"
	"github.com/matzehuels/wraplayout/pkg/errors"
	"github.com/matzehuels/wraplayout/pkg/scene"
)

func sampleResult() scene.Result {
	return scene.Result{
		AvailableWidth:    200,
		HorizontalSpacing: 4,
		VerticalSpacing:   16,
		Size:              wrap.Size{Width: 94, Height: 20},
		Lines: []scene.ResultLine{
			{Width: 94, Height: 20, Items: []string{"a", "b"}},
		},
		Items: []scene.Placed{
			{ID: "a", Kind: scene.KindBox, Width: 40, Height: 20},
			{ID: "b", Kind: scene.KindBox, X: 44, Width: 50, Height: 20},
		},
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	id, err := s.Save(ctx, sampleResult())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id == "" {
		t.Fatal("Save returned empty id")
	}

	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != id {
		t.Errorf("ID = %q, want %q", got.ID, id)
	}
	if !got.CreatedAt.Equal(fixed) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, fixed)
	}
	if got.Size != (wrap.Size{Width: 94, Height: 20}) || len(got.Items) != 2 {
		t.Errorf("Get returned %+v", got)
	}
}

func TestMemoryStoreDistinctIDs(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	a, _ := s.Save(ctx, sampleResult())
	b, _ := s.Save(ctx, sampleResult())
	if a == b {
		t.Errorf("two saves returned the same id %q", a)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get(missing) error = %v, want NOT_FOUND", err)
	}
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	res := sampleResult()
	id, _ := s.Save(ctx, res)
	res.Items[0].X = 999
	res.Lines[0].Items[0] = "zzz"

	got, _ := s.Get(ctx, id)
	if got.Items[0].X != 0 || got.Lines[0].Items[0] != "a" {
		t.Error("mutating the saved value changed the stored result")
	}

	got.Items[1].X = 999
	again, _ := s.Get(ctx, id)
	if again.Items[1].X != 44 {
		t.Error("mutating a fetched value changed the stored result")
	}
}

func TestMemoryStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := s.Save(ctx, sampleResult())
			if err != nil {
				t.Errorf("Save: %v", err)
				return
			}
			if _, err := s.Get(ctx, id); err != nil {
				t.Errorf("Get: %v", err)
			}
		}()
	}
	wg.Wait()
	if s.Len() != 20 {
		t.Errorf("Len() = %d, want 20", s.Len())
	}
}

func TestMemoryStoreCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewMemoryStore().Save(ctx, sampleResult()); err == nil {
		t.Error("Save with canceled context should fail")
	}
}

func TestNewMongoStoreRequiresURI(t *testing.T) {
	_, err := NewMongoStore(context.Background(), MongoConfig{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("NewMongoStore() error = %v, want INVALID_INPUT", err)
	}
}
