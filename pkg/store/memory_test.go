package store

import (
	"context"
	"testing"

	"github.com/matzehuels/layerflow/pkg/ir"
)

func TestMemoryStoreSaveLoadRoundTrips(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	g := ir.Graph[int]{Version: ir.CurrentVersion, Width: 10, Height: 10}

	if err := s.Save(ctx, "a", g); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load(ctx, "a")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != "a" || got.Graph.Width != 10 {
		t.Errorf("unexpected entry: %+v", got)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestMemoryStoreLoadMissingReturnsErrNotFound(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Load(context.Background(), "missing")
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreSaveTwicePreservesCreatedAt(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	g := ir.Graph[int]{Version: ir.CurrentVersion}

	if err := s.Save(ctx, "a", g); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	first, _ := s.Load(ctx, "a")

	if err := s.Save(ctx, "a", g); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	second, _ := s.Load(ctx, "a")

	if !first.CreatedAt.Equal(second.CreatedAt) {
		t.Errorf("CreatedAt changed across saves: %v -> %v", first.CreatedAt, second.CreatedAt)
	}
}

func TestMemoryStoreListOrdersByMostRecentlyUpdated(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	g := ir.Graph[int]{Version: ir.CurrentVersion}

	_ = s.Save(ctx, "first", g)
	_ = s.Save(ctx, "second", g)
	_ = s.Save(ctx, "first", g) // re-save bumps UpdatedAt

	names, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 2 || names[0] != "first" {
		t.Errorf("expected [first, second], got %v", names)
	}
}

func TestMemoryStoreDeleteIsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	if err := s.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("deleting a missing entry should not error: %v", err)
	}

	_ = s.Save(ctx, "a", ir.Graph[int]{Version: ir.CurrentVersion})
	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load(ctx, "a"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
