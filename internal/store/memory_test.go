package store

import (
	"context"
	"errors"
	"testing"

	"humanizepro/internal/domain"
	"humanizepro/internal/ports"
)

func TestMemoryInsertOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	for _, id := range []string{"p1", "p2", "p3"} {
		if err := m.Insert(ctx, domain.Project{ID: id}); err != nil {
			t.Fatalf("Insert(%s): %v", id, err)
		}
	}
	list, err := m.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"p3", "p2", "p1"}
	for i, p := range list {
		if p.ID != want[i] {
			t.Errorf("list[%d] = %s, want %s", i, p.ID, want[i])
		}
	}
}

func TestMemoryInsertDuplicateID(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if err := m.Insert(ctx, domain.Project{ID: "p1"}); err != nil {
		t.Fatal(err)
	}
	if err := m.Insert(ctx, domain.Project{ID: "p1"}); err == nil {
		t.Error("duplicate insert should fail")
	}
}

func TestMemoryNotFound(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if _, err := m.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get: got %v, want ErrNotFound", err)
	}
	if err := m.Save(ctx, domain.Project{ID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Save: got %v, want ErrNotFound", err)
	}
	if err := m.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete: got %v, want ErrNotFound", err)
	}
}

func TestMemoryDeleteRemovesFromOrder(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.Insert(ctx, domain.Project{ID: "p1"})
	m.Insert(ctx, domain.Project{ID: "p2"})
	if err := m.Delete(ctx, "p1"); err != nil {
		t.Fatal(err)
	}
	list, _ := m.List(ctx)
	if len(list) != 1 || list[0].ID != "p2" {
		t.Errorf("list after delete = %+v", list)
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	scores := domain.DetectionScoreSet{Overall: 50}
	m.Insert(ctx, domain.Project{
		ID:       "p1",
		Versions: []domain.Version{{ID: "v1", CheckScores: &scores}},
	})

	got, _ := m.Get(ctx, "p1")
	got.Versions[0].ID = "mutated"
	got.Versions[0].CheckScores.Overall = 99

	again, _ := m.Get(ctx, "p1")
	if again.Versions[0].ID != "v1" || again.Versions[0].CheckScores.Overall != 50 {
		t.Error("stored project was mutated through a returned copy")
	}
}

func TestQueueFIFOAndDedup(t *testing.T) {
	q := NewQueue()
	q.EnqueueUpsert("p1")
	q.EnqueueUpsert("p1") // consecutive duplicate collapses
	q.EnqueueDelete("p1")
	q.EnqueueUpsert("p2")

	if q.Len() != 3 {
		t.Fatalf("Len = %d, want 3", q.Len())
	}
	item, ok := q.ClaimNext()
	if !ok || item.ProjectID != "p1" || item.Op != ports.SyncUpsert {
		t.Errorf("first item = %+v ok=%v", item, ok)
	}
	item, _ = q.ClaimNext()
	if item.ProjectID != "p1" {
		t.Errorf("second item = %+v", item)
	}
	item, _ = q.ClaimNext()
	if item.ProjectID != "p2" {
		t.Errorf("third item = %+v", item)
	}
	if _, ok := q.ClaimNext(); ok {
		t.Error("queue should be empty")
	}
}
