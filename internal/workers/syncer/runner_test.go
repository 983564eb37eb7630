package syncer

import (
	"context"
	"sync"
	"testing"

	"humanizepro/internal/domain"
	"humanizepro/internal/ports"
	"humanizepro/internal/store"
	"humanizepro/pkg/logger"
)

type fakeRemote struct {
	mu      sync.Mutex
	upserts []string
	removes []string
}

func (f *fakeRemote) Upsert(_ context.Context, p domain.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts = append(f.upserts, p.ID)
	return nil
}

func (f *fakeRemote) Remove(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removes = append(f.removes, id)
	return nil
}

func (f *fakeRemote) List(_ context.Context) ([]domain.Project, error) { return nil, nil }

func TestProcessUpsert(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemory()
	repo.Insert(ctx, domain.Project{ID: "p1", Title: "one"})
	remote := &fakeRemote{}

	err := Process(ctx, repo, remote, ports.SyncItem{Op: ports.SyncUpsert, ProjectID: "p1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(remote.upserts) != 1 || remote.upserts[0] != "p1" {
		t.Errorf("upserts = %v", remote.upserts)
	}
}

func TestProcessUpsertForDeletedProjectIsNoop(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{}
	err := Process(ctx, store.NewMemory(), remote, ports.SyncItem{Op: ports.SyncUpsert, ProjectID: "gone"})
	if err != nil {
		t.Fatal(err)
	}
	if len(remote.upserts) != 0 {
		t.Errorf("deleted project should not be upserted: %v", remote.upserts)
	}
}

func TestProcessDelete(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{}
	err := Process(ctx, store.NewMemory(), remote, ports.SyncItem{Op: ports.SyncDelete, ProjectID: "p1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(remote.removes) != 1 || remote.removes[0] != "p1" {
		t.Errorf("removes = %v", remote.removes)
	}
}

func TestDrainFlushesQueue(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemory()
	repo.Insert(ctx, domain.Project{ID: "p1"})
	repo.Insert(ctx, domain.Project{ID: "p2"})
	queue := store.NewQueue()
	queue.EnqueueUpsert("p1")
	queue.EnqueueUpsert("p2")
	queue.EnqueueDelete("p3")
	remote := &fakeRemote{}

	Drain(ctx, queue, repo, remote, logger.Nop())

	if queue.Len() != 0 {
		t.Errorf("queue not drained, %d left", queue.Len())
	}
	if len(remote.upserts) != 2 || len(remote.removes) != 1 {
		t.Errorf("upserts=%v removes=%v", remote.upserts, remote.removes)
	}
}
