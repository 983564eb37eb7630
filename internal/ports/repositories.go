package ports

import (
	"context"

	"humanizepro/internal/domain"
)

// ProjectRepository is the authoritative in-process project collection,
// ordered newest first.
type ProjectRepository interface {
	Insert(ctx context.Context, p domain.Project) error
	Get(ctx context.Context, id string) (domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	Save(ctx context.Context, p domain.Project) error
	Delete(ctx context.Context, id string) error
}

// RemoteProjectStore is the opportunistic durable copy of the collection.
// Writes to it are best effort and happen off the request path.
type RemoteProjectStore interface {
	Upsert(ctx context.Context, p domain.Project) error
	Remove(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Project, error)
}
