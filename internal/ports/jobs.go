package ports

// SyncOp is the kind of pending remote write.
type SyncOp int

const (
	SyncUpsert SyncOp = iota
	SyncDelete
)

// SyncItem is one pending remote write for a project.
type SyncItem struct {
	Op        SyncOp
	ProjectID string
}

// SyncQueue collects pending remote writes enqueued on explicit user actions
// and hands them to the sync workers.
type SyncQueue interface {
	EnqueueUpsert(projectID string)
	EnqueueDelete(projectID string)
	ClaimNext() (item SyncItem, found bool)
}
