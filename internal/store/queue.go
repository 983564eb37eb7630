package store

import (
	"sync"

	"humanizepro/internal/ports"
)

// Queue is a FIFO of pending remote writes drained by the sync workers.
// Consecutive duplicate entries for the same project collapse.
type Queue struct {
	mu    sync.Mutex
	items []ports.SyncItem
}

func NewQueue() *Queue { return &Queue{} }

func (q *Queue) EnqueueUpsert(projectID string) {
	q.enqueue(ports.SyncItem{Op: ports.SyncUpsert, ProjectID: projectID})
}

func (q *Queue) EnqueueDelete(projectID string) {
	q.enqueue(ports.SyncItem{Op: ports.SyncDelete, ProjectID: projectID})
}

func (q *Queue) enqueue(item ports.SyncItem) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if n := len(q.items); n > 0 && q.items[n-1] == item {
		return
	}
	q.items = append(q.items, item)
}

// ClaimNext pops the oldest pending item, if any.
func (q *Queue) ClaimNext() (ports.SyncItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return ports.SyncItem{}, false
	}
	item := q.items[0]
	q.items = q.items[1:]
	return item, true
}

// Len reports the number of pending items, for tests and shutdown logging.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
