// Package store holds the in-process project collection and the queue of
// pending remote writes. Both are explicitly constructed, never package-level
// state, so tests can run isolated instances.
package store

import (
	"context"
	"errors"
	"sync"

	"humanizepro/internal/domain"
)

var ErrNotFound = errors.New("project not found")

// Memory is an ordered in-memory project repository, newest first. It is
// safe for concurrent use; all returned projects are copies.
type Memory struct {
	mu       sync.RWMutex
	order    []string
	projects map[string]domain.Project
}

func NewMemory() *Memory {
	return &Memory{projects: make(map[string]domain.Project)}
}

func (m *Memory) Insert(_ context.Context, p domain.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[p.ID]; ok {
		return errors.New("project id already exists")
	}
	m.order = append([]string{p.ID}, m.order...)
	m.projects[p.ID] = copyProject(p)
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (domain.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.projects[id]
	if !ok {
		return domain.Project{}, ErrNotFound
	}
	return copyProject(p), nil
}

func (m *Memory) List(_ context.Context) ([]domain.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Project, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, copyProject(m.projects[id]))
	}
	return out, nil
}

func (m *Memory) Save(_ context.Context, p domain.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[p.ID]; !ok {
		return ErrNotFound
	}
	m.projects[p.ID] = copyProject(p)
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[id]; !ok {
		return ErrNotFound
	}
	delete(m.projects, id)
	for i, other := range m.order {
		if other == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// copyProject deep-copies the versions slice so callers cannot alias stored
// state through returned values.
func copyProject(p domain.Project) domain.Project {
	out := p
	out.Versions = make([]domain.Version, len(p.Versions))
	copy(out.Versions, p.Versions)
	for i, v := range p.Versions {
		if v.CheckScores != nil {
			scores := *v.CheckScores
			out.Versions[i].CheckScores = &scores
		}
	}
	return out
}
