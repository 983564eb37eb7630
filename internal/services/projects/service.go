// Package projects manages the project collection and its version history.
// The in-memory repository is authoritative; remote writes are enqueued only
// on explicit user actions (successful humanization, rename, delete), never
// on input-text edits alone.
package projects

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"humanizepro/internal/domain"
	"humanizepro/internal/ports"
	"humanizepro/internal/store"
	"humanizepro/pkg/logger"
)

const defaultTitle = "Untitled Project"

var (
	ErrNotFound       = store.ErrNotFound
	ErrNoVersions     = errors.New("project has no versions")
	ErrScoresAttached = errors.New("scores already attached to the latest version")
)

// Patch carries the mutable project fields; nil means "leave unchanged".
type Patch struct {
	Title      *string
	InputText  *string
	OutputText *string
	Language   *string
	Tone       *domain.Tone
	Intensity  *int
	Flags      *domain.Flags
}

// Service serializes all writes to the collection with a single mutex. The
// collection belongs to one logical session, so contention is not a concern;
// the lock guarantees version prepends land in call-completion order.
type Service struct {
	mu        sync.Mutex
	repo      ports.ProjectRepository
	queue     ports.SyncQueue
	log       *logger.Logger
	currentID string
	now       func() time.Time
}

func New(repo ports.ProjectRepository, queue ports.SyncQueue, log *logger.Logger) *Service {
	return &Service{repo: repo, queue: queue, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Create assigns a fresh id and timestamps, prepends the project to the
// collection, and marks it current.
func (s *Service) Create(ctx context.Context, seed domain.Project) (domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	p := seed
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Title == "" {
		p.Title = defaultTitle
	}
	if p.Language == "" {
		p.Language = "en"
	}
	p.Tone = domain.ParseTone(string(p.Tone))
	if p.Flags == (domain.Flags{}) {
		p.Flags = domain.DefaultFlags()
	}
	if p.Versions == nil {
		p.Versions = []domain.Version{}
	}

	if err := s.repo.Insert(ctx, p); err != nil {
		return domain.Project{}, err
	}
	s.currentID = p.ID
	s.log.Info("project created", "project_id", p.ID, "title", p.Title)
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Project, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Project, error) {
	return s.repo.List(ctx)
}

// Update merges the patch into the project and refreshes its updated
// timestamp. A title change is an explicit action and schedules a remote
// write; other field edits stay local.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}
	renamed := false
	if patch.Title != nil && *patch.Title != p.Title {
		p.Title = *patch.Title
		renamed = true
	}
	if patch.InputText != nil {
		p.InputText = *patch.InputText
	}
	if patch.OutputText != nil {
		p.OutputText = *patch.OutputText
	}
	if patch.Language != nil {
		p.Language = *patch.Language
	}
	if patch.Tone != nil {
		p.Tone = domain.ParseTone(string(*patch.Tone))
	}
	if patch.Intensity != nil {
		p.Intensity = *patch.Intensity
	}
	if patch.Flags != nil {
		p.Flags = *patch.Flags
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, p); err != nil {
		return domain.Project{}, err
	}
	if renamed {
		s.enqueueUpsert(p.ID)
	}
	return p, nil
}

// AddVersion prepends a humanization result to the project history and
// updates the current output text. Versions land in call-completion order;
// index 0 is always "Latest".
func (s *Service) AddVersion(ctx context.Context, id string, result domain.HumanizeResult) (domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}
	v := domain.Version{ID: result.VersionID, CreatedAt: result.CreatedAt, OutputText: result.OutputText}
	p.Versions = append([]domain.Version{v}, p.Versions...)
	p.OutputText = result.OutputText
	p.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, p); err != nil {
		return domain.Project{}, err
	}
	s.enqueueUpsert(p.ID)
	return p, nil
}

// AttachScores attaches a detection score set to the most recent version.
// The attachment is one-time: a version that already carries scores keeps
// them.
func (s *Service) AttachScores(ctx context.Context, id string, scores domain.DetectionScoreSet) (domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}
	if len(p.Versions) == 0 {
		return domain.Project{}, ErrNoVersions
	}
	if p.Versions[0].CheckScores != nil {
		return domain.Project{}, ErrScoresAttached
	}
	p.Versions[0].CheckScores = &scores
	p.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, p); err != nil {
		return domain.Project{}, err
	}
	return p, nil
}

// Delete removes the project. If it was current, there is no current project
// afterwards.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.currentID == id {
		s.currentID = ""
	}
	s.enqueueDelete(id)
	s.log.Info("project deleted", "project_id", id)
	return nil
}

// SetCurrent marks a project as current; an empty id clears the selection.
func (s *Service) SetCurrent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		s.currentID = ""
		return nil
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	s.currentID = id
	return nil
}

// Current returns the current project, or ok=false when none is selected.
func (s *Service) Current(ctx context.Context) (domain.Project, bool, error) {
	s.mu.Lock()
	id := s.currentID
	s.mu.Unlock()
	if id == "" {
		return domain.Project{}, false, nil
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Project{}, false, err
	}
	return p, true, nil
}

func (s *Service) enqueueUpsert(id string) {
	if s.queue != nil {
		s.queue.EnqueueUpsert(id)
	}
}

func (s *Service) enqueueDelete(id string) {
	if s.queue != nil {
		s.queue.EnqueueDelete(id)
	}
}
