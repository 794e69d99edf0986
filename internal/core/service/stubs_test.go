package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/gymguider/fitness-api/internal/core/domain"
	"github.com/gymguider/fitness-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

// stubIdentityRepo mirrors the unique email index of the real store: the
// uniqueness check and the insert happen under one lock.
type stubIdentityRepo struct {
	mu      sync.Mutex
	seq     int
	byID    map[string]*domain.Identity
	findErr error
}

func newStubIdentityRepo() *stubIdentityRepo {
	return &stubIdentityRepo{byID: make(map[string]*domain.Identity)}
}

func (r *stubIdentityRepo) seed(id, email string, role domain.Role) *domain.Identity {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := &domain.Identity{ID: id, Name: id, Email: email, Role: role}
	r.byID[id] = u
	clone := *u
	return &clone
}

func (r *stubIdentityRepo) Create(_ context.Context, u *domain.Identity) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return nil, domain.ErrConflict
		}
	}
	r.seq++
	clone := *u
	clone.ID = fmt.Sprintf("id-%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubIdentityRepo) FindByEmail(_ context.Context, email string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubIdentityRepo) FindByID(_ context.Context, id string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubIdentityRepo) List(_ context.Context) ([]*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Identity, 0, len(r.byID))
	for _, u := range r.byID {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubIdentityRepo) Update(_ context.Context, id string, patch domain.IdentityPatch) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	clone := *u
	return &clone, nil
}

func (r *stubIdentityRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubExerciseRepo struct {
	byID map[string]*domain.Exercise
	seq  int
}

func newStubExerciseRepo(seed ...*domain.Exercise) *stubExerciseRepo {
	r := &stubExerciseRepo{byID: make(map[string]*domain.Exercise)}
	for _, e := range seed {
		r.byID[e.ID] = e
	}
	return r
}

func (r *stubExerciseRepo) Create(_ context.Context, e *domain.Exercise) (*domain.Exercise, error) {
	for _, existing := range r.byID {
		if existing.Name == e.Name {
			return nil, domain.ErrConflict
		}
	}
	r.seq++
	clone := *e
	clone.ID = fmt.Sprintf("ex-%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubExerciseRepo) FindByID(_ context.Context, id string) (*domain.Exercise, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubExerciseRepo) List(_ context.Context) ([]*domain.Exercise, error) {
	out := make([]*domain.Exercise, 0, len(r.byID))
	for _, e := range r.byID {
		clone := *e
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubExerciseRepo) Replace(_ context.Context, e *domain.Exercise) (*domain.Exercise, error) {
	if _, ok := r.byID[e.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	clone := *e
	r.byID[e.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubExerciseRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubPlanRepo struct {
	byID      map[string]*domain.WorkoutPlan
	seq       int
	lastOwner *string // owner passed to the last List call
	writes    int
}

func newStubPlanRepo() *stubPlanRepo {
	return &stubPlanRepo{byID: make(map[string]*domain.WorkoutPlan)}
}

func (r *stubPlanRepo) Create(_ context.Context, p *domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	r.writes++
	r.seq++
	clone := *p
	clone.ID = fmt.Sprintf("plan-%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubPlanRepo) FindByID(_ context.Context, id string) (*domain.WorkoutPlan, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPlanRepo) List(_ context.Context, ownerID string) ([]*domain.WorkoutPlan, error) {
	r.lastOwner = &ownerID
	var out []*domain.WorkoutPlan
	for _, p := range r.byID {
		if ownerID != "" && p.OwnerID != ownerID {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubPlanRepo) Replace(_ context.Context, p *domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	if _, ok := r.byID[p.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	r.writes++
	clone := *p
	r.byID[p.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubPlanRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	r.writes++
	delete(r.byID, id)
	return nil
}

type stubLogRepo struct {
	byID   map[string]*domain.WorkoutLog
	seq    int
	writes int
	// failOnCreate makes the n-th Create call (1-based) fail.
	failOnCreate int
}

func newStubLogRepo() *stubLogRepo {
	return &stubLogRepo{byID: make(map[string]*domain.WorkoutLog)}
}

func (r *stubLogRepo) Create(_ context.Context, l *domain.WorkoutLog) (*domain.WorkoutLog, error) {
	r.writes++
	r.seq++
	if r.seq == r.failOnCreate {
		return nil, domain.ErrUnavailable
	}
	clone := *l
	clone.ID = fmt.Sprintf("log-%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubLogRepo) FindByID(_ context.Context, id string) (*domain.WorkoutLog, error) {
	l, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *stubLogRepo) List(_ context.Context, ownerID string) ([]*domain.WorkoutLog, error) {
	var out []*domain.WorkoutLog
	for _, l := range r.byID {
		if ownerID != "" && l.OwnerID != ownerID {
			continue
		}
		clone := *l
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubLogRepo) Update(_ context.Context, id string, patch domain.WorkoutLogPatch) (*domain.WorkoutLog, error) {
	l, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	r.writes++
	if patch.DurationMinutes != nil {
		l.DurationMinutes = *patch.DurationMinutes
	}
	if patch.Notes != nil {
		l.Notes = *patch.Notes
	}
	clone := *l
	return &clone, nil
}

func (r *stubLogRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	r.writes++
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Collaborator stubs
// ---------------------------------------------------------------------------

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e domain.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.EventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type stubLimiter struct {
	mu       sync.Mutex
	blocked  bool
	allowErr error
	attempts map[string]int
	resets   int
}

func newStubLimiter() *stubLimiter {
	return &stubLimiter{attempts: make(map[string]int)}
}

func (l *stubLimiter) Attempt(_ context.Context, email string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.allowErr != nil {
		return false, l.allowErr
	}
	l.attempts[email]++
	return !l.blocked, nil
}

func (l *stubLimiter) Reset(context.Context, string) error {
	l.resets++
	return nil
}

var _ ports.LoginLimiter = (*stubLimiter)(nil)
