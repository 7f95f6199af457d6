package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bamdigital/site-backend/internal/model"
	"github.com/google/uuid"
)

// MemorySubmissionRepository is an in-memory SubmissionRepository used by
// tests and by adminctl dry runs. Safe for concurrent use.
type MemorySubmissionRepository struct {
	mu   sync.RWMutex
	subs map[string]*model.ContactSubmission
	now  func() time.Time
}

// NewMemorySubmissionRepository creates an empty in-memory store.
func NewMemorySubmissionRepository() *MemorySubmissionRepository {
	return &MemorySubmissionRepository{
		subs: make(map[string]*model.ContactSubmission),
		now:  time.Now,
	}
}

var _ SubmissionRepository = (*MemorySubmissionRepository)(nil)

// SetClock replaces the time source, letting tests control CreatedAt ordering.
func (r *MemorySubmissionRepository) SetClock(now func() time.Time) {
	r.mu.Lock()
	r.now = now
	r.mu.Unlock()
}

// Create stores a copy of sub with a fresh id and creation time, then writes
// the assigned fields back.
func (r *MemorySubmissionRepository) Create(ctx context.Context, sub *model.ContactSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *sub
	stored.ID = uuid.NewString()
	stored.CreatedAt = r.now().UTC()
	stored.Read = false
	r.subs[stored.ID] = &stored

	sub.ID = stored.ID
	sub.CreatedAt = stored.CreatedAt
	sub.Read = false
	return nil
}

// ListAll returns copies of every submission, newest first.
func (r *MemorySubmissionRepository) ListAll(ctx context.Context) ([]*model.ContactSubmission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subs := make([]*model.ContactSubmission, 0, len(r.subs))
	for _, s := range r.subs {
		copied := *s
		subs = append(subs, &copied)
	}
	sort.Slice(subs, func(i, j int) bool {
		return subs[i].CreatedAt.After(subs[j].CreatedAt)
	})
	return subs, nil
}

// MarkRead flips the record to read. Already-read records are a no-op success.
func (r *MemorySubmissionRepository) MarkRead(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.subs[id]
	if !ok {
		return ErrNotFound
	}
	sub.Read = true
	return nil
}

// Delete removes the record permanently.
func (r *MemorySubmissionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.subs[id]; !ok {
		return ErrNotFound
	}
	delete(r.subs, id)
	return nil
}
