package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"complainhub/internal/domain/entity"
	"complainhub/internal/domain/repository"
	"complainhub/pkg/errors"
)

// MemoryComplaintRepository is an in-memory ComplaintRepository. It backs the
// placeholder data served when the Firestore feed stalls, and doubles as the
// repository used in tests. It is created and torn down by its owner, never
// shared module state.
type MemoryComplaintRepository struct {
	mu         sync.RWMutex
	complaints map[string]*entity.Complaint
	order      []string
	nextID     int
	watchers   map[int]chan []*entity.Complaint
	nextWatch  int
}

func NewMemoryComplaintRepository() *MemoryComplaintRepository {
	return &MemoryComplaintRepository{
		complaints: make(map[string]*entity.Complaint),
		watchers:   make(map[int]chan []*entity.Complaint),
	}
}

// NewSampleComplaintRepository returns a repository seeded with the built-in
// placeholder complaints shown while the backend is unreachable.
func NewSampleComplaintRepository() *MemoryComplaintRepository {
	r := NewMemoryComplaintRepository()
	now := time.Now()

	samples := []*entity.Complaint{
		{
			ID:          "sample1",
			Title:       "Syllabus Not Covered",
			Description: "The syllabus for Data Structures has not been fully covered and exams are approaching soon.",
			Category:    entity.CategoryAcademic,
			Status:      entity.StatusPending,
			Priority:    entity.PriorityHigh,
			CreatedAt:   now.Add(-24 * time.Hour),
			UpdatedAt:   now.Add(-24 * time.Hour),
		},
		{
			ID:          "sample2",
			Title:       "Hostel Water Issue",
			Description: "There is no water supply in the hostel since yesterday evening.",
			Category:    entity.CategoryHostel,
			Status:      entity.StatusInProgress,
			Priority:    entity.PriorityMedium,
			CreatedAt:   now.Add(-48 * time.Hour),
			UpdatedAt:   now.Add(-48 * time.Hour),
		},
	}

	for _, c := range samples {
		c.ApplyReadDefaults()
		r.complaints[c.ID] = c
		r.order = append(r.order, c.ID)
	}
	return r
}

func (r *MemoryComplaintRepository) Create(ctx context.Context, complaint *entity.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if complaint.ID == "" {
		r.nextID++
		complaint.ID = fmt.Sprintf("mem-%d", r.nextID)
	}
	now := time.Now()
	complaint.CreatedAt = now
	complaint.UpdatedAt = now
	if complaint.Status == "" {
		complaint.Status = entity.StatusPending
	}
	complaint.ApplyReadDefaults()

	stored := *complaint
	r.complaints[complaint.ID] = &stored
	r.order = append(r.order, complaint.ID)
	r.notifyLocked()
	return nil
}

func (r *MemoryComplaintRepository) GetByID(ctx context.Context, id string) (*entity.Complaint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	complaint, ok := r.complaints[id]
	if !ok {
		return nil, errors.NotFound("Complaint", nil)
	}
	copied := *complaint
	return &copied, nil
}

func (r *MemoryComplaintRepository) List(ctx context.Context, filter repository.ComplaintFilter) ([]*entity.Complaint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked(filter), nil
}

func (r *MemoryComplaintRepository) listLocked(filter repository.ComplaintFilter) []*entity.Complaint {
	result := []*entity.Complaint{}
	for _, id := range r.order {
		complaint := r.complaints[id]
		if filter.StudentID != "" && complaint.StudentID != filter.StudentID {
			continue
		}
		copied := *complaint
		result = append(result, &copied)
	}
	return result
}

func (r *MemoryComplaintRepository) UpdateStatus(ctx context.Context, id string, change repository.StatusChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	complaint, ok := r.complaints[id]
	if !ok {
		return errors.NotFound("Complaint", nil)
	}

	complaint.Status = change.Status
	complaint.UpdatedAt = change.Date

	switch change.Status {
	case entity.StatusResolved:
		if change.ResolvedAt != nil {
			complaint.ResolvedAt = *change.ResolvedAt
		} else {
			complaint.ResolvedAt = change.Date
		}
	case entity.StatusRejected:
		complaint.RejectionReason = change.RejectionReason
	case entity.StatusInProgress:
		if change.AssignedTo != "" {
			complaint.AssignedTo = change.AssignedTo
		}
	}

	complaint.Updates = append(complaint.Updates, entity.ComplaintUpdate{
		Status:      change.Status,
		Description: change.Description,
		By:          change.By,
		Date:        change.Date,
	})
	r.notifyLocked()
	return nil
}

func (r *MemoryComplaintRepository) AddComment(ctx context.Context, id string, comment entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	complaint, ok := r.complaints[id]
	if !ok {
		return errors.NotFound("Complaint", nil)
	}

	complaint.Comments = append(complaint.Comments, comment)
	complaint.UpdatedAt = time.Now()
	r.notifyLocked()
	return nil
}

func (r *MemoryComplaintRepository) Watch(ctx context.Context, filter repository.ComplaintFilter) (*repository.Subscription, error) {
	r.mu.Lock()
	ch := make(chan []*entity.Complaint, 1)
	id := r.nextWatch
	r.nextWatch++
	r.watchers[id] = ch
	ch <- r.listLocked(filter)
	r.mu.Unlock()

	// The subscription owner closes the handle; ctx is accepted for
	// interface parity with the Firestore implementation.
	stop := func() {
		r.mu.Lock()
		if watcher, ok := r.watchers[id]; ok {
			delete(r.watchers, id)
			close(watcher)
		}
		r.mu.Unlock()
	}

	return repository.NewSubscription(ch, stop), nil
}

// notifyLocked pushes the current full list to every watcher; callers hold
// the write lock. Filters are not re-applied per watcher here because the
// fallback and test paths watch the unfiltered set.
func (r *MemoryComplaintRepository) notifyLocked() {
	list := r.listLocked(repository.ComplaintFilter{})
	for _, ch := range r.watchers {
		select {
		case ch <- list:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- list
		}
	}
}

// Close tears the repository down, ending every open subscription.
func (r *MemoryComplaintRepository) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, ch := range r.watchers {
		delete(r.watchers, id)
		close(ch)
	}
}
