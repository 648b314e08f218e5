package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complainhub/internal/domain/entity"
	"complainhub/internal/domain/repository"
)

func TestMemoryRepositoryCreateAndGet(t *testing.T) {
	repo := NewMemoryComplaintRepository()
	defer repo.Close()
	ctx := context.Background()

	complaint := &entity.Complaint{
		Title:       "Parking shortage",
		Description: "No slots left after 9am.",
		StudentID:   "CS2021045",
	}
	require.NoError(t, repo.Create(ctx, complaint))
	assert.NotEmpty(t, complaint.ID)

	stored, err := repo.GetByID(ctx, complaint.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, stored.Status)
	assert.NotNil(t, stored.Comments)

	_, err = repo.GetByID(ctx, "missing")
	assert.Error(t, err)
}

func TestMemoryRepositoryListFiltersByStudent(t *testing.T) {
	repo := NewMemoryComplaintRepository()
	defer repo.Close()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Complaint{Title: "A", Description: "a", StudentID: "CS2021045"}))
	require.NoError(t, repo.Create(ctx, &entity.Complaint{Title: "B", Description: "b", StudentID: "ME2020012"}))

	all, err := repo.List(ctx, repository.ComplaintFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := repo.List(ctx, repository.ComplaintFilter{StudentID: "CS2021045"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "A", mine[0].Title)
}

func TestMemoryRepositoryUpdateStatus(t *testing.T) {
	repo := NewMemoryComplaintRepository()
	defer repo.Close()
	ctx := context.Background()

	complaint := &entity.Complaint{Title: "Leak", Description: "roof leak"}
	require.NoError(t, repo.Create(ctx, complaint))

	now := time.Now()
	err := repo.UpdateStatus(ctx, complaint.ID, repository.StatusChange{
		Status:      entity.StatusResolved,
		Description: "Patched",
		By:          "Dean Office",
		Date:        now,
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, complaint.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusResolved, stored.Status)
	assert.NotNil(t, stored.ResolvedAt)
	require.Len(t, stored.Updates, 1)
	assert.Equal(t, "Dean Office", stored.Updates[0].By)
}

func TestMemoryRepositoryStoredCopiesAreIsolated(t *testing.T) {
	repo := NewMemoryComplaintRepository()
	defer repo.Close()
	ctx := context.Background()

	complaint := &entity.Complaint{Title: "Original", Description: "text"}
	require.NoError(t, repo.Create(ctx, complaint))

	// Mutating the caller's copy must not leak into the store.
	complaint.Title = "Mutated"

	stored, err := repo.GetByID(ctx, complaint.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", stored.Title)
}

func TestMemoryRepositoryWatchNotifiesOnWrite(t *testing.T) {
	repo := NewMemoryComplaintRepository()
	defer repo.Close()
	ctx := context.Background()

	sub, err := repo.Watch(ctx, repository.ComplaintFilter{})
	require.NoError(t, err)
	defer sub.Close()

	// Initial snapshot is the current (empty) list.
	initial := <-sub.C
	assert.Empty(t, initial)

	require.NoError(t, repo.Create(ctx, &entity.Complaint{Title: "New", Description: "text"}))

	select {
	case snapshot := <-sub.C:
		require.Len(t, snapshot, 1)
		assert.Equal(t, "New", snapshot[0].Title)
	case <-time.After(time.Second):
		t.Fatal("no notification after write")
	}
}

func TestMemoryRepositoryCloseEndsSubscriptions(t *testing.T) {
	repo := NewMemoryComplaintRepository()
	ctx := context.Background()

	sub, err := repo.Watch(ctx, repository.ComplaintFilter{})
	require.NoError(t, err)
	<-sub.C

	repo.Close()

	_, open := <-sub.C
	assert.False(t, open)
}

func TestSampleRepositorySeed(t *testing.T) {
	repo := NewSampleComplaintRepository()
	defer repo.Close()

	samples, err := repo.List(context.Background(), repository.ComplaintFilter{})
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, "Syllabus Not Covered", samples[0].Title)
	assert.Equal(t, entity.StatusInProgress, samples[1].Status)
}
