package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"complainhub/internal/domain/entity"
	"complainhub/internal/domain/repository"
	"complainhub/pkg/errors"
	"complainhub/pkg/logger"
)

const complaintsCollection = "complaints"

type firestoreComplaintRepository struct {
	client *firestore.Client
}

func NewFirestoreComplaintRepository(client *firestore.Client) repository.ComplaintRepository {
	return &firestoreComplaintRepository{
		client: client,
	}
}

func (r *firestoreComplaintRepository) Create(ctx context.Context, complaint *entity.Complaint) error {
	if complaint.ID == "" {
		doc := r.client.Collection(complaintsCollection).NewDoc()
		complaint.ID = doc.ID
	}

	now := time.Now()
	complaint.CreatedAt = now
	complaint.UpdatedAt = now
	if complaint.Status == "" {
		complaint.Status = entity.StatusPending
	}
	if complaint.Comments == nil {
		complaint.Comments = []entity.Comment{}
	}
	if complaint.Updates == nil {
		complaint.Updates = []entity.ComplaintUpdate{}
	}

	_, err := r.client.Collection(complaintsCollection).Doc(complaint.ID).Set(ctx, complaint)
	if err != nil {
		return errors.Internal("Failed to create complaint", err)
	}

	return nil
}

func (r *firestoreComplaintRepository) GetByID(ctx context.Context, id string) (*entity.Complaint, error) {
	doc, err := r.client.Collection(complaintsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Complaint", err)
		}
		return nil, errors.Internal("Failed to get complaint", err)
	}

	return complaintFromDoc(doc)
}

func (r *firestoreComplaintRepository) List(ctx context.Context, filter repository.ComplaintFilter) ([]*entity.Complaint, error) {
	// No OrderBy here: createdAt is stored in heterogeneous shapes across
	// historical records, so ordering happens in memory after normalization.
	query := r.client.Collection(complaintsCollection).Query
	if filter.StudentID != "" {
		query = query.Where("studentId", "==", filter.StudentID)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	complaints := []*entity.Complaint{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list complaints", err)
		}

		complaint, err := complaintFromDoc(doc)
		if err != nil {
			logger.Warn("Skipping malformed complaint %s: %v", doc.Ref.ID, err)
			continue
		}
		complaints = append(complaints, complaint)
	}

	return complaints, nil
}

func (r *firestoreComplaintRepository) UpdateStatus(ctx context.Context, id string, change repository.StatusChange) error {
	docRef := r.client.Collection(complaintsCollection).Doc(id)

	updates := []firestore.Update{
		{Path: "status", Value: change.Status},
		{Path: "updatedAt", Value: change.Date},
	}

	switch change.Status {
	case entity.StatusResolved:
		resolvedAt := change.Date
		if change.ResolvedAt != nil {
			resolvedAt = *change.ResolvedAt
		}
		updates = append(updates, firestore.Update{Path: "resolvedAt", Value: resolvedAt})
	case entity.StatusRejected:
		updates = append(updates, firestore.Update{Path: "rejectionReason", Value: change.RejectionReason})
	case entity.StatusInProgress:
		if change.AssignedTo != "" {
			updates = append(updates, firestore.Update{Path: "assignedTo", Value: change.AssignedTo})
		}
	}

	entry := map[string]interface{}{
		"status":      change.Status,
		"description": change.Description,
		"by":          change.By,
		"date":        change.Date,
	}
	updates = append(updates, firestore.Update{Path: "updates", Value: firestore.ArrayUnion(entry)})

	if _, err := docRef.Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Complaint", err)
		}
		return errors.Internal("Failed to update complaint status", err)
	}

	return nil
}

func (r *firestoreComplaintRepository) AddComment(ctx context.Context, id string, comment entity.Comment) error {
	docRef := r.client.Collection(complaintsCollection).Doc(id)

	// ArrayUnion appends atomically, so concurrent commenters cannot drop
	// each other's entries.
	entry := map[string]interface{}{
		"id":          comment.ID,
		"complaintId": comment.ComplaintID,
		"userId":      comment.UserID,
		"userName":    comment.UserName,
		"userRole":    comment.UserRole,
		"content":     comment.Content,
		"createdAt":   comment.CreatedAt,
	}

	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "comments", Value: firestore.ArrayUnion(entry)},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Complaint", err)
		}
		return errors.Internal("Failed to add comment", err)
	}

	return nil
}

func (r *firestoreComplaintRepository) Watch(ctx context.Context, filter repository.ComplaintFilter) (*repository.Subscription, error) {
	query := r.client.Collection(complaintsCollection).Query
	if filter.StudentID != "" {
		query = query.Where("studentId", "==", filter.StudentID)
	}

	ctx, cancel := context.WithCancel(ctx)
	snapshots := query.Snapshots(ctx)
	ch := make(chan []*entity.Complaint, 1)

	go func() {
		defer close(ch)
		defer snapshots.Stop()

		for {
			snap, err := snapshots.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					logger.Error("Complaint snapshot listener failed: %v", err)
				}
				return
			}

			var complaints []*entity.Complaint
			docs := snap.Documents
			for {
				doc, err := docs.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					logger.Error("Failed to read snapshot documents: %v", err)
					return
				}
				complaint, err := complaintFromDoc(doc)
				if err != nil {
					logger.Warn("Skipping malformed complaint %s: %v", doc.Ref.ID, err)
					continue
				}
				complaints = append(complaints, complaint)
			}

			// Keep only the latest snapshot when the consumer lags.
			select {
			case ch <- complaints:
			default:
				select {
				case <-ch:
				default:
				}
				ch <- complaints
			}
		}
	}()

	return repository.NewSubscription(ch, cancel), nil
}

func complaintFromDoc(doc *firestore.DocumentSnapshot) (*entity.Complaint, error) {
	var complaint entity.Complaint
	if err := doc.DataTo(&complaint); err != nil {
		return nil, errors.Internal("Failed to parse complaint data", err)
	}
	complaint.ID = doc.Ref.ID
	complaint.ApplyReadDefaults()
	return &complaint, nil
}
