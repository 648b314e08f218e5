package repository

import (
	"context"
	"time"

	"complainhub/internal/domain/entity"
)

// ComplaintFilter narrows list and watch results. A zero filter means all
// complaints.
type ComplaintFilter struct {
	StudentID string
}

// StatusChange describes one admin status transition. ResolvedAt and
// RejectionReason are derived by the caller when the new status demands them.
type StatusChange struct {
	Status          entity.Status
	Description     string
	By              string
	AssignedTo      string
	ResolvedAt      *time.Time
	RejectionReason string
	Date            time.Time
}

type ComplaintRepository interface {
	Create(ctx context.Context, complaint *entity.Complaint) error
	GetByID(ctx context.Context, id string) (*entity.Complaint, error)
	List(ctx context.Context, filter ComplaintFilter) ([]*entity.Complaint, error)
	UpdateStatus(ctx context.Context, id string, change StatusChange) error
	AddComment(ctx context.Context, id string, comment entity.Comment) error
	Watch(ctx context.Context, filter ComplaintFilter) (*Subscription, error)
}
