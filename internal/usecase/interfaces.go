package usecase

import (
	"context"

	"complainhub/internal/domain/entity"
	"complainhub/internal/infrastructure/firebase"
)

type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	VerifyTokenClaims(ctx context.Context, token string) (*firebase.TokenClaims, error)
	SignInWithEmailPassword(ctx context.Context, email, password string) (string, error)
	ListUsers(ctx context.Context) ([]firebase.AuthUser, error)
}

// ImageStore offloads oversized complaint attachments to object storage.
type ImageStore interface {
	UploadDataURL(ctx context.Context, dataURL string) (string, error)
}

// PriorityClassifier suggests a complaint priority from its text.
type PriorityClassifier interface {
	Classify(ctx context.Context, text string) (entity.Priority, error)
}

// EventBroadcaster pushes complaint change notices to connected clients.
type EventBroadcaster interface {
	Broadcast(message []byte)
}
