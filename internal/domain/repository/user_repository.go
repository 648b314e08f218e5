package repository

import (
	"context"

	"complainhub/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	SetAccountStatus(ctx context.Context, id string, status entity.AccountStatus, blockReason string) error
}
