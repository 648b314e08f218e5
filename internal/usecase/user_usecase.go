package usecase

import (
	"context"
	"strings"

	"complainhub/internal/domain/entity"
	"complainhub/internal/domain/repository"
	"complainhub/internal/infrastructure/firebase"
	"complainhub/pkg/errors"
)

type UserUseCase struct {
	userRepo     repository.UserRepository
	firebaseAuth FirebaseAuthClient
}

func NewUserUseCase(userRepo repository.UserRepository, firebaseAuth FirebaseAuthClient) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		firebaseAuth: firebaseAuth,
	}
}

func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *UserUseCase) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return uc.userRepo.List(ctx)
}

// ListAuthUsers returns the provider-side account list for the admin panel.
func (uc *UserUseCase) ListAuthUsers(ctx context.Context) ([]firebase.AuthUser, error) {
	users, err := uc.firebaseAuth.ListUsers(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to fetch auth users", err)
	}
	return users, nil
}

// EditUser applies the editable profile fields; empty values are left
// untouched, and an update with nothing to change is rejected.
func (uc *UserUseCase) EditUser(ctx context.Context, id, name, department string) error {
	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if department != "" {
		updates["department"] = department
	}
	if len(updates) == 0 {
		return errors.BadRequest("No valid fields to update", nil)
	}

	return uc.userRepo.Update(ctx, id, updates)
}

func (uc *UserUseCase) BlockUser(ctx context.Context, id, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errors.BadRequest("A reason is required to block a user", nil)
	}

	return uc.userRepo.SetAccountStatus(ctx, id, entity.AccountBlocked, reason)
}

func (uc *UserUseCase) UnblockUser(ctx context.Context, id string) error {
	return uc.userRepo.SetAccountStatus(ctx, id, entity.AccountActive, "")
}

// SearchUsers filters the given set by a case-insensitive substring match
// over name, email, student id and department.
func SearchUsers(users []*entity.User, query string) []*entity.User {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return users
	}

	result := []*entity.User{}
	for _, user := range users {
		if strings.Contains(strings.ToLower(user.Name), query) ||
			strings.Contains(strings.ToLower(user.Email), query) ||
			strings.Contains(strings.ToLower(user.StudentID), query) ||
			strings.Contains(strings.ToLower(user.Department), query) {
			result = append(result, user)
		}
	}
	return result
}
