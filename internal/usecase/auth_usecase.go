package usecase

import (
	"context"

	"complainhub/internal/domain/entity"
	"complainhub/internal/domain/repository"
	"complainhub/internal/infrastructure/firebase"
	"complainhub/pkg/errors"
	"complainhub/pkg/logger"
)

type AuthUseCase struct {
	userRepo     repository.UserRepository
	firebaseAuth FirebaseAuthClient
}

func NewAuthUseCase(userRepo repository.UserRepository, firebaseAuth FirebaseAuthClient) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		firebaseAuth: firebaseAuth,
	}
}

type RegisterInput struct {
	Email      string
	Password   string
	Name       string
	StudentID  string
	Department string
}

type AuthResult struct {
	User  *entity.User
	Token string
}

// Register creates the identity record and its Firestore profile. Every
// self-service signup is a student; admins are provisioned out of band.
func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	uid, err := uc.firebaseAuth.CreateUser(ctx, input.Email, input.Password, input.Name)
	if err != nil {
		return nil, errors.BadRequest("Failed to create account", err)
	}

	user := &entity.User{
		ID:         uid,
		Email:      input.Email,
		Name:       input.Name,
		Role:       entity.RoleStudent,
		StudentID:  input.StudentID,
		Department: input.Department,
		Status:     entity.AccountActive,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		// The auth record exists but the profile write failed; the user will
		// hit the missing-profile path on next sign-in.
		logger.Error("Profile creation failed for %s after signup: %v", uid, err)
		return nil, errors.Internal("Failed to create user record", err)
	}

	token, err := uc.firebaseAuth.SignInWithEmailPassword(ctx, input.Email, input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	token, err := uc.firebaseAuth.SignInWithEmailPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}

	uid, err := uc.firebaseAuth.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Internal("Failed to verify token", err)
	}

	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			// Authenticated but profile-less; surfaced, not remediated.
			return nil, errors.ProfileNotFound(err)
		}
		return nil, err
	}

	if user.IsBlocked() {
		reason := user.BlockReason
		if reason == "" {
			reason = "Your account has been blocked."
		}
		return nil, errors.Forbidden(reason, nil)
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) AdminLogin(ctx context.Context, email, password string) (*AuthResult, error) {
	result, err := uc.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if !result.User.IsAdmin() {
		return nil, errors.Forbidden("Admin privileges required", nil)
	}

	return result, nil
}

// VerifyToken validates an ID token and upserts a default student profile
// when the Firestore record is missing, matching how existing auth-only
// accounts were backfilled.
func (uc *AuthUseCase) VerifyToken(ctx context.Context, idToken string) (*entity.User, error) {
	claims, err := uc.firebaseAuth.VerifyTokenClaims(ctx, idToken)
	if err != nil {
		return nil, errors.Unauthorized("Invalid or expired token", err)
	}

	user, err := uc.userRepo.GetByID(ctx, claims.UID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	user = uc.defaultProfile(claims)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		logger.Warn("Profile backfill failed for %s: %v", claims.UID, err)
		return nil, errors.Internal("Failed to create user record", err)
	}

	return user, nil
}

func (uc *AuthUseCase) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *AuthUseCase) defaultProfile(claims *firebase.TokenClaims) *entity.User {
	name := claims.Name
	if name == "" {
		name = "User"
	}
	return &entity.User{
		ID:     claims.UID,
		Email:  claims.Email,
		Name:   name,
		Role:   entity.RoleStudent,
		Status: entity.AccountActive,
	}
}
