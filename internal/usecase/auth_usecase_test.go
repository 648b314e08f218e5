package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complainhub/internal/domain/entity"
	"complainhub/pkg/errors"
)

func TestRegisterCreatesStudentProfile(t *testing.T) {
	userRepo := newFakeUserRepo()
	auth := &fakeAuthClient{}
	uc := NewAuthUseCase(userRepo, auth)

	result, err := uc.Register(context.Background(), RegisterInput{
		Email:      "asha@example.edu",
		Password:   "s3cret-pass",
		Name:       "Asha Verma",
		StudentID:  "CS2021045",
		Department: "Computer Science",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleStudent, result.User.Role)
	assert.Equal(t, entity.AccountActive, result.User.Status)
	assert.NotEmpty(t, result.Token)

	stored, err := userRepo.GetByID(context.Background(), result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "CS2021045", stored.StudentID)
}

func TestLoginSignInErrorsPassThrough(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), &fakeAuthClient{
		signInErr: errors.Unauthorized("No account found with this email address.", nil),
	})

	_, err := uc.Login(context.Background(), "ghost@example.edu", "whatever")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
	assert.Contains(t, err.Error(), "No account found")
}

func TestLoginMissingProfile(t *testing.T) {
	// Auth record exists but there is no Firestore profile.
	auth := &fakeAuthClient{}
	_, err := auth.CreateUser(context.Background(), "orphan@example.edu", "pass-123", "Orphan")
	require.NoError(t, err)

	uc := NewAuthUseCase(newFakeUserRepo(), auth)
	_, err = uc.Login(context.Background(), "orphan@example.edu", "pass-123")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "PROFILE_NOT_FOUND"))
	assert.Contains(t, err.Error(), "contact support")
}

func TestLoginBlockedAccount(t *testing.T) {
	auth := &fakeAuthClient{}
	uid, err := auth.CreateUser(context.Background(), "blocked@example.edu", "pass-123", "Blocked User")
	require.NoError(t, err)

	userRepo := newFakeUserRepo(&entity.User{
		ID:          uid,
		Email:       "blocked@example.edu",
		Name:        "Blocked User",
		Role:        entity.RoleStudent,
		Status:      entity.AccountBlocked,
		BlockReason: "Repeated misuse of the portal",
	})

	uc := NewAuthUseCase(userRepo, auth)
	_, err = uc.Login(context.Background(), "blocked@example.edu", "pass-123")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
	assert.Contains(t, err.Error(), "Repeated misuse")
}

func TestAdminLoginRequiresAdminRole(t *testing.T) {
	auth := &fakeAuthClient{}
	studentUID, err := auth.CreateUser(context.Background(), "student@example.edu", "pass-123", "Student")
	require.NoError(t, err)
	adminUID, err := auth.CreateUser(context.Background(), "dean@example.edu", "pass-456", "Dean")
	require.NoError(t, err)

	userRepo := newFakeUserRepo(
		&entity.User{ID: studentUID, Email: "student@example.edu", Role: entity.RoleStudent, Status: entity.AccountActive},
		&entity.User{ID: adminUID, Email: "dean@example.edu", Role: entity.RoleAdmin, Status: entity.AccountActive},
	)
	uc := NewAuthUseCase(userRepo, auth)

	_, err = uc.AdminLogin(context.Background(), "student@example.edu", "pass-123")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	result, err := uc.AdminLogin(context.Background(), "dean@example.edu", "pass-456")
	require.NoError(t, err)
	assert.True(t, result.User.IsAdmin())
}

func TestVerifyTokenBackfillsMissingProfile(t *testing.T) {
	userRepo := newFakeUserRepo()
	uc := NewAuthUseCase(userRepo, &fakeAuthClient{})

	user, err := uc.VerifyToken(context.Background(), "token-legacy-uid")
	require.NoError(t, err)

	assert.Equal(t, "legacy-uid", user.ID)
	assert.Equal(t, entity.RoleStudent, user.Role)
	assert.Equal(t, entity.AccountActive, user.Status)

	// The profile is persisted, not just synthesized.
	stored, err := userRepo.GetByID(context.Background(), "legacy-uid")
	require.NoError(t, err)
	assert.Equal(t, user.Email, stored.Email)
}

func TestVerifyTokenRejectsInvalidToken(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), &fakeAuthClient{})

	_, err := uc.VerifyToken(context.Background(), "bogus")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}
