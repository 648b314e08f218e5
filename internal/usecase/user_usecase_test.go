package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complainhub/internal/domain/entity"
	"complainhub/pkg/errors"
)

func testUsers() []*entity.User {
	return []*entity.User{
		{ID: "u1", Email: "asha@example.edu", Name: "Asha Verma", StudentID: "CS2021045", Department: "Computer Science", Role: entity.RoleStudent, Status: entity.AccountActive},
		{ID: "u2", Email: "rohan@example.edu", Name: "Rohan Iyer", StudentID: "ME2020012", Department: "Mechanical", Role: entity.RoleStudent, Status: entity.AccountActive},
		{ID: "u3", Email: "dean@example.edu", Name: "Dean Office", Role: entity.RoleAdmin, Status: entity.AccountActive},
	}
}

func TestEditUserPartialUpdate(t *testing.T) {
	userRepo := newFakeUserRepo(testUsers()...)
	uc := NewUserUseCase(userRepo, &fakeAuthClient{})
	ctx := context.Background()

	require.NoError(t, uc.EditUser(ctx, "u1", "Asha V.", ""))

	user, err := userRepo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Asha V.", user.Name)
	assert.Equal(t, "Computer Science", user.Department)
}

func TestEditUserNothingToChange(t *testing.T) {
	uc := NewUserUseCase(newFakeUserRepo(testUsers()...), &fakeAuthClient{})

	err := uc.EditUser(context.Background(), "u1", "", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestBlockAndUnblockUser(t *testing.T) {
	userRepo := newFakeUserRepo(testUsers()...)
	uc := NewUserUseCase(userRepo, &fakeAuthClient{})
	ctx := context.Background()

	err := uc.BlockUser(ctx, "u2", "  ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	require.NoError(t, uc.BlockUser(ctx, "u2", "Spam submissions"))
	user, err := userRepo.GetByID(ctx, "u2")
	require.NoError(t, err)
	assert.True(t, user.IsBlocked())
	assert.Equal(t, "Spam submissions", user.BlockReason)

	require.NoError(t, uc.UnblockUser(ctx, "u2"))
	user, err = userRepo.GetByID(ctx, "u2")
	require.NoError(t, err)
	assert.False(t, user.IsBlocked())
	assert.Empty(t, user.BlockReason)
}

func TestSearchUsers(t *testing.T) {
	users := testUsers()

	assert.Len(t, SearchUsers(users, ""), 3)

	byName := SearchUsers(users, "asha")
	require.Len(t, byName, 1)
	assert.Equal(t, "u1", byName[0].ID)

	byStudentID := SearchUsers(users, "me2020")
	require.Len(t, byStudentID, 1)
	assert.Equal(t, "u2", byStudentID[0].ID)

	byDepartment := SearchUsers(users, "mechanical")
	require.Len(t, byDepartment, 1)

	assert.Empty(t, SearchUsers(users, "physics"))
}
