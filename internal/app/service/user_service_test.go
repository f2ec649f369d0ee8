package service

import (
	"context"
	"testing"

	"crackthechain/internal/common"
	"crackthechain/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserProfileStripsPassword(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewUserService(userRepo)

	userRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(&model.User{
		ID: "u1", Email: "ada@example.com", Password: "hash",
	}, nil)

	user, err := svc.Profile(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Empty(t, user.Password)
}

func TestUserProfileUnknownEmail(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewUserService(userRepo)
	userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, common.ErrNotFound)

	_, err := svc.Profile(context.Background(), "ghost@example.com")
	assert.EqualError(t, err, "User does not exist")
}

func TestUserGetMissingReturnsNil(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewUserService(userRepo)
	userRepo.On("FindByID", mock.Anything, "gone").Return(nil, common.ErrNotFound)

	user, err := svc.Get(context.Background(), "gone")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserUpdateAppliesOnlyProvidedFields(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewUserService(userRepo)

	userRepo.On("FindByID", mock.Anything, "u1").Return(&model.User{
		ID: "u1", FirstName: "Ada", LastName: "Lovelace", CompanyName: "Analytical",
	}, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.FirstName == "Augusta" && u.LastName == "Lovelace" && u.CompanyName == "Analytical"
	})).Return(nil)

	firstName := "Augusta"
	user, err := svc.Update(context.Background(), "u1", UpdateUserRequest{FirstName: &firstName})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Augusta", user.FirstName)
	userRepo.AssertExpectations(t)
}

func TestUserDeleteThenRestore(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewUserService(userRepo)

	stored := &model.User{ID: "u1", IsVerified: true}
	userRepo.On("FindByID", mock.Anything, "u1").Return(stored, nil)
	userRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	deleted, err := svc.Delete(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.True(t, deleted.IsDeleted)
	require.NotNil(t, deleted.DeletedAt)

	restored, err := svc.Restore(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.False(t, restored.IsDeleted)
	// A restored account must go through email verification again.
	assert.False(t, restored.IsVerified)
	require.NotNil(t, restored.DeletedAt)
}

func TestUserListStripsPasswords(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewUserService(userRepo)

	userRepo.On("List", mock.Anything, 1, 10).Return([]model.User{
		{ID: "u1", Password: "hash1"},
		{ID: "u2", Password: "hash2"},
	}, 2, nil)

	result, err := svc.List(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, result.Users, 2)
	for _, u := range result.Users {
		assert.Empty(t, u.Password)
	}
	assert.Equal(t, 2, result.Pagination.TotalCount)
}
