package staff

import (
	"context"
	"testing"

	"dineqr-be/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByUsername(ctx context.Context, username string) (*Staff, error) {
	args := m.Called(ctx, username)
	if s := args.Get(0); s != nil {
		return s.(*Staff), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, s *Staff) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func activeStaff(t *testing.T, password string) *Staff {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &Staff{
		ID:       1,
		Username: "anita",
		Name:     "Anita",
		Password: hash,
		Role:     RoleWaiter,
		Active:   true,
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("valid credentials return a parseable token", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByUsername", ctx, "anita").Return(activeStaff(t, "s3cretpass"), nil)

		token, member, err := svc.Login(ctx, LoginInput{Username: "anita", Password: "s3cretpass"})
		require.NoError(t, err)
		assert.Equal(t, RoleWaiter, member.Role)

		claims, err := auth.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, 1, claims.StaffID)
		assert.Equal(t, "Anita", claims.Name)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByUsername", ctx, "anita").Return(activeStaff(t, "s3cretpass"), nil)
		repo.On("GetByUsername", ctx, "ghost").Return(nil, ErrNotFound)

		_, _, err := svc.Login(ctx, LoginInput{Username: "anita", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, _, err = svc.Login(ctx, LoginInput{Username: "ghost", Password: "anything"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive account cannot log in", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		member := activeStaff(t, "s3cretpass")
		member.Active = false
		repo.On("GetByUsername", ctx, "anita").Return(member, nil)

		_, _, err := svc.Login(ctx, LoginInput{Username: "anita", Password: "s3cretpass"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password and normalizes the username", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, mock.AnythingOfType("*staff.Staff")).Return(nil)

		member, err := svc.Register(ctx, RegisterInput{
			Username: " Anita ",
			Name:     "Anita",
			Password: "s3cretpass",
			Role:     RoleWaiter,
		})
		require.NoError(t, err)
		assert.Equal(t, "anita", member.Username)
		assert.NotEqual(t, "s3cretpass", member.Password)
		assert.True(t, auth.CheckPasswordHash("s3cretpass", member.Password))
	})

	t.Run("rejects bad input", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.Register(ctx, RegisterInput{Username: "x", Password: "s3cretpass", Role: "chef"})
		assert.ErrorIs(t, err, ErrInvalidRole)

		_, err = svc.Register(ctx, RegisterInput{Username: "x", Password: "short", Role: RoleWaiter})
		assert.ErrorIs(t, err, ErrWeakPassword)

		repo.AssertNotCalled(t, "Create")
	})
}
