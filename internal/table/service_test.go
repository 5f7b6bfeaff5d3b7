package table

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, onlyActive bool) ([]*Table, error) {
	args := m.Called(ctx, onlyActive)
	if t := args.Get(0); t != nil {
		return t.([]*Table), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetByNumber(ctx context.Context, number int) (*Table, error) {
	args := m.Called(ctx, number)
	if t := args.Get(0); t != nil {
		return t.(*Table), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetBySlug(ctx context.Context, slug string) (*Table, error) {
	args := m.Called(ctx, slug)
	if t := args.Get(0); t != nil {
		return t.(*Table), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, t *Table) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, id int, input UpdateTableInput) (*Table, error) {
	args := m.Called(ctx, id, input)
	if t := args.Get(0); t != nil {
		return t.(*Table), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) Deactivate(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns a fresh slug", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, mock.AnythingOfType("*table.Table")).Return(nil)

		tbl, err := svc.Create(ctx, CreateTableInput{Number: 3, Name: " Window 3 "})
		require.NoError(t, err)
		assert.NotEmpty(t, tbl.QRSlug)
		assert.Equal(t, "Window 3", tbl.Name)
	})

	t.Run("rejects bad input without touching the repository", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.Create(ctx, CreateTableInput{Number: 0, Name: "x"})
		assert.ErrorIs(t, err, ErrInvalidNumber)

		_, err = svc.Create(ctx, CreateTableInput{Number: 3, Name: "  "})
		assert.ErrorIs(t, err, ErrNameRequired)

		repo.AssertNotCalled(t, "Create")
	})
}

func TestServiceResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("active table resolves", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetBySlug", ctx, "slug-3").
			Return(&Table{ID: 11, Number: 3, Active: true}, nil)

		tbl, err := svc.Resolve(ctx, "slug-3")
		require.NoError(t, err)
		assert.Equal(t, 3, tbl.Number)
	})

	t.Run("retired table stops resolving", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetBySlug", ctx, "slug-old").
			Return(&Table{ID: 12, Number: 4, Active: false}, nil)

		_, err := svc.Resolve(ctx, "slug-old")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
