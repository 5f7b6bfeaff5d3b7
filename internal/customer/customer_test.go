package customer

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewRepository(db), mock, func() { db.Close() }
}

func TestUpsert(t *testing.T) {
	ctx := context.Background()

	t.Run("same phone keeps one identity", func(t *testing.T) {
		repo, mock, done := newMockRepo(t)
		defer done()

		mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (phone) DO UPDATE")).
			WithArgs("Asha", "+919800000001").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(5, time.Now()))

		cust, err := repo.Upsert(ctx, CustomerInput{Name: "Asha", Phone: "+919800000001"})
		require.NoError(t, err)
		assert.Equal(t, 5, cust.ID)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		repo, mock, done := newMockRepo(t)
		defer done()

		_, err := repo.Upsert(ctx, CustomerInput{Phone: "+919800000001"})
		assert.ErrorIs(t, err, ErrNameRequired)

		_, err = repo.Upsert(ctx, CustomerInput{Name: "Asha"})
		assert.ErrorIs(t, err, ErrPhoneRequired)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		repo, mock, done := newMockRepo(t)
		defer done()

		mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE id = $1")).
			WithArgs(99).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "created_at"}))

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
