package menu

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

func itemRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "category_id", "name", "description", "price_inr", "price_usd",
		"available", "image_url", "created_at", "updated_at",
	})
}

func TestFetch(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("search filter builds ILIKE with count", func(t *testing.T) {
		repo, mock, done := newMockRepo(t)
		defer done()

		search := "paneer"

		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM menu_items")).
			WithArgs("%paneer%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(regexp.QuoteMeta("AND name ILIKE $1")).
			WithArgs("%paneer%", int32(20), int32(0)).
			WillReturnRows(itemRows().
				AddRow(7, nil, "Paneer Tikka", "", 299.0, 3.59, true, "", now, now))

		items, total, err := repo.Fetch(ctx, &ItemFilterInput{Search: &search}, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, items, 1)
		assert.Equal(t, "Paneer Tikka", items[0].Name)
	})

	t.Run("availability and category filters combine", func(t *testing.T) {
		repo, mock, done := newMockRepo(t)
		defer done()

		catID := 2
		avail := true

		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM menu_items")).
			WithArgs(2, true).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(regexp.QuoteMeta("AND available = $2")).
			WithArgs(2, true, int32(20), int32(0)).
			WillReturnRows(itemRows())

		items, total, err := repo.Fetch(ctx, &ItemFilterInput{CategoryID: &catID, Available: &avail}, nil, nil)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, items)
	})
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		repo, mock, done := newMockRepo(t)
		defer done()

		mock.ExpectQuery(regexp.QuoteMeta("FROM menu_items WHERE id = $1")).
			WithArgs(7).
			WillReturnRows(itemRows().
				AddRow(7, nil, "Paneer Tikka", "clay oven", 299.0, 3.59, true, "", now, now))

		item, err := repo.GetByID(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, 299.0, item.PriceINR)
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock, done := newMockRepo(t)
		defer done()

		mock.ExpectQuery(regexp.QuoteMeta("FROM menu_items WHERE id = $1")).
			WithArgs(99).
			WillReturnRows(itemRows())

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("zero rows is not found", func(t *testing.T) {
		repo, mock, done := newMockRepo(t)
		defer done()

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM menu_items WHERE id = $1")).
			WithArgs(99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, 99), ErrNotFound)
	})
}

func TestServiceValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("create rejects blank name and negative price", func(t *testing.T) {
		svc := NewService(nil)

		_, err := svc.Create(ctx, CreateItemInput{Name: "  ", PriceINR: 10})
		assert.ErrorIs(t, err, ErrNameRequired)

		_, err = svc.Create(ctx, CreateItemInput{Name: "Lassi", PriceINR: -1})
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("update rejects negative price", func(t *testing.T) {
		svc := NewService(nil)

		bad := -5.0
		_, err := svc.Update(ctx, 7, UpdateItemInput{PriceUSD: &bad})
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})
}
