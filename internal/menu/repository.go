package menu

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"dineqr-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Fetch(ctx context.Context, filter *ItemFilterInput, limit, page *int32) ([]*Item, int, error)
	GetByID(ctx context.Context, id int) (*Item, error)
	Create(ctx context.Context, item *Item) error
	Update(ctx context.Context, id int, input UpdateItemInput) (*Item, error)
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const itemColumns = `id, category_id, name, description, price_inr, price_usd,
       available, image_url, created_at, updated_at`

func scanItem(row interface{ Scan(...interface{}) error }) (*Item, error) {
	var it Item
	err := row.Scan(
		&it.ID, &it.CategoryID, &it.Name, &it.Description,
		&it.PriceINR, &it.PriceUSD, &it.Available, &it.ImageURL,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Fetch returns one page of items plus the unpaged match count.
func (r *repository) Fetch(
	ctx context.Context,
	filter *ItemFilterInput,
	limit, page *int32,
) ([]*Item, int, error) {

	finalLimit := int32(20)
	finalPage := int32(1)

	if limit != nil && *limit > 0 {
		finalLimit = *limit
	}
	if page != nil && *page > 0 {
		finalPage = *page
	}
	if finalLimit > 100 {
		finalLimit = 100
	}

	offset := (finalPage - 1) * finalLimit

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Fetch"),
	)

	where := " WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter != nil {
		if filter.CategoryID != nil {
			where += fmt.Sprintf(" AND category_id = $%d", argIndex)
			args = append(args, *filter.CategoryID)
			argIndex++
		}
		if filter.Available != nil {
			where += fmt.Sprintf(" AND available = $%d", argIndex)
			args = append(args, *filter.Available)
			argIndex++
		}
		if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
			where += fmt.Sprintf(" AND name ILIKE $%d", argIndex)
			args = append(args, "%"+strings.TrimSpace(*filter.Search)+"%")
			argIndex++
		}
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM menu_items" + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count menu items", zap.Error(err))
		return nil, 0, err
	}

	query := "SELECT " + itemColumns + " FROM menu_items" + where +
		" ORDER BY name ASC" +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, finalLimit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query menu items", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	items := []*Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Item, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+itemColumns+` FROM menu_items WHERE id = $1
	`, id)

	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return it, err
}

func (r *repository) Create(ctx context.Context, item *Item) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO menu_items (category_id, name, description, price_inr, price_usd, available, image_url)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6)
		RETURNING id, available, created_at, updated_at
	`,
		item.CategoryID, item.Name, item.Description,
		item.PriceINR, item.PriceUSD, item.ImageURL,
	).Scan(&item.ID, &item.Available, &item.CreatedAt, &item.UpdatedAt)
}

func (r *repository) Update(ctx context.Context, id int, input UpdateItemInput) (*Item, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE menu_items
		SET category_id = COALESCE($1, category_id),
		    name        = COALESCE($2, name),
		    description = COALESCE($3, description),
		    price_inr   = COALESCE($4, price_inr),
		    price_usd   = COALESCE($5, price_usd),
		    available   = COALESCE($6, available),
		    image_url   = COALESCE($7, image_url),
		    updated_at  = NOW()
		WHERE id = $8
		RETURNING `+itemColumns+`
	`,
		input.CategoryID, input.Name, input.Description,
		input.PriceINR, input.PriceUSD, input.Available, input.ImageURL,
		id,
	)

	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return it, err
}

func (r *repository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
