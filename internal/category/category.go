package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Category groups menu items for the customer-facing menu.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SortOrder   int    `json:"sortOrder"`
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SortOrder   int    `json:"sortOrder"`
}

var (
	ErrNotFound     = errors.New("category not found")
	ErrNameRequired = errors.New("category name is required")
)

type Repository interface {
	Fetch(ctx context.Context, search *string, limit, page *int32) ([]*Category, int, error)
	GetByID(ctx context.Context, id int) (*Category, error)
	Create(ctx context.Context, input CategoryInput) (*Category, error)
	Update(ctx context.Context, id int, input CategoryInput) (*Category, error)
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Fetch(ctx context.Context, search *string, limit, page *int32) ([]*Category, int, error) {
	finalLimit := int32(50)
	finalPage := int32(1)

	if limit != nil && *limit > 0 {
		finalLimit = *limit
	}
	if page != nil && *page > 0 {
		finalPage = *page
	}

	offset := (finalPage - 1) * finalLimit

	where := " WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if search != nil && strings.TrimSpace(*search) != "" {
		where += fmt.Sprintf(" AND name ILIKE $%d", argIndex)
		args = append(args, "%"+strings.TrimSpace(*search)+"%")
		argIndex++
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT id, name, description, sort_order FROM categories" + where +
		" ORDER BY sort_order ASC, name ASC" +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, finalLimit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	categories := []*Category{}
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Description, &cat.SortOrder); err != nil {
			return nil, 0, err
		}
		categories = append(categories, &cat)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Category, error) {
	var cat Category
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, sort_order FROM categories WHERE id = $1
	`, id).Scan(&cat.ID, &cat.Name, &cat.Description, &cat.SortOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *repository) Create(ctx context.Context, input CategoryInput) (*Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}

	cat := Category{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		SortOrder:   input.SortOrder,
	}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, description, sort_order)
		VALUES ($1, $2, $3)
		RETURNING id
	`, cat.Name, cat.Description, cat.SortOrder).Scan(&cat.ID)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *repository) Update(ctx context.Context, id int, input CategoryInput) (*Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}

	cat := Category{
		ID:          id,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		SortOrder:   input.SortOrder,
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE categories
		SET name = $1, description = $2, sort_order = $3
		WHERE id = $4
	`, cat.Name, cat.Description, cat.SortOrder, id)
	if err != nil {
		return nil, err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return nil, ErrNotFound
	}
	return &cat, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
