package table

import (
	"context"
	"database/sql"
	"errors"

	"dineqr-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, onlyActive bool) ([]*Table, error)
	GetByNumber(ctx context.Context, number int) (*Table, error)
	GetBySlug(ctx context.Context, slug string) (*Table, error)
	Create(ctx context.Context, t *Table) error
	Update(ctx context.Context, id int, input UpdateTableInput) (*Table, error)
	Deactivate(ctx context.Context, id int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const tableColumns = `id, number, name, group_id, qr_slug, active, created_at`

func scanTable(row interface{ Scan(...interface{}) error }) (*Table, error) {
	var t Table
	err := row.Scan(&t.ID, &t.Number, &t.Name, &t.GroupID, &t.QRSlug, &t.Active, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) List(ctx context.Context, onlyActive bool) ([]*Table, error) {
	query := `SELECT ` + tableColumns + ` FROM tables`
	if onlyActive {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY number ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := []*Table{}
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

func (r *repository) GetByNumber(ctx context.Context, number int) (*Table, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+tableColumns+` FROM tables WHERE number = $1
	`, number)

	t, err := scanTable(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Table, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+tableColumns+` FROM tables WHERE qr_slug = $1
	`, slug)

	t, err := scanTable(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

func (r *repository) Create(ctx context.Context, t *Table) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.Int("number", t.Number),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO tables (number, name, group_id, qr_slug, active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id, active, created_at
	`, t.Number, t.Name, t.GroupID, t.QRSlug).Scan(&t.ID, &t.Active, &t.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		log.Warn("duplicate table number")
		return ErrDuplicateNumber
	}
	if err != nil {
		log.Error("failed to insert table", zap.Error(err))
		return err
	}

	log.Info("table created", zap.Int("id", t.ID))
	return nil
}

func (r *repository) Update(ctx context.Context, id int, input UpdateTableInput) (*Table, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE tables
		SET name     = COALESCE($1, name),
		    group_id = COALESCE($2, group_id),
		    active   = COALESCE($3, active)
		WHERE id = $4
		RETURNING `+tableColumns+`
	`, input.Name, input.GroupID, input.Active, id)

	t, err := scanTable(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

// Deactivate soft-deletes: the row stays so past orders keep their FK.
func (r *repository) Deactivate(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tables SET active = FALSE WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
