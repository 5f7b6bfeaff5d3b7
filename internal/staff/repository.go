package staff

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type Repository interface {
	GetByUsername(ctx context.Context, username string) (*Staff, error)
	Create(ctx context.Context, s *Staff) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByUsername(ctx context.Context, username string) (*Staff, error) {
	var s Staff
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, name, password, role, active, created_at
		FROM staff WHERE username = $1
	`, username).Scan(&s.ID, &s.Username, &s.Name, &s.Password, &s.Role, &s.Active, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Create(ctx context.Context, s *Staff) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO staff (username, name, password, role, active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id, active, created_at
	`, s.Username, s.Name, s.Password, s.Role).Scan(&s.ID, &s.Active, &s.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrUsernameTaken
	}
	return err
}
