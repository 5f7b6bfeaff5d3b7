package customer

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// Customer is an optional identity a diner can attach to orders, keyed by
// phone number. Anonymous ordering stays the default.
type Customer struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

type CustomerInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

var (
	ErrNotFound      = errors.New("customer not found")
	ErrNameRequired  = errors.New("customer name is required")
	ErrPhoneRequired = errors.New("customer phone is required")
)

type Repository interface {
	GetByID(ctx context.Context, id int) (*Customer, error)
	Upsert(ctx context.Context, input CustomerInput) (*Customer, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id int) (*Customer, error) {
	var cust Customer
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, phone, created_at FROM customers WHERE id = $1
	`, id).Scan(&cust.ID, &cust.Name, &cust.Phone, &cust.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cust, nil
}

// Upsert keys on phone so a returning diner keeps one identity across visits.
func (r *repository) Upsert(ctx context.Context, input CustomerInput) (*Customer, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(input.Phone) == "" {
		return nil, ErrPhoneRequired
	}

	cust := Customer{
		Name:  strings.TrimSpace(input.Name),
		Phone: strings.TrimSpace(input.Phone),
	}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO customers (name, phone)
		VALUES ($1, $2)
		ON CONFLICT (phone) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, created_at
	`, cust.Name, cust.Phone).Scan(&cust.ID, &cust.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &cust, nil
}
