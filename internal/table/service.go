package table

import (
	"context"
	"strings"

	"dineqr-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, onlyActive bool) ([]*Table, error)
	GetByNumber(ctx context.Context, number int) (*Table, error)
	Resolve(ctx context.Context, slug string) (*Table, error)
	Create(ctx context.Context, input CreateTableInput) (*Table, error)
	Update(ctx context.Context, id int, input UpdateTableInput) (*Table, error)
	Deactivate(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, onlyActive bool) ([]*Table, error) {
	return s.repo.List(ctx, onlyActive)
}

func (s *service) GetByNumber(ctx context.Context, number int) (*Table, error) {
	return s.repo.GetByNumber(ctx, number)
}

// Resolve maps a scanned QR slug to its table. Inactive tables resolve to
// not found so stale QR codes stop working the moment a table is retired.
func (s *service) Resolve(ctx context.Context, slug string) (*Table, error) {
	t, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !t.Active {
		return nil, ErrNotFound
	}
	return t, nil
}

func (s *service) Create(ctx context.Context, input CreateTableInput) (*Table, error) {
	if input.Number < 1 {
		return nil, ErrInvalidNumber
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}

	t := &Table{
		Number:  input.Number,
		Name:    strings.TrimSpace(input.Name),
		GroupID: input.GroupID,
		QRSlug:  uuid.NewString(),
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("table registered",
		zap.Int("number", t.Number),
		zap.String("qr_slug", t.QRSlug),
	)
	return t, nil
}

func (s *service) Update(ctx context.Context, id int, input UpdateTableInput) (*Table, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, ErrNameRequired
	}
	return s.repo.Update(ctx, id, input)
}

func (s *service) Deactivate(ctx context.Context, id int) error {
	return s.repo.Deactivate(ctx, id)
}
