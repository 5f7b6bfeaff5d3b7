package menu

import (
	"context"
	"strings"
)

type Service interface {
	Fetch(ctx context.Context, filter *ItemFilterInput, limit, page *int32) ([]*Item, int, error)
	GetByID(ctx context.Context, id int) (*Item, error)
	Create(ctx context.Context, input CreateItemInput) (*Item, error)
	Update(ctx context.Context, id int, input UpdateItemInput) (*Item, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Fetch(ctx context.Context, filter *ItemFilterInput, limit, page *int32) ([]*Item, int, error) {
	return s.repo.Fetch(ctx, filter, limit, page)
}

func (s *service) GetByID(ctx context.Context, id int) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input CreateItemInput) (*Item, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}
	if input.PriceINR < 0 || input.PriceUSD < 0 {
		return nil, ErrInvalidPrice
	}

	item := &Item{
		CategoryID:  input.CategoryID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		PriceINR:    input.PriceINR,
		PriceUSD:    input.PriceUSD,
		ImageURL:    input.ImageURL,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) Update(ctx context.Context, id int, input UpdateItemInput) (*Item, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, ErrNameRequired
	}
	if (input.PriceINR != nil && *input.PriceINR < 0) ||
		(input.PriceUSD != nil && *input.PriceUSD < 0) {
		return nil, ErrInvalidPrice
	}
	return s.repo.Update(ctx, id, input)
}

func (s *service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
