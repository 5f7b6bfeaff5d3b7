package staff

import (
	"context"
	"strings"

	"dineqr-be/internal/auth"
	"dineqr-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Login(ctx context.Context, input LoginInput) (string, *Staff, error)
	Register(ctx context.Context, input RegisterInput) (*Staff, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Login verifies credentials and mints a signed token. Unknown usernames and
// wrong passwords produce the same error so the endpoint leaks nothing.
func (s *service) Login(ctx context.Context, input LoginInput) (string, *Staff, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
		zap.String("username", input.Username),
	)

	member, err := s.repo.GetByUsername(ctx, input.Username)
	if err != nil {
		log.Warn("login failed", zap.Error(err))
		return "", nil, ErrInvalidCredentials
	}
	if !member.Active {
		log.Warn("login attempt for inactive account")
		return "", nil, ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(input.Password, member.Password) {
		log.Warn("password mismatch")
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(member.ID, member.Name, member.Role)
	if err != nil {
		log.Error("failed to sign token", zap.Error(err))
		return "", nil, err
	}

	log.Info("login succeeded", zap.String("role", member.Role))
	return token, member, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*Staff, error) {
	switch input.Role {
	case RoleAdmin, RoleManager, RoleWaiter, RoleKitchen:
	default:
		return nil, ErrInvalidRole
	}
	if len(input.Password) < 8 {
		return nil, ErrWeakPassword
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	member := &Staff{
		Username: strings.ToLower(strings.TrimSpace(input.Username)),
		Name:     strings.TrimSpace(input.Name),
		Password: hash,
		Role:     input.Role,
	}
	if err := s.repo.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}
