package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/casaflow/community-service/internal/auth"
	"github.com/casaflow/community-service/internal/config"
	"github.com/casaflow/community-service/internal/domain"
	"github.com/casaflow/community-service/internal/repository"
	apperrors "github.com/casaflow/community-service/pkg/util/errorutil"
)

// AuthService manages resident registration and login.
type AuthService struct {
	cfg       config.AuthConfig
	residents repository.ResidentRepository
	tokens    *auth.TokenManager
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.AuthConfig, residents repository.ResidentRepository) *AuthService {
	return &AuthService{
		cfg:       cfg,
		residents: residents,
		tokens:    auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// RegisterResident creates a resident account and issues a token.
func (s *AuthService) RegisterResident(ctx context.Context, name, email, phone, password, communityID string) (*domain.Resident, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.residents.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	resident := &domain.Resident{
		Name:         strings.TrimSpace(name),
		Email:        email,
		Phone:        strings.TrimSpace(phone),
		PasswordHash: hash,
		Role:         domain.RoleResident,
		CommunityID:  communityID,
	}
	if err := s.residents.Create(ctx, resident); err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	token, expiresAt, err := s.tokens.GenerateToken(resident.ID, resident.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return resident, token, expiresAt, nil
}

// LoginResident verifies credentials and issues a token.
func (s *AuthService) LoginResident(ctx context.Context, email, password string) (*domain.Resident, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	resident, err := s.residents.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(resident.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(resident.ID, resident.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return resident, token, expiresAt, nil
}
