package service

import (
	"context"
	"errors"

	"athar/config"
	"athar/internal/auth"
	"athar/internal/models"
	"athar/internal/repository"

	"gorm.io/gorm"
)

// SessionService turns a bearer token into the current user, re-reading the user on every call
// so bans and deletions take effect before the token expires.
type SessionService struct {
	cfg      *config.JWTConfig
	userRepo *repository.UserRepository
}

func NewSessionService(cfg *config.JWTConfig, userRepo *repository.UserRepository) *SessionService {
	return &SessionService{cfg: cfg, userRepo: userRepo}
}

func (s *SessionService) Authenticate(ctx context.Context, token string) (*models.User, *auth.Claims, error) {
	claims, err := auth.ParseToken(s.cfg, token)
	if err != nil {
		return nil, nil, err
	}
	u, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	if u.IsBanned {
		return nil, nil, ErrAccountBanned
	}
	return u, claims, nil
}
