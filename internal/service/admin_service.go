package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"athar/internal/repository"

	"gorm.io/gorm"
)

type AdminService struct {
	repo   *repository.AdminRepository
	notify *NotificationService
	now    func() time.Time
}

func NewAdminService(repo *repository.AdminRepository, notify *NotificationService) *AdminService {
	return &AdminService{repo: repo, notify: notify, now: time.Now}
}

func (s *AdminService) Stats(ctx context.Context) (*repository.DashboardStats, error) {
	return s.repo.GetDashboardStats(ctx, s.now())
}

func (s *AdminService) ListUsers(ctx context.Context, search, role string, banned *bool, page, limit int) ([]repository.AdminUserRow, int64, error) {
	return s.repo.ListUsers(ctx, strings.TrimSpace(search), role, banned, page, limit)
}

func (s *AdminService) GetUser(ctx context.Context, id uint) (*repository.AdminUserRow, error) {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// target loads a user an admin may act on: never themselves, never another admin.
func (s *AdminService) target(ctx context.Context, actorID, id uint) error {
	if actorID == id {
		return ErrSelfReference
	}
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if u.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

func (s *AdminService) Ban(ctx context.Context, actorID, id uint, reason string) error {
	if err := s.target(ctx, actorID, id); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	var r interface{}
	if reason != "" {
		r = reason
	}
	if _, err := s.repo.UpdateUser(ctx, id, map[string]interface{}{"is_banned": true, "ban_reason": r}); err != nil {
		return err
	}
	log.Printf("[admin] user %d banned by %d", id, actorID)
	return nil
}

func (s *AdminService) Unban(ctx context.Context, actorID, id uint) error {
	if err := s.target(ctx, actorID, id); err != nil {
		return err
	}
	if _, err := s.repo.UpdateUser(ctx, id, map[string]interface{}{"is_banned": false, "ban_reason": nil}); err != nil {
		return err
	}
	log.Printf("[admin] user %d unbanned by %d", id, actorID)
	return nil
}

// DeleteUser removes the user and all their content in one transaction.
func (s *AdminService) DeleteUser(ctx context.Context, actorID, id uint) error {
	if err := s.target(ctx, actorID, id); err != nil {
		return err
	}
	ok, err := s.repo.DeleteUserCascade(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserNotFound
	}
	log.Printf("[admin] user %d deleted by %d", id, actorID)
	return nil
}

// Broadcast sends an admin notification to ids, or to every active user when ids is empty.
func (s *AdminService) Broadcast(ctx context.Context, actorID uint, ids []uint, title, body string, data map[string]interface{}) (int, error) {
	title, body = strings.TrimSpace(title), strings.TrimSpace(body)
	if title == "" || body == "" {
		return 0, fmt.Errorf("%w: title and body are required", ErrInvalidInput)
	}
	return s.notify.Broadcast(ctx, actorID, ids, title, body, data)
}
