package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"athar/internal/domain"
	"athar/internal/models"
	"athar/internal/repository"

	"gorm.io/gorm"
)

var contactStatuses = map[string]bool{
	domain.ContactStatusPending: true,
	domain.ContactStatusRead:    true,
	domain.ContactStatusReplied: true,
	domain.ContactStatusClosed:  true,
}

type ContactInput struct {
	Name    string
	Phone   string
	Email   string
	Subject string
	Message string
}

type ContactService struct {
	repo     *repository.ContactRepository
	userRepo *repository.UserRepository
	notify   *NotificationService
	now      func() time.Time
}

func NewContactService(repo *repository.ContactRepository, userRepo *repository.UserRepository, notify *NotificationService) *ContactService {
	return &ContactService{repo: repo, userRepo: userRepo, notify: notify, now: time.Now}
}

// Create stores a message from a signed-in user; missing name/phone are taken from the account.
func (s *ContactService) Create(ctx context.Context, userID uint, in ContactInput) (*models.ContactMessage, error) {
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	if in.Subject == "" || in.Message == "" {
		return nil, fmt.Errorf("%w: subject and message are required", ErrInvalidInput)
	}
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	m := &models.ContactMessage{
		UserID:  &u.ID,
		Name:    strings.TrimSpace(in.Name),
		Phone:   strings.TrimSpace(in.Phone),
		Email:   strings.TrimSpace(in.Email),
		Subject: in.Subject,
		Message: in.Message,
		Status:  domain.ContactStatusPending,
	}
	if m.Name == "" {
		m.Name = u.Name
	}
	if m.Phone == "" {
		m.Phone = u.Phone
	}
	if m.Email == "" && u.Email != nil {
		m.Email = *u.Email
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *ContactService) ListMine(ctx context.Context, userID uint, page, limit int) ([]models.ContactMessage, int64, error) {
	return s.repo.ListByUser(ctx, userID, page, limit)
}

func (s *ContactService) List(ctx context.Context, status string, page, limit int) ([]models.ContactMessage, int64, error) {
	if status != "" && !contactStatuses[status] {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.List(ctx, status, page, limit)
}

// Get returns a message for staff; opening a pending message marks it read.
func (s *ContactService) Get(ctx context.Context, id uint) (*models.ContactMessage, error) {
	m, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.Status == domain.ContactStatusPending {
		if _, err := s.repo.UpdateFields(ctx, id, map[string]interface{}{"status": domain.ContactStatusRead}); err != nil {
			return nil, err
		}
		m.Status = domain.ContactStatusRead
	}
	return m, nil
}

func (s *ContactService) get(ctx context.Context, id uint) (*models.ContactMessage, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *ContactService) UpdateStatus(ctx context.Context, id uint, status string) error {
	if !contactStatuses[status] {
		return ErrInvalidStatus
	}
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	_, err := s.repo.UpdateFields(ctx, id, map[string]interface{}{"status": status})
	return err
}

// Reply records the staff answer and notifies the author.
func (s *ContactService) Reply(ctx context.Context, staffID, id uint, reply string) (*models.ContactMessage, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, fmt.Errorf("%w: reply is required", ErrInvalidInput)
	}
	m, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	fields := map[string]interface{}{
		"reply":      reply,
		"replied_by": staffID,
		"replied_at": now,
		"status":     domain.ContactStatusReplied,
	}
	if _, err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	m.Reply, m.RepliedBy, m.RepliedAt, m.Status = reply, &staffID, &now, domain.ContactStatusReplied
	if m.UserID != nil {
		s.notify.Emit(ctx, Notice{
			Recipient: *m.UserID,
			Sender:    staffID,
			Type:      domain.NotificationAdmin,
			Title:     "Reply to your message",
			Content:   fmt.Sprintf("Support replied to %q", m.Subject),
			Data:      map[string]interface{}{"message_id": m.ID},
		})
	}
	return m, nil
}

func (s *ContactService) Delete(ctx context.Context, id uint) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrMessageNotFound
	}
	return nil
}
