package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"athar/internal/domain"
	"athar/internal/models"
	"athar/internal/repository"

	"gorm.io/gorm"
)

// Pusher delivers a push message to a device token. *FCMService implements it.
type Pusher interface {
	SendToUser(ctx context.Context, fcmToken string, notifType, title, body string, data map[string]interface{}) error
}

// Notice is a notification about to be emitted. Sender 0 means the system.
type Notice struct {
	Recipient uint
	Sender    uint
	Type      string
	Title     string
	Content   string
	Related   *domain.TargetRef
	Data      map[string]interface{}
}

var defaultTitles = map[string]string{
	domain.NotificationLike:     "New like",
	domain.NotificationFavorite: "Saved to favorites",
	domain.NotificationComment:  "New comment",
	domain.NotificationFollow:   "New follower",
	domain.NotificationMention:  "You were mentioned",
	domain.NotificationAdmin:    "Athar",
}

type NotificationService struct {
	repo     *repository.NotificationRepository
	userRepo *repository.UserRepository
	push     Pusher
}

func NewNotificationService(repo *repository.NotificationRepository, userRepo *repository.UserRepository, push Pusher) *NotificationService {
	return &NotificationService{repo: repo, userRepo: userRepo, push: push}
}

// Emit records a notification and pushes it. It never fails the caller: errors are logged.
// A notice addressed to its own sender is dropped.
func (s *NotificationService) Emit(ctx context.Context, n Notice) {
	if n.Recipient == 0 || (n.Sender != 0 && n.Sender == n.Recipient) {
		return
	}
	row := s.build(n)
	if err := s.repo.Create(ctx, row); err != nil {
		log.Printf("[notify] create %s for user %d: %v", n.Type, n.Recipient, err)
		return
	}
	s.sendPush(ctx, n.Recipient, row.Type, row.Title, row.Content, n.Data)
}

func (s *NotificationService) build(n Notice) *models.Notification {
	title := n.Title
	if title == "" {
		title = defaultTitles[n.Type]
	}
	row := &models.Notification{
		UserID:  n.Recipient,
		Type:    n.Type,
		Title:   title,
		Content: n.Content,
	}
	if n.Sender != 0 {
		sender := n.Sender
		row.SenderID = &sender
	}
	row.SetRelated(n.Related)
	if n.Data != nil {
		b, _ := json.Marshal(n.Data)
		row.Data = string(b)
	}
	return row
}

func (s *NotificationService) sendPush(ctx context.Context, userID uint, notifType, title, body string, data map[string]interface{}) {
	if s.push == nil || s.userRepo == nil {
		return
	}
	token, err := s.userRepo.PushToken(ctx, userID)
	if err != nil || token == "" {
		return
	}
	if err := s.push.SendToUser(ctx, token, notifType, title, body, data); err != nil {
		log.Printf("[notify] push to user %d: %v", userID, err)
	}
}

// Broadcast sends an admin notice to every listed user, or to all active users when ids is empty.
// Unknown ids are skipped; a list with no known user is ErrUserNotFound.
// It returns the number of notifications written.
func (s *NotificationService) Broadcast(ctx context.Context, senderID uint, ids []uint, title, content string, data map[string]interface{}) (int, error) {
	if len(ids) == 0 {
		all, err := s.userRepo.AllIDs(ctx)
		if err != nil {
			return 0, err
		}
		ids = all
	} else {
		known, err := s.userRepo.GetByIDs(ctx, ids)
		if err != nil {
			return 0, err
		}
		if len(known) == 0 {
			return 0, ErrUserNotFound
		}
		kept := make([]uint, 0, len(ids))
		for _, id := range ids {
			if _, ok := known[id]; ok {
				kept = append(kept, id)
			}
		}
		ids = kept
	}
	rows := make([]models.Notification, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		rows = append(rows, *s.build(Notice{Recipient: id, Sender: senderID, Type: domain.NotificationAdmin, Title: title, Content: content, Data: data}))
	}
	if err := s.repo.CreateBatch(ctx, rows); err != nil {
		return 0, err
	}
	for _, r := range rows {
		s.sendPush(ctx, r.UserID, r.Type, r.Title, r.Content, data)
	}
	return len(rows), nil
}

type NotificationPage struct {
	Items       []repository.NotificationRow
	Total       int64
	UnreadCount int64
}

func (s *NotificationService) List(ctx context.Context, userID uint, unreadOnly bool, page, limit int) (*NotificationPage, error) {
	items, total, err := s.repo.ListByUserID(ctx, userID, unreadOnly, page, limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &NotificationPage{Items: items, Total: total, UnreadCount: unread}, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *NotificationService) owned(ctx context.Context, userID, id uint) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	if n.UserID != userID {
		return ErrForbidden
	}
	return nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uint) error {
	if err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.MarkRead(ctx, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
