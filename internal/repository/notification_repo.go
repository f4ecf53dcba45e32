package repository

import (
	"context"
	"time"

	"athar/internal/models"

	"gorm.io/gorm"
)

// NotificationRow is a notification joined with its sender's display fields.
type NotificationRow struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	SenderID    *uint     `json:"sender_id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	RelatedType string    `json:"related_type"`
	RelatedID   *uint     `json:"related_id"`
	Data        string    `json:"data,omitempty"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
	SenderName  *string   `json:"sender_name"`
	SenderImage *string   `json:"sender_image"`
}

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// CreateBatch inserts in chunks (broadcasts).
func (r *NotificationRepository) CreateBatch(ctx context.Context, list []models.Notification) error {
	if len(list) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(list, 500).Error
}

func (r *NotificationRepository) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) ListByUserID(ctx context.Context, userID uint, unreadOnly bool, page, limit int) ([]NotificationRow, int64, error) {
	count := r.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", userID)
	q := r.db.WithContext(ctx).Table("notifications AS n").
		Select("n.id, n.user_id, n.sender_id, n.type, n.title, n.content, n.related_type, n.related_id, n.data, n.is_read, n.created_at, " +
			"s.name AS sender_name, s.profile_image AS sender_image").
		Joins("LEFT JOIN users s ON s.id = n.sender_id").
		Where("n.user_id = ?", userID)
	if unreadOnly {
		count = count.Where("is_read = ?", false)
		q = q.Where("n.is_read = ?", false)
	}
	var total int64
	if err := count.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	list := []NotificationRow{}
	err := q.Order("n.created_at DESC").Order("n.id DESC").Limit(limit).Offset(Offset(page, limit)).Scan(&list).Error
	return list, total, err
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var c int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", userID, false).Count(&c).Error
	return c, err
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", id).Update("is_read", true).Error
}

// MarkAllRead returns how many notifications changed state.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *NotificationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Notification{}).Error
}
