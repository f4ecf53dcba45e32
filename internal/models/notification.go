package models

import (
	"time"

	"athar/internal/domain"
)

type Notification struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"` // recipient
	SenderID    *uint     `gorm:"index" json:"sender_id"`
	Type        string    `gorm:"size:20;not null;index" json:"type"`
	Title       string    `gorm:"size:255" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	RelatedType string    `gorm:"size:20" json:"related_type"`
	RelatedID   *uint     `json:"related_id"`
	Data        string    `gorm:"type:text" json:"data,omitempty"` // JSON payload
	IsRead      bool      `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`

	User   User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Sender *User `gorm:"foreignKey:SenderID;constraint:OnDelete:SET NULL" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}

// SetRelated stores ref in the flat related_type/related_id columns.
func (n *Notification) SetRelated(ref *domain.TargetRef) {
	if ref == nil {
		n.RelatedType, n.RelatedID = "", nil
		return
	}
	id := ref.ID
	n.RelatedType, n.RelatedID = string(ref.Kind), &id
}

// Related returns nil when no related entity is recorded.
func (n *Notification) Related() *domain.TargetRef {
	if n.RelatedID == nil || n.RelatedType == "" {
		return nil
	}
	return &domain.TargetRef{Kind: domain.TargetKind(n.RelatedType), ID: *n.RelatedID}
}
