package models

import "time"

type ContactMessage struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    *uint      `gorm:"index" json:"user_id"`
	Name      string     `gorm:"size:100;not null" json:"name"`
	Phone     string     `gorm:"size:20" json:"phone"`
	Email     string     `gorm:"size:255" json:"email"`
	Subject   string     `gorm:"size:255;not null" json:"subject"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	Status    string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Reply     string     `gorm:"type:text" json:"reply"`
	RepliedBy *uint      `json:"replied_by"`
	RepliedAt *time.Time `json:"replied_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
