package models

import (
	"time"

	"athar/internal/domain"
)

type Report struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ReporterID  uint      `gorm:"not null;index" json:"reporter_id"`
	TargetType  string    `gorm:"size:20;not null;index:idx_report_target" json:"type"`
	TargetID    uint      `gorm:"not null;index:idx_report_target" json:"target_id"`
	Reason      string    `gorm:"size:100;not null" json:"reason"`
	Description string    `gorm:"type:text" json:"description"`
	Status      string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	AdminNotes  string    `gorm:"type:text" json:"admin_notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Reporter User `gorm:"foreignKey:ReporterID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Report) TableName() string {
	return "reports"
}

func (r *Report) Target() domain.TargetRef {
	return domain.TargetRef{Kind: domain.TargetKind(r.TargetType), ID: r.TargetID}
}
