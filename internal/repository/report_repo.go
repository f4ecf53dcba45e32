package repository

import (
	"context"
	"time"

	"athar/internal/models"

	"gorm.io/gorm"
)

type ReportFilter struct {
	Status string
	Type   string
}

// ReportRow is a report joined with the reporter's name and phone.
type ReportRow struct {
	ID            uint      `json:"id"`
	ReporterID    uint      `json:"reporter_id"`
	TargetType    string    `json:"type"`
	TargetID      uint      `json:"target_id"`
	Reason        string    `json:"reason"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	AdminNotes    string    `json:"admin_notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	ReporterName  string    `json:"reporter_name"`
	ReporterPhone string    `json:"reporter_phone"`
}

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *ReportRepository) rows(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("reports AS r").
		Select("r.id, r.reporter_id, r.target_type, r.target_id, r.reason, r.description, r.status, r.admin_notes, r.created_at, r.updated_at, " +
			"u.name AS reporter_name, u.phone AS reporter_phone").
		Joins("JOIN users u ON u.id = r.reporter_id")
}

func (r *ReportRepository) GetRow(ctx context.Context, id uint) (*ReportRow, error) {
	var list []ReportRow
	if err := r.rows(ctx).Where("r.id = ?", id).Limit(1).Scan(&list).Error; err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &list[0], nil
}

func (r *ReportRepository) List(ctx context.Context, f ReportFilter, page, limit int) ([]ReportRow, int64, error) {
	count := r.db.WithContext(ctx).Model(&models.Report{})
	q := r.rows(ctx)
	if f.Status != "" {
		count = count.Where("status = ?", f.Status)
		q = q.Where("r.status = ?", f.Status)
	}
	if f.Type != "" {
		count = count.Where("target_type = ?", f.Type)
		q = q.Where("r.target_type = ?", f.Type)
	}
	var total int64
	if err := count.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	list := []ReportRow{}
	err := q.Order("r.created_at DESC").Order("r.id DESC").Limit(limit).Offset(Offset(page, limit)).Scan(&list).Error
	return list, total, err
}

// UpdateStatus reports whether the report existed.
func (r *ReportRepository) UpdateStatus(ctx context.Context, id uint, status, notes string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Report{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "admin_notes": notes})
	return res.RowsAffected > 0, res.Error
}
