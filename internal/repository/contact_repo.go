package repository

import (
	"context"

	"athar/internal/models"

	"gorm.io/gorm"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, m *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *ContactRepository) GetByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	var m models.ContactMessage
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ContactRepository) ListByUser(ctx context.Context, userID uint, page, limit int) ([]models.ContactMessage, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Where("user_id = ?", userID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.ContactMessage
	err := q.Order("created_at DESC").Order("id DESC").Limit(limit).Offset(Offset(page, limit)).Find(&list).Error
	return list, total, err
}

func (r *ContactRepository) List(ctx context.Context, status string, page, limit int) ([]models.ContactMessage, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.ContactMessage{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.ContactMessage
	err := q.Order("created_at DESC").Order("id DESC").Limit(limit).Offset(Offset(page, limit)).Find(&list).Error
	return list, total, err
}

func (r *ContactRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected > 0, res.Error
}

func (r *ContactRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ContactMessage{})
	return res.RowsAffected > 0, res.Error
}
