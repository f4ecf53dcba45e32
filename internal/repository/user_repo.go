package repository

import (
	"context"

	"athar/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var c int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("phone = ?", phone).Count(&c).Error
	return c > 0, err
}

// EmailTaken reports whether another user already uses email.
func (r *UserRepository) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	var c int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ? AND id <> ?", email, exceptID).Count(&c).Error
	return c > 0, err
}

func (r *UserRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var c int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&c).Error
	return c > 0, err
}

// UpdateFields writes only the given columns; zero values are written too.
func (r *UserRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
}

// GetByIDs returns the users keyed by id; missing ids are simply absent.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]models.User, error) {
	out := make(map[uint]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var list []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	for _, u := range list {
		out[u.ID] = u
	}
	return out, nil
}

// Search matches name or phone, excluding banned users.
func (r *UserRepository) Search(ctx context.Context, q string, page, limit int) ([]models.User, int64, error) {
	like := "%" + q + "%"
	base := r.db.WithContext(ctx).Model(&models.User{}).
		Where("is_banned = ?", false).
		Where("name LIKE ? OR phone LIKE ?", like, like)
	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []models.User
	err := base.Order("name ASC").Limit(limit).Offset(Offset(page, limit)).Find(&users).Error
	return users, total, err
}

// PushToken returns "" when the user has none.
func (r *UserRepository) PushToken(ctx context.Context, id uint) (string, error) {
	var tokens []string
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Limit(1).Pluck("push_token", &tokens).Error
	if err != nil || len(tokens) == 0 {
		return "", err
	}
	return tokens[0], nil
}

// AllIDs lists every non-banned user id (broadcast fan-out).
func (r *UserRepository) AllIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("is_banned = ?", false).Order("id").Pluck("id", &ids).Error
	return ids, err
}
