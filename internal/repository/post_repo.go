package repository

import (
	"context"

	"athar/internal/models"

	"gorm.io/gorm"
)

// PostFilter narrows a post listing. Zero values mean "no constraint" except where noted.
type PostFilter struct {
	UserID   uint
	Category string
	Type     string
	Search   string
	IDs      []uint // restrict to these ids (liked/favorite lists); nil means all
	// Visibility: public-only unless IncludePrivate; OnlyPrivate wins over IncludePrivate.
	IncludePrivate bool
	OnlyPrivate    bool
	Archived       bool // false lists live posts, true lists archived ones
}

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, p *models.Post) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var p models.Post
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var c int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Count(&c).Error
	return c > 0, err
}

func (r *PostRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Updates(fields).Error
}

func (r *PostRepository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}

// Delete removes the post; likes, favorites and comments go with it through FK cascades.
func (r *PostRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Post{})
	return res.RowsAffected > 0, res.Error
}

// List returns a newest-first page matching f plus the total match count.
func (r *PostRepository) List(ctx context.Context, f PostFilter, page, limit int) ([]models.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Post{}).Where("is_archived = ?", f.Archived)
	switch {
	case f.OnlyPrivate:
		q = q.Where("is_private = ?", true)
	case !f.IncludePrivate:
		q = q.Where("is_private = ?", false)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("title LIKE ? OR content LIKE ?", like, like)
	}
	if f.IDs != nil {
		if len(f.IDs) == 0 {
			return []models.Post{}, 0, nil
		}
		q = q.Where("id IN ?", f.IDs)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var posts []models.Post
	err := q.Order("created_at DESC").Order("id DESC").Limit(limit).Offset(Offset(page, limit)).Find(&posts).Error
	return posts, total, err
}

// CountByUser counts the user's live posts; private ones only when includePrivate.
func (r *PostRepository) CountByUser(ctx context.Context, userID uint, includePrivate bool) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Post{}).Where("user_id = ? AND is_archived = ?", userID, false)
	if !includePrivate {
		q = q.Where("is_private = ?", false)
	}
	var c int64
	err := q.Count(&c).Error
	return c, err
}

// ListByRelation pages the posts an actor liked or favorited, most recent relation first.
// relTable must be "likes" or "favorites". Private posts of other users and archived posts are hidden.
func (r *PostRepository) ListByRelation(ctx context.Context, relTable string, actorID uint, page, limit int) ([]models.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Post{}).
		Joins("JOIN "+relTable+" rel ON rel.post_id = posts.id").
		Where("rel.user_id = ?", actorID).
		Where("posts.is_archived = ?", false).
		Where("posts.is_private = ? OR posts.user_id = ?", false, actorID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var posts []models.Post
	err := q.Select("posts.*").
		Order("rel.created_at DESC").Order("rel.id DESC").
		Limit(limit).Offset(Offset(page, limit)).
		Find(&posts).Error
	return posts, total, err
}
