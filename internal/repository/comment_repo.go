package repository

import (
	"context"
	"time"

	"athar/internal/models"

	"gorm.io/gorm"
)

// CommentRow is a comment joined with its author and reply count.
type CommentRow struct {
	ID           uint      `json:"id"`
	PostID       uint      `json:"post_id"`
	UserID       uint      `json:"user_id"`
	ParentID     *uint     `json:"parent_id"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	AuthorName   string    `json:"author_name"`
	AuthorImage  string    `json:"author_image"`
	RepliesCount int64     `json:"replies_count"`
}

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, c *models.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var c models.Comment
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id uint, content string) error {
	return r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Update("content", content).Error
}

// Delete removes the direct replies, then the comment, and returns how many rows went.
func (r *CommentRepository) Delete(ctx context.Context, id uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("parent_id = ?", id).Delete(&models.Comment{})
		if res.Error != nil {
			return res.Error
		}
		n = res.RowsAffected
		res = tx.Where("id = ?", id).Delete(&models.Comment{})
		if res.Error != nil {
			return res.Error
		}
		n += res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *CommentRepository) rows(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("comments AS c").
		Select("c.id, c.post_id, c.user_id, c.parent_id, c.content, c.created_at, c.updated_at, " +
			"u.name AS author_name, u.profile_image AS author_image, " +
			"(SELECT COUNT(*) FROM comments r WHERE r.parent_id = c.id) AS replies_count").
		Joins("JOIN users u ON u.id = c.user_id")
}

// ListTopLevel pages top-level comments of a post, newest first.
func (r *CommentRepository) ListTopLevel(ctx context.Context, postID uint, page, limit int) ([]CommentRow, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("post_id = ? AND parent_id IS NULL", postID).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	list := []CommentRow{}
	err = r.rows(ctx).
		Where("c.post_id = ? AND c.parent_id IS NULL", postID).
		Order("c.created_at DESC").Order("c.id DESC").
		Limit(limit).Offset(Offset(page, limit)).
		Scan(&list).Error
	return list, total, err
}

// ListReplies pages replies to a comment, oldest first.
func (r *CommentRepository) ListReplies(ctx context.Context, parentID uint, page, limit int) ([]CommentRow, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("parent_id = ?", parentID).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	list := []CommentRow{}
	err = r.rows(ctx).
		Where("c.parent_id = ?", parentID).
		Order("c.created_at ASC").Order("c.id ASC").
		Limit(limit).Offset(Offset(page, limit)).
		Scan(&list).Error
	return list, total, err
}

// CountsByPosts returns comment totals (replies included) per post.
func (r *CommentRepository) CountsByPosts(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	out := make(map[uint]int64, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		PostID uint
		Total  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.PostID] = row.Total
	}
	return out, nil
}

// ListAll is the admin view over every comment, newest first.
func (r *CommentRepository) ListAll(ctx context.Context, postID uint, page, limit int) ([]CommentRow, int64, error) {
	count := r.db.WithContext(ctx).Model(&models.Comment{})
	q := r.rows(ctx)
	if postID != 0 {
		count = count.Where("post_id = ?", postID)
		q = q.Where("c.post_id = ?", postID)
	}
	var total int64
	if err := count.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	list := []CommentRow{}
	err := q.Order("c.created_at DESC").Order("c.id DESC").Limit(limit).Offset(Offset(page, limit)).Scan(&list).Error
	return list, total, err
}
