package repository

import (
	"context"
	"time"

	"athar/internal/models"

	"gorm.io/gorm"
)

type DashboardStats struct {
	TotalUsers      int64             `json:"total_users"`
	TotalPosts      int64             `json:"total_posts"`
	TotalComments   int64             `json:"total_comments"`
	TotalLikes      int64             `json:"total_likes"`
	NewUsersToday   int64             `json:"new_users_today"`
	NewPostsToday   int64             `json:"new_posts_today"`
	PendingReports  int64             `json:"pending_reports"`
	PendingMessages int64             `json:"pending_messages"`
	PostsByType     []GroupCount      `json:"posts_by_type"`
	TopCategories   []GroupCount      `json:"top_categories"`
	RecentActivity  []TimeSeriesPoint `json:"recent_activity"`
}

type GroupCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

type TimeSeriesPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// AdminUserRow is a user with derived activity counts for the admin list.
type AdminUserRow struct {
	models.User
	PostsCount     int64 `json:"posts_count"`
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
}

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetDashboardStats(ctx context.Context, now time.Time) (*DashboardStats, error) {
	db := r.db.WithContext(ctx)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var s DashboardStats
	counts := []struct {
		q   *gorm.DB
		dst *int64
	}{
		{db.Model(&models.User{}), &s.TotalUsers},
		{db.Model(&models.Post{}).Where("is_archived = ?", false), &s.TotalPosts},
		{db.Model(&models.Comment{}), &s.TotalComments},
		{db.Model(&models.Like{}), &s.TotalLikes},
		{db.Model(&models.User{}).Where("created_at >= ?", startOfDay), &s.NewUsersToday},
		{db.Model(&models.Post{}).Where("created_at >= ?", startOfDay), &s.NewPostsToday},
		{db.Model(&models.Report{}).Where("status = ?", "pending"), &s.PendingReports},
		{db.Model(&models.ContactMessage{}).Where("status = ?", "pending"), &s.PendingMessages},
	}
	for _, c := range counts {
		if err := c.q.Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	s.PostsByType = []GroupCount{}
	if err := db.Model(&models.Post{}).
		Select("type AS `key`, COUNT(*) AS count").
		Where("is_archived = ?", false).
		Group("type").Order("count DESC").
		Scan(&s.PostsByType).Error; err != nil {
		return nil, err
	}
	s.TopCategories = []GroupCount{}
	if err := db.Model(&models.Post{}).
		Select("category AS `key`, COUNT(*) AS count").
		Where("is_archived = ? AND category <> ''", false).
		Group("category").Order("count DESC").Limit(5).
		Scan(&s.TopCategories).Error; err != nil {
		return nil, err
	}
	points, err := r.PostsByDay(ctx, now, 7)
	if err != nil {
		return nil, err
	}
	s.RecentActivity = points
	return &s, nil
}

// PostsByDay returns daily post counts for the last N days.
func (r *AdminRepository) PostsByDay(ctx context.Context, now time.Time, days int) ([]TimeSeriesPoint, error) {
	since := now.AddDate(0, 0, -days)
	points := []TimeSeriesPoint{}
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Select("DATE(created_at) as date, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&points).Error
	return points, err
}

func (r *AdminRepository) userRows(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Select("users.*, " +
			"(SELECT COUNT(*) FROM posts p WHERE p.user_id = users.id) AS posts_count, " +
			"(SELECT COUNT(*) FROM follows f WHERE f.following_id = users.id) AS followers_count, " +
			"(SELECT COUNT(*) FROM follows f WHERE f.follower_id = users.id) AS following_count")
}

// ListUsers returns users with search, role and ban filters, and pagination.
func (r *AdminRepository) ListUsers(ctx context.Context, search, role string, banned *bool, page, limit int) ([]AdminUserRow, int64, error) {
	count := r.db.WithContext(ctx).Model(&models.User{})
	q := r.userRows(ctx)
	if search != "" {
		like := "%" + search + "%"
		count = count.Where("name LIKE ? OR phone LIKE ?", like, like)
		q = q.Where("users.name LIKE ? OR users.phone LIKE ?", like, like)
	}
	if role != "" {
		count = count.Where("role = ?", role)
		q = q.Where("users.role = ?", role)
	}
	if banned != nil {
		count = count.Where("is_banned = ?", *banned)
		q = q.Where("users.is_banned = ?", *banned)
	}
	var total int64
	if err := count.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	list := []AdminUserRow{}
	err := q.Order("users.created_at DESC").Order("users.id DESC").Limit(limit).Offset(Offset(page, limit)).Scan(&list).Error
	return list, total, err
}

// GetUser returns a single user with counts.
func (r *AdminRepository) GetUser(ctx context.Context, id uint) (*AdminUserRow, error) {
	var list []AdminUserRow
	if err := r.userRows(ctx).Where("users.id = ?", id).Limit(1).Scan(&list).Error; err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &list[0], nil
}

// UpdateUser updates specific fields on a user; it reports whether the user exists.
func (r *AdminRepository) UpdateUser(ctx context.Context, id uint, updates map[string]interface{}) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected > 0, res.Error
}

// DeleteUserCascade removes a user and everything that hangs off them in one transaction.
// The FK cascades would do the same; the explicit order keeps engines without FK enforcement consistent.
func (r *AdminRepository) DeleteUserCascade(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postIDs, commentIDs []uint
		if err := tx.Model(&models.Post{}).Where("user_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Comment{}).Where("user_id = ?", id).Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		steps := []func() error{
			func() error { return tx.Where("post_id IN ?", postIDs).Delete(&models.Like{}).Error },
			func() error { return tx.Where("post_id IN ?", postIDs).Delete(&models.Favorite{}).Error },
			func() error {
				return tx.Where("post_id IN ? AND parent_id IS NOT NULL", postIDs).Delete(&models.Comment{}).Error
			},
			func() error { return tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error },
			func() error { return tx.Where("parent_id IN ?", commentIDs).Delete(&models.Comment{}).Error },
			func() error { return tx.Where("user_id = ?", id).Delete(&models.Comment{}).Error },
			func() error { return tx.Where("user_id = ?", id).Delete(&models.Like{}).Error },
			func() error { return tx.Where("user_id = ?", id).Delete(&models.Favorite{}).Error },
			func() error {
				return tx.Where("follower_id = ? OR following_id = ?", id, id).Delete(&models.Follow{}).Error
			},
			func() error {
				return tx.Where("user_id = ? OR sender_id = ?", id, id).Delete(&models.Notification{}).Error
			},
			func() error { return tx.Where("reporter_id = ?", id).Delete(&models.Report{}).Error },
			func() error {
				return tx.Model(&models.ContactMessage{}).Where("user_id = ?", id).Update("user_id", nil).Error
			},
			func() error { return tx.Where("user_id = ?", id).Delete(&models.Post{}).Error },
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return err
			}
		}
		res := tx.Where("id = ?", id).Delete(&models.User{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}
