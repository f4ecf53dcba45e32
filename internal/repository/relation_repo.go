package repository

import (
	"context"

	"athar/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Toggled is the outcome of a single toggle call.
// Changed is false when a concurrent request already produced the same state.
type Toggled struct {
	On      bool
	Changed bool
}

// RelationStore manages a binary (actor, target) relation backed by a table with a
// unique index on both columns. A row exists iff the relation is on.
type RelationStore[T any] struct {
	db        *gorm.DB
	actorCol  string
	targetCol string
	build     func(actor, target uint) *T
}

func NewLikeStore(db *gorm.DB) *RelationStore[models.Like] {
	return &RelationStore[models.Like]{db: db, actorCol: "user_id", targetCol: "post_id",
		build: func(a, t uint) *models.Like { return &models.Like{UserID: a, PostID: t} }}
}

func NewFavoriteStore(db *gorm.DB) *RelationStore[models.Favorite] {
	return &RelationStore[models.Favorite]{db: db, actorCol: "user_id", targetCol: "post_id",
		build: func(a, t uint) *models.Favorite { return &models.Favorite{UserID: a, PostID: t} }}
}

func NewFollowStore(db *gorm.DB) *RelationStore[models.Follow] {
	return &RelationStore[models.Follow]{db: db, actorCol: "follower_id", targetCol: "following_id",
		build: func(a, t uint) *models.Follow { return &models.Follow{FollowerID: a, FollowingID: t} }}
}

func (s *RelationStore[T]) pair(tx *gorm.DB, actor, target uint) *gorm.DB {
	return tx.Where(s.actorCol+" = ? AND "+s.targetCol+" = ?", actor, target)
}

// Toggle deletes the row if present, otherwise inserts it. The result reflects the rows
// actually affected, so two racing toggles cannot both report a transition.
func (s *RelationStore[T]) Toggle(ctx context.Context, actor, target uint) (Toggled, error) {
	var out Toggled
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := s.pair(tx, actor, target).Delete(new(T))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			out = Toggled{On: false, Changed: true}
			return nil
		}
		res = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(s.build(actor, target))
		if res.Error != nil {
			return res.Error
		}
		out = Toggled{On: true, Changed: res.RowsAffected > 0}
		return nil
	})
	return out, err
}

// Set turns the relation on; it reports whether a row was inserted.
func (s *RelationStore[T]) Set(ctx context.Context, actor, target uint) (bool, error) {
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(s.build(actor, target))
	return res.RowsAffected > 0, res.Error
}

// Unset turns the relation off; it reports whether a row was deleted.
func (s *RelationStore[T]) Unset(ctx context.Context, actor, target uint) (bool, error) {
	res := s.pair(s.db.WithContext(ctx), actor, target).Delete(new(T))
	return res.RowsAffected > 0, res.Error
}

func (s *RelationStore[T]) IsSet(ctx context.Context, actor, target uint) (bool, error) {
	var c int64
	err := s.pair(s.db.WithContext(ctx).Model(new(T)), actor, target).Count(&c).Error
	return c > 0, err
}

// CountFor counts actors related to target. Always derived, never stored.
func (s *RelationStore[T]) CountFor(ctx context.Context, target uint) (int64, error) {
	var c int64
	err := s.db.WithContext(ctx).Model(new(T)).Where(s.targetCol+" = ?", target).Count(&c).Error
	return c, err
}

// CountBy counts targets the actor is related to.
func (s *RelationStore[T]) CountBy(ctx context.Context, actor uint) (int64, error) {
	var c int64
	err := s.db.WithContext(ctx).Model(new(T)).Where(s.actorCol+" = ?", actor).Count(&c).Error
	return c, err
}

// CountsFor returns per-target counts for a batch of targets. Targets with no rows are absent.
func (s *RelationStore[T]) CountsFor(ctx context.Context, targets []uint) (map[uint]int64, error) {
	out := make(map[uint]int64, len(targets))
	if len(targets) == 0 {
		return out, nil
	}
	var rows []struct {
		Target uint
		Total  int64
	}
	err := s.db.WithContext(ctx).Model(new(T)).
		Select(s.targetCol+" AS target, COUNT(*) AS total").
		Where(s.targetCol+" IN ?", targets).
		Group(s.targetCol).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.Target] = r.Total
	}
	return out, nil
}

// SetAmong returns which of targets the actor is related to.
func (s *RelationStore[T]) SetAmong(ctx context.Context, actor uint, targets []uint) (map[uint]bool, error) {
	out := make(map[uint]bool, len(targets))
	if actor == 0 || len(targets) == 0 {
		return out, nil
	}
	var ids []uint
	err := s.db.WithContext(ctx).Model(new(T)).
		Where(s.actorCol+" = ? AND "+s.targetCol+" IN ?", actor, targets).
		Pluck(s.targetCol, &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// ListActors pages actor ids for target, newest relation first.
func (s *RelationStore[T]) ListActors(ctx context.Context, target uint, page, limit int) ([]uint, int64, error) {
	return s.list(ctx, s.targetCol, s.actorCol, target, page, limit)
}

// ListTargets pages target ids for actor, newest relation first.
func (s *RelationStore[T]) ListTargets(ctx context.Context, actor uint, page, limit int) ([]uint, int64, error) {
	return s.list(ctx, s.actorCol, s.targetCol, actor, page, limit)
}

func (s *RelationStore[T]) list(ctx context.Context, byCol, pluckCol string, id uint, page, limit int) ([]uint, int64, error) {
	q := s.db.WithContext(ctx).Model(new(T)).Where(byCol+" = ?", id)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var ids []uint
	err := q.Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(Offset(page, limit)).
		Pluck(pluckCol, &ids).Error
	return ids, total, err
}
