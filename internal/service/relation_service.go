package service

import (
	"context"
	"errors"
	"fmt"

	"athar/internal/domain"
	"athar/internal/models"
	"athar/internal/repository"

	"gorm.io/gorm"
)

// ToggleResult is the relation state after a toggle plus the target's derived count.
type ToggleResult struct {
	On    bool  `json:"on"`
	Count int64 `json:"count"`
}

// UserSummary is the public face of a user in lists.
type UserSummary struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	ProfileImage string `json:"profile_image"`
	Bio          string `json:"bio"`
	IsVerified   bool   `json:"is_verified"`
}

func summarize(u models.User) UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, ProfileImage: u.ProfileImage, Bio: u.Bio, IsVerified: u.IsVerified}
}

type RelationService struct {
	likes     *repository.RelationStore[models.Like]
	favorites *repository.RelationStore[models.Favorite]
	follows   *repository.RelationStore[models.Follow]
	postRepo  *repository.PostRepository
	userRepo  *repository.UserRepository
	notify    *NotificationService
}

func NewRelationService(
	likes *repository.RelationStore[models.Like],
	favorites *repository.RelationStore[models.Favorite],
	follows *repository.RelationStore[models.Follow],
	postRepo *repository.PostRepository,
	userRepo *repository.UserRepository,
	notify *NotificationService,
) *RelationService {
	return &RelationService{likes: likes, favorites: favorites, follows: follows, postRepo: postRepo, userRepo: userRepo, notify: notify}
}

// visiblePost loads a post the actor may interact with. Other users' private posts do not exist for them.
func (s *RelationService) visiblePost(ctx context.Context, actorID, postID uint) (*models.Post, error) {
	p, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if p.IsPrivate && p.UserID != actorID {
		return nil, ErrPostNotFound
	}
	return p, nil
}

func (s *RelationService) ToggleLike(ctx context.Context, userID, postID uint) (*ToggleResult, error) {
	p, err := s.visiblePost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	t, err := s.likes.Toggle(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	count, err := s.likes.CountFor(ctx, postID)
	if err != nil {
		return nil, err
	}
	if t.On && t.Changed {
		s.emitFrom(ctx, userID, p.UserID, domain.NotificationLike, "%s liked your post", domain.PostRef(postID))
	}
	return &ToggleResult{On: t.On, Count: count}, nil
}

func (s *RelationService) ToggleFavorite(ctx context.Context, userID, postID uint) (*ToggleResult, error) {
	p, err := s.visiblePost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	t, err := s.favorites.Toggle(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	count, err := s.favorites.CountFor(ctx, postID)
	if err != nil {
		return nil, err
	}
	if t.On && t.Changed {
		s.emitFrom(ctx, userID, p.UserID, domain.NotificationFavorite, "%s saved your post to favorites", domain.PostRef(postID))
	}
	return &ToggleResult{On: t.On, Count: count}, nil
}

func (s *RelationService) followTarget(ctx context.Context, followerID, targetID uint) error {
	if followerID == targetID {
		return ErrSelfReference
	}
	ok, err := s.userRepo.Exists(ctx, targetID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserNotFound
	}
	return nil
}

// ToggleFollow flips follower→target. Count is the target's follower count.
func (s *RelationService) ToggleFollow(ctx context.Context, followerID, targetID uint) (*ToggleResult, error) {
	if err := s.followTarget(ctx, followerID, targetID); err != nil {
		return nil, err
	}
	t, err := s.follows.Toggle(ctx, followerID, targetID)
	if err != nil {
		return nil, err
	}
	count, err := s.follows.CountFor(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if t.On && t.Changed {
		s.emitFrom(ctx, followerID, targetID, domain.NotificationFollow, "%s started following you", domain.UserRef(followerID))
	}
	return &ToggleResult{On: t.On, Count: count}, nil
}

// Unfollow is an explicit off; unfollowing someone not followed is not an error.
func (s *RelationService) Unfollow(ctx context.Context, followerID, targetID uint) (*ToggleResult, error) {
	if err := s.followTarget(ctx, followerID, targetID); err != nil {
		return nil, err
	}
	if _, err := s.follows.Unset(ctx, followerID, targetID); err != nil {
		return nil, err
	}
	count, err := s.follows.CountFor(ctx, targetID)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{On: false, Count: count}, nil
}

func (s *RelationService) emitFrom(ctx context.Context, actorID, recipientID uint, notifType, format string, ref *domain.TargetRef) {
	if actorID == recipientID {
		return
	}
	name := "Someone"
	if u, err := s.userRepo.GetByID(ctx, actorID); err == nil && u.Name != "" {
		name = u.Name
	}
	s.notify.Emit(ctx, Notice{
		Recipient: recipientID,
		Sender:    actorID,
		Type:      notifType,
		Content:   fmt.Sprintf(format, name),
		Related:   ref,
		Data:      map[string]interface{}{"related_type": string(ref.Kind), "related_id": ref.ID},
	})
}

func (s *RelationService) usersInOrder(ctx context.Context, ids []uint) ([]UserSummary, error) {
	byID, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]UserSummary, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, summarize(u))
		}
	}
	return out, nil
}

// Likers pages users who liked a post, newest first.
func (s *RelationService) Likers(ctx context.Context, viewerID, postID uint, page, limit int) ([]UserSummary, int64, error) {
	if _, err := s.visiblePost(ctx, viewerID, postID); err != nil {
		return nil, 0, err
	}
	ids, total, err := s.likes.ListActors(ctx, postID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	users, err := s.usersInOrder(ctx, ids)
	return users, total, err
}

func (s *RelationService) Followers(ctx context.Context, userID uint, page, limit int) ([]UserSummary, int64, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, 0, err
	}
	ids, total, err := s.follows.ListActors(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	users, err := s.usersInOrder(ctx, ids)
	return users, total, err
}

func (s *RelationService) Following(ctx context.Context, userID uint, page, limit int) ([]UserSummary, int64, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, 0, err
	}
	ids, total, err := s.follows.ListTargets(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	users, err := s.usersInOrder(ctx, ids)
	return users, total, err
}

func (s *RelationService) requireUser(ctx context.Context, id uint) error {
	ok, err := s.userRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserNotFound
	}
	return nil
}
