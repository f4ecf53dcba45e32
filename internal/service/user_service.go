package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"athar/internal/models"
	"athar/internal/repository"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var validate = validator.New()

type ProfileView struct {
	UserSummary
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	PostsCount     int64     `json:"posts_count"`
	FollowersCount int64     `json:"followers_count"`
	FollowingCount int64     `json:"following_count"`
	IsFollowing    bool      `json:"is_following"`
	IsSelf         bool      `json:"is_self"`
}

// ProfileUpdate carries optional edits; nil fields are left unchanged. An empty Email clears it.
type ProfileUpdate struct {
	Name         *string
	Email        *string
	Bio          *string
	ProfileImage *string
}

type UserService struct {
	repo     *repository.UserRepository
	postRepo *repository.PostRepository
	follows  *repository.RelationStore[models.Follow]
}

func NewUserService(repo *repository.UserRepository, postRepo *repository.PostRepository, follows *repository.RelationStore[models.Follow]) *UserService {
	return &UserService{repo: repo, postRepo: postRepo, follows: follows}
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// Profile builds the public profile of userID as seen by viewerID (0 for anonymous).
func (s *UserService) Profile(ctx context.Context, viewerID, userID uint) (*ProfileView, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	self := viewerID == userID
	v := &ProfileView{UserSummary: summarize(*u), Role: u.Role, CreatedAt: u.CreatedAt, IsSelf: self}
	if v.PostsCount, err = s.postRepo.CountByUser(ctx, userID, self); err != nil {
		return nil, err
	}
	if v.FollowersCount, err = s.follows.CountFor(ctx, userID); err != nil {
		return nil, err
	}
	if v.FollowingCount, err = s.follows.CountBy(ctx, userID); err != nil {
		return nil, err
	}
	if viewerID != 0 && !self {
		if v.IsFollowing, err = s.follows.IsSet(ctx, viewerID, userID); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in ProfileUpdate) (*models.User, error) {
	fields := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if n := len([]rune(name)); n < 2 || n > 100 {
			return nil, fmt.Errorf("%w: name must be 2-100 characters", ErrInvalidInput)
		}
		fields["name"] = name
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" {
			fields["email"] = nil
		} else {
			if err := validate.Var(email, "email"); err != nil {
				return nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
			}
			taken, err := s.repo.EmailTaken(ctx, email, userID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrEmailTaken
			}
			fields["email"] = email
		}
	}
	if in.Bio != nil {
		fields["bio"] = strings.TrimSpace(*in.Bio)
	}
	if in.ProfileImage != nil {
		fields["profile_image"] = strings.TrimSpace(*in.ProfileImage)
	}
	if len(fields) > 0 {
		if err := s.repo.UpdateFields(ctx, userID, fields); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, userID)
}

func (s *UserService) Search(ctx context.Context, q string, page, limit int) ([]UserSummary, int64, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, 0, fmt.Errorf("%w: search query is required", ErrInvalidInput)
	}
	users, total, err := s.repo.Search(ctx, q, page, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, summarize(u))
	}
	return out, total, nil
}
