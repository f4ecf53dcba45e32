package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"athar/internal/domain"
	"athar/internal/models"
	"athar/internal/repository"

	"gorm.io/gorm"
)

// PostView is a post as a given viewer sees it, with derived counts.
type PostView struct {
	models.Post
	Author         UserSummary `json:"author"`
	LikesCount     int64       `json:"likes_count"`
	CommentsCount  int64       `json:"comments_count"`
	FavoritesCount int64       `json:"favorites_count"`
	IsLiked        bool        `json:"is_liked"`
	IsFavorited    bool        `json:"is_favorited"`
}

type PostInput struct {
	Type      string
	Title     string
	Content   string
	MediaURL  string
	LinkURL   string
	Category  string
	IsPrivate bool
}

// PostUpdate carries optional edits; nil fields are left unchanged.
type PostUpdate struct {
	Title    *string
	Content  *string
	Category *string
}

type PostService struct {
	repo        *repository.PostRepository
	userRepo    *repository.UserRepository
	commentRepo *repository.CommentRepository
	likes       *repository.RelationStore[models.Like]
	favorites   *repository.RelationStore[models.Favorite]
}

func NewPostService(
	repo *repository.PostRepository,
	userRepo *repository.UserRepository,
	commentRepo *repository.CommentRepository,
	likes *repository.RelationStore[models.Like],
	favorites *repository.RelationStore[models.Favorite],
) *PostService {
	return &PostService{repo: repo, userRepo: userRepo, commentRepo: commentRepo, likes: likes, favorites: favorites}
}

func validPostType(t string) bool {
	switch t {
	case domain.PostTypeText, domain.PostTypeImage, domain.PostTypeVideo, domain.PostTypeLink:
		return true
	}
	return false
}

func (s *PostService) Create(ctx context.Context, userID uint, in PostInput) (*PostView, error) {
	if in.Type == "" {
		in.Type = domain.PostTypeText
	}
	if !validPostType(in.Type) {
		return nil, ErrInvalidType
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	switch in.Type {
	case domain.PostTypeImage, domain.PostTypeVideo:
		if in.MediaURL == "" {
			return nil, fmt.Errorf("%w: media_url is required for %s posts", ErrInvalidInput, in.Type)
		}
	case domain.PostTypeLink:
		if in.LinkURL == "" {
			return nil, fmt.Errorf("%w: link_url is required for link posts", ErrInvalidInput)
		}
	}
	p := &models.Post{
		UserID:    userID,
		Type:      in.Type,
		Title:     in.Title,
		Content:   strings.TrimSpace(in.Content),
		MediaURL:  in.MediaURL,
		LinkURL:   in.LinkURL,
		Category:  strings.TrimSpace(in.Category),
		IsPrivate: in.IsPrivate,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	views, err := s.views(ctx, userID, []models.Post{*p})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// load returns the post if viewerID may see it: private and archived posts are owner-only.
func (s *PostService) load(ctx context.Context, viewerID, id uint) (*models.Post, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if (p.IsPrivate || p.IsArchived) && p.UserID != viewerID {
		return nil, ErrPostNotFound
	}
	return p, nil
}

// Get returns a single post and counts a view.
func (s *PostService) Get(ctx context.Context, viewerID, id uint) (*PostView, error) {
	p, err := s.load(ctx, viewerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	p.ViewsCount++
	views, err := s.views(ctx, viewerID, []models.Post{*p})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Feed lists public live posts, optionally filtered by category and type.
func (s *PostService) Feed(ctx context.Context, viewerID uint, category, postType string, page, limit int) ([]PostView, int64, error) {
	return s.list(ctx, viewerID, repository.PostFilter{Category: category, Type: postType}, page, limit)
}

// Search matches title or content of public live posts.
func (s *PostService) Search(ctx context.Context, viewerID uint, q string, page, limit int) ([]PostView, int64, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, 0, fmt.Errorf("%w: search query is required", ErrInvalidInput)
	}
	return s.list(ctx, viewerID, repository.PostFilter{Search: q}, page, limit)
}

// UserPosts lists a user's live posts; the owner also sees their private ones.
func (s *PostService) UserPosts(ctx context.Context, viewerID, userID uint, page, limit int) ([]PostView, int64, error) {
	ok, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return nil, 0, ErrUserNotFound
	}
	return s.list(ctx, viewerID, repository.PostFilter{UserID: userID, IncludePrivate: viewerID == userID}, page, limit)
}

func (s *PostService) MyPosts(ctx context.Context, userID uint, page, limit int) ([]PostView, int64, error) {
	return s.list(ctx, userID, repository.PostFilter{UserID: userID, IncludePrivate: true}, page, limit)
}

func (s *PostService) MyPrivate(ctx context.Context, userID uint, page, limit int) ([]PostView, int64, error) {
	return s.list(ctx, userID, repository.PostFilter{UserID: userID, OnlyPrivate: true}, page, limit)
}

func (s *PostService) MyArchived(ctx context.Context, userID uint, page, limit int) ([]PostView, int64, error) {
	return s.list(ctx, userID, repository.PostFilter{UserID: userID, IncludePrivate: true, Archived: true}, page, limit)
}

func (s *PostService) Liked(ctx context.Context, userID uint, page, limit int) ([]PostView, int64, error) {
	return s.related(ctx, "likes", userID, page, limit)
}

func (s *PostService) Favorites(ctx context.Context, userID uint, page, limit int) ([]PostView, int64, error) {
	return s.related(ctx, "favorites", userID, page, limit)
}

func (s *PostService) related(ctx context.Context, table string, userID uint, page, limit int) ([]PostView, int64, error) {
	posts, total, err := s.repo.ListByRelation(ctx, table, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.views(ctx, userID, posts)
	return views, total, err
}

// AdminList sees every post, private and archived included.
func (s *PostService) AdminList(ctx context.Context, f repository.PostFilter, page, limit int) ([]PostView, int64, error) {
	f.IncludePrivate = true
	return s.list(ctx, 0, f, page, limit)
}

func (s *PostService) list(ctx context.Context, viewerID uint, f repository.PostFilter, page, limit int) ([]PostView, int64, error) {
	posts, total, err := s.repo.List(ctx, f, page, limit)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.views(ctx, viewerID, posts)
	return views, total, err
}

// views decorates posts with authors and derived counts in a fixed number of queries.
func (s *PostService) views(ctx context.Context, viewerID uint, posts []models.Post) ([]PostView, error) {
	out := make([]PostView, 0, len(posts))
	if len(posts) == 0 {
		return out, nil
	}
	ids := make([]uint, 0, len(posts))
	authorIDs := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
		authorIDs = append(authorIDs, p.UserID)
	}
	authors, err := s.userRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	likes, err := s.likes.CountsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	favs, err := s.favorites.CountsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.CountsByPosts(ctx, ids)
	if err != nil {
		return nil, err
	}
	liked, err := s.likes.SetAmong(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}
	faved, err := s.favorites.SetAmong(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		out = append(out, PostView{
			Post:           p,
			Author:         summarize(authors[p.UserID]),
			LikesCount:     likes[p.ID],
			CommentsCount:  comments[p.ID],
			FavoritesCount: favs[p.ID],
			IsLiked:        liked[p.ID],
			IsFavorited:    faved[p.ID],
		})
	}
	return out, nil
}

func (s *PostService) owned(ctx context.Context, userID, id uint) (*models.Post, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrForbidden
	}
	return p, nil
}

func (s *PostService) Update(ctx context.Context, userID, id uint, in PostUpdate) (*PostView, error) {
	p, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		fields["title"], p.Title = t, t
	}
	if in.Content != nil {
		c := strings.TrimSpace(*in.Content)
		fields["content"], p.Content = c, c
	}
	if in.Category != nil {
		c := strings.TrimSpace(*in.Category)
		fields["category"], p.Category = c, c
	}
	if len(fields) > 0 {
		if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	views, err := s.views(ctx, userID, []models.Post{*p})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Delete is allowed to the owner and to staff.
func (s *PostService) Delete(ctx context.Context, actor *models.User, id uint) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	if p.UserID != actor.ID && !actor.IsStaff() {
		return ErrForbidden
	}
	_, err = s.repo.Delete(ctx, id)
	return err
}

func (s *PostService) Archive(ctx context.Context, userID, id uint) error {
	p, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if p.IsArchived {
		return ErrAlreadyArchived
	}
	return s.repo.UpdateFields(ctx, id, map[string]interface{}{"is_archived": true})
}

// Publish turns a private post public.
func (s *PostService) Publish(ctx context.Context, userID, id uint) error {
	p, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if !p.IsPrivate {
		return ErrAlreadyPublic
	}
	return s.repo.UpdateFields(ctx, id, map[string]interface{}{"is_private": false})
}
