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

const maxCommentLength = 2000

type CommentService struct {
	repo     *repository.CommentRepository
	postRepo *repository.PostRepository
	userRepo *repository.UserRepository
	notify   *NotificationService
}

func NewCommentService(repo *repository.CommentRepository, postRepo *repository.PostRepository, userRepo *repository.UserRepository, notify *NotificationService) *CommentService {
	return &CommentService{repo: repo, postRepo: postRepo, userRepo: userRepo, notify: notify}
}

func cleanContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" || len([]rune(content)) > maxCommentLength {
		return "", fmt.Errorf("%w: content must be 1-%d characters", ErrInvalidInput, maxCommentLength)
	}
	return content, nil
}

func (s *CommentService) post(ctx context.Context, viewerID, postID uint) (*models.Post, error) {
	p, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if p.IsPrivate && p.UserID != viewerID {
		return nil, ErrPostNotFound
	}
	return p, nil
}

// Create adds a comment, or a reply when parentID is set. Replies must target a top-level
// comment of the same post; threads are two levels deep.
func (s *CommentService) Create(ctx context.Context, authorID, postID uint, content string, parentID *uint) (*models.Comment, error) {
	content, err := cleanContent(content)
	if err != nil {
		return nil, err
	}
	p, err := s.post(ctx, authorID, postID)
	if err != nil {
		return nil, err
	}
	if parentID != nil {
		parent, err := s.repo.GetByID(ctx, *parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
		if parent.PostID != postID || parent.ParentID != nil {
			return nil, ErrParentNotFound
		}
	}
	c := &models.Comment{PostID: postID, UserID: authorID, ParentID: parentID, Content: content}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	if p.UserID != authorID {
		name := "Someone"
		if u, err := s.userRepo.GetByID(ctx, authorID); err == nil && u.Name != "" {
			name = u.Name
		}
		s.notify.Emit(ctx, Notice{
			Recipient: p.UserID,
			Sender:    authorID,
			Type:      domain.NotificationComment,
			Content:   name + " commented on your post",
			Related:   domain.PostRef(postID),
			Data:      map[string]interface{}{"post_id": postID, "comment_id": c.ID},
		})
	}
	return c, nil
}

func (s *CommentService) ListTopLevel(ctx context.Context, viewerID, postID uint, page, limit int) ([]repository.CommentRow, int64, error) {
	if _, err := s.post(ctx, viewerID, postID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListTopLevel(ctx, postID, page, limit)
}

func (s *CommentService) ListReplies(ctx context.Context, viewerID, commentID uint, page, limit int) ([]repository.CommentRow, int64, error) {
	c, err := s.get(ctx, commentID)
	if err != nil {
		return nil, 0, err
	}
	if _, err := s.post(ctx, viewerID, c.PostID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListReplies(ctx, commentID, page, limit)
}

func (s *CommentService) get(ctx context.Context, id uint) (*models.Comment, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return c, nil
}

// Update lets only the author edit.
func (s *CommentService) Update(ctx context.Context, userID, id uint, content string) (*models.Comment, error) {
	content, err := cleanContent(content)
	if err != nil {
		return nil, err
	}
	c, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID != userID {
		return nil, ErrForbidden
	}
	if err := s.repo.UpdateContent(ctx, id, content); err != nil {
		return nil, err
	}
	c.Content = content
	return c, nil
}

// Delete is allowed to the author and to staff. Replies go with the comment.
func (s *CommentService) Delete(ctx context.Context, actor *models.User, id uint) error {
	c, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if c.UserID != actor.ID && !actor.IsStaff() {
		return ErrForbidden
	}
	_, err = s.repo.Delete(ctx, id)
	return err
}

// ListAll is the staff moderation view.
func (s *CommentService) ListAll(ctx context.Context, postID uint, page, limit int) ([]repository.CommentRow, int64, error) {
	return s.repo.ListAll(ctx, postID, page, limit)
}

// ForceDelete removes any comment (staff).
func (s *CommentService) ForceDelete(ctx context.Context, id uint) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCommentNotFound
	}
	return nil
}
