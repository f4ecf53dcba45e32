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

// TargetSummary describes what a report points at. Deleted targets keep Exists false.
type TargetSummary struct {
	Exists  bool   `json:"exists"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	OwnerID uint   `json:"owner_id,omitempty"`
}

type ReportView struct {
	repository.ReportRow
	Target TargetSummary `json:"target"`
}

var reportStatuses = map[string]bool{
	domain.ReportStatusPending:   true,
	domain.ReportStatusReviewed:  true,
	domain.ReportStatusResolved:  true,
	domain.ReportStatusDismissed: true,
}

type ReportService struct {
	repo        *repository.ReportRepository
	postRepo    *repository.PostRepository
	userRepo    *repository.UserRepository
	commentRepo *repository.CommentRepository
}

func NewReportService(repo *repository.ReportRepository, postRepo *repository.PostRepository, userRepo *repository.UserRepository, commentRepo *repository.CommentRepository) *ReportService {
	return &ReportService{repo: repo, postRepo: postRepo, userRepo: userRepo, commentRepo: commentRepo}
}

func (s *ReportService) Create(ctx context.Context, reporterID uint, kind string, targetID uint, reason, description string) (*models.Report, error) {
	k, err := domain.ParseTargetKind(kind)
	if err != nil {
		return nil, ErrInvalidTarget
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if k == domain.TargetUser && targetID == reporterID {
		return nil, ErrSelfReference
	}
	summary, err := s.resolve(ctx, domain.TargetRef{Kind: k, ID: targetID})
	if err != nil {
		return nil, err
	}
	if !summary.Exists {
		return nil, ErrTargetNotFound
	}
	r := &models.Report{
		ReporterID:  reporterID,
		TargetType:  string(k),
		TargetID:    targetID,
		Reason:      reason,
		Description: strings.TrimSpace(description),
		Status:      domain.ReportStatusPending,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReportService) resolve(ctx context.Context, ref domain.TargetRef) (TargetSummary, error) {
	var (
		out TargetSummary
		err error
	)
	switch ref.Kind {
	case domain.TargetPost:
		var p *models.Post
		if p, err = s.postRepo.GetByID(ctx, ref.ID); err == nil {
			out = TargetSummary{Exists: true, Title: p.Title, Content: p.Content, OwnerID: p.UserID}
		}
	case domain.TargetUser:
		var u *models.User
		if u, err = s.userRepo.GetByID(ctx, ref.ID); err == nil {
			out = TargetSummary{Exists: true, Name: u.Name, Phone: u.Phone, OwnerID: u.ID}
		}
	case domain.TargetComment:
		var c *models.Comment
		if c, err = s.commentRepo.GetByID(ctx, ref.ID); err == nil {
			out = TargetSummary{Exists: true, Content: c.Content, OwnerID: c.UserID}
		}
	default:
		return out, ErrInvalidTarget
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return TargetSummary{}, nil
	}
	return out, err
}

func (s *ReportService) List(ctx context.Context, f repository.ReportFilter, page, limit int) ([]ReportView, int64, error) {
	if f.Status != "" && !reportStatuses[f.Status] {
		return nil, 0, ErrInvalidStatus
	}
	if f.Type != "" {
		if _, err := domain.ParseTargetKind(f.Type); err != nil {
			return nil, 0, ErrInvalidTarget
		}
	}
	rows, total, err := s.repo.List(ctx, f, page, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]ReportView, 0, len(rows))
	for _, r := range rows {
		sum, err := s.resolve(ctx, domain.TargetRef{Kind: domain.TargetKind(r.TargetType), ID: r.TargetID})
		if err != nil {
			return nil, 0, err
		}
		out = append(out, ReportView{ReportRow: r, Target: sum})
	}
	return out, total, nil
}

func (s *ReportService) Get(ctx context.Context, id uint) (*ReportView, error) {
	row, err := s.repo.GetRow(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	sum, err := s.resolve(ctx, domain.TargetRef{Kind: domain.TargetKind(row.TargetType), ID: row.TargetID})
	if err != nil {
		return nil, err
	}
	return &ReportView{ReportRow: *row, Target: sum}, nil
}

func (s *ReportService) UpdateStatus(ctx context.Context, id uint, status, notes string) error {
	if !reportStatuses[status] {
		return ErrInvalidStatus
	}
	ok, err := s.repo.UpdateStatus(ctx, id, status, strings.TrimSpace(notes))
	if err != nil {
		return err
	}
	if !ok {
		// RowsAffected is 0 both for a missing report and an unchanged row.
		if _, err := s.repo.GetRow(ctx, id); errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReportNotFound
		}
	}
	return nil
}
