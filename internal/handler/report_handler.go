package handler

import (
	"athar/internal/middleware"
	"athar/internal/repository"
	"athar/internal/response"
	"athar/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

type CreateReportRequest struct {
	Type        string `json:"type" binding:"required,oneof=post user comment"`
	TargetID    uint   `json:"target_id" binding:"required"`
	Reason      string `json:"reason" binding:"required,max=100"`
	Description string `json:"description" binding:"max=2000"`
}

type UpdateReportStatusRequest struct {
	Status     string `json:"status" binding:"required,oneof=pending reviewed resolved dismissed"`
	AdminNotes string `json:"admin_notes" binding:"max=2000"`
}

func (h *ReportHandler) Create(c *gin.Context) {
	var req CreateReportRequest
	if !bind(c, &req) {
		return
	}
	r, err := h.svc.Create(c.Request.Context(), middleware.GetUserID(c), req.Type, req.TargetID, req.Reason, req.Description)
	if err != nil {
		fail(c, "reports", err)
		return
	}
	response.Created(c, "report submitted for review", gin.H{"id": r.ID})
}

func (h *ReportHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	f := repository.ReportFilter{Status: c.Query("status"), Type: c.Query("type")}
	list, total, err := h.svc.List(c.Request.Context(), f, page, limit)
	if err != nil {
		fail(c, "reports", err)
		return
	}
	response.Page(c, list, page, limit, total)
}

func (h *ReportHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	r, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, "reports", err)
		return
	}
	response.OK(c, "", r)
}

func (h *ReportHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateReportStatusRequest
	if !bind(c, &req) {
		return
	}
	if err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status, req.AdminNotes); err != nil {
		fail(c, "reports", err)
		return
	}
	response.OK(c, "report updated", nil)
}
