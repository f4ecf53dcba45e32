package handler

import (
	"athar/internal/middleware"
	"athar/internal/response"
	"athar/internal/service"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	svc *service.ContactService
}

func NewContactHandler(svc *service.ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

type CreateContactRequest struct {
	Name    string `json:"name" binding:"max=100"`
	Phone   string `json:"phone" binding:"omitempty,iqphone"`
	Email   string `json:"email" binding:"omitempty,email,max=255"`
	Subject string `json:"subject" binding:"required,min=3,max=255"`
	Message string `json:"message" binding:"required,min=10,max=5000"`
}

type ContactStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending read replied closed"`
}

type ContactReplyRequest struct {
	Reply string `json:"reply" binding:"required,min=1,max=5000"`
}

func (h *ContactHandler) Create(c *gin.Context) {
	var req CreateContactRequest
	if !bind(c, &req) {
		return
	}
	m, err := h.svc.Create(c.Request.Context(), middleware.GetUserID(c), service.ContactInput{
		Name: req.Name, Phone: req.Phone, Email: req.Email, Subject: req.Subject, Message: req.Message,
	})
	if err != nil {
		fail(c, "contact", err)
		return
	}
	response.Created(c, "message sent", m)
}

func (h *ContactHandler) Mine(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.svc.ListMine(c.Request.Context(), middleware.GetUserID(c), page, limit)
	if err != nil {
		fail(c, "contact", err)
		return
	}
	response.Page(c, list, page, limit, total)
}

func (h *ContactHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.svc.List(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		fail(c, "contact", err)
		return
	}
	response.Page(c, list, page, limit, total)
}

func (h *ContactHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	m, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, "contact", err)
		return
	}
	response.OK(c, "", m)
}

func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req ContactStatusRequest
	if !bind(c, &req) {
		return
	}
	if err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		fail(c, "contact", err)
		return
	}
	response.OK(c, "status updated", nil)
}

func (h *ContactHandler) Reply(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req ContactReplyRequest
	if !bind(c, &req) {
		return
	}
	m, err := h.svc.Reply(c.Request.Context(), middleware.GetUserID(c), id, req.Reply)
	if err != nil {
		fail(c, "contact", err)
		return
	}
	response.OK(c, "reply sent", m)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, "contact", err)
		return
	}
	response.OK(c, "message deleted", nil)
}
