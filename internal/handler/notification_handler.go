package handler

import (
	"net/http"

	"athar/internal/middleware"
	"athar/internal/response"
	"athar/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc *service.NotificationService
}

func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	res, err := h.svc.List(c.Request.Context(), middleware.GetUserID(c), c.Query("unread") == "true", page, limit)
	if err != nil {
		fail(c, "notifications", err)
		return
	}
	c.JSON(http.StatusOK, response.Envelope{
		Success:    true,
		Data:       gin.H{"notifications": res.Items, "unread_count": res.UnreadCount},
		Pagination: response.NewPagination(page, limit, res.Total),
	})
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	n, err := h.svc.UnreadCount(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, "notifications", err)
		return
	}
	response.OK(c, "", gin.H{"unread_count": n})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.MarkRead(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		fail(c, "notifications", err)
		return
	}
	response.OK(c, "notification marked as read", nil)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	n, err := h.svc.MarkAllRead(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, "notifications", err)
		return
	}
	response.OK(c, "all notifications marked as read", gin.H{"updated": n})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		fail(c, "notifications", err)
		return
	}
	response.OK(c, "notification deleted", nil)
}
