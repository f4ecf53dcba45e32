package handler

import (
	"athar/internal/middleware"
	"athar/internal/response"
	"athar/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc *service.CommentService
}

func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

type CreateCommentRequest struct {
	PostID   uint   `json:"post_id" binding:"required"`
	Content  string `json:"content" binding:"required,max=2000"`
	ParentID *uint  `json:"parent_id"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req CreateCommentRequest
	if !bind(c, &req) {
		return
	}
	cm, err := h.svc.Create(c.Request.Context(), middleware.GetUserID(c), req.PostID, req.Content, req.ParentID)
	if err != nil {
		fail(c, "comments", err)
		return
	}
	response.Created(c, "comment added", cm)
}

func (h *CommentHandler) ListForPost(c *gin.Context) {
	postID, ok := paramID(c, "postId")
	if !ok {
		return
	}
	page, limit := parsePagination(c)
	list, total, err := h.svc.ListTopLevel(c.Request.Context(), middleware.GetUserID(c), postID, page, limit)
	if err != nil {
		fail(c, "comments", err)
		return
	}
	response.Page(c, list, page, limit, total)
}

func (h *CommentHandler) Replies(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	page, limit := parsePagination(c)
	list, total, err := h.svc.ListReplies(c.Request.Context(), middleware.GetUserID(c), id, page, limit)
	if err != nil {
		fail(c, "comments", err)
		return
	}
	response.Page(c, list, page, limit, total)
}

func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateCommentRequest
	if !bind(c, &req) {
		return
	}
	cm, err := h.svc.Update(c.Request.Context(), middleware.GetUserID(c), id, req.Content)
	if err != nil {
		fail(c, "comments", err)
		return
	}
	response.OK(c, "comment updated", cm)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.GetUser(c), id); err != nil {
		fail(c, "comments", err)
		return
	}
	response.OK(c, "comment deleted", nil)
}
