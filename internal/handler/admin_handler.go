package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"athar/internal/middleware"
	"athar/internal/repository"
	"athar/internal/response"
	"athar/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	admin    *service.AdminService
	posts    *service.PostService
	comments *service.CommentService
}

func NewAdminHandler(admin *service.AdminService, posts *service.PostService, comments *service.CommentService) *AdminHandler {
	return &AdminHandler{admin: admin, posts: posts, comments: comments}
}

type BanRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
}

// BroadcastRequest.UserIDs is either the string "all" or an array of ids.
type BroadcastRequest struct {
	UserIDs json.RawMessage        `json:"userIds" binding:"required"`
	Title   string                 `json:"title" binding:"required,max=255"`
	Body    string                 `json:"body" binding:"required,max=2000"`
	Data    map[string]interface{} `json:"data"`
}

func (h *AdminHandler) Stats(c *gin.Context) {
	s, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		fail(c, "admin", err)
		return
	}
	response.OK(c, "", s)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit := parsePagination(c)
	var banned *bool
	if v := c.Query("banned"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "invalid banned filter")
			return
		}
		banned = &b
	}
	list, total, err := h.admin.ListUsers(c.Request.Context(), c.Query("search"), c.Query("role"), banned, page, limit)
	if err != nil {
		fail(c, "admin", err)
		return
	}
	response.Page(c, list, page, limit, total)
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	u, err := h.admin.GetUser(c.Request.Context(), id)
	if err != nil {
		fail(c, "admin", err)
		return
	}
	response.OK(c, "", u)
}

func (h *AdminHandler) BanUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req BanRequest
	// Body is optional.
	_ = c.ShouldBindJSON(&req)
	if err := h.admin.Ban(c.Request.Context(), middleware.GetUserID(c), id, req.Reason); err != nil {
		fail(c, "admin", err)
		return
	}
	response.OK(c, "user banned", nil)
}

func (h *AdminHandler) UnbanUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.admin.Unban(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		fail(c, "admin", err)
		return
	}
	response.OK(c, "user unbanned", nil)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.admin.DeleteUser(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		fail(c, "admin", err)
		return
	}
	response.OK(c, "user deleted", nil)
}

func (h *AdminHandler) ListPosts(c *gin.Context) {
	page, limit := parsePagination(c)
	f := repository.PostFilter{Category: c.Query("category"), Type: c.Query("type"), Search: c.Query("search")}
	if v := c.Query("user_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			f.UserID = uint(id)
		}
	}
	f.Archived = c.Query("archived") == "true"
	list, total, err := h.posts.AdminList(c.Request.Context(), f, page, limit)
	if err != nil {
		fail(c, "admin", err)
		return
	}
	response.Page(c, list, page, limit, total)
}

func (h *AdminHandler) DeletePost(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.posts.Delete(c.Request.Context(), middleware.GetUser(c), id); err != nil {
		fail(c, "admin", err)
		return
	}
	response.OK(c, "post deleted", nil)
}

func (h *AdminHandler) ListComments(c *gin.Context) {
	page, limit := parsePagination(c)
	var postID uint
	if v := c.Query("post_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			postID = uint(id)
		}
	}
	list, total, err := h.comments.ListAll(c.Request.Context(), postID, page, limit)
	if err != nil {
		fail(c, "admin", err)
		return
	}
	response.Page(c, list, page, limit, total)
}

func (h *AdminHandler) DeleteComment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.comments.ForceDelete(c.Request.Context(), id); err != nil {
		fail(c, "admin", err)
		return
	}
	response.OK(c, "comment deleted", nil)
}

func (h *AdminHandler) Broadcast(c *gin.Context) {
	var req BroadcastRequest
	if !bind(c, &req) {
		return
	}
	ids, ok := parseRecipients(req.UserIDs)
	if !ok {
		response.Invalid(c, []response.FieldError{{Field: "userIds", Message: `must be "all" or an array of ids`}})
		return
	}
	n, err := h.admin.Broadcast(c.Request.Context(), middleware.GetUserID(c), ids, req.Title, req.Body, req.Data)
	if err != nil {
		fail(c, "admin", err)
		return
	}
	response.OK(c, "notification sent to "+strconv.Itoa(n)+" users", gin.H{"sent": n})
}

// parseRecipients accepts "all" (nil ids) or a non-empty id array.
func parseRecipients(raw json.RawMessage) ([]uint, bool) {
	var all string
	if err := json.Unmarshal(raw, &all); err == nil {
		return nil, all == "all"
	}
	var ids []uint
	if err := json.Unmarshal(raw, &ids); err != nil || len(ids) == 0 {
		return nil, false
	}
	return ids, true
}
