package handler

import (
	"athar/internal/middleware"
	"athar/internal/response"
	"athar/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc *service.PostService
}

func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

type CreatePostRequest struct {
	Type      string `json:"type" binding:"omitempty,oneof=text image video link"`
	Title     string `json:"title" binding:"required,max=255"`
	Content   string `json:"content"`
	MediaURL  string `json:"media_url" binding:"omitempty,url,max=512"`
	LinkURL   string `json:"link_url" binding:"omitempty,url,max=512"`
	Category  string `json:"category" binding:"max=50"`
	IsPrivate bool   `json:"is_private"`
}

type UpdatePostRequest struct {
	Title    *string `json:"title" binding:"omitempty,max=255"`
	Content  *string `json:"content"`
	Category *string `json:"category" binding:"omitempty,max=50"`
}

func (h *PostHandler) Create(c *gin.Context) {
	var req CreatePostRequest
	if !bind(c, &req) {
		return
	}
	p, err := h.svc.Create(c.Request.Context(), middleware.GetUserID(c), service.PostInput{
		Type:      req.Type,
		Title:     req.Title,
		Content:   req.Content,
		MediaURL:  req.MediaURL,
		LinkURL:   req.LinkURL,
		Category:  req.Category,
		IsPrivate: req.IsPrivate,
	})
	if err != nil {
		fail(c, "posts", err)
		return
	}
	response.Created(c, "post created", p)
}

func (h *PostHandler) Feed(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.svc.Feed(c.Request.Context(), middleware.GetUserID(c), c.Query("category"), c.Query("type"), page, limit)
	if err != nil {
		fail(c, "posts", err)
		return
	}
	response.Page(c, list, page, limit, total)
}

func (h *PostHandler) Search(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.svc.Search(c.Request.Context(), middleware.GetUserID(c), c.Query("q"), page, limit)
	if err != nil {
		fail(c, "posts", err)
		return
	}
	response.Page(c, list, page, limit, total)
}

func (h *PostHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.Get(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		fail(c, "posts", err)
		return
	}
	response.OK(c, "", p)
}

func (h *PostHandler) UserPosts(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	page, limit := parsePagination(c)
	list, total, err := h.svc.UserPosts(c.Request.Context(), middleware.GetUserID(c), userID, page, limit)
	if err != nil {
		fail(c, "posts", err)
		return
	}
	response.Page(c, list, page, limit, total)
}

type listFunc func(c *gin.Context, userID uint, page, limit int) ([]service.PostView, int64, error)

// mine adapts a per-user listing into a handler for the authenticated user.
func (h *PostHandler) mine(fn listFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := parsePagination(c)
		list, total, err := fn(c, middleware.GetUserID(c), page, limit)
		if err != nil {
			fail(c, "posts", err)
			return
		}
		response.Page(c, list, page, limit, total)
	}
}

func (h *PostHandler) MyPosts() gin.HandlerFunc {
	return h.mine(func(c *gin.Context, id uint, page, limit int) ([]service.PostView, int64, error) {
		return h.svc.MyPosts(c.Request.Context(), id, page, limit)
	})
}

func (h *PostHandler) MyPrivate() gin.HandlerFunc {
	return h.mine(func(c *gin.Context, id uint, page, limit int) ([]service.PostView, int64, error) {
		return h.svc.MyPrivate(c.Request.Context(), id, page, limit)
	})
}

func (h *PostHandler) MyArchived() gin.HandlerFunc {
	return h.mine(func(c *gin.Context, id uint, page, limit int) ([]service.PostView, int64, error) {
		return h.svc.MyArchived(c.Request.Context(), id, page, limit)
	})
}

func (h *PostHandler) Liked() gin.HandlerFunc {
	return h.mine(func(c *gin.Context, id uint, page, limit int) ([]service.PostView, int64, error) {
		return h.svc.Liked(c.Request.Context(), id, page, limit)
	})
}

func (h *PostHandler) Favorites() gin.HandlerFunc {
	return h.mine(func(c *gin.Context, id uint, page, limit int) ([]service.PostView, int64, error) {
		return h.svc.Favorites(c.Request.Context(), id, page, limit)
	})
}

func (h *PostHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdatePostRequest
	if !bind(c, &req) {
		return
	}
	p, err := h.svc.Update(c.Request.Context(), middleware.GetUserID(c), id, service.PostUpdate{
		Title: req.Title, Content: req.Content, Category: req.Category,
	})
	if err != nil {
		fail(c, "posts", err)
		return
	}
	response.OK(c, "post updated", p)
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.GetUser(c), id); err != nil {
		fail(c, "posts", err)
		return
	}
	response.OK(c, "post deleted", nil)
}

func (h *PostHandler) Archive(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Archive(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		fail(c, "posts", err)
		return
	}
	response.OK(c, "post archived", nil)
}

func (h *PostHandler) Publish(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Publish(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		fail(c, "posts", err)
		return
	}
	response.OK(c, "post published", nil)
}
