package handler

import (
	"athar/internal/middleware"
	"athar/internal/response"
	"athar/internal/service"

	"github.com/gin-gonic/gin"
)

// RelationHandler serves likes, favorites and follows.
type RelationHandler struct {
	svc *service.RelationService
}

func NewRelationHandler(svc *service.RelationService) *RelationHandler {
	return &RelationHandler{svc: svc}
}

func (h *RelationHandler) ToggleLike(c *gin.Context) {
	postID, ok := paramID(c, "postId")
	if !ok {
		return
	}
	res, err := h.svc.ToggleLike(c.Request.Context(), middleware.GetUserID(c), postID)
	if err != nil {
		fail(c, "likes", err)
		return
	}
	msg := "like removed"
	if res.On {
		msg = "post liked"
	}
	response.OK(c, msg, gin.H{"liked": res.On, "likes_count": res.Count})
}

func (h *RelationHandler) Likers(c *gin.Context) {
	postID, ok := paramID(c, "postId")
	if !ok {
		return
	}
	page, limit := parsePagination(c)
	users, total, err := h.svc.Likers(c.Request.Context(), middleware.GetUserID(c), postID, page, limit)
	if err != nil {
		fail(c, "likes", err)
		return
	}
	response.Page(c, users, page, limit, total)
}

func (h *RelationHandler) ToggleFavorite(c *gin.Context) {
	postID, ok := paramID(c, "postId")
	if !ok {
		return
	}
	res, err := h.svc.ToggleFavorite(c.Request.Context(), middleware.GetUserID(c), postID)
	if err != nil {
		fail(c, "favorites", err)
		return
	}
	msg := "removed from favorites"
	if res.On {
		msg = "added to favorites"
	}
	response.OK(c, msg, gin.H{"favorited": res.On, "favorites_count": res.Count})
}

func (h *RelationHandler) ToggleFollow(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res, err := h.svc.ToggleFollow(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		fail(c, "follows", err)
		return
	}
	msg := "unfollowed"
	if res.On {
		msg = "followed"
	}
	response.OK(c, msg, gin.H{"following": res.On, "followers_count": res.Count})
}

func (h *RelationHandler) Unfollow(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res, err := h.svc.Unfollow(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		fail(c, "follows", err)
		return
	}
	response.OK(c, "unfollowed", gin.H{"following": false, "followers_count": res.Count})
}

func (h *RelationHandler) Followers(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	page, limit := parsePagination(c)
	users, total, err := h.svc.Followers(c.Request.Context(), id, page, limit)
	if err != nil {
		fail(c, "follows", err)
		return
	}
	response.Page(c, users, page, limit, total)
}

func (h *RelationHandler) Following(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	page, limit := parsePagination(c)
	users, total, err := h.svc.Following(c.Request.Context(), id, page, limit)
	if err != nil {
		fail(c, "follows", err)
		return
	}
	response.Page(c, users, page, limit, total)
}
