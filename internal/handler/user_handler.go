package handler

import (
	"athar/internal/middleware"
	"athar/internal/response"
	"athar/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type UpdateProfileRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=2,max=100"`
	Email        *string `json:"email" binding:"omitempty,max=255"`
	Bio          *string `json:"bio" binding:"omitempty,max=500"`
	ProfileImage *string `json:"profile_image" binding:"omitempty,max=512"`
}

func (h *UserHandler) Profile(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.Profile(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		fail(c, "users", err)
		return
	}
	response.OK(c, "", p)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if !bind(c, &req) {
		return
	}
	u, err := h.svc.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), service.ProfileUpdate{
		Name: req.Name, Email: req.Email, Bio: req.Bio, ProfileImage: req.ProfileImage,
	})
	if err != nil {
		fail(c, "users", err)
		return
	}
	response.OK(c, "profile updated", u)
}

func (h *UserHandler) Search(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.svc.Search(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		fail(c, "users", err)
		return
	}
	response.Page(c, list, page, limit, total)
}
