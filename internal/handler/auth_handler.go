package handler

import (
	"athar/internal/middleware"
	"athar/internal/models"
	"athar/internal/response"
	"athar/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type PhoneRequest struct {
	Phone string `json:"phone" binding:"required,iqphone"`
}

type RegisterRequest struct {
	Phone   string `json:"phone" binding:"required,iqphone"`
	Name    string `json:"name" binding:"required,min=2,max=100"`
	OrderID string `json:"orderId" binding:"required"`
	OTPCode string `json:"code" binding:"required,len=6,numeric"`
}

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required,iqphone"`
	Password string `json:"password" binding:"required"`
}

type LoginOTPRequest struct {
	Phone   string `json:"phone" binding:"required,iqphone"`
	OrderID string `json:"orderId" binding:"required"`
	OTPCode string `json:"code" binding:"required,len=6,numeric"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" binding:"required,min=6,max=72"`
}

type PushTokenRequest struct {
	PushToken string `json:"pushToken" binding:"required,max=512"`
}

type authPayload struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (h *AuthHandler) SendRegistrationOTP(c *gin.Context) {
	h.sendOTP(c, service.PurposeRegister)
}

func (h *AuthHandler) SendLoginOTP(c *gin.Context) {
	h.sendOTP(c, service.PurposeLogin)
}

func (h *AuthHandler) sendOTP(c *gin.Context, purpose service.OTPPurpose) {
	var req PhoneRequest
	if !bind(c, &req) {
		return
	}
	orderID, err := h.svc.RequestOTP(c.Request.Context(), req.Phone, purpose)
	if err != nil {
		fail(c, "auth", err)
		return
	}
	response.OK(c, "verification code sent", gin.H{"orderId": orderID})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bind(c, &req) {
		return
	}
	u, token, err := h.svc.Register(c.Request.Context(), req.Phone, req.Name, req.OrderID, req.OTPCode)
	if err != nil {
		fail(c, "auth", err)
		return
	}
	response.Created(c, "account created", authPayload{User: u, Token: token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bind(c, &req) {
		return
	}
	u, token, err := h.svc.LoginWithPassword(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		fail(c, "auth", err)
		return
	}
	response.OK(c, "logged in", authPayload{User: u, Token: token})
}

func (h *AuthHandler) LoginWithOTP(c *gin.Context) {
	var req LoginOTPRequest
	if !bind(c, &req) {
		return
	}
	u, token, err := h.svc.LoginWithOTP(c.Request.Context(), req.Phone, req.OrderID, req.OTPCode)
	if err != nil {
		fail(c, "auth", err)
		return
	}
	response.OK(c, "logged in", authPayload{User: u, Token: token})
}

// Me returns the authenticated user as loaded by the auth middleware.
func (h *AuthHandler) Me(c *gin.Context) {
	response.OK(c, "", middleware.GetUser(c))
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if !bind(c, &req) {
		return
	}
	if err := h.svc.ChangePassword(c.Request.Context(), middleware.GetUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		fail(c, "auth", err)
		return
	}
	response.OK(c, "password updated", nil)
}

func (h *AuthHandler) SavePushToken(c *gin.Context) {
	var req PushTokenRequest
	if !bind(c, &req) {
		return
	}
	if err := h.svc.SavePushToken(c.Request.Context(), middleware.GetUserID(c), req.PushToken); err != nil {
		fail(c, "auth", err)
		return
	}
	response.OK(c, "push token saved", nil)
}
