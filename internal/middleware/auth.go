package middleware

import (
	"errors"
	"net/http"
	"strings"

	"athar/internal/auth"
	"athar/internal/models"
	"athar/internal/response"
	"athar/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
	ctxUser   = "user"
	ctxClaims = "claims"
)

func bearer(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// AuthRequired validates the bearer token against the current user record and sets user_id, role and user.
func AuthRequired(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearer(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "missing or malformed authorization header")
			return
		}
		u, claims, err := sessions.Authenticate(c.Request.Context(), token)
		if err != nil {
			status, msg := authFailure(err)
			response.Abort(c, status, msg)
			return
		}
		setUser(c, u, claims)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present and never rejects the request.
func OptionalAuth(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearer(c); ok {
			if u, claims, err := sessions.Authenticate(c.Request.Context(), token); err == nil {
				setUser(c, u, claims)
			}
		}
		c.Next()
	}
}

func setUser(c *gin.Context, u *models.User, claims *auth.Claims) {
	c.Set(ctxUserID, u.ID)
	c.Set(ctxRole, u.Role)
	c.Set(ctxUser, u)
	c.Set(ctxClaims, claims)
}

func authFailure(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return http.StatusUnauthorized, "token expired"
	case errors.Is(err, service.ErrAccountBanned):
		return http.StatusForbidden, "account banned"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, service.ErrUserNotFound):
		return http.StatusUnauthorized, "invalid token"
	}
	return http.StatusInternalServerError, "internal server error"
}

// RequireRole checks that the authenticated user has one of the allowed roles.
// The role comes from the user record, not the token, so demotions apply immediately.
func RequireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ctxRole)
		if !exists {
			response.Abort(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		r := role.(string)
		for _, a := range allowed {
			if r == a {
				c.Next()
				return
			}
		}
		response.Abort(c, http.StatusForbidden, "forbidden")
	}
}

// GetUserID returns the authenticated user ID, or 0 for anonymous requests.
func GetUserID(c *gin.Context) uint {
	v, _ := c.Get(ctxUserID)
	if v == nil {
		return 0
	}
	return v.(uint)
}

// GetUser returns the authenticated user, or nil for anonymous requests.
func GetUser(c *gin.Context) *models.User {
	v, _ := c.Get(ctxUser)
	if v == nil {
		return nil
	}
	return v.(*models.User)
}
