package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"athar/config"
	"athar/internal/auth"
	"athar/internal/domain"
	"athar/internal/models"
	"athar/internal/testutil"
	"athar/pkg/otp"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
		Pages int64 `json:"pages"`
	} `json:"pagination"`
	Errors []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

type api struct {
	t   *testing.T
	db  *gorm.DB
	cfg *config.Config
	r   *gin.Engine
}

func newAPI(t *testing.T) *api {
	t.Helper()
	cfg := &config.Config{
		Server:     config.ServerConfig{Env: "production"},
		JWT:        config.JWTConfig{Secret: "test-secret", Expiry: time.Hour, Issuer: "athar"},
		OTP:        config.OTPConfig{Provider: "stub"},
		Cloudinary: config.CloudinaryConfig{Folder: "Athar"},
	}
	db := testutil.NewDB(t)
	return &api{t: t, db: db, cfg: cfg, r: Setup(cfg, db, nil)}
}

func (a *api) do(method, path string, body interface{}, token string) (int, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func (a *api) token(u *models.User) string {
	a.t.Helper()
	tok, err := auth.GenerateToken(&a.cfg.JWT, u.ID, u.Phone, u.Role)
	require.NoError(a.t, err)
	return tok
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestHealth(t *testing.T) {
	a := newAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"OK"`)

	code, env := a.do(http.MethodGet, "/api/nowhere", nil, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
}

func TestRegistrationFlow(t *testing.T) {
	a := newAPI(t)

	code, env := a.do(http.MethodPost, "/api/auth/send-registration-otp", gin.H{"phone": "07701234567"}, "")
	require.Equal(t, http.StatusOK, code, env.Message)
	order := decode[struct {
		OrderID string `json:"orderId"`
	}](t, env.Data).OrderID
	otpCode, ok := otp.StubCode(order)
	require.True(t, ok)

	code, env = a.do(http.MethodPost, "/api/auth/register", gin.H{
		"phone": "07701234567", "name": "Ali", "orderId": order, "code": otpCode,
	}, "")
	require.Equal(t, http.StatusCreated, code, env.Message)
	payload := decode[struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}](t, env.Data)
	assert.Equal(t, "07701234567", payload.User.Phone)
	require.NotEmpty(t, payload.Token)

	code, env = a.do(http.MethodGet, "/api/auth/me", nil, payload.Token)
	require.Equal(t, http.StatusOK, code)
	me := decode[models.User](t, env.Data)
	assert.Equal(t, payload.User.ID, me.ID)

	code, _ = a.do(http.MethodPost, "/api/auth/login", gin.H{"phone": "07701234567", "password": "whatever"}, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = a.do(http.MethodPost, "/api/auth/send-registration-otp", gin.H{"phone": "07701234567"}, "")
	assert.Equal(t, http.StatusConflict, code)
	code, _ = a.do(http.MethodPost, "/api/auth/send-login-otp", gin.H{"phone": "07709999999"}, "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestValidationErrors(t *testing.T) {
	a := newAPI(t)

	code, env := a.do(http.MethodPost, "/api/auth/register", gin.H{"phone": "123", "name": "A", "code": "12"}, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)
	fields := map[string]string{}
	for _, fe := range env.Errors {
		fields[fe.Field] = fe.Message
	}
	assert.Contains(t, fields, "phone")
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "orderId")
	assert.Contains(t, fields, "code")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthMiddleware(t *testing.T) {
	a := newAPI(t)
	u := testutil.CreateUser(t, a.db, "User")
	tok := a.token(u)

	code, _ := a.do(http.MethodGet, "/api/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = a.do(http.MethodGet, "/api/auth/me", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, code)

	expiredCfg := a.cfg.JWT
	expiredCfg.Expiry = -time.Minute
	expired, err := auth.GenerateToken(&expiredCfg, u.ID, u.Phone, u.Role)
	require.NoError(t, err)
	code, env := a.do(http.MethodGet, "/api/auth/me", nil, expired)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "token expired", env.Message)

	code, _ = a.do(http.MethodGet, "/api/admin/stats", nil, tok)
	assert.Equal(t, http.StatusForbidden, code)

	require.NoError(t, a.db.Model(&models.User{}).Where("id = ?", u.ID).Update("is_banned", true).Error)
	code, _ = a.do(http.MethodGet, "/api/auth/me", nil, tok)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestPostLikeCommentFlow(t *testing.T) {
	a := newAPI(t)
	owner := testutil.CreateUser(t, a.db, "Owner")
	fan := testutil.CreateUser(t, a.db, "Fan")
	ownerTok, fanTok := a.token(owner), a.token(fan)

	code, env := a.do(http.MethodPost, "/api/posts", gin.H{"title": "First trace", "content": "hello", "category": "life"}, ownerTok)
	require.Equal(t, http.StatusCreated, code, env.Message)
	post := decode[struct {
		ID uint `json:"id"`
	}](t, env.Data)

	code, env = a.do(http.MethodPost, fmt.Sprintf("/api/likes/%d", post.ID), nil, fanTok)
	require.Equal(t, http.StatusOK, code)
	liked := decode[struct {
		Liked      bool  `json:"liked"`
		LikesCount int64 `json:"likes_count"`
	}](t, env.Data)
	assert.True(t, liked.Liked)
	assert.EqualValues(t, 1, liked.LikesCount)

	code, env = a.do(http.MethodPost, "/api/comments", gin.H{"post_id": post.ID, "content": "nice"}, fanTok)
	require.Equal(t, http.StatusCreated, code, env.Message)

	code, env = a.do(http.MethodGet, fmt.Sprintf("/api/posts/%d", post.ID), nil, fanTok)
	require.Equal(t, http.StatusOK, code)
	view := decode[struct {
		LikesCount    int64 `json:"likes_count"`
		CommentsCount int64 `json:"comments_count"`
		IsLiked       bool  `json:"is_liked"`
	}](t, env.Data)
	assert.EqualValues(t, 1, view.LikesCount)
	assert.EqualValues(t, 1, view.CommentsCount)
	assert.True(t, view.IsLiked)

	code, env = a.do(http.MethodGet, "/api/posts?limit=5", nil, "")
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, env.Pagination)
	assert.EqualValues(t, 1, env.Pagination.Total)
	assert.Equal(t, 5, env.Pagination.Limit)

	code, env = a.do(http.MethodGet, "/api/notifications", nil, ownerTok)
	require.Equal(t, http.StatusOK, code)
	inbox := decode[struct {
		Notifications []struct {
			Type string `json:"type"`
		} `json:"notifications"`
		UnreadCount int64 `json:"unread_count"`
	}](t, env.Data)
	assert.Len(t, inbox.Notifications, 2)
	assert.EqualValues(t, 2, inbox.UnreadCount)

	code, _ = a.do(http.MethodDelete, fmt.Sprintf("/api/posts/%d", post.ID), nil, fanTok)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = a.do(http.MethodGet, "/api/posts/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestFollowSelfIsRejected(t *testing.T) {
	a := newAPI(t)
	u := testutil.CreateUser(t, a.db, "Solo")

	code, _ := a.do(http.MethodPost, fmt.Sprintf("/api/users/%d/follow", u.ID), nil, a.token(u))
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = a.do(http.MethodPost, "/api/users/9999/follow", nil, a.token(u))
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAdminRoutes(t *testing.T) {
	a := newAPI(t)
	admin := testutil.CreateUser(t, a.db, "Admin")
	require.NoError(t, a.db.Model(&models.User{}).Where("id = ?", admin.ID).Update("role", domain.RoleAdmin).Error)
	mod := testutil.CreateUser(t, a.db, "Mod")
	require.NoError(t, a.db.Model(&models.User{}).Where("id = ?", mod.ID).Update("role", domain.RoleModerator).Error)
	u := testutil.CreateUser(t, a.db, "User")
	adminTok, modTok := a.token(admin), a.token(mod)

	code, _ := a.do(http.MethodGet, "/api/admin/stats", nil, modTok)
	assert.Equal(t, http.StatusOK, code)
	code, _ = a.do(http.MethodPut, fmt.Sprintf("/api/admin/users/%d/ban", u.ID), gin.H{"reason": "spam"}, modTok)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = a.do(http.MethodPut, fmt.Sprintf("/api/admin/users/%d/ban", u.ID), gin.H{"reason": "spam"}, adminTok)
	require.Equal(t, http.StatusOK, code)
	code, env := a.do(http.MethodGet, "/api/admin/users?banned=true", nil, adminTok)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, env.Pagination.Total)

	code, env = a.do(http.MethodPost, "/api/admin/notifications/send", gin.H{"userIds": "all", "title": "Hi", "body": "News"}, adminTok)
	require.Equal(t, http.StatusOK, code, env.Message)
	sent := decode[struct {
		Sent int `json:"sent"`
	}](t, env.Data)
	assert.Equal(t, 2, sent.Sent)

	code, _ = a.do(http.MethodPost, "/api/admin/notifications/send", gin.H{"userIds": "some", "title": "Hi", "body": "News"}, adminTok)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = a.do(http.MethodPost, "/api/upload/image", nil, adminTok)
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestReportAndContactRoutes(t *testing.T) {
	a := newAPI(t)
	admin := testutil.CreateUser(t, a.db, "Admin")
	require.NoError(t, a.db.Model(&models.User{}).Where("id = ?", admin.ID).Update("role", domain.RoleAdmin).Error)
	u := testutil.CreateUser(t, a.db, "User")
	p := testutil.CreatePost(t, a.db, admin.ID, "content")
	userTok, adminTok := a.token(u), a.token(admin)

	code, env := a.do(http.MethodPost, "/api/reports", gin.H{"type": "post", "target_id": p.ID, "reason": "spam"}, userTok)
	require.Equal(t, http.StatusCreated, code, env.Message)
	code, _ = a.do(http.MethodPost, "/api/reports", gin.H{"type": "banner", "target_id": p.ID, "reason": "spam"}, userTok)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = a.do(http.MethodPost, "/api/reports", gin.H{"type": "post", "target_id": 9999, "reason": "spam"}, userTok)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = a.do(http.MethodGet, "/api/admin/reports?status=pending", nil, adminTok)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, env.Pagination.Total)

	code, env = a.do(http.MethodPost, "/api/contact", gin.H{"subject": "Help", "message": "I cannot upload my video"}, userTok)
	require.Equal(t, http.StatusCreated, code, env.Message)
	msg := decode[struct {
		ID uint `json:"id"`
	}](t, env.Data)

	code, _ = a.do(http.MethodPost, fmt.Sprintf("/api/admin/contact/%d/reply", msg.ID), gin.H{"reply": "Try again"}, adminTok)
	require.Equal(t, http.StatusOK, code)
	code, env = a.do(http.MethodGet, "/api/notifications/unread-count", nil, userTok)
	require.Equal(t, http.StatusOK, code)
	unread := decode[struct {
		UnreadCount int64 `json:"unread_count"`
	}](t, env.Data)
	assert.EqualValues(t, 1, unread.UnreadCount)
}
