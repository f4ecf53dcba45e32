package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"athar/config"
	"athar/internal/models"
	"athar/internal/repository"
	"athar/internal/testutil"
	"athar/pkg/otp"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type sentPush struct {
	Token string
	Type  string
	Title string
}

// fakePusher records pushes instead of calling FCM.
type fakePusher struct {
	mu   sync.Mutex
	sent []sentPush
}

func (f *fakePusher) SendToUser(ctx context.Context, token, notifType, title, body string, data map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentPush{Token: token, Type: notifType, Title: title})
	return nil
}

type testEnv struct {
	db       *gorm.DB
	cfg      *config.Config
	push     *fakePusher
	otp      *otp.StubProvider
	auth     *AuthService
	sessions *SessionService
	notify   *NotificationService
	posts    *PostService
	rel      *RelationService
	comments *CommentService
	users    *UserService
	reports  *ReportService
	contact  *ContactService
	admin    *AdminService
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewDB(t)
	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", Expiry: time.Hour, Issuer: "athar"},
	}
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likes := repository.NewLikeStore(db)
	favorites := repository.NewFavoriteStore(db)
	follows := repository.NewFollowStore(db)

	e := &testEnv{db: db, cfg: cfg, push: &fakePusher{}, otp: otp.NewStubProvider("", "")}
	e.notify = NewNotificationService(repository.NewNotificationRepository(db), userRepo, e.push)
	e.auth = NewAuthService(cfg, userRepo, e.otp)
	e.sessions = NewSessionService(&cfg.JWT, userRepo)
	e.posts = NewPostService(postRepo, userRepo, commentRepo, likes, favorites)
	e.rel = NewRelationService(likes, favorites, follows, postRepo, userRepo, e.notify)
	e.comments = NewCommentService(commentRepo, postRepo, userRepo, e.notify)
	e.users = NewUserService(userRepo, postRepo, follows)
	e.reports = NewReportService(repository.NewReportRepository(db), postRepo, userRepo, commentRepo)
	e.contact = NewContactService(repository.NewContactRepository(db), userRepo, e.notify)
	e.admin = NewAdminService(repository.NewAdminRepository(db), e.notify)
	return e
}

func (e *testEnv) notifications(t *testing.T, userID uint) []models.Notification {
	t.Helper()
	var list []models.Notification
	require.NoError(t, e.db.Where("user_id = ?", userID).Order("id").Find(&list).Error)
	return list
}

func (e *testEnv) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Count(&n).Error)
	return n
}
