package router

import (
	"log"
	"net/http"
	"time"

	"athar/config"
	"athar/internal/domain"
	"athar/internal/handler"
	"athar/internal/middleware"
	"athar/internal/repository"
	"athar/internal/response"
	"athar/internal/service"
	"athar/pkg/cloudinary"
	"athar/pkg/otp"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewOTPProvider picks the verification backend from config.
func NewOTPProvider(cfg *config.OTPConfig) otp.Provider {
	if cfg.Provider == "otpdev" {
		return otp.NewOTPDevProvider(cfg.APIURL, cfg.AppID, cfg.ClientID, cfg.ClientSecret, cfg.Channel)
	}
	log.Printf("[OTP] using stub provider, codes are not delivered")
	return otp.NewStubProvider(cfg.TestPhone, cfg.TestCode)
}

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	handler.RegisterValidators()
	r := gin.New()
	r.Use(gin.Recovery())
	if !cfg.IsProduction() {
		r.Use(gin.Logger())
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likes := repository.NewLikeStore(db)
	favorites := repository.NewFavoriteStore(db)
	follows := repository.NewFollowStore(db)
	notificationRepo := repository.NewNotificationRepository(db)
	reportRepo := repository.NewReportRepository(db)
	contactRepo := repository.NewContactRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Services
	var push service.Pusher
	if fcmSvc := service.NewFCMService(cfg.Firebase.ServiceAccountPath); fcmSvc != nil {
		log.Printf("[FCM] Push notifications enabled")
		push = fcmSvc
	} else if cfg.Firebase.ServiceAccountPath != "" {
		log.Printf("[FCM] Push notifications disabled: failed to init (check service account file)")
	} else {
		log.Printf("[FCM] Push notifications disabled: set FIREBASE_SERVICE_ACCOUNT_PATH to enable")
	}
	notifSvc := service.NewNotificationService(notificationRepo, userRepo, push)
	sessionSvc := service.NewSessionService(&cfg.JWT, userRepo)
	authSvc := service.NewAuthService(cfg, userRepo, NewOTPProvider(&cfg.OTP))
	postSvc := service.NewPostService(postRepo, userRepo, commentRepo, likes, favorites)
	relationSvc := service.NewRelationService(likes, favorites, follows, postRepo, userRepo, notifSvc)
	commentSvc := service.NewCommentService(commentRepo, postRepo, userRepo, notifSvc)
	userSvc := service.NewUserService(userRepo, postRepo, follows)
	reportSvc := service.NewReportService(reportRepo, postRepo, userRepo, commentRepo)
	contactSvc := service.NewContactService(contactRepo, userRepo, notifSvc)
	adminSvc := service.NewAdminService(adminRepo, notifSvc)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	postHandler := handler.NewPostHandler(postSvc)
	relationHandler := handler.NewRelationHandler(relationSvc)
	commentHandler := handler.NewCommentHandler(commentSvc)
	userHandler := handler.NewUserHandler(userSvc)
	notificationHandler := handler.NewNotificationHandler(notifSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	contactHandler := handler.NewContactHandler(contactSvc)
	adminHandler := handler.NewAdminHandler(adminSvc, postSvc, commentSvc)
	uploadHandler := handler.NewUploadHandler(cloud, cfg.Cloudinary.Folder)

	authMw := middleware.AuthRequired(sessionSvc)
	optionalMw := middleware.OptionalAuth(sessionSvc)
	staffMw := middleware.RequireRole(domain.RoleAdmin, domain.RoleModerator)
	adminMw := middleware.RequireRole(domain.RoleAdmin)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": time.Now().UTC()})
	})
	r.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, "route not found")
	})

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/send-registration-otp", authHandler.SendRegistrationOTP)
			authGroup.POST("/send-login-otp", authHandler.SendLoginOTP)
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/login-otp", authHandler.LoginWithOTP)
			authGroup.GET("/me", authMw, authHandler.Me)
			authGroup.PUT("/password", authMw, authHandler.ChangePassword)
			authGroup.POST("/push-token", authMw, authHandler.SavePushToken)
		}

		posts := api.Group("/posts")
		{
			posts.GET("", optionalMw, postHandler.Feed)
			posts.GET("/search", optionalMw, postHandler.Search)
			posts.GET("/user/:userId", optionalMw, postHandler.UserPosts)
			posts.GET("/my", authMw, postHandler.MyPosts())
			posts.GET("/my/likes", authMw, postHandler.Liked())
			posts.GET("/my/favorites", authMw, postHandler.Favorites())
			posts.GET("/my/private", authMw, postHandler.MyPrivate())
			posts.GET("/my/archived", authMw, postHandler.MyArchived())
			posts.GET("/:id", optionalMw, postHandler.Get)
			posts.POST("", authMw, postHandler.Create)
			posts.PUT("/:id", authMw, postHandler.Update)
			posts.DELETE("/:id", authMw, postHandler.Delete)
			posts.POST("/:id/archive", authMw, postHandler.Archive)
			posts.POST("/:id/publish", authMw, postHandler.Publish)
		}

		api.POST("/likes/:postId", authMw, relationHandler.ToggleLike)
		api.GET("/likes/:postId", optionalMw, relationHandler.Likers)
		api.POST("/favorites/:postId", authMw, relationHandler.ToggleFavorite)
		api.GET("/favorites", authMw, postHandler.Favorites())

		comments := api.Group("/comments")
		{
			comments.GET("/post/:postId", optionalMw, commentHandler.ListForPost)
			comments.GET("/:id/replies", optionalMw, commentHandler.Replies)
			comments.POST("", authMw, commentHandler.Create)
			comments.PUT("/:id", authMw, commentHandler.Update)
			comments.DELETE("/:id", authMw, commentHandler.Delete)
		}

		users := api.Group("/users")
		{
			users.GET("/search", userHandler.Search)
			users.PUT("/profile", authMw, userHandler.UpdateProfile)
			users.GET("/:id", optionalMw, userHandler.Profile)
			users.POST("/:id/follow", authMw, relationHandler.ToggleFollow)
			users.DELETE("/:id/follow", authMw, relationHandler.Unfollow)
			users.GET("/:id/followers", relationHandler.Followers)
			users.GET("/:id/following", relationHandler.Following)
		}

		notifications := api.Group("/notifications")
		notifications.Use(authMw)
		{
			notifications.GET("", notificationHandler.List)
			notifications.GET("/unread-count", notificationHandler.UnreadCount)
			notifications.PUT("/read-all", notificationHandler.MarkAllRead)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
			notifications.DELETE("/:id", notificationHandler.Delete)
		}

		api.POST("/reports", authMw, reportHandler.Create)

		contact := api.Group("/contact")
		contact.Use(authMw)
		{
			contact.POST("", contactHandler.Create)
			contact.GET("/my", contactHandler.Mine)
		}

		api.POST("/upload/image", authMw, uploadHandler.UploadImage)
		api.POST("/upload/video", authMw, uploadHandler.UploadVideo)
		api.POST("/upload/avatar", authMw, uploadHandler.UploadAvatar)

		admin := api.Group("/admin")
		admin.Use(authMw, staffMw)
		{
			admin.GET("/stats", adminHandler.Stats)
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/users/:id", adminHandler.GetUser)
			admin.PUT("/users/:id/ban", adminMw, adminHandler.BanUser)
			admin.PUT("/users/:id/unban", adminMw, adminHandler.UnbanUser)
			admin.DELETE("/users/:id", adminMw, adminHandler.DeleteUser)

			admin.GET("/posts", adminHandler.ListPosts)
			admin.DELETE("/posts/:id", adminHandler.DeletePost)
			admin.GET("/comments", adminHandler.ListComments)
			admin.DELETE("/comments/:id", adminHandler.DeleteComment)

			admin.GET("/reports", reportHandler.List)
			admin.GET("/reports/:id", reportHandler.Get)
			admin.PUT("/reports/:id/status", reportHandler.UpdateStatus)

			admin.GET("/contact", contactHandler.List)
			admin.GET("/contact/:id", contactHandler.Get)
			admin.PUT("/contact/:id/status", contactHandler.UpdateStatus)
			admin.POST("/contact/:id/reply", contactHandler.Reply)
			admin.DELETE("/contact/:id", adminMw, contactHandler.Delete)

			admin.POST("/notifications/send", adminMw, adminHandler.Broadcast)
		}
	}

	return r
}
