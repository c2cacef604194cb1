package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/postium/postium/config"
	"github.com/postium/postium/controllers"
	"github.com/postium/postium/middleware"
	"github.com/postium/postium/repository"
	"github.com/postium/postium/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB, cache *utils.PageCache) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// File-based zap access log instead of the default console logger.
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Uploaded post images are served as static assets.
	r.Static("/static", "./static")

	postRepo := repository.NewPostRepo(db, cfg.PageSize)
	groupRepo := repository.NewGroupRepo(db)
	userRepo := repository.NewUserRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	followRepo := repository.NewFollowRepo(db)

	feedController := controllers.NewFeedController(postRepo, groupRepo, userRepo, commentRepo, followRepo)
	postController := controllers.NewPostController(postRepo, groupRepo, commentRepo)
	followController := controllers.NewFollowController(userRepo, followRepo)
	adminController := controllers.NewAdminController(cache)
	authController := controllers.NewAuthController(db)

	// The home feed is the only cached page; mutations do not clear it.
	r.GET("/", middleware.CachePage(cache), feedController.Index)
	r.GET("/group/:slug/", feedController.GroupFeed)

	authGroup := r.Group("/auth")
	authGroup.Use(middleware.RateLimit())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	protected := r.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimit())
	protected.GET("/new/", postController.NewPostForm)
	protected.POST("/new/", postController.CreatePost)
	protected.POST("/upload/", postController.UploadImage)
	protected.GET("/follow/", feedController.FollowFeed)
	protected.POST("/admin/cache/clear", adminController.ClearCache)
	protected.GET("/:username/follow/", followController.Follow)
	protected.GET("/:username/unfollow/", followController.Unfollow)
	protected.GET("/:username/:post_id/edit/", postController.EditPostForm)
	protected.POST("/:username/:post_id/edit/", postController.UpdatePost)
	protected.GET("/:username/:post_id/comment/", postController.CommentForm)
	protected.POST("/:username/:post_id/comment/", postController.CreateComment)

	public := r.Group("")
	public.Use(middleware.AuthOptional())
	public.GET("/:username/", feedController.Profile)
	public.GET("/:username/:post_id/", feedController.PostDetail)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "page not found")
	})

	return r
}
