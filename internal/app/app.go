package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	vidtubeHTTP "vidtube/internal/controller/http"
	"vidtube/internal/repo/persistent"
	"vidtube/internal/usecase"
	"vidtube/pkg/config"
	"vidtube/pkg/jwt"
	"vidtube/pkg/logger"
	"vidtube/pkg/middleware"
	"vidtube/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, s3Client *s3.Client, redisClient *redis.Client) {
	jwtService := jwt.NewService(
		cfg.AccessTokenSecret,
		cfg.RefreshTokenSecret,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)

	// Initialize repositories
	userRepo := persistent.NewUserRepository(db)
	videoRepo := persistent.NewVideoRepository(db)
	tweetRepo := persistent.NewTweetRepository(db)
	commentRepo := persistent.NewCommentRepository(db)
	likeRepo := persistent.NewLikeRepository(db)
	subRepo := persistent.NewSubscriptionRepository(db)

	// Initialize use cases
	authUseCase := usecase.NewAuthUseCase(userRepo, subRepo, jwtService, s3Client, log)
	videoUseCase := usecase.NewVideoUseCase(videoRepo, userRepo, s3Client, log)
	tweetUseCase := usecase.NewTweetUseCase(tweetRepo, userRepo, log)
	commentUseCase := usecase.NewCommentUseCase(commentRepo, videoRepo, log)
	likeUseCase := usecase.NewLikeUseCase(likeRepo, videoRepo, commentRepo, tweetRepo, redisClient, log)
	subUseCase := usecase.NewSubscriptionUseCase(subRepo, userRepo, log)

	// Initialize HTTP handlers
	userHandler := vidtubeHTTP.NewUserHandler(authUseCase, cfg, log)
	videoHandler := vidtubeHTTP.NewVideoHandler(videoUseCase, likeUseCase, cfg, log)
	tweetHandler := vidtubeHTTP.NewTweetHandler(tweetUseCase, log)
	commentHandler := vidtubeHTTP.NewCommentHandler(commentUseCase, log)
	likeHandler := vidtubeHTTP.NewLikeHandler(likeUseCase, log)
	subHandler := vidtubeHTTP.NewSubscriptionHandler(subUseCase, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	requireAuth := middleware.AuthMiddleware(jwtService, authUseCase)
	optionalAuth := middleware.OptionalAuthMiddleware(jwtService, authUseCase)

	api := r.Group("/api/v1")

	users := api.Group("/users")
	{
		// Credential endpoints are rate limited per client.
		credLimit := middleware.RateLimitMiddleware(redisClient, 10, time.Minute)
		users.POST("/register", credLimit, userHandler.Register)
		users.POST("/login", credLimit, userHandler.Login)
		users.POST("/refresh-token", userHandler.RefreshToken)

		users.POST("/logout", requireAuth, userHandler.Logout)
		users.POST("/change-password", requireAuth, userHandler.ChangePassword)
		users.GET("/current-user", requireAuth, userHandler.CurrentUser)
		users.PATCH("/update-account", requireAuth, userHandler.UpdateAccount)
		users.PATCH("/avatar", requireAuth, userHandler.UpdateAvatar)
		users.PATCH("/cover-image", requireAuth, userHandler.UpdateCover)
		users.GET("/c/:username", optionalAuth, userHandler.ChannelProfile)
		users.GET("/history", requireAuth, userHandler.WatchHistory)
	}

	videos := api.Group("/videos")
	{
		videos.GET("", optionalAuth, videoHandler.List)
		videos.GET("/:videoId", optionalAuth, videoHandler.Get)
		videos.POST("", requireAuth, videoHandler.Publish)
		videos.PATCH("/:videoId", requireAuth, videoHandler.Update)
		videos.DELETE("/:videoId", requireAuth, videoHandler.Delete)
		videos.PATCH("/:videoId/toggle-publish", requireAuth, videoHandler.TogglePublish)
	}

	comments := api.Group("/comments")
	{
		comments.GET("/:videoId", optionalAuth, commentHandler.ListByVideo)
		comments.POST("/:videoId", requireAuth, commentHandler.Create)
		comments.PATCH("/c/:commentId", requireAuth, commentHandler.Update)
		comments.DELETE("/c/:commentId", requireAuth, commentHandler.Delete)
	}

	tweets := api.Group("/tweets")
	{
		tweets.GET("/user/:userId", optionalAuth, tweetHandler.ListByUser)
		tweets.POST("", requireAuth, tweetHandler.Create)
		tweets.PATCH("/:tweetId", requireAuth, tweetHandler.Update)
		tweets.DELETE("/:tweetId", requireAuth, tweetHandler.Delete)
	}

	likes := api.Group("/likes", requireAuth)
	{
		likes.POST("/toggle/v/:videoId", likeHandler.ToggleVideoLike)
		likes.POST("/toggle/c/:commentId", likeHandler.ToggleCommentLike)
		likes.POST("/toggle/t/:tweetId", likeHandler.ToggleTweetLike)
		likes.GET("/videos", likeHandler.LikedVideos)
	}

	subscriptions := api.Group("/subscriptions")
	{
		subscriptions.POST("/c/:channelId", requireAuth, subHandler.Toggle)
		subscriptions.GET("/c/:channelId", optionalAuth, subHandler.Subscribers)
		subscriptions.GET("/u/:subscriberId", optionalAuth, subHandler.SubscribedChannels)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Server starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	log.Info("Server exited")
}
