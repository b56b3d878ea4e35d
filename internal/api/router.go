package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pulse-social/pulse/internal/auth"
	"github.com/pulse-social/pulse/internal/cache"
	"github.com/pulse-social/pulse/internal/db"
	"github.com/pulse-social/pulse/internal/notify"
	"github.com/pulse-social/pulse/pkg/logging"
)

// Router wires repositories into HTTP handlers and sets up routes
type Router struct {
	db     *db.DB
	cache  *cache.Cache
	tokens *auth.Manager
	logger *zap.Logger

	accounts      *AccountsAPI
	posts         *PostsAPI
	feed          *FeedAPI
	likes         *LikesAPI
	comments      *CommentsAPI
	notifications *NotificationsAPI
}

// NewRouter creates a new API router
func NewRouter(database *db.DB, redisCache *cache.Cache, tokens *auth.Manager) *Router {
	users := db.NewUserRepository(database.DB)
	follows := db.NewFollowRepository(database.DB)
	posts := db.NewPostRepository(database.DB)
	comments := db.NewCommentRepository(database.DB)
	likes := db.NewLikeRepository(database.DB)
	notifs := db.NewNotificationRepository(database.DB)

	writer := notify.NewWriter(notifs, redisCache)

	return &Router{
		db:     database,
		cache:  redisCache,
		tokens: tokens,
		logger: logging.GetLogger().With(zap.String("component", "api-router")),

		accounts:      NewAccountsAPI(users, follows, tokens, writer),
		posts:         NewPostsAPI(posts, likes, users),
		feed:          NewFeedAPI(posts, users),
		likes:         NewLikesAPI(likes, posts, writer),
		comments:      NewCommentsAPI(comments, posts, writer),
		notifications: NewNotificationsAPI(notifs, users, posts, comments, redisCache),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.Use(RequestLogger(r.logger))
	engine.Use(Trace())

	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	// Authentication
	engine.POST("/auth/register", r.accounts.Register)
	engine.POST("/auth/login", r.accounts.Login)

	// Public reads
	engine.GET("/users/:id", r.accounts.GetUser)
	engine.GET("/posts", r.posts.List)
	engine.GET("/posts/:id", r.posts.Get)
	engine.GET("/comments", r.comments.List)

	// Everything below requires an authenticated identity
	authed := engine.Group("/")
	authed.Use(auth.Middleware(r.tokens))

	authed.GET("/profile", r.accounts.GetProfile)
	authed.PUT("/profile", r.accounts.UpdateProfile)

	authed.POST("/users/:id/follow", r.accounts.Follow)
	authed.POST("/users/:id/unfollow", r.accounts.Unfollow)

	authed.GET("/feed", r.feed.GetFeed)

	authed.POST("/posts", r.posts.Create)
	authed.PUT("/posts/:id", r.posts.Update)
	authed.DELETE("/posts/:id", r.posts.Delete)

	authed.POST("/posts/:id/like", r.likes.Like)
	authed.DELETE("/posts/:id/like", r.likes.Unlike)

	authed.POST("/comments", r.comments.Create)
	authed.PUT("/comments/:id", r.comments.Update)
	authed.DELETE("/comments/:id", r.comments.Delete)

	authed.GET("/notifications", r.notifications.List)
	authed.GET("/notifications/unread-count", r.notifications.UnreadCount)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	if err := r.db.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"service": "pulse-api",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"service": "pulse-api",
	})
}
