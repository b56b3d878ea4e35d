package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pulse-social/pulse/internal/auth"
	"github.com/pulse-social/pulse/internal/db"
	"github.com/pulse-social/pulse/internal/notify"
	"github.com/pulse-social/pulse/pkg/logging"
)

// LikesAPI handles liking and unliking posts
type LikesAPI struct {
	likes  db.LikeRepository
	posts  db.PostRepository
	writer *notify.Writer
	logger *zap.Logger
}

// NewLikesAPI creates a new likes API
func NewLikesAPI(likes db.LikeRepository, posts db.PostRepository, writer *notify.Writer) *LikesAPI {
	return &LikesAPI{
		likes:  likes,
		posts:  posts,
		writer: writer,
		logger: logging.GetLogger().With(zap.String("component", "api-likes")),
	}
}

// Like records the caller liking a post. Liking someone else's post
// notifies the author; liking your own post does not.
func (l *LikesAPI) Like(c *gin.Context) {
	currentID := auth.UserID(c)

	postID, ok := idParam(c, "id")
	if !ok {
		abort(c, BadRequest("invalid post ID"))
		return
	}

	post, err := l.posts.GetByID(c.Request.Context(), postID)
	if err != nil {
		abort(c, Internal("failed to look up post"))
		return
	}
	if post == nil {
		abort(c, NotFound("post not found"))
		return
	}

	like, err := l.likes.Create(c.Request.Context(), currentID, postID)
	if err != nil {
		if err == db.ErrDuplicate {
			abort(c, AlreadyExists("post already liked"))
			return
		}
		l.logger.Error("failed to create like", zap.Error(err))
		abort(c, Internal("failed to like post"))
		return
	}

	if err := l.writer.PostLiked(c.Request.Context(), currentID, post); err != nil {
		l.logger.Warn("failed to write like notification", zap.Error(err))
	}

	c.JSON(http.StatusCreated, like)
}

// Unlike removes the caller's like from a post. The notification sent
// when the like was created is not retracted.
func (l *LikesAPI) Unlike(c *gin.Context) {
	currentID := auth.UserID(c)

	postID, ok := idParam(c, "id")
	if !ok {
		abort(c, BadRequest("invalid post ID"))
		return
	}

	post, err := l.posts.GetByID(c.Request.Context(), postID)
	if err != nil {
		abort(c, Internal("failed to look up post"))
		return
	}
	if post == nil {
		abort(c, NotFound("post not found"))
		return
	}

	existed, err := l.likes.Delete(c.Request.Context(), currentID, postID)
	if err != nil {
		abort(c, Internal("failed to unlike post"))
		return
	}
	if !existed {
		abort(c, NotFound("like not found"))
		return
	}

	c.Status(http.StatusNoContent)
}
