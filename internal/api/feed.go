package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pulse-social/pulse/internal/auth"
	"github.com/pulse-social/pulse/internal/db"
	"github.com/pulse-social/pulse/internal/models"
	"github.com/pulse-social/pulse/pkg/logging"
)

// FeedAPI assembles the follow-based feed
type FeedAPI struct {
	posts  db.PostRepository
	users  db.UserRepository
	logger *zap.Logger
}

// NewFeedAPI creates a new feed API
func NewFeedAPI(posts db.PostRepository, users db.UserRepository) *FeedAPI {
	return &FeedAPI{
		posts:  posts,
		users:  users,
		logger: logging.GetLogger().With(zap.String("component", "api-feed")),
	}
}

// feedItem is a feed post with its author's username
type feedItem struct {
	*models.Post
	AuthorUsername string `json:"author_username,omitempty"`
}

// GetFeed returns posts authored by users the caller follows, newest
// first. A caller who follows nobody gets an empty page, not an error.
func (f *FeedAPI) GetFeed(c *gin.Context) {
	currentID := auth.UserID(c)
	pg := pageParams(c, defaultPageSize)

	posts, total, err := f.posts.Feed(c.Request.Context(), currentID, pg.Size, pg.Offset())
	if err != nil {
		f.logger.Error("failed to assemble feed", zap.Error(err))
		abort(c, Internal("failed to assemble feed"))
		return
	}

	ctx := c.Request.Context()
	authorNames := make(map[int64]string)
	items := make([]feedItem, len(posts))
	for i, post := range posts {
		name, ok := authorNames[post.AuthorID]
		if !ok {
			if author, err := f.users.GetByID(ctx, post.AuthorID); err == nil && author != nil {
				name = author.Username
			}
			authorNames[post.AuthorID] = name
		}
		items[i] = feedItem{Post: post, AuthorUsername: name}
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"meta":  pageMeta{Page: pg.Number, PageSize: pg.Size, Total: total},
	})
}
