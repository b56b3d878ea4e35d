package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pulse-social/pulse/internal/auth"
	"github.com/pulse-social/pulse/internal/db"
	"github.com/pulse-social/pulse/internal/models"
	"github.com/pulse-social/pulse/pkg/logging"
)

// PostsAPI handles post CRUD
type PostsAPI struct {
	posts  db.PostRepository
	likes  db.LikeRepository
	users  db.UserRepository
	logger *zap.Logger
}

// NewPostsAPI creates a new posts API
func NewPostsAPI(posts db.PostRepository, likes db.LikeRepository, users db.UserRepository) *PostsAPI {
	return &PostsAPI{
		posts:  posts,
		likes:  likes,
		users:  users,
		logger: logging.GetLogger().With(zap.String("component", "api-posts")),
	}
}

type createPostRequest struct {
	Title   string `json:"title" binding:"required,min=1,max=255"`
	Content string `json:"content" binding:"required,min=1"`
}

type updatePostRequest struct {
	Title   string `json:"title" binding:"omitempty,min=1,max=255"`
	Content string `json:"content" binding:"omitempty,min=1"`
}

// postView is a post enriched with its author's username and like count
type postView struct {
	*models.Post
	AuthorUsername string `json:"author_username,omitempty"`
	LikeCount      int64  `json:"like_count"`
}

// List returns a filtered, ordered page of posts. Supports `author`,
// `search` and `ordering` query parameters on top of pagination.
func (p *PostsAPI) List(c *gin.Context) {
	pg := pageParams(c, defaultPageSize)

	var authorID int64
	if raw := c.Query("author"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			abort(c, BadRequest("invalid author filter"))
			return
		}
		authorID = id
	}

	posts, total, err := p.posts.List(c.Request.Context(), db.ListPostsOptions{
		AuthorID: authorID,
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
		Limit:    pg.Size,
		Offset:   pg.Offset(),
	})
	if err != nil {
		p.logger.Error("failed to list posts", zap.Error(err))
		abort(c, Internal("failed to list posts"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": p.enrich(c, posts),
		"meta":  pageMeta{Page: pg.Number, PageSize: pg.Size, Total: total},
	})
}

// Create creates a new post authored by the caller
func (p *PostsAPI) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, BadRequest(err.Error()))
		return
	}

	now := time.Now().UTC()
	post := &models.Post{
		AuthorID:  auth.UserID(c),
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.posts.Create(c.Request.Context(), post); err != nil {
		p.logger.Error("failed to create post", zap.Error(err))
		abort(c, Internal("failed to create post"))
		return
	}

	c.JSON(http.StatusCreated, post)
}

// Get returns a single post
func (p *PostsAPI) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		abort(c, BadRequest("invalid post ID"))
		return
	}

	post, err := p.posts.GetByID(c.Request.Context(), id)
	if err != nil {
		abort(c, Internal("failed to look up post"))
		return
	}
	if post == nil {
		abort(c, NotFound("post not found"))
		return
	}

	views := p.enrich(c, []*models.Post{post})
	c.JSON(http.StatusOK, views[0])
}

// Update modifies a post. Only the author may update it.
func (p *PostsAPI) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		abort(c, BadRequest("invalid post ID"))
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, BadRequest(err.Error()))
		return
	}

	post, err := p.posts.GetByID(c.Request.Context(), id)
	if err != nil {
		abort(c, Internal("failed to look up post"))
		return
	}
	if post == nil {
		abort(c, NotFound("post not found"))
		return
	}
	if post.AuthorID != auth.UserID(c) {
		abort(c, Forbidden("only the author may edit this post"))
		return
	}

	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	post.UpdatedAt = time.Now().UTC()

	if err := p.posts.Update(c.Request.Context(), post); err != nil {
		abort(c, Internal("failed to update post"))
		return
	}
	c.JSON(http.StatusOK, post)
}

// Delete removes a post. Only the author may delete it.
func (p *PostsAPI) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		abort(c, BadRequest("invalid post ID"))
		return
	}

	post, err := p.posts.GetByID(c.Request.Context(), id)
	if err != nil {
		abort(c, Internal("failed to look up post"))
		return
	}
	if post == nil {
		abort(c, NotFound("post not found"))
		return
	}
	if post.AuthorID != auth.UserID(c) {
		abort(c, Forbidden("only the author may delete this post"))
		return
	}

	if _, err := p.posts.Delete(c.Request.Context(), id); err != nil {
		abort(c, Internal("failed to delete post"))
		return
	}
	c.Status(http.StatusNoContent)
}

// enrich attaches author usernames and like counts, caching author
// lookups across the page
func (p *PostsAPI) enrich(c *gin.Context, posts []*models.Post) []postView {
	ctx := c.Request.Context()
	authorNames := make(map[int64]string)

	views := make([]postView, len(posts))
	for i, post := range posts {
		name, ok := authorNames[post.AuthorID]
		if !ok {
			if author, err := p.users.GetByID(ctx, post.AuthorID); err == nil && author != nil {
				name = author.Username
			}
			authorNames[post.AuthorID] = name
		}

		likeCount, _ := p.likes.CountByPost(ctx, post.ID)

		views[i] = postView{
			Post:           post,
			AuthorUsername: name,
			LikeCount:      likeCount,
		}
	}
	return views
}
