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
	"github.com/pulse-social/pulse/internal/notify"
	"github.com/pulse-social/pulse/pkg/logging"
)

// CommentsAPI handles comment CRUD
type CommentsAPI struct {
	comments db.CommentRepository
	posts    db.PostRepository
	writer   *notify.Writer
	logger   *zap.Logger
}

// NewCommentsAPI creates a new comments API
func NewCommentsAPI(comments db.CommentRepository, posts db.PostRepository, writer *notify.Writer) *CommentsAPI {
	return &CommentsAPI{
		comments: comments,
		posts:    posts,
		writer:   writer,
		logger:   logging.GetLogger().With(zap.String("component", "api-comments")),
	}
}

type createCommentRequest struct {
	PostID  int64  `json:"post_id" binding:"required"`
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

type updateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// List returns a page of comments filtered by the `post` query parameter
func (a *CommentsAPI) List(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Query("post"), 10, 64)
	if err != nil || postID <= 0 {
		abort(c, BadRequest("missing or invalid post filter"))
		return
	}

	pg := pageParams(c, defaultPageSize)
	comments, total, err := a.comments.ListByPost(c.Request.Context(), postID, pg.Size, pg.Offset())
	if err != nil {
		a.logger.Error("failed to list comments", zap.Error(err))
		abort(c, Internal("failed to list comments"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": comments,
		"meta":  pageMeta{Page: pg.Number, PageSize: pg.Size, Total: total},
	})
}

// Create adds a comment to a post. Commenting on someone else's post
// notifies the author.
func (a *CommentsAPI) Create(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, BadRequest(err.Error()))
		return
	}

	post, err := a.posts.GetByID(c.Request.Context(), req.PostID)
	if err != nil {
		abort(c, Internal("failed to look up post"))
		return
	}
	if post == nil {
		abort(c, NotFound("post not found"))
		return
	}

	currentID := auth.UserID(c)
	now := time.Now().UTC()
	comment := &models.Comment{
		PostID:    req.PostID,
		AuthorID:  currentID,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.comments.Create(c.Request.Context(), comment); err != nil {
		a.logger.Error("failed to create comment", zap.Error(err))
		abort(c, Internal("failed to create comment"))
		return
	}

	if err := a.writer.PostCommented(c.Request.Context(), currentID, post); err != nil {
		a.logger.Warn("failed to write comment notification", zap.Error(err))
	}

	c.JSON(http.StatusCreated, comment)
}

// Update modifies a comment. Only the author may update it.
func (a *CommentsAPI) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		abort(c, BadRequest("invalid comment ID"))
		return
	}

	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, BadRequest(err.Error()))
		return
	}

	comment, err := a.comments.GetByID(c.Request.Context(), id)
	if err != nil {
		abort(c, Internal("failed to look up comment"))
		return
	}
	if comment == nil {
		abort(c, NotFound("comment not found"))
		return
	}
	if comment.AuthorID != auth.UserID(c) {
		abort(c, Forbidden("only the author may edit this comment"))
		return
	}

	comment.Content = req.Content
	comment.UpdatedAt = time.Now().UTC()

	if err := a.comments.Update(c.Request.Context(), comment); err != nil {
		abort(c, Internal("failed to update comment"))
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Delete removes a comment. Only the author may delete it.
func (a *CommentsAPI) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		abort(c, BadRequest("invalid comment ID"))
		return
	}

	comment, err := a.comments.GetByID(c.Request.Context(), id)
	if err != nil {
		abort(c, Internal("failed to look up comment"))
		return
	}
	if comment == nil {
		abort(c, NotFound("comment not found"))
		return
	}
	if comment.AuthorID != auth.UserID(c) {
		abort(c, Forbidden("only the author may delete this comment"))
		return
	}

	if _, err := a.comments.Delete(c.Request.Context(), id); err != nil {
		abort(c, Internal("failed to delete comment"))
		return
	}
	c.Status(http.StatusNoContent)
}
