package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pulse-social/pulse/internal/models"
)

// Post orderings accepted from clients, mapped to SQL order clauses.
// Anything else falls back to newest-first.
var postOrderings = map[string]string{
	"created_at":  "created_at ASC",
	"-created_at": "created_at DESC",
	"updated_at":  "updated_at ASC",
	"-updated_at": "updated_at DESC",
}

// ListPostsOptions narrows and orders a post listing
type ListPostsOptions struct {
	AuthorID int64  // 0 = any author
	Search   string // matches title or content, case-insensitive
	Ordering string // key into postOrderings
	Limit    int
	Offset   int
}

// PostRepository provides post-related database operations.
// Get methods return (nil, nil) when no row matches.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, opts ListPostsOptions) ([]*models.Post, int64, error)
	Feed(ctx context.Context, userID int64, limit, offset int) ([]*models.Post, int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create creates a new post
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetByID retrieves a post by ID
func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Update updates a post
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// Delete removes a post. The bool reports whether it existed.
func (r *postRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// List returns a filtered, ordered page of posts plus the total match count
func (r *postRepository) List(ctx context.Context, opts ListPostsOptions) ([]*models.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Post{})

	if opts.AuthorID != 0 {
		q = q.Where("author_id = ?", opts.AuthorID)
	}
	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		q = q.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := postOrderings[opts.Ordering]
	if !ok {
		order = "created_at DESC"
	}

	var posts []*models.Post
	if err := q.Order(order).Limit(opts.Limit).Offset(opts.Offset).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Feed returns a page of posts authored by users the given user follows,
// newest first, plus the total count. An empty follow set yields an
// empty page.
func (r *postRepository) Feed(ctx context.Context, userID int64, limit, offset int) ([]*models.Post, int64, error) {
	following := r.db.Model(&models.Follow{}).
		Select("following_id").
		Where("follower_id = ?", userID)

	q := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("author_id IN (?)", following)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*models.Post
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// CommentRepository provides comment-related database operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id int64) (bool, error)
	ListByPost(ctx context.Context, postID int64, limit, offset int) ([]*models.Comment, int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create creates a new comment
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetByID retrieves a comment by ID
func (r *commentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// Update updates a comment
func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

// Delete removes a comment. The bool reports whether it existed.
func (r *commentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListByPost returns a page of comments on a post, oldest first
func (r *commentRepository) ListByPost(ctx context.Context, postID int64, limit, offset int) ([]*models.Comment, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("post_id = ?", postID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []*models.Comment
	if err := q.Order("created_at ASC").Limit(limit).Offset(offset).Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}
