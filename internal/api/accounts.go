package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pulse-social/pulse/internal/auth"
	"github.com/pulse-social/pulse/internal/db"
	"github.com/pulse-social/pulse/internal/models"
	"github.com/pulse-social/pulse/internal/notify"
	"github.com/pulse-social/pulse/pkg/logging"
)

// AccountsAPI handles registration, login, profiles and the follow graph
type AccountsAPI struct {
	users   db.UserRepository
	follows db.FollowRepository
	tokens  *auth.Manager
	writer  *notify.Writer
	logger  *zap.Logger
}

// NewAccountsAPI creates a new accounts API
func NewAccountsAPI(users db.UserRepository, follows db.FollowRepository, tokens *auth.Manager, writer *notify.Writer) *AccountsAPI {
	return &AccountsAPI{
		users:   users,
		follows: follows,
		tokens:  tokens,
		writer:  writer,
		logger:  logging.GetLogger().With(zap.String("component", "api-accounts")),
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=2,max=32"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Bio      string `json:"bio" binding:"max=500"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Email string  `json:"email" binding:"omitempty,email"`
	Bio   *string `json:"bio" binding:"omitempty,max=500"`
}

// Register creates a new account and returns an access token
func (a *AccountsAPI) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, BadRequest(err.Error()))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		abort(c, Internal("failed to hash password"))
		return
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Bio:          req.Bio,
		CreatedAt:    time.Now().UTC(),
	}
	if err := a.users.Create(c.Request.Context(), user); err != nil {
		if err == db.ErrDuplicate {
			abort(c, AlreadyExists("username or email already taken"))
			return
		}
		a.logger.Error("failed to create user", zap.Error(err))
		abort(c, Internal("failed to create user"))
		return
	}

	token, err := a.tokens.Issue(user.ID, user.Username)
	if err != nil {
		abort(c, Internal("failed to issue token"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// Login verifies credentials and returns an access token
func (a *AccountsAPI) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, BadRequest(err.Error()))
		return
	}

	user, err := a.users.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		abort(c, Internal("failed to look up user"))
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		abort(c, BadRequest("invalid credentials"))
		return
	}

	token, err := a.tokens.Issue(user.ID, user.Username)
	if err != nil {
		abort(c, Internal("failed to issue token"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GetProfile returns the authenticated user's profile
func (a *AccountsAPI) GetProfile(c *gin.Context) {
	user, err := a.users.GetByID(c.Request.Context(), auth.UserID(c))
	if err != nil || user == nil {
		abort(c, Internal("failed to load profile"))
		return
	}

	profile, err := a.profileOf(c.Request.Context(), user)
	if err != nil {
		abort(c, Internal("failed to load profile"))
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile updates the authenticated user's email or bio
func (a *AccountsAPI) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, BadRequest(err.Error()))
		return
	}

	user, err := a.users.GetByID(c.Request.Context(), auth.UserID(c))
	if err != nil || user == nil {
		abort(c, Internal("failed to load profile"))
		return
	}

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	if err := a.users.Update(c.Request.Context(), user); err != nil {
		if err == db.ErrDuplicate {
			abort(c, AlreadyExists("email already taken"))
			return
		}
		abort(c, Internal("failed to update profile"))
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUser returns a public profile with follower and following counts
func (a *AccountsAPI) GetUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		abort(c, BadRequest("invalid user ID"))
		return
	}

	user, err := a.users.GetByID(c.Request.Context(), id)
	if err != nil {
		abort(c, Internal("failed to look up user"))
		return
	}
	if user == nil {
		abort(c, NotFound("user not found"))
		return
	}

	profile, err := a.profileOf(c.Request.Context(), user)
	if err != nil {
		abort(c, Internal("failed to load profile"))
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Follow adds the target user to the caller's following set and
// returns the new following count
func (a *AccountsAPI) Follow(c *gin.Context) {
	currentID := auth.UserID(c)

	targetID, ok := idParam(c, "id")
	if !ok {
		abort(c, BadRequest("invalid user ID"))
		return
	}
	if targetID == currentID {
		abort(c, InvalidOperation("cannot follow yourself"))
		return
	}

	target, err := a.users.GetByID(c.Request.Context(), targetID)
	if err != nil {
		abort(c, Internal("failed to look up user"))
		return
	}
	if target == nil {
		abort(c, NotFound("user not found"))
		return
	}

	if err := a.follows.Create(c.Request.Context(), currentID, targetID); err != nil {
		if err == db.ErrDuplicate {
			abort(c, AlreadyExists("already following this user"))
			return
		}
		a.logger.Error("failed to create follow", zap.Error(err))
		abort(c, Internal("failed to follow user"))
		return
	}

	if err := a.writer.Followed(c.Request.Context(), currentID, targetID); err != nil {
		a.logger.Warn("failed to write follow notification", zap.Error(err))
	}

	count, err := a.follows.CountFollowing(c.Request.Context(), currentID)
	if err != nil {
		abort(c, Internal("failed to count following"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"following_count": count})
}

// Unfollow removes the target user from the caller's following set and
// returns the new following count
func (a *AccountsAPI) Unfollow(c *gin.Context) {
	currentID := auth.UserID(c)

	targetID, ok := idParam(c, "id")
	if !ok {
		abort(c, BadRequest("invalid user ID"))
		return
	}

	target, err := a.users.GetByID(c.Request.Context(), targetID)
	if err != nil {
		abort(c, Internal("failed to look up user"))
		return
	}
	if target == nil {
		abort(c, NotFound("user not found"))
		return
	}

	existed, err := a.follows.Delete(c.Request.Context(), currentID, targetID)
	if err != nil {
		abort(c, Internal("failed to unfollow user"))
		return
	}
	if !existed {
		abort(c, InvalidOperation("not following this user"))
		return
	}

	count, err := a.follows.CountFollowing(c.Request.Context(), currentID)
	if err != nil {
		abort(c, Internal("failed to count following"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"following_count": count})
}

func (a *AccountsAPI) profileOf(ctx context.Context, user *models.User) (*models.Profile, error) {
	followers, err := a.follows.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	following, err := a.follows.CountFollowing(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &models.Profile{
		ID:        user.ID,
		Username:  user.Username,
		Bio:       user.Bio,
		Followers: followers,
		Following: following,
		CreatedAt: user.CreatedAt,
	}, nil
}
