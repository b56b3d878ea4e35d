package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pulse-social/pulse/internal/auth"
	"github.com/pulse-social/pulse/internal/cache"
	"github.com/pulse-social/pulse/internal/db"
	"github.com/pulse-social/pulse/internal/models"
	"github.com/pulse-social/pulse/internal/notify"
	"github.com/pulse-social/pulse/pkg/logging"
)

// unreadCountTTL bounds staleness of the cached unread counter between
// invalidations
const unreadCountTTL = 30 * time.Second

// targetResolver renders a short preview for one target kind
type targetResolver func(ctx context.Context, id int64) string

// NotificationsAPI handles notification delivery
type NotificationsAPI struct {
	notifs    db.NotificationRepository
	users     db.UserRepository
	cache     *cache.Cache
	resolvers map[string]targetResolver
	logger    *zap.Logger
}

// NewNotificationsAPI creates a new notifications API. Target previews
// are resolved through a per-kind lookup table rather than reflection.
func NewNotificationsAPI(notifs db.NotificationRepository, users db.UserRepository, posts db.PostRepository, comments db.CommentRepository, c *cache.Cache) *NotificationsAPI {
	resolvers := map[string]targetResolver{
		models.TargetPost: func(ctx context.Context, id int64) string {
			if post, err := posts.GetByID(ctx, id); err == nil && post != nil {
				return snippet(post.Title, 80)
			}
			return ""
		},
		models.TargetComment: func(ctx context.Context, id int64) string {
			if comment, err := comments.GetByID(ctx, id); err == nil && comment != nil {
				return snippet(comment.Content, 80)
			}
			return ""
		},
		models.TargetUser: func(ctx context.Context, id int64) string {
			if user, err := users.GetByID(ctx, id); err == nil && user != nil {
				return user.Username
			}
			return ""
		},
	}

	return &NotificationsAPI{
		notifs:    notifs,
		users:     users,
		cache:     c,
		resolvers: resolvers,
		logger:    logging.GetLogger().With(zap.String("component", "api-notifications")),
	}
}

// notificationView is a notification enriched with its actor and a
// resolved target preview
type notificationView struct {
	ID        int64     `json:"id"`
	Verb      string    `json:"verb"`
	Message   string    `json:"message"`
	Actor     string    `json:"actor"`
	ActorID   int64     `json:"actor_id"`
	Target    targetRef `json:"target"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// targetRef is the tagged reference to the notified-about entity
type targetRef struct {
	Kind    string `json:"kind"`
	ID      int64  `json:"id"`
	Preview string `json:"preview,omitempty"`
}

// List returns the caller's notifications, newest first. As an
// observable side effect every unread notification returned (and any
// others for the caller) is marked read. Concurrent calls may both see
// the unread rows; the bulk update is idempotent so that race is
// harmless.
func (n *NotificationsAPI) List(c *gin.Context) {
	currentID := auth.UserID(c)
	pg := pageParams(c, 20)

	notifs, total, err := n.notifs.ListByRecipient(c.Request.Context(), currentID, pg.Size, pg.Offset())
	if err != nil {
		n.logger.Error("failed to list notifications", zap.Error(err))
		abort(c, Internal("failed to list notifications"))
		return
	}

	ctx := c.Request.Context()
	actorNames := make(map[int64]string)
	items := make([]notificationView, len(notifs))
	for i, notif := range notifs {
		name, ok := actorNames[notif.ActorID]
		if !ok {
			if actor, err := n.users.GetByID(ctx, notif.ActorID); err == nil && actor != nil {
				name = actor.Username
			}
			actorNames[notif.ActorID] = name
		}

		target := targetRef{Kind: notif.TargetKind, ID: notif.TargetID}
		if resolve, ok := n.resolvers[notif.TargetKind]; ok {
			target.Preview = resolve(ctx, notif.TargetID)
		}

		items[i] = notificationView{
			ID:        notif.ID,
			Verb:      notif.Verb,
			Message:   notify.Message(name, notif.Verb),
			Actor:     name,
			ActorID:   notif.ActorID,
			Target:    target,
			Read:      notif.Read,
			CreatedAt: notif.CreatedAt,
		}
	}

	// Viewing the list marks everything read. Not atomic with the
	// read above, which is fine: the update is idempotent.
	if _, err := n.notifs.MarkAllRead(ctx, currentID); err != nil {
		n.logger.Warn("failed to mark notifications read", zap.Error(err))
	}
	if err := n.cache.Delete(ctx, cache.UnreadCountKey(currentID)); err != nil && err != cache.ErrCacheDisabled {
		n.logger.Warn("failed to invalidate unread count cache", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"meta":  pageMeta{Page: pg.Number, PageSize: pg.Size, Total: total},
	})
}

// UnreadCount returns the caller's unread notification count. Pure
// read; the count is cached briefly and invalidated whenever a
// notification is created or the list is viewed.
func (n *NotificationsAPI) UnreadCount(c *gin.Context) {
	currentID := auth.UserID(c)
	ctx := c.Request.Context()

	key := cache.UnreadCountKey(currentID)
	if count, err := n.cache.GetInt64(ctx, key); err == nil {
		c.JSON(http.StatusOK, gin.H{"unread_count": count})
		return
	}

	count, err := n.notifs.CountUnread(ctx, currentID)
	if err != nil {
		abort(c, Internal("failed to count notifications"))
		return
	}

	if err := n.cache.SetInt64(ctx, key, count, unreadCountTTL); err != nil && err != cache.ErrCacheDisabled {
		n.logger.Warn("failed to cache unread count", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

// snippet truncates s to at most max runes
func snippet(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
