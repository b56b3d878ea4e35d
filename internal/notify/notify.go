package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pulse-social/pulse/internal/cache"
	"github.com/pulse-social/pulse/internal/db"
	"github.com/pulse-social/pulse/internal/models"
	"github.com/pulse-social/pulse/pkg/logging"
)

// Writer records engagement events as notifications. Events where the
// actor and the recipient are the same user are dropped: acting on
// your own content never notifies you.
type Writer struct {
	notifs db.NotificationRepository
	cache  *cache.Cache
	logger *zap.Logger
}

// NewWriter creates a notification writer
func NewWriter(notifs db.NotificationRepository, c *cache.Cache) *Writer {
	return &Writer{
		notifs: notifs,
		cache:  c,
		logger: logging.GetLogger().With(zap.String("component", "notify")),
	}
}

// PostLiked records a like on someone else's post
func (w *Writer) PostLiked(ctx context.Context, actorID int64, post *models.Post) error {
	return w.write(ctx, post.AuthorID, actorID, models.VerbLikedPost, models.TargetPost, post.ID)
}

// PostCommented records a comment on someone else's post
func (w *Writer) PostCommented(ctx context.Context, actorID int64, post *models.Post) error {
	return w.write(ctx, post.AuthorID, actorID, models.VerbCommentedPost, models.TargetPost, post.ID)
}

// Followed records a new follower
func (w *Writer) Followed(ctx context.Context, actorID, targetID int64) error {
	return w.write(ctx, targetID, actorID, models.VerbFollowed, models.TargetUser, targetID)
}

func (w *Writer) write(ctx context.Context, recipientID, actorID int64, verb, targetKind string, targetID int64) error {
	if recipientID == actorID {
		return nil
	}

	notif := &models.Notification{
		RecipientID: recipientID,
		ActorID:     actorID,
		Verb:        verb,
		TargetKind:  targetKind,
		TargetID:    targetID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := w.notifs.Create(ctx, notif); err != nil {
		return err
	}

	w.logger.Debug("[NOTIFY]",
		zap.String("verb", verb),
		zap.Int64("actor_id", actorID),
		zap.Int64("recipient_id", recipientID),
		zap.String("target_kind", targetKind),
		zap.Int64("target_id", targetID))

	// The recipient's cached unread count is stale now.
	if err := w.cache.Delete(ctx, cache.UnreadCountKey(recipientID)); err != nil && err != cache.ErrCacheDisabled {
		w.logger.Warn("failed to invalidate unread count cache", zap.Error(err))
	}

	return nil
}

// Message renders the user-facing line for a notification,
// e.g. "@alice liked your post".
func Message(actorName, verb string) string {
	if actorName == "" {
		return verb
	}
	return "@" + actorName + " " + verb
}
