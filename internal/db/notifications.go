package db

import (
	"context"

	"gorm.io/gorm"

	"github.com/pulse-social/pulse/internal/models"
)

// NotificationRepository provides notification database operations
type NotificationRepository interface {
	Create(ctx context.Context, notif *models.Notification) error
	ListByRecipient(ctx context.Context, recipientID int64, limit, offset int) ([]*models.Notification, int64, error)
	CountUnread(ctx context.Context, recipientID int64) (int64, error)
	MarkAllRead(ctx context.Context, recipientID int64) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create creates a new notification
func (r *notificationRepository) Create(ctx context.Context, notif *models.Notification) error {
	return r.db.WithContext(ctx).Create(notif).Error
}

// ListByRecipient returns a page of the recipient's notifications,
// newest first, plus the total count
func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID int64, limit, offset int) ([]*models.Notification, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ?", recipientID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifs []*models.Notification
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&notifs).Error; err != nil {
		return nil, 0, err
	}
	return notifs, total, nil
}

// CountUnread returns the recipient's unread notification count
func (r *notificationRepository) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND read = false", recipientID).
		Count(&count).Error
	return count, err
}

// MarkAllRead flips every unread notification for the recipient to read.
// The update is idempotent; concurrent calls may both match the same
// rows, which is harmless.
func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID int64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND read = false", recipientID).
		Update("read", true)
	return res.RowsAffected, res.Error
}
