package services

import (
	"context"

	"github.com/advisorhub/backend/internal/models"
	"github.com/advisorhub/backend/pkg/logger"
	"gorm.io/gorm"
)

// NotificationService persists in-app notifications. Writes triggered by
// appointment activity go through the task queue so the request path never
// waits on them.
type NotificationService struct {
	db    *gorm.DB
	queue TaskQueue
}

func NewNotificationService(db *gorm.DB, queue TaskQueue) *NotificationService {
	return &NotificationService{db: db, queue: queue}
}

type NotificationListResponse struct {
	Unread int64                 `json:"unread"`
	Items  []models.Notification `json:"items"`
}

// Dispatch enqueues a notification for delivery. Errors are logged, not
// returned: a lost notification must never fail the triggering request.
func (s *NotificationService) Dispatch(n *models.Notification) {
	if s.queue == nil {
		if err := s.Deliver(context.Background(), n); err != nil {
			logger.Warnf("[Notification] delivery failed for user %d: %v", n.UserID, err)
		}
		return
	}
	if err := s.queue.Enqueue(n); err != nil {
		logger.Warnf("[Notification] enqueue failed, delivering inline: %v", err)
		if err := s.Deliver(context.Background(), n); err != nil {
			logger.Warnf("[Notification] delivery failed for user %d: %v", n.UserID, err)
		}
	}
}

// Deliver writes the notification row. It is the processor behind both queue
// implementations.
func (s *NotificationService) Deliver(ctx context.Context, n *models.Notification) error {
	return s.db.WithContext(ctx).Create(n).Error
}

// List returns the caller's notifications, newest first, with the unread
// count.
func (s *NotificationService) List(userID uint) (*NotificationListResponse, error) {
	var items []models.Notification
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(100).
		Find(&items).Error; err != nil {
		return nil, err
	}

	var unread int64
	s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&unread)

	return &NotificationListResponse{Unread: unread, Items: items}, nil
}

// MarkRead marks one of the caller's notifications as read.
func (s *NotificationService) MarkRead(userID, id uint) error {
	result := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationGone
	}
	return nil
}

// MarkAllRead marks all of the caller's notifications as read.
func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

// hasRecent reports whether an identical notification already exists for the
// user. The reminder scheduler uses it to send at most once per appointment.
func (s *NotificationService) hasRecent(userID uint, notifType, message string) bool {
	var count int64
	s.db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ? AND message = ?", userID, notifType, message).
		Count(&count)
	return count > 0
}
