package services

import (
	"context"
	"errors"
	"testing"

	"github.com/advisorhub/backend/internal/models"
)

func TestNotificationDispatch_InlineWithoutQueue(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)
	user := createTestUser(t, db, "student@example.edu", models.RoleStudent)

	svc.Dispatch(&models.Notification{
		UserID:  user.ID,
		Title:   "Hello",
		Message: "msg",
		Type:    models.NotifyAppointmentCreated,
	})

	var count int64
	db.Model(&models.Notification{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Errorf("notifications = %d, expected 1", count)
	}
}

func TestNotificationList(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)
	user := createTestUser(t, db, "student@example.edu", models.RoleStudent)
	other := createTestUser(t, db, "other@example.edu", models.RoleStudent)

	for _, n := range []*models.Notification{
		{UserID: user.ID, Title: "first", Type: models.NotifyAppointmentCreated},
		{UserID: user.ID, Title: "second", Type: models.NotifyAppointmentStatus},
		{UserID: other.ID, Title: "not yours", Type: models.NotifyAppointmentStatus},
	} {
		if err := svc.Deliver(context.Background(), n); err != nil {
			t.Fatalf("Deliver() error = %v", err)
		}
	}

	resp, err := svc.List(user.ID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(resp.Items) != 2 {
		t.Errorf("items = %d, expected 2", len(resp.Items))
	}
	if resp.Unread != 2 {
		t.Errorf("unread = %d, expected 2", resp.Unread)
	}
	for _, item := range resp.Items {
		if item.UserID != user.ID {
			t.Errorf("list leaked notification for user %d", item.UserID)
		}
	}
}

func TestNotificationMarkRead(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)
	user := createTestUser(t, db, "student@example.edu", models.RoleStudent)
	other := createTestUser(t, db, "other@example.edu", models.RoleStudent)

	n := &models.Notification{UserID: user.ID, Title: "hi", Type: models.NotifyAppointmentNote}
	if err := svc.Deliver(context.Background(), n); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}

	// Others cannot mark someone else's notification
	if err := svc.MarkRead(other.ID, n.ID); !errors.Is(err, ErrNotificationGone) {
		t.Errorf("foreign MarkRead() error = %v, expected ErrNotificationGone", err)
	}

	if err := svc.MarkRead(user.ID, n.ID); err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}

	resp, _ := svc.List(user.ID)
	if resp.Unread != 0 {
		t.Errorf("unread after MarkRead = %d, expected 0", resp.Unread)
	}

	if err := svc.MarkRead(user.ID, n.ID+99); !errors.Is(err, ErrNotificationGone) {
		t.Errorf("missing MarkRead() error = %v, expected ErrNotificationGone", err)
	}
}

func TestNotificationMarkAllRead(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)
	user := createTestUser(t, db, "student@example.edu", models.RoleStudent)

	for i := 0; i < 3; i++ {
		svc.Deliver(context.Background(), &models.Notification{
			UserID: user.ID, Title: "n", Type: models.NotifyAppointmentDue,
		})
	}

	if err := svc.MarkAllRead(user.ID); err != nil {
		t.Fatalf("MarkAllRead() error = %v", err)
	}

	resp, _ := svc.List(user.ID)
	if resp.Unread != 0 {
		t.Errorf("unread = %d, expected 0", resp.Unread)
	}
}

func TestNotificationHasRecent(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)
	user := createTestUser(t, db, "student@example.edu", models.RoleStudent)

	if svc.hasRecent(user.ID, models.NotifyAppointmentDue, "reminder text") {
		t.Error("hasRecent() should be false before delivery")
	}

	svc.Deliver(context.Background(), &models.Notification{
		UserID: user.ID, Title: "r", Message: "reminder text", Type: models.NotifyAppointmentDue,
	})

	if !svc.hasRecent(user.ID, models.NotifyAppointmentDue, "reminder text") {
		t.Error("hasRecent() should be true after delivery")
	}
	if svc.hasRecent(user.ID, models.NotifyAppointmentDue, "different text") {
		t.Error("hasRecent() must match on the message")
	}
}
