package services

import (
	"testing"
	"time"

	"github.com/advisorhub/backend/internal/models"
	"github.com/advisorhub/backend/internal/utils"
)

func TestReminderRun(t *testing.T) {
	db := newTestDB(t)
	notifier := NewNotificationService(db, nil)
	svc := NewReminderService(db, notifier)

	teacher := createTestUser(t, db, "advisor@example.edu", models.RoleTeacher)
	student := createTestUser(t, db, "student@example.edu", models.RoleStudent)
	project := createTestProject(t, db, teacher.ID, "Thesis")

	// Two hours from now, expressed as the appointment's date and start time
	in2h := time.Now().Add(2 * time.Hour)
	startMin := in2h.Hour()*60 + in2h.Minute()
	soon := models.Appointment{
		ProjectID: project.ID,
		StudentID: student.ID,
		TeacherID: teacher.ID,
		Title:     "Soon",
		Date:      in2h.Format("2006-01-02"),
		StartTime: utils.TimeOfDay(startMin),
		EndTime:   utils.TimeOfDay(startMin + 30),
		Status:    models.AppointmentConfirmed,
	}
	if err := db.Create(&soon).Error; err != nil {
		t.Fatalf("failed to create appointment: %v", err)
	}

	// Far in the future, outside the reminder window
	far := soon
	far.ID = 0
	far.Title = "Far"
	far.Date = time.Now().AddDate(0, 0, 30).Format("2006-01-02")
	if err := db.Create(&far).Error; err != nil {
		t.Fatalf("failed to create appointment: %v", err)
	}

	// Pending ones are not reminded either
	pending := soon
	pending.ID = 0
	pending.Title = "Pending"
	pending.StartTime = 600
	pending.EndTime = 660
	pending.Status = models.AppointmentPending
	if err := db.Create(&pending).Error; err != nil {
		t.Fatalf("failed to create appointment: %v", err)
	}

	if err := svc.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var count int64
	db.Model(&models.Notification{}).Where("type = ?", models.NotifyAppointmentDue).Count(&count)
	if count != 2 {
		t.Errorf("due notifications = %d, expected 2 (student and teacher)", count)
	}

	// Second sweep must not duplicate reminders
	if err := svc.Run(); err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	db.Model(&models.Notification{}).Where("type = ?", models.NotifyAppointmentDue).Count(&count)
	if count != 2 {
		t.Errorf("after second sweep: %d notifications, expected still 2", count)
	}
}

func TestReminderWindowHours(t *testing.T) {
	db := newTestDB(t)
	svc := NewReminderService(db, NewNotificationService(db, nil))

	if got := svc.windowHours(); got != 24 {
		t.Errorf("default window = %d, expected 24", got)
	}

	db.Create(&models.SystemConfig{Key: "reminder_window_hours", Value: "48"})
	if got := svc.windowHours(); got != 48 {
		t.Errorf("configured window = %d, expected 48", got)
	}

	db.Model(&models.SystemConfig{}).Where("key = ?", "reminder_window_hours").Update("value", "junk")
	if got := svc.windowHours(); got != 24 {
		t.Errorf("malformed config window = %d, expected fallback 24", got)
	}
}
