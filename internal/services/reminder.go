package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/advisorhub/backend/internal/models"
	"github.com/advisorhub/backend/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReminderService creates reminder notifications for confirmed appointments
// happening within the reminder window, at most once per appointment.
type ReminderService struct {
	db       *gorm.DB
	notifier *NotificationService
	cron     *cron.Cron
	entryID  cron.EntryID
}

func NewReminderService(db *gorm.DB, notifier *NotificationService) *ReminderService {
	return &ReminderService{db: db, notifier: notifier}
}

// StartScheduler runs the reminder sweep hourly.
func (s *ReminderService) StartScheduler() {
	s.cron = cron.New()

	entryID, err := s.cron.AddFunc("@hourly", func() {
		if err := s.Run(); err != nil {
			logger.Warnf("[Reminder] sweep failed: %v", err)
		}
	})
	if err != nil {
		logger.Warnf("[Reminder] failed to schedule: %v", err)
		return
	}

	s.entryID = entryID
	s.cron.Start()
	logger.Infof("[Reminder] scheduler started (hourly)")
}

// StopScheduler stops the cron loop.
func (s *ReminderService) StopScheduler() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Run performs one reminder sweep.
func (s *ReminderService) Run() error {
	window := s.windowHours()
	now := time.Now()
	horizon := now.Add(time.Duration(window) * time.Hour)

	today := now.Format("2006-01-02")
	lastDay := horizon.Format("2006-01-02")

	var upcoming []models.Appointment
	if err := s.db.
		Where("status = ? AND date >= ? AND date <= ?", models.AppointmentConfirmed, today, lastDay).
		Find(&upcoming).Error; err != nil {
		return err
	}

	for i := range upcoming {
		a := &upcoming[i]
		starts, err := time.ParseInLocation("2006-01-02", a.Date, now.Location())
		if err != nil {
			continue
		}
		starts = starts.Add(time.Duration(a.StartTime) * time.Minute)
		if starts.Before(now) || starts.After(horizon) {
			continue
		}

		message := fmt.Sprintf("Reminder: %q on %s at %s", a.Title, a.Date, a.StartTime)
		for _, userID := range []uint{a.StudentID, a.TeacherID} {
			if s.notifier.hasRecent(userID, models.NotifyAppointmentDue, message) {
				continue
			}
			s.notifier.Dispatch(&models.Notification{
				UserID:  userID,
				Title:   "Upcoming appointment",
				Message: message,
				Type:    models.NotifyAppointmentDue,
			})
		}
	}

	return nil
}

func (s *ReminderService) windowHours() int {
	var cfg models.SystemConfig
	if err := s.db.Where("key = ?", "reminder_window_hours").First(&cfg).Error; err != nil {
		return 24
	}
	hours, err := strconv.Atoi(cfg.Value)
	if err != nil || hours <= 0 {
		return 24
	}
	return hours
}
