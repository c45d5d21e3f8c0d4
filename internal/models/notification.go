package models

import (
	"time"
)

const (
	NotifyAppointmentCreated = "appointment_created"
	NotifyAppointmentStatus  = "appointment_status"
	NotifyAppointmentNote    = "appointment_note"
	NotifyAppointmentDue     = "appointment_reminder"
)

// Notification is a persisted in-app notification for one user.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	Type      string    `gorm:"size:50;index" json:"type"`
	IsRead    bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
