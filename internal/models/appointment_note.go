package models

import (
	"time"
)

// AppointmentNote is an append-only remark attached to an appointment by
// either participant. Notes are never edited or deleted.
type AppointmentNote struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	AppointmentID uint         `gorm:"not null;index" json:"appointment_id"`
	Appointment   *Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
	UserID        uint         `gorm:"not null" json:"user_id"`
	User          *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Note          string       `gorm:"type:text;not null" json:"note"`
	CreatedAt     time.Time    `json:"created_at"`
}

func (AppointmentNote) TableName() string { return "appointment_notes" }
