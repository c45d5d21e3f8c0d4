package models

import (
	"time"

	"github.com/advisorhub/backend/internal/utils"
	"gorm.io/gorm"
)

const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentRejected  = "rejected"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"
)

// Appointment is one requested or confirmed meeting slot between a student
// and the teacher of a shared project.
//
// Invariant: for one teacher on one date, no two appointments with status in
// {pending, confirmed} may have overlapping [start, end) intervals. Start and
// end are minutes since midnight ("HH:MM" on the wire), so the overlap test
// is a pair of integer comparisons.
type Appointment struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	ProjectID   uint            `gorm:"not null;index" json:"project_id"`
	Project     *Project        `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	StudentID   uint            `gorm:"not null;index" json:"student_id"`
	Student     *User           `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	TeacherID   uint            `gorm:"not null;index:idx_teacher_date" json:"teacher_id"`
	Teacher     *User           `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	Date        string          `gorm:"size:10;not null;index:idx_teacher_date" json:"appointment_date"` // YYYY-MM-DD
	StartTime   utils.TimeOfDay `gorm:"not null" json:"start_time"`
	EndTime     utils.TimeOfDay `gorm:"not null" json:"end_time"`
	Status      string          `gorm:"size:20;default:pending;index" json:"status"`
	Location    string          `gorm:"size:255" json:"location,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Appointment) TableName() string { return "appointments" }

// ActiveStatuses are the statuses that occupy a teacher's time slot for
// conflict checking.
func ActiveStatuses() []string {
	return []string{AppointmentPending, AppointmentConfirmed}
}
