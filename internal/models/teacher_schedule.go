package models

import (
	"time"

	"github.com/advisorhub/backend/internal/utils"
)

// TeacherSchedule is one recurring weekly availability window for a teacher,
// independent of specific appointments. A teacher's full schedule is replaced
// wholesale on update.
type TeacherSchedule struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	TeacherID   uint            `gorm:"not null;index" json:"teacher_id"`
	DayOfWeek   int             `gorm:"not null" json:"day_of_week"` // 0 = Sunday ... 6 = Saturday
	StartTime   utils.TimeOfDay `gorm:"not null" json:"start_time"`
	EndTime     utils.TimeOfDay `gorm:"not null" json:"end_time"`
	IsAvailable bool            `gorm:"default:true" json:"is_available"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (TeacherSchedule) TableName() string { return "teacher_schedules" }
