package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ProjectActive    = "active"
	ProjectCompleted = "completed"
	ProjectCancelled = "cancelled"
)

// Project is a supervised academic effort owned by one teacher.
type Project struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	TeacherID   uint           `gorm:"not null;index" json:"teacher_id"`
	Teacher     *User          `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Status      string         `gorm:"size:20;default:active" json:"status"` // active, completed, cancelled
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Project) TableName() string { return "projects" }

// ValidProjectStatus reports whether s is one of the project status values.
func ValidProjectStatus(s string) bool {
	return s == ProjectActive || s == ProjectCompleted || s == ProjectCancelled
}
