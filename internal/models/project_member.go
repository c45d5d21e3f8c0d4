package models

import (
	"time"
)

// ProjectMember links a student to a project. The composite unique index
// makes duplicate enrollment attempts no-ops at the store level.
type ProjectMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"uniqueIndex:idx_project_student;not null" json:"project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	StudentID uint      `gorm:"uniqueIndex:idx_project_student;not null" json:"student_id"`
	Student   *User     `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (ProjectMember) TableName() string { return "project_members" }
