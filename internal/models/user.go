package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// User represents a student or teacher account.
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Email      string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password   string         `gorm:"size:255" json:"-"` // Hashed password, empty for LDAP users
	FirstName  string         `gorm:"size:100;not null" json:"first_name"`
	LastName   string         `gorm:"size:100;not null" json:"last_name"`
	Role       string         `gorm:"size:20;not null;index" json:"role"` // student, teacher
	StudentNo  string         `gorm:"size:50;index" json:"student_id,omitempty"`
	TeacherNo  string         `gorm:"size:50;index" json:"teacher_id,omitempty"`
	Department string         `gorm:"size:200" json:"department,omitempty"`
	Phone      string         `gorm:"size:50" json:"phone,omitempty"`
	AuthType   string         `gorm:"size:20;default:local" json:"auth_type"` // local, ldap
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	LastLogin  *time.Time     `json:"last_login"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

// FullName returns "First Last" for display in enriched listings.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
