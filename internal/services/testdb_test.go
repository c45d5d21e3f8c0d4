package services

import (
	"testing"

	"github.com/advisorhub/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Appointment{},
		&models.AppointmentNote{},
		&models.TeacherSchedule{},
		&models.Notification{},
		&models.SystemConfig{},
		&models.SystemLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	user := &models.User{
		Email:     email,
		Password:  "x",
		FirstName: "Test",
		LastName:  role,
		Role:      role,
		IsActive:  true,
	}
	if role == models.RoleStudent {
		user.StudentNo = "S-" + email
	} else {
		user.TeacherNo = "T-" + email
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func createTestProject(t *testing.T, db *gorm.DB, teacherID uint, title string) *models.Project {
	t.Helper()

	project := &models.Project{
		Title:     title,
		TeacherID: teacherID,
		Status:    models.ProjectActive,
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to create project %s: %v", title, err)
	}
	return project
}

func enroll(t *testing.T, db *gorm.DB, projectID, studentID uint) {
	t.Helper()

	member := &models.ProjectMember{ProjectID: projectID, StudentID: studentID}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to enroll student %d: %v", studentID, err)
	}
}
