package models

import (
	"fmt"

	"github.com/advisorhub/backend/internal/config"
	"github.com/advisorhub/backend/internal/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

func AutoMigrate() error {
	return DB.AutoMigrate(
		&User{},
		&Project{},
		&ProjectMember{},
		&Appointment{},
		&AppointmentNote{},
		&TeacherSchedule{},
		&Notification{},
		&SystemConfig{},
		&SystemLog{},
	)
}

func GetDB() *gorm.DB {
	return DB
}

// SeedDefaultData creates default config rows and a demo teacher account
// so a fresh install is usable immediately.
func SeedDefaultData() error {
	defaultConfigs := []SystemConfig{
		{Key: "log_retention_days", Value: "30", Type: "int", Group: "system", Label: "System Log Retention Days"},
		{Key: "reminder_window_hours", Value: "24", Type: "int", Group: "appointments", Label: "Appointment Reminder Window (hours)"},
	}

	for _, cfg := range defaultConfigs {
		var count int64
		DB.Model(&SystemConfig{}).Where("key = ?", cfg.Key).Count(&count)
		if count == 0 {
			if err := DB.Create(&cfg).Error; err != nil {
				return err
			}
		}
	}

	var teacherCount int64
	DB.Model(&User{}).Where("role = ?", RoleTeacher).Count(&teacherCount)
	if teacherCount == 0 {
		hash, err := utils.HashPassword("advisor")
		if err != nil {
			return err
		}
		demo := User{
			Email:     "advisor@example.edu",
			Password:  hash,
			FirstName: "Demo",
			LastName:  "Advisor",
			Role:      RoleTeacher,
			TeacherNo: "T0001",
			AuthType:  "local",
			IsActive:  true,
		}
		if err := DB.Create(&demo).Error; err != nil {
			return err
		}
	}

	return nil
}
