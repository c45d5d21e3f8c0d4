package services

import (
	"time"

	"github.com/advisorhub/backend/internal/models"
	"gorm.io/gorm"
)

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

type DashboardStats struct {
	Projects            map[string]int64 `json:"projects"`
	Appointments        map[string]int64 `json:"appointments"`
	UpcomingWeek        int64            `json:"upcoming_week"`
	UnreadNotifications int64            `json:"unread_notifications"`
}

// Stats aggregates counts scoped to the caller's role.
func (s *DashboardService) Stats(role string, userID uint) (*DashboardStats, error) {
	stats := &DashboardStats{
		Projects:     map[string]int64{},
		Appointments: map[string]int64{},
	}

	projectQuery := s.db.Model(&models.Project{})
	if role == models.RoleTeacher {
		projectQuery = projectQuery.Where("teacher_id = ?", userID)
	} else {
		projectQuery = projectQuery.
			Joins("JOIN project_members ON project_members.project_id = projects.id").
			Where("project_members.student_id = ?", userID)
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var projectCounts []statusCount
	if err := projectQuery.
		Select("projects.status AS status, COUNT(*) AS count").
		Group("projects.status").
		Scan(&projectCounts).Error; err != nil {
		return nil, err
	}
	for _, c := range projectCounts {
		stats.Projects[c.Status] = c.Count
	}

	own := ownScope(role, userID)

	var appointmentCounts []statusCount
	if err := s.db.Model(&models.Appointment{}).Scopes(own).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&appointmentCounts).Error; err != nil {
		return nil, err
	}
	for _, c := range appointmentCounts {
		stats.Appointments[c.Status] = c.Count
	}

	today := time.Now().Format("2006-01-02")
	weekEnd := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	if err := s.db.Model(&models.Appointment{}).Scopes(own).
		Where("status IN ? AND date >= ? AND date <= ?", models.ActiveStatuses(), today, weekEnd).
		Count(&stats.UpcomingWeek).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&stats.UnreadNotifications).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
