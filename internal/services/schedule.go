package services

import (
	"time"

	"github.com/advisorhub/backend/internal/models"
	"github.com/advisorhub/backend/internal/utils"
	"gorm.io/gorm"
)

// ScheduleService manages teachers' recurring weekly availability windows.
type ScheduleService struct {
	db *gorm.DB
}

func NewScheduleService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{db: db}
}

type ScheduleSlotRequest struct {
	DayOfWeek   int    `json:"day_of_week"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	IsAvailable bool   `json:"is_available"`
}

type ReplaceScheduleRequest struct {
	Schedules []ScheduleSlotRequest `json:"schedules" binding:"required"`
}

// GetForTeacher returns a teacher's weekly slots, optionally filtered to the
// weekday implied by a calendar date.
func (s *ScheduleService) GetForTeacher(teacherID uint, date string) ([]models.TeacherSchedule, error) {
	query := s.db.Where("teacher_id = ?", teacherID)

	if date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, badInput("date: expected YYYY-MM-DD")
		}
		query = query.Where("day_of_week = ?", int(day.Weekday()))
	}

	var slots []models.TeacherSchedule
	if err := query.Order("day_of_week, start_time").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// Replace swaps a teacher's entire schedule for the supplied slots. The
// delete and the inserts share one transaction so readers never observe a
// half-replaced schedule.
func (s *ScheduleService) Replace(teacherID uint, req *ReplaceScheduleRequest) error {
	slots := make([]models.TeacherSchedule, 0, len(req.Schedules))
	for i, slot := range req.Schedules {
		if slot.DayOfWeek < 0 || slot.DayOfWeek > 6 {
			return badInput("schedules[%d]: day_of_week must be 0-6", i)
		}
		start, err := utils.ParseTimeOfDay(slot.StartTime)
		if err != nil {
			return badInput("schedules[%d]: %w", i, err)
		}
		end, err := utils.ParseTimeOfDay(slot.EndTime)
		if err != nil {
			return badInput("schedules[%d]: %w", i, err)
		}
		if start >= end {
			return badInput("schedules[%d]: %w", i, ErrInvalidTimeRange)
		}
		slots = append(slots, models.TeacherSchedule{
			TeacherID:   teacherID,
			DayOfWeek:   slot.DayOfWeek,
			StartTime:   start,
			EndTime:     end,
			IsAvailable: slot.IsAvailable,
		})
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("teacher_id = ?", teacherID).
			Delete(&models.TeacherSchedule{}).Error; err != nil {
			return err
		}
		if len(slots) == 0 {
			return nil
		}
		return tx.Create(&slots).Error
	})
}
