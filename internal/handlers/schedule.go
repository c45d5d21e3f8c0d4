package handlers

import (
	"strconv"

	"github.com/advisorhub/backend/internal/middleware"
	"github.com/advisorhub/backend/internal/services"
	"github.com/advisorhub/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ScheduleHandler struct {
	scheduleService *services.ScheduleService
}

func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: services.NewScheduleService(db),
	}
}

// GetForTeacher returns a teacher's weekly availability, optionally filtered
// to the weekday of ?date=YYYY-MM-DD
// GET /api/appointments/teacher/:teacherId/schedule
func (h *ScheduleHandler) GetForTeacher(c *gin.Context) {
	teacherID, err := strconv.ParseUint(c.Param("teacherId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid teacher id")
		return
	}

	slots, err := h.scheduleService.GetForTeacher(uint(teacherID), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, slots)
}

// Replace swaps the calling teacher's entire weekly schedule
// PUT /api/appointments/teacher/schedule
func (h *ScheduleHandler) Replace(c *gin.Context) {
	var req services.ReplaceScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	teacherID := middleware.GetUserID(c)
	if err := h.scheduleService.Replace(teacherID, &req); err != nil {
		respondError(c, err)
		return
	}

	slots, err := h.scheduleService.GetForTeacher(teacherID, "")
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, slots)
}
