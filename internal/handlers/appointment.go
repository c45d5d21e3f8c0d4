package handlers

import (
	"strconv"

	"github.com/advisorhub/backend/internal/middleware"
	"github.com/advisorhub/backend/internal/services"
	"github.com/advisorhub/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AppointmentHandler struct {
	appointmentService *services.AppointmentService
}

func NewAppointmentHandler(db *gorm.DB, notifier *services.NotificationService) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: services.NewAppointmentService(db, notifier),
	}
}

// List returns the caller's appointments with optional filters
// GET /api/appointments
func (h *AppointmentHandler) List(c *gin.Context) {
	var req services.AppointmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	views, err := h.appointmentService.List(middleware.GetUserID(c), middleware.GetRole(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, views)
}

// Create books a new appointment
// POST /api/appointments
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req services.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	appointment, err := h.appointmentService.Create(middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, appointment)
}

// Get returns one appointment with its notes
// GET /api/appointments/:id
func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid appointment id")
		return
	}

	detail, err := h.appointmentService.Get(middleware.GetUserID(c), middleware.GetRole(c), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, detail)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed rejected cancelled completed"`
}

// UpdateStatus moves an appointment through its lifecycle
// PATCH /api/appointments/:id/status
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid appointment id")
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	appointment, err := h.appointmentService.UpdateStatus(middleware.GetUserID(c), middleware.GetRole(c), uint(id), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, appointment)
}

type addNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

// AddNote appends a note to an appointment
// POST /api/appointments/:id/notes
func (h *AppointmentHandler) AddNote(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid appointment id")
		return
	}

	var req addNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	note, err := h.appointmentService.AddNote(middleware.GetUserID(c), middleware.GetRole(c), uint(id), req.Note)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, note)
}
