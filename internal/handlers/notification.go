package handlers

import (
	"strconv"

	"github.com/advisorhub/backend/internal/middleware"
	"github.com/advisorhub/backend/internal/services"
	"github.com/advisorhub/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List returns the caller's notifications with the unread count
// GET /api/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	resp, err := h.notificationService.List(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, resp)
}

// MarkRead marks one notification as read
// PUT /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid notification id")
		return
	}

	if err := h.notificationService.MarkRead(middleware.GetUserID(c), uint(id)); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "marked read"})
}

// MarkAllRead marks all of the caller's notifications as read
// PUT /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationService.MarkAllRead(middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "all marked read"})
}
