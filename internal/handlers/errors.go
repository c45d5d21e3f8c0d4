package handlers

import (
	"errors"

	"github.com/advisorhub/backend/internal/services"
	"github.com/advisorhub/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

// respondError translates service errors into HTTP responses. Unknown errors
// become a generic 500 without leaking internal detail.
func respondError(c *gin.Context, err error) {
	var inputErr *services.InputError
	if errors.As(err, &inputErr) {
		response.BadRequest(c, err.Error())
		return
	}

	switch {
	case errors.Is(err, services.ErrNotProjectMember),
		errors.Is(err, services.ErrAccountDisabled):
		response.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrAppointmentGone),
		errors.Is(err, services.ErrProjectGone),
		errors.Is(err, services.ErrStudentGone),
		errors.Is(err, services.ErrNotificationGone):
		response.NotFound(c, err.Error())
	case errors.Is(err, services.ErrWrongTeacher),
		errors.Is(err, services.ErrTimeConflict),
		errors.Is(err, services.ErrTeacherStatus),
		errors.Is(err, services.ErrStudentStatus),
		errors.Is(err, services.ErrTerminalStatus),
		errors.Is(err, services.ErrNoFieldsToUpdate),
		errors.Is(err, services.ErrInvalidTimeRange),
		errors.Is(err, services.ErrEmailTaken):
		response.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredential):
		response.Unauthorized(c, err.Error())
	default:
		response.Error(c, err)
	}
}
