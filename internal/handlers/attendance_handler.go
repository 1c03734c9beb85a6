package handlers

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/gravadigital/community-api/internal/domain/attendance"
	"github.com/gravadigital/community-api/internal/logger"
	"github.com/gravadigital/community-api/internal/response"
	"github.com/gravadigital/community-api/internal/services"
	"github.com/gravadigital/community-api/internal/validation"
)

type AttendanceHandler struct {
	attendance *services.AttendanceService
	validator  validation.AttendanceValidation
	log        *log.Logger
}

func NewAttendanceHandler(attendance *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{
		attendance: attendance,
		validator:  validation.AttendanceValidation{},
		log:        logger.Handler("attendance"),
	}
}

type ToggleAttendanceRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetAttendance handles GET /api/events/:id/attendance
func (h *AttendanceHandler) GetAttendance(c *gin.Context) {
	view, err := h.attendance.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeEventLookupError(c, h.log, err)
		return
	}

	response.SuccessResponse(c, http.StatusOK, "", view)
}

// ToggleAttendance handles POST /api/events/:id/attendance
func (h *AttendanceHandler) ToggleAttendance(c *gin.Context) {
	var req ToggleAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "invalid request payload: status is required")
		return
	}

	status, err := h.validator.ValidateStatus(req.Status)
	if err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	view, err := h.attendance.Toggle(c.Request.Context(), c.Param("id"), status)
	switch {
	case err == nil:
		response.SuccessResponse(c, http.StatusOK, "attendance updated", view)
	case errors.Is(err, attendance.ErrUnauthenticated):
		response.UnauthorizedError(c, "sign in to RSVP")
	case errors.Is(err, attendance.ErrInvalidStatus):
		response.BadRequestError(c, err.Error())
	case errors.Is(err, attendance.ErrStoreWrite):
		response.ServiceUnavailableError(c, "could not save your RSVP, please try again", view)
	default:
		writeEventLookupError(c, h.log, err)
	}
}
