package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/gravadigital/community-api/internal/icalfeed"
	"github.com/gravadigital/community-api/internal/logger"
	"github.com/gravadigital/community-api/internal/response"
	"github.com/gravadigital/community-api/internal/services"
	"github.com/gravadigital/community-api/internal/validation"
)

type BirthdayHandler struct {
	birthdays *services.BirthdayService
	log       *log.Logger
}

func NewBirthdayHandler(birthdays *services.BirthdayService) *BirthdayHandler {
	return &BirthdayHandler{
		birthdays: birthdays,
		log:       logger.Handler("birthday"),
	}
}

// GetBirthdays handles GET /api/birthdays?month=0..11
func (h *BirthdayHandler) GetBirthdays(c *gin.Context) {
	var month *int
	if raw, ok := c.GetQuery("month"); ok {
		m, err := validation.ValidateMonth(raw, 0)
		if err != nil {
			response.BadRequestError(c, err.Error())
			return
		}
		month = &m
	}

	buckets, err := h.birthdays.Buckets(c.Request.Context(), month)
	if err != nil {
		h.log.Error("Failed to build birthday buckets", "error", err)
		response.InternalServerError(c, "failed to load birthdays")
		return
	}

	response.SuccessResponse(c, http.StatusOK, "", buckets)
}

// GetCalendar handles GET /api/birthdays/calendar.ics
func (h *BirthdayHandler) GetCalendar(c *gin.Context) {
	profiles, err := h.birthdays.Project(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to project birthdays for calendar", "error", err)
		response.InternalServerError(c, "failed to load birthdays")
		return
	}

	body, err := icalfeed.Render(profiles, h.birthdays.Now())
	if err != nil {
		h.log.Error("Failed to render birthday calendar", "error", err)
		response.InternalServerError(c, "failed to render calendar")
		return
	}

	c.Header("Content-Disposition", `inline; filename="birthdays.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", body)
}
