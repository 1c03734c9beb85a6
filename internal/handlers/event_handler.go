package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/gravadigital/community-api/internal/domain/common"
	"github.com/gravadigital/community-api/internal/logger"
	"github.com/gravadigital/community-api/internal/response"
	"github.com/gravadigital/community-api/internal/services"
)

type EventHandler struct {
	events *services.EventService
	log    *log.Logger
}

func NewEventHandler(events *services.EventService) *EventHandler {
	return &EventHandler{
		events: events,
		log:    logger.Handler("event"),
	}
}

// ListEvents handles GET /api/events
func (h *EventHandler) ListEvents(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	upcomingOnly := c.Query("upcoming") == "true"

	events, err := h.events.ListEvents(c.Request.Context(), upcomingOnly, page)
	if err != nil {
		h.log.Error("Failed to list events", "error", err)
		response.InternalServerError(c, "failed to list events")
		return
	}

	response.SuccessResponse(c, http.StatusOK, "", events)
}

// GetEvent handles GET /api/events/:id
func (h *EventHandler) GetEvent(c *gin.Context) {
	e, err := h.events.GetEventByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeEventLookupError(c, h.log, err)
		return
	}

	response.SuccessResponse(c, http.StatusOK, "", e)
}

func parsePage(c *gin.Context) (common.Page, error) {
	var page common.Page
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return page, errors.New("limit must be a non-negative integer")
		}
		page.Limit = limit
	}
	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return page, errors.New("offset must be a non-negative integer")
		}
		page.Offset = offset
	}
	return page.Normalize(), nil
}

// writeEventLookupError maps a failed event lookup to 400, 404 or 500.
func writeEventLookupError(c *gin.Context, log *log.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidID):
		response.BadRequestError(c, "event id must be a valid UUID")
	case errors.Is(err, common.ErrNotFound):
		response.NotFoundError(c, "event not found")
	default:
		log.Error("Failed to look up event", "event_id", c.Param("id"), "error", err)
		response.InternalServerError(c, "failed to look up event")
	}
}
