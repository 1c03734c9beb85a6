package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/gravadigital/community-api/internal/assistant"
	"github.com/gravadigital/community-api/internal/logger"
	"github.com/gravadigital/community-api/internal/response"
	"github.com/gravadigital/community-api/internal/validation"
)

// Asker is the assistant client as the handler sees it
type Asker interface {
	Ask(ctx context.Context, query string) (*assistant.Answer, error)
}

type AssistantHandler struct {
	assistant Asker
	validator validation.AssistantValidation
	log       *log.Logger
}

func NewAssistantHandler(asker Asker) *AssistantHandler {
	return &AssistantHandler{
		assistant: asker,
		validator: validation.AssistantValidation{},
		log:       logger.Handler("assistant"),
	}
}

type AskRequest struct {
	Query string `json:"query"`
}

// Ask handles POST /api/assistant
func (h *AssistantHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "invalid request payload")
		return
	}
	if err := h.validator.ValidateQuery(req.Query); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	answer, err := h.assistant.Ask(c.Request.Context(), req.Query)
	switch {
	case err == nil:
		response.SuccessResponse(c, http.StatusOK, "", answer)
	case errors.Is(err, assistant.ErrEmptyQuery):
		response.BadRequestError(c, "query is required")
	case errors.Is(err, assistant.ErrNotConfigured):
		response.ErrorResponseWithMessage(c, http.StatusServiceUnavailable, "assistant is not available")
	default:
		h.log.Warn("Assistant request failed", "error", err)
		response.BadGatewayError(c, "assistant did not answer, please try again")
	}
}
