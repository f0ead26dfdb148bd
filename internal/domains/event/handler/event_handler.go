package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"bookclub-backend/internal/domains/event"
	"bookclub-backend/internal/shared/middleware"
	"bookclub-backend/internal/shared/response"
	"bookclub-backend/pkg/logger"
)

type EventHandler struct {
	service event.Service
}

func NewEventHandler(service event.Service) *EventHandler {
	return &EventHandler{service: service}
}

// CreateEvent handles POST /api/v1/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req event.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	e, err := h.service.CreateEvent(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, e)
}

// GetEvent handles GET /api/v1/events/:id
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event ID")
		return
	}

	e, err := h.service.GetEvent(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, e)
}

// ListEvents handles GET /api/v1/events
func (h *EventHandler) ListEvents(c *gin.Context) {
	var filter event.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	filter.Normalize()

	events, total, err := h.service.ListEvents(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, events, &response.Meta{
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: total,
	})
}

// UpdateEvent handles PUT /api/v1/events/:id
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event ID")
		return
	}

	var req event.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	e, err := h.service.UpdateEvent(c.Request.Context(), id, userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, e)
}

// CancelEvent handles DELETE /api/v1/events/:id
func (h *EventHandler) CancelEvent(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event ID")
		return
	}

	if err := h.service.CancelEvent(c.Request.Context(), id, userID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "event cancelled"})
}

// JoinEvent handles POST /api/v1/events/:id/join
func (h *EventHandler) JoinEvent(c *gin.Context) {
	h.membershipAction(c, h.service.JoinEvent)
}

// LeaveEvent handles POST /api/v1/events/:id/leave
func (h *EventHandler) LeaveEvent(c *gin.Context) {
	h.membershipAction(c, h.service.LeaveEvent)
}

// MarkInterested handles POST /api/v1/events/:id/interested
func (h *EventHandler) MarkInterested(c *gin.Context) {
	h.membershipAction(c, h.service.MarkInterested)
}

// RemoveInterested handles DELETE /api/v1/events/:id/interested
func (h *EventHandler) RemoveInterested(c *gin.Context) {
	h.membershipAction(c, h.service.RemoveInterested)
}

func (h *EventHandler) membershipAction(c *gin.Context, fn func(ctx context.Context, eventID, userID uuid.UUID) (*event.Event, error)) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event ID")
		return
	}

	e, err := fn(c.Request.Context(), id, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, e)
}

func (h *EventHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", vErrs)
		return
	}

	switch {
	case errors.Is(err, event.ErrEventNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, event.ErrEventFull), errors.Is(err, event.ErrEventCancelled):
		response.Conflict(c, err.Error())
	case errors.Is(err, event.ErrNotOrganizer):
		response.Forbidden(c, err.Error())
	default:
		logger.Error("unhandled event error", err)
		response.InternalServerError(c, "something went wrong")
	}
}
