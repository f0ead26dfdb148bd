package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"bookclub-backend/internal/domains/discussion"
	"bookclub-backend/internal/shared/middleware"
	"bookclub-backend/internal/shared/response"
	"bookclub-backend/pkg/logger"
)

type DiscussionHandler struct {
	service discussion.Service
}

func NewDiscussionHandler(service discussion.Service) *DiscussionHandler {
	return &DiscussionHandler{service: service}
}

// CreateDiscussion handles POST /api/v1/discussions
func (h *DiscussionHandler) CreateDiscussion(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req discussion.CreateDiscussionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	d, err := h.service.CreateDiscussion(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, d)
}

// GetDiscussion handles GET /api/v1/discussions/:id
func (h *DiscussionHandler) GetDiscussion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid discussion ID")
		return
	}

	d, err := h.service.GetDiscussion(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, d)
}

// ListDiscussions handles GET /api/v1/discussions
func (h *DiscussionHandler) ListDiscussions(c *gin.Context) {
	var filter discussion.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	filter.Normalize()

	discussions, total, err := h.service.ListDiscussions(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, discussions, &response.Meta{
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: total,
	})
}

// UpdateDiscussion handles PUT /api/v1/discussions/:id
func (h *DiscussionHandler) UpdateDiscussion(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid discussion ID")
		return
	}

	var req discussion.UpdateDiscussionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	d, err := h.service.UpdateDiscussion(c.Request.Context(), id, userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, d)
}

// AddReply handles POST /api/v1/discussions/:id/replies
func (h *DiscussionHandler) AddReply(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid discussion ID")
		return
	}

	var req discussion.AddReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	reply, err := h.service.AddReply(c.Request.Context(), id, userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, reply)
}

// MarkSolution handles PUT /api/v1/discussions/:id/replies/:replyId/solution
func (h *DiscussionHandler) MarkSolution(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid discussion ID")
		return
	}
	replyID, err := uuid.Parse(c.Param("replyId"))
	if err != nil {
		response.BadRequest(c, "invalid reply ID")
		return
	}

	d, err := h.service.MarkSolution(c.Request.Context(), id, replyID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, d)
}

// ToggleLike handles POST /api/v1/discussions/:id/like
func (h *DiscussionHandler) ToggleLike(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid discussion ID")
		return
	}

	resp, err := h.service.ToggleLike(c.Request.Context(), id, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ToggleReplyLike handles POST /api/v1/discussions/:id/replies/:replyId/like
func (h *DiscussionHandler) ToggleReplyLike(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid discussion ID")
		return
	}
	replyID, err := uuid.Parse(c.Param("replyId"))
	if err != nil {
		response.BadRequest(c, "invalid reply ID")
		return
	}

	resp, err := h.service.ToggleReplyLike(c.Request.Context(), id, replyID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// SetLocked handles PUT /api/v1/discussions/:id/lock
func (h *DiscussionHandler) SetLocked(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid discussion ID")
		return
	}

	var req struct {
		Locked bool `json:"locked"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.service.SetLocked(c.Request.Context(), id, userID, req.Locked); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"locked": req.Locked})
}

// Deactivate handles DELETE /api/v1/discussions/:id
func (h *DiscussionHandler) Deactivate(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid discussion ID")
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id, userID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "discussion removed"})
}

func (h *DiscussionHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", vErrs)
		return
	}

	switch {
	case errors.Is(err, discussion.ErrDiscussionNotFound), errors.Is(err, discussion.ErrReplyNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, discussion.ErrDiscussionLocked):
		response.Conflict(c, err.Error())
	case errors.Is(err, discussion.ErrNotDiscussionOwner):
		response.Forbidden(c, err.Error())
	case errors.Is(err, discussion.ErrInvalidCategory):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("unhandled discussion error", err)
		response.InternalServerError(c, "something went wrong")
	}
}
