package handler

import (
	"errors"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"citylocal-backend/internal/domains/business/model"
	"citylocal-backend/internal/domains/business/service"
	"citylocal-backend/internal/shared"
	"citylocal-backend/internal/shared/middleware"
	"citylocal-backend/internal/shared/response"
	"citylocal-backend/pkg/logger"
)

type BusinessHandler struct {
	service service.ServiceInterface
}

func NewBusinessHandler(service service.ServiceInterface) *BusinessHandler {
	return &BusinessHandler{service: service}
}

// ============================================================================
// Public endpoints
// ============================================================================

// Search handles GET /businesses and GET /search.
func (h *BusinessHandler) Search(c *gin.Context) {
	var req model.SearchBusinessesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid search parameters")
		return
	}

	result, err := h.service.Search(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Businesses, &response.Meta{
		Page:  result.Page,
		Limit: req.Limit,
		Total: result.Total,
		Pages: result.Pages,
	})
}

// GetByID handles GET /businesses/:id.
func (h *BusinessHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid business ID")
		return
	}

	result, err := h.service.Get(c.Request.Context(), actorPtr(c), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetBySlug handles GET /businesses/slug/:slug.
func (h *BusinessHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.BadRequest(c, "Slug is required")
		return
	}

	result, err := h.service.GetBySlug(c.Request.Context(), actorPtr(c), slug)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ============================================================================
// Owner endpoints
// ============================================================================

// Create handles POST /businesses.
func (h *BusinessHandler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req model.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.Submit(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// Update handles PUT /businesses/:id.
func (h *BusinessHandler) Update(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid business ID")
		return
	}

	var req model.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Delete handles DELETE /businesses/:id.
func (h *BusinessHandler) Delete(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid business ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Business deleted successfully"})
}

// Resubmit handles POST /businesses/:id/resubmit.
func (h *BusinessHandler) Resubmit(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid business ID")
		return
	}

	// The body is optional; an empty resubmission is valid.
	var req model.ResubmitBusinessRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	result, err := h.service.Resubmit(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ListMine handles GET /businesses/mine.
func (h *BusinessHandler) ListMine(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", model.DefaultPageSize)

	result, err := h.service.ListMine(c.Request.Context(), actor, page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Businesses, &response.Meta{
		Page:  result.Page,
		Total: result.Total,
		Pages: result.Pages,
	})
}

// Claim handles POST /businesses/:id/claim.
func (h *BusinessHandler) Claim(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid business ID")
		return
	}

	claim, err := h.service.Claim(c.Request.Context(), actor, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, claim)
}

// ============================================================================
// Helpers
// ============================================================================

func actorPtr(c *gin.Context) *shared.Actor {
	if actor, ok := middleware.ActorFrom(c); ok {
		return &actor
	}
	return nil
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func (h *BusinessHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", verrs)
		return
	}

	switch {
	case errors.Is(err, model.ErrBusinessNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeBusinessNotFound, "Business not found")
	case errors.Is(err, model.ErrCategoryNotFound):
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeCategoryNotFound, "Referenced category does not exist")
	case errors.Is(err, model.ErrForbidden):
		response.ErrorResponse(c, http.StatusForbidden, model.ErrCodeForbidden, "Not allowed to perform this action")
	case errors.Is(err, model.ErrAlreadyActive):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeAlreadyActive, "Business is already active")
	case errors.Is(err, model.ErrAlreadyRejected):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeAlreadyRejected, "Business is already rejected")
	case errors.Is(err, model.ErrNotRejected):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeNotRejected, "Only rejected businesses can be resubmitted")
	case errors.Is(err, model.ErrAlreadyClaimed):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeAlreadyClaimed, "This business already has an owner")
	case errors.Is(err, model.ErrClaimExists):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeClaimExists, "A pending claim already exists for this business")
	case errors.Is(err, model.ErrClaimNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeClaimNotFound, "Claim not found")
	case errors.Is(err, model.ErrClaimDecided):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeClaimDecided, "Claim has already been decided")
	case errors.Is(err, model.ErrDuplicateName):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeDuplicateName, "A business with this name already exists")
	default:
		logger.Error("business operation failed", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
