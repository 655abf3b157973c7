package handler

import (
	"errors"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	businessmodel "citylocal-backend/internal/domains/business/model"
	"citylocal-backend/internal/domains/review/model"
	"citylocal-backend/internal/domains/review/service"
	"citylocal-backend/internal/shared/middleware"
	"citylocal-backend/internal/shared/response"
	"citylocal-backend/pkg/logger"
)

type ReviewHandler struct {
	service service.ServiceInterface
}

func NewReviewHandler(service service.ServiceInterface) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// Create handles POST /reviews.
func (h *ReviewHandler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	review, err := h.service.Create(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, review)
}

// Update handles PUT /reviews/:id.
func (h *ReviewHandler) Update(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid review ID")
		return
	}

	var req model.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	review, err := h.service.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, review)
}

// Delete handles DELETE /reviews/:id.
func (h *ReviewHandler) Delete(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid review ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

// ListByBusiness handles GET /businesses/:id/reviews.
func (h *ReviewHandler) ListByBusiness(c *gin.Context) {
	businessID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid business ID")
		return
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", model.DefaultPageSize)

	result, err := h.service.ListByBusiness(c.Request.Context(), businessID, page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Reviews, &response.Meta{
		Page:  result.Page,
		Total: result.Total,
		Pages: result.Pages,
	})
}

// ListMine handles GET /reviews/mine.
func (h *ReviewHandler) ListMine(c *gin.Context) {
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

	response.SuccessWithMeta(c, http.StatusOK, result.Reviews, &response.Meta{
		Page:  result.Page,
		Total: result.Total,
		Pages: result.Pages,
	})
}

// Respond handles POST /reviews/:id/respond.
func (h *ReviewHandler) Respond(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid review ID")
		return
	}

	var req model.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	review, err := h.service.Respond(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, review)
}

// ToggleHelpful handles POST /reviews/:id/helpful.
func (h *ReviewHandler) ToggleHelpful(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid review ID")
		return
	}

	result, err := h.service.ToggleHelpful(c.Request.Context(), actor, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Report handles POST /reviews/:id/report.
func (h *ReviewHandler) Report(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid review ID")
		return
	}

	var req model.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.Report(c.Request.Context(), actor, id, &req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Review reported"})
}

// ============================================================================
// Admin endpoints
// ============================================================================

// AdminList handles GET /admin/reviews.
func (h *ReviewHandler) AdminList(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)
	filter := c.Query("status")

	result, err := h.service.AdminList(c.Request.Context(), filter, page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Reviews, &response.Meta{
		Page:  result.Page,
		Total: result.Total,
		Pages: result.Pages,
	})
}

// Approve handles POST /admin/reviews/:id/approve.
func (h *ReviewHandler) Approve(c *gin.Context) {
	h.moderate(c, true)
}

// Withdraw handles POST /admin/reviews/:id/withdraw.
func (h *ReviewHandler) Withdraw(c *gin.Context) {
	h.moderate(c, false)
}

func (h *ReviewHandler) moderate(c *gin.Context, approve bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid review ID")
		return
	}

	review, err := h.service.Moderate(c.Request.Context(), actor, id, approve)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, review)
}

// ============================================================================
// Helpers
// ============================================================================

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

func (h *ReviewHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", verrs)
		return
	}

	switch {
	case errors.Is(err, model.ErrReviewNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeReviewNotFound, "Review not found")
	case errors.Is(err, model.ErrDuplicateReview):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeDuplicateReview, "You have already reviewed this business")
	case errors.Is(err, model.ErrForbidden):
		response.ErrorResponse(c, http.StatusForbidden, model.ErrCodeForbidden, "Not allowed to perform this action")
	case errors.Is(err, model.ErrNotReviewable):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeNotReviewable, "This business is not accepting reviews")
	case errors.Is(err, model.ErrOwnBusiness):
		response.ErrorResponse(c, http.StatusForbidden, model.ErrCodeOwnBusiness, "You cannot review your own business")
	case errors.Is(err, businessmodel.ErrBusinessNotFound):
		response.NotFound(c, "Business not found")
	default:
		logger.Error("review operation failed", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
