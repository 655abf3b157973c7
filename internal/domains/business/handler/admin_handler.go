package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"citylocal-backend/internal/domains/business/model"
	"citylocal-backend/internal/shared"
	"citylocal-backend/internal/shared/middleware"
	"citylocal-backend/internal/shared/response"
)

// Admin endpoints. All of these sit behind the admin-only middleware; the
// actor is still read so moderation actions carry who performed them.

// AdminList handles GET /admin/businesses.
func (h *BusinessHandler) AdminList(c *gin.Context) {
	var req model.AdminListBusinessesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.service.AdminList(c.Request.Context(), &req)
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

// Approve handles POST /admin/businesses/:id/approve.
func (h *BusinessHandler) Approve(c *gin.Context) {
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

	result, err := h.service.Approve(c.Request.Context(), actor, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Reject handles POST /admin/businesses/:id/reject.
func (h *BusinessHandler) Reject(c *gin.Context) {
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

	var req model.RejectBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.Reject(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ToggleFeatured handles POST /admin/businesses/:id/feature.
func (h *BusinessHandler) ToggleFeatured(c *gin.Context) {
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

	result, err := h.service.ToggleFeatured(c.Request.Context(), actor, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ListClaims handles GET /admin/claims.
func (h *BusinessHandler) ListClaims(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)
	status := c.Query("status")

	claims, total, err := h.service.ListClaims(c.Request.Context(), status, page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if claims == nil {
		claims = []*model.Claim{}
	}

	pages := (total + limit - 1) / limit
	response.SuccessWithMeta(c, http.StatusOK, claims, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	})
}

// ApproveClaim handles POST /admin/claims/:id/approve.
func (h *BusinessHandler) ApproveClaim(c *gin.Context) {
	h.decideClaim(c, h.service.ApproveClaim)
}

// RejectClaim handles POST /admin/claims/:id/reject.
func (h *BusinessHandler) RejectClaim(c *gin.Context) {
	h.decideClaim(c, h.service.RejectClaim)
}

func (h *BusinessHandler) decideClaim(
	c *gin.Context,
	decide func(ctx context.Context, actor shared.Actor, claimID uuid.UUID, req *model.DecideClaimRequest) (*model.Claim, error),
) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid claim ID")
		return
	}

	var req model.DecideClaimRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	claim, err := decide(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, claim)
}
