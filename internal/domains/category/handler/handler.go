package handler

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"citylocal-backend/internal/domains/category/model"
	"citylocal-backend/internal/domains/category/service"
	"citylocal-backend/internal/shared/middleware"
	"citylocal-backend/internal/shared/response"
	"citylocal-backend/pkg/logger"
)

type CategoryHandler struct {
	service service.ServiceInterface
}

func NewCategoryHandler(service service.ServiceInterface) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// List handles GET /categories. Admins can pass include_inactive=true to
// see hidden categories with unfiltered counts.
func (h *CategoryHandler) List(c *gin.Context) {
	includeInactive := false
	if c.Query("include_inactive") == "true" {
		if actor, ok := middleware.ActorFrom(c); ok && actor.IsAdmin() {
			includeInactive = true
		}
	}

	result, err := h.service.List(c.Request.Context(), includeInactive)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Get handles GET /categories/:id.
func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	category, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, category)
}

// Create handles POST /admin/categories.
func (h *CategoryHandler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req model.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.service.Create(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, category)
}

// Update handles PUT /admin/categories/:id.
func (h *CategoryHandler) Update(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	var req model.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.service.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, category)
}

// Delete handles DELETE /admin/categories/:id.
func (h *CategoryHandler) Delete(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

func (h *CategoryHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", verrs)
		return
	}

	switch {
	case errors.Is(err, model.ErrCategoryNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeCategoryNotFound, "Category not found")
	case errors.Is(err, model.ErrDuplicateName):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeDuplicateName, "A category with this name already exists")
	default:
		logger.Error("category operation failed", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
