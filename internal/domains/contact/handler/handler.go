package handler

import (
	"errors"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"citylocal-backend/internal/domains/contact/model"
	"citylocal-backend/internal/domains/contact/service"
	"citylocal-backend/internal/shared/response"
	"citylocal-backend/pkg/logger"
)

type ContactHandler struct {
	service service.ServiceInterface
}

func NewContactHandler(service service.ServiceInterface) *ContactHandler {
	return &ContactHandler{service: service}
}

// Submit handles POST /contact. No authentication required.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req model.SubmitTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	ticket, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, ticket)
}

// List handles GET /admin/contacts.
func (h *ContactHandler) List(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)
	status := c.Query("status")

	result, err := h.service.List(c.Request.Context(), status, page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Tickets, &response.Meta{
		Page:  result.Page,
		Limit: limit,
		Total: result.Total,
		Pages: result.Pages,
	})
}

// Get handles GET /admin/contacts/:id.
func (h *ContactHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ticket ID")
		return
	}

	ticket, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, ticket)
}

// UpdateStatus handles PATCH /admin/contacts/:id.
func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ticket ID")
		return
	}

	var req model.UpdateTicketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	ticket, err := h.service.UpdateStatus(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, ticket)
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

func (h *ContactHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", verrs)
		return
	}

	switch {
	case errors.Is(err, model.ErrTicketNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeTicketNotFound, "Ticket not found")
	default:
		logger.Error("contact operation failed", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
