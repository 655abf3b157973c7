package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"citylocal-backend/internal/domains/activity/service"
	"citylocal-backend/internal/shared/response"
)

type ActivityHandler struct {
	activityService service.ServiceInterface
}

func NewActivityHandler(activityService service.ServiceInterface) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// List returns the admin activity feed.
// GET /api/v1/admin/activities
func (h *ActivityHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	activities, total, err := h.activityService.List(c.Request.Context(), page, limit)
	if err != nil {
		response.InternalServerError(c, "failed to list activities")
		return
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	pages := 0
	if total > 0 {
		pages = (total + limit - 1) / limit
	}

	response.SuccessWithMeta(c, http.StatusOK, gin.H{"activities": activities}, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	})
}
