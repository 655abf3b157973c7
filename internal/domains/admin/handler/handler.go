package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"citylocal-backend/internal/domains/admin/service"
	"citylocal-backend/internal/shared/response"
	"citylocal-backend/pkg/logger"
)

type AdminHandler struct {
	service service.ServiceInterface
}

func NewAdminHandler(service service.ServiceInterface) *AdminHandler {
	return &AdminHandler{service: service}
}

// Dashboard handles GET /admin/stats.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		logger.Error("failed to build dashboard", err)
		response.InternalServerError(c, "Something went wrong")
		return
	}

	response.Success(c, http.StatusOK, stats)
}
