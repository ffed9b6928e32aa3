package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aHaldin/pickmyartist/internal/domains/admin"
	"github.com/aHaldin/pickmyartist/internal/shared/response"
	"github.com/aHaldin/pickmyartist/pkg/logger"
)

type AdminHandler struct {
	service admin.Service
}

func NewAdminHandler(svc admin.Service) *AdminHandler {
	return &AdminHandler{
		service: svc,
	}
}

// ========== READ: GET /v1/admin/stats ==========
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		logger.Error("admin stats", err)
		response.InternalServerError(c, "Something went wrong")
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// ========== READ: GET /v1/admin/users?search= ==========
func (h *AdminHandler) SearchUsers(c *gin.Context) {
	term := strings.TrimSpace(c.Query("search"))

	users, err := h.service.SearchUsers(c.Request.Context(), term)
	if err != nil {
		logger.Error("admin user search", err)
		response.InternalServerError(c, "Something went wrong")
		return
	}

	response.Success(c, http.StatusOK, users)
}
