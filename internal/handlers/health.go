package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lumeo-app/lumeo/internal/services"
)

type HealthHandler struct {
	health *services.HealthService
	logger *logrus.Logger
}

func NewHealthHandler(health *services.HealthService, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{health: health, logger: logger}
}

func (h *HealthHandler) Check(c *gin.Context) {
	status := h.health.Check(c.Request.Context())

	var httpStatus int
	switch status.Status {
	case "healthy":
		httpStatus = http.StatusOK
	case "degraded":
		httpStatus = http.StatusOK // Still operational
	case "unhealthy":
		httpStatus = http.StatusServiceUnavailable
	default:
		httpStatus = http.StatusInternalServerError
	}

	c.JSON(httpStatus, status)
}
