package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/lumeo-app/lumeo/internal/middleware"
	"github.com/lumeo-app/lumeo/internal/services"
	"github.com/lumeo-app/lumeo/pkg/models"
)

type InteractionHandler struct {
	interactions *services.InteractionService
	validator    *validator.Validate
	logger       *logrus.Logger
}

func NewInteractionHandler(
	interactions *services.InteractionService,
	logger *logrus.Logger,
) *InteractionHandler {
	return &InteractionHandler{
		interactions: interactions,
		validator:    validator.New(),
		logger:       logger,
	}
}

// Track records one interaction for the authenticated user. The write is
// fail-soft, so the endpoint always acknowledges a well-formed request.
func (h *InteractionHandler) Track(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": gin.H{
				"code":    "UNAUTHENTICATED",
				"message": "Authentication required",
			},
		})
		return
	}

	var req models.InteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_REQUEST_BODY",
				"message": "Request body must be valid JSON",
			},
		})
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "VALIDATION_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	h.interactions.TrackInteraction(c.Request.Context(), userID, req.PostID, req.Kind)

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"post_id": req.PostID,
		"kind":    req.Kind,
	})
}
