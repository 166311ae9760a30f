package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lumeo-app/lumeo/internal/middleware"
	"github.com/lumeo-app/lumeo/internal/services"
	"github.com/lumeo-app/lumeo/pkg/models"
)

type RecommendationHandler struct {
	recommendations *services.RecommendationService
	logger          *logrus.Logger
}

func NewRecommendationHandler(
	recommendations *services.RecommendationService,
	logger *logrus.Logger,
) *RecommendationHandler {
	return &RecommendationHandler{
		recommendations: recommendations,
		logger:          logger,
	}
}

// Feed returns the personalized feed for the authenticated user.
func (h *RecommendationHandler) Feed(c *gin.Context) {
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

	h.respondWithFeed(c, userID)
}

// Get returns the personalized feed for an explicit user ID.
func (h *RecommendationHandler) Get(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_USER_ID",
				"message": "User ID is required",
			},
		})
		return
	}

	h.respondWithFeed(c, userID)
}

func (h *RecommendationHandler) respondWithFeed(c *gin.Context, userID string) {
	limit := 0 // 0 lets the service apply its configured default
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 || parsed > 100 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": gin.H{
					"code":    "INVALID_LIMIT",
					"message": "Limit must be an integer between 1 and 100",
				},
			})
			return
		}
		limit = parsed
	}

	recommendations, cacheHit := h.recommendations.PersonalizedFeed(c.Request.Context(), userID, limit)

	c.JSON(http.StatusOK, models.FeedResponse{
		UserID:          userID,
		Recommendations: recommendations,
		GeneratedAt:     time.Now(),
		CacheHit:        cacheHit,
	})
}
