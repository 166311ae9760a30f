package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lumeo-app/lumeo/internal/services"
	"github.com/lumeo-app/lumeo/pkg/models"
)

type CaptionHandler struct {
	captions *services.CaptionService
	logger   *logrus.Logger
}

func NewCaptionHandler(captions *services.CaptionService, logger *logrus.Logger) *CaptionHandler {
	return &CaptionHandler{captions: captions, logger: logger}
}

// Suggest completes a caption prefix with words learned from existing posts.
// An empty suggestion is a normal outcome when the prefix is unknown.
func (h *CaptionHandler) Suggest(c *gin.Context) {
	seed := c.Query("seed")
	if seed == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "MISSING_SEED",
				"message": "Query parameter 'seed' is required",
			},
		})
		return
	}

	maxWords := 0 // 0 lets the service apply its configured default
	if maxStr := c.Query("max_words"); maxStr != "" {
		parsed, err := strconv.Atoi(maxStr)
		if err != nil || parsed <= 0 || parsed > 50 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": gin.H{
					"code":    "INVALID_MAX_WORDS",
					"message": "max_words must be an integer between 1 and 50",
				},
			})
			return
		}
		maxWords = parsed
	}

	suggestion := h.captions.Suggest(c.Request.Context(), seed, maxWords)

	c.JSON(http.StatusOK, models.CaptionSuggestionResponse{
		Seed:       seed,
		Suggestion: suggestion,
	})
}
