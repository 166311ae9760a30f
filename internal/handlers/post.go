package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lumeo-app/lumeo/internal/services"
)

type PostHandler struct {
	profile *services.ProfileService
	logger  *logrus.Logger
}

func NewPostHandler(profile *services.ProfileService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{profile: profile, logger: logger}
}

func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.profile.Post(c.Request.Context(), c.Param("postId"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": gin.H{
					"code":    "POST_NOT_FOUND",
					"message": "Post does not exist",
				},
			})
			return
		}
		h.logger.WithError(err).Error("Failed to fetch post")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to fetch post",
			},
		})
		return
	}

	c.JSON(http.StatusOK, post)
}
