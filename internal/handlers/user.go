package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lumeo-app/lumeo/internal/middleware"
	"github.com/lumeo-app/lumeo/internal/services"
)

type UserHandler struct {
	profile *services.ProfileService
	logger  *logrus.Logger
}

func NewUserHandler(profile *services.ProfileService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{profile: profile, logger: logger}
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.profile.User(c.Request.Context(), c.Param("userId"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": gin.H{
					"code":    "USER_NOT_FOUND",
					"message": "User does not exist",
				},
			})
			return
		}
		h.logger.WithError(err).Error("Failed to fetch user")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to fetch user",
			},
		})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Followers(c *gin.Context) {
	h.respondWithFollowList(c, h.profile.Followers)
}

func (h *UserHandler) Following(c *gin.Context) {
	h.respondWithFollowList(c, h.profile.Following)
}

func (h *UserHandler) respondWithFollowList(
	c *gin.Context,
	list func(ctx context.Context, uid string) ([]string, error),
) {
	userID := c.Param("userId")

	ids, err := list(c.Request.Context(), userID)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to read follow graph")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to read follow graph",
			},
		})
		return
	}

	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"user_id": userID, "users": ids})
}

// MyInteractions returns the authenticated user's stored interaction history.
func (h *UserHandler) MyInteractions(c *gin.Context) {
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

	doc, err := h.profile.Interactions(c.Request.Context(), userID)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to fetch interaction history")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to fetch interaction history",
			},
		})
		return
	}

	c.JSON(http.StatusOK, doc)
}
