package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumeo-app/lumeo/internal/services"
	"github.com/lumeo-app/lumeo/pkg/models"
)

type recordingBehaviorStore struct {
	userIDs []string
	postIDs []string
	kinds   []string
}

func (r *recordingBehaviorStore) AddInteraction(ctx context.Context, userID, postID, kind string) error {
	r.userIDs = append(r.userIDs, userID)
	r.postIDs = append(r.postIDs, postID)
	r.kinds = append(r.kinds, kind)
	return nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newInteractionRouter(store *recordingBehaviorStore, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := quietLogger()

	svc := services.NewInteractionService(store, nil, nil, logger)
	handler := NewInteractionHandler(svc, logger)

	router := gin.New()
	router.POST("/api/v1/interactions", func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		handler.Track(c)
	})
	return router
}

func postInteraction(t *testing.T, router *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/interactions", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestInteractionHandler_Track(t *testing.T) {
	t.Run("accepts a valid interaction", func(t *testing.T) {
		store := &recordingBehaviorStore{}
		router := newInteractionRouter(store, "alice")

		w := postInteraction(t, router, models.InteractionRequest{
			PostID: "p1",
			Kind:   models.InteractionLike,
		})

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, []string{"alice"}, store.userIDs)
		assert.Equal(t, []string{"p1"}, store.postIDs)
		assert.Equal(t, []string{models.InteractionLike}, store.kinds)
	})

	t.Run("rejects an unknown kind", func(t *testing.T) {
		store := &recordingBehaviorStore{}
		router := newInteractionRouter(store, "alice")

		w := postInteraction(t, router, models.InteractionRequest{
			PostID: "p1",
			Kind:   "repost",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, store.userIDs)
		assert.Contains(t, w.Body.String(), "VALIDATION_FAILED")
	})

	t.Run("rejects a missing post id", func(t *testing.T) {
		store := &recordingBehaviorStore{}
		router := newInteractionRouter(store, "alice")

		w := postInteraction(t, router, map[string]string{"kind": "like"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, store.userIDs)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		store := &recordingBehaviorStore{}
		router := newInteractionRouter(store, "alice")

		req := httptest.NewRequest(http.MethodPost, "/api/v1/interactions", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_REQUEST_BODY")
	})

	t.Run("rejects an unauthenticated request", func(t *testing.T) {
		store := &recordingBehaviorStore{}
		router := newInteractionRouter(store, "")

		w := postInteraction(t, router, models.InteractionRequest{
			PostID: "p1",
			Kind:   models.InteractionLike,
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, store.userIDs)
	})
}
