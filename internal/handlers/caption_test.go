package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumeo-app/lumeo/internal/config"
	"github.com/lumeo-app/lumeo/internal/services"
	"github.com/lumeo-app/lumeo/pkg/models"
)

type staticPostStore struct {
	captions []string
}

func (s *staticPostStore) AllPosts(ctx context.Context) ([]models.Post, error) { return nil, nil }
func (s *staticPostStore) TopPostsByLikes(ctx context.Context, limit int) ([]models.Post, error) {
	return nil, nil
}
func (s *staticPostStore) AllCaptions(ctx context.Context) ([]string, error) {
	return s.captions, nil
}

func newCaptionRouter(captions []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := quietLogger()

	svc := services.NewCaptionService(&staticPostStore{captions: captions}, &config.CaptionConfig{
		MaxWords: 15,
		ModelTTL: 10 * time.Minute,
	}, logger)

	handler := NewCaptionHandler(svc, logger)

	router := gin.New()
	router.GET("/api/v1/captions/suggest", handler.Suggest)
	return router
}

func TestCaptionHandler_Suggest(t *testing.T) {
	captions := []string{"golden hour at the beach"}

	t.Run("returns a suggestion for a known prefix", func(t *testing.T) {
		router := newCaptionRouter(captions)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/captions/suggest?seed=golden+hour", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp models.CaptionSuggestionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "golden hour", resp.Seed)
		assert.Equal(t, "golden hour at the beach", resp.Suggestion)
	})

	t.Run("unknown prefix yields an empty suggestion", func(t *testing.T) {
		router := newCaptionRouter(captions)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/captions/suggest?seed=midnight+snack", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp models.CaptionSuggestionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Empty(t, resp.Suggestion)
	})

	t.Run("missing seed is a bad request", func(t *testing.T) {
		router := newCaptionRouter(captions)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/captions/suggest", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "MISSING_SEED")
	})

	t.Run("bounds max_words", func(t *testing.T) {
		router := newCaptionRouter(captions)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/captions/suggest?seed=golden+hour&max_words=0", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_MAX_WORDS")
	})

	t.Run("respects max_words", func(t *testing.T) {
		router := newCaptionRouter(captions)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/captions/suggest?seed=golden+hour&max_words=3", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp models.CaptionSuggestionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "golden hour at", resp.Suggestion)
	})
}
