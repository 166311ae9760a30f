package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/lumeo-app/lumeo/internal/config"
	"github.com/lumeo-app/lumeo/pkg/models"
)

const (
	reasonContentBased  = "Based on your interests"
	reasonTrending      = "Trending now"
	reasonCollaborative = "Liked by %d users similar to you"
)

var (
	feedsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lumeo_feeds_generated_total",
		Help: "Blended recommendation feeds generated (cache misses).",
	})
	feedCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lumeo_feed_cache_hits_total",
		Help: "Blended recommendation feeds served from cache.",
	})
	strategyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lumeo_strategy_latency_seconds",
		Help:    "Latency of each recommendation strategy.",
		Buckets: prometheus.DefBuckets,
	}, []string{"strategy"})
)

// RecommendationService runs the three scoring strategies and blends their
// outputs into one ranked list. Strategies are read-only over the stores, so
// the blend fans them out concurrently; a failed strategy contributes an
// empty list and never aborts the blend.
type RecommendationService struct {
	posts    PostStore
	behavior *BehaviorService
	similar  *SimilarUserService
	redis    *redis.Client
	config   *config.RecommendConfig
	logger   *logrus.Logger

	now func() time.Time
}

func NewRecommendationService(
	posts PostStore,
	behavior *BehaviorService,
	similar *SimilarUserService,
	redisClient *redis.Client,
	cfg *config.RecommendConfig,
	logger *logrus.Logger,
) *RecommendationService {
	return &RecommendationService{
		posts:    posts,
		behavior: behavior,
		similar:  similar,
		redis:    redisClient,
		config:   cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// ContentBased scores every candidate post by how often its features appear
// among the posts the user liked, normalized by the candidate's feature
// count. The user's own posts and posts already liked or commented on are
// excluded; only strictly positive scores are kept.
func (s *RecommendationService) ContentBased(
	ctx context.Context,
	userID string,
	behavior *models.UserBehavior,
) []models.RecommendationScore {
	defer s.observeLatency("content_based")()

	posts, err := s.posts.AllPosts(ctx)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).
			Warn("Content-based strategy failed")
		return nil
	}

	postByID := make(map[string]models.Post, len(posts))
	for _, p := range posts {
		postByID[p.ID] = p
	}

	// Preference frequency over the features of everything the user liked.
	preferences := make(map[string]int)
	for _, likedID := range behavior.LikedPosts {
		p, ok := postByID[likedID]
		if !ok {
			continue
		}
		for _, feature := range ExtractFeatures(p.Content) {
			preferences[feature]++
		}
	}

	liked := behavior.LikedSet()
	commented := behavior.CommentedSet()

	var recommendations []models.RecommendationScore
	for _, p := range posts {
		if _, ok := liked[p.ID]; ok {
			continue
		}
		if _, ok := commented[p.ID]; ok {
			continue
		}
		if p.UserID == userID {
			continue
		}

		features := ExtractFeatures(p.Content)
		score := 0.0
		for _, feature := range features {
			score += float64(preferences[feature])
		}
		if len(features) > 0 {
			score /= float64(len(features))
		}

		if score > 0 {
			recommendations = append(recommendations, models.RecommendationScore{
				PostID: p.ID,
				Score:  score,
				Reason: reasonContentBased,
			})
		}
	}

	sortScores(recommendations)
	return recommendations
}

// Collaborative scores posts by how many of the similar users liked them,
// excluding anything the requesting user already liked.
func (s *RecommendationService) Collaborative(
	ctx context.Context,
	userID string,
	similarUsers []string,
) []models.RecommendationScore {
	defer s.observeLatency("collaborative")()

	ownBehavior := s.behavior.UserBehavior(ctx, userID)
	ownLiked := ownBehavior.LikedSet()

	counts := make(map[string]int)
	for _, similarID := range similarUsers {
		similarBehavior := s.behavior.UserBehavior(ctx, similarID)
		for _, postID := range similarBehavior.LikedPosts {
			if _, ok := ownLiked[postID]; ok {
				continue
			}
			counts[postID]++
		}
	}

	recommendations := make([]models.RecommendationScore, 0, len(counts))
	for postID, count := range counts {
		recommendations = append(recommendations, models.RecommendationScore{
			PostID: postID,
			Score:  float64(count),
			Reason: fmt.Sprintf(reasonCollaborative, count),
		})
	}

	sortScores(recommendations)
	return recommendations
}

// Trending scores the top posts by like count with
// (likes + 2×comments) × max(0, 1 − age/window). It deliberately ignores the
// requesting user: no personalization and no exclusion of own or seen posts,
// unlike the other two strategies.
func (s *RecommendationService) Trending(ctx context.Context) []models.RecommendationScore {
	defer s.observeLatency("trending")()

	posts, err := s.posts.TopPostsByLikes(ctx, s.config.TrendingPoolSize)
	if err != nil {
		s.logger.WithError(err).Warn("Trending strategy failed")
		return nil
	}

	now := s.now()
	window := float64(s.config.TrendingWindow)

	recommendations := make([]models.RecommendationScore, 0, len(posts))
	for _, p := range posts {
		engagement := float64(p.LikeCount() + 2*p.CommentCount())

		timestamp := p.Timestamp
		if timestamp.IsZero() {
			timestamp = now
		}
		recency := 1 - float64(now.Sub(timestamp))/window
		if recency < 0 {
			recency = 0
		}

		recommendations = append(recommendations, models.RecommendationScore{
			PostID: p.ID,
			Score:  engagement * recency,
			Reason: reasonTrending,
		})
	}

	sortScores(recommendations)
	return recommendations
}

// PersonalizedFeed blends the three strategies with the configured weights
// (content 0.4, collaborative 0.4, trending 0.2 by default). Scores for a
// post appearing in several strategies accumulate and their reasons join with
// " and ". The result is sorted by score descending, post id ascending on
// ties, and truncated to limit.
func (s *RecommendationService) PersonalizedFeed(
	ctx context.Context,
	userID string,
	limit int,
) ([]models.RecommendationScore, bool) {
	if limit <= 0 {
		limit = s.config.DefaultLimit
	}

	cacheKey := fmt.Sprintf("feed:%s:%d", userID, limit)
	if cached := s.cachedFeed(ctx, cacheKey); cached != nil {
		feedCacheHits.Inc()
		return cached, true
	}

	behavior := s.behavior.UserBehavior(ctx, userID)
	similarUsers := s.similar.SimilarUsers(ctx, userID, behavior)

	var (
		contentBased  []models.RecommendationScore
		collaborative []models.RecommendationScore
		trending      []models.RecommendationScore
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		contentBased = s.ContentBased(ctx, userID, behavior)
	}()
	go func() {
		defer wg.Done()
		collaborative = s.Collaborative(ctx, userID, similarUsers)
	}()
	go func() {
		defer wg.Done()
		trending = s.Trending(ctx)
	}()
	wg.Wait()

	merged := make(map[string]*models.RecommendationScore)
	accumulate(merged, contentBased, s.config.ContentWeight)
	accumulate(merged, collaborative, s.config.CollaborativeWeight)
	accumulate(merged, trending, s.config.TrendingWeight)

	final := make([]models.RecommendationScore, 0, len(merged))
	for _, rec := range merged {
		final = append(final, *rec)
	}
	sortScores(final)

	if len(final) > limit {
		final = final[:limit]
	}

	feedsGenerated.Inc()
	s.logBlend(userID, final)
	s.cacheFeed(ctx, cacheKey, final)

	return final, false
}

// InvalidateUserFeeds drops every cached feed for one user, called after a
// tracked interaction changes what the blend would produce.
func (s *RecommendationService) InvalidateUserFeeds(ctx context.Context, userID string) {
	s.invalidatePattern(ctx, fmt.Sprintf("feed:%s:*", userID))
}

// InvalidateAllFeeds drops every cached feed, called when the post stream
// reports a change.
func (s *RecommendationService) InvalidateAllFeeds(ctx context.Context) {
	s.invalidatePattern(ctx, "feed:*")
}

func accumulate(dst map[string]*models.RecommendationScore, recs []models.RecommendationScore, weight float64) {
	for _, rec := range recs {
		if existing, ok := dst[rec.PostID]; ok {
			existing.Score += rec.Score * weight
			existing.Reason = existing.Reason + " and " + rec.Reason
			continue
		}
		dst[rec.PostID] = &models.RecommendationScore{
			PostID: rec.PostID,
			Score:  rec.Score * weight,
			Reason: rec.Reason,
		}
	}
}

// sortScores orders by score descending with post id ascending as the
// deterministic tie-break.
func sortScores(recs []models.RecommendationScore) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].PostID < recs[j].PostID
	})
}

func (s *RecommendationService) observeLatency(strategy string) func() {
	start := time.Now()
	return func() {
		strategyLatency.WithLabelValues(strategy).Observe(time.Since(start).Seconds())
	}
}

func (s *RecommendationService) logBlend(userID string, final []models.RecommendationScore) {
	if len(final) == 0 {
		s.logger.WithField("user_id", userID).Debug("Blend produced no recommendations")
		return
	}
	scores := make([]float64, len(final))
	for i, rec := range final {
		scores[i] = rec.Score
	}
	s.logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"count":      len(final),
		"max_score":  floats.Max(scores),
		"mean_score": stat.Mean(scores, nil),
	}).Debug("Blend completed")
}

// Cache operations

func (s *RecommendationService) cachedFeed(ctx context.Context, key string) []models.RecommendationScore {
	if s.redis == nil {
		return nil
	}
	cached := s.redis.Get(ctx, key).Val()
	if cached == "" {
		return nil
	}
	var recs []models.RecommendationScore
	if err := json.Unmarshal([]byte(cached), &recs); err != nil {
		return nil
	}
	return recs
}

func (s *RecommendationService) cacheFeed(ctx context.Context, key string, recs []models.RecommendationScore) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, s.config.CacheTTL).Err(); err != nil {
		s.logger.WithError(err).Warn("Failed to cache feed")
	}
}

func (s *RecommendationService) invalidatePattern(ctx context.Context, pattern string) {
	if s.redis == nil {
		return
	}
	keys, err := s.redis.Keys(ctx, pattern).Result()
	if err != nil {
		s.logger.WithError(err).Warn("Failed to list feed cache keys")
		return
	}
	if len(keys) > 0 {
		if err := s.redis.Del(ctx, keys...).Err(); err != nil {
			s.logger.WithError(err).Warn("Failed to invalidate feed cache")
		}
	}
}
