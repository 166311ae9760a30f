package models

import "time"

// RecommendationScore is one candidate post with its blended (or per-strategy)
// score. Scores are non-negative; Reason accumulates the contributing
// strategies' reasons joined with " and ".
type RecommendationScore struct {
	PostID string  `json:"post_id"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

type FeedResponse struct {
	UserID          string                `json:"user_id"`
	Recommendations []RecommendationScore `json:"recommendations"`
	GeneratedAt     time.Time             `json:"generated_at"`
	CacheHit        bool                  `json:"cache_hit"`
}

type InteractionRequest struct {
	PostID string `json:"post_id" validate:"required"`
	Kind   string `json:"kind" validate:"required,oneof=like comment save view"`
}

type CaptionSuggestionResponse struct {
	Seed       string `json:"seed"`
	Suggestion string `json:"suggestion"`
}
