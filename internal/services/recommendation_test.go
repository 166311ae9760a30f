package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumeo-app/lumeo/pkg/models"
)

func newTestRecommendationService(posts *fakePostStore, users *fakeUserStore, follows *fakeFollowStore) *RecommendationService {
	logger := testLogger()
	cfg := testRecommendConfig()
	behavior := NewBehaviorService(posts, follows, logger)
	similar := NewSimilarUserService(users, behavior, cfg, logger)
	return NewRecommendationService(posts, behavior, similar, nil, cfg, logger)
}

func TestRecommendationService_ContentBased(t *testing.T) {
	now := time.Now()
	posts := &fakePostStore{posts: []models.Post{
		{ID: "p1", UserID: "bob", Content: "photography nature", Likes: []string{"alice"}, Timestamp: now},
		{ID: "p2", UserID: "bob", Content: "photography travel", Timestamp: now},
		{ID: "p3", UserID: "alice", Content: "photography nature", Timestamp: now},
		{ID: "p4", UserID: "carol", Content: "the cat sat", Timestamp: now},
	}}
	svc := newTestRecommendationService(posts, &fakeUserStore{}, &fakeFollowStore{})

	behavior := &models.UserBehavior{UserID: "alice", LikedPosts: []string{"p1"}}
	recs := svc.ContentBased(context.Background(), "alice", behavior)

	// p1 is already liked, p3 is alice's own post, p4 has no features in
	// common. Only p2 qualifies: (1 + 0) / 2 features.
	require.Len(t, recs, 1)
	assert.Equal(t, "p2", recs[0].PostID)
	assert.InDelta(t, 0.5, recs[0].Score, 1e-9)
	assert.Equal(t, "Based on your interests", recs[0].Reason)
}

func TestRecommendationService_Collaborative(t *testing.T) {
	posts := &fakePostStore{posts: []models.Post{
		{ID: "p1", UserID: "dave", Likes: []string{"alice", "bob", "carol"}},
		{ID: "p2", UserID: "dave", Likes: []string{"bob", "carol"}},
		{ID: "p3", UserID: "dave", Likes: []string{"carol"}},
	}}
	svc := newTestRecommendationService(posts, &fakeUserStore{}, &fakeFollowStore{})

	recs := svc.Collaborative(context.Background(), "alice", []string{"bob", "carol"})

	// p1 is excluded as already liked. p2 was liked by both similar users,
	// p3 by one.
	require.Len(t, recs, 2)
	assert.Equal(t, "p2", recs[0].PostID)
	assert.Equal(t, 2.0, recs[0].Score)
	assert.Equal(t, "Liked by 2 users similar to you", recs[0].Reason)
	assert.Equal(t, "p3", recs[1].PostID)
	assert.Equal(t, 1.0, recs[1].Score)
	assert.Equal(t, "Liked by 1 users similar to you", recs[1].Reason)
}

func TestRecommendationService_Trending(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	posts := &fakePostStore{posts: []models.Post{
		{ID: "fresh", Likes: []string{"a", "b"}, Comments: []models.Comment{{UserID: "c", Text: "nice"}}, Timestamp: now},
		{ID: "halfway", Likes: []string{"a", "b", "c", "d"}, Timestamp: now.Add(-84 * time.Hour)},
		{ID: "expired", Likes: []string{"a", "b", "c", "d", "e", "f"}, Timestamp: now.Add(-8 * 24 * time.Hour)},
	}}
	svc := newTestRecommendationService(posts, &fakeUserStore{}, &fakeFollowStore{})
	svc.now = func() time.Time { return now }

	recs := svc.Trending(context.Background())
	require.Len(t, recs, 3)

	byID := make(map[string]models.RecommendationScore)
	for _, rec := range recs {
		byID[rec.PostID] = rec
	}

	// fresh: (2 likes + 2×1 comment) × 1.0
	assert.InDelta(t, 4.0, byID["fresh"].Score, 1e-9)
	// halfway: 4 likes × (1 − 84h/168h)
	assert.InDelta(t, 2.0, byID["halfway"].Score, 1e-9)
	// expired: recency clamps at zero past the window
	assert.Equal(t, 0.0, byID["expired"].Score)

	assert.Equal(t, "Trending now", recs[0].Reason)
	assert.Equal(t, "fresh", recs[0].PostID)
}

func TestRecommendationService_PersonalizedFeed(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	posts := &fakePostStore{posts: []models.Post{
		{ID: "p1", UserID: "bob", Content: "photography nature", Likes: []string{"alice", "carol"}, Timestamp: now},
		{ID: "p2", UserID: "bob", Content: "photography travel", Likes: []string{"carol"}, Timestamp: now},
		{ID: "p3", UserID: "carol", Content: "the cat sat", Timestamp: now},
	}}
	users := &fakeUserStore{ids: []string{"alice", "bob", "carol"}}
	svc := newTestRecommendationService(posts, users, &fakeFollowStore{})
	svc.now = func() time.Time { return now }

	feed, cacheHit := svc.PersonalizedFeed(context.Background(), "alice", 0)

	assert.False(t, cacheHit)
	require.Len(t, feed, 3)

	// p2 scores in all three strategies:
	// content 0.5×0.4 + collaborative 1×0.4 + trending 1×0.2 = 0.8.
	assert.Equal(t, "p2", feed[0].PostID)
	assert.InDelta(t, 0.8, feed[0].Score, 1e-9)
	assert.Equal(t,
		"Based on your interests and Liked by 1 users similar to you and Trending now",
		feed[0].Reason)

	// p1 only trends: 2 likes × 0.2.
	assert.Equal(t, "p1", feed[1].PostID)
	assert.InDelta(t, 0.4, feed[1].Score, 1e-9)
	assert.Equal(t, "Trending now", feed[1].Reason)

	// p3 trends at zero engagement but still appears.
	assert.Equal(t, "p3", feed[2].PostID)
	assert.Equal(t, 0.0, feed[2].Score)
}

func TestRecommendationService_PersonalizedFeedRespectsLimit(t *testing.T) {
	now := time.Now()
	posts := &fakePostStore{posts: []models.Post{
		{ID: "p1", Likes: []string{"a", "b", "c"}, Timestamp: now},
		{ID: "p2", Likes: []string{"a", "b"}, Timestamp: now},
		{ID: "p3", Likes: []string{"a"}, Timestamp: now},
	}}
	svc := newTestRecommendationService(posts, &fakeUserStore{}, &fakeFollowStore{})
	svc.now = func() time.Time { return now }

	feed, _ := svc.PersonalizedFeed(context.Background(), "nobody", 2)
	require.Len(t, feed, 2)
	assert.Equal(t, "p1", feed[0].PostID)
	assert.Equal(t, "p2", feed[1].PostID)
}

func TestSortScores_TieBreaksByPostID(t *testing.T) {
	recs := []models.RecommendationScore{
		{PostID: "zebra", Score: 1.0},
		{PostID: "apple", Score: 1.0},
		{PostID: "mango", Score: 2.0},
	}
	sortScores(recs)

	assert.Equal(t, "mango", recs[0].PostID)
	assert.Equal(t, "apple", recs[1].PostID)
	assert.Equal(t, "zebra", recs[2].PostID)
}
