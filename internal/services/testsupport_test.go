package services

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lumeo-app/lumeo/internal/config"
	"github.com/lumeo-app/lumeo/pkg/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testRecommendConfig() *config.RecommendConfig {
	return &config.RecommendConfig{
		ContentWeight:       0.4,
		CollaborativeWeight: 0.4,
		TrendingWeight:      0.2,
		DefaultLimit:        20,
		TrendingPoolSize:    50,
		TrendingWindow:      168 * time.Hour,
		SimilarUserLimit:    10,
		LikedOverlapWeight:  0.7,
		FollowOverlapWeight: 0.3,
	}
}

type fakePostStore struct {
	posts    []models.Post
	captions []string

	postsErr    error
	captionsErr error
}

func (f *fakePostStore) AllPosts(ctx context.Context) ([]models.Post, error) {
	if f.postsErr != nil {
		return nil, f.postsErr
	}
	return f.posts, nil
}

func (f *fakePostStore) TopPostsByLikes(ctx context.Context, limit int) ([]models.Post, error) {
	if f.postsErr != nil {
		return nil, f.postsErr
	}
	sorted := append([]models.Post(nil), f.posts...)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j].LikeCount() > sorted[i].LikeCount() {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (f *fakePostStore) AllCaptions(ctx context.Context) ([]string, error) {
	if f.captionsErr != nil {
		return nil, f.captionsErr
	}
	return f.captions, nil
}

type fakeUserStore struct {
	ids []string
	err error
}

func (f *fakeUserStore) AllUserIDs(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ids, nil
}

type fakeFollowStore struct {
	following map[string][]string
	err       error
}

func (f *fakeFollowStore) Following(ctx context.Context, userID string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.following[userID], nil
}

// fakeBehaviorStore mirrors the set-union write semantics of the real store.
type fakeBehaviorStore struct {
	mu    sync.Mutex
	liked map[string][]string
	calls int
	err   error
}

func newFakeBehaviorStore() *fakeBehaviorStore {
	return &fakeBehaviorStore{liked: make(map[string][]string)}
}

func (f *fakeBehaviorStore) AddInteraction(ctx context.Context, userID, postID, kind string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	for _, id := range f.liked[userID] {
		if id == postID {
			return nil
		}
	}
	f.liked[userID] = append(f.liked[userID], postID)
	return nil
}

type fakePublisher struct {
	events []models.InteractionEvent
	err    error
}

func (f *fakePublisher) Publish(ctx context.Context, event models.InteractionEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}
