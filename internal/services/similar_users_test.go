package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumeo-app/lumeo/pkg/models"
)

func TestSimilarUserService_SimilarUsers(t *testing.T) {
	// alice liked p1 and p2 and follows dave.
	// bob shares both likes, carol shares one like plus the follow,
	// eve shares nothing.
	posts := &fakePostStore{posts: []models.Post{
		{ID: "p1", UserID: "dave", Likes: []string{"alice", "bob", "carol"}},
		{ID: "p2", UserID: "dave", Likes: []string{"alice", "bob"}},
		{ID: "p3", UserID: "dave", Likes: []string{"eve"}},
	}}
	follows := &fakeFollowStore{following: map[string][]string{
		"alice": {"dave"},
		"carol": {"dave"},
	}}
	users := &fakeUserStore{ids: []string{"alice", "bob", "carol", "eve"}}

	cfg := testRecommendConfig()
	behaviorSvc := NewBehaviorService(posts, follows, testLogger())
	svc := NewSimilarUserService(users, behaviorSvc, cfg, testLogger())

	behavior := behaviorSvc.UserBehavior(context.Background(), "alice")

	t.Run("ranks by weighted overlap and drops zero similarity", func(t *testing.T) {
		similar := svc.SimilarUsers(context.Background(), "alice", behavior)

		// bob: 0.7*2 = 1.4; carol: 0.7*1 + 0.3*1 = 1.0; eve: 0 dropped.
		assert.Equal(t, []string{"bob", "carol"}, similar)
	})

	t.Run("excludes the requesting user", func(t *testing.T) {
		similar := svc.SimilarUsers(context.Background(), "alice", behavior)
		assert.NotContains(t, similar, "alice")
	})

	t.Run("caps the result at the configured limit", func(t *testing.T) {
		var manyPosts []models.Post
		ids := []string{"alice"}
		for i := 0; i < 15; i++ {
			other := fmt.Sprintf("user%02d", i)
			ids = append(ids, other)
			manyPosts = append(manyPosts, models.Post{
				ID:     fmt.Sprintf("post%02d", i),
				UserID: "someone",
				Likes:  []string{"alice", other},
			})
		}

		crowdBehavior := NewBehaviorService(&fakePostStore{posts: manyPosts}, &fakeFollowStore{}, testLogger())
		crowd := NewSimilarUserService(&fakeUserStore{ids: ids}, crowdBehavior, cfg, testLogger())

		behavior := crowdBehavior.UserBehavior(context.Background(), "alice")
		similar := crowd.SimilarUsers(context.Background(), "alice", behavior)

		assert.Len(t, similar, cfg.SimilarUserLimit)
		// Every candidate scores 0.7; ties resolve by user id ascending.
		assert.Equal(t, "user00", similar[0])
		assert.Equal(t, "user09", similar[len(similar)-1])
	})

	t.Run("user listing failure yields no similar users", func(t *testing.T) {
		broken := NewSimilarUserService(&fakeUserStore{err: errors.New("timeout")}, behaviorSvc, cfg, testLogger())
		assert.Nil(t, broken.SimilarUsers(context.Background(), "alice", behavior))
	})
}
