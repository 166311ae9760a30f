package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lumeo-app/lumeo/pkg/models"
)

// BehaviorService recomputes per-user behavior profiles from source of truth
// on every call. Nothing is cached here; callers that need caching layer it
// on top.
type BehaviorService struct {
	posts   PostStore
	follows FollowStore
	logger  *logrus.Logger
}

func NewBehaviorService(posts PostStore, follows FollowStore, logger *logrus.Logger) *BehaviorService {
	return &BehaviorService{
		posts:   posts,
		follows: follows,
		logger:  logger,
	}
}

// UserBehavior scans the full post collection for likes by userID and reads
// the user's follow list. Any read error yields an all-empty profile with the
// user id set; callers never see the failure. CommentedPosts and SavedPosts
// are not yet aggregated from storage and stay empty.
//
// The full-collection scan is O(total posts) per call. Fine at current scale;
// integrators should know it degrades as the post count grows.
func (s *BehaviorService) UserBehavior(ctx context.Context, userID string) *models.UserBehavior {
	empty := func() *models.UserBehavior {
		return &models.UserBehavior{UserID: userID, LastActivity: time.Now()}
	}

	posts, err := s.posts.AllPosts(ctx)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).
			Warn("Failed to scan posts for behavior, returning empty profile")
		return empty()
	}

	var liked []string
	for _, p := range posts {
		if p.LikedBy(userID) {
			liked = append(liked, p.ID)
		}
	}

	following, err := s.follows.Following(ctx, userID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).
			Warn("Failed to read follow list, returning empty profile")
		return empty()
	}

	return &models.UserBehavior{
		UserID:        userID,
		LikedPosts:    liked,
		FollowedUsers: following,
		LastActivity:  time.Now(),
	}
}
