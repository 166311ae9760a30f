package services

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/lumeo-app/lumeo/internal/config"
	"github.com/lumeo-app/lumeo/pkg/models"
)

// SimilarUserService finds users whose behavior overlaps the requesting
// user's. Every candidate requires a full behavior recomputation, so this is
// O(users²) in the worst case across the system; acceptable only at small
// scale, by the same tradeoff the rest of the pipeline makes.
type SimilarUserService struct {
	users    UserStore
	behavior *BehaviorService
	config   *config.RecommendConfig
	logger   *logrus.Logger
}

func NewSimilarUserService(
	users UserStore,
	behavior *BehaviorService,
	cfg *config.RecommendConfig,
	logger *logrus.Logger,
) *SimilarUserService {
	return &SimilarUserService{
		users:    users,
		behavior: behavior,
		config:   cfg,
		logger:   logger,
	}
}

// SimilarUsers ranks every other user by
// 0.7 × |liked-post overlap| + 0.3 × |followed-user overlap|
// (weights configurable), drops non-positive similarities, and returns at
// most SimilarUserLimit ids, most similar first. Ties order by user id
// ascending so results are stable across store iteration orders.
func (s *SimilarUserService) SimilarUsers(
	ctx context.Context,
	userID string,
	behavior *models.UserBehavior,
) []string {
	ids, err := s.users.AllUserIDs(ctx)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).
			Warn("Failed to list users for similarity scan")
		return nil
	}

	likedSet := behavior.LikedSet()
	followedSet := behavior.FollowedSet()

	type candidate struct {
		userID     string
		similarity float64
	}
	var candidates []candidate

	for _, other := range ids {
		if other == userID {
			continue
		}

		otherBehavior := s.behavior.UserBehavior(ctx, other)

		likedOverlap := countMembers(likedSet, otherBehavior.LikedPosts)
		followedOverlap := countMembers(followedSet, otherBehavior.FollowedUsers)

		similarity := s.config.LikedOverlapWeight*float64(likedOverlap) +
			s.config.FollowOverlapWeight*float64(followedOverlap)
		if similarity > 0 {
			candidates = append(candidates, candidate{userID: other, similarity: similarity})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].similarity != candidates[j].similarity {
			return candidates[i].similarity > candidates[j].similarity
		}
		return candidates[i].userID < candidates[j].userID
	})

	limit := s.config.SimilarUserLimit
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	result := make([]string, len(candidates))
	for i, c := range candidates {
		result[i] = c.userID
	}
	return result
}

func countMembers(set map[string]struct{}, ids []string) int {
	n := 0
	for _, id := range ids {
		if _, ok := set[id]; ok {
			n++
		}
	}
	return n
}
