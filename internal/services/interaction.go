package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lumeo-app/lumeo/pkg/models"
)

// InteractionService records user interactions into the behavior store and
// fans them out on the message bus. Failures are logged and swallowed: the
// caller's action (the like, the comment) already succeeded in the app, so
// tracking must never surface an error.
type InteractionService struct {
	behavior       BehaviorStore
	publisher      InteractionPublisher
	recommendation *RecommendationService
	logger         *logrus.Logger
}

func NewInteractionService(
	behavior BehaviorStore,
	publisher InteractionPublisher,
	recommendation *RecommendationService,
	logger *logrus.Logger,
) *InteractionService {
	return &InteractionService{
		behavior:       behavior,
		publisher:      publisher,
		recommendation: recommendation,
		logger:         logger,
	}
}

// TrackInteraction appends the interaction to the user's behavior document
// (set-union, so replays are idempotent), invalidates the user's cached
// feeds, and publishes the event for other consumers.
func (s *InteractionService) TrackInteraction(ctx context.Context, userID, postID, kind string) {
	if !models.ValidInteractionKind(kind) {
		s.logger.WithFields(logrus.Fields{
			"user_id": userID,
			"post_id": postID,
			"kind":    kind,
		}).Warn("Dropping interaction with unknown kind")
		return
	}

	if !s.apply(ctx, userID, postID, kind) {
		return
	}

	if s.publisher != nil {
		event := models.InteractionEvent{
			EventID:   uuid.New(),
			UserID:    userID,
			PostID:    postID,
			Kind:      kind,
			Timestamp: time.Now(),
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.WithError(err).Warn("Failed to publish interaction event")
		}
	}
}

// ApplyEvent records an interaction that arrived over the message bus. Same
// write path as TrackInteraction, without re-publishing.
func (s *InteractionService) ApplyEvent(ctx context.Context, event models.InteractionEvent) {
	if !models.ValidInteractionKind(event.Kind) {
		s.logger.WithField("kind", event.Kind).Warn("Dropping event with unknown kind")
		return
	}
	s.apply(ctx, event.UserID, event.PostID, event.Kind)
}

func (s *InteractionService) apply(ctx context.Context, userID, postID, kind string) bool {
	if err := s.behavior.AddInteraction(ctx, userID, postID, kind); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"user_id": userID,
			"post_id": postID,
			"kind":    kind,
		}).Warn("Failed to record interaction")
		return false
	}

	if s.recommendation != nil {
		s.recommendation.InvalidateUserFeeds(ctx, userID)
	}
	return true
}
