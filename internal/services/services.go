package services

import (
	"github.com/sirupsen/logrus"

	"github.com/lumeo-app/lumeo/internal/config"
	"github.com/lumeo-app/lumeo/internal/database"
	"github.com/lumeo-app/lumeo/internal/messaging"
	"github.com/lumeo-app/lumeo/internal/store"
)

type Services struct {
	Auth           *AuthService
	Health         *HealthService
	Behavior       *BehaviorService
	SimilarUsers   *SimilarUserService
	Recommendation *RecommendationService
	Interaction    *InteractionService
	Captions       *CaptionService
	Profile        *ProfileService
}

func New(cfg *config.Config, logger *logrus.Logger, db *database.Database, bus *messaging.InteractionBus) *Services {
	posts := store.NewPostRepository(db.Mongo, logger)
	users := store.NewUserRepository(db.Mongo)
	behaviorStore := store.NewBehaviorRepository(db.Mongo)
	followGraph := store.NewFollowGraph(db.Neo4j)

	behavior := NewBehaviorService(posts, followGraph, logger)
	similarUsers := NewSimilarUserService(users, behavior, &cfg.Recommend, logger)
	recommendation := NewRecommendationService(posts, behavior, similarUsers, db.Redis, &cfg.Recommend, logger)

	var publisher InteractionPublisher
	if bus != nil {
		publisher = bus
	}
	interaction := NewInteractionService(behaviorStore, publisher, recommendation, logger)

	return &Services{
		Auth:           NewAuthService(cfg, logger),
		Health:         NewHealthService(db, logger),
		Behavior:       behavior,
		SimilarUsers:   similarUsers,
		Recommendation: recommendation,
		Interaction:    interaction,
		Captions:       NewCaptionService(posts, &cfg.Captions, logger),
		Profile:        NewProfileService(users, posts, behaviorStore, followGraph, logger),
	}
}
