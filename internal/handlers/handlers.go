package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/lumeo-app/lumeo/internal/services"
)

type Handlers struct {
	Health         *HealthHandler
	Recommendation *RecommendationHandler
	Interaction    *InteractionHandler
	Caption        *CaptionHandler
	User           *UserHandler
	Post           *PostHandler
}

func New(logger *logrus.Logger, svc *services.Services) *Handlers {
	return &Handlers{
		Health:         NewHealthHandler(svc.Health, logger),
		Recommendation: NewRecommendationHandler(svc.Recommendation, logger),
		Interaction:    NewInteractionHandler(svc.Interaction, logger),
		Caption:        NewCaptionHandler(svc.Captions, logger),
		User:           NewUserHandler(svc.Profile, logger),
		Post:           NewPostHandler(svc.Profile, logger),
	}
}
