package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lumeo-app/lumeo/pkg/models"
)

// ErrNotFound marks a lookup whose subject does not exist.
var ErrNotFound = errors.New("not found")

// ProfileService serves the read surface around users and posts: profile
// lookups, follow lists, and a user's stored interaction history.
type ProfileService struct {
	users    UserReader
	posts    PostReader
	behavior BehaviorReader
	follows  FollowReader
	logger   *logrus.Logger
}

func NewProfileService(
	users UserReader,
	posts PostReader,
	behavior BehaviorReader,
	follows FollowReader,
	logger *logrus.Logger,
) *ProfileService {
	return &ProfileService{
		users:    users,
		posts:    posts,
		behavior: behavior,
		follows:  follows,
		logger:   logger,
	}
}

func (s *ProfileService) User(ctx context.Context, uid string) (*models.User, error) {
	user, err := s.users.UserByID(ctx, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %s: %w", uid, ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *ProfileService) Post(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.posts.PostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("post %s: %w", postID, ErrNotFound)
		}
		return nil, err
	}
	return post, nil
}

// Interactions returns the stored behavior document for a user. A user who
// never interacted has no document yet; that reads as an empty history, not
// an error.
func (s *ProfileService) Interactions(ctx context.Context, userID string) (*models.BehaviorDocument, error) {
	doc, err := s.behavior.BehaviorByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.BehaviorDocument{UserID: userID}, nil
		}
		return nil, err
	}
	return doc, nil
}

func (s *ProfileService) Followers(ctx context.Context, uid string) ([]string, error) {
	return s.follows.Followers(ctx, uid)
}

func (s *ProfileService) Following(ctx context.Context, uid string) ([]string, error) {
	return s.follows.Following(ctx, uid)
}
