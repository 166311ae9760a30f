package services

import (
	"context"

	"github.com/lumeo-app/lumeo/pkg/models"
)

// PostStore is the read surface over the posts collection.
type PostStore interface {
	AllPosts(ctx context.Context) ([]models.Post, error)
	TopPostsByLikes(ctx context.Context, limit int) ([]models.Post, error)
	AllCaptions(ctx context.Context) ([]string, error)
}

// UserStore lists the known users.
type UserStore interface {
	AllUserIDs(ctx context.Context) ([]string, error)
}

// FollowStore reads the follow graph.
type FollowStore interface {
	Following(ctx context.Context, userID string) ([]string, error)
}

// BehaviorStore persists tracked interactions with set-union semantics.
type BehaviorStore interface {
	AddInteraction(ctx context.Context, userID, postID, kind string) error
}

// InteractionPublisher emits interaction events to the message bus.
type InteractionPublisher interface {
	Publish(ctx context.Context, event models.InteractionEvent) error
}

// Single-document read surfaces used by the profile service.

type UserReader interface {
	UserByID(ctx context.Context, uid string) (*models.User, error)
}

type PostReader interface {
	PostByID(ctx context.Context, postID string) (*models.Post, error)
}

type BehaviorReader interface {
	BehaviorByID(ctx context.Context, userID string) (*models.BehaviorDocument, error)
}

// FollowReader reads both directions of the follow relation.
type FollowReader interface {
	Following(ctx context.Context, userID string) ([]string, error)
	Followers(ctx context.Context, userID string) ([]string, error)
}
