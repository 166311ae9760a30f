package store

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// PostObserver is notified with the id of a post that changed.
type PostObserver func(postID string)

// PostStream is the push boundary over the posts collection. The scoring core
// stays pull-based; observers register here for live updates (the service
// itself uses one to invalidate blended-feed caches).
type PostStream struct {
	col    *mongo.Collection
	logger *logrus.Logger

	mu        sync.RWMutex
	observers []PostObserver
}

func NewPostStream(db *mongo.Database, logger *logrus.Logger) *PostStream {
	return &PostStream{col: db.Collection("posts"), logger: logger}
}

// Register adds an observer. Observers run on the stream goroutine and must
// not block.
func (s *PostStream) Register(fn PostObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Run watches the posts collection until ctx is canceled. Change streams
// require a replica set; when unavailable this logs and returns, leaving the
// service fully functional in pull-only mode.
func (s *PostStream) Run(ctx context.Context) {
	stream, err := s.col.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		s.logger.WithError(err).Warn("Post change stream unavailable, live updates disabled")
		return
	}
	defer stream.Close(ctx)

	s.logger.Info("Post change stream started")

	for stream.Next(ctx) {
		var event struct {
			DocumentKey struct {
				ID string `bson:"_id"`
			} `bson:"documentKey"`
		}
		if err := stream.Decode(&event); err != nil {
			s.logger.WithError(err).Warn("Failed to decode change stream event")
			continue
		}
		s.notify(event.DocumentKey.ID)
	}

	if err := stream.Err(); err != nil && ctx.Err() == nil {
		s.logger.WithError(err).Warn("Post change stream ended")
	}
}

func (s *PostStream) notify(postID string) {
	s.mu.RLock()
	observers := s.observers
	s.mu.RUnlock()

	for _, fn := range observers {
		fn(postID)
	}
}
