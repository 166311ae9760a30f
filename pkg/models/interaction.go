package models

import (
	"time"

	"github.com/google/uuid"
)

// InteractionEvent is the message published to the interaction topic whenever
// a user acts on a post. Other app surfaces publish the same shape; the
// consumer applies them through the tracking path.
type InteractionEvent struct {
	EventID   uuid.UUID `json:"event_id"`
	UserID    string    `json:"user_id"`
	PostID    string    `json:"post_id"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}
