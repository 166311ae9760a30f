package models

import "time"

// Interaction kinds accepted by the tracking path.
const (
	InteractionLike    = "like"
	InteractionComment = "comment"
	InteractionSave    = "save"
	InteractionView    = "view"
)

// ValidInteractionKind reports whether kind is one of the tracked kinds.
func ValidInteractionKind(kind string) bool {
	switch kind {
	case InteractionLike, InteractionComment, InteractionSave, InteractionView:
		return true
	}
	return false
}

// UserBehavior is the derived per-user profile, recomputed on demand from the
// posts collection and the follow graph. It is never persisted by this
// service; BehaviorDocument is the stored record the tracking path appends to.
type UserBehavior struct {
	UserID         string    `json:"user_id"`
	LikedPosts     []string  `json:"liked_posts"`
	CommentedPosts []string  `json:"commented_posts"`
	SavedPosts     []string  `json:"saved_posts"`
	FollowedUsers  []string  `json:"followed_users"`
	LastActivity   time.Time `json:"last_activity"`
}

// LikedSet returns the liked post IDs as a membership set.
func (b *UserBehavior) LikedSet() map[string]struct{} {
	return toSet(b.LikedPosts)
}

// CommentedSet returns the commented post IDs as a membership set.
func (b *UserBehavior) CommentedSet() map[string]struct{} {
	return toSet(b.CommentedPosts)
}

// FollowedSet returns the followed user IDs as a membership set.
func (b *UserBehavior) FollowedSet() map[string]struct{} {
	return toSet(b.FollowedUsers)
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// BehaviorDocument is the per-user record in the userBehavior collection.
// Array fields are maintained with set-union updates so replayed interactions
// never duplicate.
type BehaviorDocument struct {
	UserID         string    `bson:"_id" json:"user_id"`
	LikedPosts     []string  `bson:"likedPosts" json:"liked_posts"`
	CommentedPosts []string  `bson:"commentedPosts" json:"commented_posts"`
	SavedPosts     []string  `bson:"savedPosts" json:"saved_posts"`
	ViewedPosts    []string  `bson:"viewedPosts" json:"viewed_posts"`
	LastActivity   time.Time `bson:"lastActivity" json:"last_activity"`
}
