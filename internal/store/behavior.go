package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lumeo-app/lumeo/pkg/models"
)

// BehaviorRepository maintains the per-user behavior documents written by the
// interaction tracking path. Array fields are updated with $addToSet so the
// same interaction recorded twice leaves a single entry.
type BehaviorRepository struct {
	col *mongo.Collection
}

func NewBehaviorRepository(db *mongo.Database) *BehaviorRepository {
	return &BehaviorRepository{col: db.Collection("userBehavior")}
}

func fieldForKind(kind string) (string, error) {
	switch kind {
	case models.InteractionLike:
		return "likedPosts", nil
	case models.InteractionComment:
		return "commentedPosts", nil
	case models.InteractionSave:
		return "savedPosts", nil
	case models.InteractionView:
		return "viewedPosts", nil
	}
	return "", fmt.Errorf("unknown interaction kind %q", kind)
}

// AddInteraction appends postID to the array for kind on the user's behavior
// document, creating the document when absent. Concurrent updates to the same
// document are last-write-wins at the store's granularity; the set-union
// update keeps each array duplicate-free regardless.
func (r *BehaviorRepository) AddInteraction(ctx context.Context, userID, postID, kind string) error {
	field, err := fieldForKind(kind)
	if err != nil {
		return err
	}

	update := bson.M{
		"$addToSet": bson.M{field: postID},
		"$set":      bson.M{"lastActivity": time.Now()},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := r.col.UpdateByID(ctx, userID, update, opts); err != nil {
		return fmt.Errorf("failed to record %s interaction: %w", kind, err)
	}
	return nil
}

// BehaviorByID fetches the stored behavior document for a user.
func (r *BehaviorRepository) BehaviorByID(ctx context.Context, userID string) (*models.BehaviorDocument, error) {
	var doc models.BehaviorDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to fetch behavior for %s: %w", userID, err)
	}
	return &doc, nil
}
