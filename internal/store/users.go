package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lumeo-app/lumeo/pkg/models"
)

// UserRepository reads the users collection owned by the identity provider
// sync job.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

// AllUserIDs lists every known user id. The similar-user scan iterates this.
func (r *UserRepository) AllUserIDs(ctx context.Context) ([]string, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, mongoFindProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		ids = append(ids, doc.ID)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("user cursor failed: %w", err)
	}
	return ids, nil
}

// UserByID fetches one user profile.
func (r *UserRepository) UserByID(ctx context.Context, uid string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": uid}).Decode(&u); err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", uid, err)
	}
	return &u, nil
}

func mongoFindProjection(projection bson.M) *options.FindOptions {
	return options.Find().SetProjection(projection)
}
