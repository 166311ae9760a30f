package store

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lumeo-app/lumeo/pkg/models"
)

// PostRepository reads the posts collection the app writes to.
type PostRepository struct {
	col    *mongo.Collection
	logger *logrus.Logger
}

func NewPostRepository(db *mongo.Database, logger *logrus.Logger) *PostRepository {
	return &PostRepository{col: db.Collection("posts"), logger: logger}
}

// AllPosts returns every post. Documents that fail to decode (missing fields,
// a non-array likes value) are skipped rather than failing the scan.
func (r *PostRepository) AllPosts(ctx context.Context) ([]models.Post, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	for cursor.Next(ctx) {
		var p models.Post
		if err := cursor.Decode(&p); err != nil {
			r.logger.WithError(err).Warn("Skipping malformed post document")
			continue
		}
		posts = append(posts, p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("post cursor failed: %w", err)
	}
	return posts, nil
}

// PostByID fetches a single post document.
func (r *PostRepository) PostByID(ctx context.Context, postID string) (*models.Post, error) {
	var p models.Post
	if err := r.col.FindOne(ctx, bson.M{"_id": postID}).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to fetch post %s: %w", postID, err)
	}
	return &p, nil
}

// TopPostsByLikes returns up to limit posts ordered by like count descending,
// the candidate pool the trending strategy scores.
func (r *PostRepository) TopPostsByLikes(ctx context.Context, limit int) ([]models.Post, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$addFields", Value: bson.M{
			"likeCount": bson.M{"$size": bson.M{"$ifNull": bson.A{"$likes", bson.A{}}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "likeCount", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to query top posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	for cursor.Next(ctx) {
		var p models.Post
		if err := cursor.Decode(&p); err != nil {
			r.logger.WithError(err).Warn("Skipping malformed post document")
			continue
		}
		posts = append(posts, p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("top posts cursor failed: %w", err)
	}
	return posts, nil
}

// AllCaptions returns the caption text of every post, the corpus the caption
// chain model is built from.
func (r *PostRepository) AllCaptions(ctx context.Context) ([]string, error) {
	opts := mongoFindProjection(bson.M{"content": 1})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query captions: %w", err)
	}
	defer cursor.Close(ctx)

	var captions []string
	for cursor.Next(ctx) {
		var doc struct {
			Content string `bson:"content"`
		}
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		if doc.Content != "" {
			captions = append(captions, doc.Content)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("caption cursor failed: %w", err)
	}
	return captions, nil
}
