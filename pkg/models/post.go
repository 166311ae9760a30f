package models

import "time"

// Post is the document shape the app writes to the posts collection.
// Likes holds the user IDs that liked the post; Comments are embedded.
type Post struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"userId" json:"user_id"`
	Content   string    `bson:"content" json:"content"`
	ImageURL  string    `bson:"imageUrl,omitempty" json:"image_url,omitempty"`
	Likes     []string  `bson:"likes" json:"likes"`
	Comments  []Comment `bson:"comments" json:"comments"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

type Comment struct {
	UserID    string    `bson:"userId" json:"user_id"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}

func (p *Post) LikeCount() int {
	return len(p.Likes)
}

func (p *Post) CommentCount() int {
	return len(p.Comments)
}

// LikedBy reports whether userID appears in the post's likes array.
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
