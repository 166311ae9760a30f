package store

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// FollowGraph exposes the follow relation as stored in Neo4j:
// (:User {uid})-[:FOLLOWS]->(:User {uid}).
type FollowGraph struct {
	driver neo4j.DriverWithContext
}

func NewFollowGraph(driver neo4j.DriverWithContext) *FollowGraph {
	return &FollowGraph{driver: driver}
}

// Following returns the uids the given user follows.
func (g *FollowGraph) Following(ctx context.Context, userID string) ([]string, error) {
	return g.neighbors(ctx, userID,
		`MATCH (:User {uid: $uid})-[:FOLLOWS]->(f:User) RETURN f.uid AS uid`)
}

// Followers returns the uids following the given user.
func (g *FollowGraph) Followers(ctx context.Context, userID string) ([]string, error) {
	return g.neighbors(ctx, userID,
		`MATCH (f:User)-[:FOLLOWS]->(:User {uid: $uid}) RETURN f.uid AS uid`)
}

func (g *FollowGraph) neighbors(ctx context.Context, userID, query string) ([]string, error) {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, map[string]interface{}{"uid": userID})
	if err != nil {
		return nil, fmt.Errorf("follow graph query failed: %w", err)
	}

	var ids []string
	for result.Next(ctx) {
		record := result.Record()
		if uid, ok := record.Values[0].(string); ok {
			ids = append(ids, uid)
		}
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("follow graph result failed: %w", err)
	}
	return ids, nil
}
