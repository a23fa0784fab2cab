package services

import (
	"context"
	"fmt"

	"github.com/Chandanpatidar24/Project-Management/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// fetchUserSummaries resolves a set of user ids to their public identities in
// a single query. Unknown ids are simply absent from the result; callers fall
// back to a bare id for those.
func fetchUserSummaries(ctx context.Context, users *mongo.Collection, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	summaries := make(map[primitive.ObjectID]models.UserSummary)
	if len(ids) == 0 {
		return summaries, nil
	}

	// Deduplicate before querying.
	seen := make(map[primitive.ObjectID]bool, len(ids))
	unique := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	cursor, err := users.Find(ctx, bson.M{"_id": bson.M{"$in": unique}})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve users: %v", err)
	}
	defer cursor.Close(ctx)

	var found []models.User
	if err := cursor.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("failed to decode users: %v", err)
	}
	for _, u := range found {
		summaries[u.ID] = u.Summary()
	}

	return summaries, nil
}

// findUserByIdentifier resolves an email or username to an account. Email
// match wins when both could apply.
func findUserByIdentifier(ctx context.Context, users *mongo.Collection, identifier string) (*models.User, error) {
	var user models.User
	err := users.FindOne(ctx, bson.M{"email": identifier}).Decode(&user)
	if err == nil {
		return &user, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to retrieve user: %v", err)
	}

	err = users.FindOne(ctx, bson.M{"username": identifier}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, notFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %v", err)
	}
	return &user, nil
}

func summaryOrID(summaries map[primitive.ObjectID]models.UserSummary, id primitive.ObjectID) models.UserSummary {
	if s, ok := summaries[id]; ok {
		return s
	}
	return models.UserSummary{ID: id}
}
