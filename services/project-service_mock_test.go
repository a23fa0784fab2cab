package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestAddMember(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("appends the member and sends one invite", func(mt *mtest.T) {
		projectService, _, _ := mockServices(mt)

		owner := primitive.NewObjectID()
		bob := primitive.NewObjectID()
		projectID := primitive.NewObjectID()

		project := projectDoc(projectID, owner, bson.A{
			bson.D{{Key: "user", Value: owner}, {Key: "role", Value: "Admin"}},
		})

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "app.projects", mtest.FirstBatch, project),
			mtest.CreateCursorResponse(0, "app.users", mtest.FirstBatch, userDoc(bob, "bob", "bob@x.com")),
			mtest.CreateSuccessResponse(), // members persist
			mtest.CreateSuccessResponse(), // INVITE insert
			mtest.CreateCursorResponse(0, "app.users", mtest.FirstBatch,
				userDoc(owner, "owner", "owner@x.com"), userDoc(bob, "bob", "bob@x.com")), // populate
		)

		detail, err := projectService.AddMember(context.Background(), owner, projectID, "bob@x.com")
		require.NoError(mt, err)
		require.Len(mt, detail.Members, 2)
		assert.Equal(mt, "bob", detail.Members[1].User.Username)
		assert.Equal(mt, "Member", string(detail.Members[1].Role))

		assert.Equal(mt, []string{"INVITE"}, insertedNotificationTypes(mt))
		assert.Len(mt, commandsTargeting(mt, "update", "projects"), 1)
	})

	mt.Run("adding the same user twice is rejected without a write", func(mt *mtest.T) {
		projectService, _, _ := mockServices(mt)

		owner := primitive.NewObjectID()
		bob := primitive.NewObjectID()
		projectID := primitive.NewObjectID()

		// bob is already on the membership list.
		project := projectDoc(projectID, owner, bson.A{
			bson.D{{Key: "user", Value: owner}, {Key: "role", Value: "Admin"}},
			bson.D{{Key: "user", Value: bob}, {Key: "role", Value: "Member"}},
		})

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "app.projects", mtest.FirstBatch, project),
			mtest.CreateCursorResponse(0, "app.users", mtest.FirstBatch, userDoc(bob, "bob", "bob@x.com")),
		)

		_, err := projectService.AddMember(context.Background(), owner, projectID, "bob@x.com")
		require.Error(mt, err)
		assert.ErrorIs(mt, err, ErrConflict)
		assert.Equal(mt, "User is already a member", err.Error())

		// The member list stays untouched and nobody is notified.
		assert.Empty(mt, commandsTargeting(mt, "update", "projects"))
		assert.Empty(mt, commandsTargeting(mt, "insert", "notifications"))
	})
}
