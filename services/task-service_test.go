package services

import (
	"testing"

	"github.com/Chandanpatidar24/Project-Management/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseAssigneeIdentifiers(t *testing.T) {
	assert.Nil(t, parseAssigneeIdentifiers(""))
	assert.Equal(t, []string{"alice@x.com"}, parseAssigneeIdentifiers("alice@x.com"))
	assert.Equal(t, []string{"alice@x.com", "bob"}, parseAssigneeIdentifiers("alice@x.com, bob"))
	assert.Equal(t, []string{"alice", "bob"}, parseAssigneeIdentifiers(" alice ,, bob , "))
}

func TestApplyTaskPatchCreator(t *testing.T) {
	task := &models.Task{
		Title:       "Old title",
		Description: "Old description",
		Status:      models.StatusPending,
		Deadline:    "2026-09-01",
	}

	empty := ""
	err := applyTaskPatch(task, TaskPatch{
		Status:      models.StatusInProgress,
		Title:       "New title",
		Description: "New description",
		Deadline:    &empty,
	}, true)
	require.NoError(t, err)

	assert.Equal(t, models.StatusInProgress, task.Status)
	assert.Equal(t, "New title", task.Title)
	assert.Equal(t, "New description", task.Description)
	assert.Equal(t, "", task.Deadline, "creator may clear the deadline")
}

func TestApplyTaskPatchCreatorOmittedFields(t *testing.T) {
	task := &models.Task{
		Title:    "Old title",
		Status:   models.StatusPending,
		Deadline: "2026-09-01",
	}

	err := applyTaskPatch(task, TaskPatch{Status: models.StatusCompleted}, true)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, task.Status)
	assert.Equal(t, "Old title", task.Title)
	assert.Equal(t, "2026-09-01", task.Deadline, "nil deadline pointer leaves the field alone")
}

func TestApplyTaskPatchAssigneeStatusOnly(t *testing.T) {
	task := &models.Task{
		Title:       "Old title",
		Description: "Old description",
		Status:      models.StatusPending,
		Deadline:    "2026-09-01",
	}

	cleared := ""
	err := applyTaskPatch(task, TaskPatch{
		Status:      models.StatusCompleted,
		Title:       "Sneaky title",
		Description: "Sneaky description",
		Deadline:    &cleared,
	}, false)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, task.Status)
	assert.Equal(t, "Old title", task.Title, "assignee patch must not touch the title")
	assert.Equal(t, "Old description", task.Description)
	assert.Equal(t, "2026-09-01", task.Deadline)
}

func TestApplyTaskPatchStatusToggle(t *testing.T) {
	task := &models.Task{Status: models.StatusPending}

	require.NoError(t, applyTaskPatch(task, TaskPatch{Status: models.StatusCompleted}, false))
	assert.Equal(t, models.StatusCompleted, task.Status)

	require.NoError(t, applyTaskPatch(task, TaskPatch{Status: models.StatusPending}, false))
	assert.Equal(t, models.StatusPending, task.Status)
}

func TestApplyTaskPatchInvalidStatus(t *testing.T) {
	task := &models.Task{Status: models.StatusPending}

	err := applyTaskPatch(task, TaskPatch{Status: "Done"}, true)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, models.StatusPending, task.Status)
}

func TestCommentRecipient(t *testing.T) {
	owner := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	carol := primitive.NewObjectID()

	project := &models.Project{CreatedBy: owner}

	t.Run("owner comments, first assignee notified", func(t *testing.T) {
		task := &models.Task{AssignedTo: []primitive.ObjectID{bob, carol}}
		recipient, ok := commentRecipient(task, project, owner)
		require.True(t, ok)
		assert.Equal(t, bob, recipient)
	})

	t.Run("owner comments on unassigned task, nobody notified", func(t *testing.T) {
		task := &models.Task{}
		_, ok := commentRecipient(task, project, owner)
		assert.False(t, ok)
	})

	t.Run("member comments, owner notified", func(t *testing.T) {
		task := &models.Task{AssignedTo: []primitive.ObjectID{bob}}
		recipient, ok := commentRecipient(task, project, bob)
		require.True(t, ok)
		assert.Equal(t, owner, recipient)
	})

	t.Run("owner assigned to own task never notifies themselves", func(t *testing.T) {
		task := &models.Task{AssignedTo: []primitive.ObjectID{owner}}
		_, ok := commentRecipient(task, project, owner)
		assert.False(t, ok)
	})
}
