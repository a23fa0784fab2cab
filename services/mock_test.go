package services

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// mockServices builds the workflow services on collections backed by mtest's
// mocked deployment. Responses are queued per test in the exact order the
// operation issues its commands.
func mockServices(mt *mtest.T) (*ProjectService, *TaskService, *NotificationService) {
	db := mt.Client.Database("app")
	users := db.Collection("users")
	projects := db.Collection("projects")
	tasks := db.Collection("tasks")
	notifications := db.Collection("notifications")

	notificationService := NewNotificationService(notifications, users)
	projectService := NewProjectService(projects, tasks, users, notificationService)
	taskService := NewTaskService(tasks, projects, users, notificationService)
	return projectService, taskService, notificationService
}

// commandsTargeting returns the started commands of the given name addressed
// to the given collection.
func commandsTargeting(mt *mtest.T, commandName, collection string) []bson.Raw {
	var cmds []bson.Raw
	for _, ev := range mt.GetAllStartedEvents() {
		if ev.CommandName == commandName && ev.Command.Lookup(commandName).StringValue() == collection {
			cmds = append(cmds, ev.Command)
		}
	}
	return cmds
}

// insertedNotificationTypes lists the type field of every notification
// document written, in write order.
func insertedNotificationTypes(mt *mtest.T) []string {
	var types []string
	for _, cmd := range commandsTargeting(mt, "insert", "notifications") {
		values, err := cmd.Lookup("documents").Array().Values()
		if err != nil {
			mt.Fatalf("failed to read insert documents: %v", err)
		}
		for _, v := range values {
			types = append(types, v.Document().Lookup("type").StringValue())
		}
	}
	return types
}
