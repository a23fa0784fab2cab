package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Chandanpatidar24/Project-Management/logging"
	"github.com/Chandanpatidar24/Project-Management/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TaskService struct {
	TasksCollection    *mongo.Collection
	ProjectsCollection *mongo.Collection
	UsersCollection    *mongo.Collection
	Notifications      *NotificationService
}

func NewTaskService(tasksCollection, projectsCollection, usersCollection *mongo.Collection, notifications *NotificationService) *TaskService {
	return &TaskService{
		TasksCollection:    tasksCollection,
		ProjectsCollection: projectsCollection,
		UsersCollection:    usersCollection,
		Notifications:      notifications,
	}
}

// CreateTaskInput is the request payload for task creation. AssignedTo is a
// comma-separated list of emails or usernames.
type CreateTaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
	ProjectID   string `json:"projectId"`
	AssignedTo  string `json:"assignedToEmail"`
}

// TaskPatch carries the optional fields of a task update. Deadline is a
// pointer so the creator can clear it explicitly; the other fields follow the
// empty-means-unchanged rule.
type TaskPatch struct {
	Status      models.TaskStatus `json:"status"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Deadline    *string           `json:"deadline"`
}

// parseAssigneeIdentifiers splits a comma-separated identifier list, trimming
// whitespace and dropping empty entries.
func parseAssigneeIdentifiers(raw string) []string {
	if raw == "" {
		return nil
	}
	var identifiers []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			identifiers = append(identifiers, part)
		}
	}
	return identifiers
}

// applyTaskPatch mutates the task per the caller's rights. The creator may
// touch every field, including clearing the deadline; an assignee may only
// change the status, and other patch fields are ignored even if supplied.
func applyTaskPatch(t *models.Task, patch TaskPatch, isCreator bool) error {
	if patch.Status != "" && !models.ValidStatus(patch.Status) {
		return validation("Invalid task status")
	}

	if isCreator {
		if patch.Status != "" {
			t.Status = patch.Status
		}
		if patch.Deadline != nil {
			t.Deadline = *patch.Deadline
		}
		if patch.Title != "" {
			t.Title = patch.Title
		}
		if patch.Description != "" {
			t.Description = patch.Description
		}
	} else {
		if patch.Status != "" {
			t.Status = patch.Status
		}
	}
	return nil
}

// commentRecipient decides who is notified about a new comment: the owner's
// comments go to the first assignee, anyone else's go to the owner. The
// commenter is never notified about their own comment.
func commentRecipient(t *models.Task, p *models.Project, callerID primitive.ObjectID) (primitive.ObjectID, bool) {
	var recipient primitive.ObjectID
	if callerID == p.CreatedBy {
		if len(t.AssignedTo) == 0 {
			return primitive.NilObjectID, false
		}
		recipient = t.AssignedTo[0]
	} else {
		recipient = p.CreatedBy
	}
	if recipient == callerID {
		return primitive.NilObjectID, false
	}
	return recipient, true
}

// CreateTask creates a task on a project the caller owns. Each resolvable
// assignee identifier becomes an assignee and, if not already a member, is
// added to the project's membership list with an INVITE notification.
// Unresolvable identifiers are skipped silently.
func (s *TaskService) CreateTask(ctx context.Context, callerID primitive.ObjectID, in CreateTaskInput) (*models.Task, error) {
	if in.Title == "" || in.Description == "" || in.Deadline == "" {
		return nil, validation("Please fill all fields")
	}

	projectID, err := primitive.ObjectIDFromHex(in.ProjectID)
	if err != nil {
		return nil, validation("Invalid project ID format")
	}

	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !CanCreateTask(project, callerID) {
		return nil, unauthorized("Not authorized")
	}

	var assignedTo []primitive.ObjectID
	membersChanged := false
	for _, identifier := range parseAssigneeIdentifiers(in.AssignedTo) {
		user, err := findUserByIdentifier(ctx, s.UsersCollection, identifier)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		assignedTo = append(assignedTo, user.ID)

		if !project.IsMember(user.ID) {
			project.Members = append(project.Members, models.Member{User: user.ID, Role: models.RoleMember})
			membersChanged = true
			s.Notifications.notify(ctx, &models.Notification{
				Recipient: user.ID,
				Sender:    callerID,
				Type:      models.NotificationInvite,
				Message:   fmt.Sprintf("You have been added to project %q", project.Title),
				RelatedID: project.ID,
			})
		}
	}

	if membersChanged {
		project.UpdatedAt = time.Now()
		update := bson.M{"$set": bson.M{"members": project.Members, "updatedAt": project.UpdatedAt}}
		if _, err := s.ProjectsCollection.UpdateOne(ctx, bson.M{"_id": project.ID}, update); err != nil {
			return nil, fmt.Errorf("failed to update project members: %v", err)
		}
	}

	now := time.Now()
	task := &models.Task{
		ID:          primitive.NewObjectID(),
		Title:       in.Title,
		Description: in.Description,
		Status:      models.StatusPending,
		Deadline:    in.Deadline,
		ProjectID:   project.ID,
		CreatedBy:   callerID,
		AssignedTo:  assignedTo,
		Comments:    []models.Comment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.TasksCollection.InsertOne(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %v", err)
	}

	for _, recipientID := range assignedTo {
		s.Notifications.notify(ctx, &models.Notification{
			Recipient: recipientID,
			Sender:    callerID,
			Type:      models.NotificationAssignment,
			Message:   fmt.Sprintf("You have been assigned to task %q", task.Title),
			RelatedID: task.ID,
		})
	}

	logging.Logger.Infof("Event ID: TASK_CREATED, Description: Task %s created on project %s with %d assignees", task.ID.Hex(), project.ID.Hex(), len(assignedTo))
	return task, nil
}

// GetTasksByProject returns the project's tasks with assignee and comment
// author identities resolved. The caller must be the owner or a member.
func (s *TaskService) GetTasksByProject(ctx context.Context, callerID, projectID primitive.ObjectID) ([]models.TaskDetail, error) {
	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !CanViewProject(project, callerID) {
		return nil, unauthorized("Not authorized to view this project")
	}

	cursor, err := s.TasksCollection.Find(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %v", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %v", err)
	}

	return s.populateTasks(ctx, tasks, nil)
}

// GetAssignedTasks returns every task assigned to the caller, with the
// project title and creator identity resolved.
func (s *TaskService) GetAssignedTasks(ctx context.Context, callerID primitive.ObjectID) ([]models.TaskDetail, error) {
	cursor, err := s.TasksCollection.Find(ctx, bson.M{"assignedTo": callerID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %v", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %v", err)
	}

	projectTitles, err := s.fetchProjectTitles(ctx, tasks)
	if err != nil {
		return nil, err
	}

	return s.populateTasks(ctx, tasks, projectTitles)
}

// UpdateTask patches a task. The creator may update every field; an assignee
// may only change the status.
func (s *TaskService) UpdateTask(ctx context.Context, callerID, taskID primitive.ObjectID, patch TaskPatch) (*models.TaskDetail, error) {
	task, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	isCreator, allowed := CanUpdateTask(task, callerID)
	if !allowed {
		return nil, unauthorized("Not authorized")
	}

	if err := applyTaskPatch(task, patch, isCreator); err != nil {
		return nil, err
	}
	task.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"title":       task.Title,
		"description": task.Description,
		"status":      task.Status,
		"deadline":    task.Deadline,
		"updatedAt":   task.UpdatedAt,
	}}
	if _, err := s.TasksCollection.UpdateOne(ctx, bson.M{"_id": taskID}, update); err != nil {
		return nil, fmt.Errorf("failed to update task: %v", err)
	}

	return s.populateTask(ctx, task)
}

// DeleteTask removes a task, creator-only.
func (s *TaskService) DeleteTask(ctx context.Context, callerID, taskID primitive.ObjectID) error {
	task, err := s.loadTask(ctx, taskID)
	if err != nil {
		return err
	}

	if !CanDeleteTask(task, callerID) {
		return unauthorized("Not authorized")
	}

	if _, err := s.TasksCollection.DeleteOne(ctx, bson.M{"_id": taskID}); err != nil {
		return fmt.Errorf("failed to delete task: %v", err)
	}

	logging.Logger.Infof("Event ID: TASK_DELETED, Description: Task %s deleted by %s", taskID.Hex(), callerID.Hex())
	return nil
}

// AddComment appends a comment to the task. The caller must be a member or
// the owner of the task's project. A COMMENT notification goes to the first
// assignee when the owner comments, and to the owner otherwise, never to the
// commenter themselves.
func (s *TaskService) AddComment(ctx context.Context, callerID, taskID primitive.ObjectID, text string) (*models.TaskDetail, error) {
	if text == "" {
		return nil, validation("Comment text is required")
	}

	task, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	project, err := s.loadProject(ctx, task.ProjectID)
	if err != nil {
		return nil, err
	}

	if !CanComment(project, callerID) {
		return nil, unauthorized("Not authorized")
	}

	comment := models.Comment{
		Text:      text,
		User:      callerID,
		CreatedAt: time.Now(),
	}
	task.Comments = append(task.Comments, comment)
	task.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{"comments": task.Comments, "updatedAt": task.UpdatedAt}}
	if _, err := s.TasksCollection.UpdateOne(ctx, bson.M{"_id": taskID}, update); err != nil {
		return nil, fmt.Errorf("failed to add comment: %v", err)
	}

	if recipient, ok := commentRecipient(task, project, callerID); ok {
		s.Notifications.notify(ctx, &models.Notification{
			Recipient: recipient,
			Sender:    callerID,
			Type:      models.NotificationComment,
			Message:   fmt.Sprintf("New comment on task %q", task.Title),
			RelatedID: task.ID,
		})
	}

	return s.populateTask(ctx, task)
}

func (s *TaskService) loadTask(ctx context.Context, taskID primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := s.TasksCollection.FindOne(ctx, bson.M{"_id": taskID}).Decode(&task)
	if err == mongo.ErrNoDocuments {
		return nil, notFound("Task not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve task: %v", err)
	}
	return &task, nil
}

func (s *TaskService) loadProject(ctx context.Context, projectID primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := s.ProjectsCollection.FindOne(ctx, bson.M{"_id": projectID}).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return nil, notFound("Project not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve project: %v", err)
	}
	return &project, nil
}

func (s *TaskService) fetchProjectTitles(ctx context.Context, tasks []models.Task) (map[primitive.ObjectID]string, error) {
	titles := make(map[primitive.ObjectID]string)
	if len(tasks) == 0 {
		return titles, nil
	}

	var projectIDs []primitive.ObjectID
	for _, t := range tasks {
		if _, ok := titles[t.ProjectID]; !ok {
			titles[t.ProjectID] = ""
			projectIDs = append(projectIDs, t.ProjectID)
		}
	}

	cursor, err := s.ProjectsCollection.Find(ctx, bson.M{"_id": bson.M{"$in": projectIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve projects: %v", err)
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %v", err)
	}
	for _, p := range projects {
		titles[p.ID] = p.Title
	}

	return titles, nil
}

func (s *TaskService) populateTask(ctx context.Context, task *models.Task) (*models.TaskDetail, error) {
	details, err := s.populateTasks(ctx, []models.Task{*task}, nil)
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (s *TaskService) populateTasks(ctx context.Context, tasks []models.Task, projectTitles map[primitive.ObjectID]string) ([]models.TaskDetail, error) {
	var userIDs []primitive.ObjectID
	for _, t := range tasks {
		userIDs = append(userIDs, t.CreatedBy)
		userIDs = append(userIDs, t.AssignedTo...)
		for _, c := range t.Comments {
			userIDs = append(userIDs, c.User)
		}
	}
	summaries, err := fetchUserSummaries(ctx, s.UsersCollection, userIDs)
	if err != nil {
		return nil, err
	}

	details := make([]models.TaskDetail, 0, len(tasks))
	for _, t := range tasks {
		assignees := make([]models.UserSummary, 0, len(t.AssignedTo))
		for _, id := range t.AssignedTo {
			assignees = append(assignees, summaryOrID(summaries, id))
		}

		comments := make([]models.CommentDetail, 0, len(t.Comments))
		for _, c := range t.Comments {
			comments = append(comments, models.CommentDetail{
				Text:      c.Text,
				User:      summaryOrID(summaries, c.User),
				CreatedAt: c.CreatedAt,
			})
		}

		detail := models.TaskDetail{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Status:      t.Status,
			Deadline:    t.Deadline,
			ProjectID:   t.ProjectID,
			CreatedBy:   t.CreatedBy,
			AssignedTo:  assignees,
			Comments:    comments,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		}
		if projectTitles != nil {
			detail.ProjectTitle = projectTitles[t.ProjectID]
			creator := summaryOrID(summaries, t.CreatedBy)
			detail.Creator = &creator
		}

		details = append(details, detail)
	}

	return details, nil
}
