package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Chandanpatidar24/Project-Management/logging"
	"github.com/Chandanpatidar24/Project-Management/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProjectService struct {
	ProjectsCollection *mongo.Collection
	TasksCollection    *mongo.Collection
	UsersCollection    *mongo.Collection
	Notifications      *NotificationService
}

func NewProjectService(projectsCollection, tasksCollection, usersCollection *mongo.Collection, notifications *NotificationService) *ProjectService {
	return &ProjectService{
		ProjectsCollection: projectsCollection,
		TasksCollection:    tasksCollection,
		UsersCollection:    usersCollection,
		Notifications:      notifications,
	}
}

// ProjectPatch carries the optional fields of a project update. Empty values
// leave the stored field unchanged.
type ProjectPatch struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
}

// applyProjectPatch overwrites only the fields present in the patch. An empty
// string never clears a project field.
func applyProjectPatch(p *models.Project, patch ProjectPatch) {
	if patch.Title != "" {
		p.Title = patch.Title
	}
	if patch.Description != "" {
		p.Description = patch.Description
	}
	if patch.Deadline != "" {
		p.Deadline = patch.Deadline
	}
}

// CreateProject creates a project owned by the caller. The owner is also
// seeded into the membership list as an Admin.
func (s *ProjectService) CreateProject(ctx context.Context, callerID primitive.ObjectID, title, description, deadline string) (*models.Project, error) {
	if title == "" || description == "" || deadline == "" {
		return nil, validation("Please fill all fields")
	}

	now := time.Now()
	project := &models.Project{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: description,
		Deadline:    deadline,
		CreatedBy:   callerID,
		Members:     []models.Member{{User: callerID, Role: models.RoleAdmin}},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.ProjectsCollection.InsertOne(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %v", err)
	}

	logging.Logger.Infof("Event ID: PROJECT_CREATED, Description: Project %s created by %s", project.ID.Hex(), callerID.Hex())
	return project, nil
}

// GetProjects returns every project the caller owns or belongs to, with
// member identities resolved.
func (s *ProjectService) GetProjects(ctx context.Context, callerID primitive.ObjectID) ([]models.ProjectDetail, error) {
	filter := bson.M{"$or": []bson.M{
		{"createdBy": callerID},
		{"members.user": callerID},
	}}

	cursor, err := s.ProjectsCollection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve projects: %v", err)
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %v", err)
	}

	var userIDs []primitive.ObjectID
	for _, p := range projects {
		userIDs = append(userIDs, p.CreatedBy)
		for _, m := range p.Members {
			userIDs = append(userIDs, m.User)
		}
	}
	summaries, err := fetchUserSummaries(ctx, s.UsersCollection, userIDs)
	if err != nil {
		return nil, err
	}

	details := make([]models.ProjectDetail, 0, len(projects))
	for i := range projects {
		details = append(details, buildProjectDetail(&projects[i], summaries))
	}

	return details, nil
}

// GetProjectByID loads a project with member and owner identities resolved.
func (s *ProjectService) GetProjectByID(ctx context.Context, callerID, projectID primitive.ObjectID) (*models.ProjectDetail, error) {
	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !CanViewProject(project, callerID) {
		return nil, unauthorized("Not authorized to view this project")
	}

	return s.populateProject(ctx, project)
}

// UpdateProject patches the project, owner-only.
func (s *ProjectService) UpdateProject(ctx context.Context, callerID, projectID primitive.ObjectID, patch ProjectPatch) (*models.Project, error) {
	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !CanModifyProject(project, callerID) {
		return nil, unauthorized("Not authorized")
	}

	applyProjectPatch(project, patch)
	project.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"title":       project.Title,
		"description": project.Description,
		"deadline":    project.Deadline,
		"updatedAt":   project.UpdatedAt,
	}}
	if _, err := s.ProjectsCollection.UpdateOne(ctx, bson.M{"_id": projectID}, update); err != nil {
		return nil, fmt.Errorf("failed to update project: %v", err)
	}

	return project, nil
}

// DeleteProject removes the project and all of its tasks, owner-only. The two
// deletes are separate writes; a failure after the project delete leaves the
// task cleanup to a retry of the same call.
func (s *ProjectService) DeleteProject(ctx context.Context, callerID, projectID primitive.ObjectID) error {
	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return err
	}

	if !CanModifyProject(project, callerID) {
		return unauthorized("Not authorized")
	}

	if _, err := s.ProjectsCollection.DeleteOne(ctx, bson.M{"_id": projectID}); err != nil {
		return fmt.Errorf("failed to delete project: %v", err)
	}

	result, err := s.TasksCollection.DeleteMany(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return fmt.Errorf("failed to delete project tasks: %v", err)
	}

	logging.Logger.Infof("Event ID: PROJECT_DELETED, Description: Project %s deleted by %s along with %d tasks", projectID.Hex(), callerID.Hex(), result.DeletedCount)
	return nil
}

// AddMember resolves an email or username and appends the user to the
// membership list with the Member role. Allowed for the owner or an Admin
// member. The new member receives an INVITE notification.
func (s *ProjectService) AddMember(ctx context.Context, callerID, projectID primitive.ObjectID, identifier string) (*models.ProjectDetail, error) {
	if identifier == "" {
		return nil, validation("Please provide an email or username")
	}

	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !CanAddMembers(project, callerID) {
		return nil, unauthorized("Not authorized to add members")
	}

	userToAdd, err := findUserByIdentifier(ctx, s.UsersCollection, identifier)
	if err != nil {
		return nil, err
	}

	if project.IsMember(userToAdd.ID) {
		return nil, conflict("User is already a member")
	}

	project.Members = append(project.Members, models.Member{User: userToAdd.ID, Role: models.RoleMember})
	project.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{"members": project.Members, "updatedAt": project.UpdatedAt}}
	if _, err := s.ProjectsCollection.UpdateOne(ctx, bson.M{"_id": projectID}, update); err != nil {
		return nil, fmt.Errorf("failed to add member: %v", err)
	}

	s.Notifications.notify(ctx, &models.Notification{
		Recipient: userToAdd.ID,
		Sender:    callerID,
		Type:      models.NotificationInvite,
		Message:   fmt.Sprintf("You have been added to project %q", project.Title),
		RelatedID: project.ID,
	})

	return s.populateProject(ctx, project)
}

func (s *ProjectService) loadProject(ctx context.Context, projectID primitive.ObjectID) (*models.Project, error) {
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

func (s *ProjectService) populateProject(ctx context.Context, project *models.Project) (*models.ProjectDetail, error) {
	userIDs := []primitive.ObjectID{project.CreatedBy}
	for _, m := range project.Members {
		userIDs = append(userIDs, m.User)
	}
	summaries, err := fetchUserSummaries(ctx, s.UsersCollection, userIDs)
	if err != nil {
		return nil, err
	}
	detail := buildProjectDetail(project, summaries)
	return &detail, nil
}

func buildProjectDetail(project *models.Project, summaries map[primitive.ObjectID]models.UserSummary) models.ProjectDetail {
	members := make([]models.MemberDetail, 0, len(project.Members))
	for _, m := range project.Members {
		members = append(members, models.MemberDetail{
			User: summaryOrID(summaries, m.User),
			Role: m.Role,
		})
	}
	return models.ProjectDetail{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		Deadline:    project.Deadline,
		CreatedBy:   summaryOrID(summaries, project.CreatedBy),
		Members:     members,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}
