package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "Pending"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
)

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Comment struct {
	Text      string             `bson:"text" json:"text"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Task struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description" json:"description"`
	Status      TaskStatus           `bson:"status" json:"status"`
	Deadline    string               `bson:"deadline" json:"deadline"`
	ProjectID   primitive.ObjectID   `bson:"projectId" json:"projectId"`
	CreatedBy   primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	AssignedTo  []primitive.ObjectID `bson:"assignedTo" json:"assignedTo"`
	Comments    []Comment            `bson:"comments" json:"comments"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// IsAssignee reports whether userID appears in the assignee list.
func (t *Task) IsAssignee(userID primitive.ObjectID) bool {
	for _, id := range t.AssignedTo {
		if id == userID {
			return true
		}
	}
	return false
}

// CommentDetail is a comment with the author identity resolved.
type CommentDetail struct {
	Text      string      `json:"text"`
	User      UserSummary `json:"user"`
	CreatedAt time.Time   `json:"createdAt"`
}

// TaskDetail is a task with assignee and comment author identities resolved.
// ProjectTitle and Creator are filled only where the operation populates them.
type TaskDetail struct {
	ID           primitive.ObjectID `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Status       TaskStatus         `json:"status"`
	Deadline     string             `json:"deadline"`
	ProjectID    primitive.ObjectID `json:"projectId"`
	ProjectTitle string             `json:"projectTitle,omitempty"`
	CreatedBy    primitive.ObjectID `json:"createdBy"`
	Creator      *UserSummary       `json:"creator,omitempty"`
	AssignedTo   []UserSummary      `json:"assignedTo"`
	Comments     []CommentDetail    `json:"comments"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}
