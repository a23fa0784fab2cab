package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Deadline    string             `bson:"deadline" json:"deadline"`
	CreatedBy   primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	Members     []Member           `bson:"members" json:"members"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProjectDetail is a project with member and owner identities resolved.
type ProjectDetail struct {
	ID          primitive.ObjectID `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Deadline    string             `json:"deadline"`
	CreatedBy   UserSummary        `json:"createdBy"`
	Members     []MemberDetail     `json:"members"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// IsOwner reports whether userID is the project owner. Ownership is checked
// independently of the membership list.
func (p *Project) IsOwner(userID primitive.ObjectID) bool {
	return p.CreatedBy == userID
}

// IsMember reports whether userID appears in the membership list.
func (p *Project) IsMember(userID primitive.ObjectID) bool {
	for _, m := range p.Members {
		if m.User == userID {
			return true
		}
	}
	return false
}

// MemberRoleOf returns the role of userID in the membership list, or "" if
// userID is not a member.
func (p *Project) MemberRoleOf(userID primitive.ObjectID) MemberRole {
	for _, m := range p.Members {
		if m.User == userID {
			return m.Role
		}
	}
	return ""
}
