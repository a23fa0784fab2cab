package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type MemberRole string

const (
	RoleAdmin  MemberRole = "Admin"
	RoleMember MemberRole = "Member"
)

// Member is one entry in a project's membership list. Only the user reference
// is stored; identity details are resolved when a populated project is built.
type Member struct {
	User primitive.ObjectID `bson:"user" json:"user"`
	Role MemberRole         `bson:"role" json:"role"`
}

// MemberDetail is the populated form of Member.
type MemberDetail struct {
	User UserSummary `json:"user"`
	Role MemberRole  `json:"role"`
}
