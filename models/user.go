package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username           string             `bson:"username" json:"username"`
	Email              string             `bson:"email" json:"email"`
	Password           string             `bson:"password" json:"-"`
	IsActive           bool               `bson:"isActive" json:"isActive"`
	VerificationCode   string             `bson:"verificationCode,omitempty" json:"-"`
	VerificationExpiry time.Time          `bson:"verificationExpiry,omitempty" json:"-"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
}

// UserSummary is the shape embedded in populated responses: identity only,
// never the credential fields.
type UserSummary struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Username string             `bson:"username" json:"username"`
	Email    string             `bson:"email" json:"email"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Email: u.Email}
}
