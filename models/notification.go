package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationAssignment NotificationType = "ASSIGNMENT"
	NotificationInvite     NotificationType = "INVITE"
	NotificationComment    NotificationType = "COMMENT"
	NotificationUpdate     NotificationType = "UPDATE"
)

// Notification is a fan-out record. Immutable after creation except IsRead,
// which transitions false to true exactly once, by the recipient.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Recipient primitive.ObjectID `bson:"recipient" json:"recipient"`
	Sender    primitive.ObjectID `bson:"sender" json:"sender"`
	Type      NotificationType   `bson:"type" json:"type"`
	Message   string             `bson:"message" json:"message"`
	RelatedID primitive.ObjectID `bson:"relatedId,omitempty" json:"relatedId,omitempty"`
	IsRead    bool               `bson:"isRead" json:"isRead"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// NotificationDetail is a notification with the sender identity resolved.
type NotificationDetail struct {
	ID        primitive.ObjectID `json:"id"`
	Recipient primitive.ObjectID `json:"recipient"`
	Sender    UserSummary        `json:"sender"`
	Type      NotificationType   `json:"type"`
	Message   string             `json:"message"`
	RelatedID primitive.ObjectID `json:"relatedId,omitempty"`
	IsRead    bool               `json:"isRead"`
	CreatedAt time.Time          `json:"createdAt"`
}
