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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationService struct {
	NotificationsCollection *mongo.Collection
	UsersCollection         *mongo.Collection
}

func NewNotificationService(notificationsCollection, usersCollection *mongo.Collection) *NotificationService {
	return &NotificationService{
		NotificationsCollection: notificationsCollection,
		UsersCollection:         usersCollection,
	}
}

// Create inserts a fan-out record. Used by the project and task workflows as
// a side effect of their own writes; those callers treat a failure here as
// non-fatal and only log it, so the primary mutation is never rolled back.
func (s *NotificationService) Create(ctx context.Context, n *models.Notification) error {
	n.ID = primitive.NewObjectID()
	n.IsRead = false
	n.CreatedAt = time.Now()

	if _, err := s.NotificationsCollection.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %v", err)
	}
	return nil
}

// notify is the best-effort form of Create used for fan-out.
func (s *NotificationService) notify(ctx context.Context, n *models.Notification) {
	if err := s.Create(ctx, n); err != nil {
		logging.Logger.Warnf("Event ID: NOTIFICATION_CREATE_FAILED, Description: Dropped %s notification for %s: %v", n.Type, n.Recipient.Hex(), err)
	}
}

// GetNotifications returns the caller's notifications, newest first, with
// sender identities resolved.
func (s *NotificationService) GetNotifications(ctx context.Context, callerID primitive.ObjectID) ([]models.NotificationDetail, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.NotificationsCollection.Find(ctx, bson.M{"recipient": callerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve notifications: %v", err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %v", err)
	}

	senderIDs := make([]primitive.ObjectID, 0, len(notifications))
	for _, n := range notifications {
		senderIDs = append(senderIDs, n.Sender)
	}
	senders, err := fetchUserSummaries(ctx, s.UsersCollection, senderIDs)
	if err != nil {
		return nil, err
	}

	details := make([]models.NotificationDetail, 0, len(notifications))
	for _, n := range notifications {
		details = append(details, models.NotificationDetail{
			ID:        n.ID,
			Recipient: n.Recipient,
			Sender:    summaryOrID(senders, n.Sender),
			Type:      n.Type,
			Message:   n.Message,
			RelatedID: n.RelatedID,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}

	return details, nil
}

// MarkAsRead sets the read flag on the caller's notification. Marking an
// already-read notification is a no-op success.
func (s *NotificationService) MarkAsRead(ctx context.Context, callerID, notificationID primitive.ObjectID) (*models.Notification, error) {
	var notification models.Notification
	err := s.NotificationsCollection.FindOne(ctx, bson.M{"_id": notificationID}).Decode(&notification)
	if err == mongo.ErrNoDocuments {
		return nil, notFound("Notification not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve notification: %v", err)
	}

	if notification.Recipient != callerID {
		return nil, unauthorized("Not authorized")
	}

	if !notification.IsRead {
		update := bson.M{"$set": bson.M{"isRead": true}}
		if _, err := s.NotificationsCollection.UpdateOne(ctx, bson.M{"_id": notificationID}, update); err != nil {
			return nil, fmt.Errorf("failed to mark notification as read: %v", err)
		}
		notification.IsRead = true
	}

	return &notification, nil
}
