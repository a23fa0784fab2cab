package services

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/Chandanpatidar24/Project-Management/logging"
	"github.com/Chandanpatidar24/Project-Management/models"
	"github.com/Chandanpatidar24/Project-Management/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/rand"
)

const verificationValidity = 15 * time.Minute

type UserService struct {
	UserCollection *mongo.Collection
	Mailer         *Mailer
	Blacklist      *TokenBlacklist
}

func NewUserService(userCollection *mongo.Collection, mailer *Mailer, blacklist *TokenBlacklist) *UserService {
	return &UserService{
		UserCollection: userCollection,
		Mailer:         mailer,
		Blacklist:      blacklist,
	}
}

// Register stores a new inactive account and emails a verification code.
func (s *UserService) Register(ctx context.Context, username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return validation("Please fill all fields")
	}

	var existing models.User
	if err := s.UserCollection.FindOne(ctx, bson.M{"username": username}).Decode(&existing); err == nil {
		return conflict("User with username already exists")
	}
	if err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&existing); err == nil {
		return conflict("User with email already exists")
	}

	if err := utils.ValidatePassword(password); err != nil {
		return validation(err.Error())
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	verificationCode := fmt.Sprintf("%06d", rand.Intn(1000000))

	user := models.User{
		ID:                 primitive.NewObjectID(),
		Username:           html.EscapeString(username),
		Email:              html.EscapeString(email),
		Password:           hashed,
		IsActive:           false,
		VerificationCode:   verificationCode,
		VerificationExpiry: time.Now().Add(verificationValidity),
		CreatedAt:          time.Now(),
	}

	if _, err := s.UserCollection.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %v", err)
	}

	subject := "Your Verification Code"
	body := fmt.Sprintf("Your verification code is %s. Please enter it within %d minutes.", verificationCode, int(verificationValidity.Minutes()))
	if err := s.Mailer.Send(user.Email, subject, body); err != nil {
		return fmt.Errorf("failed to send verification email: %v", err)
	}

	logging.Logger.Infof("Event ID: USER_REGISTERED, Description: Verification code sent to %s", user.Email)
	return nil
}

// ConfirmEmail activates the account if the code matches and has not expired.
func (s *UserService) ConfirmEmail(ctx context.Context, username, code string) error {
	var user models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return notFound("User not found")
	}
	if err != nil {
		return fmt.Errorf("failed to retrieve user: %v", err)
	}

	if user.IsActive {
		return nil
	}
	if user.VerificationCode != code {
		return validation("Invalid verification code")
	}
	if time.Now().After(user.VerificationExpiry) {
		return validation("Verification code has expired")
	}

	update := bson.M{
		"$set":   bson.M{"isActive": true},
		"$unset": bson.M{"verificationCode": "", "verificationExpiry": ""},
	}
	if _, err := s.UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
		return fmt.Errorf("failed to activate user: %v", err)
	}

	logging.Logger.Infof("Event ID: USER_ACTIVATED, Description: Account %s activated", user.Username)
	return nil
}

// Login verifies the credentials and issues an access token.
func (s *UserService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	var user models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return "", nil, unauthorized("Invalid username or password")
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to retrieve user: %v", err)
	}

	if !utils.CheckPassword(user.Password, password) {
		return "", nil, unauthorized("Invalid username or password")
	}
	if !user.IsActive {
		return "", nil, unauthorized("Account is not activated")
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Username)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %v", err)
	}

	return token, &user, nil
}

// Logout revokes the presented token for the remainder of its lifetime.
func (s *UserService) Logout(ctx context.Context, tokenStr string) error {
	claims, err := utils.ValidateToken(tokenStr)
	if err != nil {
		return unauthorized("Invalid token")
	}
	return s.Blacklist.Revoke(ctx, tokenStr, time.Until(claims.ExpiresAt.Time))
}

// GetUserByID returns a single account.
func (s *UserService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, notFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %v", err)
	}
	return &user, nil
}
