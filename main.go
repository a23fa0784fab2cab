package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Chandanpatidar24/Project-Management/handlers"
	"github.com/Chandanpatidar24/Project-Management/logging"
	"github.com/Chandanpatidar24/Project-Management/middleware"
	"github.com/Chandanpatidar24/Project-Management/services"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	logging.InitLogger()

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Project Management server...")
	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_WARNING, Description: No .env file loaded: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	mongoDBName := os.Getenv("MONGO_DB_NAME")
	if mongoURI == "" || mongoDBName == "" {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: MONGO_URI and MONGO_DB_NAME must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer client.Disconnect(ctx)

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	db := client.Database(mongoDBName)
	usersCollection := db.Collection("users")
	projectsCollection := db.Collection("projects")
	tasksCollection := db.Collection("tasks")
	notificationsCollection := db.Collection("notifications")

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logging.Logger.Fatalf("Event ID: REDIS_CONNECTION_FAILED, Description: Redis connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: REDIS_CONNECTED, Description: Successfully connected to Redis at %s.", redisAddr)

	mailBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "MailerCB",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	blacklist := services.NewTokenBlacklist(redisClient)
	mailer := services.NewMailer(mailBreaker)

	notificationService := services.NewNotificationService(notificationsCollection, usersCollection)
	userService := services.NewUserService(usersCollection, mailer, blacklist)
	projectService := services.NewProjectService(projectsCollection, tasksCollection, usersCollection, notificationService)
	taskService := services.NewTaskService(tasksCollection, projectsCollection, usersCollection, notificationService)

	userHandler := handlers.NewUserHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", handlers.HealthCheck).Methods(http.MethodGet)
	api.HandleFunc("/users/register", userHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/users/confirm", userHandler.ConfirmEmail).Methods(http.MethodPost)
	api.HandleFunc("/users/login", userHandler.Login).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.JWTAuthMiddleware(blacklist))

	protected.HandleFunc("/users/logout", userHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/users/me", userHandler.GetMe).Methods(http.MethodGet)

	protected.HandleFunc("/projects", projectHandler.CreateProject).Methods(http.MethodPost)
	protected.HandleFunc("/projects", projectHandler.GetProjects).Methods(http.MethodGet)
	protected.HandleFunc("/projects/{id}", projectHandler.GetProjectByID).Methods(http.MethodGet)
	protected.HandleFunc("/projects/{id}", projectHandler.UpdateProject).Methods(http.MethodPut)
	protected.HandleFunc("/projects/{id}", projectHandler.DeleteProject).Methods(http.MethodDelete)
	protected.HandleFunc("/projects/{id}/members", projectHandler.AddMember).Methods(http.MethodPut)

	protected.HandleFunc("/tasks", taskHandler.CreateTask).Methods(http.MethodPost)
	protected.HandleFunc("/tasks/assigned", taskHandler.GetAssignedTasks).Methods(http.MethodGet)
	protected.HandleFunc("/tasks/project/{projectId}", taskHandler.GetTasksByProject).Methods(http.MethodGet)
	protected.HandleFunc("/tasks/{id}", taskHandler.UpdateTask).Methods(http.MethodPut)
	protected.HandleFunc("/tasks/{id}", taskHandler.DeleteTask).Methods(http.MethodDelete)
	protected.HandleFunc("/tasks/{id}/comments", taskHandler.AddComment).Methods(http.MethodPost)

	protected.HandleFunc("/notifications", notificationHandler.GetNotifications).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/{id}/read", notificationHandler.MarkAsRead).Methods(http.MethodPut)

	corsRouter := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins([]string{"*"}),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(r)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: SERVER_PORT is not set in the environment variables.")
	}

	serverAddress := fmt.Sprintf(":%s", serverPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	if err := http.ListenAndServe(serverAddress, corsRouter); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
