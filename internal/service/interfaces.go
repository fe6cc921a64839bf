package service

import (
	"context"
	"io"

	"github.com/avkhasev/tasktrack/models"
)

// AuthService covers the credential and token lifecycle: registration,
// login, token issuance and verification, and profile management for the
// authenticated user.
type AuthService interface {
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	Profile(ctx context.Context, userID int64) (models.User, error)
	UpdateProfile(ctx context.Context, userID int64, upd models.ProfileUpdate) (models.User, error)
	SaveAvatar(ctx context.Context, userID int64, contentType string, content io.Reader) (models.User, error)
}

// TaskService covers the ownership-scoped task CRUD plus the read-side
// statistics aggregate. Every method takes the caller's resolved identity;
// a client-supplied owner field never exists in any request type.
type TaskService interface {
	CreateTask(ctx context.Context, ownerID int64, req models.CreateTaskRequest) (models.Task, error)
	ListTasks(ctx context.Context, ownerID int64, filter models.TaskFilter) ([]models.Task, error)
	GetTask(ctx context.Context, ownerID, taskID int64) (models.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID int64, upd models.TaskUpdate) (models.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID int64) error
	Stats(ctx context.Context, ownerID int64) (models.TaskStats, error)
}
