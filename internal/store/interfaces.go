package store

import (
	"context"
	"io"

	"github.com/avkhasev/tasktrack/models"
)

// UserRepository persists user identity records. The password hash stored
// through CreateUser is the only credential representation that ever reaches
// the database.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	UpdateProfile(ctx context.Context, userID int64, upd models.ProfileUpdate) (models.User, error)
	SetAvatarPath(ctx context.Context, userID int64, avatarPath string) (models.User, error)
}

// TaskRepository persists task records. Every method takes the owner's
// resolved identity as a scoping parameter; a task belonging to a different
// owner behaves exactly like a nonexistent one.
type TaskRepository interface {
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)
	ListTasks(ctx context.Context, ownerID int64, filter models.TaskFilter) ([]models.Task, error)
	GetTask(ctx context.Context, ownerID, taskID int64) (models.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID int64, upd models.TaskUpdate) (models.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID int64) error
}

// AvatarFileStorage stores uploaded avatar images as opaque files and hands
// back a reference path. The database only ever holds the path.
type AvatarFileStorage interface {
	Save(ctx context.Context, ext string, content io.Reader) (string, error)
	Remove(ctx context.Context, path string) error
}
