package store

import (
	"context"

	"github.com/avkhasev/tasktrack/internal/config"
	"github.com/avkhasev/tasktrack/internal/logger"
)

// Storages bundles every persistence backend the application uses.
type Storages struct {
	UserRepository    UserRepository
	TaskRepository    TaskRepository
	AvatarFileStorage AvatarFileStorage
}

// NewStorages opens the database connection for the configured DSN and wires
// up all repositories and the avatar file storage.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg.DB, logger)
	if err != nil {
		return nil, err
	}

	avatars, err := NewAvatarFileStorage(cfg.Files, logger)
	if err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository:    NewUserRepository(db, logger),
		TaskRepository:    NewTaskRepository(db, logger),
		AvatarFileStorage: avatars,
	}, nil
}
