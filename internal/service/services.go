package service

import (
	"github.com/avkhasev/tasktrack/internal/config"
	"github.com/avkhasev/tasktrack/internal/logger"
	"github.com/avkhasev/tasktrack/internal/store"
)

type Services struct {
	AuthService AuthService
	TaskService TaskService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(storages.UserRepository, storages.AvatarFileStorage, cfg.App, logger),
		TaskService: NewTaskService(storages.TaskRepository, logger),
	}
}
