package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avkhasev/tasktrack/internal/logger"
	"github.com/avkhasev/tasktrack/internal/store"
	"github.com/avkhasev/tasktrack/models"
)

// taskService is the concrete implementation of TaskService.
// It validates task payloads and delegates persistence to a TaskRepository.
// The owner identity always arrives from the authorization layer; nothing in
// any request body can redirect an operation at another user's data.
type taskService struct {
	taskRepository store.TaskRepository

	logger *logger.Logger
}

// NewTaskService constructs a TaskService wired to the given TaskRepository.
func NewTaskService(taskRepository store.TaskRepository, logger *logger.Logger) TaskService {
	return &taskService{
		taskRepository: taskRepository,
		logger:         logger,
	}
}

// CreateTask validates the payload and persists a new task for ownerID.
//
// The title is trimmed before validation and storage; an omitted priority
// defaults to medium. New tasks always start uncompleted with both
// timestamps set to the current instant.
func (t *taskService) CreateTask(ctx context.Context, ownerID int64, req models.CreateTaskRequest) (models.Task, error) {
	log := logger.FromContext(ctx)

	title := strings.TrimSpace(req.Title)
	if err := validateTitle(title); err != nil {
		log.Error().Int64("user_id", ownerID).Err(err).Msg("invalid task data provided")
		return models.Task{}, err
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		log.Error().Int64("user_id", ownerID).Str("priority", priority.String()).Msg("invalid task priority provided")
		return models.Task{}, ErrValidationBadPriority
	}

	now := time.Now().UTC()
	task := models.Task{
		OwnerID:     ownerID,
		Title:       title,
		Description: req.Description,
		IsCompleted: false,
		Priority:    priority,
		Category:    req.Category,
		DueDate:     req.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	createdTask, err := t.taskRepository.CreateTask(ctx, task)
	if err != nil {
		log.Err(err).Int64("user_id", ownerID).Msg("task creation ended with error")
		return models.Task{}, fmt.Errorf("task creation ended with error: %w", err)
	}

	return createdTask, nil
}

// ListTasks returns the owner's tasks in insertion order, optionally
// narrowed by completion state and priority.
func (t *taskService) ListTasks(ctx context.Context, ownerID int64, filter models.TaskFilter) ([]models.Task, error) {
	if filter.Priority != nil && !filter.Priority.Valid() {
		return nil, ErrValidationBadPriority
	}

	return t.taskRepository.ListTasks(ctx, ownerID, filter)
}

// GetTask returns a single task owned by ownerID, or store.ErrTaskNotFound.
func (t *taskService) GetTask(ctx context.Context, ownerID, taskID int64) (models.Task, error) {
	return t.taskRepository.GetTask(ctx, ownerID, taskID)
}

// UpdateTask validates the supplied fields and applies a partial update.
// Fields absent from upd are left untouched; the update timestamp always
// advances. Toggling completion is just one case of this operation.
func (t *taskService) UpdateTask(ctx context.Context, ownerID, taskID int64, upd models.TaskUpdate) (models.Task, error) {
	log := logger.FromContext(ctx)

	if upd.Title != nil {
		trimmed := strings.TrimSpace(*upd.Title)
		if err := validateTitle(trimmed); err != nil {
			log.Error().Int64("user_id", ownerID).Int64("task_id", taskID).Err(err).Msg("invalid task data provided")
			return models.Task{}, err
		}
		upd.Title = &trimmed
	}

	if upd.Priority != nil && !upd.Priority.Valid() {
		log.Error().Int64("user_id", ownerID).Int64("task_id", taskID).Str("priority", upd.Priority.String()).Msg("invalid task priority provided")
		return models.Task{}, ErrValidationBadPriority
	}

	updatedTask, err := t.taskRepository.UpdateTask(ctx, ownerID, taskID, upd)
	if err != nil {
		log.Err(err).Int64("user_id", ownerID).Int64("task_id", taskID).Msg("task update ended with error")
		return models.Task{}, fmt.Errorf("task update ended with error: %w", err)
	}

	return updatedTask, nil
}

// DeleteTask permanently removes a single task owned by ownerID.
func (t *taskService) DeleteTask(ctx context.Context, ownerID, taskID int64) error {
	log := logger.FromContext(ctx)

	if err := t.taskRepository.DeleteTask(ctx, ownerID, taskID); err != nil {
		log.Err(err).Int64("user_id", ownerID).Int64("task_id", taskID).Msg("task deletion ended with error")
		return fmt.Errorf("task deletion ended with error: %w", err)
	}

	return nil
}

// Stats derives the owner's task counts from the repository's current state.
// It is recomputed from the full listing on every call, so the result always
// equals what a caller would compute from ListTasks at the same instant.
func (t *taskService) Stats(ctx context.Context, ownerID int64) (models.TaskStats, error) {
	tasks, err := t.taskRepository.ListTasks(ctx, ownerID, models.TaskFilter{})
	if err != nil {
		return models.TaskStats{}, err
	}

	stats := models.TaskStats{
		Total:      len(tasks),
		ByPriority: make(map[models.Priority]int),
	}

	for _, task := range tasks {
		if task.IsCompleted {
			stats.Completed++
		} else {
			stats.Pending++
		}
		stats.ByPriority[task.Priority]++
	}

	return stats, nil
}

func validateTitle(title string) error {
	if title == "" {
		return ErrValidationEmptyTitle
	}
	if len(title) > 200 {
		return ErrValidationTitleTooLong
	}
	return nil
}
