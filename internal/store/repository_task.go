package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avkhasev/tasktrack/internal/logger"
	"github.com/avkhasev/tasktrack/models"
)

// taskRepository is the SQL-backed implementation of [TaskRepository].
// It executes all task CRUD operations against the "tasks" table.
//
// Every query carries the owner's user_id in its WHERE clause; there is no
// code path that reads or writes a task row without it. This is the single
// predicate that makes a foreign task indistinguishable from a missing one.
type taskRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTaskRepository constructs a [TaskRepository] backed by the provided
// database connection and logger.
func NewTaskRepository(db *DB, logger *logger.Logger) TaskRepository {
	logger.Debug().Msg("creating task repository")
	return &taskRepository{
		db:     db,
		logger: logger,
	}
}

// CreateTask persists a new task record and returns it with the
// server-assigned ID. OwnerID and timestamps must already be populated by
// the caller.
func (r *taskRepository) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildCreateTaskQuery(task)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.CreateTask").Msg("failed to build query")
		return models.Task{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&task.ID); err != nil {
		log.Err(err).Str("func", "*taskRepository.CreateTask").Int64("user_id", task.OwnerID).Msg("error creating task")
		return models.Task{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return task, nil
}

// ListTasks returns every task owned by ownerID that matches the filter,
// in insertion order. An owner with no matching tasks gets an empty slice,
// not an error.
func (r *taskRepository) ListTasks(ctx context.Context, ownerID int64, filter models.TaskFilter) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildListTasksQuery(ownerID, filter)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.ListTasks").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.ListTasks").Int64("user_id", ownerID).Msg("failed to execute list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	tasks := make([]models.Task, 0, 16)

	for rows.Next() {
		var task models.Task

		if scanErr := scanTask(rows, &task); scanErr != nil {
			log.Err(scanErr).Str("func", "*taskRepository.ListTasks").Int64("user_id", ownerID).Msg("failed to scan task row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		tasks = append(tasks, task)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*taskRepository.ListTasks").Int64("user_id", ownerID).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return tasks, nil
}

// GetTask retrieves a single task by (owner, id), or [ErrTaskNotFound] when
// no such row exists for that owner.
func (r *taskRepository) GetTask(ctx context.Context, ownerID, taskID int64) (models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildGetTaskQuery(ownerID, taskID)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.GetTask").Msg("failed to build query")
		return models.Task{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var task models.Task
	row := r.db.QueryRowContext(ctx, query, args...)

	if err = scanTask(row, &task); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, ErrTaskNotFound
		}

		log.Err(err).Str("func", "*taskRepository.GetTask").Int64("user_id", ownerID).Int64("task_id", taskID).Msg("error scanning task row")
		return models.Task{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return task, nil
}

// UpdateTask applies a partial update to a single task and returns the
// refreshed record. Only the fields present in upd change; updated_at always
// advances. Zero affected rows means the task does not exist for this owner.
func (r *taskRepository) UpdateTask(ctx context.Context, ownerID, taskID int64, upd models.TaskUpdate) (models.Task, error) {
	log := logger.FromContext(ctx)

	if upd.Empty() {
		return r.GetTask(ctx, ownerID, taskID)
	}

	query, args, err := r.db.buildUpdateTaskQuery(ownerID, taskID, upd, time.Now().UTC())
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.UpdateTask").Msg("failed to build query")
		return models.Task{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.UpdateTask").Int64("user_id", ownerID).Int64("task_id", taskID).Msg("error executing update")
		return models.Task{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		log.Warn().Str("func", "*taskRepository.UpdateTask").Int64("user_id", ownerID).Int64("task_id", taskID).Msg("task not found")
		return models.Task{}, ErrTaskNotFound
	}

	return r.GetTask(ctx, ownerID, taskID)
}

// DeleteTask permanently removes a single task. Zero affected rows means the
// task does not exist for this owner.
func (r *taskRepository) DeleteTask(ctx context.Context, ownerID, taskID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildDeleteTaskQuery(ownerID, taskID)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.DeleteTask").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.DeleteTask").Int64("user_id", ownerID).Int64("task_id", taskID).Msg("error executing delete")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner, task *models.Task) error {
	return row.Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&task.Description,
		&task.IsCompleted,
		&task.Priority,
		&task.Category,
		&task.DueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
}
