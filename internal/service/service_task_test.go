package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avkhasev/tasktrack/internal/logger"
	"github.com/avkhasev/tasktrack/internal/store"
	"github.com/avkhasev/tasktrack/models"
)

// ─────────────────────────────────────────────
// Mock: store.TaskRepository
// ─────────────────────────────────────────────

type mockTaskRepository struct {
	createTaskFn func(ctx context.Context, task models.Task) (models.Task, error)
	listTasksFn  func(ctx context.Context, ownerID int64, filter models.TaskFilter) ([]models.Task, error)
	getTaskFn    func(ctx context.Context, ownerID, taskID int64) (models.Task, error)
	updateTaskFn func(ctx context.Context, ownerID, taskID int64, upd models.TaskUpdate) (models.Task, error)
	deleteTaskFn func(ctx context.Context, ownerID, taskID int64) error
}

func (m *mockTaskRepository) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	if m.createTaskFn != nil {
		return m.createTaskFn(ctx, task)
	}
	return task, nil
}

func (m *mockTaskRepository) ListTasks(ctx context.Context, ownerID int64, filter models.TaskFilter) ([]models.Task, error) {
	if m.listTasksFn != nil {
		return m.listTasksFn(ctx, ownerID, filter)
	}
	return []models.Task{}, nil
}

func (m *mockTaskRepository) GetTask(ctx context.Context, ownerID, taskID int64) (models.Task, error) {
	if m.getTaskFn != nil {
		return m.getTaskFn(ctx, ownerID, taskID)
	}
	return models.Task{}, store.ErrTaskNotFound
}

func (m *mockTaskRepository) UpdateTask(ctx context.Context, ownerID, taskID int64, upd models.TaskUpdate) (models.Task, error) {
	if m.updateTaskFn != nil {
		return m.updateTaskFn(ctx, ownerID, taskID, upd)
	}
	return models.Task{}, store.ErrTaskNotFound
}

func (m *mockTaskRepository) DeleteTask(ctx context.Context, ownerID, taskID int64) error {
	if m.deleteTaskFn != nil {
		return m.deleteTaskFn(ctx, ownerID, taskID)
	}
	return store.ErrTaskNotFound
}

func newTestTaskService(repo *mockTaskRepository) TaskService {
	return NewTaskService(repo, logger.Nop())
}

// ─────────────────────────────────────────────
// CreateTask
// ─────────────────────────────────────────────

func TestTaskService_CreateTask_TrimsTitleAndDefaults(t *testing.T) {
	var persisted models.Task
	repo := &mockTaskRepository{
		createTaskFn: func(_ context.Context, task models.Task) (models.Task, error) {
			persisted = task
			task.ID = 13
			return task, nil
		},
	}
	svc := newTestTaskService(repo)

	created, err := svc.CreateTask(context.Background(), 7, models.CreateTaskRequest{
		Title: "  water the plants  ",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(13), created.ID)
	assert.Equal(t, int64(7), persisted.OwnerID)
	assert.Equal(t, "water the plants", persisted.Title)
	assert.Equal(t, models.PriorityMedium, persisted.Priority)
	assert.False(t, persisted.IsCompleted)
	assert.False(t, persisted.CreatedAt.IsZero())
	assert.Equal(t, persisted.CreatedAt, persisted.UpdatedAt)
}

func TestTaskService_CreateTask_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CreateTaskRequest
		wantErr error
	}{
		{
			name:    "empty title",
			req:     models.CreateTaskRequest{Title: "   "},
			wantErr: ErrValidationEmptyTitle,
		},
		{
			name:    "title too long",
			req:     models.CreateTaskRequest{Title: strings.Repeat("x", 201)},
			wantErr: ErrValidationTitleTooLong,
		},
		{
			name:    "unknown priority",
			req:     models.CreateTaskRequest{Title: "fine title", Priority: "critical"},
			wantErr: ErrValidationBadPriority,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestTaskService(&mockTaskRepository{})

			_, err := svc.CreateTask(context.Background(), 7, tt.req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTaskService_CreateTask_TitleAtBoundaryIsAccepted(t *testing.T) {
	svc := newTestTaskService(&mockTaskRepository{})

	created, err := svc.CreateTask(context.Background(), 7, models.CreateTaskRequest{
		Title: strings.Repeat("x", 200),
	})
	require.NoError(t, err)
	assert.Len(t, created.Title, 200)
}

// ─────────────────────────────────────────────
// ListTasks / GetTask
// ─────────────────────────────────────────────

func TestTaskService_ListTasks_RejectsUnknownFilterPriority(t *testing.T) {
	svc := newTestTaskService(&mockTaskRepository{})

	bad := models.Priority("critical")
	_, err := svc.ListTasks(context.Background(), 7, models.TaskFilter{Priority: &bad})
	require.ErrorIs(t, err, ErrValidationBadPriority)
}

func TestTaskService_ListTasks_PassesOwnerAndFilter(t *testing.T) {
	completed := true
	repo := &mockTaskRepository{
		listTasksFn: func(_ context.Context, ownerID int64, filter models.TaskFilter) ([]models.Task, error) {
			assert.Equal(t, int64(7), ownerID)
			require.NotNil(t, filter.Completed)
			assert.True(t, *filter.Completed)
			return []models.Task{{ID: 1, OwnerID: 7}}, nil
		},
	}
	svc := newTestTaskService(repo)

	tasks, err := svc.ListTasks(context.Background(), 7, models.TaskFilter{Completed: &completed})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
}

func TestTaskService_GetTask_NotFoundPassesThrough(t *testing.T) {
	svc := newTestTaskService(&mockTaskRepository{})

	_, err := svc.GetTask(context.Background(), 7, 13)
	require.ErrorIs(t, err, store.ErrTaskNotFound)
}

// ─────────────────────────────────────────────
// UpdateTask / DeleteTask
// ─────────────────────────────────────────────

func TestTaskService_UpdateTask_TrimsProvidedTitle(t *testing.T) {
	repo := &mockTaskRepository{
		updateTaskFn: func(_ context.Context, ownerID, taskID int64, upd models.TaskUpdate) (models.Task, error) {
			require.NotNil(t, upd.Title)
			assert.Equal(t, "renamed", *upd.Title)
			return models.Task{ID: taskID, OwnerID: ownerID, Title: *upd.Title}, nil
		},
	}
	svc := newTestTaskService(repo)

	title := "  renamed  "
	updated, err := svc.UpdateTask(context.Background(), 7, 13, models.TaskUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
}

func TestTaskService_UpdateTask_Validation(t *testing.T) {
	svc := newTestTaskService(&mockTaskRepository{})
	ctx := context.Background()

	emptyTitle := "   "
	_, err := svc.UpdateTask(ctx, 7, 13, models.TaskUpdate{Title: &emptyTitle})
	require.ErrorIs(t, err, ErrValidationEmptyTitle)

	badPriority := models.Priority("critical")
	_, err = svc.UpdateTask(ctx, 7, 13, models.TaskUpdate{Priority: &badPriority})
	require.ErrorIs(t, err, ErrValidationBadPriority)
}

func TestTaskService_UpdateTask_ToggleCompletionOnly(t *testing.T) {
	repo := &mockTaskRepository{
		updateTaskFn: func(_ context.Context, _, taskID int64, upd models.TaskUpdate) (models.Task, error) {
			assert.Nil(t, upd.Title)
			assert.Nil(t, upd.Priority)
			require.NotNil(t, upd.IsCompleted)
			return models.Task{ID: taskID, IsCompleted: *upd.IsCompleted}, nil
		},
	}
	svc := newTestTaskService(repo)

	completed := true
	updated, err := svc.UpdateTask(context.Background(), 7, 13, models.TaskUpdate{IsCompleted: &completed})
	require.NoError(t, err)
	assert.True(t, updated.IsCompleted)
}

func TestTaskService_DeleteTask_NotFoundPassesThrough(t *testing.T) {
	svc := newTestTaskService(&mockTaskRepository{})

	err := svc.DeleteTask(context.Background(), 7, 13)
	require.ErrorIs(t, err, store.ErrTaskNotFound)
}

// ─────────────────────────────────────────────
// Stats
// ─────────────────────────────────────────────

func TestTaskService_Stats_MatchesListDerivedCounts(t *testing.T) {
	now := time.Now().UTC()
	tasks := []models.Task{
		{ID: 1, OwnerID: 7, Title: "a", IsCompleted: true, Priority: models.PriorityUrgent, CreatedAt: now, UpdatedAt: now},
		{ID: 2, OwnerID: 7, Title: "b", Priority: models.PriorityUrgent, CreatedAt: now, UpdatedAt: now},
		{ID: 3, OwnerID: 7, Title: "c", Priority: models.PriorityLow, CreatedAt: now, UpdatedAt: now},
	}
	repo := &mockTaskRepository{
		listTasksFn: func(_ context.Context, ownerID int64, filter models.TaskFilter) ([]models.Task, error) {
			assert.Equal(t, int64(7), ownerID)
			assert.Nil(t, filter.Completed)
			assert.Nil(t, filter.Priority)
			return tasks, nil
		},
	}
	svc := newTestTaskService(repo)

	stats, err := svc.Stats(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, map[models.Priority]int{
		models.PriorityUrgent: 2,
		models.PriorityLow:    1,
	}, stats.ByPriority)
}

func TestTaskService_Stats_EmptyOwner(t *testing.T) {
	svc := newTestTaskService(&mockTaskRepository{})

	stats, err := svc.Stats(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.Completed)
	assert.Equal(t, 0, stats.Pending)
	assert.Empty(t, stats.ByPriority)
}
