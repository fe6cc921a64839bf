package models

import "time"

// Task represents a single owned work item.
// Every task belongs to exactly one user; the owner is set at creation
// and never changes afterwards.
type Task struct {
	// ID is the internal unique identifier of the task.
	ID int64 `json:"id"`

	// OwnerID references the user who owns this task. All repository
	// operations are scoped by this field; a task is never visible to
	// anyone but its owner.
	OwnerID int64 `json:"owner_id"`

	// Title is the non-empty, trimmed display text of the task.
	Title string `json:"title"`

	// Description is an optional longer text.
	Description string `json:"description,omitempty"`

	// IsCompleted is the completion flag. New tasks start as false.
	IsCompleted bool `json:"is_completed"`

	// Priority is one of the closed set of priority levels.
	Priority Priority `json:"priority"`

	// Category is an optional free-form label.
	Category string `json:"category,omitempty"`

	// DueDate is an optional deadline. Nil means no deadline.
	DueDate *time.Time `json:"due_date,omitempty"`

	// CreatedAt is the timestamp when the task was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last modification.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Task model.
func (t Task) TableName() string {
	return "tasks"
}

// TaskUpdate describes a partial update of a single task.
// Only non-nil fields are applied (PATCH semantics); toggling completion
// is just one case of a partial update, not a separate operation.
type TaskUpdate struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	IsCompleted *bool      `json:"is_completed,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	Category    *string    `json:"category,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Empty reports whether the update carries no fields at all.
func (u TaskUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.IsCompleted == nil &&
		u.Priority == nil && u.Category == nil && u.DueDate == nil
}

// TaskFilter narrows a task listing. Nil fields match everything.
type TaskFilter struct {
	// Completed filters by completion state when non-nil.
	Completed *bool

	// Priority filters by a single priority level when non-nil.
	Priority *Priority
}

// TaskStats is the read-side aggregate over a single user's tasks.
// It is recomputed from the repository on every request and carries
// no state of its own.
type TaskStats struct {
	Total      int              `json:"total"`
	Completed  int              `json:"completed"`
	Pending    int              `json:"pending"`
	ByPriority map[Priority]int `json:"by_priority"`
}
