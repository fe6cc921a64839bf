package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/avkhasev/tasktrack/models"
)

// Column lists shared by the query builders and the row scanners.
// Order matters: every scan site relies on it.
var (
	userColumns = []string{
		"id", "username", "email", "password_hash",
		"full_name", "job_title", "bio", "website", "avatar_path",
		"created_at",
	}

	taskColumns = []string{
		"id", "user_id", "title", "description", "is_completed",
		"priority", "category", "due_date", "created_at", "updated_at",
	}
)

func (db *DB) buildCreateUserQuery(user models.User) (string, []any, error) {
	return db.builder.
		Insert(user.TableName()).
		Columns("username", "email", "password_hash", "created_at").
		Values(user.Username, user.Email, user.PasswordHash, user.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
}

func (db *DB) buildFindUserByUsernameQuery(username string) (string, []any, error) {
	return db.builder.
		Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"username": username}).
		ToSql()
}

func (db *DB) buildFindUserByIDQuery(userID int64) (string, []any, error) {
	return db.builder.
		Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

// buildUpdateProfileQuery produces an UPDATE statement touching only the
// profile fields present in upd. Identity columns and the password hash are
// structurally unreachable from this builder.
func (db *DB) buildUpdateProfileQuery(userID int64, upd models.ProfileUpdate) (string, []any, error) {
	builder := db.builder.
		Update(models.User{}.TableName()).
		Where(sq.Eq{"id": userID})

	if upd.FullName != nil {
		builder = builder.Set("full_name", *upd.FullName)
	}
	if upd.JobTitle != nil {
		builder = builder.Set("job_title", *upd.JobTitle)
	}
	if upd.Bio != nil {
		builder = builder.Set("bio", *upd.Bio)
	}
	if upd.Website != nil {
		builder = builder.Set("website", *upd.Website)
	}

	return builder.ToSql()
}

func (db *DB) buildSetAvatarPathQuery(userID int64, avatarPath string) (string, []any, error) {
	return db.builder.
		Update(models.User{}.TableName()).
		Set("avatar_path", avatarPath).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

func (db *DB) buildCreateTaskQuery(task models.Task) (string, []any, error) {
	return db.builder.
		Insert(task.TableName()).
		Columns("user_id", "title", "description", "is_completed",
			"priority", "category", "due_date", "created_at", "updated_at").
		Values(task.OwnerID, task.Title, task.Description, task.IsCompleted,
			task.Priority, task.Category, task.DueDate, task.CreatedAt, task.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
}

// buildListTasksQuery selects every task owned by ownerID, optionally
// narrowed by the filter, in insertion order (id ascending).
func (db *DB) buildListTasksQuery(ownerID int64, filter models.TaskFilter) (string, []any, error) {
	builder := db.builder.
		Select(taskColumns...).
		From(models.Task{}.TableName()).
		Where(sq.Eq{"user_id": ownerID})

	if filter.Completed != nil {
		builder = builder.Where(sq.Eq{"is_completed": *filter.Completed})
	}
	if filter.Priority != nil {
		builder = builder.Where(sq.Eq{"priority": *filter.Priority})
	}

	return builder.OrderBy("id ASC").ToSql()
}

func (db *DB) buildGetTaskQuery(ownerID, taskID int64) (string, []any, error) {
	return db.builder.
		Select(taskColumns...).
		From(models.Task{}.TableName()).
		Where(sq.Eq{"id": taskID, "user_id": ownerID}).
		ToSql()
}

// buildUpdateTaskQuery produces a partial UPDATE touching only the fields
// present in upd, always advancing updated_at. The WHERE clause carries both
// the task id and the owner id, so a foreign task is indistinguishable from
// a missing one (zero rows affected in both cases).
func (db *DB) buildUpdateTaskQuery(ownerID, taskID int64, upd models.TaskUpdate, now time.Time) (string, []any, error) {
	builder := db.builder.
		Update(models.Task{}.TableName()).
		Set("updated_at", now).
		Where(sq.Eq{"id": taskID, "user_id": ownerID})

	if upd.Title != nil {
		builder = builder.Set("title", *upd.Title)
	}
	if upd.Description != nil {
		builder = builder.Set("description", *upd.Description)
	}
	if upd.IsCompleted != nil {
		builder = builder.Set("is_completed", *upd.IsCompleted)
	}
	if upd.Priority != nil {
		builder = builder.Set("priority", *upd.Priority)
	}
	if upd.Category != nil {
		builder = builder.Set("category", *upd.Category)
	}
	if upd.DueDate != nil {
		builder = builder.Set("due_date", *upd.DueDate)
	}

	return builder.ToSql()
}

func (db *DB) buildDeleteTaskQuery(ownerID, taskID int64) (string, []any, error) {
	return db.builder.
		Delete(models.Task{}.TableName()).
		Where(sq.Eq{"id": taskID, "user_id": ownerID}).
		ToSql()
}
