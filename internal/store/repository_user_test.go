package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"

	"github.com/avkhasev/tasktrack/internal/logger"
	"github.com/avkhasev/tasktrack/models"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db: &DB{
			DB:      db,
			builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
			logger:  l,
		},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRows(user models.User) *sqlmock.Rows {
	return sqlmock.
		NewRows(userColumns).
		AddRow(user.ID, user.Username, user.Email, user.PasswordHash,
			user.FullName, user.JobTitle, user.Bio, user.Website, user.AvatarPath,
			user.CreatedAt)
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		Username:     "john",
		Email:        "john@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}

	rows := sqlmock.NewRows([]string{"id"}).AddRow(1)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Username, user.Email, user.PasswordHash, user.CreatedAt).
		WillReturnRows(rows)

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected ID=1, got %d", created.ID)
	}
	if created.Username != user.Username {
		t.Errorf("expected username %s, got %s", user.Username, created.Username)
	}
}

func TestCreateUser_UniqueViolationPostgres(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Username: "john"}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(ctx, user)
	if !errors.Is(err, ErrDuplicateIdentity) {
		t.Fatalf("expected ErrDuplicateIdentity, got %v", err)
	}
}

func TestCreateUser_UniqueViolationSQLite(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Username: "john"}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(sqlite3.Error{
			Code:         sqlite3.ErrConstraint,
			ExtendedCode: sqlite3.ErrConstraintUnique,
		})

	_, err := repo.CreateUser(ctx, user)
	if !errors.Is(err, ErrDuplicateIdentity) {
		t.Fatalf("expected ErrDuplicateIdentity, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Username: "john"}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(ctx, user)
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestFindUserByUsername_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	stored := models.User{
		ID:           1,
		Username:     "john",
		Email:        "john@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}

	mock.ExpectQuery("SELECT id, username").
		WithArgs("john").
		WillReturnRows(userRows(stored))

	found, err := repo.FindUserByUsername(ctx, "john")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Username != "john" {
		t.Errorf("expected username john, got %s", found.Username)
	}
	if found.PasswordHash != "hash" {
		t.Errorf("expected stored password hash, got %q", found.PasswordHash)
	}
}

func TestFindUserByUsername_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT id, username").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByUsername(ctx, "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFindUserByID_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT id, username").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByID(ctx, 99)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateProfile_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	fullName := "John Doe"

	mock.ExpectExec("UPDATE users").
		WithArgs(fullName, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	refreshed := models.User{ID: 1, Username: "john", Email: "john@example.com", FullName: fullName, CreatedAt: time.Now().UTC()}
	mock.ExpectQuery("SELECT id, username").
		WithArgs(int64(1)).
		WillReturnRows(userRows(refreshed))

	updated, err := repo.UpdateProfile(ctx, 1, models.ProfileUpdate{FullName: &fullName})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.FullName != fullName {
		t.Errorf("expected full name %q, got %q", fullName, updated.FullName)
	}
}

func TestUpdateProfile_EmptyUpdateIsRead(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	stored := models.User{ID: 1, Username: "john", Email: "john@example.com", CreatedAt: time.Now().UTC()}

	// no UPDATE is issued, only the read-back
	mock.ExpectQuery("SELECT id, username").
		WithArgs(int64(1)).
		WillReturnRows(userRows(stored))

	got, err := repo.UpdateProfile(ctx, 1, models.ProfileUpdate{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 1 {
		t.Errorf("expected ID=1, got %d", got.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestUpdateProfile_UserNotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	bio := "gardener"

	mock.ExpectExec("UPDATE users").
		WithArgs(bio, int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.UpdateProfile(ctx, 99, models.ProfileUpdate{Bio: &bio})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSetAvatarPath_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	path := "avatars/4ab0.png"

	mock.ExpectExec("UPDATE users").
		WithArgs(path, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	refreshed := models.User{ID: 1, Username: "john", Email: "john@example.com", AvatarPath: path, CreatedAt: time.Now().UTC()}
	mock.ExpectQuery("SELECT id, username").
		WithArgs(int64(1)).
		WillReturnRows(userRows(refreshed))

	updated, err := repo.SetAvatarPath(ctx, 1, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.AvatarPath != path {
		t.Errorf("expected avatar path %q, got %q", path, updated.AvatarPath)
	}
}
