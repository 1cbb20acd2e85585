// Package storage defines persistence contracts for users and tasks.
package storage

import (
	"context"
	"time"

	"github.com/sovna/taskhub/internal/platform/errors"
)

// DefaultTaskStatus is assigned to tasks created without an explicit status.
const DefaultTaskStatus = "Pending"

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New(errors.CodeNotFound, "record not found")
	// ErrUsernameTaken indicates the username uniqueness constraint rejected an insert.
	ErrUsernameTaken = errors.New(errors.CodeUsernameTaken, "username already exists")
	// ErrEmailTaken indicates the email uniqueness constraint rejected an insert.
	ErrEmailTaken = errors.New(errors.CodeEmailTaken, "email already registered")
)

// User is a registered account. PasswordHash is opaque to everything but
// the credential hasher and never leaves the process.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Task is a tracked work item owned by exactly one user.
type Task struct {
	ID          int64
	OwnerID     int64
	Title       string
	Description string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTask describes the fields accepted when creating a task.
type NewTask struct {
	Title       string
	Description string
	Status      string
}

// TaskUpdate is a partial update. Nil fields are left untouched,
// distinguishing "not provided" from "provided as empty".
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *string
}

// UserStore persists account records. Uniqueness of username and email is
// enforced by the store; callers may pre-check for a friendlier error but
// must treat the constraint as the real guarantee.
type UserStore interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
}

// TaskStore persists task records. GetTask, UpdateTask and DeleteTask are
// deliberately not owner-scoped; ownership is the caller's check.
type TaskStore interface {
	CreateTask(ctx context.Context, fields NewTask, ownerID int64) (Task, error)
	ListTasks(ctx context.Context, ownerID int64, status string) ([]Task, error)
	GetTask(ctx context.Context, id int64) (Task, error)
	UpdateTask(ctx context.Context, id int64, update TaskUpdate) (Task, error)
	DeleteTask(ctx context.Context, id int64) (Task, error)
}

// Store is the full persistence surface the API depends on.
type Store interface {
	UserStore
	TaskStore
}
