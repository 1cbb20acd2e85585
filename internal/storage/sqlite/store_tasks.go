package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sovna/taskhub/internal/storage"
)

// CreateTask inserts a task owned by ownerID. An empty status falls back to
// the default status.
func (s *Store) CreateTask(ctx context.Context, fields storage.NewTask, ownerID int64) (storage.Task, error) {
	if err := ctx.Err(); err != nil {
		return storage.Task{}, err
	}
	if err := s.ensureDB(); err != nil {
		return storage.Task{}, err
	}
	if strings.TrimSpace(fields.Title) == "" {
		return storage.Task{}, fmt.Errorf("title is required")
	}
	if ownerID <= 0 {
		return storage.Task{}, fmt.Errorf("owner id is required")
	}

	status := fields.Status
	if status == "" {
		status = storage.DefaultTaskStatus
	}

	now := time.Now().UTC()
	result, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO tasks (owner_id, title, description, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		ownerID, fields.Title, fields.Description, status, toMillis(now), toMillis(now),
	)
	if err != nil {
		return storage.Task{}, fmt.Errorf("insert task: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return storage.Task{}, fmt.Errorf("task insert id: %w", err)
	}

	return storage.Task{
		ID:          id,
		OwnerID:     ownerID,
		Title:       fields.Title,
		Description: fields.Description,
		Status:      status,
		CreatedAt:   toUserTime(now),
		UpdatedAt:   toUserTime(now),
	}, nil
}

// ListTasks returns every task owned by ownerID, optionally narrowed to an
// exact status match. The filter is case-sensitive equality.
func (s *Store) ListTasks(ctx context.Context, ownerID int64, status string) ([]storage.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ensureDB(); err != nil {
		return nil, err
	}

	query := `SELECT id, owner_id, title, description, status, created_at, updated_at
		FROM tasks WHERE owner_id = ?`
	args := []any{ownerID}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY id`

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []storage.Task{}
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask fetches a task by id regardless of owner. Ownership is the
// caller's check.
func (s *Store) GetTask(ctx context.Context, id int64) (storage.Task, error) {
	if err := ctx.Err(); err != nil {
		return storage.Task{}, err
	}
	if err := s.ensureDB(); err != nil {
		return storage.Task{}, err
	}
	return getTaskExec(ctx, s.sqlDB, id)
}

// UpdateTask applies the non-nil fields of update to the task and returns the
// updated record. The read and write share one transaction so the update is
// atomic per call.
func (s *Store) UpdateTask(ctx context.Context, id int64, update storage.TaskUpdate) (storage.Task, error) {
	if err := ctx.Err(); err != nil {
		return storage.Task{}, err
	}
	if err := s.ensureDB(); err != nil {
		return storage.Task{}, err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return storage.Task{}, fmt.Errorf("start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	task, err := getTaskExec(ctx, tx, id)
	if err != nil {
		return storage.Task{}, err
	}

	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Status != nil {
		task.Status = *update.Status
	}
	task.UpdatedAt = toUserTime(time.Now().UTC())

	if _, err := tx.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, status = ?, updated_at = ? WHERE id = ?`,
		task.Title, task.Description, task.Status, toMillis(task.UpdatedAt), id,
	); err != nil {
		return storage.Task{}, fmt.Errorf("update task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return storage.Task{}, fmt.Errorf("commit task update: %w", err)
	}
	return task, nil
}

// DeleteTask removes a task by id and returns the deleted record.
func (s *Store) DeleteTask(ctx context.Context, id int64) (storage.Task, error) {
	if err := ctx.Err(); err != nil {
		return storage.Task{}, err
	}
	if err := s.ensureDB(); err != nil {
		return storage.Task{}, err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return storage.Task{}, fmt.Errorf("start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	task, err := getTaskExec(ctx, tx, id)
	if err != nil {
		return storage.Task{}, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return storage.Task{}, fmt.Errorf("delete task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return storage.Task{}, fmt.Errorf("commit task delete: %w", err)
	}
	return task, nil
}

type queryRowContexter interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getTaskExec(ctx context.Context, target queryRowContexter, id int64) (storage.Task, error) {
	row := target.QueryRowContext(ctx,
		`SELECT id, owner_id, title, description, status, created_at, updated_at
		FROM tasks WHERE id = ?`,
		id,
	)
	task, err := scanTask(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Task{}, storage.ErrNotFound
		}
		return storage.Task{}, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

func scanTask(scan func(...any) error) (storage.Task, error) {
	var task storage.Task
	var createdAt int64
	var updatedAt int64
	if err := scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&task.Description,
		&task.Status,
		&createdAt,
		&updatedAt,
	); err != nil {
		return storage.Task{}, err
	}
	task.CreatedAt = fromMillis(createdAt)
	task.UpdatedAt = fromMillis(updatedAt)
	return task, nil
}
