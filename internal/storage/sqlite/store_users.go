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

// CreateUser inserts an account record and returns it with its assigned id.
// Unique violations on username or email surface as the storage sentinels.
func (s *Store) CreateUser(ctx context.Context, username, email, passwordHash string) (storage.User, error) {
	if err := ctx.Err(); err != nil {
		return storage.User{}, err
	}
	if err := s.ensureDB(); err != nil {
		return storage.User{}, err
	}
	if strings.TrimSpace(username) == "" {
		return storage.User{}, fmt.Errorf("username is required")
	}
	if strings.TrimSpace(email) == "" {
		return storage.User{}, fmt.Errorf("email is required")
	}
	if passwordHash == "" {
		return storage.User{}, fmt.Errorf("password hash is required")
	}

	now := time.Now().UTC()
	result, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO users (username, email, hashed_password, created_at)
		VALUES (?, ?, ?, ?)`,
		username, email, passwordHash, toMillis(now),
	)
	if err != nil {
		if isUniqueViolation(err) {
			if classified := classifyUniqueViolation(err); classified != nil {
				return storage.User{}, classified
			}
		}
		return storage.User{}, fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return storage.User{}, fmt.Errorf("user insert id: %w", err)
	}

	return storage.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    toUserTime(now),
	}, nil
}

// GetUserByUsername fetches an account by its unique username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (storage.User, error) {
	return s.getUserBy(ctx, "username", username)
}

// GetUserByEmail fetches an account by its unique email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (storage.User, error) {
	return s.getUserBy(ctx, "email", email)
}

func (s *Store) getUserBy(ctx context.Context, column, value string) (storage.User, error) {
	if err := ctx.Err(); err != nil {
		return storage.User{}, err
	}
	if err := s.ensureDB(); err != nil {
		return storage.User{}, err
	}
	if strings.TrimSpace(value) == "" {
		return storage.User{}, fmt.Errorf("%s is required", column)
	}

	var u storage.User
	var createdAt int64
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, username, email, hashed_password, created_at
		FROM users WHERE `+column+` = ?`,
		value,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.User{}, storage.ErrNotFound
		}
		return storage.User{}, fmt.Errorf("get user by %s: %w", column, err)
	}
	u.CreatedAt = fromMillis(createdAt)
	return u, nil
}

// toUserTime truncates to the millisecond precision the store persists, so a
// freshly created record equals its re-read form.
func toUserTime(value time.Time) time.Time {
	return fromMillis(toMillis(value))
}
