package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"socialmedia/internal/model"
)

const (
	uniqueViolation = pq.ErrorCode("23505")

	constraintUsername = "uq_users_username"
	constraintEmail    = "uq_users_email"
)

// userRepository implements UserRepository using sqlx
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user. The caller assigns the ID; the database assigns
// created_at.
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.db.QueryRowxContext(ctx, query, u.ID, u.Username, u.Email, u.PasswordHash).Scan(&u.CreatedAt)
	if err != nil {
		// Lost a race with a concurrent signup; the schema constraint wins.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			switch pqErr.Constraint {
			case constraintEmail:
				return model.ErrEmailTaken
			case constraintUsername:
				return model.ErrUsernameTaken
			}
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`
	return r.getOne(ctx, "get user by id", query, id)
}

// GetByUsername retrieves a user by their username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE username = $1
	`
	return r.getOne(ctx, "get user by username", query, username)
}

func (r *userRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE email = $1 OR username = $2
		ORDER BY (username = $2) DESC
		LIMIT 1
	`
	return r.getOne(ctx, "find user by username or email", query, email, username)
}

// GetByCredentials matches username and email exactly (case-sensitive).
func (r *userRepository) GetByCredentials(ctx context.Context, username, email string) (*model.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE username = $1 AND email = $2
	`
	return r.getOne(ctx, "get user by credentials", query, username, email)
}

// Delete removes the user together with everything the user owns or that
// points at it. Statements run leaves first so the delete does not depend on
// ON DELETE CASCADE being present.
func (r *userRepository) Delete(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error {
	cascade := []struct {
		table string
		query string
	}{
		{"comment_likes", `
			DELETE FROM comment_likes
			WHERE user_id = $1
			   OR comment_id IN (
				SELECT c.id FROM comments c
				LEFT JOIN posts p ON p.id = c.post_id
				WHERE c.user_id = $1 OR p.owner_id = $1
			   )`},
		{"post_likes", `
			DELETE FROM post_likes
			WHERE user_id = $1
			   OR post_id IN (SELECT id FROM posts WHERE owner_id = $1)`},
		{"comments", `
			DELETE FROM comments
			WHERE user_id = $1
			   OR post_id IN (SELECT id FROM posts WHERE owner_id = $1)`},
		{"posts", `DELETE FROM posts WHERE owner_id = $1`},
		{"follows", `DELETE FROM follows WHERE follower_id = $1 OR followed_id = $1`},
	}

	for _, step := range cascade {
		if _, err := tx.ExecContext(ctx, step.query, id); err != nil {
			return fmt.Errorf("failed to delete %s for user: %w", step.table, err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) getOne(ctx context.Context, op, query string, args ...interface{}) (*model.User, error) {
	var u model.User
	err := r.db.GetContext(ctx, &u, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}

	return &u, nil
}
