package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialmedia/internal/model"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts the edge and reports whether a row was written. A duplicate
// (follower, followed) pair is not an error; it returns false.
func (r *followRepository) Create(ctx context.Context, tx *sqlx.Tx, f *model.Follow) (bool, error) {
	query := `
		INSERT INTO follows (id, follower_id, followed_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (follower_id, followed_id) DO NOTHING
		RETURNING created_at
	`
	err := tx.QueryRowxContext(ctx, query, f.ID, f.FollowerID, f.FollowedID).Scan(&f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create follow: %w", err)
	}

	return true, nil
}

func (r *followRepository) Delete(ctx context.Context, tx *sqlx.Tx, followerID, followedID uuid.UUID) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`
	result, err := tx.ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrNotFollowing
	}

	return nil
}

func (r *followRepository) Exists(ctx context.Context, tx *sqlx.Tx, followerID, followedID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2)`
	var exists bool
	err := sqlx.GetContext(ctx, r.queryer(tx), &exists, query, followerID, followedID)
	if err != nil {
		return false, fmt.Errorf("failed to check follow existence: %w", err)
	}
	return exists, nil
}

// queryer reads through the transaction when one is open so the check sees
// the same snapshot as the write that follows it.
func (r *followRepository) queryer(tx *sqlx.Tx) sqlx.QueryerContext {
	if tx != nil {
		return tx
	}
	return r.db
}
