package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialmedia/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// FindByUsernameOrEmail returns the first user owning either value, or
	// model.ErrUserNotFound. A row whose username matches is preferred.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error)
	GetByCredentials(ctx context.Context, username, email string) (*model.User, error)
	Delete(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error
}

type FollowRepository interface {
	Create(ctx context.Context, tx *sqlx.Tx, follow *model.Follow) (bool, error)
	Delete(ctx context.Context, tx *sqlx.Tx, followerID, followedID uuid.UUID) error
	Exists(ctx context.Context, tx *sqlx.Tx, followerID, followedID uuid.UUID) (bool, error)
}
