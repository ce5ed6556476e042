package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Follow is a directed edge from follower to followed.
type Follow struct {
	ID         uuid.UUID `db:"id" json:"id"`
	FollowerID uuid.UUID `db:"follower_id" json:"follower_id"`
	FollowedID uuid.UUID `db:"followed_id" json:"followed_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

var (
	ErrAlreadyFollowing   = errors.New("already following this user")
	ErrNotFollowing       = errors.New("not following this user")
	ErrCannotFollowSelf   = errors.New("cannot follow yourself")
	ErrCannotUnfollowSelf = errors.New("cannot unfollow yourself")
)
