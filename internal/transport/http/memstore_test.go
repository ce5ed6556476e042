package http

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialmedia/internal/model"
)

// memStore backs both repositories in router tests. It enforces the same
// uniqueness and cascade rules as the schema.
type memStore struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*model.User
	follows map[[2]uuid.UUID]*model.Follow
}

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[uuid.UUID]*model.User),
		follows: make(map[[2]uuid.UUID]*model.Follow),
	}
}

type memUserRepo struct{ s *memStore }

type memFollowRepo struct{ s *memStore }

type memTransactor struct{}

func (memTransactor) WithinTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}

func clone(u *model.User) *model.User {
	c := *u
	return &c
}

func (r memUserRepo) Create(ctx context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return model.ErrEmailTaken
		}
		if u.Username == user.Username {
			return model.ErrUsernameTaken
		}
	}
	user.CreatedAt = time.Now().UTC()
	r.s.users[user.ID] = clone(user)
	return nil
}

func (r memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if u, ok := r.s.users[id]; ok {
		return clone(u), nil
	}
	return nil, model.ErrUserNotFound
}

func (r memUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == username {
			return clone(u), nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (r memUserRepo) FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var byEmail *model.User
	for _, u := range r.s.users {
		if u.Username == username {
			return clone(u), nil
		}
		if u.Email == email {
			byEmail = u
		}
	}
	if byEmail != nil {
		return clone(byEmail), nil
	}
	return nil, model.ErrUserNotFound
}

func (r memUserRepo) GetByCredentials(ctx context.Context, username, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == username && u.Email == email {
			return clone(u), nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (r memUserRepo) Delete(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return model.ErrUserNotFound
	}
	for key := range r.s.follows {
		if key[0] == id || key[1] == id {
			delete(r.s.follows, key)
		}
	}
	delete(r.s.users, id)
	return nil
}

func (r memFollowRepo) Create(ctx context.Context, tx *sqlx.Tx, follow *model.Follow) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := [2]uuid.UUID{follow.FollowerID, follow.FollowedID}
	if _, ok := r.s.follows[key]; ok {
		return false, nil
	}
	follow.CreatedAt = time.Now().UTC()
	c := *follow
	r.s.follows[key] = &c
	return true, nil
}

func (r memFollowRepo) Delete(ctx context.Context, tx *sqlx.Tx, followerID, followedID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := [2]uuid.UUID{followerID, followedID}
	if _, ok := r.s.follows[key]; !ok {
		return model.ErrNotFollowing
	}
	delete(r.s.follows, key)
	return nil
}

func (r memFollowRepo) Exists(ctx context.Context, tx *sqlx.Tx, followerID, followedID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	_, ok := r.s.follows[[2]uuid.UUID{followerID, followedID}]
	return ok, nil
}

func (s *memStore) followCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.follows)
}
