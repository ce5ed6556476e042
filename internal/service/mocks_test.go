package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialmedia/internal/model"
	"socialmedia/internal/queue"
)

// =============================================================================
// MOCKS
// =============================================================================
//
// Services depend on repository interfaces, so tests swap in structs whose
// behavior is set per test through function fields.

type mockUserRepository struct {
	createFn                func(ctx context.Context, user *model.User) error
	getByIDFn               func(ctx context.Context, id uuid.UUID) (*model.User, error)
	getByUsernameFn         func(ctx context.Context, username string) (*model.User, error)
	findByUsernameOrEmailFn func(ctx context.Context, username, email string) (*model.User, error)
	getByCredentialsFn      func(ctx context.Context, username, email string) (*model.User, error)
	deleteFn                func(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error

	createCalls []*model.User
	deleteCalls []uuid.UUID
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls = append(m.createCalls, user)
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	if m.findByUsernameOrEmailFn != nil {
		return m.findByUsernameOrEmailFn(ctx, username, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByCredentials(ctx context.Context, username, email string) (*model.User, error) {
	if m.getByCredentialsFn != nil {
		return m.getByCredentialsFn(ctx, username, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) Delete(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error {
	m.deleteCalls = append(m.deleteCalls, id)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, tx, id)
	}
	return nil
}

type mockFollowRepository struct {
	createFn func(ctx context.Context, tx *sqlx.Tx, follow *model.Follow) (bool, error)
	deleteFn func(ctx context.Context, tx *sqlx.Tx, followerID, followedID uuid.UUID) error
	existsFn func(ctx context.Context, tx *sqlx.Tx, followerID, followedID uuid.UUID) (bool, error)

	createCalls []*model.Follow
}

func (m *mockFollowRepository) Create(ctx context.Context, tx *sqlx.Tx, follow *model.Follow) (bool, error) {
	m.createCalls = append(m.createCalls, follow)
	if m.createFn != nil {
		return m.createFn(ctx, tx, follow)
	}
	return true, nil
}

func (m *mockFollowRepository) Delete(ctx context.Context, tx *sqlx.Tx, followerID, followedID uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, tx, followerID, followedID)
	}
	return nil
}

func (m *mockFollowRepository) Exists(ctx context.Context, tx *sqlx.Tx, followerID, followedID uuid.UUID) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, tx, followerID, followedID)
	}
	return false, nil
}

// fakeTransactor runs fn without a real transaction.
type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithinTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	f.calls++
	return fn(nil)
}

type mockPublisher struct {
	publishFn func(ctx context.Context, stream string, event queue.Event) (string, error)
	events    []queue.Event
}

func (m *mockPublisher) Publish(ctx context.Context, stream string, event queue.Event) (string, error) {
	m.events = append(m.events, event)
	if m.publishFn != nil {
		return m.publishFn(ctx, stream, event)
	}
	return "1-0", nil
}
