package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialmedia/internal/database"
	"socialmedia/internal/model"
	"socialmedia/internal/queue"
	"socialmedia/internal/repository"
)

// UserService handles business logic for account operations
type UserService struct {
	repo      repository.UserRepository
	tx        database.Transactor
	publisher queue.Publisher
	hashCost  int
}

func NewUserService(repo repository.UserRepository, tx database.Transactor, publisher queue.Publisher) *UserService {
	return &UserService{
		repo:      repo,
		tx:        tx,
		publisher: publisher,
	}
}

// SetHashCost overrides the bcrypt cost. Zero keeps the library default.
func (s *UserService) SetHashCost(cost int) {
	s.hashCost = cost
}

// Register creates a new account. A taken email is reported before a taken
// username.
func (s *UserService) Register(ctx context.Context, req *model.SignupRequest) (*model.AccountView, error) {
	existing, err := s.repo.FindByUsernameOrEmail(ctx, req.Username, req.Email)
	switch {
	case err == nil:
		if existing.Email == req.Email {
			return nil, model.ErrEmailTaken
		}
		return nil, model.ErrUsernameTaken
	case !errors.Is(err, model.ErrUserNotFound):
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	hash, err := HashPassword(req.Password, s.hashCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrEmailTaken) || errors.Is(err, model.ErrUsernameTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	publishEvent(ctx, s.publisher, queue.NewUserRegisteredEvent(user.ID))

	return user.View(), nil
}

// Authenticate checks username, email and password together. Every failure
// is reported as model.ErrUserNotFound so callers cannot tell which part was
// wrong.
func (s *UserService) Authenticate(ctx context.Context, req *model.LoginRequest) (*model.AccountView, error) {
	user, err := s.repo.GetByCredentials(ctx, req.Username, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	if !CheckPassword(user.PasswordHash, req.Password) {
		return nil, model.ErrUserNotFound
	}

	return user.View(), nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*model.AccountView, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.View(), nil
}

// Delete removes the account and everything it owns in one transaction.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(tx *sqlx.Tx) error {
		return s.repo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	publishEvent(ctx, s.publisher, queue.NewUserDeletedEvent(id))
	return nil
}
