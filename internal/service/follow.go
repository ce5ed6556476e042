package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialmedia/internal/database"
	"socialmedia/internal/model"
	"socialmedia/internal/queue"
	"socialmedia/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	tx         database.Transactor
	publisher  queue.Publisher
}

func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	tx database.Transactor,
	publisher queue.Publisher,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		tx:         tx,
		publisher:  publisher,
	}
}

// Follow creates the edge current -> targetUsername.
func (s *FollowService) Follow(ctx context.Context, current *model.AccountView, targetUsername string) (*model.Follow, error) {
	target, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}

	if target.ID == current.ID {
		return nil, model.ErrCannotFollowSelf
	}

	follow := &model.Follow{
		ID:         uuid.New(),
		FollowerID: current.ID,
		FollowedID: target.ID,
	}

	err = s.tx.WithinTx(ctx, func(tx *sqlx.Tx) error {
		exists, err := s.followRepo.Exists(ctx, tx, current.ID, target.ID)
		if err != nil {
			return fmt.Errorf("failed to check follow: %w", err)
		}
		if exists {
			return model.ErrAlreadyFollowing
		}

		// The unique constraint still decides when two requests race.
		inserted, err := s.followRepo.Create(ctx, tx, follow)
		if err != nil {
			return err
		}
		if !inserted {
			return model.ErrAlreadyFollowing
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.publisher, queue.NewUserFollowedEvent(current.ID, target.ID))

	return follow, nil
}

// Unfollow removes the edge current -> targetUsername.
func (s *FollowService) Unfollow(ctx context.Context, current *model.AccountView, targetUsername string) error {
	target, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return err
	}

	if target.ID == current.ID {
		return model.ErrCannotUnfollowSelf
	}

	err = s.tx.WithinTx(ctx, func(tx *sqlx.Tx) error {
		return s.followRepo.Delete(ctx, tx, current.ID, target.ID)
	})
	if err != nil {
		return err
	}

	publishEvent(ctx, s.publisher, queue.NewUserUnfollowedEvent(current.ID, target.ID))
	return nil
}
