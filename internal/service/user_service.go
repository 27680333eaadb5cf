package service

import (
	"context"

	"github.com/gravitational/trace"

	"hostvault/internal/domain"
)

type UserService struct {
	userRepo UserStore
	cascade  CascadeStore
}

func NewUserService(userRepo UserStore, cascade CascadeStore) *UserService {
	return &UserService{
		userRepo: userRepo,
		cascade:  cascade,
	}
}

func (s *UserService) Create(ctx context.Context, requesterID, id, name string, isAdmin bool) (*domain.User, error) {
	if err := requireAdmin(ctx, s.userRepo, requesterID); err != nil {
		return nil, trace.Wrap(err)
	}

	if id == "" {
		return nil, trace.BadParameter("user id is required")
	}

	user := &domain.User{
		ID:      id,
		Name:    name,
		IsAdmin: isAdmin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, trace.Wrap(err)
	}

	return user, nil
}

func (s *UserService) List(ctx context.Context, requesterID string) ([]domain.User, error) {
	if err := requireAdmin(ctx, s.userRepo, requesterID); err != nil {
		return nil, trace.Wrap(err)
	}
	return s.userRepo.List(ctx)
}

// Delete removes a user and, through the cascade, every share naming them as
// recipient or owner.
func (s *UserService) Delete(ctx context.Context, requesterID, userID string) error {
	if err := requireAdmin(ctx, s.userRepo, requesterID); err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(s.cascade.OnUserDeleted(ctx, userID))
}
