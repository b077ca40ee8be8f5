package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/garmentworks/pattern-tracker/internal/core/domain"
	"github.com/garmentworks/pattern-tracker/internal/core/ports"
)

// UserService implements admin-only user management.
type UserService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) List(ctx context.Context, actor *domain.User) ([]*domain.User, error) {
	if !actor.Role.Can(domain.ActionManageUsers) {
		return nil, domain.ErrForbidden
	}
	return s.users.List(ctx)
}

func (s *UserService) ChangeRole(ctx context.Context, actor *domain.User, userID string, role domain.Role) (*domain.User, error) {
	if !actor.Role.Can(domain.ActionManageUsers) {
		return nil, domain.ErrForbidden
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", userID).Str("role", string(role)).Msg("role changed")
	return s.users.FindByID(ctx, userID)
}

func (s *UserService) Approve(ctx context.Context, actor *domain.User, userID string) (*domain.User, error) {
	if !actor.Role.Can(domain.ActionManageUsers) {
		return nil, domain.ErrForbidden
	}
	if err := s.users.SetApproved(ctx, userID, true); err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", userID).Msg("user approved")
	return s.users.FindByID(ctx, userID)
}

func (s *UserService) ToggleActive(ctx context.Context, actor *domain.User, userID string) (*domain.User, error) {
	if !actor.Role.Can(domain.ActionManageUsers) {
		return nil, domain.ErrForbidden
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.users.SetActive(ctx, userID, !user.IsActive); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, userID)
}

func (s *UserService) Delete(ctx context.Context, actor *domain.User, userID string) error {
	if !actor.Role.Can(domain.ActionManageUsers) {
		return domain.ErrForbidden
	}
	if userID == actor.ID {
		return domain.ErrSelfDeletion
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID).Msg("user deleted")
	return nil
}
