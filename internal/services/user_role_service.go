package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sjperalta/debtbook-api/internal/models"
	"github.com/sjperalta/debtbook-api/internal/policy"
	"github.com/sjperalta/debtbook-api/internal/repository"
	"github.com/sjperalta/debtbook-api/internal/validation"
	"github.com/sjperalta/debtbook-api/pkg/logger"
)

// UserRoleService resolves and administers application roles
type UserRoleService struct {
	repo      repository.UserRoleRepository
	validator *validation.Validator
}

func NewUserRoleService(repo repository.UserRoleRepository, validator *validation.Validator) *UserRoleService {
	return &UserRoleService{repo: repo, validator: validator}
}

// EnsureRole returns the role of userID, inserting the default user role
// the first time a user is seen.
func (s *UserRoleService) EnsureRole(ctx context.Context, userID string) (*models.UserRole, error) {
	role, err := s.repo.FindByUserID(ctx, userID)
	if err == nil {
		return role, nil
	}
	if !errors.Is(translate(err), ErrNotFound) {
		return nil, err
	}

	role = &models.UserRole{UserID: userID, Role: models.RoleUser}
	if err := s.repo.Create(ctx, role); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// created concurrently by another request
			return s.repo.FindByUserID(ctx, userID)
		}
		return nil, fmt.Errorf("create default role: %w", err)
	}
	logger.Info("Default role assigned", "user_id", userID)
	return role, nil
}

// List returns role assignments; administrators only
func (s *UserRoleService) List(ctx context.Context, principal policy.Principal, query *repository.ListQuery) ([]models.UserRole, int64, error) {
	if !principal.IsAdmin() {
		return nil, 0, ErrForbidden
	}
	return s.repo.List(ctx, query)
}

// SetRole changes the role of another user
func (s *UserRoleService) SetRole(ctx context.Context, principal policy.Principal, userID, role string) (*models.UserRole, error) {
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}
	role, err := s.validator.Role(role, principal.Locale)
	if err != nil {
		return nil, err
	}

	target, err := s.EnsureRole(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !policy.CanAssignRole(principal, *target, role) {
		return nil, ErrForbidden
	}
	if target.Role == role {
		return target, nil
	}

	if err := s.repo.UpdateRole(ctx, userID, role); err != nil {
		return nil, translate(err)
	}
	logger.Info("Role changed", "user_id", userID, "from", target.Role, "to", role, "by", principal.UserID)
	target.Role = role
	return target, nil
}
