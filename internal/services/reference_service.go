package services

import (
	"context"
	"fmt"

	"github.com/sjperalta/debtbook-api/internal/config"
	"github.com/sjperalta/debtbook-api/internal/models"
	"github.com/sjperalta/debtbook-api/internal/policy"
	"github.com/sjperalta/debtbook-api/internal/repository"
	"github.com/sjperalta/debtbook-api/internal/validation"
)

// ReferenceInput creates or renames a category or bank
type ReferenceInput struct {
	Name     string `json:"name"`
	IsSystem bool   `json:"is_system"`
}

// ReferenceService manages categories and banks. Both are gated by their
// feature flag and every change goes through policy.CanManage.
type ReferenceService struct {
	categories repository.CategoryRepository
	banks      repository.BankRepository
	validator  *validation.Validator
	features   config.EnabledFeatures
}

func NewReferenceService(
	categories repository.CategoryRepository,
	banks repository.BankRepository,
	validator *validation.Validator,
) *ReferenceService {
	return &ReferenceService{
		categories: categories,
		banks:      banks,
		validator:  validator,
		features:   validator.Settings().EnabledFeatures,
	}
}

func (s *ReferenceService) ListCategories(ctx context.Context, principal policy.Principal) ([]models.Category, error) {
	if !s.features.Categories {
		return nil, ErrFeatureDisabled
	}
	return s.categories.ListVisible(ctx, principal.UserID)
}

func (s *ReferenceService) CreateCategory(ctx context.Context, principal policy.Principal, input ReferenceInput) (*models.Category, error) {
	if !s.features.Categories {
		return nil, ErrFeatureDisabled
	}
	name, owner, err := s.prepare(principal, input)
	if err != nil {
		return nil, err
	}
	category := &models.Category{Name: name, IsSystem: input.IsSystem, UserID: owner}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", translate(err))
	}
	return category, nil
}

func (s *ReferenceService) RenameCategory(ctx context.Context, principal policy.Principal, id string, input ReferenceInput) (*models.Category, error) {
	if !s.features.Categories {
		return nil, ErrFeatureDisabled
	}
	name, err := s.validator.ReferenceName(input.Name, principal.Locale)
	if err != nil {
		return nil, err
	}
	category, err := authorize(ctx, principal, id, s.categories.FindByID)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Rename(ctx, id, name); err != nil {
		return nil, translate(err)
	}
	category.Name = name
	return category, nil
}

func (s *ReferenceService) DeleteCategory(ctx context.Context, principal policy.Principal, id string) error {
	if !s.features.Categories {
		return ErrFeatureDisabled
	}
	if _, err := authorize(ctx, principal, id, s.categories.FindByID); err != nil {
		return err
	}
	return translate(s.categories.Delete(ctx, id))
}

func (s *ReferenceService) ListBanks(ctx context.Context, principal policy.Principal) ([]models.Bank, error) {
	if !s.features.Banks {
		return nil, ErrFeatureDisabled
	}
	return s.banks.ListVisible(ctx, principal.UserID)
}

func (s *ReferenceService) CreateBank(ctx context.Context, principal policy.Principal, input ReferenceInput) (*models.Bank, error) {
	if !s.features.Banks {
		return nil, ErrFeatureDisabled
	}
	name, owner, err := s.prepare(principal, input)
	if err != nil {
		return nil, err
	}
	bank := &models.Bank{Name: name, IsSystem: input.IsSystem, UserID: owner}
	if err := s.banks.Create(ctx, bank); err != nil {
		return nil, fmt.Errorf("create bank: %w", translate(err))
	}
	return bank, nil
}

func (s *ReferenceService) RenameBank(ctx context.Context, principal policy.Principal, id string, input ReferenceInput) (*models.Bank, error) {
	if !s.features.Banks {
		return nil, ErrFeatureDisabled
	}
	name, err := s.validator.ReferenceName(input.Name, principal.Locale)
	if err != nil {
		return nil, err
	}
	bank, err := authorize(ctx, principal, id, s.banks.FindByID)
	if err != nil {
		return nil, err
	}
	if err := s.banks.Rename(ctx, id, name); err != nil {
		return nil, translate(err)
	}
	bank.Name = name
	return bank, nil
}

func (s *ReferenceService) DeleteBank(ctx context.Context, principal policy.Principal, id string) error {
	if !s.features.Banks {
		return ErrFeatureDisabled
	}
	if _, err := authorize(ctx, principal, id, s.banks.FindByID); err != nil {
		return err
	}
	return translate(s.banks.Delete(ctx, id))
}

// prepare validates the name and decides the owner. System rows have no owner
// and may only be created by administrators.
func (s *ReferenceService) prepare(principal policy.Principal, input ReferenceInput) (string, *string, error) {
	name, err := s.validator.ReferenceName(input.Name, principal.Locale)
	if err != nil {
		return "", nil, err
	}
	if input.IsSystem {
		if !policy.CanCreateSystem(principal) {
			return "", nil, ErrForbidden
		}
		return name, nil, nil
	}
	owner := principal.UserID
	return name, &owner, nil
}

// authorize loads a row and checks that principal may manage it
func authorize[T policy.Resource](ctx context.Context, principal policy.Principal, id string, find func(context.Context, string) (T, error)) (T, error) {
	var zero T
	row, err := find(ctx, id)
	if err != nil {
		return zero, translate(err)
	}
	if !policy.CanManage(principal, row) {
		return zero, ErrForbidden
	}
	return row, nil
}
