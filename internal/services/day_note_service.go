package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sjperalta/debtbook-api/internal/models"
	"github.com/sjperalta/debtbook-api/internal/policy"
	"github.com/sjperalta/debtbook-api/internal/repository"
	"github.com/sjperalta/debtbook-api/internal/validation"
)

// DayNoteService manages free-text notes attached to calendar days
type DayNoteService struct {
	repo      repository.DayNoteRepository
	validator *validation.Validator
	enabled   bool
}

func NewDayNoteService(repo repository.DayNoteRepository, validator *validation.Validator) *DayNoteService {
	return &DayNoteService{
		repo:      repo,
		validator: validator,
		enabled:   validator.Settings().EnabledFeatures.Notes,
	}
}

// Enabled reports whether the notes feature is on
func (s *DayNoteService) Enabled() bool {
	return s.enabled
}

func (s *DayNoteService) Get(ctx context.Context, principal policy.Principal, date string) (*models.DayNote, error) {
	if !s.enabled {
		return nil, ErrFeatureDisabled
	}
	day, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return nil, ErrNotFound
	}
	note, err := s.repo.FindByDate(ctx, principal.UserID, day)
	if err != nil {
		return nil, translate(err)
	}
	return note, nil
}

// Save creates or replaces the principal's note for date
func (s *DayNoteService) Save(ctx context.Context, principal policy.Principal, date string, input validation.DayNoteInput) (*models.DayNote, error) {
	if !s.enabled {
		return nil, ErrFeatureDisabled
	}
	note, err := s.validator.DayNote(date, input, principal.Locale)
	if err != nil {
		return nil, err
	}
	owner := principal.UserID
	note.UserID = &owner

	if err := s.repo.Upsert(ctx, note); err != nil {
		return nil, fmt.Errorf("save day note: %w", translate(err))
	}
	return note, nil
}

func (s *DayNoteService) Delete(ctx context.Context, principal policy.Principal, date string) error {
	if !s.enabled {
		return ErrFeatureDisabled
	}
	day, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return ErrNotFound
	}
	return translate(s.repo.Delete(ctx, principal.UserID, day))
}

// InRange returns notes between from and to; with the feature off it is empty
func (s *DayNoteService) InRange(ctx context.Context, principal policy.Principal, from, to time.Time) ([]models.DayNote, error) {
	if !s.enabled {
		return nil, nil
	}
	return s.repo.FindInRange(ctx, principal.UserID, from, to)
}
