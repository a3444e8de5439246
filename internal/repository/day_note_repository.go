package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sjperalta/debtbook-api/internal/models"
)

// DayNoteRepository defines the interface for calendar note data access
type DayNoteRepository interface {
	FindByDate(ctx context.Context, userID string, date time.Time) (*models.DayNote, error)
	FindInRange(ctx context.Context, userID string, from, to time.Time) ([]models.DayNote, error)
	Upsert(ctx context.Context, note *models.DayNote) error
	Delete(ctx context.Context, userID string, date time.Time) error
}

type dayNoteRepository struct {
	db *gorm.DB
}

// NewDayNoteRepository creates a new day note repository
func NewDayNoteRepository(db *gorm.DB) DayNoteRepository {
	return &dayNoteRepository{db: db}
}

func (r *dayNoteRepository) FindByDate(ctx context.Context, userID string, date time.Time) (*models.DayNote, error) {
	var note models.DayNote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date.Format(models.DateLayout)).
		First(&note).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// FindInRange returns the notes between from and to, both inclusive
func (r *dayNoteRepository) FindInRange(ctx context.Context, userID string, from, to time.Time) ([]models.DayNote, error) {
	var notes []models.DayNote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from.Format(models.DateLayout), to.Format(models.DateLayout)).
		Order("date ASC").
		Find(&notes).Error
	return notes, err
}

// Upsert keeps a single note per user and day
func (r *dayNoteRepository) Upsert(ctx context.Context, note *models.DayNote) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"note", "updated_at"}),
		}).
		Create(note).Error
}

func (r *dayNoteRepository) Delete(ctx context.Context, userID string, date time.Time) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date.Format(models.DateLayout)).
		Delete(&models.DayNote{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
