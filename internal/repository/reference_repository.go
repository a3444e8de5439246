package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sjperalta/debtbook-api/internal/models"
)

// referenceModel constrains the row types stored by referenceRepository
type referenceModel interface {
	models.Category | models.Bank
}

// CategoryRepository defines the interface for debt category data access
type CategoryRepository interface {
	ListVisible(ctx context.Context, userID string) ([]models.Category, error)
	FindByID(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}

// BankRepository defines the interface for bank data access
type BankRepository interface {
	ListVisible(ctx context.Context, userID string) ([]models.Bank, error)
	FindByID(ctx context.Context, id string) (*models.Bank, error)
	Create(ctx context.Context, bank *models.Bank) error
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}

// referenceRepository serves both reference tables, which share their shape
type referenceRepository[T referenceModel] struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &referenceRepository[models.Category]{db: db}
}

// NewBankRepository creates a new bank repository
func NewBankRepository(db *gorm.DB) BankRepository {
	return &referenceRepository[models.Bank]{db: db}
}

// ListVisible returns system rows plus the user's own rows, by name
func (r *referenceRepository[T]) ListVisible(ctx context.Context, userID string) ([]T, error) {
	var rows []T
	err := r.db.WithContext(ctx).
		Where("is_system = ? OR user_id = ?", true, userID).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *referenceRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var row T
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *referenceRepository[T]) Create(ctx context.Context, row *T) error {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if isDuplicateKeyError(err, "") {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *referenceRepository[T]) Rename(ctx context.Context, id, name string) error {
	var row T
	result := r.db.WithContext(ctx).Model(&row).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *referenceRepository[T]) Delete(ctx context.Context, id string) error {
	var row T
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
