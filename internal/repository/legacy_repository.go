package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sjperalta/debtbook-api/internal/models"
)

// LegacyImportRepository copies records from the local-only predecessor of the
// application into the store.
type LegacyImportRepository interface {
	CountDebts(ctx context.Context) (int64, error)
	Import(ctx context.Context, debts []models.Debt, payments []models.Payment) error
}

type legacyImportRepository struct {
	db *gorm.DB
}

// NewLegacyImportRepository creates a new legacy import repository
func NewLegacyImportRepository(db *gorm.DB) LegacyImportRepository {
	return &legacyImportRepository{db: db}
}

func (r *legacyImportRepository) CountDebts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Debt{}).Count(&count).Error
	return count, err
}

// Import inserts everything in one transaction, keeping ids and created_at.
// Debts go first so payments can reference them; callers drop payments whose
// debt is not part of the import.
func (r *legacyImportRepository) Import(ctx context.Context, debts []models.Debt, payments []models.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(debts) > 0 {
			if err := tx.CreateInBatches(&debts, 100).Error; err != nil {
				if isDuplicateKeyError(err, "") {
					return ErrDuplicate
				}
				return err
			}
		}
		if len(payments) > 0 {
			if err := tx.Omit("Debt").CreateInBatches(&payments, 100).Error; err != nil {
				if isDuplicateKeyError(err, "") {
					return ErrDuplicate
				}
				return err
			}
		}
		return nil
	})
}
