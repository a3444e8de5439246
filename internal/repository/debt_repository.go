package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sjperalta/debtbook-api/internal/models"
)

// DebtRepository defines the interface for debt data access. Every read and
// write is filtered by the owner's user id; the hosted store additionally
// applies its own row-level policy. FindOpen is unscoped and only used by
// background jobs.
type DebtRepository interface {
	FindAll(ctx context.Context, userID string) ([]models.Debt, error)
	FindByID(ctx context.Context, userID, id string) (*models.Debt, error)
	List(ctx context.Context, userID string, query *ListQuery) ([]models.Debt, int64, error)
	Create(ctx context.Context, debt *models.Debt) error
	UpdateStatus(ctx context.Context, userID, id string, from []string, to string) error
	FindOpen(ctx context.Context) ([]models.Debt, error)
}

type debtRepository struct {
	db *gorm.DB
}

// NewDebtRepository creates a new debt repository
func NewDebtRepository(db *gorm.DB) DebtRepository {
	return &debtRepository{db: db}
}

var debtSortable = map[string]bool{
	"due_date":   true,
	"amount":     true,
	"created_at": true,
	"name":       true,
	"status":     true,
}

func (r *debtRepository) FindAll(ctx context.Context, userID string) ([]models.Debt, error) {
	var debts []models.Debt
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&debts).Error
	return debts, err
}

// FindByID locks the row (SELECT ... FOR UPDATE) until the enclosing
// transaction ends, so concurrent writers to the same debt queue up.
func (r *debtRepository) FindByID(ctx context.Context, userID, id string) (*models.Debt, error) {
	var debt models.Debt
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&debt).Error
	if err != nil {
		return nil, err
	}
	return &debt, nil
}

func (r *debtRepository) List(ctx context.Context, userID string, query *ListQuery) ([]models.Debt, int64, error) {
	var debts []models.Debt
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Debt{}).Where("user_id = ?", userID)

	// Apply search
	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("name ILIKE ? OR description ILIKE ?", search, search)
	}

	if query.Filters["status"] != "" {
		db = db.Where("status = ?", query.Filters["status"])
	}
	if query.Filters["debt_type"] != "" {
		db = db.Where("debt_type = ?", query.Filters["debt_type"])
	}
	if query.Filters["category_id"] != "" {
		db = db.Where("category_id = ?", query.Filters["category_id"])
	}
	if query.Filters["bank_id"] != "" {
		db = db.Where("bank_id = ?", query.Filters["bank_id"])
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(db, query, debtSortable, "created_at DESC").Find(&debts).Error
	return debts, total, err
}

func (r *debtRepository) Create(ctx context.Context, debt *models.Debt) error {
	if err := r.db.WithContext(ctx).Create(debt).Error; err != nil {
		if isDuplicateKeyError(err, "debts_pkey") {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// UpdateStatus touches the status column only, and only while the stored
// status is one of from. ErrStatusChanged means the row exists but moved on.
func (r *debtRepository) UpdateStatus(ctx context.Context, userID, id string, from []string, to string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Debt{}).
		Where("id = ? AND user_id = ? AND status IN ?", id, userID, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Debt{}).
			Where("id = ? AND user_id = ?", id, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrStatusChanged
	}
	return nil
}

func (r *debtRepository) FindOpen(ctx context.Context) ([]models.Debt, error) {
	var debts []models.Debt
	err := r.db.WithContext(ctx).
		Where("status <> ?", models.DebtStatusCompleted).
		Order("due_date ASC").
		Find(&debts).Error
	return debts, err
}
