package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sjperalta/debtbook-api/internal/models"
)

// PaymentRepository defines the interface for payment data access. Payments
// are append-only: there is no update or delete.
type PaymentRepository interface {
	FindAll(ctx context.Context, userID string) ([]models.Payment, error)
	FindByDebt(ctx context.Context, userID, debtID string) ([]models.Payment, error)
	FindByDebts(ctx context.Context, debtIDs []string) ([]models.Payment, error)
	List(ctx context.Context, userID string, query *ListQuery) ([]models.Payment, int64, error)
	Create(ctx context.Context, payment *models.Payment) error
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

var paymentSortable = map[string]bool{
	"payment_date":   true,
	"payment_amount": true,
	"created_at":     true,
}

func (r *paymentRepository) FindAll(ctx context.Context, userID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("payment_date ASC, created_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) FindByDebt(ctx context.Context, userID, debtID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("debt_id = ? AND user_id = ?", debtID, userID).
		Order("payment_date ASC, created_at ASC").
		Find(&payments).Error
	return payments, err
}

// FindByDebts is unscoped and serves background jobs only
func (r *paymentRepository) FindByDebts(ctx context.Context, debtIDs []string) ([]models.Payment, error) {
	var payments []models.Payment
	if len(debtIDs) == 0 {
		return payments, nil
	}
	err := r.db.WithContext(ctx).
		Where("debt_id IN ?", debtIDs).
		Order("payment_date ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) List(ctx context.Context, userID string, query *ListQuery) ([]models.Payment, int64, error) {
	var payments []models.Payment
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Payment{}).Where("user_id = ?", userID)

	if query.Filters["debt_id"] != "" {
		db = db.Where("debt_id = ?", query.Filters["debt_id"])
	}
	if query.Filters["from"] != "" {
		db = db.Where("payment_date >= ?", query.Filters["from"])
	}
	if query.Filters["to"] != "" {
		db = db.Where("payment_date <= ?", query.Filters["to"])
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(db, query, paymentSortable, "payment_date DESC").Find(&payments).Error
	return payments, total, err
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		if isDuplicateKeyError(err, "payments_pkey") {
			return ErrDuplicate
		}
		return err
	}
	return nil
}
