package repository

import (
	"context"

	"gorm.io/gorm"
)

// Transactor runs fn with debt and payment repositories bound to one database
// transaction. Returning an error from fn rolls everything back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(debts DebtRepository, payments PaymentRepository) error) error
}

type gormTransactor struct {
	db *gorm.DB
}

// NewTransactor creates a transactor over db
func NewTransactor(db *gorm.DB) Transactor {
	return &gormTransactor{db: db}
}

func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(debts DebtRepository, payments PaymentRepository) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewDebtRepository(tx), NewPaymentRepository(tx))
	})
}
