package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is an append-only record of money applied against a debt
type Payment struct {
	ID               string          `gorm:"type:text;primaryKey" json:"id"`
	UserID           *string         `gorm:"type:text;index" json:"user_id"`
	DebtID           string          `gorm:"column:debt_id;type:text;not null;index" json:"debt_id"`
	PaymentDate      time.Time       `gorm:"column:payment_date;type:date;not null;index" json:"payment_date"`
	PaymentAmount    decimal.Decimal `gorm:"column:payment_amount;type:numeric(20,2);not null" json:"payment_amount"`
	RemainingBalance decimal.Decimal `gorm:"column:remaining_balance;type:numeric(20,2);not null" json:"remaining_balance"`
	CreatedAt        time.Time       `gorm:"column:created_at" json:"created_at"`

	// Associations
	Debt *Debt `gorm:"foreignKey:DebtID" json:"-"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// BeforeCreate assigns an id unless one is carried over (legacy import)
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// IsOverpayment returns true when the snapshot balance went below zero
func (p *Payment) IsOverpayment() bool {
	return p.RemainingBalance.IsNegative()
}

// PaymentResponse is the JSON response format for payments
type PaymentResponse struct {
	ID               string          `json:"id"`
	DebtID           string          `json:"debt_id"`
	PaymentDate      string          `json:"payment_date"`
	PaymentAmount    decimal.Decimal `json:"payment_amount"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	IsOverpayment    bool            `json:"is_overpayment"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ToResponse converts Payment to PaymentResponse
func (p *Payment) ToResponse() PaymentResponse {
	return PaymentResponse{
		ID:               p.ID,
		DebtID:           p.DebtID,
		PaymentDate:      p.PaymentDate.Format(DateLayout),
		PaymentAmount:    p.PaymentAmount,
		RemainingBalance: p.RemainingBalance,
		IsOverpayment:    p.IsOverpayment(),
		CreatedAt:        p.CreatedAt,
	}
}
