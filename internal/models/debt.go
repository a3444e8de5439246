package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DateLayout is the ISO calendar-date layout used on the wire and in legacy data
const DateLayout = "2006-01-02"

// Debt represents a tracked obligation
type Debt struct {
	ID                string          `gorm:"type:text;primaryKey" json:"id"`
	UserID            *string         `gorm:"type:text;index" json:"user_id"`
	Name              *string         `json:"name"`
	Amount            decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"amount"`
	DebtType          string          `gorm:"column:debt_type;not null" json:"debt_type"`
	DueDate           time.Time       `gorm:"column:due_date;type:date;not null;index" json:"due_date"`
	Installments      int             `gorm:"not null;default:1" json:"installments"`
	InstallmentAmount decimal.Decimal `gorm:"column:installment_amount;type:numeric(20,2);not null" json:"installment_amount"`
	Description       string          `gorm:"type:text;not null;default:''" json:"description"`
	Status            string          `gorm:"not null;default:pending;index" json:"status"`
	CategoryID        *string         `gorm:"column:category_id;type:text" json:"category_id"`
	BankID            *string         `gorm:"column:bank_id;type:text" json:"bank_id"`
	CreatedAt         time.Time       `gorm:"column:created_at;index" json:"created_at"`
}

// TableName specifies the table name for Debt
func (Debt) TableName() string {
	return "debts"
}

// BeforeCreate assigns an id unless one is carried over (legacy import)
func (d *Debt) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Status == "" {
		d.Status = DebtStatusPending
	}
	return nil
}

// Debt type constants
const (
	DebtTypeBankLoan    = "bank_loan"
	DebtTypeCompanyLoan = "company_loan"
	DebtTypeFriendLoan  = "friend_loan"
	DebtTypeOther       = "other"
)

// DebtTypes lists the closed set of debt types in display order
var DebtTypes = []string{DebtTypeBankLoan, DebtTypeCompanyLoan, DebtTypeFriendLoan, DebtTypeOther}

// IsValidDebtType reports whether t belongs to the closed set of debt types
func IsValidDebtType(t string) bool {
	for _, known := range DebtTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Debt status constants
const (
	DebtStatusPending    = "pending"
	DebtStatusInProgress = "in_progress"
	DebtStatusCompleted  = "completed"
)

// IsCompleted returns true if the debt has been fully paid
func (d *Debt) IsCompleted() bool {
	return d.Status == DebtStatusCompleted
}

// IsBankLoan returns true if the debt may reference a bank
func (d *Debt) IsBankLoan() bool {
	return d.DebtType == DebtTypeBankLoan
}

// DebtResponse is the JSON response format for debts
type DebtResponse struct {
	ID                string          `json:"id"`
	Name              *string         `json:"name"`
	Amount            decimal.Decimal `json:"amount"`
	DebtType          string          `json:"debt_type"`
	DueDate           string          `json:"due_date"`
	Installments      int             `json:"installments"`
	InstallmentAmount decimal.Decimal `json:"installment_amount"`
	Description       string          `json:"description"`
	Status            string          `json:"status"`
	CategoryID        *string         `json:"category_id"`
	BankID            *string         `json:"bank_id"`
	CreatedAt         time.Time       `json:"created_at"`
}

// ToResponse converts Debt to DebtResponse
func (d *Debt) ToResponse() DebtResponse {
	return DebtResponse{
		ID:                d.ID,
		Name:              d.Name,
		Amount:            d.Amount,
		DebtType:          d.DebtType,
		DueDate:           d.DueDate.Format(DateLayout),
		Installments:      d.Installments,
		InstallmentAmount: d.InstallmentAmount,
		Description:       d.Description,
		Status:            d.Status,
		CategoryID:        d.CategoryID,
		BankID:            d.BankID,
		CreatedAt:         d.CreatedAt,
	}
}
