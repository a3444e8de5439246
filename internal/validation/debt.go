package validation

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sjperalta/debtbook-api/internal/amortization"
	"github.com/sjperalta/debtbook-api/internal/models"
)

// DebtInput is a debt creation request as submitted by a client
type DebtInput struct {
	Name         string `json:"name"`
	Amount       Text   `json:"amount" swaggertype:"string"`
	DebtType     string `json:"debt_type"`
	DueDate      string `json:"due_date"`
	Installments Text   `json:"installments" swaggertype:"string"`
	Description  string `json:"description"`
	CategoryID   string `json:"category_id"`
	BankID       string `json:"bank_id"`
}

// Debt validates in and returns the debt to persist. Category and bank ids are
// dropped when their feature is disabled, and bank ids for non-bank debts.
// installment_amount is derived; id, status and timestamps are left to the store.
func (v *Validator) Debt(in DebtInput, locale string) (*models.Debt, error) {
	name := strings.TrimSpace(in.Name)
	debtType := strings.TrimSpace(in.DebtType)
	dueDate := strings.TrimSpace(in.DueDate)
	description := strings.TrimSpace(in.Description)
	categoryID := strings.TrimSpace(in.CategoryID)
	bankID := strings.TrimSpace(in.BankID)

	req := v.settings.RequiredFields
	features := v.settings.EnabledFeatures
	if !features.Categories {
		categoryID = ""
	}
	if !features.Banks || debtType != models.DebtTypeBankLoan {
		bankID = ""
	}

	dateTag := "required,isodate"
	if v.minDate != "" {
		dateTag += ",mindate=" + v.minDate
	}

	rules := []rule{
		{"name", name, requiredTag(req.Name, "max=200")},
		{"amount", in.Amount.String(), "required,positive_decimal"},
		{"debt_type", debtType, "required,oneof=" + strings.Join(models.DebtTypes, " ")},
		{"due_date", dueDate, dateTag},
		{"installments", in.Installments.String(), "required,positive_int"},
		{"description", description, requiredTag(req.Description, "max=2000")},
	}
	if features.Categories {
		rules = append(rules, rule{"category_id", categoryID, requiredTag(req.Category, "")})
	}
	if features.Banks && debtType == models.DebtTypeBankLoan {
		rules = append(rules, rule{"bank_id", bankID, requiredTag(req.Bank, "")})
	}

	if errs := v.run(locale, rules); len(errs) > 0 {
		return nil, errs
	}

	amount := decimal.RequireFromString(in.Amount.String())
	installments := mustInt(in.Installments.String())
	due, _ := time.Parse(DateLayout, dueDate)

	return &models.Debt{
		Name:              optional(name),
		Amount:            amount,
		DebtType:          debtType,
		DueDate:           due,
		Installments:      installments,
		InstallmentAmount: amortization.InstallmentAmountFor(amount, installments),
		Description:       description,
		Status:            models.DebtStatusPending,
		CategoryID:        optional(categoryID),
		BankID:            optional(bankID),
	}, nil
}
