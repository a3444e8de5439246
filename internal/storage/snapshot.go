package storage

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sjperalta/debtbook-api/internal/models"
)

// Snapshot is everything the local-only version of the application kept
type Snapshot struct {
	Debts    []models.Debt
	Payments []models.Payment
}

// Empty reports whether there is nothing to migrate
func (s *Snapshot) Empty() bool {
	return s == nil || (len(s.Debts) == 0 && len(s.Payments) == 0)
}

// LegacySource reads a legacy snapshot
type LegacySource interface {
	Load(ctx context.Context) (*Snapshot, error)
	Describe() string
}

// OpenLegacy picks the reader for path: a SQLite file (.db, .sqlite,
// .sqlite3) or a directory holding debts.json and payments.json. An empty
// path means there is no legacy data and returns a nil source.
func OpenLegacy(path string) (LegacySource, error) {
	if path == "" {
		return nil, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("legacy data path: %w", err)
	}

	if info.IsDir() {
		local, err := NewLocalStorage(path)
		if err != nil {
			return nil, err
		}
		return local, nil
	}

	lower := strings.ToLower(path)
	for _, ext := range []string{".db", ".sqlite", ".sqlite3"} {
		if strings.HasSuffix(lower, ext) {
			return NewSQLiteSource(path), nil
		}
	}
	return nil, fmt.Errorf("legacy data path %q is neither a directory nor a sqlite file", path)
}

// legacyDebt mirrors the camelCase records the legacy client serialized
type legacyDebt struct {
	ID                string          `json:"id"`
	Name              *string         `json:"name"`
	Amount            decimal.Decimal `json:"amount"`
	DebtType          string          `json:"debtType"`
	DueDate           string          `json:"dueDate"`
	Installments      int             `json:"installments"`
	InstallmentAmount decimal.Decimal `json:"installmentAmount"`
	Description       string          `json:"description"`
	Status            string          `json:"status"`
	CreatedAt         string          `json:"createdAt"`
}

type legacyPayment struct {
	ID               string          `json:"id"`
	DebtID           string          `json:"debtId"`
	PaymentDate      string          `json:"paymentDate"`
	PaymentAmount    decimal.Decimal `json:"paymentAmount"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	CreatedAt        string          `json:"createdAt"`
}

func (d legacyDebt) toModel() (models.Debt, error) {
	due, err := parseTime(d.DueDate)
	if err != nil {
		return models.Debt{}, fmt.Errorf("debt %s: due date: %w", d.ID, err)
	}
	created, _ := parseTime(d.CreatedAt)

	installments := d.Installments
	if installments < 1 {
		installments = 1
	}
	return models.Debt{
		ID:                d.ID,
		Name:              d.Name,
		Amount:            d.Amount,
		DebtType:          d.DebtType,
		DueDate:           due,
		Installments:      installments,
		InstallmentAmount: d.InstallmentAmount,
		Description:       d.Description,
		Status:            d.Status,
		CreatedAt:         created,
	}, nil
}

func (p legacyPayment) toModel() (models.Payment, error) {
	date, err := parseTime(p.PaymentDate)
	if err != nil {
		return models.Payment{}, fmt.Errorf("payment %s: payment date: %w", p.ID, err)
	}
	created, _ := parseTime(p.CreatedAt)

	return models.Payment{
		ID:               p.ID,
		DebtID:           p.DebtID,
		PaymentDate:      date,
		PaymentAmount:    p.PaymentAmount,
		RemainingBalance: p.RemainingBalance,
		CreatedAt:        created,
	}, nil
}

var timeLayouts = []string{
	models.DateLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
}

// parseTime accepts plain dates and the timestamp layouts JS and SQLite emit
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
