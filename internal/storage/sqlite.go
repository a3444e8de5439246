package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sjperalta/debtbook-api/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteSource reads legacy debts and payments from a SQLite file
type SQLiteSource struct {
	path string
}

// NewSQLiteSource creates a reader for the SQLite file at path
func NewSQLiteSource(path string) *SQLiteSource {
	return &SQLiteSource{path: path}
}

// Describe identifies the source in logs
func (s *SQLiteSource) Describe() string {
	return "sqlite:" + s.path
}

// Load opens the file read-only and reads both tables
func (s *SQLiteSource) Load(ctx context.Context) (*Snapshot, error) {
	db, err := sql.Open("sqlite3", "file:"+s.path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open legacy db: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping legacy db: %w", err)
	}

	snapshot := &Snapshot{}
	if snapshot.Debts, err = s.loadDebts(ctx, db); err != nil {
		return nil, err
	}
	if snapshot.Payments, err = s.loadPayments(ctx, db); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (s *SQLiteSource) loadDebts(ctx context.Context, db *sql.DB) ([]models.Debt, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, amount, debt_type, due_date, installments,
			installment_amount, COALESCE(description, ''), COALESCE(status, ''), COALESCE(created_at, '')
		FROM debts ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query legacy debts: %w", err)
	}
	defer rows.Close()

	var debts []models.Debt
	for rows.Next() {
		var d legacyDebt
		var name sql.NullString
		var amount, installmentAmount string
		if err := rows.Scan(&d.ID, &name, &amount, &d.DebtType, &d.DueDate, &d.Installments,
			&installmentAmount, &d.Description, &d.Status, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan legacy debt: %w", err)
		}
		if name.Valid {
			d.Name = &name.String
		}
		if d.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("debt %s: amount: %w", d.ID, err)
		}
		if d.InstallmentAmount, err = decimal.NewFromString(installmentAmount); err != nil {
			return nil, fmt.Errorf("debt %s: installment amount: %w", d.ID, err)
		}

		debt, err := d.toModel()
		if err != nil {
			return nil, err
		}
		debts = append(debts, debt)
	}
	return debts, rows.Err()
}

func (s *SQLiteSource) loadPayments(ctx context.Context, db *sql.DB) ([]models.Payment, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, debt_id, payment_date, payment_amount, remaining_balance, COALESCE(created_at, '')
		FROM payments ORDER BY payment_date`)
	if err != nil {
		return nil, fmt.Errorf("query legacy payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p legacyPayment
		var amount, remaining string
		if err := rows.Scan(&p.ID, &p.DebtID, &p.PaymentDate, &amount, &remaining, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan legacy payment: %w", err)
		}
		if p.PaymentAmount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("payment %s: amount: %w", p.ID, err)
		}
		if p.RemainingBalance, err = decimal.NewFromString(remaining); err != nil {
			return nil, fmt.Errorf("payment %s: remaining balance: %w", p.ID, err)
		}

		payment, err := p.toModel()
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}
