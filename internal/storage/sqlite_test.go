package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSQLite(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "legacy.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	stmts := []string{
		`CREATE TABLE debts (
			id TEXT PRIMARY KEY, name TEXT, amount REAL, debt_type TEXT, due_date TEXT,
			installments INTEGER, installment_amount REAL, description TEXT, status TEXT, created_at TEXT
		)`,
		`CREATE TABLE payments (
			id TEXT PRIMARY KEY, debt_id TEXT, payment_date TEXT, payment_amount REAL,
			remaining_balance REAL, created_at TEXT
		)`,
		`INSERT INTO debts VALUES ('d1', NULL, 100, 'other', '2024-01-31', 3, 34, 'Laptop', 'in_progress', '2024-01-01 09:00:00')`,
		`INSERT INTO debts VALUES ('d2', 'Rent', 2500.5, 'company_loan', '2024-02-10', 1, 2501, NULL, NULL, NULL)`,
		`INSERT INTO payments VALUES ('p1', 'd1', '2024-01-31', 34, 66, NULL)`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return path
}

func TestSQLiteSource_Load(t *testing.T) {
	path := seedSQLite(t)

	src, err := OpenLegacy(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite:"+path, src.Describe())

	snapshot, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot.Debts, 2)
	require.Len(t, snapshot.Payments, 1)

	byID := map[string]int{}
	for i, d := range snapshot.Debts {
		byID[d.ID] = i
	}
	laptop := snapshot.Debts[byID["d1"]]
	assert.Nil(t, laptop.Name)
	assert.True(t, laptop.Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 2024, laptop.CreatedAt.Year())

	rent := snapshot.Debts[byID["d2"]]
	require.NotNil(t, rent.Name)
	assert.True(t, rent.Amount.Equal(decimal.RequireFromString("2500.5")))
	assert.Equal(t, "", rent.Description)
	assert.True(t, rent.CreatedAt.IsZero())

	assert.True(t, snapshot.Payments[0].RemainingBalance.Equal(decimal.NewFromInt(66)))
}
