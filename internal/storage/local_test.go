package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/debtbook-api/internal/models"
)

const legacyDebtsJSON = `[
  {"id": "1", "amount": 1000000, "debtType": "bank_loan", "dueDate": "2024-01-15",
   "installments": 12, "installmentAmount": 83334, "description": "Car", "status": "in_progress",
   "createdAt": "2023-12-20T08:30:00.000Z"},
  {"id": "2", "name": "Ali", "amount": "500", "debtType": "friend_loan", "dueDate": "2024-02-01",
   "installments": 0, "installmentAmount": 500, "description": "", "status": "pending",
   "createdAt": "2024-01-02"}
]`

const legacyPaymentsJSON = `[
  {"id": "p1", "debtId": "1", "paymentDate": "2024-01-15", "paymentAmount": 83334, "remainingBalance": 916666}
]`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLocalStorage_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, DebtsFile, legacyDebtsJSON)
	writeFile(t, dir, PaymentsFile, legacyPaymentsJSON)

	src, err := OpenLegacy(dir)
	require.NoError(t, err)
	assert.Equal(t, "json:"+dir, src.Describe())

	snapshot, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot.Debts, 2)
	require.Len(t, snapshot.Payments, 1)

	first := snapshot.Debts[0]
	assert.Equal(t, "1", first.ID)
	assert.Nil(t, first.Name)
	assert.True(t, first.Amount.Equal(decimal.NewFromInt(1000000)))
	assert.Equal(t, "2024-01-15", first.DueDate.Format(models.DateLayout))
	assert.Equal(t, 2023, first.CreatedAt.Year())
	assert.Equal(t, models.DebtStatusInProgress, first.Status)

	second := snapshot.Debts[1]
	require.NotNil(t, second.Name)
	assert.Equal(t, "Ali", *second.Name)
	assert.Equal(t, 1, second.Installments)

	p := snapshot.Payments[0]
	assert.Equal(t, "1", p.DebtID)
	assert.True(t, p.RemainingBalance.Equal(decimal.NewFromInt(916666)))
	assert.True(t, p.CreatedAt.IsZero())
}

func TestLocalStorage_MissingFilesAreEmpty(t *testing.T) {
	src, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	snapshot, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, snapshot.Empty())
}

func TestLocalStorage_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, DebtsFile, `{not json`)

	src, err := NewLocalStorage(dir)
	require.NoError(t, err)
	_, err = src.Load(context.Background())
	assert.Error(t, err)
}

func TestLocalStorage_InvalidDueDate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, DebtsFile, `[{"id": "1", "amount": 10, "dueDate": "soon"}]`)

	src, err := NewLocalStorage(dir)
	require.NoError(t, err)
	_, err = src.Load(context.Background())
	assert.Error(t, err)
}

func TestOpenLegacy(t *testing.T) {
	src, err := OpenLegacy("")
	assert.NoError(t, err)
	assert.Nil(t, src)

	_, err = OpenLegacy(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	_, err = OpenLegacy(file)
	assert.Error(t, err)
}
