package amortization

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/sjperalta/debtbook-api/internal/models"
)

func sampleBook(t *testing.T) *models.Book {
	return models.NewBook(
		[]models.Debt{
			{ID: "d1", Amount: decimal.NewFromInt(1200), Installments: 12, InstallmentAmount: decimal.NewFromInt(100), DebtType: models.DebtTypeBankLoan, DueDate: date(t, "2024-03-10"), Status: models.DebtStatusInProgress},
			{ID: "d2", Amount: decimal.NewFromInt(300), Installments: 1, InstallmentAmount: decimal.NewFromInt(300), DebtType: models.DebtTypeFriendLoan, DueDate: date(t, "2024-02-01"), Status: models.DebtStatusPending},
			{ID: "d3", Amount: decimal.NewFromInt(50), Installments: 1, InstallmentAmount: decimal.NewFromInt(50), DebtType: models.DebtTypeOther, DueDate: date(t, "2024-01-05"), Status: models.DebtStatusCompleted},
		},
		[]models.Payment{
			{ID: "p2", DebtID: "d1", PaymentDate: date(t, "2024-04-12"), PaymentAmount: decimal.NewFromInt(100)},
			{ID: "p1", DebtID: "d1", PaymentDate: date(t, "2024-03-10"), PaymentAmount: decimal.NewFromInt(100)},
			{ID: "p3", DebtID: "d3", PaymentDate: date(t, "2024-01-05"), PaymentAmount: decimal.NewFromInt(50)},
		},
	)
}

func TestSummarize(t *testing.T) {
	totals := Summarize(sampleBook(t))

	assert.True(t, totals.TotalDebt.Equal(decimal.NewFromInt(1550)))
	assert.True(t, totals.TotalPaid.Equal(decimal.NewFromInt(250)))
	assert.True(t, totals.Remaining.Equal(decimal.NewFromInt(1300)))
	assert.Equal(t, 3, totals.DebtCount)
	assert.Equal(t, 2, totals.OpenCount)
}

func TestUpcoming_OrdersOpenDebtsByNextDate(t *testing.T) {
	upcoming := Upcoming(sampleBook(t), 3)

	require.Len(t, upcoming, 2)
	assert.Equal(t, "d2", upcoming[0].Debt.ID)
	assert.Equal(t, "2024-02-01", upcoming[0].NextPaymentDate.Format(models.DateLayout))
	assert.Equal(t, "d1", upcoming[1].Debt.ID)
	assert.Equal(t, "2024-05-10", upcoming[1].NextPaymentDate.Format(models.DateLayout))
	assert.True(t, upcoming[1].RemainingBalance.Equal(decimal.NewFromInt(1000)))
}

func TestDistributionByType_ListsEveryType(t *testing.T) {
	shares := DistributionByType(sampleBook(t))

	require.Len(t, shares, len(models.DebtTypes))
	assert.Equal(t, models.DebtTypeBankLoan, shares[0].DebtType)
	assert.True(t, shares[0].Amount.Equal(decimal.NewFromInt(1200)))
	assert.True(t, shares[1].Amount.IsZero())
}

func TestMonthlyTrend_SortedChronologically(t *testing.T) {
	trend := MonthlyTrend(sampleBook(t))

	months := make([]string, 0, len(trend))
	for _, p := range trend {
		months = append(months, p.Month)
	}
	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03", "2024-04"}, months)
	assert.True(t, trend[0].Paid.Equal(decimal.NewFromInt(50)))
	assert.True(t, trend[2].Due.Equal(decimal.NewFromInt(100)))
	assert.True(t, trend[3].Due.IsZero())
}

func TestMonth_CalendarEvents(t *testing.T) {
	book := sampleBook(t)
	today := date(t, "2024-03-05")
	days := Month(book, date(t, "2024-03-01"), today)

	require.Len(t, days, 31)
	tenth := days[9]
	require.Len(t, tenth.Debts, 1)
	assert.Equal(t, "d1", tenth.Debts[0].ID)
	require.Len(t, tenth.Payments, 1)
	assert.Equal(t, "p1", tenth.Payments[0].ID)

	// d2 recurs on the 1st but the 1st is before today
	assert.Empty(t, days[0].Debts)
	// completed debts never show
	assert.Empty(t, days[4].Debts)
	assert.False(t, days[4].HasEvent())
}

func TestMonth_RecurringAfterToday(t *testing.T) {
	days := Month(sampleBook(t), date(t, "2024-05-01"), date(t, "2024-03-05"))

	var ids []string
	for _, d := range days[0].Debts {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"d2"}, ids)
	assert.Equal(t, "d1", days[9].Debts[0].ID)
}

func TestMonth_MonthEndDueDateClampsInShortMonths(t *testing.T) {
	book := models.NewBook([]models.Debt{
		{ID: "d1", Amount: decimal.NewFromInt(600), Installments: 6, DebtType: models.DebtTypeOther, DueDate: date(t, "2024-01-31"), Status: models.DebtStatusInProgress},
	}, nil)
	today := date(t, "2024-01-20")

	feb := Month(book, date(t, "2024-02-01"), today)
	require.Len(t, feb, 29)
	require.Len(t, feb[28].Debts, 1)
	assert.Equal(t, "d1", feb[28].Debts[0].ID)
	assert.Empty(t, feb[27].Debts)

	apr := Month(book, date(t, "2024-04-01"), today)
	require.Len(t, apr[29].Debts, 1)

	may := Month(book, date(t, "2024-05-01"), today)
	assert.Empty(t, may[29].Debts)
	require.Len(t, may[30].Debts, 1)
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "1,234,567", FormatCurrency(decimal.NewFromInt(1234567), language.English))
	assert.Equal(t, "1,001", FormatCurrency(decimal.RequireFromString("1000.2"), language.English))
}
