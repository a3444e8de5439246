package amortization

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sjperalta/debtbook-api/internal/models"
)

// Totals aggregates a whole book
type Totals struct {
	TotalDebt decimal.Decimal `json:"total_debt"`
	TotalPaid decimal.Decimal `json:"total_paid"`
	Remaining decimal.Decimal `json:"remaining"`
	DebtCount int             `json:"debt_count"`
	OpenCount int             `json:"open_count"`
}

// Summarize computes book-wide totals
func Summarize(book *models.Book) Totals {
	t := Totals{TotalDebt: decimal.Zero, DebtCount: len(book.Debts)}
	for _, d := range book.Debts {
		t.TotalDebt = t.TotalDebt.Add(d.Amount)
		if !d.IsCompleted() {
			t.OpenCount++
		}
	}
	t.TotalPaid = TotalPaid(book.Payments)
	t.Remaining = t.TotalDebt.Sub(t.TotalPaid)
	return t
}

// Schedule is a debt together with its derived state
type Schedule struct {
	Debt             models.Debt
	Payments         []models.Payment
	Paid             decimal.Decimal
	RemainingBalance decimal.Decimal
	NextPaymentDate  *time.Time
}

// Derive computes the schedule of one debt
func Derive(debt models.Debt, payments []models.Payment) Schedule {
	s := Schedule{
		Debt:             debt,
		Payments:         payments,
		Paid:             TotalPaid(payments),
		RemainingBalance: RemainingBalance(debt, payments),
	}
	if next, ok := NextPaymentDate(debt, payments); ok {
		s.NextPaymentDate = &next
	}
	return s
}

// Upcoming returns at most limit open debts ordered by their next due date
func Upcoming(book *models.Book, limit int) []Schedule {
	var open []Schedule
	for _, d := range book.Debts {
		if d.IsCompleted() {
			continue
		}
		s := Derive(d, book.PaymentsFor(d.ID))
		if s.NextPaymentDate == nil {
			continue
		}
		open = append(open, s)
	}
	sort.SliceStable(open, func(i, j int) bool {
		return open[i].NextPaymentDate.Before(*open[j].NextPaymentDate)
	})
	if limit > 0 && len(open) > limit {
		open = open[:limit]
	}
	return open
}

// TypeShare is the amount owed under one debt type
type TypeShare struct {
	DebtType string          `json:"debt_type"`
	Amount   decimal.Decimal `json:"amount"`
}

// DistributionByType sums debt amounts per type, always listing every type
func DistributionByType(book *models.Book) []TypeShare {
	sums := make(map[string]decimal.Decimal, len(models.DebtTypes))
	for _, d := range book.Debts {
		current, ok := sums[d.DebtType]
		if !ok {
			current = decimal.Zero
		}
		sums[d.DebtType] = current.Add(d.Amount)
	}
	shares := make([]TypeShare, 0, len(models.DebtTypes))
	for _, t := range models.DebtTypes {
		amount, ok := sums[t]
		if !ok {
			amount = decimal.Zero
		}
		shares = append(shares, TypeShare{DebtType: t, Amount: amount})
	}
	return shares
}

// MonthPoint is the paid vs due amount of one calendar month (YYYY-MM)
type MonthPoint struct {
	Month string          `json:"month"`
	Paid  decimal.Decimal `json:"paid"`
	Due   decimal.Decimal `json:"due"`
}

// MonthlyTrend groups payments by payment month and installments by the month
// of each debt's due date, sorted chronologically.
func MonthlyTrend(book *models.Book) []MonthPoint {
	points := make(map[string]*MonthPoint)
	get := func(t time.Time) *MonthPoint {
		key := t.Format("2006-01")
		if p, ok := points[key]; ok {
			return p
		}
		p := &MonthPoint{Month: key, Paid: decimal.Zero, Due: decimal.Zero}
		points[key] = p
		return p
	}

	for _, p := range book.Payments {
		mp := get(p.PaymentDate)
		mp.Paid = mp.Paid.Add(p.PaymentAmount)
	}
	for _, d := range book.Debts {
		mp := get(d.DueDate)
		mp.Due = mp.Due.Add(d.InstallmentAmount)
	}

	result := make([]MonthPoint, 0, len(points))
	for _, p := range points {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	return result
}
