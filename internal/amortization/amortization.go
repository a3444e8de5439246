// Package amortization derives financial state from a debt and its payment
// history: installment size, remaining balance, next due date and the status a
// debt moves to once a payment is recorded. Everything here is pure.
//
// Inputs are assumed well formed (installments >= 1, non-negative amounts);
// that is enforced at the creation boundary by package validation.
package amortization

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sjperalta/debtbook-api/internal/models"
)

// InstallmentAmountFor returns ceil(amount / installments), or amount itself
// when installments is not positive. Rounding is always upward so the sum of
// installments never falls short of the amount owed.
func InstallmentAmountFor(amount decimal.Decimal, installments int) decimal.Decimal {
	if installments <= 0 {
		return amount
	}
	return amount.Div(decimal.NewFromInt(int64(installments))).Ceil()
}

// InstallmentAmount computes the amortized installment of a debt
func InstallmentAmount(debt models.Debt) decimal.Decimal {
	return InstallmentAmountFor(debt.Amount, debt.Installments)
}

// TotalPaid sums the amounts of the given payments
func TotalPaid(payments []models.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.PaymentAmount)
	}
	return total
}

// RemainingBalance returns ceil(amount - sum(payments)). The result is not
// clamped: a negative value is an overpayment and must be shown as such.
func RemainingBalance(debt models.Debt, payments []models.Payment) decimal.Decimal {
	return debt.Amount.Sub(TotalPaid(payments)).Ceil()
}

// IsSettled reports whether a remaining balance means "fully paid"
func IsSettled(remaining decimal.Decimal) bool {
	return !remaining.IsPositive()
}

// NextPaymentDate returns the next due date of a debt. The schedule is anchored
// to the original due date: after n payments the next date is dueDate + n
// months, regardless of when those payments were actually made. The boolean is
// false once every installment has a payment (no further payment due).
func NextPaymentDate(debt models.Debt, payments []models.Payment) (time.Time, bool) {
	paid := len(payments)
	if paid == 0 {
		return debt.DueDate, true
	}
	if paid >= debt.Installments {
		return time.Time{}, false
	}
	return AddMonths(debt.DueDate, paid), true
}

// AddMonths adds n calendar months, clamping to the last day of the target
// month (Jan 31 + 1 month = Feb 28/29) instead of overflowing like AddDate.
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	lastDay := daysIn(firstOfTarget.Year(), firstOfTarget.Month(), t.Location())
	if day > lastDay {
		day = lastDay
	}
	hour, min, sec := t.Clock()
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// StatusAfterPayment is the transition policy applied once a payment has been
// recorded and the new remaining balance is known:
//   - remaining <= 0 -> completed
//   - pending -> in_progress
//   - anything else is left as is; completed never reverts.
func StatusAfterPayment(current string, remaining decimal.Decimal) string {
	if current == models.DebtStatusCompleted {
		return current
	}
	if IsSettled(remaining) {
		return models.DebtStatusCompleted
	}
	if current == models.DebtStatusPending {
		return models.DebtStatusInProgress
	}
	return current
}
