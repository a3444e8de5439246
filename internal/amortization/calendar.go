package amortization

import (
	"time"

	"github.com/sjperalta/debtbook-api/internal/models"
)

// CalendarDay lists what happens on one day of a month view
type CalendarDay struct {
	Date     time.Time
	Debts    []models.Debt
	Payments []models.Payment
}

// HasEvent reports whether anything is due or paid that day
func (d CalendarDay) HasEvent() bool {
	return len(d.Debts) > 0 || len(d.Payments) > 0
}

// Month builds the calendar of the month containing anyDay. An open debt shows
// on its exact due date, and on the same day-of-month of any day from today on
// (monthly installments), clamped to the last day of shorter months. Payments
// show on their payment date.
func Month(book *models.Book, anyDay, today time.Time) []CalendarDay {
	year, month, _ := anyDay.Date()
	loc := anyDay.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	lastDay := daysIn(year, month, loc)
	todayStart := truncateDay(today.In(loc))

	var days []CalendarDay
	for day := first; day.Month() == month; day = day.AddDate(0, 0, 1) {
		cd := CalendarDay{Date: day}
		for _, d := range book.Debts {
			if d.IsCompleted() {
				continue
			}
			due := d.DueDate
			recurring := min(due.Day(), lastDay) == day.Day() && !day.Before(todayStart)
			if recurring || sameDay(due, day) {
				cd.Debts = append(cd.Debts, d)
			}
		}
		for _, p := range book.Payments {
			if sameDay(p.PaymentDate, day) {
				cd.Payments = append(cd.Payments, p)
			}
		}
		days = append(days, cd)
	}
	return days
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
