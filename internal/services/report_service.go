package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/sjperalta/debtbook-api/internal/amortization"
	"github.com/sjperalta/debtbook-api/internal/i18n"
	"github.com/sjperalta/debtbook-api/internal/models"
	"github.com/sjperalta/debtbook-api/internal/policy"
)

// UpcomingDebt is a dashboard row
type UpcomingDebt struct {
	Debt                models.DebtResponse `json:"debt"`
	NextPaymentDate     string              `json:"next_payment_date"`
	RemainingBalance    decimal.Decimal     `json:"remaining_balance"`
	RemainingBalanceFmt string              `json:"remaining_balance_display"`
}

// Dashboard summarizes a principal's book
type Dashboard struct {
	amortization.Totals
	TotalDebtFmt string         `json:"total_debt_display"`
	TotalPaidFmt string         `json:"total_paid_display"`
	RemainingFmt string         `json:"remaining_display"`
	Upcoming     []UpcomingDebt `json:"upcoming"`
}

// CalendarDayView is one day of the calendar
type CalendarDayView struct {
	Date     string                   `json:"date"`
	Debts    []models.DebtResponse    `json:"debts"`
	Payments []models.PaymentResponse `json:"payments"`
	Note     *models.DayNoteResponse  `json:"note,omitempty"`
}

// Reports holds the chart data of the reports page
type Reports struct {
	Totals       amortization.Totals       `json:"totals"`
	Distribution []amortization.TypeShare  `json:"distribution"`
	Monthly      []amortization.MonthPoint `json:"monthly"`
}

// ReportService builds read models from the cached book
type ReportService struct {
	sync  *SyncService
	notes *DayNoteService
	now   func() time.Time
}

func NewReportService(sync *SyncService, notes *DayNoteService) *ReportService {
	return &ReportService{sync: sync, notes: notes, now: time.Now}
}

// UpcomingLimit is how many upcoming debts the dashboard lists
const UpcomingLimit = 3

func (s *ReportService) Dashboard(ctx context.Context, principal policy.Principal) (*Dashboard, error) {
	book, err := s.sync.Load(ctx, principal)
	if err != nil {
		return nil, err
	}

	tag := i18n.Tag(principal.Locale)
	totals := amortization.Summarize(book)
	dashboard := &Dashboard{
		Totals:       totals,
		TotalDebtFmt: amortization.FormatCurrency(totals.TotalDebt, tag),
		TotalPaidFmt: amortization.FormatCurrency(totals.TotalPaid, tag),
		RemainingFmt: amortization.FormatCurrency(totals.Remaining, tag),
		Upcoming:     []UpcomingDebt{},
	}
	for _, sch := range amortization.Upcoming(book, UpcomingLimit) {
		dashboard.Upcoming = append(dashboard.Upcoming, upcomingRow(sch, tag))
	}
	return dashboard, nil
}

func upcomingRow(sch amortization.Schedule, tag language.Tag) UpcomingDebt {
	row := UpcomingDebt{
		Debt:                sch.Debt.ToResponse(),
		RemainingBalance:    sch.RemainingBalance,
		RemainingBalanceFmt: amortization.FormatCurrency(sch.RemainingBalance, tag),
	}
	if sch.NextPaymentDate != nil {
		row.NextPaymentDate = sch.NextPaymentDate.Format(models.DateLayout)
	}
	return row
}

// Calendar returns the days of month (YYYY-MM) that have debts, payments or notes
func (s *ReportService) Calendar(ctx context.Context, principal policy.Principal, month string) ([]CalendarDayView, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid month %q", ErrInvalidInput, month)
	}

	book, err := s.sync.Load(ctx, principal)
	if err != nil {
		return nil, err
	}

	last := first.AddDate(0, 1, -1)
	notes, err := s.notes.InRange(ctx, principal, first, last)
	if err != nil {
		return nil, err
	}
	notesByDate := make(map[string]models.DayNote, len(notes))
	for _, n := range notes {
		notesByDate[n.Date.Format(models.DateLayout)] = n
	}

	views := []CalendarDayView{}
	for _, day := range amortization.Month(book, first, s.now()) {
		key := day.Date.Format(models.DateLayout)
		note, hasNote := notesByDate[key]
		if !day.HasEvent() && !hasNote {
			continue
		}

		view := CalendarDayView{
			Date:     key,
			Debts:    make([]models.DebtResponse, 0, len(day.Debts)),
			Payments: make([]models.PaymentResponse, 0, len(day.Payments)),
		}
		for i := range day.Debts {
			view.Debts = append(view.Debts, day.Debts[i].ToResponse())
		}
		for i := range day.Payments {
			view.Payments = append(view.Payments, day.Payments[i].ToResponse())
		}
		if hasNote {
			resp := note.ToResponse()
			view.Note = &resp
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *ReportService) Reports(ctx context.Context, principal policy.Principal) (*Reports, error) {
	book, err := s.sync.Load(ctx, principal)
	if err != nil {
		return nil, err
	}
	return &Reports{
		Totals:       amortization.Summarize(book),
		Distribution: amortization.DistributionByType(book),
		Monthly:      amortization.MonthlyTrend(book),
	}, nil
}
