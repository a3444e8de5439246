package validation

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sjperalta/debtbook-api/internal/models"
)

// DateLayout is the accepted date format of every input
const DateLayout = models.DateLayout

// PaymentInput is a payment creation request
type PaymentInput struct {
	PaymentAmount Text   `json:"payment_amount" swaggertype:"string"`
	PaymentDate   string `json:"payment_date"`
}

// Payment validates in and returns the payment to persist. The remaining
// balance is computed by the caller from the debt's history.
func (v *Validator) Payment(debtID string, in PaymentInput, locale string) (*models.Payment, error) {
	paymentDate := strings.TrimSpace(in.PaymentDate)
	rules := []rule{
		{"payment_amount", in.PaymentAmount.String(), "required,positive_decimal"},
		{"payment_date", paymentDate, "required,isodate"},
	}
	if errs := v.run(locale, rules); len(errs) > 0 {
		return nil, errs
	}

	date, _ := time.Parse(DateLayout, paymentDate)
	return &models.Payment{
		DebtID:        debtID,
		PaymentDate:   date,
		PaymentAmount: decimal.RequireFromString(in.PaymentAmount.String()),
	}, nil
}

// DateFilters checks the optional from and to filters of a listing
func (v *Validator) DateFilters(from, to, locale string) error {
	rules := []rule{
		{"from", from, "omitempty,isodate"},
		{"to", to, "omitempty,isodate"},
	}
	if errs := v.run(locale, rules); len(errs) > 0 {
		return errs
	}
	return nil
}

// DayNoteInput is a note attached to a calendar day
type DayNoteInput struct {
	Note string `json:"note"`
}

// DayNote validates a note for the given date
func (v *Validator) DayNote(date string, in DayNoteInput, locale string) (*models.DayNote, error) {
	date = strings.TrimSpace(date)
	note := strings.TrimSpace(in.Note)
	rules := []rule{
		{"date", date, "required,isodate"},
		{"note", note, "required,max=5000"},
	}
	if errs := v.run(locale, rules); len(errs) > 0 {
		return nil, errs
	}

	d, _ := time.Parse(DateLayout, date)
	return &models.DayNote{Date: d, Note: note}, nil
}

// ReferenceName validates the name of a category or bank
func (v *Validator) ReferenceName(name, locale string) (string, error) {
	name = strings.TrimSpace(name)
	if errs := v.run(locale, []rule{{"name", name, "required,max=120"}}); len(errs) > 0 {
		return "", errs
	}
	return name, nil
}

// Role validates a role assignment
func (v *Validator) Role(role, locale string) (string, error) {
	role = strings.TrimSpace(role)
	tag := "required,oneof=" + strings.Join(models.Roles, " ")
	if errs := v.run(locale, []rule{{"role", role, tag}}); len(errs) > 0 {
		return "", errs
	}
	return role, nil
}

func mustInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
