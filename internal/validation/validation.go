// Package validation guards the creation boundary: malformed debts, payments
// and notes are rejected here with an ordered list of localized field errors
// before anything reaches persistence.
package validation

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/sjperalta/debtbook-api/internal/config"
	"github.com/sjperalta/debtbook-api/internal/i18n"
	"github.com/sjperalta/debtbook-api/internal/models"
)

// Text accepts a JSON string or a bare JSON number and keeps its raw text, so
// "abc" and 12.5 both reach the field rules instead of failing decoding.
type Text string

// UnmarshalJSON implements json.Unmarshaler
func (t *Text) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	switch {
	case raw == "null":
		*t = ""
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	default:
		*t = Text(raw)
	}
	return nil
}

func (t Text) String() string {
	return strings.TrimSpace(string(t))
}

// FieldError is one rejected field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is the ordered list of rejected fields of one input
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// AsFieldErrors extracts FieldErrors from err
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// Validator applies field rules whose requiredness comes from FormSettings
type Validator struct {
	validate *validator.Validate
	settings config.FormSettings
	minDate  string
}

// New creates a validator bound to the given form settings. minDate is the
// earliest accepted due date (YYYY-MM-DD); empty disables the check.
func New(settings config.FormSettings, minDate string) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// registration only fails for empty tags or nil funcs
	_ = v.RegisterValidation("positive_decimal", positiveDecimal)
	_ = v.RegisterValidation("positive_int", positiveInt)
	_ = v.RegisterValidation("isodate", isoDate)
	_ = v.RegisterValidation("mindate", minDateRule)

	return &Validator{validate: v, settings: settings, minDate: minDate}
}

// Settings returns the form settings the validator enforces
func (v *Validator) Settings() config.FormSettings {
	return v.settings
}

// rule is one field check; checks run in declaration order
type rule struct {
	field string
	value string
	tag   string
}

func (v *Validator) run(locale string, rules []rule) FieldErrors {
	var errs FieldErrors
	for _, r := range rules {
		err := v.validate.Var(r.value, r.tag)
		if err == nil {
			continue
		}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			errs = append(errs, FieldError{Field: r.field, Message: i18n.T(locale, i18n.MsgInvalidRequest)})
			continue
		}
		errs = append(errs, FieldError{Field: r.field, Message: message(locale, r.field, verrs[0])})
	}
	return errs
}

func message(locale, field string, fe validator.FieldError) string {
	label := i18n.Field(locale, field)
	switch fe.Tag() {
	case "required":
		return i18n.T(locale, i18n.MsgFieldRequired, label)
	case "positive_decimal":
		return i18n.T(locale, i18n.MsgPositiveNumber, label)
	case "positive_int":
		return i18n.T(locale, i18n.MsgPositiveInteger, label)
	case "isodate":
		return i18n.T(locale, i18n.MsgInvalidDate, label)
	case "mindate":
		return i18n.T(locale, i18n.MsgDateBeforeMin, label, fe.Param())
	case "oneof":
		return i18n.T(locale, i18n.MsgInvalidDebtType, label)
	case "max":
		return i18n.T(locale, i18n.MsgTooLong, label)
	default:
		return i18n.T(locale, i18n.MsgInvalidRequest)
	}
}

func requiredTag(required bool, rest string) string {
	prefix := "omitempty"
	if required {
		prefix = "required"
	}
	if rest == "" {
		return prefix
	}
	return prefix + "," + rest
}

func positiveDecimal(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && d.IsPositive()
}

func positiveInt(fl validator.FieldLevel) bool {
	n, err := strconv.ParseInt(fl.Field().String(), 10, 32)
	return err == nil && n > 0
}

func isoDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(models.DateLayout, fl.Field().String())
	return err == nil
}

func minDateRule(fl validator.FieldLevel) bool {
	floor, err := time.Parse(models.DateLayout, fl.Param())
	if err != nil {
		return true
	}
	d, err := time.Parse(models.DateLayout, fl.Field().String())
	if err != nil {
		return false
	}
	return !d.Before(floor)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
