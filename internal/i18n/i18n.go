// Package i18n holds the user-facing message catalog (es, en, fa).
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys
const (
	MsgFieldRequired   = "validation.required"
	MsgPositiveNumber  = "validation.positive_number"
	MsgPositiveInteger = "validation.positive_integer"
	MsgInvalidDate     = "validation.invalid_date"
	MsgDateBeforeMin   = "validation.date_before_min"
	MsgInvalidDebtType = "validation.invalid_debt_type"
	MsgTooLong         = "validation.too_long"

	MsgInvalidRequest   = "error.invalid_request"
	MsgNotFound         = "error.not_found"
	MsgUnauthorized     = "error.unauthorized"
	MsgForbidden        = "error.forbidden"
	MsgInvalidState     = "error.invalid_state"
	MsgFeatureDisabled  = "error.feature_disabled"
	MsgInternal         = "error.internal"
	MsgLoadFailed       = "error.load_failed"
	MsgCreateDebtFailed = "error.create_debt_failed"
	MsgCreatePayFailed  = "error.create_payment_failed"
	MsgStatusFailed     = "error.update_status_failed"
	MsgDuplicate        = "error.duplicate"
)

// Persian is not among the predefined tags of x/text/language
var Persian = language.MustParse("fa")

// Supported lists the catalog languages, the first one being the fallback
var Supported = []language.Tag{language.Spanish, language.English, Persian}

var (
	cat     = build()
	matcher = language.NewMatcher(Supported)
)

// Tag resolves a locale string or Accept-Language header to a supported tag
func Tag(locale string) language.Tag {
	if locale == "" {
		return Supported[0]
	}
	tags, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(tags) == 0 {
		return Supported[0]
	}
	_, idx, _ := matcher.Match(tags...)
	return Supported[idx]
}

// Printer returns a printer bound to the message catalog
func Printer(locale string) *message.Printer {
	return message.NewPrinter(Tag(locale), message.Catalog(cat))
}

// T translates key for locale, formatting args into the message
func T(locale, key string, args ...interface{}) string {
	return Printer(locale).Sprintf(key, args...)
}

// Field returns the localized label of an input field
func Field(locale, field string) string {
	key := "field." + field
	label := Printer(locale).Sprintf(key)
	if label == key {
		return field
	}
	return label
}

func build() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.Spanish))
	for tag, entries := range messages {
		for key, msg := range entries {
			// keys are fixed literals, an error here is a programming mistake
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}
