package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestTag(t *testing.T) {
	assert.Equal(t, language.Spanish, Tag(""))
	assert.Equal(t, language.English, Tag("en-US,en;q=0.9"))
	assert.Equal(t, Persian, Tag("fa-IR"))
	assert.Equal(t, language.Spanish, Tag("de"))
	assert.Equal(t, language.Spanish, Tag(";;;"))
}

func TestT(t *testing.T) {
	assert.Equal(t, "Monto es obligatorio", T("es", MsgFieldRequired, Field("es", "amount")))
	assert.Equal(t, "Amount is required", T("en", MsgFieldRequired, Field("en", "amount")))
	assert.Equal(t, "Record not found", T("en", MsgNotFound))
}

func TestField_UnknownFallsBackToName(t *testing.T) {
	assert.Equal(t, "color", Field("en", "color"))
}
