package currency

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "USD 500.00", Format(500, "usd", "en"))
	assert.Equal(t, "EUR 12.50", Format(12.5, "EUR", "not a tag!"))
	assert.Equal(t, "300.00", Format(300, "", "en"))
}

func TestFormat_UsesLocaleDecimalSeparator(t *testing.T) {
	got := Format(500, "BRL", "pt-BR")
	assert.True(t, strings.HasPrefix(got, "BRL "), got)
	assert.True(t, strings.HasSuffix(got, ",00"), got)
}

func TestFormat_KeepsUnknownCode(t *testing.T) {
	assert.True(t, strings.HasPrefix(Format(1, "xyz1", "en"), "XYZ1 "))
}
