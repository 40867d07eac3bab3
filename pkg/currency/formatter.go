package currency

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const fallbackLanguage = "en"

// Format renders amount with the grouping and decimal separators of lang,
// prefixed by the ISO currency code. Unknown languages fall back to English
// and unknown codes are printed upper-cased as given.
func Format(amount float64, code, lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.MustParse(fallbackLanguage)
	}

	prefix := strings.ToUpper(strings.TrimSpace(code))
	if unit, err := currency.ParseISO(prefix); err == nil {
		prefix = unit.String()
	}

	p := message.NewPrinter(tag)
	formatted := p.Sprintf("%.2f", amount)
	if prefix == "" {
		return formatted
	}
	return prefix + " " + formatted
}
