package translation

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol returns the display symbol for an ISO 4217 currency code
// under the given display locale. For the US Dollar the symbol is "$" under
// en-US and may be "US$" elsewhere; only the code is stable across
// environments. This is the one translation with an external dependency
// (the locale database bundled with the currency tables).
func CurrencySymbol(code string, locale language.Tag) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", ErrMissingCurrencyCode
	}

	unit, err := currency.ParseISO(code)
	if err != nil || unit == currency.XXX {
		return "", &InvalidCurrencyCodeError{Code: code}
	}

	printer := message.NewPrinter(locale)
	return printer.Sprint(currency.Symbol(unit)), nil
}

// ParseDisplayLocale parses a BCP 47 locale tag, falling back to en-US
// when the tag is empty or malformed.
func ParseDisplayLocale(tag string) language.Tag {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return language.AmericanEnglish
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return language.AmericanEnglish
	}
	return parsed
}
