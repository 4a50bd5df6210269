// Package fx holds FX reference data: currencies, currency pairs and the
// quoting conventions bound to each pair.
package fx

import (
	"fmt"

	"github.com/newthinker/finquant/internal/core"
)

// Currency is an ISO 4217 code from the supported set.
type Currency string

const (
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	USD Currency = "USD"
	CAD Currency = "CAD"
	JPY Currency = "JPY"
)

var currencies = []Currency{EUR, GBP, USD, CAD, JPY}

// Currencies returns the supported currencies.
func Currencies() []Currency {
	return append([]Currency(nil), currencies...)
}

func (c Currency) String() string {
	return string(c)
}

// ParseCurrency parses a three-letter code. Codes are case sensitive.
func ParseCurrency(s string) (Currency, error) {
	for _, c := range currencies {
		if string(c) == s {
			return c, nil
		}
	}
	return "", core.WrapError(core.ErrUnknownCurrency, fmt.Errorf("%q", s))
}

// MarshalText implements encoding.TextMarshaler.
func (c Currency) MarshalText() ([]byte, error) {
	if _, err := ParseCurrency(string(c)); err != nil {
		return nil, err
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Currency) UnmarshalText(text []byte) error {
	parsed, err := ParseCurrency(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
