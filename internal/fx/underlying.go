package fx

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/newthinker/finquant/internal/core"
	"github.com/newthinker/finquant/internal/daycount"
)

// Underlying is an FX pair symbol: foreign (base) code followed by
// domestic (quote) code, e.g. EURUSD.
type Underlying string

const (
	EURGBP Underlying = "EURGBP"
	EURUSD Underlying = "EURUSD"
	EURCAD Underlying = "EURCAD"
	EURJPY Underlying = "EURJPY"
	GBPUSD Underlying = "GBPUSD"
	GBPCAD Underlying = "GBPCAD"
	GBPJPY Underlying = "GBPJPY"
	USDCAD Underlying = "USDCAD"
	USDJPY Underlying = "USDJPY"
	CADJPY Underlying = "CADJPY"
)

var underlyings = []Underlying{
	EURGBP, EURUSD, EURCAD, EURJPY,
	GBPUSD, GBPCAD, GBPJPY,
	USDCAD, USDJPY,
	CADJPY,
}

// Underlyings returns the supported pairs.
func Underlyings() []Underlying {
	return append([]Underlying(nil), underlyings...)
}

func (u Underlying) String() string {
	return string(u)
}

// ParseUnderlying parses a six-letter pair symbol.
func ParseUnderlying(s string) (Underlying, error) {
	for _, u := range underlyings {
		if string(u) == s {
			return u, nil
		}
	}
	return "", core.WrapError(core.ErrUnknownUnderlying, fmt.Errorf("%q", s))
}

// MarshalText implements encoding.TextMarshaler.
func (u Underlying) MarshalText() ([]byte, error) {
	if _, err := ParseUnderlying(string(u)); err != nil {
		return nil, err
	}
	return []byte(u), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Underlying) UnmarshalText(text []byte) error {
	parsed, err := ParseUnderlying(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// invariant panics for a value outside the closed set. Reaching it is a
// programming error, never bad input.
func invariant(u Underlying, what string) {
	panic(core.WrapError(core.ErrInvariant, fmt.Errorf("%s: no entry for underlying %q", what, string(u))))
}

// DayCount returns the accrual convention of the pair.
func (u Underlying) DayCount() daycount.DayCounter {
	switch u {
	case EURUSD, USDJPY:
		return daycount.Actual360{}
	case EURGBP, EURCAD, EURJPY, GBPUSD, GBPCAD, GBPJPY, USDCAD, CADJPY:
		return daycount.Actual365{}
	}
	invariant(u, "day count")
	return nil
}

// Settles returns the settlement lag in business days.
func (u Underlying) Settles() int {
	switch u {
	case USDCAD:
		return 1
	case EURGBP, EURUSD, EURCAD, EURJPY, GBPUSD, GBPCAD, GBPJPY, USDJPY, CADJPY:
		return 2
	}
	invariant(u, "settlement lag")
	return 0
}

// Hours returns the daily quoting cutoff. It is 22:00 for every pair.
func (u Underlying) Hours() civil.Time {
	return civil.Time{Hour: 22}
}

// FrnCurrency returns the foreign (base) currency, the first three letters.
func (u Underlying) FrnCurrency() Currency {
	return u.half(0)
}

// DomCurrency returns the domestic (quote) currency, the last three letters.
func (u Underlying) DomCurrency() Currency {
	return u.half(3)
}

func (u Underlying) half(offset int) Currency {
	if len(u) != 6 {
		invariant(u, "currency decomposition")
	}
	c, err := ParseCurrency(string(u)[offset : offset+3])
	if err != nil {
		panic(core.WrapError(core.ErrInvariant, fmt.Errorf("decomposing %q: %w", string(u), err)))
	}
	return c
}

// Conventions is the flattened reference data of a pair.
type Conventions struct {
	Pair       Underlying `json:"pair"`
	Foreign    Currency   `json:"foreign"`
	Domestic   Currency   `json:"domestic"`
	DayCount   string     `json:"day_count"`
	SettleDays int        `json:"settle_days"`
	Cutoff     civil.Time `json:"cutoff"`
}

// Conventions collects every lookup for the pair.
func (u Underlying) Conventions() Conventions {
	return Conventions{
		Pair:       u,
		Foreign:    u.FrnCurrency(),
		Domestic:   u.DomCurrency(),
		DayCount:   u.DayCount().Name(),
		SettleDays: u.Settles(),
		Cutoff:     u.Hours(),
	}
}

// Greeks is the risk surface of an FX derivative. Pricers live outside
// this package.
type Greeks interface {
	Delta() float64
	Gamma() float64
	Vega() float64
}
