package fx

import (
	"encoding/json"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/newthinker/finquant/internal/core"
	"github.com/newthinker/finquant/internal/daycount"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomFrnCurrency(t *testing.T) {
	assert.Equal(t, USD, EURUSD.DomCurrency())
	assert.Equal(t, EUR, EURUSD.FrnCurrency())
	assert.Equal(t, JPY, CADJPY.DomCurrency())
	assert.Equal(t, CAD, CADJPY.FrnCurrency())
}

func TestDecomposition_ReconstructsSymbol(t *testing.T) {
	require.Len(t, Underlyings(), 10)
	for _, u := range Underlyings() {
		t.Run(u.String(), func(t *testing.T) {
			assert.Equal(t, u.String(), u.FrnCurrency().String()+u.DomCurrency().String())
		})
	}
}

func TestSettles(t *testing.T) {
	assert.Equal(t, 1, USDCAD.Settles())
	for _, u := range Underlyings() {
		if u == USDCAD {
			continue
		}
		assert.Equal(t, 2, u.Settles(), "pair %s", u)
	}
}

func TestDayCount(t *testing.T) {
	jan1 := civil.Date{Year: 2023, Month: 1, Day: 1}
	feb1 := civil.Date{Year: 2023, Month: 2, Day: 1}

	for _, u := range Underlyings() {
		t.Run(u.String(), func(t *testing.T) {
			dc := u.DayCount()
			switch u {
			case EURUSD, USDJPY:
				assert.Equal(t, daycount.Actual360{}, dc)
				assert.Equal(t, 31.0/360.0, dc.YearFraction(jan1, feb1))
			default:
				assert.Equal(t, daycount.Actual365{}, dc)
				assert.Equal(t, 31.0/365.0, dc.YearFraction(jan1, feb1))
			}
		})
	}
}

func TestHours(t *testing.T) {
	want := civil.Time{Hour: 22, Minute: 0, Second: 0, Nanosecond: 0}
	for _, u := range Underlyings() {
		assert.Equal(t, want, u.Hours(), "pair %s", u)
	}
	assert.Equal(t, "22:00:00", EURUSD.Hours().String())
}

func TestHours_ReturnsFreshValue(t *testing.T) {
	h := EURUSD.Hours()
	h.Hour = 17

	for _, u := range Underlyings() {
		assert.Equal(t, civil.Time{Hour: 22}, u.Hours(), "pair %s", u)
	}
}

func TestParseUnderlying(t *testing.T) {
	u, err := ParseUnderlying("GBPJPY")
	require.NoError(t, err)
	assert.Equal(t, GBPJPY, u)

	for _, s := range []string{"", "eurusd", "USDEUR", "EURCHF", "EUR/USD"} {
		_, err := ParseUnderlying(s)
		assert.ErrorIs(t, err, core.ErrUnknownUnderlying, "input %q", s)
	}
}

func TestUnderlying_TextRoundTrip(t *testing.T) {
	for _, u := range Underlyings() {
		text, err := u.MarshalText()
		require.NoError(t, err)

		var got Underlying
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, u, got)
	}
}

func TestUnderlying_OutsideClosedSetPanics(t *testing.T) {
	bogus := Underlying("EURCHF")

	for name, fn := range map[string]func(){
		"day count": func() { bogus.DayCount() },
		"settles":   func() { bogus.Settles() },
		"domestic":  func() { bogus.DomCurrency() },
		"short":     func() { Underlying("EUR").FrnCurrency() },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				r := recover()
				require.NotNil(t, r)
				err, ok := r.(error)
				require.True(t, ok)
				assert.ErrorIs(t, err, core.ErrInvariant)
			}()
			fn()
		})
	}
}

func TestConventions_JSON(t *testing.T) {
	data, err := json.Marshal(USDCAD.Conventions())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"pair": "USDCAD",
		"foreign": "USD",
		"domestic": "CAD",
		"day_count": "ACT/365",
		"settle_days": 1,
		"cutoff": "22:00:00"
	}`, string(data))
}
