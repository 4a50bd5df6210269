// Package publish renders calendar snapshots and writes them to archive
// storage for downstream consumers.
package publish

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
	"github.com/newthinker/finquant/internal/calendar"
	"github.com/newthinker/finquant/internal/core"
)

// Format is a snapshot encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatJSON:
		return Format(s), nil
	}
	return "", core.WrapError(core.ErrConfigInvalid, fmt.Errorf("unknown snapshot format %q", s))
}

// Day is one row of a snapshot.
type Day struct {
	Date        civil.Date `json:"date"`
	BusinessDay bool       `json:"business_day"`
	Weekend     bool       `json:"weekend"`
}

// Snapshot is every date of one year with its business-day flag.
type Snapshot struct {
	Calendar string `json:"calendar"`
	Year     int    `json:"year"`
	Covered  bool   `json:"covered"`
	Days     []Day  `json:"days"`
}

// Build evaluates c on every date of year.
func Build(name string, c calendar.Calendar, year int) Snapshot {
	s := Snapshot{Calendar: name, Year: year, Covered: calendar.Covers(c, year)}
	for d := (civil.Date{Year: year, Month: time.January, Day: 1}); d.Year == year; d = d.AddDays(1) {
		s.Days = append(s.Days, Day{
			Date:        d,
			BusinessDay: c.IsBusinessDay(d),
			Weekend:     calendar.IsWeekend(d),
		})
	}
	return s
}

// BusinessDays counts the business days in the snapshot.
func (s Snapshot) BusinessDays() int {
	n := 0
	for _, d := range s.Days {
		if d.BusinessDay {
			n++
		}
	}
	return n
}

// Encode renders the snapshot in the given format.
func (s Snapshot) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(s, "", "  ")
	case FormatCSV:
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		w.Write([]string{"date", "business_day", "weekend"})
		for _, d := range s.Days {
			w.Write([]string{d.Date.String(), strconv.FormatBool(d.BusinessDay), strconv.FormatBool(d.Weekend)})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, fmt.Errorf("encoding csv: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, core.WrapError(core.ErrConfigInvalid, fmt.Errorf("unknown snapshot format %q", format))
	}
}

// Key is the storage key of a snapshot. Names are folded the way the
// calendar registry folds them.
func Key(name string, year int, format Format) string {
	return fmt.Sprintf("calendars/%s/%d.%s", calendar.Normalize(name), year, format)
}
