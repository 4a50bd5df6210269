package publish

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/newthinker/finquant/internal/calendar"
	"github.com/newthinker/finquant/internal/core"
	"github.com/newthinker/finquant/internal/metrics"
	"github.com/newthinker/finquant/internal/storage/archive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStore(t *testing.T) *archive.LocalFS {
	t.Helper()
	store, err := archive.NewLocalFS(t.TempDir())
	require.NoError(t, err)
	return store
}

func snapshotCount(t *testing.T, reg *metrics.Registry, name, status string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != "finquant_snapshots_published_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["calendar"] == name && labels["status"] == status {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.ErrorIs(t, err, core.ErrConfigInvalid)
}

func TestBuild_Taiwan2023(t *testing.T) {
	snap := Build("taiwan", calendar.Taiwan(), 2023)

	require.Len(t, snap.Days, 365)
	assert.Equal(t, civil.Date{Year: 2023, Month: time.January, Day: 1}, snap.Days[0].Date)
	assert.Equal(t, civil.Date{Year: 2023, Month: time.December, Day: 31}, snap.Days[364].Date)
	assert.True(t, snap.Covered)

	// 2023 has 260 weekdays, 18 of them holidays.
	assert.Equal(t, 242, snap.BusinessDays())
}

func TestBuild_LeapYear(t *testing.T) {
	snap := Build("weekends", calendar.WeekendsOnly{}, 2024)

	assert.Len(t, snap.Days, 366)
	assert.True(t, snap.Covered)
	assert.Equal(t, 262, snap.BusinessDays())
}

func TestBuild_Uncovered(t *testing.T) {
	snap := Build("taiwan", calendar.Taiwan(), 2030)
	assert.False(t, snap.Covered)
}

func TestSnapshot_EncodeCSV(t *testing.T) {
	snap := Build("weekends", calendar.WeekendsOnly{}, 2023)

	data, err := snap.Encode(FormatCSV)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 366)
	assert.Equal(t, []string{"date", "business_day", "weekend"}, rows[0])
	// 2023-01-01 is a Sunday, 2023-01-02 a Monday.
	assert.Equal(t, []string{"2023-01-01", "false", "true"}, rows[1])
	assert.Equal(t, []string{"2023-01-02", "true", "false"}, rows[2])
}

func TestSnapshot_EncodeJSON(t *testing.T) {
	snap := Build("taiwan", calendar.Taiwan(), 2023)

	data, err := snap.Encode(FormatJSON)
	require.NoError(t, err)

	var decoded struct {
		Calendar string `json:"calendar"`
		Year     int    `json:"year"`
		Covered  bool   `json:"covered"`
		Days     []struct {
			Date        string `json:"date"`
			BusinessDay bool   `json:"business_day"`
			Weekend     bool   `json:"weekend"`
		} `json:"days"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "taiwan", decoded.Calendar)
	assert.Equal(t, 2023, decoded.Year)
	assert.True(t, decoded.Covered)
	require.Len(t, decoded.Days, 365)
	// 2023-01-02 is a bridge holiday.
	assert.Equal(t, "2023-01-02", decoded.Days[1].Date)
	assert.False(t, decoded.Days[1].BusinessDay)
	assert.False(t, decoded.Days[1].Weekend)
}

func TestSnapshot_EncodeUnknownFormat(t *testing.T) {
	_, err := Build("weekends", calendar.WeekendsOnly{}, 2023).Encode("xml")
	assert.ErrorIs(t, err, core.ErrConfigInvalid)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "calendars/taiwan/2023.csv", Key("taiwan", 2023, FormatCSV))
	assert.Equal(t, "calendars/weekends/2002.json", Key("weekends", 2002, FormatJSON))
	assert.Equal(t, "calendars/taiwan/2023.csv", Key(" Taiwan", 2023, FormatCSV))
}

func TestPublisher_Publish(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	reg := metrics.NewRegistry()
	p := NewPublisher(store, reg, zap.NewNop())

	keys, err := p.Publish(ctx, "taiwan", calendar.Taiwan(), 2021, 2023, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"calendars/taiwan/2021.csv",
		"calendars/taiwan/2022.csv",
		"calendars/taiwan/2023.csv",
	}, keys)

	listed, err := store.List(ctx, "calendars/taiwan")
	require.NoError(t, err)
	assert.ElementsMatch(t, keys, listed)

	data, err := store.Read(ctx, "calendars/taiwan/2023.csv")
	require.NoError(t, err)
	want, err := Build("taiwan", calendar.Taiwan(), 2023).Encode(FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, want, data)

	assert.Equal(t, 3.0, snapshotCount(t, reg, "taiwan", "ok"))
}

func TestPublisher_NilMetrics(t *testing.T) {
	p := NewPublisher(newStore(t), nil, nil)
	keys, err := p.Publish(context.Background(), "weekends", calendar.WeekendsOnly{}, 2023, 2023, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []string{"calendars/weekends/2023.json"}, keys)
}

func TestPublisher_InvalidRange(t *testing.T) {
	p := NewPublisher(newStore(t), nil, nil)
	_, err := p.Publish(context.Background(), "weekends", calendar.WeekendsOnly{}, 2024, 2023, FormatCSV)
	assert.ErrorIs(t, err, core.ErrConfigInvalid)
}

func TestPublisher_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPublisher(newStore(t), nil, nil)
	keys, err := p.Publish(ctx, "weekends", calendar.WeekendsOnly{}, 2020, 2023, FormatCSV)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, keys)
}

type failingStore struct {
	archive.Storage
}

func (failingStore) Write(ctx context.Context, key string, data []byte) error {
	return core.WrapError(core.ErrStorageFailed, assert.AnError)
}

func TestPublisher_WriteFailure(t *testing.T) {
	reg := metrics.NewRegistry()
	p := NewPublisher(failingStore{}, reg, nil)

	keys, err := p.Publish(context.Background(), "weekends", calendar.WeekendsOnly{}, 2022, 2023, FormatCSV)
	assert.ErrorIs(t, err, core.ErrStorageFailed)
	assert.Empty(t, keys)
	assert.Equal(t, 1.0, snapshotCount(t, reg, "weekends", "error"))
}

func TestPublisher_SkipExisting(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.Write(ctx, "calendars/taiwan/2022.csv", []byte("kept")))

	reg := metrics.NewRegistry()
	p := NewPublisher(store, reg, nil)
	p.SetSkipExisting(true)

	keys, err := p.Publish(ctx, "taiwan", calendar.Taiwan(), 2021, 2023, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, []string{"calendars/taiwan/2021.csv", "calendars/taiwan/2023.csv"}, keys)

	data, err := store.Read(ctx, "calendars/taiwan/2022.csv")
	require.NoError(t, err)
	assert.Equal(t, "kept", string(data))
	assert.Equal(t, 1.0, snapshotCount(t, reg, "taiwan", "skipped"))
	assert.Equal(t, 2.0, snapshotCount(t, reg, "taiwan", "ok"))
}

func TestPublisher_StoredFetchRemove(t *testing.T) {
	ctx := context.Background()
	p := NewPublisher(newStore(t), nil, nil)

	_, err := p.Publish(ctx, "weekends", calendar.WeekendsOnly{}, 2022, 2023, FormatJSON)
	require.NoError(t, err)
	_, err = p.Publish(ctx, "taiwan", calendar.Taiwan(), 2023, 2023, FormatCSV)
	require.NoError(t, err)

	stored, err := p.Stored(ctx, "weekends")
	require.NoError(t, err)
	assert.Equal(t, []string{"calendars/weekends/2022.json", "calendars/weekends/2023.json"}, stored)

	data, err := p.Fetch(ctx, "TAIWAN", 2023, FormatCSV)
	require.NoError(t, err)
	want, err := Build("taiwan", calendar.Taiwan(), 2023).Encode(FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, want, data)

	require.NoError(t, p.Remove(ctx, "weekends", 2022, FormatJSON))
	stored, err = p.Stored(ctx, "weekends")
	require.NoError(t, err)
	assert.Equal(t, []string{"calendars/weekends/2023.json"}, stored)
}

func TestPublisher_FetchMissing(t *testing.T) {
	ctx := context.Background()
	p := NewPublisher(newStore(t), nil, nil)

	_, err := p.Fetch(ctx, "taiwan", 2023, FormatCSV)
	assert.ErrorIs(t, err, core.ErrSnapshotNotFound)

	err = p.Remove(ctx, "taiwan", 2023, FormatCSV)
	assert.ErrorIs(t, err, core.ErrSnapshotNotFound)

	stored, err := p.Stored(ctx, "taiwan")
	require.NoError(t, err)
	assert.Empty(t, stored)
}
