package streak

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestAggregate_ThreeDayScenario(t *testing.T) {
	today := mustDate(t, "2024-01-03")
	samples := []DaySample{
		{Date: mustDate(t, "2024-01-01"), TotalMinutes: 30},
		{Date: mustDate(t, "2024-01-02"), TotalMinutes: 0},
		{Date: mustDate(t, "2024-01-03"), TotalMinutes: 45},
	}

	res := Aggregate(samples, 3, today)

	assert.Equal(t, Series(samples), res.Series)
	assert.Equal(t, Summary{CurrentStreak: 1, LongestStreak: 1, TotalMinutes: 75}, res.Summary)
}

func TestAggregate_EmptySamplesFillWindow(t *testing.T) {
	res := Aggregate(nil, 7, mustDate(t, "2024-03-10"))

	require.Len(t, res.Series, 7)
	want := []string{"2024-03-04", "2024-03-05", "2024-03-06", "2024-03-07", "2024-03-08", "2024-03-09", "2024-03-10"}
	for i, d := range res.Series {
		assert.Equal(t, want[i], d.Date.String())
		assert.Zero(t, d.TotalMinutes)
	}
	assert.Equal(t, Summary{}, res.Summary)
}

func TestAggregate_ZeroWindow(t *testing.T) {
	res := Aggregate([]DaySample{{Date: mustDate(t, "2024-01-01"), TotalMinutes: 10}}, 0, mustDate(t, "2024-01-01"))
	assert.Empty(t, res.Series)
	assert.Equal(t, Summary{}, res.Summary)
}

func TestAggregate_NegativeWindowPanics(t *testing.T) {
	assert.Panics(t, func() { Aggregate(nil, -1, mustDate(t, "2024-01-01")) })
}

func TestAggregate_UnorderedAndOutOfWindow(t *testing.T) {
	today := mustDate(t, "2024-05-10")
	samples := []DaySample{
		{Date: mustDate(t, "2024-05-10"), TotalMinutes: 5},
		{Date: mustDate(t, "2023-01-01"), TotalMinutes: 999},
		{Date: mustDate(t, "2024-05-09"), TotalMinutes: 20},
		{Date: mustDate(t, "2024-05-11"), TotalMinutes: 999},
	}

	res := Aggregate(samples, 3, today)

	assert.Equal(t, []int{0, 20, 5}, minutesOf(res.Series))
	assert.Equal(t, Summary{CurrentStreak: 2, LongestStreak: 2, TotalMinutes: 25}, res.Summary)
}

func TestAggregate_LongestEarlierThanCurrent(t *testing.T) {
	today := mustDate(t, "2024-01-08")
	var samples []DaySample
	for i, m := range []int{10, 10, 10, 10, 0, 0, 10, 10} {
		samples = append(samples, DaySample{Date: mustDate(t, "2024-01-01").AddDays(i), TotalMinutes: m})
	}

	res := Aggregate(samples, 8, today)

	assert.Equal(t, 2, res.Summary.CurrentStreak)
	assert.Equal(t, 4, res.Summary.LongestStreak)
	assert.Equal(t, 60, res.Summary.TotalMinutes)
}

func TestAggregate_TrailingZeroResetsCurrent(t *testing.T) {
	today := mustDate(t, "2024-01-03")
	samples := []DaySample{
		{Date: mustDate(t, "2024-01-01"), TotalMinutes: 30},
		{Date: mustDate(t, "2024-01-02"), TotalMinutes: 30},
	}
	res := Aggregate(samples, 3, today)
	assert.Equal(t, 0, res.Summary.CurrentStreak)
	assert.Equal(t, 2, res.Summary.LongestStreak)
}

func TestAggregate_CrossesLeapDayAndYear(t *testing.T) {
	res := Aggregate(nil, 3, mustDate(t, "2024-03-01"))
	assert.Equal(t, []string{"2024-02-28", "2024-02-29", "2024-03-01"}, datesOf(res.Series))

	res = Aggregate(nil, 3, mustDate(t, "2025-01-01"))
	assert.Equal(t, []string{"2024-12-30", "2024-12-31", "2025-01-01"}, datesOf(res.Series))

	res = Aggregate(nil, 2, mustDate(t, "2023-03-01"))
	assert.Equal(t, []string{"2023-02-28", "2023-03-01"}, datesOf(res.Series))
}

func TestAggregate_FullYearIsContiguous(t *testing.T) {
	today := mustDate(t, "2024-12-31")
	res := Aggregate(nil, DefaultWindowDays, today)

	require.Len(t, res.Series, DefaultWindowDays)
	assert.Equal(t, "2024-01-02", res.Series[0].Date.String())
	for i := 1; i < len(res.Series); i++ {
		assert.Equal(t, res.Series[i-1].Date.AddDays(1), res.Series[i].Date, "gap at %d", i)
	}
}

func TestAggregate_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	today := mustDate(t, "2024-06-15")

	for iter := 0; iter < 200; iter++ {
		w := rng.Intn(60)
		var samples []DaySample
		for i := 0; i < w; i++ {
			if rng.Intn(3) > 0 {
				samples = append(samples, DaySample{Date: today.AddDays(-i), TotalMinutes: rng.Intn(4) * 15})
			}
		}

		res := Aggregate(samples, w, today)

		require.Len(t, res.Series, w)
		assert.GreaterOrEqual(t, res.Summary.LongestStreak, res.Summary.CurrentStreak)
		sum := 0
		for _, d := range res.Series {
			sum += d.TotalMinutes
		}
		assert.Equal(t, sum, res.Summary.TotalMinutes)
	}
}

func TestAggregate_AllPositive(t *testing.T) {
	today := mustDate(t, "2024-02-10")
	for _, w := range []int{1, 7, 30, 365} {
		var samples []DaySample
		for i := 0; i < w; i++ {
			samples = append(samples, DaySample{Date: today.AddDays(-i), TotalMinutes: 1})
		}
		res := Aggregate(samples, w, today)
		assert.Equal(t, w, res.Summary.CurrentStreak)
		assert.Equal(t, w, res.Summary.LongestStreak)
	}
}

func TestAggregate_AllZeroSamples(t *testing.T) {
	today := mustDate(t, "2024-02-10")
	samples := []DaySample{
		{Date: today, TotalMinutes: 0},
		{Date: today.AddDays(-3), TotalMinutes: 0},
	}
	res := Aggregate(samples, 10, today)
	assert.Equal(t, Summary{}, res.Summary)
}

func TestLevels_DefaultBands(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "none"},
		{29, "none"},
		{30, "low"},
		{59, "low"},
		{60, "medium"},
		{119, "medium"},
		{120, "high"},
		{239, "high"},
		{240, "max"},
		{10000, "max"},
		{-5, "none"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultLevels.Band(tt.minutes).Token, "minutes=%d", tt.minutes)
	}
}

func TestLevels_Monotonic(t *testing.T) {
	prev := 0
	for m := 0; m <= 500; m++ {
		lvl := DefaultLevels.Level(m)
		assert.GreaterOrEqual(t, lvl, prev, "minutes=%d", m)
		prev = lvl
	}
}

func TestLevels_Validate(t *testing.T) {
	assert.NoError(t, DefaultLevels.Validate())
	assert.Error(t, Levels{}.Validate())
	assert.Error(t, Levels{{Threshold: 5}}.Validate())
	assert.Error(t, Levels{{Threshold: 0}, {Threshold: 30}, {Threshold: 30}}.Validate())
}

func TestParseDate_Invalid(t *testing.T) {
	for _, s := range []string{"", "2024-13-01", "2024/01/01", "2023-02-29"} {
		_, err := ParseDate(s)
		assert.Error(t, err, s)
	}
}

func TestDateOf_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	ts := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-02", DateOf(ts.In(loc)).String())
	assert.Equal(t, "2024-01-01", DateOf(ts).String())
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 366, DaysBetween(mustDate(t, "2024-01-01"), mustDate(t, "2025-01-01")))
	assert.Equal(t, -1, DaysBetween(mustDate(t, "2024-03-01"), mustDate(t, "2024-02-29")))
}

func TestSeries_Weeks(t *testing.T) {
	// 2024-03-06 is a Wednesday.
	res := Aggregate(nil, 10, mustDate(t, "2024-03-15"))
	weeks := res.Series.Weeks(time.Monday)

	require.Len(t, weeks, 2)
	require.Len(t, weeks[0], 7)
	assert.True(t, weeks[0][0].Pad)
	assert.True(t, weeks[0][1].Pad)
	assert.False(t, weeks[0][2].Pad)
	assert.Equal(t, "2024-03-06", weeks[0][2].Date.String())
	assert.Equal(t, time.Monday, weeks[1][0].Date.Weekday())
	assert.Len(t, weeks[1], 5)

	sunday := res.Series.Weeks(time.Sunday)
	assert.Equal(t, time.Sunday, sunday[0][0].Date.Weekday())
	assert.Nil(t, Series{}.Weeks(time.Monday))
}

func TestSeries_ActiveDaysAndLast(t *testing.T) {
	today := mustDate(t, "2024-01-03")
	res := Aggregate([]DaySample{{Date: today, TotalMinutes: 5}}, 3, today)
	assert.Equal(t, 1, res.Series.ActiveDays())
	last, ok := res.Series.Last()
	require.True(t, ok)
	assert.Equal(t, today, last.Date)

	_, ok = Series{}.Last()
	assert.False(t, ok)
}

func minutesOf(s Series) []int {
	out := make([]int, len(s))
	for i, d := range s {
		out[i] = d.TotalMinutes
	}
	return out
}

func datesOf(s Series) []string {
	out := make([]string, len(s))
	for i, d := range s {
		out[i] = d.Date.String()
	}
	return out
}
