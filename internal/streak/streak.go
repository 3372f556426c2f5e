// Package streak turns sparse per-day study totals into a dense trailing
// window and derives the streak figures shown on the contribution calendar.
package streak

import "fmt"

// DefaultWindowDays is the trailing span shown on the contribution calendar.
const DefaultWindowDays = 365

// DaySample is the study time logged on one calendar day.
type DaySample struct {
	Date         Date
	TotalMinutes int
}

// Series is a dense run of days in ascending order with no gaps.
type Series []DaySample

type Summary struct {
	CurrentStreak int
	LongestStreak int
	TotalMinutes  int
}

type Result struct {
	Series  Series
	Summary Summary
}

// Aggregate fills the window [today-(windowDays-1), today] from samples and
// computes the streak summary in a single pass. Missing days count as zero
// and samples outside the window are ignored. Callers must not pass two
// samples for the same date.
//
// A negative window is a caller bug and panics.
func Aggregate(samples []DaySample, windowDays int, today Date) Result {
	if windowDays < 0 {
		panic(fmt.Sprintf("streak: negative window %d", windowDays))
	}
	if windowDays == 0 {
		return Result{Series: Series{}}
	}

	byDate := make(map[Date]int, len(samples))
	for _, s := range samples {
		byDate[s.Date] = s.TotalMinutes
	}

	series := make(Series, windowDays)
	start := today.AddDays(-(windowDays - 1))
	for i := range series {
		d := start.AddDays(i)
		series[i] = DaySample{Date: d, TotalMinutes: byDate[d]}
	}

	return Result{Series: series, Summary: Summarize(series)}
}

// Summarize walks a series once. The current streak is the run still open
// at the last day; the longest is the best run seen anywhere.
func Summarize(series Series) Summary {
	var sum Summary
	run := 0
	for _, day := range series {
		if day.TotalMinutes > 0 {
			run++
			if run > sum.LongestStreak {
				sum.LongestStreak = run
			}
		} else {
			run = 0
		}
		sum.TotalMinutes += day.TotalMinutes
	}
	sum.CurrentStreak = run
	return sum
}

// ActiveDays counts days with any study time.
func (s Series) ActiveDays() int {
	n := 0
	for _, d := range s {
		if d.TotalMinutes > 0 {
			n++
		}
	}
	return n
}

// Last returns the final day of the series, or false when it is empty.
func (s Series) Last() (DaySample, bool) {
	if len(s) == 0 {
		return DaySample{}, false
	}
	return s[len(s)-1], true
}
