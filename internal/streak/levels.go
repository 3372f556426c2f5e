package streak

import (
	"errors"
	"fmt"
)

// Band is one intensity bucket on the calendar. Token names the colour the
// renderer uses for the bucket.
type Band struct {
	Threshold int
	Token     string
}

// Levels is an ascending list of bands whose first threshold is 0.
type Levels []Band

// DefaultLevels buckets a day at 0, 30, 60, 120 and 240 minutes.
var DefaultLevels = Levels{
	{Threshold: 0, Token: "none"},
	{Threshold: 30, Token: "low"},
	{Threshold: 60, Token: "medium"},
	{Threshold: 120, Token: "high"},
	{Threshold: 240, Token: "max"},
}

var errEmptyLevels = errors.New("levels: no bands")

func (l Levels) Validate() error {
	if len(l) == 0 {
		return errEmptyLevels
	}
	if l[0].Threshold != 0 {
		return fmt.Errorf("levels: first threshold is %d, want 0", l[0].Threshold)
	}
	for i := 1; i < len(l); i++ {
		if l[i].Threshold <= l[i-1].Threshold {
			return fmt.Errorf("levels: threshold %d at %d is not above %d", l[i].Threshold, i, l[i-1].Threshold)
		}
	}
	return nil
}

// Level returns the index of the highest band whose threshold is <= minutes.
// Negative minutes fall into band 0.
func (l Levels) Level(minutes int) int {
	level := 0
	for i, b := range l {
		if b.Threshold > minutes {
			break
		}
		level = i
	}
	return level
}

// Band returns the band a day with the given minutes belongs to.
func (l Levels) Band(minutes int) Band {
	if len(l) == 0 {
		return Band{}
	}
	return l[l.Level(minutes)]
}
