package streak

import "time"

// Cell is one square of the calendar grid. Pad cells fill the days before
// the window starts so every column begins on the same weekday.
type Cell struct {
	DaySample
	Pad bool
}

// Weeks groups the series into columns of seven cells, each column starting
// on weekStart. Only the first column is padded; the last may be short.
func (s Series) Weeks(weekStart time.Weekday) [][]Cell {
	if len(s) == 0 {
		return nil
	}

	lead := (int(s[0].Date.Weekday()) - int(weekStart) + 7) % 7
	cells := make([]Cell, 0, lead+len(s))
	for i := lead; i > 0; i-- {
		cells = append(cells, Cell{DaySample: DaySample{Date: s[0].Date.AddDays(-i)}, Pad: true})
	}
	for _, d := range s {
		cells = append(cells, Cell{DaySample: d})
	}

	var weeks [][]Cell
	for i := 0; i < len(cells); i += 7 {
		end := i + 7
		if end > len(cells) {
			end = len(cells)
		}
		weeks = append(weeks, cells[i:end])
	}
	return weeks
}
