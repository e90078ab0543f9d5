package repositories

import "time"

const (
	Day   = 24 * time.Hour
	Month = 30 * Day
)

// Periods holds two contiguous equal-length windows ending at End:
// previous = [PreviousStart, CurrentStart), current = [CurrentStart, End).
type Periods struct {
	PreviousStart time.Time
	CurrentStart  time.Time
	End           time.Time
}

func TrailingPeriods(now time.Time, length time.Duration) Periods {
	return Periods{
		PreviousStart: now.Add(-2 * length),
		CurrentStart:  now.Add(-length),
		End:           now,
	}
}

type Window struct {
	From time.Time
	To   time.Time
}

func TrailingWindow(now time.Time, length time.Duration) Window {
	return Window{From: now.Add(-length), To: now}
}

func (p Periods) Current() Window {
	return Window{From: p.CurrentStart, To: p.End}
}
