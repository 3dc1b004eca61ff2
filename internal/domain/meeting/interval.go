package meeting

import "time"

// DefaultDuration fills in the end time when a request provides only a start.
const DefaultDuration = time.Hour

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func (iv Interval) Valid() bool {
	return iv.Start.Before(iv.End)
}

// Overlaps reports whether two half-open intervals share at least one instant.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// WithDefaultEnd returns the interval with a missing end filled as
// start + DefaultDuration. Computed once here, never as a side effect of
// persistence.
func (iv Interval) WithDefaultEnd() Interval {
	if iv.End.IsZero() {
		iv.End = iv.Start.Add(DefaultDuration)
	}
	return iv
}
