package meeting

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ===============================
// Recurrence
// ===============================

type Frequency string

const (
	FrequencyNone    Frequency = "NONE"
	FrequencyDaily   Frequency = "DAILY"
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
)

var ErrInvalidFrequency = errors.New("meeting: invalid recurrence frequency")

// Rule describes how a template meeting repeats. Weekdays uses ISO numbering
// (Monday=1 .. Sunday=7) and only applies to WEEKLY rules.
type Rule struct {
	Frequency   Frequency
	RepeatUntil time.Time
	Weekdays    []int
}

// ParseWeekdays parses the stored "1,3" form into ISO weekday numbers.
func ParseWeekdays(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || d < 1 || d > 7 {
			return nil, fmt.Errorf("meeting: invalid weekday %q", p)
		}
		days = append(days, d)
	}
	return days, nil
}

// ISOWeekday maps time.Weekday to ISO numbering (Monday=1 .. Sunday=7).
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// Expand produces the deterministic candidate slots for a template interval.
// Candidate 0 is the template's own slot and is always emitted, including for
// a WEEKLY rule whose weekday set does not contain the template's weekday:
// the template meeting already exists on that day, the set only filters the
// repeats. Subsequent candidates step forward by the rule's frequency until
// the stepped date passes RepeatUntil (inclusive). The expansion is pure:
// conflict handling happens when each candidate runs through the validator.
//
// Stepping:
//   - DAILY: one day at a time.
//   - WEEKLY with a weekday set: one day at a time, emitting only matching
//     weekdays; without a set: seven days at a time.
//   - MONTHLY: same day-of-month in the next month, December rolling into
//     January; months that lack the anchor day are skipped entirely.
func (r Rule) Expand(template Interval) ([]Interval, error) {
	template = template.WithDefaultEnd()
	if !template.Valid() {
		return nil, ErrInvalidInterval
	}

	switch r.Frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
	default:
		return nil, ErrInvalidFrequency
	}

	loc := template.Start.Location()
	duration := template.Duration()
	anchorDay := template.Start.Day()

	until := time.Date(
		r.RepeatUntil.Year(), r.RepeatUntil.Month(), r.RepeatUntil.Day(),
		0, 0, 0, 0,
		loc,
	)

	weekdays := make(map[int]struct{}, len(r.Weekdays))
	for _, d := range r.Weekdays {
		weekdays[d] = struct{}{}
	}

	out := []Interval{template}
	cur := time.Date(
		template.Start.Year(), template.Start.Month(), template.Start.Day(),
		0, 0, 0, 0,
		loc,
	)

	for {
		switch r.Frequency {
		case FrequencyDaily:
			cur = cur.AddDate(0, 0, 1)

		case FrequencyWeekly:
			if len(weekdays) > 0 {
				cur = cur.AddDate(0, 0, 1)
				if cur.After(until) {
					return out, nil
				}
				if _, ok := weekdays[ISOWeekday(cur)]; !ok {
					continue
				}
			} else {
				cur = cur.AddDate(0, 0, 7)
			}

		case FrequencyMonthly:
			y, m := cur.Year(), int(cur.Month())
			for {
				m++
				if m > 12 {
					m = 1
					y++
				}
				if anchorDay <= daysInMonth(y, time.Month(m)) {
					break
				}
			}
			cur = time.Date(y, time.Month(m), anchorDay, 0, 0, 0, 0, loc)
		}

		if cur.After(until) {
			return out, nil
		}

		start := time.Date(
			cur.Year(), cur.Month(), cur.Day(),
			template.Start.Hour(), template.Start.Minute(), template.Start.Second(), 0,
			loc,
		)
		out = append(out, Interval{Start: start, End: start.Add(duration)})
	}
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
