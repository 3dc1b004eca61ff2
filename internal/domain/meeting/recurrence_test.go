package meeting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func starts(ivs []Interval) []time.Time {
	out := make([]time.Time, len(ivs))
	for i, iv := range ivs {
		out[i] = iv.Start
	}
	return out
}

func TestParseWeekdays(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		days, err := ParseWeekdays("1,3")
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3}, days)
	})

	t.Run("empty means no filter", func(t *testing.T) {
		days, err := ParseWeekdays("")
		require.NoError(t, err)
		assert.Nil(t, days)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := ParseWeekdays("0,3")
		assert.Error(t, err)

		_, err = ParseWeekdays("8")
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseWeekdays("mon,wed")
		assert.Error(t, err)
	})
}

func TestISOWeekday(t *testing.T) {
	// 2024-01-01 is a Monday.
	assert.Equal(t, 1, ISOWeekday(day(2024, time.January, 1, 0)))
	// 2024-01-07 is a Sunday.
	assert.Equal(t, 7, ISOWeekday(day(2024, time.January, 7, 0)))
}

func TestExpandDaily(t *testing.T) {
	rule := Rule{
		Frequency:   FrequencyDaily,
		RepeatUntil: day(2024, time.June, 14, 0),
	}

	got, err := rule.Expand(Interval{
		Start: day(2024, time.June, 10, 9),
		End:   day(2024, time.June, 10, 10),
	})
	require.NoError(t, err)

	// Template day through the until day, inclusive.
	require.Len(t, got, 5)
	assert.Equal(t, day(2024, time.June, 10, 9), got[0].Start)
	assert.Equal(t, day(2024, time.June, 14, 9), got[4].Start)
	for _, iv := range got {
		assert.Equal(t, time.Hour, iv.Duration())
	}
}

func TestExpandWeeklyWithWeekdaySet(t *testing.T) {
	// Template on Monday 2024-01-01, repeating Mondays and Wednesdays until
	// 2024-01-15.
	rule := Rule{
		Frequency:   FrequencyWeekly,
		RepeatUntil: day(2024, time.January, 15, 0),
		Weekdays:    []int{1, 3},
	}

	got, err := rule.Expand(Interval{
		Start: day(2024, time.January, 1, 9),
		End:   day(2024, time.January, 1, 10),
	})
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		day(2024, time.January, 1, 9),
		day(2024, time.January, 3, 9),
		day(2024, time.January, 8, 9),
		day(2024, time.January, 10, 9),
		day(2024, time.January, 15, 9),
	}, starts(got))
}

func TestExpandWeeklyKeepsTemplateOutsideWeekdaySet(t *testing.T) {
	// Template on Monday 2024-01-01 but the rule only repeats Wednesdays. The
	// template's own slot is still candidate 0; the weekday set filters only
	// the generated repeats.
	rule := Rule{
		Frequency:   FrequencyWeekly,
		RepeatUntil: day(2024, time.January, 10, 0),
		Weekdays:    []int{3},
	}

	got, err := rule.Expand(Interval{
		Start: day(2024, time.January, 1, 9),
		End:   day(2024, time.January, 1, 10),
	})
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		day(2024, time.January, 1, 9),
		day(2024, time.January, 3, 9),
		day(2024, time.January, 10, 9),
	}, starts(got))
}

func TestExpandWeeklyWithoutWeekdaySet(t *testing.T) {
	rule := Rule{
		Frequency:   FrequencyWeekly,
		RepeatUntil: day(2024, time.January, 22, 0),
	}

	got, err := rule.Expand(Interval{
		Start: day(2024, time.January, 1, 14),
		End:   day(2024, time.January, 1, 15),
	})
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		day(2024, time.January, 1, 14),
		day(2024, time.January, 8, 14),
		day(2024, time.January, 15, 14),
		day(2024, time.January, 22, 14),
	}, starts(got))
}

func TestExpandMonthly(t *testing.T) {
	t.Run("same day of month with year rollover", func(t *testing.T) {
		rule := Rule{
			Frequency:   FrequencyMonthly,
			RepeatUntil: day(2025, time.February, 15, 0),
		}

		got, err := rule.Expand(Interval{
			Start: day(2024, time.November, 15, 10),
			End:   day(2024, time.November, 15, 11),
		})
		require.NoError(t, err)

		assert.Equal(t, []time.Time{
			day(2024, time.November, 15, 10),
			day(2024, time.December, 15, 10),
			day(2025, time.January, 15, 10),
			day(2025, time.February, 15, 10),
		}, starts(got))
	})

	t.Run("skips months lacking the anchor day", func(t *testing.T) {
		rule := Rule{
			Frequency:   FrequencyMonthly,
			RepeatUntil: day(2024, time.April, 30, 0),
		}

		got, err := rule.Expand(Interval{
			Start: day(2024, time.January, 31, 10),
			End:   day(2024, time.January, 31, 11),
		})
		require.NoError(t, err)

		// February and April have no 31st; March does.
		assert.Equal(t, []time.Time{
			day(2024, time.January, 31, 10),
			day(2024, time.March, 31, 10),
		}, starts(got))
	})
}

func TestExpandUntilBeforeTemplate(t *testing.T) {
	rule := Rule{
		Frequency:   FrequencyDaily,
		RepeatUntil: day(2024, time.June, 1, 0),
	}

	got, err := rule.Expand(Interval{
		Start: day(2024, time.June, 10, 9),
		End:   day(2024, time.June, 10, 10),
	})
	require.NoError(t, err)

	// Only the template slot survives.
	require.Len(t, got, 1)
	assert.Equal(t, day(2024, time.June, 10, 9), got[0].Start)
}

func TestExpandErrors(t *testing.T) {
	t.Run("invalid frequency", func(t *testing.T) {
		rule := Rule{Frequency: Frequency("HOURLY"), RepeatUntil: day(2024, time.June, 14, 0)}
		_, err := rule.Expand(Interval{
			Start: day(2024, time.June, 10, 9),
			End:   day(2024, time.June, 10, 10),
		})
		assert.ErrorIs(t, err, ErrInvalidFrequency)
	})

	t.Run("invalid template interval", func(t *testing.T) {
		rule := Rule{Frequency: FrequencyDaily, RepeatUntil: day(2024, time.June, 14, 0)}
		_, err := rule.Expand(Interval{
			Start: day(2024, time.June, 10, 9),
			End:   day(2024, time.June, 10, 8),
		})
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})
}

func TestExpandIsDeterministic(t *testing.T) {
	rule := Rule{
		Frequency:   FrequencyWeekly,
		RepeatUntil: day(2024, time.March, 1, 0),
		Weekdays:    []int{2, 4},
	}
	template := Interval{
		Start: day(2024, time.January, 2, 9),
		End:   day(2024, time.January, 2, 10),
	}

	first, err := rule.Expand(template)
	require.NoError(t, err)
	second, err := rule.Expand(template)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
