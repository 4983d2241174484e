package almanac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/almanac/calendar"
	"github.com/roach88/almanac/calerr"
	"github.com/roach88/almanac/measures"
)

func TestNewDate(t *testing.T) {
	d, err := NewDate(2019, calendar.January, 31)
	require.NoError(t, err)
	assert.Equal(t, 2019, d.Year())
	assert.Equal(t, calendar.January, d.Month())
	assert.Equal(t, 31, d.Day())
	assert.True(t, d.IsValid())

	_, err = NewDate(2019, calendar.February, 29)
	assert.True(t, calerr.IsInvalidDate(err))
	_, err = NewDate(1_000_000_000, calendar.January, 1)
	assert.True(t, calerr.IsInvalidDate(err))

	assert.False(t, Date{}.IsValid())
	assert.Panics(t, func() { MustDate(2019, calendar.April, 31) })
}

func TestDate_EpochDay(t *testing.T) {
	assert.Equal(t, int64(-1), MustDate(1969, 12, 31).EpochDay())
	assert.Equal(t, int64(0), MustDate(1970, 1, 1).EpochDay())
	assert.Equal(t, measures.LongDays(17_927), MustDate(2019, 1, 31).DaysSinceEpoch())
	assert.Equal(t, calendar.MinEpochDay, MinDate.EpochDay())
	assert.Equal(t, calendar.MaxEpochDay, MaxDate.EpochDay())

	d, err := DateFromEpochDay(-1)
	require.NoError(t, err)
	assert.Equal(t, MustDate(1969, 12, 31), d)

	_, err = DateFromEpochDay(calendar.MaxEpochDay + 1)
	assert.True(t, calerr.IsOverflow(err))
}

func TestDateOfYearDay(t *testing.T) {
	d, err := DateOfYearDay(2020, 60)
	require.NoError(t, err)
	assert.Equal(t, MustDate(2020, 2, 29), d)

	d, err = DateOfYearDay(2019, 365)
	require.NoError(t, err)
	assert.Equal(t, MustDate(2019, 12, 31), d)

	_, err = DateOfYearDay(2019, 366)
	assert.True(t, calerr.IsInvalidDate(err))
	_, err = DateOfYearDay(2019, 0)
	assert.True(t, calerr.IsInvalidDate(err))
}

func TestDate_Properties(t *testing.T) {
	d := MustDate(2020, 2, 29)
	assert.Equal(t, calendar.Saturday, d.DayOfWeek())
	assert.Equal(t, 60, d.DayOfYear())
	assert.True(t, d.IsLeapYear())
	assert.Equal(t, 29, d.LengthOfMonth())
	assert.Equal(t, 366, d.LengthOfYear())
	assert.Equal(t, MustDate(2020, 2, 1), d.StartOfMonth())
	assert.Equal(t, MustDate(2019, 2, 28), MustDate(2019, 2, 3).EndOfMonth())

	assert.Equal(t, calendar.Thursday, MustDate(1970, 1, 1).DayOfWeek())
	assert.Equal(t, calendar.Saturday, MustDate(0, 1, 1).DayOfWeek())
	assert.Equal(t, calendar.Friday, MustDate(-1, 12, 31).DayOfWeek())
}

func TestDate_PlusMonths(t *testing.T) {
	tests := []struct {
		name   string
		start  Date
		months measures.LongMonths
		want   Date
	}{
		{"clamps to february", MustDate(2019, 1, 31), 1, MustDate(2019, 2, 28)},
		{"clamps to leap february", MustDate(2020, 1, 31), 1, MustDate(2020, 2, 29)},
		{"clamps to april", MustDate(2019, 3, 31), 1, MustDate(2019, 4, 30)},
		{"crosses year", MustDate(2019, 11, 15), 3, MustDate(2020, 2, 15)},
		{"backwards across year", MustDate(2019, 1, 15), -1, MustDate(2018, 12, 15)},
		{"into negative years", MustDate(0, 1, 31), -11, MustDate(-1, 2, 28)},
		{"large", MustDate(2019, 5, 31), 12_000, MustDate(3019, 5, 31)},
		{"zero", MustDate(2019, 5, 31), 0, MustDate(2019, 5, 31)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.PlusMonths(tt.months)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			back, err := got.MinusMonths(tt.months)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Day() == tt.start.Day(), back == tt.start)
		})
	}
}

func TestDate_PlusYears(t *testing.T) {
	leap := MustDate(2020, 2, 29)

	got, err := leap.PlusYears(4)
	require.NoError(t, err)
	assert.Equal(t, MustDate(2024, 2, 29), got)

	got, err = leap.PlusYears(1)
	require.NoError(t, err)
	assert.Equal(t, MustDate(2021, 2, 28), got)

	got, err = leap.MinusYears(100)
	require.NoError(t, err)
	assert.Equal(t, MustDate(1920, 2, 29), got)

	got, err = leap.MinusYears(120)
	require.NoError(t, err)
	assert.Equal(t, MustDate(1900, 2, 28), got)
}

func TestDate_PlusDaysAndWeeks(t *testing.T) {
	d := MustDate(2019, 12, 25)

	got, err := d.PlusDays(7)
	require.NoError(t, err)
	assert.Equal(t, MustDate(2020, 1, 1), got)

	got, err = d.MinusDays(365)
	require.NoError(t, err)
	assert.Equal(t, MustDate(2018, 12, 25), got)

	got, err = d.PlusWeeks(-2)
	require.NoError(t, err)
	assert.Equal(t, MustDate(2019, 12, 11), got)

	got, err = d.MinusWeeks(1)
	require.NoError(t, err)
	assert.Equal(t, MustDate(2019, 12, 18), got)
}

func TestDate_Overflow(t *testing.T) {
	_, err := MaxDate.PlusDays(1)
	assert.True(t, calerr.IsOverflow(err))
	_, err = MinDate.MinusDays(1)
	assert.True(t, calerr.IsOverflow(err))
	_, err = MinDate.MinusDays(measures.LongDays(-9_223_372_036_854_775_808))
	assert.True(t, calerr.IsOverflow(err))
	_, err = MaxDate.PlusMonths(1)
	assert.True(t, calerr.IsOverflow(err))
	_, err = MinDate.MinusMonths(1)
	assert.True(t, calerr.IsOverflow(err))
	_, err = MaxDate.PlusYears(1)
	assert.True(t, calerr.IsOverflow(err))
	_, err = MinDate.PlusYears(measures.LongYears(-9_223_372_036_854_775_808))
	assert.True(t, calerr.IsOverflow(err))
	_, err = MaxDate.PlusWeeks(measures.LongWeeks(9_223_372_036_854_775_807))
	assert.True(t, calerr.IsOverflow(err))
}

func TestDate_ZeroValue(t *testing.T) {
	var d Date
	require.False(t, d.IsValid())

	ops := map[string]func() (Date, error){
		"PlusDays":    func() (Date, error) { return d.PlusDays(1) },
		"MinusDays":   func() (Date, error) { return d.MinusDays(1) },
		"PlusWeeks":   func() (Date, error) { return d.PlusWeeks(1) },
		"PlusMonths":  func() (Date, error) { return d.PlusMonths(1) },
		"MinusMonths": func() (Date, error) { return d.MinusMonths(1) },
		"PlusYears":   func() (Date, error) { return d.PlusYears(1) },
		"MinusYears":  func() (Date, error) { return d.MinusYears(1) },
		"PlusPeriod":  func() (Date, error) { return d.PlusPeriod(PeriodOfDays(1)) },
		"MinusPeriod": func() (Date, error) { return d.MinusPeriod(PeriodOfMonths(1)) },
		"WithDay":     func() (Date, error) { return d.WithDay(1) },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			_, err := op()
			assert.True(t, calerr.IsInvalidDate(err), "got %v", err)
		})
	}

	assert.Equal(t, d, d.StartOfMonth())
	assert.Equal(t, d, d.EndOfMonth())
}

func TestDate_Compare(t *testing.T) {
	a := MustDate(2019, 1, 31)
	b := MustDate(2019, 2, 1)
	c := MustDate(-2019, 2, 1)

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(MustDate(2019, 1, 31)))
	assert.True(t, c.Before(a))
	assert.True(t, b.After(a))

	// Ordering agrees with epoch days.
	dates := []Date{c, a, b, MinDate, MaxDate, MustDate(0, 12, 31), MustDate(1, 1, 1)}
	for _, x := range dates {
		for _, y := range dates {
			want := 0
			switch {
			case x.EpochDay() < y.EpochDay():
				want = -1
			case x.EpochDay() > y.EpochDay():
				want = 1
			}
			assert.Equal(t, want, x.Compare(y), "%s vs %s", x, y)
		}
	}
}

func TestDate_PlusPeriod(t *testing.T) {
	d := MustDate(2020, 2, 29)

	got, err := d.PlusPeriod(PeriodOf(1, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, MustDate(2021, 3, 29), got, "years and months apply as one shift")

	got, err = d.PlusPeriod(PeriodOf(0, 1, 3))
	require.NoError(t, err)
	assert.Equal(t, MustDate(2020, 4, 1), got)

	got, err = d.MinusPeriod(PeriodOf(0, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, MustDate(2020, 1, 28), got)

	_, err = MaxDate.PlusPeriod(PeriodOfDays(1))
	assert.True(t, calerr.IsOverflow(err))
}

func TestDate_WithDay(t *testing.T) {
	d, err := MustDate(2019, 2, 1).WithDay(28)
	require.NoError(t, err)
	assert.Equal(t, MustDate(2019, 2, 28), d)

	_, err = MustDate(2019, 2, 1).WithDay(29)
	assert.True(t, calerr.IsInvalidDate(err))
}
