package harness

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/almanac/calerr"
	"github.com/roach88/almanac/measures"
)

func TestDefaultRegistry_Ops(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		op   string
		args Args
		want string
		code calerr.Code
	}{
		{op: "date.plus_weeks", args: Args{"date": "2019-01-31", "weeks": int64(-5)}, want: "2018-12-27"},
		{op: "date.plus_years", args: Args{"date": "2019-06-15", "years": "-2019"}, want: "0000-06-15"},
		{op: "date.from_epoch_day", args: Args{"epoch_day": "-1"}, want: "1969-12-31"},
		{op: "date.from_epoch_day", args: Args{"epoch_day": int64(math.MaxInt64)}, code: calerr.ErrCodeOverflow},
		{op: "period.parse", args: Args{"text": "P-1Y2M"}, want: "P-1Y2M"},
		{op: "period.parse", args: Args{"text": "1Y"}, code: calerr.ErrCodeParse},
		{op: "period.times", args: Args{"period": "P1Y2M3D", "scalar": int64(-2)}, want: "P-2Y-4M-6D"},
		{op: "duration.parse", args: Args{"text": "PT90M"}, want: "PT1H30M"},
		{op: "duration.minus", args: Args{"a": "PT1S", "b": "PT1.5S"}, want: "PT-0.5S"},
		{op: "duration.truncate", args: Args{"duration": "PT1H", "unit": "months"}, code: calerr.ErrCodeInvalidArgument},
		{op: "range.parse", args: Args{"text": "2019-01-01/.."}, want: "2019-01-01/.."},
		{op: "range.parse", args: Args{"text": "2019-01-02/2019-01-01"}, want: ""},
		{op: "range.days", args: Args{"start": "2019-01-02", "end": "2019-01-01"}, want: ""},
		{op: "range.months", args: Args{"start": "2019-01-31", "end": "2019-12-31", "step": int64(5)}, want: "2019-01-31,2019-06-30,2019-11-30"},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			op, ok := r.Lookup(tt.op)
			require.True(t, ok)
			got, err := op(tt.args)
			if tt.code != "" {
				assert.Equal(t, tt.code, calerr.CodeOf(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultRegistry_Names(t *testing.T) {
	names := DefaultRegistry().Names()
	assert.IsNonDecreasing(t, names)
	for _, want := range []string{
		"date.plus_days", "date.plus_months", "date.plus_years", "date.plus_period",
		"date.day_of_week", "date.epoch_day", "date.from_epoch_day",
		"date.between", "date.days_between",
		"period.normalized", "period.plus", "period.times",
		"duration.plus", "duration.minus", "duration.times", "duration.div", "duration.truncate",
		"range.days", "range.months",
	} {
		assert.Contains(t, names, want)
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Lookup("custom.echo")
	assert.False(t, ok)

	r.Register("custom.echo", func(a Args) (string, error) { return a.String("text") })
	op, ok := r.Lookup("custom.echo")
	require.True(t, ok)
	got, err := op(Args{"text": "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", got)
	assert.Equal(t, []string{"custom.echo"}, r.Names())
}

func TestArgs(t *testing.T) {
	a := Args{
		"s":     "text",
		"n":     int64(42),
		"plain": 7,
		"big":   int64(math.MaxInt32) + 1,
		"num":   "not a number",
		"unit":  "hours",
		"bad":   "fortnights",
	}

	_, err := a.String("n")
	assert.ErrorIs(t, err, ErrBadArgs)
	_, err = a.String("absent")
	assert.ErrorIs(t, err, ErrBadArgs)

	n, err := a.Int("plain")
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	_, err = a.Int("num")
	assert.ErrorIs(t, err, ErrBadArgs)

	_, err = a.Int32("big")
	assert.ErrorIs(t, err, ErrBadArgs)

	v, err := a.IntOr("absent", 3)
	require.NoError(t, err)
	assert.Equal(t, int32(3), v)
	v, err = a.IntOr("n", 3)
	require.NoError(t, err)
	assert.Equal(t, int32(42), v)

	k, err := a.Kind("unit")
	require.NoError(t, err)
	assert.Equal(t, measures.Hours, k)
	_, err = a.Kind("bad")
	assert.ErrorIs(t, err, ErrBadArgs)

	_, err = Args{"date": "2019-02-30"}.Date("date")
	assert.True(t, calerr.IsParse(err))
}

func TestListDates_Limit(t *testing.T) {
	op, _ := DefaultRegistry().Lookup("range.days")
	_, err := op(Args{"start": "2000-01-01", "end": "2019-01-01"})
	assert.ErrorIs(t, err, ErrBadArgs)
}
