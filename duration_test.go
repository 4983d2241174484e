package almanac

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/almanac/calerr"
	"github.com/roach88/almanac/measures"
)

func requireNormalized(t *testing.T, d Duration) {
	t.Helper()
	require.Less(t, d.nanos, int32(nanosPerSecond))
	require.Greater(t, d.nanos, int32(-nanosPerSecond))
	if d.seconds > 0 {
		require.GreaterOrEqual(t, d.nanos, int32(0), "%+v", d)
	}
	if d.seconds < 0 {
		require.LessOrEqual(t, d.nanos, int32(0), "%+v", d)
	}
}

func TestDurationOf(t *testing.T) {
	tests := []struct {
		name         string
		seconds      measures.LongSeconds
		nanos        measures.LongNanoseconds
		wantSeconds  int64
		wantNanos    int32
		wantNegative bool
	}{
		{"plain", 5, 250_000_000, 5, 250_000_000, false},
		{"nanos carry", 1, 2_500_000_000, 3, 500_000_000, false},
		{"mixed signs positive", 1, -600_000_000, 0, 400_000_000, false},
		{"mixed signs negative", -1, 600_000_000, 0, -400_000_000, true},
		{"negative nanos only", 0, -800_000_000, 0, -800_000_000, true},
		{"zero", 0, 0, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := DurationOf(tt.seconds, tt.nanos)
			require.NoError(t, err)
			assert.Equal(t, measures.LongSeconds(tt.wantSeconds), d.Seconds())
			assert.Equal(t, measures.IntNanoseconds(tt.wantNanos), d.NanosecondAdjustment())
			assert.Equal(t, tt.wantNegative, d.IsNegative())
			requireNormalized(t, d)
		})
	}

	_, err := DurationOf(math.MaxInt64, nanosPerSecond)
	assert.True(t, calerr.IsOverflow(err))
}

func TestDurationFrom(t *testing.T) {
	d, err := DurationFrom(measures.LongHours(2))
	require.NoError(t, err)
	assert.Equal(t, MustDuration(7200, 0), d)

	d, err = DurationFrom(measures.LongMilliseconds(-1500))
	require.NoError(t, err)
	assert.Equal(t, MustDuration(-1, -500_000_000), d)

	d, err = DurationFrom(measures.LongNanoseconds(math.MaxInt64))
	require.NoError(t, err)
	assert.Equal(t, MustDuration(9_223_372_036, 854_775_807), d)

	_, err = DurationFrom(measures.LongWeeks(math.MaxInt64 / 7))
	assert.True(t, calerr.IsOverflow(err))
}

func TestDuration_Plus(t *testing.T) {
	// -1.6s + 0.8s: the seconds carry back up to zero and the adjustment
	// takes the sign of the whole.
	got, err := MustDuration(-1, -600_000_000).Plus(MustDuration(0, 800_000_000))
	require.NoError(t, err)
	assert.Equal(t, MustDuration(0, -800_000_000), got)
	assert.Equal(t, "PT-0.8S", got.String())

	got, err = MustDuration(1, 700_000_000).Plus(MustDuration(2, 600_000_000))
	require.NoError(t, err)
	assert.Equal(t, MustDuration(4, 300_000_000), got)

	got, err = MustDuration(1, 0).Minus(MustDuration(1, 1))
	require.NoError(t, err)
	assert.Equal(t, MustDuration(0, -1), got)

	_, err = MaxDuration.Plus(MustDuration(1, 0))
	assert.True(t, calerr.IsOverflow(err))
	_, err = MaxDuration.Plus(MustDuration(0, 1))
	assert.True(t, calerr.IsOverflow(err))
	_, err = MinDuration.Minus(MustDuration(1, 0))
	assert.True(t, calerr.IsOverflow(err))
	_, err = MinDuration.Neg()
	assert.True(t, calerr.IsOverflow(err))
	_, err = MinDuration.Abs()
	assert.True(t, calerr.IsOverflow(err))
}

func TestDuration_ArithmeticStaysNormalized(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	random := func() Duration {
		return MustDuration(
			measures.LongSeconds(rng.Int64N(2_000_000)-1_000_000),
			measures.LongNanoseconds(rng.Int64N(4_000_000_000)-2_000_000_000),
		)
	}
	for range 1000 {
		a, b := random(), random()
		sum, err := a.Plus(b)
		require.NoError(t, err)
		requireNormalized(t, sum)

		diff, err := sum.Minus(b)
		require.NoError(t, err)
		require.Equal(t, a, diff)

		scaled, err := a.Times(int32(rng.IntN(2000) - 1000))
		require.NoError(t, err)
		requireNormalized(t, scaled)

		q, err := a.Div(int32(rng.IntN(999) + 2))
		require.NoError(t, err)
		requireNormalized(t, q)
	}
}

func TestDuration_Times(t *testing.T) {
	got, err := MustDuration(1, 500_000_000).Times(3)
	require.NoError(t, err)
	assert.Equal(t, MustDuration(4, 500_000_000), got)

	got, err = MustDuration(0, -800_000_000).Times(-2)
	require.NoError(t, err)
	assert.Equal(t, MustDuration(1, 600_000_000), got)

	got, err = MaxDuration.Times(0)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = MaxDuration.Times(2)
	assert.True(t, calerr.IsOverflow(err))
}

func TestDuration_Div(t *testing.T) {
	tests := []struct {
		name   string
		in     Duration
		scalar int32
		want   Duration
	}{
		{"exact half", MustDuration(7, 0), 2, MustDuration(3, 500_000_000)},
		{"negative half", MustDuration(-7, 0), 2, MustDuration(-3, -500_000_000)},
		{"negative divisor", MustDuration(7, 0), -2, MustDuration(-3, -500_000_000)},
		{"identity", MaxDuration, 1, MaxDuration},
		{"negate", MaxDuration, -1, MustDuration(-math.MaxInt64, -999_999_999)},
		// The fractional second goes through a float64 and is truncated, so
		// 1.5s/3 loses a nanosecond against the exact 0.5s.
		{"float rounding", MustDuration(1, 500_000_000), 3, MustDuration(0, 499_999_999)},
		// Beyond 2^53 seconds the quotient is rounded to a float64. The exact
		// answer would be 4611686018427387903.5s.
		{"large seconds", MustDuration(math.MaxInt64, 0), 2, MustDuration(4_611_686_018_427_387_904, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Div(tt.scalar)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			requireNormalized(t, got)
		})
	}

	_, err := MustDuration(1, 0).Div(0)
	assert.True(t, calerr.IsDivisionByZero(err))
	_, err = MinDuration.Div(-1)
	assert.True(t, calerr.IsOverflow(err))
}

func TestDuration_Truncation(t *testing.T) {
	d := MustDuration(3723, 123_456_789)

	assert.Equal(t, MustDuration(3600, 0), d.TruncatedToHours())
	assert.Equal(t, MustDuration(3720, 0), d.TruncatedToMinutes())
	assert.Equal(t, MustDuration(3723, 0), d.TruncatedToSeconds())
	assert.Equal(t, MustDuration(3723, 123_000_000), d.TruncatedToMilliseconds())
	assert.Equal(t, MustDuration(3723, 123_456_000), d.TruncatedToMicroseconds())
	assert.Equal(t, ZeroDuration, d.TruncatedToDays())

	neg := MustDuration(-90_061, -500_000_000)
	assert.Equal(t, MustDuration(-86_400, 0), neg.TruncatedToDays())

	same, err := d.TruncatedTo(measures.Nanoseconds)
	require.NoError(t, err)
	assert.Equal(t, d, same)

	_, err = d.TruncatedTo(measures.Months)
	assert.True(t, calerr.IsInvalidArgument(err))
}

func TestDuration_Components(t *testing.T) {
	c := MustDuration(90_061, 500_000_000).Components(measures.Days)
	assert.Equal(t, measures.LongDays(1), c.Days)
	assert.Equal(t, measures.LongHours(1), c.Hours)
	assert.Equal(t, measures.LongMinutes(1), c.Minutes)
	assert.Equal(t, measures.LongSeconds(1), c.Seconds)
	assert.Equal(t, measures.LongNanoseconds(500_000_000), c.Nanoseconds)

	c = MustDuration(-90_061, 0).Components(measures.Hours)
	assert.Equal(t, measures.LongDays(0), c.Days)
	assert.Equal(t, measures.LongHours(-25), c.Hours)
	assert.Equal(t, measures.LongMinutes(-1), c.Minutes)
	assert.Equal(t, measures.LongSeconds(-1), c.Seconds)
}

func TestDuration_InUnits(t *testing.T) {
	d := MustDuration(90_061, 500_000_000)
	assert.Equal(t, measures.LongDays(1), d.InDays())
	assert.Equal(t, measures.LongHours(25), d.InHours())
	assert.Equal(t, measures.LongMinutes(1501), d.InMinutes())
	assert.Equal(t, measures.LongSeconds(90_061), d.InSeconds())

	ms, err := d.InMilliseconds()
	require.NoError(t, err)
	assert.Equal(t, measures.LongMilliseconds(90_061_500), ms)

	us, err := MustDuration(-1, -500).InMicroseconds()
	require.NoError(t, err)
	assert.Equal(t, measures.LongMicroseconds(-1_000_000), us)

	ns, err := MustDuration(-1, -500).InNanoseconds()
	require.NoError(t, err)
	assert.Equal(t, measures.LongNanoseconds(-1_000_000_500), ns)

	weeks, err := InWhole[measures.Week](MustDuration(1_209_600, 0))
	require.NoError(t, err)
	assert.Equal(t, measures.LongWeeks(2), weeks)

	_, err = MaxDuration.InNanoseconds()
	assert.True(t, calerr.IsOverflow(err))
}

func TestDuration_Compare(t *testing.T) {
	a := MustDuration(0, -800_000_000)
	b := MustDuration(0, 200_000_000)
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(MustDuration(-1, 200_000_000)))
	assert.Equal(t, -1, MinDuration.Compare(MaxDuration))
	assert.True(t, b.IsPositive())
	assert.False(t, ZeroDuration.IsPositive())
	assert.False(t, ZeroDuration.IsNegative())
}

func TestDuration_String(t *testing.T) {
	tests := []struct {
		in   Duration
		want string
	}{
		{ZeroDuration, "PT0S"},
		{MustDuration(129_600, 0), "PT36H"},
		{MustDuration(60, 500_000_000), "PT1M0.5S"},
		{MustDuration(-1, -500_000_000), "PT-1.5S"},
		{MustDuration(0, -250_000_000), "PT-0.25S"},
		{MustDuration(0, 1), "PT0.000000001S"},
		{MustDuration(-3661, 0), "PT-1H-1M-1S"},
		{MaxDuration, "PT2562047788015215H30M7.999999999S"},
		{MinDuration, "PT-2562047788015215H-30M-8.999999999S"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.String())

			back, err := ParseDuration(tt.want)
			require.NoError(t, err)
			assert.Equal(t, tt.in, back)
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		text string
		want Duration
	}{
		{"PT1H30M", MustDuration(5400, 0)},
		{"P2DT0.5S", MustDuration(172_800, 500_000_000)},
		{"P1D", MustDuration(86_400, 0)},
		{"-PT1.5S", MustDuration(-1, -500_000_000)},
		{"PT1,25S", MustDuration(1, 250_000_000)},
		{"PT-1H30M", MustDuration(-1800, 0)},
		{"PT0S", ZeroDuration},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseDuration(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "P", "PT", "T1H", "PT1D", "PT1.S", "PT1.1234567891S", "P1Y", "PT1H2", "PT9223372036854775807H"} {
		t.Run("invalid "+bad, func(t *testing.T) {
			_, err := ParseDuration(bad)
			assert.True(t, calerr.IsParse(err), "got %v", err)
		})
	}
}
