package exact

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		a, b int64
		want int64
		ok   bool
	}{
		{1, 2, 3, true},
		{-5, 3, -2, true},
		{math.MaxInt64, 0, math.MaxInt64, true},
		{math.MaxInt64, 1, 0, false},
		{math.MinInt64, -1, 0, false},
		{math.MinInt64, math.MaxInt64, -1, true},
	}
	for _, tt := range tests {
		got, ok := Add(tt.a, tt.b)
		assert.Equal(t, tt.ok, ok, "Add(%d, %d)", tt.a, tt.b)
		if tt.ok {
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestSub(t *testing.T) {
	_, ok := Sub[int64](math.MinInt64, 1)
	assert.False(t, ok)
	_, ok = Sub[int64](0, math.MinInt64)
	assert.False(t, ok)
	got, ok := Sub[int32](-3, -5)
	assert.True(t, ok)
	assert.Equal(t, int32(2), got)
}

func TestNegAndAbs(t *testing.T) {
	_, ok := Neg[int32](math.MinInt32)
	assert.False(t, ok)
	got, ok := Neg[int32](math.MaxInt32)
	assert.True(t, ok)
	assert.Equal(t, int32(-math.MaxInt32), got)

	_, ok = Abs[int64](math.MinInt64)
	assert.False(t, ok)
	abs, ok := Abs[int64](-7)
	assert.True(t, ok)
	assert.Equal(t, int64(7), abs)
}

func TestMul(t *testing.T) {
	tests := []struct {
		a, b int64
		want int64
		ok   bool
	}{
		{6, 7, 42, true},
		{-6, 7, -42, true},
		{0, math.MinInt64, 0, true},
		{-1, math.MinInt64, 0, false},
		{math.MinInt64, -1, 0, false},
		{math.MaxInt64, 2, 0, false},
		{math.MaxInt64 / 60, 60, math.MaxInt64 / 60 * 60, true},
		{1 << 32, 1 << 31, 0, false},
	}
	for _, tt := range tests {
		got, ok := Mul(tt.a, tt.b)
		assert.Equal(t, tt.ok, ok, "Mul(%d, %d)", tt.a, tt.b)
		if tt.ok {
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestFloorDivMod(t *testing.T) {
	tests := []struct {
		a, b     int64
		div, mod int64
	}{
		{7, 2, 3, 1},
		{-7, 2, -4, 1},
		{7, -2, -4, -1},
		{-7, -2, 3, -1},
		{-1, 7, -1, 6},
		{-14, 7, -2, 0},
		{0, 7, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.div, FloorDiv(tt.a, tt.b), "FloorDiv(%d, %d)", tt.a, tt.b)
		assert.Equal(t, tt.mod, FloorMod(tt.a, tt.b), "FloorMod(%d, %d)", tt.a, tt.b)
	}
}

func TestNarrow(t *testing.T) {
	v, ok := Narrow(math.MaxInt32)
	assert.True(t, ok)
	assert.Equal(t, int32(math.MaxInt32), v)

	_, ok = Narrow(math.MaxInt32 + 1)
	assert.False(t, ok)
	_, ok = Narrow(math.MinInt32 - 1)
	assert.False(t, ok)
}
