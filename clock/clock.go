// Package clock supplies the current instant to code that needs "today".
//
// The almanac value types never read the wall clock themselves. Callers pass
// a Clock, and an OffsetFunc to resolve the local UTC offset, so the same code
// runs against the system clock in production and a Fixed clock in tests.
package clock

import (
	"sync"
	"time"

	"github.com/roach88/almanac"
	"github.com/roach88/almanac/calerr"
	"github.com/roach88/almanac/internal/exact"
)

const millisPerDay = 86_400_000

// Clock reports the current instant as milliseconds since 1970-01-01T00:00Z.
type Clock interface {
	MillisSinceEpoch() int64
}

// OffsetFunc returns the UTC offset, in seconds, in effect at the given
// instant.
type OffsetFunc func(millisSinceEpoch int64) int32

// UTC is the OffsetFunc that always returns zero.
func UTC(int64) int32 { return 0 }

// Location returns an OffsetFunc that resolves offsets in loc, following its
// daylight saving transitions.
func Location(loc *time.Location) OffsetFunc {
	return func(millis int64) int32 {
		_, offset := time.UnixMilli(millis).In(loc).Zone()
		return int32(offset)
	}
}

type systemClock struct{}

func (systemClock) MillisSinceEpoch() int64 { return time.Now().UnixMilli() }

// System returns a Clock backed by time.Now.
func System() Clock { return systemClock{} }

// Fixed is a Clock that only moves when told to.
//
// Thread-safety: all methods are safe for concurrent use.
type Fixed struct {
	mu     sync.Mutex
	millis int64
}

// NewFixed returns a Fixed clock stopped at millis.
func NewFixed(millis int64) *Fixed {
	return &Fixed{millis: millis}
}

// NewFixedAt returns a Fixed clock stopped at midnight UTC on d.
func NewFixedAt(d almanac.Date) (*Fixed, error) {
	millis, ok := exact.Mul(d.EpochDay(), millisPerDay)
	if !ok {
		return nil, calerr.NewOverflow("clock.NewFixedAt")
	}
	return NewFixed(millis), nil
}

// MillisSinceEpoch implements Clock.
func (c *Fixed) MillisSinceEpoch() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.millis
}

// Set moves the clock to millis.
func (c *Fixed) Set(millis int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.millis = millis
}

// Advance moves the clock by d, which may be negative.
func (c *Fixed) Advance(d almanac.Duration) error {
	ms, err := d.InMilliseconds()
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	next, ok := exact.Add(c.millis, ms.Value())
	if !ok {
		return calerr.NewOverflow("Fixed.Advance")
	}
	c.millis = next
	return nil
}

// Today returns the local date at c's current instant, using offset to shift
// from UTC. A nil offset means UTC.
func Today(c Clock, offset OffsetFunc) (almanac.Date, error) {
	const op = "clock.Today"
	if offset == nil {
		offset = UTC
	}
	millis := c.MillisSinceEpoch()
	local, ok := exact.Add(millis, int64(offset(millis))*1000)
	if !ok {
		return almanac.Date{}, calerr.NewOverflow(op)
	}
	return almanac.DateFromEpochDay(exact.FloorDiv(local, millisPerDay))
}
