// Package snowflake converts between monotonic message identifiers and wall-clock instants
package snowflake

import "time"

// Epoch is the millisecond origin of the identifier space (2015-01-01T00:00:00Z)
const Epoch int64 = 1420070400000

// timestampShift reserves the low bits for worker/sequence entropy
const timestampShift = 22

// ID is a monotonically increasing message identifier whose high bits
// embed a millisecond timestamp offset from Epoch
type ID int64

// FromTime encodes an instant into the identifier space
// the low entropy bits are zero so FromTime(t) sorts before any real
// identifier created at or after t
func FromTime(t time.Time) ID {
	ms := t.UnixMilli()
	return ID((ms - Epoch) << timestampShift)
}

// Time decodes the embedded instant in the given location
// low entropy bits are discarded
func (id ID) Time(loc *time.Location) time.Time {
	ms := int64(id)>>timestampShift + Epoch
	return time.UnixMilli(ms).In(loc)
}

// Date returns the calendar date of the embedded instant in loc
func (id ID) Date(loc *time.Location) (year int, month time.Month, day int) {
	return id.Time(loc).Date()
}

// AddDuration steps the identifier space by a wall-clock increment
// used to walk day-sized windows without decoding
func (id ID) AddDuration(d time.Duration) ID {
	return id + ID(d.Milliseconds()<<timestampShift)
}
