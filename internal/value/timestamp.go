package value

import (
	"fmt"
	"time"
)

// Timestamp domain bounds — 0001-01-01T00:00:00Z to
// 9999-12-31T23:59:59.999999999Z expressed as seconds since the Unix epoch.
const (
	MinTimestampSeconds int64 = -62135596800
	MaxTimestampSeconds int64 = 253402300799
)

// Timestamp is a (seconds, nanos) pair, matching the wire representation of
// a document version or an encoded reference's update time.
type Timestamp struct {
	Seconds int64
	Nanos   int32
}

// NewTimestamp validates and constructs a Timestamp. Out-of-range inputs
// are a caller error, not a clamp.
func NewTimestamp(seconds int64, nanos int32) (Timestamp, error) {
	if seconds < MinTimestampSeconds || seconds > MaxTimestampSeconds {
		return Timestamp{}, fmt.Errorf("timestamp seconds %d out of range [%d, %d]", seconds, MinTimestampSeconds, MaxTimestampSeconds)
	}
	if nanos < 0 || nanos > 999999999 {
		return Timestamp{}, fmt.Errorf("timestamp nanos %d out of range [0, 999999999]", nanos)
	}
	return Timestamp{Seconds: seconds, Nanos: nanos}, nil
}

// FromTime converts a time.Time, truncating to nanosecond precision.
func FromTime(t time.Time) (Timestamp, error) {
	return NewTimestamp(t.Unix(), int32(t.Nanosecond()))
}

// Time converts back to a time.Time in UTC.
func (t Timestamp) Time() time.Time {
	return time.Unix(t.Seconds, int64(t.Nanos)).UTC()
}

// CompareTimestamps orders by (seconds, nanos), matching §4.1.
func CompareTimestamps(a, b Timestamp) Ordering {
	switch {
	case a.Seconds < b.Seconds:
		return OrderLess
	case a.Seconds > b.Seconds:
		return OrderGreater
	case a.Nanos < b.Nanos:
		return OrderLess
	case a.Nanos > b.Nanos:
		return OrderGreater
	default:
		return OrderEqual
	}
}

func (t Timestamp) String() string {
	return t.Time().Format(time.RFC3339Nano)
}
