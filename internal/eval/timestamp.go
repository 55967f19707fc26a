package eval

import (
	"github.com/aledsdavies/docpipe/internal/document"
	"github.com/aledsdavies/docpipe/internal/expr"
	"github.com/aledsdavies/docpipe/internal/value"
)

const (
	nanosPerSecond      = 1_000_000_000
	nanosPerMillisecond = 1_000_000
	nanosPerMicrosecond = 1_000
)

func init() {
	register("unix_seconds_to_timestamp", unixToTimestamp(nanosPerSecond))
	register("unix_millis_to_timestamp", unixToTimestamp(nanosPerMillisecond))
	register("unix_micros_to_timestamp", unixToTimestamp(nanosPerMicrosecond))
	register("timestamp_to_unix_seconds", timestampToUnix(nanosPerSecond))
	register("timestamp_to_unix_millis", timestampToUnix(nanosPerMillisecond))
	register("timestamp_to_unix_micros", timestampToUnix(nanosPerMicrosecond))
	register("timestamp_add", timestampAdd)
}

// unixToTimestamp builds unix_seconds_to_timestamp / unix_millis_to_timestamp
// / unix_micros_to_timestamp: converts an integer count of the given unit
// since the epoch into a Timestamp, Error if out of the Timestamp domain
// (§5.1 of SPEC_FULL.md).
func unixToTimestamp(nanosPerUnit int64) Func {
	return func(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
		if len(args) != 1 {
			return ErrorResult(typeError("unix-to-timestamp conversion requires exactly 1 argument, got %d", len(args)))
		}
		results := e.evalArgs(ctx, doc, args)
		if r, propagated := propagate(results); propagated {
			return r
		}
		if results[0].IsNull() {
			return NullResult()
		}
		n, ok := results[0].Value().AsNumber()
		if !ok || !n.IsInt() {
			return ErrorResult(typeError("unix-to-timestamp conversion: argument must be an integer"))
		}
		units := n.Int()
		seconds, rem, overflow := splitUnits(units, nanosPerUnit)
		if overflow {
			return ErrorResult(typeError("unix-to-timestamp conversion: value out of range"))
		}
		ts, err := value.NewTimestamp(seconds, int32(rem))
		if err != nil {
			return ErrorResult(typeError("unix-to-timestamp conversion: %v", err))
		}
		return ValueResult(value.TimestampValue(ts))
	}
}

// splitUnits decomposes a count of nanosPerUnit-sized units since the epoch
// into (seconds, nanosecond remainder), reporting overflow on int64 product
// overflow.
func splitUnits(units, nanosPerUnit int64) (seconds int64, nanoRemainder int64, overflow bool) {
	totalNanos, ovf := value.MulInt(units, nanosPerUnit)
	if ovf {
		return 0, 0, true
	}
	seconds = totalNanos / nanosPerSecond
	nanoRemainder = totalNanos % nanosPerSecond
	if nanoRemainder < 0 {
		nanoRemainder += nanosPerSecond
		seconds--
	}
	return seconds, nanoRemainder, false
}

// timestampToUnix builds the inverse conversions, truncating toward
// negative infinity at sub-unit precision.
func timestampToUnix(nanosPerUnit int64) Func {
	return func(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
		if len(args) != 1 {
			return ErrorResult(typeError("timestamp-to-unix conversion requires exactly 1 argument, got %d", len(args)))
		}
		results := e.evalArgs(ctx, doc, args)
		if r, propagated := propagate(results); propagated {
			return r
		}
		if results[0].IsNull() {
			return NullResult()
		}
		ts, ok := results[0].Value().AsTimestamp()
		if !ok {
			return ErrorResult(typeError("timestamp-to-unix conversion: argument must be a timestamp"))
		}
		totalNanos, overflow := value.MulInt(ts.Seconds, nanosPerSecond)
		if overflow {
			return ErrorResult(typeError("timestamp-to-unix conversion: value out of range"))
		}
		totalNanos, overflow = value.AddInt(totalNanos, int64(ts.Nanos))
		if overflow {
			return ErrorResult(typeError("timestamp-to-unix conversion: value out of range"))
		}
		units := totalNanos / nanosPerUnit
		if totalNanos%nanosPerUnit < 0 {
			units--
		}
		return ValueResult(value.Int(units))
	}
}

// timestampUnitNanos is the closed unit table pinned in SPEC_FULL.md §5.3:
// only these six units are accepted, no week/year.
var timestampUnitNanos = map[string]int64{
	"second":      nanosPerSecond,
	"minute":      60 * nanosPerSecond,
	"hour":        3600 * nanosPerSecond,
	"day":         86400 * nanosPerSecond,
	"millisecond": nanosPerMillisecond,
	"microsecond": nanosPerMicrosecond,
}

// timestampAdd adds amount*unit to a timestamp. amount is an integer
// Number; unit is a String drawn from timestampUnitNanos. Overflow of the
// underlying nanosecond arithmetic or the resulting Timestamp domain is
// Error.
func timestampAdd(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
	if len(args) != 3 {
		return ErrorResult(typeError("timestamp_add requires exactly 3 arguments, got %d", len(args)))
	}
	results := e.evalArgs(ctx, doc, args)
	if r, propagated := propagate(results); propagated {
		return r
	}
	if results[0].IsNull() || results[1].IsNull() || results[2].IsNull() {
		return NullResult()
	}
	ts, ok := results[0].Value().AsTimestamp()
	if !ok {
		return ErrorResult(typeError("timestamp_add: first argument must be a timestamp"))
	}
	amount, ok := results[1].Value().AsNumber()
	if !ok || !amount.IsInt() {
		return ErrorResult(typeError("timestamp_add: amount must be an integer"))
	}
	unit, ok := results[2].Value().AsString()
	if !ok {
		return ErrorResult(typeError("timestamp_add: unit must be a string"))
	}
	nanosPerUnit, ok := timestampUnitNanos[unit]
	if !ok {
		return ErrorResult(typeError("timestamp_add: unrecognized unit %q", unit))
	}

	deltaNanos, overflow := value.MulInt(amount.Int(), nanosPerUnit)
	if overflow {
		return ErrorResult(typeError("timestamp_add: amount overflows"))
	}
	baseNanos, overflow := value.MulInt(ts.Seconds, nanosPerSecond)
	if overflow {
		return ErrorResult(typeError("timestamp_add: base timestamp overflows"))
	}
	baseNanos, overflow = value.AddInt(baseNanos, int64(ts.Nanos))
	if overflow {
		return ErrorResult(typeError("timestamp_add: base timestamp overflows"))
	}
	totalNanos, overflow := value.AddInt(baseNanos, deltaNanos)
	if overflow {
		return ErrorResult(typeError("timestamp_add: result overflows"))
	}

	seconds := totalNanos / nanosPerSecond
	nanoRemainder := totalNanos % nanosPerSecond
	if nanoRemainder < 0 {
		nanoRemainder += nanosPerSecond
		seconds--
	}
	out, err := value.NewTimestamp(seconds, int32(nanoRemainder))
	if err != nil {
		return ErrorResult(typeError("timestamp_add: %v", err))
	}
	return ValueResult(value.TimestampValue(out))
}
