package ioloop

import "time"

// TimeVal is an absolute point in wall-clock time, seconds and
// microseconds, normalized so that 0 <= Usec < 1e6. It mirrors the
// seconds/microseconds pair the readiness backends already traffic in, so
// alarm comparisons never need to round-trip through time.Time.
type TimeVal struct {
	Sec  int64
	Usec int64
}

// timeValNow returns the current wall-clock time as a TimeVal.
func timeValNow() TimeVal {
	now := time.Now()
	return TimeVal{Sec: now.Unix(), Usec: int64(now.Nanosecond() / 1000)}
}

// normalize folds an out-of-range Usec (positive or negative) back into
// 0 <= Usec < 1e6, carrying into Sec.
func (t TimeVal) normalize() TimeVal {
	const micros = 1_000_000
	sec := t.Sec + t.Usec/micros
	usec := t.Usec % micros
	if usec < 0 {
		usec += micros
		sec--
	}
	return TimeVal{Sec: sec, Usec: usec}
}

// addMillis returns t advanced by the given number of milliseconds
// (negative allowed).
func (t TimeVal) addMillis(ms int64) TimeVal {
	quotient := ms / 1000
	remainder := ms % 1000
	return TimeVal{Sec: t.Sec + quotient, Usec: t.Usec + remainder*1000}.normalize()
}

// before reports whether t is strictly earlier than other.
func (t TimeVal) before(other TimeVal) bool {
	if t.Sec != other.Sec {
		return t.Sec < other.Sec
	}
	return t.Usec < other.Usec
}

// millisUntil returns the number of milliseconds from now until t. The
// result may be negative if t is in the past.
func (t TimeVal) millisUntil(now TimeVal) int64 {
	return (t.Sec-now.Sec)*1000 + (t.Usec-now.Usec)/1000
}

// compareTimeVal orders two TimeVal values ascending, for use as a
// Queue comparator.
func compareTimeVal(a, b TimeVal) int {
	switch {
	case a.Sec != b.Sec:
		if a.Sec < b.Sec {
			return -1
		}
		return 1
	case a.Usec != b.Usec:
		if a.Usec < b.Usec {
			return -1
		}
		return 1
	default:
		return 0
	}
}
