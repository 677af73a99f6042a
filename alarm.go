package ioloop

// AlarmCallback is invoked once, when its alarm comes due.
type AlarmCallback func(data any)

// alarmEntry is one scheduled alarm: an absolute due time plus the
// callback and caller data to deliver when it arrives.
type alarmEntry struct {
	when     TimeVal
	callback AlarmCallback
	data     any
}

// alarmScheduler keeps pending alarms ordered ascending by due time, using
// the same Queue abstraction the registry uses for operation FIFOs — an
// ordered-insert Queue rather than container/heap, since the due-soonest
// alarm is always at the head and nothing here needs heap-style
// re-siftdown.
type alarmScheduler struct {
	pending *Queue[*alarmEntry]
}

func newAlarmScheduler() *alarmScheduler {
	return &alarmScheduler{
		pending: NewQueue[*alarmEntry](func(a, b *alarmEntry) int {
			return compareTimeVal(a.when, b.when)
		}),
	}
}

func (s *alarmScheduler) schedule(when TimeVal, cb AlarmCallback, data any) {
	s.pending.Enqueue(&alarmEntry{when: when, callback: cb, data: data})
}

// due returns the earliest pending alarm, or nil if there are none.
func (s *alarmScheduler) due() *alarmEntry {
	a, ok := s.pending.HeadValue()
	if !ok {
		return nil
	}
	return a
}

// fire removes the earliest pending alarm and runs its callback.
func (s *alarmScheduler) fire() {
	e := s.pending.Head()
	a := e.Value.(*alarmEntry)
	s.pending.Delete(e)
	a.callback(a.data)
}
