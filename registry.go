package ioloop

// registry tracks the live FunctionEntry for every (descriptor, direction)
// pair currently in use. Lookup is a linear scan: the working set is a
// handful of device channels, not tens of thousands of sockets, so the
// scan never shows up next to the actual I/O cost, and it avoids the
// bookkeeping a hash map would need to stay correct across Delete/Requeue.
type registry struct {
	entries *Queue[*FunctionEntry]
}

func newRegistry() *registry {
	return &registry{entries: NewQueue[*FunctionEntry](nil)}
}

// get returns the FunctionEntry for (fd, methods), creating one if create
// is true and none exists yet. The bool result reports whether a new entry
// was created, which callers use to unwind on a subsequent failure.
func (r *registry) get(fd Descriptor, methods *Methods, create bool) (fe *FunctionEntry, created bool) {
	_, found := r.entries.Process(func(e *FunctionEntry) bool {
		return e.FD == fd && e.Methods == methods
	})
	if found != nil {
		return found, false
	}
	if !create {
		return nil, false
	}

	fe = &FunctionEntry{
		FD:      fd,
		Methods: methods,
		Ops:     NewQueue[*OperationEntry](nil),
	}
	if methods.BeginFunction != nil {
		methods.BeginFunction(fe)
	}
	fe.regElem = r.entries.Enqueue(fe)
	return fe, true
}

// remove retires fe: runs its EndFunction hook and drops it from the
// registry. Called once fe's operation queue has drained to empty, or to
// unwind a FunctionEntry that was created but never got a successful first
// operation enqueued.
func (r *registry) remove(fe *FunctionEntry) {
	if fe.Methods.EndFunction != nil {
		fe.Methods.EndFunction(fe)
	}
	r.entries.Delete(fe.regElem)
}

// rotateToTail moves fe to the back of the registry, implementing
// round-robin fairness across descriptors: a channel that was just
// serviced goes to the end of the line before the next Wait iteration
// looks for ready work.
func (r *registry) rotateToTail(fe *FunctionEntry) {
	r.entries.Requeue(fe.regElem)
}

// each calls fn for every live FunctionEntry, front-to-back (registry
// order).
func (r *registry) each(fn func(*FunctionEntry)) {
	r.entries.Each(fn)
}

// findFastReady offers every live FunctionEntry to the backend via
// addMonitor, stopping as soon as one comes back already finished (the
// synchronous-completion fast path some backends take). Entries after the
// match are left un-monitored this iteration, exactly like entries never
// get a chance to be monitored once a match is found — they are picked up
// on a later Wait iteration instead.
func (r *registry) findFastReady(b backend) *FunctionEntry {
	_, fe := r.entries.Process(func(fe *FunctionEntry) bool {
		return b.addMonitor(fe)
	})
	return fe
}

// findReady returns the first live FunctionEntry the backend reports
// ready, after a completed await call.
func (r *registry) findReady(b backend) *FunctionEntry {
	_, fe := r.entries.Process(func(fe *FunctionEntry) bool {
		return b.ready(fe)
	})
	return fe
}

// len reports the number of live FunctionEntry values.
func (r *registry) len() int {
	return r.entries.Len()
}
