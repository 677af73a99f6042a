// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package ioloop implements a small, portable, single-threaded asynchronous
// I/O multiplexer with time-based alarms.
//
// An [Engine] juggles any number of slow, character-oriented device
// descriptors (serial lines, USB CDC channels, Bluetooth RFCOMM tunnels,
// pseudo-terminals) alongside absolute and relative alarms, from one
// caller-owned goroutine. There is no worker pool and no internal locking:
// every exported method on Engine must be called from the same goroutine
// that drives [Engine.Wait], exactly like a classic reactor loop.
//
// # Model
//
// Callers register at most one pending operation per descriptor direction
// at a time; additional calls to [Engine.Read] or [Engine.Write] against a
// busy descriptor simply queue behind the one in flight, FIFO, and are
// started in turn as earlier operations complete. [Engine.Wait] drives the
// whole thing: it fires due alarms, asks the platform's readiness backend
// which descriptor became ready, and dispatches exactly one descriptor's
// head operation per iteration, round-robining serviced descriptors to the
// back of the registry so no single channel can starve its neighbours.
//
// # Platforms
//
// The readiness backend is chosen at compile time via Go build constraints:
// a poll(2)-based backend on Linux, a select(2)-based backend on Darwin,
// and an overlapped-I/O / event-handle backend on Windows. All
// three satisfy the same internal contract, so [Engine] itself has no
// platform-specific code.
//
// # Usage
//
//	eng := ioloop.New()
//	eng.Read(fd, 256, func(r ioloop.ReadResult) int {
//	        fmt.Printf("got %d bytes\n", r.Length)
//	        return r.Length // consume everything
//	}, nil)
//	eng.Wait(1000) // drive up to one second of work
//
// Package-level convenience functions ([Read], [Write], [At], [After],
// [Wait], [Cancel]) operate on a lazily-constructed default Engine, for
// callers that only ever need one.
package ioloop
