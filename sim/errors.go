package sim

import "github.com/pkg/errors"

// errWatchdog is returned by Process.Run when a process burns through its
// per-call instruction budget without blocking on time or inputs — almost
// always a zero-delay combinational loop that never settles (spec.md §6,
// "Error handling": runaway processes must be diagnosable, not hang the
// kernel).
var errWatchdog = errors.New("sim: process exceeded its instruction watchdog without blocking")

// ErrWatchdog reports whether err is (or wraps) the watchdog error.
func ErrWatchdog(err error) bool { return errors.Cause(err) == errWatchdog }
