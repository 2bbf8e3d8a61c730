// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package simtest

import (
	"testing"

	"github.com/db47h/hdlsim/bits"
	"github.com/db47h/hdlsim/sim"
	"github.com/google/go-cmp/cmp"
)

// Sample is one recorded change: sig took on value at t.
type Sample struct {
	Time  sim.Time
	Value string
}

// Trace is the ordered sequence of values a signal took on.
type Trace []Sample

// Recorder is a sim.Observer that splits a kernel's change notifications
// into one named Trace per watched signal, the sim.Kernel-driven
// analogue of hwtest.ComparePart's output-snapshotting closures (there,
// a per-output callback captures the latest boolean on every tick; here,
// every value a signal ever takes on is kept, not just the latest one,
// so two wirings can be compared tick-by-tick rather than only at the
// end).
type Recorder struct {
	names  map[*sim.Signal]string
	traces map[string]Trace
}

// NewRecorder returns an empty Recorder. Register it with a Kernel via
// Kernel.Observe.
func NewRecorder() *Recorder {
	return &Recorder{names: map[*sim.Signal]string{}, traces: map[string]Trace{}}
}

// Watch starts recording every future change to sig under name.
func (r *Recorder) Watch(name string, sig *sim.Signal) {
	r.names[sig] = name
}

// SignalChanged implements sim.Observer.
func (r *Recorder) SignalChanged(t sim.Time, sig *sim.Signal, old, new bits.Logic) {
	name, ok := r.names[sig]
	if !ok {
		return
	}
	r.traces[name] = append(r.traces[name], Sample{Time: t, Value: new.String()})
}

// Trace returns the recorded trace for name, or nil if nothing has been
// recorded under it.
func (r *Recorder) Trace(name string) Trace {
	return r.traces[name]
}

// CompareTraces fails the test with a unified diff if got does not
// exactly match want, keyed by signal name.
func CompareTraces(t *testing.T, want, got map[string]Trace) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("simtest: trace mismatch (-want +got):\n%s", diff)
	}
}
