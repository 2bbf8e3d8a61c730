package sim

import (
	"log"

	"github.com/db47h/hdlsim/bits"
	"github.com/pkg/errors"
)

// Observer is notified of every committed signal change. It plays the
// role a VCD waveform writer would in a complete toolchain; this module
// has no such writer (out of scope), but anything implementing Observer
// — a test trace recorder, a future waveform dumper — can be attached.
type Observer interface {
	SignalChanged(t Time, sig *Signal, old, new bits.Logic)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(t Time, sig *Signal, old, new bits.Logic)

// SignalChanged implements Observer.
func (f ObserverFunc) SignalChanged(t Time, sig *Signal, old, new bits.Logic) { f(t, sig, old, new) }

// Comb is a compiled, declarative combinational driver: a continuous
// assignment computed from some Sensitivity list and written onto
// Target. It plays the role an Entity's OpDrive instruction plays in the
// IR, the same way hwsim's Chip/mount step compiles a structural
// PartSpec graph down to a flat slice of update closures (spec.md §4.7,
// "dataflow recomputation"); nothing in this module converts one into
// the other. Delay of zero means the write is staged for the next delta
// cycle at the current picosecond (an "identity" assignment); a non-zero
// Delay schedules it that many picoseconds out.
type Comb struct {
	Name        string
	Sensitivity []*Signal
	Target      *Signal
	Delay       int64
	Eval        func() bits.Logic
}

// Kernel is the single-threaded, cooperative simulation kernel (spec.md
// §4.7, "Simulator kernel"). It owns the event queue, the set of
// running processes and the set of declarative combinational drivers,
// and advances simulation time by repeatedly draining the earliest
// batch of events, applying them, waking whatever they unblock, and
// letting every runnable process or driver react before moving on.
type Kernel struct {
	queue *EventQueue
	procs []*Process
	combs map[*Signal][]*Comb

	now Time

	// MaxProcessSteps bounds how many VM instructions a single process
	// may execute in one wakeup before WaitTime/WaitInputs must be hit;
	// exceeding it is a watchdog error, which stops that process.
	MaxProcessSteps int
	// MaxDeltaSteps bounds how many delta cycles the kernel may advance
	// through at a single physical time before giving up; guards
	// against a combinational loop across processes/combs that never
	// settles (spec.md §6).
	MaxDeltaSteps int

	observers []Observer
}

// NewKernel returns an empty kernel with the given watchdog limits. A
// limit of zero means "use a sane default" (10000 for process steps,
// 10000 for delta steps).
func NewKernel(maxProcessSteps, maxDeltaSteps int) *Kernel {
	if maxProcessSteps <= 0 {
		maxProcessSteps = 10000
	}
	if maxDeltaSteps <= 0 {
		maxDeltaSteps = 10000
	}
	return &Kernel{
		queue:           NewEventQueue(),
		combs:           make(map[*Signal][]*Comb),
		MaxProcessSteps: maxProcessSteps,
		MaxDeltaSteps:   maxDeltaSteps,
	}
}

// Now returns the kernel's current simulation time.
func (k *Kernel) Now() Time { return k.now }

// AddProcess registers p to be scheduled by the kernel, starting Ready.
func (k *Kernel) AddProcess(p *Process) { k.procs = append(k.procs, p) }

// AddComb registers a combinational driver and wires it into the
// sensitivity map of every signal it reads.
func (k *Kernel) AddComb(c *Comb) {
	for _, s := range c.Sensitivity {
		k.combs[s] = append(k.combs[s], c)
	}
}

// Observe registers an observer to be notified of every committed signal
// change.
func (k *Kernel) Observe(o Observer) { k.observers = append(k.observers, o) }

// Queue exposes the kernel's event queue, mainly so callers can stage an
// initial stimulus (e.g. a testbench driving an input) before Run.
func (k *Kernel) Queue() *EventQueue { return k.queue }

// Step settles every delta cycle at the current picosecond: each cycle
// pops the events due now, applies them, evaluates the combinational
// drivers and wakes the processes they affect, runs every process that
// is now Ready and commits whatever they staged. It then advances Now to
// the next pending event or WaitTime wakeup. It returns false when there
// is none to advance to (no pending event and no process in WaitTime).
// A process whose Run fails is set to Stopped and the error is logged;
// Step returns an error only when the delta-cycle limit is exceeded.
func (k *Kernel) Step() (bool, error) {
	delta := 0
	for {
		progressed, err := k.settle()
		if err != nil {
			return false, err
		}
		if !progressed {
			break
		}
		delta++
		if delta > k.MaxDeltaSteps {
			return false, errors.New("sim: exceeded max delta-cycle steps without settling")
		}
	}
	return k.advance()
}

// settle runs one delta cycle at the current physical time: apply any
// events already due at this picosecond (at any delta), advancing
// Now.Delta to match, let combinational drivers and processes react,
// and commit what they stage. It reports whether anything happened.
func (k *Kernel) settle() (bool, error) {
	progressed := false

	if evs := k.takeDueEvents(); len(evs) > 0 {
		progressed = true
		if evs[0].Time.Delta > k.now.Delta {
			k.now.Delta = evs[0].Time.Delta
		}
		for _, ev := range evs {
			old := ev.Target.Value()
			if ev.Target.applyWrite(ev.Value, ev.Mask) {
				for _, o := range k.observers {
					o.SignalChanged(k.now, ev.Target, old, ev.Target.Value())
				}
				k.recompute(ev.Target)
				k.wake(ev.Target)
			}
		}
	}

	for _, p := range k.procs {
		if p.state != Ready {
			continue
		}
		progressed = true
		if _, err := p.Run(k.now, k.queue, k.MaxProcessSteps); err != nil {
			p.state = Stopped
			log.Printf("sim: process %q stopped: %v", p.Name, err)
			continue
		}
		if p.state == WaitInputs {
			for _, sig := range p.prog.Inputs {
				sig.addWaiter(p)
			}
		}
	}

	k.queue.Commit()
	return progressed, nil
}

// takeDueEvents pops every committed event scheduled for the current
// physical picosecond, regardless of delta — they are, by construction
// of the heap, the earliest-time events, so if any exist at this PS they
// are due now.
func (k *Kernel) takeDueEvents() []*Event {
	t, ok := k.queue.NextTime()
	if !ok || t.PS != k.now.PS {
		return nil
	}
	return k.queue.PopEvents()
}

// recompute re-evaluates every combinational driver sensitive to sig and
// stages its new output.
func (k *Kernel) recompute(sig *Signal) {
	for _, c := range k.combs[sig] {
		v := c.Eval()
		k.queue.Stage(k.now.Plus(c.Delay), c.Target, v, bits.AllOnes(c.Target.Width()))
	}
}

// wake transitions every process blocked in WaitInputs on sig back to
// Ready.
func (k *Kernel) wake(sig *Signal) {
	for _, p := range sig.takeWaiters() {
		if p.state == WaitInputs {
			p.state = Ready
		}
	}
}

// advance moves Now forward to the next event or process wakeup, and
// reports whether there was one to move to.
func (k *Kernel) advance() (bool, error) {
	next, ok := k.queue.NextTime()
	for _, p := range k.procs {
		if p.state == WaitTime && (!ok || p.wakeAt.Before(next)) {
			next, ok = p.wakeAt, true
		}
	}
	if !ok {
		return false, nil
	}
	k.now = next
	for _, p := range k.procs {
		if p.state == WaitTime && p.wakeAt.Equal(k.now) {
			p.state = Ready
		}
	}
	return true, nil
}

// Run steps the kernel until it has nothing left to do or until until is
// reached, whichever comes first. A zero until runs to quiescence.
func (k *Kernel) Run(until Time) error {
	for {
		if !until.Equal(Time{}) && !k.now.Before(until) {
			return nil
		}
		more, err := k.Step()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// RegisterInput registers sig as an input a process waits on by adding a
// sensitivity entry, used by WaitInputs processes to find their wakeup.
// sigs must also be listed in the relevant Program.Inputs: settle()
// re-adds a process to its own Program.Inputs waiter lists every time it
// blocks on WaitInputs, so calling RegisterInput before a process's
// first Step is only needed to make the initial sensitivity explicit at
// the call site — a harmless no-op otherwise, since the process
// re-registers itself on every subsequent wait.
func (k *Kernel) RegisterInput(p *Process, sigs ...*Signal) {
	for _, s := range sigs {
		s.addWaiter(p)
	}
}
