package sim

import (
	hdlsim "github.com/db47h/hdlsim"
	"github.com/db47h/hdlsim/bits"
)

// Signal is the runtime counterpart of an OpSignal IR instruction: the
// current nine-valued logic value the simulator has committed for it,
// plus the set of processes sensitive to it (spec.md §4.5, "Signal").
type Signal struct {
	def   *hdlsim.Inst // the OpSignal instruction this signal was declared by
	name  string
	value bits.Logic

	waiters []*Process // processes currently blocked in WaitInputs on this signal
}

// NewSignal wraps an OpSignal instruction with its runtime state,
// initialized to its declared init value.
func NewSignal(def *hdlsim.Inst) *Signal {
	if def.Op() != hdlsim.OpSignal {
		panic("sim: NewSignal requires an OpSignal instruction")
	}
	init := def.Init().(*hdlsim.Const).Logic()
	return &Signal{def: def, name: def.Name(), value: init.Clone()}
}

// Def returns the defining OpSignal instruction.
func (s *Signal) Def() *hdlsim.Inst { return s.def }

// Name returns the signal's name.
func (s *Signal) Name() string { return s.name }

// Value returns the signal's current committed value.
func (s *Signal) Value() bits.Logic { return s.value }

// Width returns the signal's bit width.
func (s *Signal) Width() int { return s.value.Width() }

func (s *Signal) addWaiter(p *Process) { s.waiters = append(s.waiters, p) }

// takeWaiters returns and clears the list of processes waiting on this
// signal; called by the kernel when the signal changes.
func (s *Signal) takeWaiters() []*Process {
	w := s.waiters
	s.waiters = nil
	return w
}

// applyWrite overlays value onto s.value at exactly the bit positions set
// in mask, leaving the other lanes untouched, and reports whether any
// lane actually changed (spec.md §4.5/§4.6, event application).
func (s *Signal) applyWrite(value bits.Logic, mask bits.Bitmask) bool {
	changed := false
	for i := 0; i < s.value.Width(); i++ {
		if !mask.Get(i) {
			continue
		}
		nv := value.Get(i)
		if s.value.Get(i) != nv {
			changed = true
		}
		s.value.Set(i, nv)
	}
	return changed
}
