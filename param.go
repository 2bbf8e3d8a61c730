package hdlsim

import "github.com/db47h/hdlsim/types"

// ParamDir distinguishes an input parameter from an output parameter.
type ParamDir uint8

const (
	// ParamIn marks a unit input parameter.
	ParamIn ParamDir = iota
	// ParamOut marks a unit output parameter.
	ParamOut
)

func (d ParamDir) String() string {
	if d == ParamOut {
		return "out"
	}
	return "in"
}

// Param is a named, typed input or output slot on a Unit's Component
// signature (spec.md §3, "Unit"). Params are owned by their Unit for the
// unit's entire lifetime; they are never unlinked independently of it.
type Param struct {
	base
	owner *Unit
	dir   ParamDir
	index int // position within owner's combined inputs/outputs list
}

// Kind reports that this value is a unit parameter.
func (p *Param) Kind() ValueKind { return ParamKind }

// Owner returns the Unit this parameter belongs to.
func (p *Param) Owner() *Unit { return p.owner }

// Dir reports whether this is an input or output parameter.
func (p *Param) Dir() ParamDir { return p.dir }

// Index returns the parameter's position among the owner's inputs (if Dir
// is ParamIn) or outputs (if Dir is ParamOut).
func (p *Param) Index() int { return p.index }

func newParam(owner *Unit, t *types.Type, name string, dir ParamDir, index int) *Param {
	p := &Param{owner: owner, dir: dir, index: index}
	p.base = newBase(t, name, nil)
	return p
}
