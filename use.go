package hdlsim

// Use is a back-edge from an operand Value to the Inst that references it
// as one of its numbered operand slots (spec.md §3, "Use/def graph"). Uses
// form an intrusive doubly-linked list rooted at the referenced Value's
// internal users list; an Inst owns its outgoing Uses in its operands
// slice.
type Use struct {
	user  *Inst
	index int
	value Value

	next, prev *Use
}

// User returns the instruction that owns this Use.
func (u *Use) User() *Inst { return u.user }

// Index returns the operand position of this Use within its user.
func (u *Use) Index() int { return u.index }

// Value returns the operand Value referenced by this Use.
func (u *Use) Value() Value { return u.value }

// newUse creates a Use of v at the given operand index of user, refs v and
// registers the back-edge. v must not be nil.
func newUse(user *Inst, index int, v Value) *Use {
	if v == nil {
		panic("hdlsim: operand value is nil")
	}
	u := &Use{user: user, index: index, value: v}
	Ref(v)
	v.addUse(u)
	return u
}

// release detaches u from its value's users list and unrefs the value. The
// Use must not be reused afterwards.
func (u *Use) release() {
	v := u.value
	v.removeUse(u)
	Unref(v)
	u.value = nil
}

// retarget points u at a new value in place: unrefs the old operand,
// unregisters the old back-edge, then refs and registers the new one. Used
// by ReplaceUses to rewrite an operand slot without reallocating the Use.
func (u *Use) retarget(v Value) {
	old := u.value
	old.removeUse(u)
	Ref(v)
	u.value = v
	v.addUse(u)
	Unref(old)
}

// ReplaceUses rewrites every Use of old so that it references new instead,
// leaving old's Users list empty and new's Users list extended by the same
// set of Uses. It is the primitive behind rewiring an IR value to point at
// a different producer (spec.md §8 property 2). Taking the snapshot from
// Users() before iterating means the set of Uses being rewritten is fixed
// up front, so retargeting one doesn't perturb the others still to come.
func ReplaceUses(old, new Value) {
	if old == new {
		return
	}
	for _, u := range old.Users() {
		u.retarget(new)
	}
}
