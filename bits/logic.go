package bits

import "strings"

// Code is a single nine-valued logic lane code.
type Code byte

// The nine logic values, matching the IEEE-1364-style std_ulogic lane codes
// used by the IR's textual assembly.
const (
	CodeU Code = 'U' // uninitialized
	CodeX Code = 'X' // unknown / conflict
	Code0 Code = '0' // forcing 0
	Code1 Code = '1' // forcing 1
	CodeZ Code = 'Z' // high impedance
	CodeW Code = 'W' // weak unknown
	CodeL Code = 'L' // weak 0
	CodeH Code = 'H' // weak 1
	CodeD Code = '-' // don't care
)

func isValidCode(c Code) bool {
	switch c {
	case CodeU, CodeX, Code0, Code1, CodeZ, CodeW, CodeL, CodeH, CodeD:
		return true
	default:
		return false
	}
}

// isLogical0 reports whether c is one of the two lane codes that map to
// logical 0 (spec.md §4.2: {'0', 'L'}).
func isLogical0(c Code) bool { return c == Code0 || c == CodeL }

// isLogical1 reports whether c is one of the two lane codes that map to
// logical 1 (spec.md §4.2: {'1', 'H'}).
func isLogical1(c Code) bool { return c == Code1 || c == CodeH }

// isDefined reports whether c maps to a definite logical 0 or 1.
func isDefined(c Code) bool { return isLogical0(c) || isLogical1(c) }

// Logic is a fixed-width word of nine-valued logic lanes, one byte per lane,
// most-significant lane first when printed (lane 0 is the least significant
// bit, matching Bitmask and Unsigned indexing).
type Logic struct {
	lanes []byte
}

// NewLogic returns a Logic value of the given width with every lane set to
// fill.
func NewLogic(width int, fill Code) Logic {
	if !isValidCode(fill) {
		panic("bits: invalid logic code")
	}
	l := Logic{lanes: make([]byte, width)}
	for i := range l.lanes {
		l.lanes[i] = byte(fill)
	}
	return l
}

// ParseLogic parses a lane string such as "00000011" (lane 0 is the
// rightmost character, matching conventional bit-string notation) into a
// Logic value. It panics if the string contains an invalid lane code.
func ParseLogic(s string) Logic {
	l := Logic{lanes: make([]byte, len(s))}
	for i, r := range []byte(s) {
		c := Code(r)
		if !isValidCode(c) {
			panic("bits: invalid logic code '" + string(r) + "'")
		}
		l.lanes[len(s)-1-i] = byte(c)
	}
	return l
}

// Width returns the number of lanes.
func (l Logic) Width() int { return len(l.lanes) }

// Get returns the lane code at index i.
func (l Logic) Get(i int) Code { return Code(l.lanes[i]) }

// Set sets the lane code at index i.
func (l Logic) Set(i int, c Code) {
	if !isValidCode(c) {
		panic("bits: invalid logic code")
	}
	l.lanes[i] = byte(c)
}

// Clone returns an independent copy of l.
func (l Logic) Clone() Logic {
	c := Logic{lanes: make([]byte, len(l.lanes))}
	copy(c.lanes, l.lanes)
	return c
}

// CopyFrom overwrites l's lanes with src's. l and src must have equal width.
func (l Logic) CopyFrom(src Logic) {
	if len(l.lanes) != len(src.lanes) {
		panic("bits: Logic.CopyFrom width mismatch")
	}
	copy(l.lanes, src.lanes)
}

// LogicEqual reports whether a and b have equal width and identical lanes.
func LogicEqual(a, b Logic) bool {
	if len(a.lanes) != len(b.lanes) {
		return false
	}
	for i := range a.lanes {
		if a.lanes[i] != b.lanes[i] {
			return false
		}
	}
	return true
}

// IsFullyDefined reports whether every lane is a definite 0 or 1 (spec.md
// §4.6, BinaryArith: "if every lane is fully defined").
func (l Logic) IsFullyDefined() bool {
	for _, b := range l.lanes {
		if !isDefined(Code(b)) {
			return false
		}
	}
	return true
}

// String renders l the same way ParseLogic expects to read it back: lane 0
// is the rightmost character.
func (l Logic) String() string {
	var b strings.Builder
	b.Grow(len(l.lanes))
	for i := len(l.lanes) - 1; i >= 0; i-- {
		b.WriteByte(l.lanes[i])
	}
	return b.String()
}

// LogicNot returns the lane-wise nine-valued logical complement of l:
// {0,L} -> 1, {1,H} -> 0, anything else -> X.
func LogicNot(l Logic) Logic {
	r := Logic{lanes: make([]byte, len(l.lanes))}
	for i, b := range l.lanes {
		r.lanes[i] = byte(notLane(Code(b)))
	}
	return r
}

func notLane(c Code) Code {
	switch {
	case isLogical0(c):
		return Code1
	case isLogical1(c):
		return Code0
	default:
		return CodeX
	}
}

func binaryLogic(a, b Logic, fn func(a, b Code) Code) Logic {
	if len(a.lanes) != len(b.lanes) {
		panic("bits: Logic operands have different widths")
	}
	r := Logic{lanes: make([]byte, len(a.lanes))}
	for i := range a.lanes {
		r.lanes[i] = byte(fn(Code(a.lanes[i]), Code(b.lanes[i])))
	}
	return r
}

// LogicAnd returns the lane-wise nine-valued logical AND of a and b. Per
// spec.md §4.2/§8 scenario S5, a logical-0 operand dominates: AND(0, X) is
// '0', not 'X'.
func LogicAnd(a, b Logic) Logic {
	return binaryLogic(a, b, func(a, b Code) Code {
		switch {
		case isLogical0(a) || isLogical0(b):
			return Code0
		case isLogical1(a) && isLogical1(b):
			return Code1
		default:
			return CodeX
		}
	})
}

// LogicOr returns the lane-wise nine-valued logical OR of a and b. A
// logical-1 operand dominates: OR(1, X) is '1'.
func LogicOr(a, b Logic) Logic {
	return binaryLogic(a, b, func(a, b Code) Code {
		switch {
		case isLogical1(a) || isLogical1(b):
			return Code1
		case isLogical0(a) && isLogical0(b):
			return Code0
		default:
			return CodeX
		}
	})
}

// LogicXor returns the lane-wise nine-valued logical XOR of a and b. Unlike
// LogicAnd and LogicOr there is no dominant operand: any lane that isn't
// fully defined on both sides yields X.
func LogicXor(a, b Logic) Logic {
	return binaryLogic(a, b, func(a, b Code) Code {
		if !isDefined(a) || !isDefined(b) {
			return CodeX
		}
		if (a == Code1 || a == CodeH) != (b == Code1 || b == CodeH) {
			return Code1
		}
		return Code0
	})
}
