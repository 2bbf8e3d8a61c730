// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hdlsim implements the SSA-style hardware-description IR: typed
// values, a bidirectional use/def graph with explicit reference counting,
// basic blocks, units (entities, processes and functions) and a
// deterministic textual printer. This is the "hard" core of the module —
// the same way github.com/db47h/hwsim keeps its wiring/chip/socket core in
// one package and pushes the standard-cell library and test helpers out to
// hwlib and hwtest, this package keeps the IR core together and leaves the
// simulator (package sim) and the standard-cell library (package lib) as
// separate, dependent packages.
package hdlsim

import (
	"github.com/db47h/hdlsim/types"
)

// ValueKind identifies the variant of a Value.
type ValueKind uint8

// The kinds of IR values.
const (
	ConstKind ValueKind = iota
	ParamKind
	UnitKind
	BlockKind
	InstKind
)

func (k ValueKind) String() string {
	switch k {
	case ConstKind:
		return "const"
	case ParamKind:
		return "param"
	case UnitKind:
		return "unit"
	case BlockKind:
		return "block"
	case InstKind:
		return "inst"
	default:
		return "unknown"
	}
}

// Value is the common interface implemented by every node in the IR graph:
// constants, unit parameters, units (entities/processes/functions), basic
// blocks and instructions. A Value carries a type, an optional name, a
// reference count and the set of Uses that reference it (spec.md §3).
type Value interface {
	// Kind reports the dynamic variant of the value.
	Kind() ValueKind
	// Type returns the value's result type.
	Type() *types.Type
	// Name returns the value's name, or "" if unnamed.
	Name() string
	// SetName changes the value's name.
	SetName(name string)
	// Users returns a snapshot of the Uses referencing this value. The
	// returned slice is a copy; mutating it has no effect on the graph.
	Users() []*Use

	ref()
	unref()
	addUse(u *Use)
	removeUse(u *Use)
	hasUsers() bool
}

// Ref increments v's reference count.
func Ref(v Value) { v.ref() }

// Unref decrements v's reference count, disposing of it once the count
// reaches zero. Disposal asserts that v has no remaining users (spec.md
// §4.3).
func Unref(v Value) { v.unref() }

// HasUsers reports whether any Use still references v.
func HasUsers(v Value) bool { return v.hasUsers() }

// NumUsers returns the number of Uses referencing v.
func NumUsers(v Value) int { return len(v.Users()) }

// base implements the bookkeeping shared by every concrete Value kind: the
// type, the optional name, the reference count and the intrusive,
// doubly-linked list of Uses referencing the value. Concrete kinds embed
// base and supply their own Kind() and disposal behavior.
type base struct {
	typ       *types.Type
	name      string
	rc        int
	usesHead  *Use
	onDispose func()
}

func newBase(typ *types.Type, name string, onDispose func()) base {
	return base{typ: typ, name: name, rc: 1, onDispose: onDispose}
}

func (b *base) Type() *types.Type { return b.typ }
func (b *base) Name() string      { return b.name }
func (b *base) SetName(n string)  { b.name = n }

func (b *base) ref() {
	if b.rc <= 0 {
		panic("hdlsim: ref on a disposed value")
	}
	b.rc++
}

func (b *base) unref() {
	if b.rc <= 0 {
		panic("hdlsim: double unref")
	}
	b.rc--
	if b.rc == 0 {
		if b.usesHead != nil {
			panic("hdlsim: disposing a value that still has users")
		}
		if b.onDispose != nil {
			b.onDispose()
		}
		b.name = ""
	}
}

func (b *base) addUse(u *Use) {
	u.next = b.usesHead
	u.prev = nil
	if b.usesHead != nil {
		b.usesHead.prev = u
	}
	b.usesHead = u
}

func (b *base) removeUse(u *Use) {
	if u.prev != nil {
		u.prev.next = u.next
	} else {
		b.usesHead = u.next
	}
	if u.next != nil {
		u.next.prev = u.prev
	}
	u.next, u.prev = nil, nil
}

func (b *base) hasUsers() bool { return b.usesHead != nil }

func (b *base) Users() []*Use {
	var out []*Use
	for u := b.usesHead; u != nil; u = u.next {
		out = append(out, u)
	}
	return out
}
