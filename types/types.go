// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package types implements the primitive and compound type system shared by
// the IR and the simulator: Void, Label, Time, Int(width), Logic(width),
// Struct, Array, Pointer and Component types. Types are immutable and
// compared structurally.
package types

import (
	"strconv"
	"strings"
)

// Kind identifies the variant of a Type.
type Kind uint8

// The kinds of types supported by the IR.
const (
	Void Kind = iota
	Label
	Time
	Int
	Logic
	Struct
	Array
	Pointer
	Component
)

var kindNames = [...]string{
	Void:      "void",
	Label:     "label",
	Time:      "time",
	Int:       "int",
	Logic:     "logic",
	Struct:    "struct",
	Array:     "array",
	Pointer:   "pointer",
	Component: "component",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Type is an immutable, structurally comparable type descriptor. The zero
// Type is not valid; use one of the constructor functions below.
type Type struct {
	kind Kind

	width int // Int, Logic: bit width. Array: element count.

	elem   *Type   // Array: element type. Pointer: target type.
	fields []*Type // Struct: field types, in order.
	ins    []*Type // Component: input types.
	outs   []*Type // Component: output types.
}

// VoidType returns the void type.
func VoidType() *Type { return &Type{kind: Void} }

// LabelType returns the label type (the type of a basic block reference used
// as a branch target).
func LabelType() *Type { return &Type{kind: Label} }

// TimeType returns the simulation-time type.
func TimeType() *Type { return &Type{kind: Time} }

// IntType returns an unsigned integer type of the given bit width. width must
// be positive; a width of 0 is permitted at construction (per spec) but any
// operation that assumes width > 0 will panic.
func IntType(width int) *Type {
	return &Type{kind: Int, width: width}
}

// LogicType returns a nine-valued logic word type of the given bit width.
func LogicType(width int) *Type {
	return &Type{kind: Logic, width: width}
}

// StructType returns a struct type with the given field types, in order.
func StructType(fields ...*Type) *Type {
	fs := make([]*Type, len(fields))
	copy(fs, fields)
	return &Type{kind: Struct, fields: fs}
}

// ArrayType returns an array type of length elements of type elem.
func ArrayType(elem *Type, length int) *Type {
	return &Type{kind: Array, elem: elem, width: length}
}

// PointerType returns a pointer type targeting elem.
func PointerType(elem *Type) *Type {
	return &Type{kind: Pointer, elem: elem}
}

// ComponentType returns a component (entity/process/function interface) type
// with the given input and output parameter types.
func ComponentType(ins, outs []*Type) *Type {
	is := make([]*Type, len(ins))
	copy(is, ins)
	os := make([]*Type, len(outs))
	copy(os, outs)
	return &Type{kind: Component, ins: is, outs: os}
}

// Kind returns the type's variant tag.
func (t *Type) Kind() Kind { return t.kind }

// Width returns the bit width of an Int or Logic type, or the element count
// of an Array type. It panics for any other kind.
func (t *Type) Width() int {
	switch t.kind {
	case Int, Logic, Array:
		return t.width
	default:
		panic("types: Width called on " + t.kind.String())
	}
}

// Elem returns the element type of an Array type or the target type of a
// Pointer type. It panics for any other kind.
func (t *Type) Elem() *Type {
	switch t.kind {
	case Array, Pointer:
		return t.elem
	default:
		panic("types: Elem called on " + t.kind.String())
	}
}

// Fields returns the field types of a Struct type. It panics for any other
// kind. The returned slice must not be modified.
func (t *Type) Fields() []*Type {
	if t.kind != Struct {
		panic("types: Fields called on " + t.kind.String())
	}
	return t.fields
}

// Inputs returns the input parameter types of a Component type. It panics
// for any other kind. The returned slice must not be modified.
func (t *Type) Inputs() []*Type {
	if t.kind != Component {
		panic("types: Inputs called on " + t.kind.String())
	}
	return t.ins
}

// Outputs returns the output parameter types of a Component type. It panics
// for any other kind. The returned slice must not be modified.
func (t *Type) Outputs() []*Type {
	if t.kind != Component {
		panic("types: Outputs called on " + t.kind.String())
	}
	return t.outs
}

// Equal reports whether a and b are structurally equal. Equal is reflexive,
// symmetric and transitive over well-formed types (property 1, spec.md §8).
func Equal(a, b *Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Void, Label, Time:
		return true
	case Int, Logic:
		return a.width == b.width
	case Array:
		return a.width == b.width && Equal(a.elem, b.elem)
	case Pointer:
		return Equal(a.elem, b.elem)
	case Struct:
		return equalSlices(a.fields, b.fields)
	case Component:
		return equalSlices(a.ins, b.ins) && equalSlices(a.outs, b.outs)
	default:
		return false
	}
}

func equalSlices(a, b []*Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// String renders the type in the textual assembly form used by the IR
// printer (e.g. "i32", "l8", "{i1, i8}", "[4 x i8]", "i8*", "(i1, i1; i8)").
func (t *Type) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *Type) write(b *strings.Builder) {
	switch t.kind {
	case Void:
		b.WriteString("void")
	case Label:
		b.WriteString("label")
	case Time:
		b.WriteString("time")
	case Int:
		b.WriteByte('i')
		b.WriteString(strconv.Itoa(t.width))
	case Logic:
		b.WriteByte('l')
		b.WriteString(strconv.Itoa(t.width))
	case Array:
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(t.width))
		b.WriteString(" x ")
		t.elem.write(b)
		b.WriteByte(']')
	case Pointer:
		t.elem.write(b)
		b.WriteByte('*')
	case Struct:
		b.WriteByte('{')
		writeList(b, t.fields)
		b.WriteByte('}')
	case Component:
		b.WriteByte('(')
		writeList(b, t.ins)
		b.WriteByte(';')
		if len(t.outs) > 0 {
			b.WriteByte(' ')
		}
		writeList(b, t.outs)
		b.WriteByte(')')
	}
}

func writeList(b *strings.Builder, ts []*Type) {
	for i, t := range ts {
		if i > 0 {
			b.WriteString(", ")
		}
		t.write(b)
	}
}
