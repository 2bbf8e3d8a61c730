package types

// A Context interns types so that structurally identical types constructed
// through the same Context compare equal with ==, not just with Equal. It is
// not required by the type system's contract (spec.md §3: "a per-module type
// interner is acceptable but not required") but it lets IR built with a
// shared Context use pointer comparisons in hot paths.
//
// The zero Context is ready to use.
type Context struct {
	pool map[string]*Type
}

func (c *Context) intern(t *Type) *Type {
	if c.pool == nil {
		c.pool = make(map[string]*Type)
	}
	key := t.String()
	if existing, ok := c.pool[key]; ok {
		return existing
	}
	c.pool[key] = t
	return t
}

// Void returns the context-interned void type.
func (c *Context) Void() *Type { return c.intern(VoidType()) }

// Label returns the context-interned label type.
func (c *Context) Label() *Type { return c.intern(LabelType()) }

// Time returns the context-interned time type.
func (c *Context) Time() *Type { return c.intern(TimeType()) }

// Int returns the context-interned integer type of the given width.
func (c *Context) Int(width int) *Type { return c.intern(IntType(width)) }

// Logic returns the context-interned logic type of the given width.
func (c *Context) Logic(width int) *Type { return c.intern(LogicType(width)) }

// Struct returns the context-interned struct type.
func (c *Context) Struct(fields ...*Type) *Type { return c.intern(StructType(fields...)) }

// Array returns the context-interned array type.
func (c *Context) Array(elem *Type, length int) *Type { return c.intern(ArrayType(elem, length)) }

// Pointer returns the context-interned pointer type.
func (c *Context) Pointer(elem *Type) *Type { return c.intern(PointerType(elem)) }

// Component returns the context-interned component type.
func (c *Context) Component(ins, outs []*Type) *Type { return c.intern(ComponentType(ins, outs)) }
