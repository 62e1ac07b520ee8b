// Package context implements the typing context the PTS engine checks
// variables and binders against: an ordered, persistent stack of
// (label, type) bindings with shift-aware insertion, mirroring the way
// the teacher package keeps its evaluation environments immutable and
// grows them only by returning a new value.
package context

import "github.com/dhall-go/dhall-typecheck/internal/core/adt"

// Context is an immutable mapping from adt.Label to a stack of types, one
// stack entry per shadowing binder of that name. The zero value is the
// empty context.
type Context struct {
	// byLabel holds, for each label, every type inserted under it, most
	// recent last. Persistent semantics come from Insert always
	// allocating a new map and new slices rather than mutating these.
	byLabel map[adt.Label][]adt.Expr
}

// Empty returns the empty context.
func Empty() *Context {
	return &Context{}
}

// Lookup returns the n-th (0-indexed, nearest-first) type bound to name,
// or false if no such binding exists.
func (c *Context) Lookup(name adt.Label, n int) (adt.Expr, bool) {
	if c == nil {
		return nil, false
	}
	stack := c.byLabel[name]
	// stack[len-1] is the most recently inserted (nearest) binding.
	i := len(stack) - 1 - n
	if i < 0 || i >= len(stack) {
		return nil, false
	}
	return stack[i], true
}

// Insert returns a new context with (name, typ) pushed as the nearest
// binding for name, after shifting every type already stored in the
// context — including typ itself — by +1 on name's de Bruijn axis. typ is
// typed in the pre-insertion context, so a free occurrence of name inside
// it refers to whatever name bound there; once name gets its own new,
// nearer binder here, that occurrence must shift too, the same as every
// other entry already in the context. The receiver is left unmodified.
func (c *Context) Insert(name adt.Label, typ adt.Expr) *Context {
	next := &Context{byLabel: make(map[adt.Label][]adt.Expr, len(c.labels())+1)}
	v := adt.V{Name: name, Index: 0}
	for label, stack := range c.labels() {
		shifted := make([]adt.Expr, len(stack))
		for i, t := range stack {
			shifted[i] = adt.Shift(1, v, t)
		}
		next.byLabel[label] = shifted
	}
	next.byLabel[name] = append(next.byLabel[name], adt.Shift(1, v, typ))
	return next
}

func (c *Context) labels() map[adt.Label][]adt.Expr {
	if c == nil {
		return nil
	}
	return c.byLabel
}
