// Package evalctx implements typesystem.EvalContext: a map from
// expressions to their inferred types, plus member resolution, the way
// the host's AST/symbol-table machinery would in a full implementation.
// The core treats this package's Context as just one possible host;
// nothing in package typesystem imports it.
package evalctx

import (
	"sync"

	"github.com/flowcheck/flowcheck/internal/typesystem"
)

// Context is a scope-chained expression-type table: a lookup that
// misses in the current scope falls through to outer, mirroring the
// host environment's enclosed-scope pattern.
type Context struct {
	mu    sync.RWMutex
	types map[typesystem.Expr]typesystem.Type
	class map[typesystem.ClassDescriptor]typesystem.Type

	members MemberResolver

	outer *Context
}

// MemberResolver looks up member candidates for a type by name. With a nil
// resolver, ResolveMember defers to the outer scope, and a root Context
// reports no results, which the matcher treats optimistically (spec.md §7).
type MemberResolver interface {
	ResolveMember(t typesystem.Type, name string, dir typesystem.MemberDirection) []typesystem.ResolutionResult
}

// New returns a root Context with no outer scope.
func New(members MemberResolver) *Context {
	return &Context{
		types:   make(map[typesystem.Expr]typesystem.Type),
		class:   make(map[typesystem.ClassDescriptor]typesystem.Type),
		members: members,
	}
}

// Enclosed returns a child scope whose misses fall through to c.
func (c *Context) Enclosed() *Context {
	return &Context{
		types: make(map[typesystem.Expr]typesystem.Type),
		class: make(map[typesystem.ClassDescriptor]typesystem.Type),
		outer: c,
	}
}

// Bind records the inferred type of an expression.
func (c *Context) Bind(e typesystem.Expr, t typesystem.Type) {
	c.mu.Lock()
	c.types[e] = t
	c.mu.Unlock()
}

// BindClass records the "type of" view of a class descriptor (used by
// __getattr__-override checks that need a class's own type).
func (c *Context) BindClass(desc typesystem.ClassDescriptor, t typesystem.Type) {
	c.mu.Lock()
	c.class[desc] = t
	c.mu.Unlock()
}

func (c *Context) TypeOfExpr(e typesystem.Expr) typesystem.Type {
	c.mu.RLock()
	t, ok := c.types[e]
	c.mu.RUnlock()
	if ok {
		return t
	}
	if c.outer != nil {
		return c.outer.TypeOfExpr(e)
	}
	return nil
}

func (c *Context) TypeOfClass(desc typesystem.ClassDescriptor) typesystem.Type {
	c.mu.RLock()
	t, ok := c.class[desc]
	c.mu.RUnlock()
	if ok {
		return t
	}
	if c.outer != nil {
		return c.outer.TypeOfClass(desc)
	}
	return nil
}

func (c *Context) ResolveMember(t typesystem.Type, name string, dir typesystem.MemberDirection) []typesystem.ResolutionResult {
	if c.members != nil {
		if results := c.members.ResolveMember(t, name, dir); results != nil {
			return results
		}
	}
	if c.outer != nil {
		return c.outer.ResolveMember(t, name, dir)
	}
	return nil
}
