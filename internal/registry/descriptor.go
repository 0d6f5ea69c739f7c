// Package registry implements a class registry: per-class metadata
// (name, nominal and ABC-subclass facts, member names, resolution
// health) satisfying typesystem.ClassRegistry, plus the per-context
// builtin cache the matcher consults for top-type and numeric-promotion
// decisions.
package registry

import (
	"github.com/google/uuid"

	"github.com/flowcheck/flowcheck/internal/typesystem"
)

// Class is one registered class. It implements typesystem.ClassDescriptor.
type Class struct {
	id   uuid.UUID
	name string

	bases    []*Class // nominal (possibly multiple-inheritance) superclasses
	abcBases []*Class // classes this one is ABC-registered against

	// members maps a declared member name to whether it is a builtin
	// (non-user-overridden) definition.
	members map[string]bool

	unresolved bool // true if this class stands in for an ancestor that failed to resolve
}

// ID is a stable identity for this class, useful for identity-keyed maps
// the way compound types use pointer identity.
func (c *Class) ID() uuid.UUID { return c.id }

func (c *Class) Name() *string {
	if c == nil {
		return nil
	}
	return &c.name
}

// IsSubclassOf performs a depth-first search of the nominal inheritance
// graph (multiple inheritance means more than one direct base).
func (c *Class) IsSubclassOf(other typesystem.ClassDescriptor) bool {
	target, ok := other.(*Class)
	if !ok || target == nil {
		return false
	}
	return c.searchBases(target, make(map[*Class]bool))
}

func (c *Class) searchBases(target *Class, visited map[*Class]bool) bool {
	if c == nil || visited[c] {
		return false
	}
	visited[c] = true
	if c == target {
		return true
	}
	for _, b := range c.bases {
		if b.searchBases(target, visited) {
			return true
		}
	}
	return false
}

// IsABCSubclassOf reports a nominal subclass relationship, or an
// ABC registration (`register()`-style structural registration rather
// than nominal inheritance) of c or of one of its nominal ancestors made
// directly against other (spec.md §9's open question on transitivity).
// ABC registrations are not followed further: neither the registered
// class's own bases nor its own ABC registrations are searched, matching
// "source relies on the registry being closed".
func (c *Class) IsABCSubclassOf(other typesystem.ClassDescriptor) bool {
	target, ok := other.(*Class)
	if !ok || target == nil {
		return false
	}
	if c.searchBases(target, make(map[*Class]bool)) {
		return true
	}
	return c.searchABC(target, make(map[*Class]bool))
}

func (c *Class) searchABC(target *Class, visited map[*Class]bool) bool {
	if c == nil || visited[c] {
		return false
	}
	visited[c] = true
	for _, b := range c.abcBases {
		if b == target {
			return true
		}
	}
	for _, b := range c.bases {
		if b.searchABC(target, visited) {
			return true
		}
	}
	return false
}

func (c *Class) HasUnresolvedAncestors() bool {
	if c == nil {
		return true
	}
	if c.unresolved {
		return true
	}
	for _, b := range c.bases {
		if b.HasUnresolvedAncestors() {
			return true
		}
	}
	return false
}

// MemberNames returns this class's own declared members, or the union
// with every ancestor's when inherited is set.
func (c *Class) MemberNames(inherited bool) map[string]struct{} {
	out := make(map[string]struct{})
	if c == nil {
		return out
	}
	c.collectMembers(out, inherited, make(map[*Class]bool))
	return out
}

func (c *Class) collectMembers(out map[string]struct{}, inherited bool, visited map[*Class]bool) {
	if c == nil || visited[c] {
		return
	}
	visited[c] = true
	for name := range c.members {
		out[name] = struct{}{}
	}
	if inherited {
		for _, b := range c.bases {
			b.collectMembers(out, inherited, visited)
		}
	}
}

func (c *Class) IsBuiltin(member string) bool {
	if c == nil {
		return false
	}
	if builtin, ok := c.members[member]; ok {
		return builtin
	}
	for _, b := range c.bases {
		if b.IsBuiltin(member) {
			return true
		}
	}
	return false
}
