package registry

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/flowcheck/flowcheck/internal/typesystem"
)

// Registry is a mutable, by-name table of classes plus the fixed builtin
// cache the matcher needs for top-type and numeric-promotion rules. A
// single Registry is meant to back one checking session; it is safe for
// concurrent reads once built, guarded by a mutex for the rarer case of
// concurrent registration (mirrors the symbol table's scope-local state,
// generalized to a single flat namespace since classes, unlike lexical
// scopes, don't nest).
type Registry struct {
	mu      sync.RWMutex
	classes map[string]*Class
	builtin *builtinCache
}

// New returns an empty registry seeded with nothing but the fixed set of
// builtin primitives the matcher's top-type and numeric-promotion rules
// require (spec.md §4.1, §4.12, §6's "global builtin cache").
func New() *Registry {
	r := &Registry{classes: make(map[string]*Class)}
	r.builtin = newBuiltinCache(r)
	r.seedBuiltins()
	return r
}

func (r *Registry) seedBuiltins() {
	object := r.define("object")
	typ := r.define("type", object)
	r.define("bool", object)
	r.define("int", object)
	r.define("long", object)
	r.define("float", object)
	r.define("complex", object)
	r.define("str", object)
	r.define("unicode", object)
	r.define("basestring", object)
	r.define("callable", object)
	r.define("Integral", object)
	r.define("Real", object)
	r.define("Complex", object)
	r.define("Number", object)
	_ = typ
}

func (r *Registry) define(name string, bases ...*Class) *Class {
	c := &Class{id: uuid.New(), name: name, bases: bases, members: map[string]bool{}}
	r.classes[name] = c
	return c
}

// Define registers a new class with the given nominal bases. A base name
// that is not registered is recorded as an unresolved ancestor. Returns an
// error if the name is already taken.
func (r *Registry) Define(name string, baseNames ...string) (*Class, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.classes[name]; exists {
		return nil, fmt.Errorf("registry: class %q already defined", name)
	}

	var bases []*Class
	for _, bn := range baseNames {
		b, ok := r.classes[bn]
		if !ok {
			bases = append(bases, &Class{name: bn, unresolved: true})
			continue
		}
		bases = append(bases, b)
	}

	c := &Class{id: uuid.New(), name: name, bases: bases, members: map[string]bool{}}
	r.classes[name] = c
	return c, nil
}

// RegisterABC records that subclass is an ABC-subclass of base, the way
// Python's abc.ABCMeta.register() creates a structural registration
// independent of nominal inheritance.
func (r *Registry) RegisterABC(subclassName, baseName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.classes[subclassName]
	if !ok {
		return fmt.Errorf("registry: class %q not defined", subclassName)
	}
	base, ok := r.classes[baseName]
	if !ok {
		return fmt.Errorf("registry: class %q not defined", baseName)
	}
	sub.abcBases = append(sub.abcBases, base)
	return nil
}

// DefineMember adds a member name to a class, recording whether it is a
// builtin (non-user-overridden) definition.
func (r *Registry) DefineMember(className, memberName string, builtin bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.classes[className]
	if !ok {
		return fmt.Errorf("registry: class %q not defined", className)
	}
	c.members[memberName] = builtin
	return nil
}

func (r *Registry) ClassByName(name string) (typesystem.ClassDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.classes[name]
	if !ok {
		return nil, false
	}
	return c, true
}

func (r *Registry) Builtins() typesystem.BuiltinCache {
	return r.builtin
}
