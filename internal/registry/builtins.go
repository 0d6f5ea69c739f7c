package registry

import "github.com/flowcheck/flowcheck/internal/typesystem"

// builtinCache is the per-context "global builtin cache" of spec.md §6:
// canonical lookups for object/type and the str/unicode/basestring
// triad, backed by whatever names happen to be registered.
type builtinCache struct {
	registry *Registry
}

func newBuiltinCache(r *Registry) *builtinCache {
	return &builtinCache{registry: r}
}

func (b *builtinCache) ObjectType() typesystem.ClassType {
	return b.classType("object")
}

func (b *builtinCache) TypeType() typesystem.ClassType {
	return b.classType("type")
}

// StrOrUnicodeType is the union str|unicode used by the matcher's
// basestring-widening rule (spec.md §4.1 rule 3).
func (b *builtinCache) StrOrUnicodeType() typesystem.Type {
	var members []typesystem.Type
	if c, ok := b.registry.ClassByName("str"); ok {
		members = append(members, typesystem.ClassType{Class: c})
	}
	if c, ok := b.registry.ClassByName("unicode"); ok {
		members = append(members, typesystem.ClassType{Class: c})
	}
	return typesystem.NewUnion(members, false)
}

func (b *builtinCache) ByName(name string) (typesystem.ClassDescriptor, bool) {
	return b.registry.ClassByName(name)
}

func (b *builtinCache) classType(name string) typesystem.ClassType {
	c, _ := b.registry.ClassByName(name)
	return typesystem.ClassType{Class: c}
}
