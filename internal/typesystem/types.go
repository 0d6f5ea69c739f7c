package typesystem

import (
	"fmt"
	"sort"
	"strings"
)

// Type is the closed tagged variant of every shape the matcher understands.
// Types are immutable values: nothing modifies a type once built. The
// substitution engine constructs new ones (substituted collections, tuples,
// callables); the matcher builds only transient ones for its own
// comparisons (rule 6's widened tuple, a tuple's iterated-item union).
type Type interface {
	String() string
}

// Unknown is "no type information". It matches anything and anything
// matches it (spec.md §4.1 rule 5, §4.5).
type Unknown struct{}

func (Unknown) String() string { return "<unknown>" }

// IsUnknownType reports whether t is the Unknown shape or nil, as opposed
// to isUnknown(t) which also considers unions/generics.
func IsUnknownType(t Type) bool {
	if t == nil {
		return true
	}
	_, ok := t.(Unknown)
	return ok
}

// ClassType references a class descriptor plus a definition flag.
// Definition=true denotes the class itself ("Type[C]"); false denotes an
// instance of it ("C").
type ClassType struct {
	Class      ClassDescriptor
	Definition bool
}

func (t ClassType) String() string {
	name := "?"
	if t.Class != nil {
		if n := t.Class.Name(); n != nil {
			name = *n
		}
	}
	if t.Definition {
		return "Type[" + name + "]"
	}
	return name
}

// ToClass returns the class-form (Type[C]) of a class type.
func (t ClassType) ToClass() ClassType { t.Definition = true; return t }

// ToInstance returns the instance-form (C) of a class type.
func (t ClassType) ToInstance() ClassType { t.Definition = false; return t }

// Name is a convenience accessor mirroring the class's name, or nil if the
// class is unresolved.
func (t ClassType) Name() *string {
	if t.Class == nil {
		return nil
	}
	return t.Class.Name()
}

// Equal performs the structural equality spec.md requires at several
// matcher cascade steps ("if expected.equals(actual)").
func Equal(a, b Type) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return fmt.Sprintf("%T", a) == fmt.Sprintf("%T", b) && a.String() == b.String()
}

// GenericVar is a named type variable, possibly bounded. A variable whose
// Definition flag is false and whose Bound is nil "accepts both class and
// instance forms" per spec.md §4.1 rule 2.
type GenericVar struct {
	Name       string
	Bound      Type
	Definition bool
}

func (t GenericVar) String() string {
	if t.Definition {
		return "Type[" + t.Name + "]"
	}
	return t.Name
}

// ToClass / ToInstance mirror ClassType's, used by the substitution
// engine's dual-form lookup (spec.md §4.3).
func (t GenericVar) ToClass() GenericVar { t.Definition = true; return t }
func (t GenericVar) ToInstance() GenericVar {
	t.Definition = false
	return t
}

// AcceptsBothForms implements spec.md §9's
// typeVarAcceptsBothClassAndInstanceTypes.
func (t GenericVar) AcceptsBothForms() bool {
	return !t.Definition && t.Bound == nil
}

// Union is a non-empty set of member types plus a weakness flag. Members
// are not deduplicated by identity; equality is structural (spec.md §3).
// Represented as a pointer so compound-node identity works for the
// cycle-breaking visited sets required by §4.2 and §9.
type Union struct {
	Members []Type
	Weak    bool
}

func (u *Union) String() string {
	parts := make([]string, len(u.Members))
	for i, m := range u.Members {
		if m == nil {
			parts[i] = "<unresolved>"
			continue
		}
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

// NewUnion builds a Union, collapsing a single member to itself.
func NewUnion(members []Type, weak bool) Type {
	if len(members) == 0 {
		return Unknown{}
	}
	if len(members) == 1 {
		return members[0]
	}
	return &Union{Members: members, Weak: weak}
}

// StripWeak is spec.md §3's "stripped on demand" helper (toNonWeakType in
// original_source): if t is a weak union, drop any member whose class is
// nilClass; otherwise return t unchanged.
func StripWeak(t Type, nilClass ClassDescriptor) Type {
	u, ok := t.(*Union)
	if !ok || !u.Weak {
		return t
	}
	kept := make([]Type, 0, len(u.Members))
	for _, m := range u.Members {
		if ct, ok := m.(ClassType); ok && nilClass != nil && ct.Class == nilClass {
			continue
		}
		kept = append(kept, m)
	}
	return NewUnion(kept, false)
}

// TupleKind distinguishes a tuple's two mutually exclusive shapes
// (spec.md §3: "the two shapes are mutually exclusive").
type TupleKind int

const (
	// TupleFixed is a fixed-arity tuple with an ordered element list
	// (possibly empty).
	TupleFixed TupleKind = iota
	// TupleHomogeneous is an unbounded-arity tuple with one iterated
	// element type.
	TupleHomogeneous
)

// Tuple is a class-type specialization: either fixed-arity or homogeneous.
type Tuple struct {
	Class    ClassDescriptor
	Kind     TupleKind
	Elements []Type // used when Kind == TupleFixed
	Item     Type   // used when Kind == TupleHomogeneous
}

func (t *Tuple) String() string {
	if t.Kind == TupleHomogeneous {
		item := "?"
		if t.Item != nil {
			item = t.Item.String()
		}
		return "Tuple[" + item + ", ...]"
	}
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "Tuple[" + strings.Join(parts, ", ") + "]"
}

// IsHomogeneous reports the tuple's shape.
func (t *Tuple) IsHomogeneous() bool { return t.Kind == TupleHomogeneous }

// ElementCount returns the number of fixed elements (0 for homogeneous
// tuples, matching the arity checks in match's tuple×tuple rules).
func (t *Tuple) ElementCount() int {
	if t.IsHomogeneous() {
		return 0
	}
	return len(t.Elements)
}

// ElementAt returns the i-th fixed element, or the iterated item type for a
// homogeneous tuple regardless of i.
func (t *Tuple) ElementAt(i int) Type {
	if t.IsHomogeneous() {
		return t.Item
	}
	if i < 0 || i >= len(t.Elements) {
		return nil
	}
	return t.Elements[i]
}

// IteratedItemType returns the type produced by iterating the tuple: the
// homogeneous item type, or the union of fixed elements.
func (t *Tuple) IteratedItemType() Type {
	if t.IsHomogeneous() {
		return t.Item
	}
	return NewUnion(append([]Type{}, t.Elements...), false)
}

// Collection is a class type carrying an ordered list of generic
// parameters (fixed arity per class, e.g. List[T], Map[K, V]).
type Collection struct {
	Class      ClassDescriptor
	Definition bool
	Params     []Type
}

func (c *Collection) String() string {
	name := "?"
	if c.Class != nil {
		if n := c.Class.Name(); n != nil {
			name = *n
		}
	}
	if len(c.Params) == 0 {
		return name
	}
	parts := make([]string, len(c.Params))
	for i, p := range c.Params {
		if p == nil {
			parts[i] = "<unknown>"
		} else {
			parts[i] = p.String()
		}
	}
	return name + "[" + strings.Join(parts, ", ") + "]"
}

// IteratedItemType is the element type produced when this collection is
// iterated; for single-parameter collections (List[T]) it is Params[0].
func (c *Collection) IteratedItemType() Type {
	if len(c.Params) == 0 {
		return Unknown{}
	}
	return c.Params[0]
}

// CallableParameter is one parameter of a Callable type.
type CallableParameter struct {
	Name             string
	Type             Type // nil = untyped
	PositionalVararg bool // *args
	KeywordVararg    bool // **kwargs
}

// Callable is an optional list of parameters (nil = "any signature") plus
// an optional return type, and a callability flag (spec.md §3, §4.11).
type Callable struct {
	Parameters  []CallableParameter // nil means "any signature"
	Return      Type
	NotCallable bool
}

func (c *Callable) String() string {
	if c.Parameters == nil {
		ret := "?"
		if c.Return != nil {
			ret = c.Return.String()
		}
		return "(...) -> " + ret
	}
	parts := make([]string, len(c.Parameters))
	for i, p := range c.Parameters {
		t := "?"
		if p.Type != nil {
			t = p.Type.String()
		}
		prefix := ""
		if p.PositionalVararg {
			prefix = "*"
		} else if p.KeywordVararg {
			prefix = "**"
		}
		parts[i] = prefix + p.Name + ": " + t
	}
	ret := "?"
	if c.Return != nil {
		ret = c.Return.String()
	}
	return "(" + strings.Join(parts, ", ") + ") -> " + ret
}

// IsCallable is the callable's own callability flag (spec.md §3: "may
// additionally be marked not callable").
func (c *Callable) IsCallable() bool { return !c.NotCallable }

// Structural is a named set of attribute names, optionally synthesized
// from usage sites.
type Structural struct {
	Attributes        map[string]struct{}
	InferredFromUsage bool
}

// NewStructural builds a Structural type from a set of names.
func NewStructural(names []string, inferred bool) *Structural {
	attrs := make(map[string]struct{}, len(names))
	for _, n := range names {
		attrs[n] = struct{}{}
	}
	return &Structural{Attributes: attrs, InferredFromUsage: inferred}
}

func (s *Structural) String() string {
	names := make([]string, 0, len(s.Attributes))
	for n := range s.Attributes {
		names = append(names, n)
	}
	sort.Strings(names)
	return "{" + strings.Join(names, ", ") + "}"
}

// AttributeNames returns the structural type's attribute set.
func (s *Structural) AttributeNames() map[string]struct{} { return s.Attributes }

// ContainsAll reports whether s's attribute set is a superset of other's.
func (s *Structural) ContainsAll(other map[string]struct{}) bool {
	for n := range other {
		if _, ok := s.Attributes[n]; !ok {
			return false
		}
	}
	return true
}

// Closure is a callable whose parameter/return information is deferred to
// the evaluation context (spec.md §3: "Function (closure)").
type Closure struct {
	Expr Expr
}

func (c *Closure) String() string { return "<closure>" }

// Resolve looks the closure's real Callable type up via the context, the
// way a function-valued expression defers to its underlying declaration.
func (c *Closure) Resolve(ctx EvalContext) *Callable {
	if ctx == nil || c.Expr == nil {
		return &Callable{}
	}
	if t := ctx.TypeOfExpr(c.Expr); t != nil {
		if cal, ok := t.(*Callable); ok {
			return cal
		}
	}
	return &Callable{}
}
