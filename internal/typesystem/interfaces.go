package typesystem

// This file names the external collaborators the core consumes (spec.md
// §1 "Out of scope", §6 "External interfaces"). The core never constructs
// these itself; a host supplies implementations. Package registry and
// package evalctx ship reference implementations used by this repo's own
// tests and by cmd/typecheck.

// Expr is an opaque handle to a host expression. The core never inspects
// it — it only ever passes one back to EvalContext.TypeOfExpr, the way
// PyTypeChecker passes a PyExpression straight through to TypeEvalContext.
type Expr interface{}

// ClassDescriptor is per-class metadata surfaced by a ClassRegistry.
// Mirrors PyClass: name, subclass facts, member names, resolution health.
type ClassDescriptor interface {
	// Name returns the class's name, or nil if unresolved.
	Name() *string
	// IsSubclassOf reports nominal (possibly multiple-inheritance) subclass.
	IsSubclassOf(other ClassDescriptor) bool
	// HasUnresolvedAncestors reports whether any ancestor in the MRO could
	// not be resolved — the matcher then conservatively admits the class
	// (spec.md §4.1's matchClasses "conservative admit" branch).
	HasUnresolvedAncestors() bool
	// MemberNames returns the class's declared member names; if inherited
	// is true, includes inherited members too.
	MemberNames(inherited bool) map[string]struct{}
	// IsABCSubclassOf reports an abstract-base-class registration, distinct
	// from nominal inheritance.
	IsABCSubclassOf(other ClassDescriptor) bool
	// IsBuiltin reports whether the named member resolves to a builtin
	// (non-user-overridden) definition, used by the overridesGetAttr check.
	IsBuiltin(member string) bool
}

// MemberDirection distinguishes read vs write member resolution.
type MemberDirection int

const (
	MemberRead MemberDirection = iota
	MemberWrite
)

// ResolutionResult is one candidate produced by resolving a member name.
type ResolutionResult struct {
	Name  string
	Found bool
}

// ClassRegistry is the per-context "per-class metadata" collaborator
// (spec.md §1, §6). Exposes the global BuiltinCache plus by-name lookup.
type ClassRegistry interface {
	// Builtins returns the per-context builtin cache.
	Builtins() BuiltinCache
	// ClassByName resolves a class descriptor by name, if registered.
	ClassByName(name string) (ClassDescriptor, bool)
}

// BuiltinCache is the "global builtin cache per context" of spec.md §6:
// objectType, typeType, strOrUnicodeType, and lookup-by-name for
// basestring/str/unicode plus the numeric-promotion ladder.
type BuiltinCache interface {
	ObjectType() ClassType
	TypeType() ClassType
	StrOrUnicodeType() Type
	ByName(name string) (ClassDescriptor, bool)
}

// EvalContext is the "AST / symbol table" collaborator surfaced as an
// evaluation context (spec.md §1, §6): typeOf(expression) and
// typeOf(classDescriptor), plus member resolution.
type EvalContext interface {
	// TypeOfExpr is typeOf(expression) -> type?.
	TypeOfExpr(e Expr) Type
	// TypeOfClass is typeOf(classDescriptor) -> type?, used to resolve a
	// class's own type when checking __getattr__ overrides etc.
	TypeOfClass(c ClassDescriptor) Type
	// ResolveMember is resolveMember(type, name, direction) -> results.
	ResolveMember(t Type, name string, dir MemberDirection) []ResolutionResult
}

// TypeProvider is an extension-provided custom type provider (spec.md §1,
// §6, §4.4 step 1): genericTypeOf / genericSubstitutions. Modeled as an
// explicit list injected at construction per spec.md §9 ("not a
// process-global singleton").
type TypeProvider interface {
	// GenericTypeOf returns a "generic type" view of class, if the
	// provider has one.
	GenericTypeOf(class ClassDescriptor) Type
	// GenericSubstitutions returns an explicit variable->type map for
	// class, merged into σ for keys not already present.
	GenericSubstitutions(class ClassDescriptor) map[GenericVar]Type
}
