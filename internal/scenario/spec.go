// Package scenario parses a YAML scenario file — a registry manifest
// plus a list of match/call-unification cases — into the typesystem
// values cmd/typecheck drives the matcher with. It is scaffolding for
// the CLI, not part of the core: package typesystem never imports it.
package scenario

import "github.com/flowcheck/flowcheck/internal/registry"

// File is the top-level shape of a scenario YAML document.
type File struct {
	// Classes extends the registry beyond its fixed builtin set, in the
	// same shape registry.LoadManifest consumes.
	Classes []registry.ClassSpec `yaml:"classes"`

	// Cases are independent match checks.
	Cases []Case `yaml:"cases"`

	// Calls are independent call-unification checks.
	Calls []CallCase `yaml:"calls"`
}

// Case is one `match(expected, actual)` check.
type Case struct {
	Name     string   `yaml:"name"`
	Expected TypeSpec `yaml:"expected"`
	Actual   TypeSpec `yaml:"actual"`
	Want     bool     `yaml:"want"`
}

// CallCase is one `unifyGenericCall` check: a receiver type, a signature
// (parameter list, matched positionally against Args after the implicit
// receiver parameter is filtered out), and the expected outcome. On
// success, if Substitute is set, the case also checks that substituting
// the resulting σ into Substitute's type produces exactly WantSubstituted.
//
// Kind selects which of the three call-site shapes (spec.md §6) drives
// the check: "call" (default), "subscription", or "binaryop". Static, if
// set, makes a "call"-kind case a free function call with no receiver at
// all, so Receiver is ignored and no parameter is treated as implicit.
type CallCase struct {
	Name       string      `yaml:"name"`
	Kind       string      `yaml:"kind,omitempty"`
	Static     bool        `yaml:"static,omitempty"`
	Reflected  bool        `yaml:"reflected,omitempty"`
	Receiver   TypeSpec    `yaml:"receiver"`
	Parameters []ParamSpec `yaml:"parameters"`
	Args       []TypeSpec  `yaml:"args"`
	Want       bool        `yaml:"want"`

	Substitute      *TypeSpec `yaml:"substitute,omitempty"`
	WantSubstituted *TypeSpec `yaml:"want_substituted,omitempty"`
}

// ParamSpec is one callable parameter in a CallCase's synthetic signature.
type ParamSpec struct {
	Name             string    `yaml:"name"`
	Type             *TypeSpec `yaml:"type,omitempty"`
	PositionalVararg bool      `yaml:"vararg,omitempty"`
	KeywordVararg    bool      `yaml:"kwarg,omitempty"`
}

// TypeSpec is a recursive, tagged-by-presence description of a type.
// Exactly one field (other than Definition/Weak, which modify whichever
// shape is present) should be set; Build rejects an all-empty spec.
type TypeSpec struct {
	Unknown bool `yaml:"unknown,omitempty"`

	Class      string `yaml:"class,omitempty"`
	Definition bool   `yaml:"type_of,omitempty"`

	Var   string    `yaml:"var,omitempty"`
	Bound *TypeSpec `yaml:"bound,omitempty"`

	Union []TypeSpec `yaml:"union,omitempty"`
	Weak  bool       `yaml:"weak,omitempty"`

	Tuple   []TypeSpec `yaml:"tuple,omitempty"`
	TupleOf *TypeSpec  `yaml:"tuple_of,omitempty"`

	Collection       string     `yaml:"collection,omitempty"`
	CollectionParams []TypeSpec `yaml:"params,omitempty"`

	Callable       *CallableSpec `yaml:"callable,omitempty"`
	Structural     *StructSpec   `yaml:"structural,omitempty"`
}

// CallableSpec describes a Callable type.
type CallableSpec struct {
	Parameters  []ParamSpec `yaml:"parameters,omitempty"`
	AnySignature bool       `yaml:"any_signature,omitempty"`
	Return      *TypeSpec   `yaml:"return,omitempty"`
	NotCallable bool        `yaml:"not_callable,omitempty"`
}

// StructSpec describes a Structural type.
type StructSpec struct {
	Attributes []string `yaml:"attributes,omitempty"`
	Inferred   bool     `yaml:"inferred,omitempty"`
}
