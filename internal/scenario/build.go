package scenario

import (
	"fmt"

	"github.com/flowcheck/flowcheck/internal/registry"
	"github.com/flowcheck/flowcheck/internal/typesystem"
)

// vars caches one GenericVar per name within a single Build call tree, so
// that "T" occurring in a parameter's type and again in the return type
// refers to the same variable (spec.md §4.3/§4.4 depend on variable
// identity, not just name, once a Bound is attached).
type vars map[string]typesystem.GenericVar

// Build turns a TypeSpec into a typesystem.Type, resolving class and
// collection names against reg.
func Build(spec TypeSpec, reg *registry.Registry) (typesystem.Type, error) {
	return build(spec, reg, vars{})
}

func build(spec TypeSpec, reg *registry.Registry, v vars) (typesystem.Type, error) {
	switch {
	case spec.Unknown:
		return typesystem.Unknown{}, nil

	case spec.Class != "":
		desc, ok := reg.ClassByName(spec.Class)
		if !ok {
			return nil, typesystem.NewUnresolvedClassError(spec.Class)
		}
		return typesystem.ClassType{Class: desc, Definition: spec.Definition}, nil

	case spec.Var != "":
		return buildVar(spec, reg, v)

	case len(spec.Union) > 0:
		members := make([]typesystem.Type, len(spec.Union))
		for i, m := range spec.Union {
			t, err := build(m, reg, v)
			if err != nil {
				return nil, err
			}
			members[i] = t
		}
		return typesystem.NewUnion(members, spec.Weak), nil

	case len(spec.Tuple) > 0:
		desc, err := tupleClass(reg)
		if err != nil {
			return nil, err
		}
		elems := make([]typesystem.Type, len(spec.Tuple))
		for i, m := range spec.Tuple {
			t, err := build(m, reg, v)
			if err != nil {
				return nil, err
			}
			elems[i] = t
		}
		return &typesystem.Tuple{Class: desc, Kind: typesystem.TupleFixed, Elements: elems}, nil

	case spec.TupleOf != nil:
		desc, err := tupleClass(reg)
		if err != nil {
			return nil, err
		}
		item, err := build(*spec.TupleOf, reg, v)
		if err != nil {
			return nil, err
		}
		return &typesystem.Tuple{Class: desc, Kind: typesystem.TupleHomogeneous, Item: item}, nil

	case spec.Collection != "":
		desc, ok := reg.ClassByName(spec.Collection)
		if !ok {
			return nil, typesystem.NewUnresolvedClassError(spec.Collection)
		}
		params := make([]typesystem.Type, len(spec.CollectionParams))
		for i, p := range spec.CollectionParams {
			t, err := build(p, reg, v)
			if err != nil {
				return nil, err
			}
			params[i] = t
		}
		return &typesystem.Collection{Class: desc, Definition: spec.Definition, Params: params}, nil

	case spec.Callable != nil:
		return buildCallable(spec.Callable, reg, v)

	case spec.Structural != nil:
		return typesystem.NewStructural(spec.Structural.Attributes, spec.Structural.Inferred), nil
	}

	return nil, fmt.Errorf("scenario: empty type spec")
}

// tupleClass resolves the class descriptor tuple-shaped TypeSpecs attach
// to. It is not part of the registry's fixed builtin set (unlike "object"
// or "int") since its ancestor chain is modeling-dependent; a scenario
// file that builds tuples must define it itself, typically with an
// unresolved ancestor so matchClasses's conservative admit applies.
func tupleClass(reg *registry.Registry) (typesystem.ClassDescriptor, error) {
	desc, ok := reg.ClassByName("tuple")
	if !ok {
		return nil, typesystem.NewUnresolvedClassError("tuple")
	}
	return desc, nil
}

func buildVar(spec TypeSpec, reg *registry.Registry, v vars) (typesystem.GenericVar, error) {
	key := spec.Var
	if existing, ok := v[key]; ok && spec.Bound == nil {
		return existing, nil
	}
	var bound typesystem.Type
	if spec.Bound != nil {
		b, err := build(*spec.Bound, reg, v)
		if err != nil {
			return typesystem.GenericVar{}, err
		}
		bound = b
	}
	gv := typesystem.GenericVar{Name: spec.Var, Bound: bound, Definition: spec.Definition}
	v[key] = gv
	return gv, nil
}

func buildCallable(spec *CallableSpec, reg *registry.Registry, v vars) (*typesystem.Callable, error) {
	c := &typesystem.Callable{NotCallable: spec.NotCallable}
	if spec.Return != nil {
		ret, err := build(*spec.Return, reg, v)
		if err != nil {
			return nil, err
		}
		c.Return = ret
	}
	if spec.AnySignature {
		return c, nil
	}
	params, err := buildParams(spec.Parameters, reg, v)
	if err != nil {
		return nil, err
	}
	c.Parameters = params
	return c, nil
}

func buildParams(specs []ParamSpec, reg *registry.Registry, v vars) ([]typesystem.CallableParameter, error) {
	params := make([]typesystem.CallableParameter, len(specs))
	for i, p := range specs {
		param := typesystem.CallableParameter{
			Name:             p.Name,
			PositionalVararg: p.PositionalVararg,
			KeywordVararg:    p.KeywordVararg,
		}
		if p.Type != nil {
			t, err := build(*p.Type, reg, v)
			if err != nil {
				return nil, err
			}
			param.Type = t
		}
		params[i] = param
	}
	return params, nil
}
