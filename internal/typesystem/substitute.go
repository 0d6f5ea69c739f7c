package typesystem

// Substitutions is σ: a partial map from generic variables to concrete
// types, accumulated during matching (spec.md Glossary). Keyed by the
// full GenericVar value (name, bound, definition) so that a variable's
// class-form and instance-form keys are distinct, which the dual-form
// lookup in Substitute relies on. Callers must reuse the same GenericVar
// value for every occurrence of "the same" type variable within one
// match/unify call tree.
type Substitutions map[GenericVar]Type

// Clone returns a shallow copy, for callers that need rollback around a
// union alternative (spec.md §9: "the source takes [the non-rollback]
// choice... snapshot/restore σ" is the alternative some callers want).
func (s Substitutions) Clone() Substitutions {
	out := make(Substitutions, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Substitute is spec.md §4.3: rewrites type under σ. Short-circuits via
// HasGenerics. visited guards the chained-variable-substitution cycle
// spec.md §9 flags as missing from the source ("the implementer must add
// a visited-set guard for robustness").
func Substitute(t Type, sigma Substitutions, ctx EvalContext) Type {
	return substituteVisited(t, sigma, ctx, map[GenericVar]bool{})
}

func substituteVisited(t Type, sigma Substitutions, ctx EvalContext, visited map[GenericVar]bool) Type {
	if !HasGenerics(t, ctx) {
		return t
	}

	switch v := t.(type) {
	case GenericVar:
		return substituteVar(v, sigma, ctx, visited)

	case *Union:
		results := make([]Type, len(v.Members))
		for i, m := range v.Members {
			results[i] = substituteVisited(m, sigma, ctx, visited)
		}
		return NewUnion(results, v.Weak)

	case *Collection:
		params := make([]Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = substituteVisited(p, sigma, ctx, visited)
		}
		return &Collection{Class: v.Class, Definition: v.Definition, Params: params}

	case *Tuple:
		if v.IsHomogeneous() {
			return &Tuple{Class: v.Class, Kind: TupleHomogeneous, Item: substituteVisited(v.Item, sigma, ctx, visited)}
		}
		elems := make([]Type, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = substituteVisited(e, sigma, ctx, visited)
		}
		return &Tuple{Class: v.Class, Kind: TupleFixed, Elements: elems}

	case *Callable:
		var params []CallableParameter
		if v.Parameters != nil {
			params = make([]CallableParameter, len(v.Parameters))
			for i, p := range v.Parameters {
				params[i] = CallableParameter{
					Name:             p.Name,
					Type:             substituteVisited(p.Type, sigma, ctx, visited),
					PositionalVararg: p.PositionalVararg,
					KeywordVararg:    p.KeywordVararg,
				}
			}
		}
		return &Callable{
			Parameters:  params,
			Return:      substituteVisited(v.Return, sigma, ctx, visited),
			NotCallable: v.NotCallable,
		}

	default:
		return t
	}
}

// substituteVar implements the variable branch of spec.md §4.3, including
// the dual-form lookup and the chained-substitution recursion.
func substituteVar(v GenericVar, sigma Substitutions, ctx EvalContext, visited map[GenericVar]bool) Type {
	substitution, ok := sigma[v]
	if !ok {
		if v.Definition {
			if inst, ok := sigma[v.ToInstance()]; ok {
				if ct, ok := inst.(ClassType); ok {
					substitution = ct.ToClass()
				} else if gv, ok := inst.(GenericVar); ok {
					substitution = gv.ToClass()
				}
			}
		} else {
			if cls, ok := sigma[v.ToClass()]; ok {
				if ct, ok := cls.(ClassType); ok {
					substitution = ct.ToInstance()
				} else if gv, ok := cls.(GenericVar); ok {
					substitution = gv.ToInstance()
				}
			}
		}
	}

	if substitution == nil {
		return nil
	}

	if gv, ok := substitution.(GenericVar); ok && !Equal(gv, v) {
		if visited[v] {
			return gv // break a cyclic substitution chain
		}
		newVisited := make(map[GenericVar]bool, len(visited)+1)
		for k := range visited {
			newVisited[k] = true
		}
		newVisited[v] = true
		if rec := substituteVisited(gv, sigma, ctx, newVisited); rec != nil {
			return rec
		}
	}
	return substitution
}
