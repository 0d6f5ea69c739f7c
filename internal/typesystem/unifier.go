package typesystem

// UnifyReceiver is spec.md §4.4 step 1: seed a fresh substitution map from
// a receiver type before any argument is matched. Every free variable in
// the receiver is first seeded with itself (identity), so a later match
// step can discover and overwrite it with a concrete binding. Then, for
// each class alternative the receiver's type enumerates (flattening
// unions), every registered TypeProvider extension is consulted: its
// generic-type view of that class is matched against the receiver to
// seed more bindings, and its explicit substitution map is merged in for
// keys not already present.
func UnifyReceiver(receiver Type, providers []TypeProvider, ctx EvalContext) Substitutions {
	return UnifyReceiverTraced(receiver, providers, ctx, nil)
}

// UnifyReceiverTraced is UnifyReceiver plus an optional BindingTrace sink;
// pass nil to discard traces, as UnifyReceiver does.
func UnifyReceiverTraced(receiver Type, providers []TypeProvider, ctx EvalContext, traces *[]BindingTrace) Substitutions {
	sigma := Substitutions{}

	var vars []GenericVar
	CollectGenerics(receiver, ctx, &vars, map[Type]bool{})
	for _, v := range vars {
		sigma[v] = v
		if traces != nil {
			*traces = append(*traces, BindingTrace{Variable: v, Origin: OriginReceiver})
		}
	}

	for _, desc := range flattenClassAlternatives(receiver) {
		for _, provider := range providers {
			if provider == nil {
				continue
			}
			if generic := provider.GenericTypeOf(desc); generic != nil {
				Match(generic, receiver, ctx, nil, sigma, true)
			}
			for k, v := range provider.GenericSubstitutions(desc) {
				if _, exists := sigma[k]; !exists {
					sigma[k] = v
					if traces != nil {
						*traces = append(*traces, BindingTrace{Variable: k, Origin: OriginProvider})
					}
				}
			}
		}
	}

	return sigma
}

func flattenClassAlternatives(t Type) []ClassDescriptor {
	if u, ok := t.(*Union); ok {
		var out []ClassDescriptor
		for _, m := range u.Members {
			out = append(out, flattenClassAlternatives(m)...)
		}
		return out
	}
	if desc, _, ok := asClassLike(t); ok && desc != nil {
		return []ClassDescriptor{desc}
	}
	return nil
}

// UnifyGenericCall is spec.md §4.4: orchestrates receiver and argument
// unification, returning the accumulated substitutions and whether the
// call site is compatible with this signature. A false result, which
// comes with nil substitutions, means the caller should retry against the
// next overload, if any (spec.md §4.4 "failure").
func UnifyGenericCall(receiver Type, arguments []Argument, providers []TypeProvider, ctx EvalContext, registry ClassRegistry) (Substitutions, bool) {
	sigma, _, ok := UnifyGenericCallTraced(receiver, arguments, providers, ctx, registry)
	return sigma, ok
}

// UnifyGenericCallTraced is UnifyGenericCall plus a BindingTrace list
// explaining, for each substitution, which argument or receiver fact
// produced it.
func UnifyGenericCallTraced(receiver Type, arguments []Argument, providers []TypeProvider, ctx EvalContext, registry ClassRegistry) (Substitutions, []BindingTrace, bool) {
	var traces []BindingTrace
	sigma := UnifyReceiverTraced(receiver, providers, ctx, &traces)

	var positionalContainer Type
	var positionalArgs []Type
	var keywordContainer Type
	var keywordArgs []Type

	for i, arg := range arguments {
		param := arg.Parameter
		switch {
		case param.PositionalVararg:
			positionalContainer = param.Type
			positionalArgs = append(positionalArgs, argType(arg.Expr, ctx))

		case param.KeywordVararg:
			keywordContainer = param.Type
			keywordArgs = append(keywordArgs, argType(arg.Expr, ctx))

		default:
			if param.Type == nil {
				continue
			}
			before := len(sigma)
			if !Match(param.Type, argType(arg.Expr, ctx), ctx, registry, sigma, true) {
				return nil, traces, false
			}
			traces = traceNewBindings(traces, sigma, before, OriginArgument, i)
		}
	}

	if positionalContainer != nil && len(positionalArgs) > 0 {
		before := len(sigma)
		if !Match(positionalContainer, NewUnion(positionalArgs, false), ctx, registry, sigma, true) {
			return nil, traces, false
		}
		traces = traceNewBindings(traces, sigma, before, OriginVararg, -1)
	}
	if keywordContainer != nil && len(keywordArgs) > 0 {
		before := len(sigma)
		if !Match(keywordContainer, NewUnion(keywordArgs, false), ctx, registry, sigma, true) {
			return nil, traces, false
		}
		traces = traceNewBindings(traces, sigma, before, OriginVararg, -1)
	}

	return sigma, traces, true
}

// UnifyGenericCallSite is spec.md §6's intended entry point: it resolves
// a receiver and argument list from a CallSite's shape-dispatch methods
// rather than requiring the caller to already have them assembled.
// UnifyGenericCall remains available for callers (and tests) that build
// the receiver type and argument list some other way.
func UnifyGenericCallSite(site CallSite, providers []TypeProvider, ctx EvalContext, registry ClassRegistry) (Substitutions, bool) {
	sigma, _, ok := UnifyGenericCallSiteTraced(site, providers, ctx, registry)
	return sigma, ok
}

// UnifyGenericCallSiteTraced is UnifyGenericCallSite plus BindingTrace
// output.
func UnifyGenericCallSiteTraced(site CallSite, providers []TypeProvider, ctx EvalContext, registry ClassRegistry) (Substitutions, []BindingTrace, bool) {
	receiver := argType(site.GetReceiver(), ctx)
	return UnifyGenericCallTraced(receiver, site.GetArguments(), providers, ctx, registry)
}

// traceNewBindings appends a trace entry for every σ key that match may
// have inserted; it can't tell which key is new without a size check
// since Match only ever adds entries, never removes them.
func traceNewBindings(traces []BindingTrace, sigma Substitutions, sizeBefore int, origin BindingOrigin, index int) []BindingTrace {
	if len(sigma) == sizeBefore {
		return traces
	}
	known := make(map[GenericVar]bool, len(traces))
	for _, t := range traces {
		known[t.Variable] = true
	}
	for v := range sigma {
		if !known[v] {
			traces = append(traces, BindingTrace{Variable: v, Origin: origin, Index: index})
		}
	}
	return traces
}

func argType(e Expr, ctx EvalContext) Type {
	if ctx == nil {
		return Unknown{}
	}
	if t := ctx.TypeOfExpr(e); t != nil {
		return t
	}
	return Unknown{}
}
