package typesystem

// CollectGenerics performs the depth-first walk of spec.md §4.2: unions
// and collections recurse into every member/parameter; a homogeneous
// tuple recurses on its iterated type, a fixed tuple on each element;
// callables recurse on each non-nil parameter type and the return type.
// A generic variable is appended to out. visited is an identity set
// (keyed by pointer-bearing compound nodes) preventing cycles.
func CollectGenerics(t Type, ctx EvalContext, out *[]GenericVar, visited map[Type]bool) {
	if t == nil {
		return
	}
	if visited[t] {
		return
	}
	visited[t] = true

	switch v := t.(type) {
	case GenericVar:
		*out = append(*out, v)
	case *Union:
		for _, m := range v.Members {
			CollectGenerics(m, ctx, out, visited)
		}
	case *Tuple:
		if v.IsHomogeneous() {
			CollectGenerics(v.Item, ctx, out, visited)
		} else {
			for _, e := range v.Elements {
				CollectGenerics(e, ctx, out, visited)
			}
		}
	case *Collection:
		for _, p := range v.Params {
			CollectGenerics(p, ctx, out, visited)
		}
	case *Callable:
		for _, p := range v.Parameters {
			if p.Type != nil {
				CollectGenerics(p.Type, ctx, out, visited)
			}
		}
		CollectGenerics(v.Return, ctx, out, visited)
	case *Closure:
		if c := v.Resolve(ctx); c != nil {
			for _, p := range c.Parameters {
				if p.Type != nil {
					CollectGenerics(p.Type, ctx, out, visited)
				}
			}
			CollectGenerics(c.Return, ctx, out, visited)
		}
	}
}

// HasGenerics reports whether t's tree contains any free generic
// variable; Substitute short-circuits on this (spec.md §4.3).
func HasGenerics(t Type, ctx EvalContext) bool {
	var out []GenericVar
	CollectGenerics(t, ctx, &out, make(map[Type]bool))
	return len(out) > 0
}
