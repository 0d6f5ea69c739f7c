package typesystem

// Callability is the tri-state result of IsCallable (spec.md §4.6): a
// callable's negative answer is never provable from absence of
// information, so "don't know" is a first-class outcome distinct from
// "no".
type Callability int

const (
	CallableUnknown Callability = iota
	CallableYes
	CallableNo
)

// IsUnknown is spec.md §4.5: true for the absent type; a generic variable
// when genericsAreUnknown is set; a union any of whose members is unknown.
// A weak union is not per se unknown.
func IsUnknown(t Type, genericsAreUnknown bool) bool {
	if t == nil {
		return true
	}
	if _, ok := t.(Unknown); ok {
		return true
	}
	if genericsAreUnknown {
		if _, ok := t.(GenericVar); ok {
			return true
		}
	}
	if u, ok := t.(*Union); ok {
		for _, m := range u.Members {
			if IsUnknown(m, genericsAreUnknown) {
				return true
			}
		}
	}
	return false
}

// IsCallable is spec.md §4.6:
//   - absent -> unknown
//   - union -> "at least one callable wins; any unknown member forces
//     unknown; else false"
//   - callable variant -> its own callability flag
//   - structural inferred-from-usages -> true
//   - otherwise false
func IsCallable(t Type) Callability {
	if IsUnknownType(t) {
		return CallableUnknown
	}
	switch v := t.(type) {
	case *Union:
		return unionCallability(v)
	case *Callable:
		if v.IsCallable() {
			return CallableYes
		}
		return CallableNo
	case *Closure:
		return CallableYes
	case *Structural:
		if v.InferredFromUsage {
			return CallableYes
		}
		return CallableNo
	default:
		return CallableNo
	}
}

// unionCallability: if at least one member is callable, the union is
// callable; if at least one is unknown, the union is unknown; otherwise
// it's not callable.
func unionCallability(u *Union) Callability {
	sawUnknown := false
	for _, m := range u.Members {
		switch IsCallable(m) {
		case CallableYes:
			return CallableYes
		case CallableUnknown:
			sawUnknown = true
		}
	}
	if sawUnknown {
		return CallableUnknown
	}
	return CallableNo
}
