package typesystem

// ClassRegistry collaborator access is needed by several cascade steps
// (top types, string widening, numeric promotion), so Match takes both
// collaborators named in spec.md §6 explicitly rather than bundling a
// registry into EvalContext.

// Match is the compatibility decision procedure of spec.md §4.1: can a
// value of type actual be used where expected is required? It may insert
// entries into sigma; on a false result sigma is left in whatever state
// the failed attempt produced — callers needing rollback must
// Substitutions.Clone beforehand (spec.md §9).
func Match(expected, actual Type, ctx EvalContext, registry ClassRegistry, sigma Substitutions, recursive bool) bool {
	if sigma == nil {
		sigma = Substitutions{}
	}
	return matchCascade(expected, actual, ctx, registry, sigma, recursive, map[GenericVar]bool{})
}

func matchCascade(expected, actual Type, ctx EvalContext, registry ClassRegistry, sigma Substitutions, recursive bool, active map[GenericVar]bool) bool {
	// 1. Top types.
	if isTopType(expected, registry) {
		return true
	}
	if isMetaclassType(expected, registry) {
		if def, ok := definitionFlagOf(actual); ok && def {
			return true
		}
	}

	// 2. Class-vs-instance mismatch.
	if edef, eok := definitionFlagOf(expected); eok {
		if adef, aok := definitionFlagOf(actual); aok && edef != adef {
			if gv, isVar := expected.(GenericVar); !isVar || !gv.AcceptsBothForms() {
				return false
			}
		}
	}

	// 3. String-family widening.
	if name, ok := classNameOf(actual); ok && name == "basestring" && registry != nil {
		if bc := registry.Builtins(); bc != nil {
			if widened := bc.StrOrUnicodeType(); widened != nil {
				return matchCascade(expected, widened, ctx, registry, sigma, recursive, active)
			}
		}
	}

	// 4. Generic variable on the expected side.
	if gv, ok := expected.(GenericVar); ok {
		return matchGenericExpected(gv, actual, ctx, registry, sigma, recursive, active)
	}

	// 5. Either side unknown.
	if IsUnknown(expected, true) || IsUnknown(actual, true) {
		return true
	}

	// 6. Actual is a union.
	if au, ok := actual.(*Union); ok {
		return matchUnionActual(expected, au, ctx, registry, sigma, recursive, active)
	}

	// 7. Expected is a union.
	if eu, ok := expected.(*Union); ok {
		return matchUnionExpected(eu, actual, ctx, registry, sigma, recursive, active)
	}

	// 8. Both sides are class types.
	if expDesc, expDef, expOk := asClassLike(expected); expOk {
		if actDesc, actDef, actOk := asClassLike(actual); actOk {
			if result, decided := matchClassLike(expDesc, expDef, actDesc, actDef, expected, actual, ctx, registry, sigma, recursive, active); decided {
				return result
			}
		}
	}

	// 9. Callable acceptance: a function/closure matches expected class "callable".
	if expDesc, _, ok := asClassLike(expected); ok && classNameIs(expDesc, "callable") {
		switch actual.(type) {
		case *Closure, *Callable:
			return true
		}
	}

	// 10. Structural types.
	if result, decided := matchStructural(expected, actual, ctx, registry, sigma, recursive, active); decided {
		return result
	}

	// 11. Callable x callable.
	if ec := asCallableShape(expected, ctx); ec != nil {
		if ac := asCallableShape(actual, ctx); ac != nil {
			if IsCallable(expected) == CallableNo || IsCallable(actual) == CallableNo {
				return false
			}
			return matchCallableCallable(ec, ac, ctx, registry, sigma, recursive, active)
		}
	}

	// 12. Numeric promotion.
	if eName, eok := classNameOf(expected); eok {
		if aName, aok := classNameOf(actual); aok && eName != aName {
			if matchNumericTypes(eName, aName) {
				return true
			}
		}
	}

	// 13. Otherwise false.
	return false
}

func matchGenericExpected(gv GenericVar, actual Type, ctx EvalContext, registry ClassRegistry, sigma Substitutions, recursive bool, active map[GenericVar]bool) bool {
	if active[gv] {
		// re-entry on the same variable's own bound: treat as success (spec.md §9).
		return true
	}

	bound := gv.Bound
	if gv.Definition {
		bound = promoteToClassForm(bound)
	}
	if bound != nil {
		nested := cloneActive(active)
		nested[gv] = true
		if !matchCascade(bound, actual, ctx, registry, sigma, recursive, nested) {
			return false
		}
	}

	if existing, ok := sigma[gv]; ok {
		if Equal(gv, actual) {
			return true
		}
		if recursive {
			return matchCascade(existing, actual, ctx, registry, sigma, false, active)
		}
		return false
	}

	if !IsUnknown(actual, true) {
		sigma[gv] = actual
	} else if bound != nil {
		sigma[gv] = bound
	}
	return true
}

// matchUnionActual implements rule 6: expected matches iff it matches
// some member of the actual union, not all of them.
func matchUnionActual(expected Type, au *Union, ctx EvalContext, registry ClassRegistry, sigma Substitutions, recursive bool, active map[GenericVar]bool) bool {
	effectiveExpected := expected
	if et, ok := expected.(*Tuple); ok && !et.IsHomogeneous() {
		if widened := widenTupleExpected(et, au); widened != nil {
			effectiveExpected = widened
		}
	}
	for _, m := range au.Members {
		if matchCascade(effectiveExpected, m, ctx, registry, sigma, recursive, active) {
			return true
		}
	}
	return false
}

// widenTupleExpected is spec.md §4.1 rule 6's special tuple widening: if
// expected is a fixed-arity tuple of N elements and every union member is
// also a fixed-arity tuple of exactly N elements, build a new expected
// tuple whose i-th element is the union of the i-th elements across
// members.
func widenTupleExpected(et *Tuple, au *Union) *Tuple {
	n := len(et.Elements)
	if n == 0 {
		return nil
	}
	for _, m := range au.Members {
		mt, ok := m.(*Tuple)
		if !ok || mt.IsHomogeneous() || len(mt.Elements) != n {
			return nil
		}
	}
	elems := make([]Type, n)
	for i := 0; i < n; i++ {
		perPosition := make([]Type, len(au.Members))
		for j, m := range au.Members {
			perPosition[j] = m.(*Tuple).Elements[i]
		}
		elems[i] = NewUnion(perPosition, false)
	}
	return &Tuple{Class: et.Class, Kind: TupleFixed, Elements: elems}
}

func matchUnionExpected(eu *Union, actual Type, ctx EvalContext, registry ClassRegistry, sigma Substitutions, recursive bool, active map[GenericVar]bool) bool {
	var concrete, variables []Type
	for _, m := range eu.Members {
		if _, isVar := m.(GenericVar); isVar {
			variables = append(variables, m)
		} else {
			concrete = append(concrete, m)
		}
	}
	for _, m := range concrete {
		if matchCascade(m, actual, ctx, registry, sigma, recursive, active) {
			return true
		}
	}
	for _, m := range variables {
		if matchCascade(m, actual, ctx, registry, sigma, recursive, active) {
			return true
		}
	}
	return false
}

// matchClassLike is spec.md §4.1 rule 8. decided is false when none of the
// shape-specific sub-rules fire, letting the cascade continue to rules
// 9-12 (e.g. numeric promotion for two plain class types).
func matchClassLike(expDesc ClassDescriptor, expDef bool, actDesc ClassDescriptor, actDef bool, expected, actual Type, ctx EvalContext, registry ClassRegistry, sigma Substitutions, recursive bool, active map[GenericVar]bool) (result bool, decided bool) {
	et, eIsTuple := expected.(*Tuple)
	at, aIsTuple := actual.(*Tuple)

	if eIsTuple && aIsTuple {
		return matchTupleTuple(et, at, ctx, registry, sigma, recursive, active), true
	}

	if ec, eIsColl := expected.(*Collection); eIsColl {
		if aIsTuple {
			if !matchClasses(ec.Class, at.Class) {
				return false, true
			}
			return matchCascade(ec.IteratedItemType(), at.IteratedItemType(), ctx, registry, sigma, recursive, active), true
		}
		if !matchClasses(ec.Class, actDesc) {
			return false, true
		}
		return matchCollectionParams(ec, actual, ctx, registry, sigma, recursive, active), true
	}

	if matchClasses(expDesc, actDesc) {
		return true, true
	}
	if actDef && classNameIs(expDesc, "callable") {
		return true, true
	}
	if Equal(expected, actual) {
		return true, true
	}
	return false, false
}

func matchTupleTuple(et, at *Tuple, ctx EvalContext, registry ClassRegistry, sigma Substitutions, recursive bool, active map[GenericVar]bool) bool {
	switch {
	case !et.IsHomogeneous() && !at.IsHomogeneous():
		if len(et.Elements) != len(at.Elements) {
			return false
		}
		for i := range et.Elements {
			if !matchCascade(et.Elements[i], at.Elements[i], ctx, registry, sigma, recursive, active) {
				return false
			}
		}
		return true
	case et.IsHomogeneous() && !at.IsHomogeneous():
		for _, e := range at.Elements {
			if !matchCascade(et.Item, e, ctx, registry, sigma, recursive, active) {
				return false
			}
		}
		return true
	case !et.IsHomogeneous() && at.IsHomogeneous():
		return false
	default: // both homogeneous
		return matchCascade(et.Item, at.Item, ctx, registry, sigma, recursive, active)
	}
}

func matchCollectionParams(ec *Collection, actual Type, ctx EvalContext, registry ClassRegistry, sigma Substitutions, recursive bool, active map[GenericVar]bool) bool {
	var actualParams []Type
	if ac, ok := actual.(*Collection); ok {
		actualParams = ac.Params
	}
	for i, p := range ec.Params {
		var ap Type
		if i < len(actualParams) {
			ap = actualParams[i]
		}
		if ap == nil {
			ap = Unknown{}
		}
		if !matchCascade(p, ap, ctx, registry, sigma, recursive, active) {
			return false
		}
	}
	return true
}

// matchStructural is spec.md §4.1 rule 10.
func matchStructural(expected, actual Type, ctx EvalContext, registry ClassRegistry, sigma Substitutions, recursive bool, active map[GenericVar]bool) (result bool, decided bool) {
	actualStruct, actualIsStruct := actual.(*Structural)
	if actualIsStruct && actualStruct.InferredFromUsage {
		return true, true
	}

	if expectedStruct, ok := expected.(*Structural); ok {
		if actualIsStruct {
			if expectedStruct.InferredFromUsage {
				return true, true
			}
			return actualStruct.ContainsAll(expectedStruct.AttributeNames()), true
		}
		if actDesc, _, ok := asClassLike(actual); ok {
			if overridesGetAttr(actDesc) {
				return true, true
			}
			return containsAll(actDesc.MemberNames(true), expectedStruct.AttributeNames()), true
		}
		return false, true
	}

	if actualIsStruct {
		if expDesc, _, ok := asClassLike(expected); ok {
			return containsAll(expDesc.MemberNames(true), actualStruct.AttributeNames()), true
		}
		return false, true
	}

	return false, false
}

func overridesGetAttr(desc ClassDescriptor) bool {
	if desc == nil {
		return false
	}
	members := desc.MemberNames(true)
	for _, name := range [...]string{"__getattr__", "__getattribute__"} {
		if _, ok := members[name]; ok && !desc.IsBuiltin(name) {
			return true
		}
	}
	return false
}

func containsAll(superset, subset map[string]struct{}) bool {
	for name := range subset {
		if _, ok := superset[name]; !ok {
			return false
		}
	}
	return true
}

func asCallableShape(t Type, ctx EvalContext) *Callable {
	switch v := t.(type) {
	case *Callable:
		return v
	case *Closure:
		return v.Resolve(ctx)
	}
	return nil
}

// matchCallableCallable is spec.md §4.1 rule 11. Parameter comparison is
// covariant, matching the source's known-unsound behavior (spec.md §9).
func matchCallableCallable(ec, ac *Callable, ctx EvalContext, registry ClassRegistry, sigma Substitutions, recursive bool, active map[GenericVar]bool) bool {
	if ec.Parameters != nil && ac.Parameters != nil {
		n := len(ec.Parameters)
		if len(ac.Parameters) < n {
			n = len(ac.Parameters)
		}
		for i := 0; i < n; i++ {
			pt := ec.Parameters[i].Type
			at := ac.Parameters[i].Type
			if pt == nil || at == nil {
				continue
			}
			if !matchCascade(pt, at, ctx, registry, sigma, recursive, active) {
				return false
			}
		}
	}
	if ec.Return == nil || ac.Return == nil {
		return true
	}
	return matchCascade(ec.Return, ac.Return, ctx, registry, sigma, recursive, active)
}

// matchClasses is spec.md §4.1's matchClasses(A, B): true iff A is nil, B
// is nil, B is a nominal subclass of A, B is registered as an ABC
// subclass of A, B is "str" and A is "unicode" (legacy compat), B has
// unresolved ancestors (conservative admit), or B's name equals A's name
// (cross-class-loader tolerance).
func matchClasses(a, b ClassDescriptor) bool {
	if a == nil || b == nil {
		return true
	}
	if b.IsSubclassOf(a) {
		return true
	}
	if b.IsABCSubclassOf(a) {
		return true
	}
	if classNameIs(b, "str") && classNameIs(a, "unicode") {
		return true
	}
	if b.HasUnresolvedAncestors() {
		return true
	}
	an, bn := a.Name(), b.Name()
	return an != nil && bn != nil && *an == *bn
}

func isTopType(t Type, registry ClassRegistry) bool {
	desc, _, ok := asClassLike(t)
	if !ok || desc == nil {
		return false
	}
	if registry != nil {
		if bc := registry.Builtins(); bc != nil {
			if obj := bc.ObjectType(); obj.Class != nil {
				return sameClassDescriptor(desc, obj.Class)
			}
		}
	}
	return classNameIs(desc, "object")
}

func isMetaclassType(t Type, registry ClassRegistry) bool {
	desc, _, ok := asClassLike(t)
	if !ok || desc == nil {
		return false
	}
	if registry != nil {
		if bc := registry.Builtins(); bc != nil {
			if typ := bc.TypeType(); typ.Class != nil {
				return sameClassDescriptor(desc, typ.Class)
			}
		}
	}
	return classNameIs(desc, "type")
}

func sameClassDescriptor(a, b ClassDescriptor) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	an, bn := a.Name(), b.Name()
	if an != nil && bn != nil {
		return *an == *bn
	}
	return a == b
}

// asClassLike reports the class descriptor and definition flag of any
// class-type-shaped variant: plain class types, tuples (always
// instance-form), and collections.
func asClassLike(t Type) (ClassDescriptor, bool, bool) {
	switch v := t.(type) {
	case ClassType:
		return v.Class, v.Definition, true
	case *Tuple:
		return v.Class, false, true
	case *Collection:
		return v.Class, v.Definition, true
	}
	return nil, false, false
}

func definitionFlagOf(t Type) (bool, bool) {
	switch v := t.(type) {
	case ClassType:
		return v.Definition, true
	case *Collection:
		return v.Definition, true
	case GenericVar:
		return v.Definition, true
	}
	return false, false
}

func classNameOf(t Type) (string, bool) {
	desc, _, ok := asClassLike(t)
	if !ok || desc == nil {
		return "", false
	}
	n := desc.Name()
	if n == nil {
		return "", false
	}
	return *n, true
}

func classNameIs(desc ClassDescriptor, name string) bool {
	if desc == nil {
		return false
	}
	n := desc.Name()
	return n != nil && *n == name
}

func promoteToClassForm(t Type) Type {
	switch v := t.(type) {
	case ClassType:
		return v.ToClass()
	case GenericVar:
		return v.ToClass()
	}
	return t
}

func cloneActive(active map[GenericVar]bool) map[GenericVar]bool {
	out := make(map[GenericVar]bool, len(active)+1)
	for k := range active {
		out[k] = true
	}
	return out
}
