package typesystem

// Numeric promotion names (spec.md §4.12, §7 "hard-coded... degrades to a
// name-equality test, not an error").
const (
	NameBool    = "bool"
	NameInt     = "int"
	NameLong    = "long"
	NameFloat   = "float"
	NameComplex = "complex"

	NameABCIntegral = "Integral"
	NameABCReal     = "Real"
	NameABCComplex  = "Complex"
	NameABCNumber   = "Number"
)

// matchNumericTypes implements spec.md §4.1 rule 12: bool ⊂ int ⊂ long ⊂
// float ⊂ complex ⊂ number, with each ABC surface name matching its
// concrete subset. expected/actual are the builtin class names; equal
// names are handled by the caller before reaching here (rule 12 only
// fires for "unequal names").
func matchNumericTypes(superName, subName string) bool {
	subIsBool := subName == NameBool
	subIsInt := subName == NameInt
	subIsLong := subName == NameLong
	subIsFloat := subName == NameFloat
	subIsComplex := subName == NameComplex

	switch {
	case superName == NameInt && subIsBool:
		return true
	case (superName == NameLong || superName == NameABCIntegral) && (subIsBool || subIsInt):
		return true
	case (superName == NameFloat || superName == NameABCReal) && (subIsBool || subIsInt || subIsLong):
		return true
	case (superName == NameComplex || superName == NameABCComplex) && (subIsBool || subIsInt || subIsLong || subIsFloat):
		return true
	case superName == NameABCNumber && (subIsBool || subIsInt || subIsLong || subIsFloat || subIsComplex):
		return true
	default:
		return false
	}
}
