package config

// ScenarioFileExt is the canonical extension for a type-compatibility
// scenario file consumed by cmd/typecheck.
const ScenarioFileExt = ".yaml"

// ScenarioFileExtensions are all recognized scenario file extensions.
var ScenarioFileExtensions = []string{".yaml", ".yml"}

// IsTestMode indicates the program is running under `typecheck test`,
// set once at startup the way the host's own test-mode flag is.
var IsTestMode = false

// Builtin class names the matcher's cascade refers to by name rather
// than by registry identity (spec.md §4.1, §4.12).
const (
	ObjectClassName     = "object"
	TypeClassName       = "type"
	CallableClassName   = "callable"
	BaseStringClassName = "basestring"
	StrClassName        = "str"
	UnicodeClassName    = "unicode"
)

// Numeric promotion ladder names, re-exported for callers assembling
// registries and scenarios (spec.md §4.1 rule 12).
const (
	BoolClassName    = "bool"
	IntClassName     = "int"
	LongClassName    = "long"
	FloatClassName   = "float"
	ComplexClassName = "complex"

	IntegralABCName = "Integral"
	RealABCName     = "Real"
	ComplexABCName  = "Complex"
	NumberABCName   = "Number"
)

// GetAttrMemberNames are the member names matchStructural's
// overridesGetAttr check looks for (spec.md §4.1 rule 10).
var GetAttrMemberNames = []string{"__getattr__", "__getattribute__"}
