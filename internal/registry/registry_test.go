package registry

import "testing"

func TestNewSeedsNumericLadder(t *testing.T) {
	r := New()
	for _, name := range []string{"object", "bool", "int", "long", "float", "complex", "str", "unicode", "basestring", "callable", "Integral", "Real", "Complex", "Number"} {
		if _, ok := r.ClassByName(name); !ok {
			t.Errorf("New() did not seed builtin %q", name)
		}
	}
}

func TestDefineRejectsDuplicateName(t *testing.T) {
	r := New()
	if _, err := r.Define("int"); err == nil {
		t.Error("Define(\"int\") over an already-seeded builtin = nil error, want error")
	}
}

func TestDefineWithUnregisteredBaseIsUnresolved(t *testing.T) {
	r := New()
	widget, err := r.Define("Widget", "MissingBase")
	if err != nil {
		t.Fatalf("Define(Widget, MissingBase) = %v, want success", err)
	}
	if !widget.HasUnresolvedAncestors() {
		t.Error("Widget with an unregistered base should have unresolved ancestors")
	}
}

func TestIsSubclassOfFollowsMultipleInheritance(t *testing.T) {
	r := New()
	a, _ := r.Define("A", "object")
	b, _ := r.Define("B", "object")
	c, _ := r.Define("C", "A", "B")

	if !c.IsSubclassOf(a) {
		t.Error("C should be a subclass of A (first base)")
	}
	if !c.IsSubclassOf(b) {
		t.Error("C should be a subclass of B (second base)")
	}
	if a.IsSubclassOf(c) {
		t.Error("A should not be a subclass of C")
	}
}

func TestIsABCSubclassOfIsSeparateFromNominalGraph(t *testing.T) {
	r := New()
	decimal, _ := r.Define("Decimal", "object")
	number, _ := r.ClassByName("Number")

	if decimal.IsABCSubclassOf(number) {
		t.Error("Decimal should not be ABC-registered against Number before RegisterABC")
	}
	if err := r.RegisterABC("Decimal", "Number"); err != nil {
		t.Fatal(err)
	}
	if !decimal.IsABCSubclassOf(number) {
		t.Error("Decimal should be ABC-registered against Number after RegisterABC")
	}
	if decimal.IsSubclassOf(number) {
		t.Error("ABC registration should not create a nominal subclass relationship")
	}
}

func TestMemberNamesInheritedUnion(t *testing.T) {
	r := New()
	if _, err := r.Define("Base", "object"); err != nil {
		t.Fatal(err)
	}
	if err := r.DefineMember("Base", "foo", false); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Define("Derived", "Base"); err != nil {
		t.Fatal(err)
	}
	if err := r.DefineMember("Derived", "bar", false); err != nil {
		t.Fatal(err)
	}
	derived, _ := r.ClassByName("Derived")

	own := derived.MemberNames(false)
	if _, ok := own["foo"]; ok {
		t.Error("MemberNames(false) should not include inherited members")
	}
	all := derived.MemberNames(true)
	if _, ok := all["foo"]; !ok {
		t.Error("MemberNames(true) should include inherited members")
	}
	if _, ok := all["bar"]; !ok {
		t.Error("MemberNames(true) should include own members")
	}
}

func TestIsBuiltinWalksBasesWhenOwnMemberAbsent(t *testing.T) {
	r := New()
	if _, err := r.Define("Base", "object"); err != nil {
		t.Fatal(err)
	}
	if err := r.DefineMember("Base", "__getattr__", true); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Define("Derived", "Base"); err != nil {
		t.Fatal(err)
	}
	derived, _ := r.ClassByName("Derived")
	if !derived.IsBuiltin("__getattr__") {
		t.Error("IsBuiltin should walk bases when the member isn't declared locally")
	}
	if derived.IsBuiltin("nonexistent") {
		t.Error("IsBuiltin(nonexistent) = true, want false")
	}
}

func TestApplyManifestRegistersInOrder(t *testing.T) {
	r := New()
	m := &Manifest{Classes: []ClassSpec{
		{Name: "Animal", Bases: []string{"object"}, Members: []string{"speak"}},
		{Name: "Dog", Bases: []string{"Animal"}, ABCBases: []string{"Integral"}, Members: []string{"bark"}, BuiltinMembers: []string{"bark"}},
	}}
	if err := ApplyManifest(r, m); err != nil {
		t.Fatal(err)
	}
	dog, ok := r.ClassByName("Dog")
	if !ok {
		t.Fatal("Dog not registered")
	}
	animal, _ := r.ClassByName("Animal")
	integral, _ := r.ClassByName("Integral")
	if !dog.IsSubclassOf(animal) {
		t.Error("Dog should be a nominal subclass of Animal")
	}
	if !dog.IsABCSubclassOf(integral) {
		t.Error("Dog should be ABC-registered against Integral")
	}
	if !dog.IsBuiltin("bark") {
		t.Error("Dog.bark should be marked builtin per BuiltinMembers")
	}
}

func TestBuiltinsStrOrUnicodeType(t *testing.T) {
	r := New()
	t1 := r.Builtins().StrOrUnicodeType()
	if t1 == nil {
		t.Fatal("StrOrUnicodeType() returned nil")
	}
	if t1.String() != "str | unicode" {
		t.Errorf("StrOrUnicodeType().String() = %q, want %q", t1.String(), "str | unicode")
	}
}

func TestBuiltinsByName(t *testing.T) {
	r := New()
	desc, ok := r.Builtins().ByName("basestring")
	if !ok {
		t.Fatal("ByName(basestring) not found")
	}
	if desc.Name() == nil || *desc.Name() != "basestring" {
		t.Errorf("ByName(basestring).Name() = %v, want basestring", desc.Name())
	}
	if _, ok := r.Builtins().ByName("nonexistent"); ok {
		t.Error("ByName(nonexistent) found a class, want not found")
	}
}
