package typesystem_test

import (
	"testing"

	"github.com/flowcheck/flowcheck/internal/typesystem"
)

func TestSubstituteShortCircuitsOnConcreteType(t *testing.T) {
	concrete := &typesystem.Collection{Params: []typesystem.Type{typesystem.ClassType{}}}
	got := typesystem.Substitute(concrete, typesystem.Substitutions{}, nil)
	if got != typesystem.Type(concrete) {
		t.Error("Substitute on a generics-free tree should return the input unchanged")
	}
}

func TestSubstituteDualFormLookup(t *testing.T) {
	reg := newTestRegistry(t)
	intType := typesystem.ClassType{Class: classOf(t, reg, "int")}
	tv := typesystem.GenericVar{Name: "T"} // instance form

	sigma := typesystem.Substitutions{tv.ToClass(): intType.ToClass()}
	got := typesystem.Substitute(tv, sigma, nil)

	want := intType // converted back to instance form
	if !typesystem.Equal(got, want) {
		t.Errorf("Substitute(T, {Type[T]: Type[int]}) = %v, want %v (dual-form lookup converts back)", got, want)
	}
}

func TestSubstituteChainedVariables(t *testing.T) {
	reg := newTestRegistry(t)
	intType := typesystem.ClassType{Class: classOf(t, reg, "int")}
	tv := typesystem.GenericVar{Name: "T"}
	uv := typesystem.GenericVar{Name: "U"}

	sigma := typesystem.Substitutions{tv: uv, uv: intType}
	got := typesystem.Substitute(tv, sigma, nil)
	if !typesystem.Equal(got, intType) {
		t.Errorf("Substitute(T, {T:U, U:int}) = %v, want int (chased through U)", got)
	}
}

func TestSubstituteChainedVariablesCycleGuard(t *testing.T) {
	tv := typesystem.GenericVar{Name: "T"}
	uv := typesystem.GenericVar{Name: "U"}
	sigma := typesystem.Substitutions{tv: uv, uv: tv}

	got := typesystem.Substitute(tv, sigma, nil)
	if got == nil {
		t.Fatal("Substitute on a cyclic chain returned nil; want it to terminate with some type, not panic/loop")
	}
}

func TestSubstituteUnionPreservesNilMembers(t *testing.T) {
	reg := newTestRegistry(t)
	intType := typesystem.ClassType{Class: classOf(t, reg, "int")}
	tv := typesystem.GenericVar{Name: "T"}

	// T has no entry in sigma, so it substitutes to nil. That nil must
	// survive into the rebuilt union rather than being dropped, since a
	// nil member is the signal IsUnknown uses to detect a union that is
	// still partially unresolved.
	u := typesystem.NewUnion([]typesystem.Type{tv, intType}, false)
	got := typesystem.Substitute(u, typesystem.Substitutions{}, nil)

	gotUnion, ok := got.(*typesystem.Union)
	if !ok || len(gotUnion.Members) != 2 {
		t.Fatalf("Substitute(T|int, {}) = %v, want a 2-member union with T's nil result preserved", got)
	}
	if gotUnion.Members[0] != nil {
		t.Errorf("substituted T member = %v, want nil", gotUnion.Members[0])
	}
	if !typesystem.Equal(gotUnion.Members[1], intType) {
		t.Errorf("substituted int member = %v, want int", gotUnion.Members[1])
	}
	if !typesystem.IsUnknown(got, true) {
		t.Error("IsUnknown(T|int after partial substitution) = false, want true (nil member still contaminates)")
	}
}

func TestSubstituteUnionCollapsesWhenAllMembersResolveToOne(t *testing.T) {
	reg := newTestRegistry(t)
	intType := typesystem.ClassType{Class: classOf(t, reg, "int")}
	tv := typesystem.GenericVar{Name: "T"}
	sigma := typesystem.Substitutions{tv: intType}

	u := &typesystem.Union{Members: []typesystem.Type{tv}, Weak: false}
	got := typesystem.Substitute(u, sigma, nil)
	if !typesystem.Equal(got, intType) {
		t.Errorf("Substitute(T, {T:int}) = %v, want %v (single-member union collapses)", got, intType)
	}
}

func TestSubstituteTuplePreservesHomogeneity(t *testing.T) {
	reg := newTestRegistry(t)
	intType := typesystem.ClassType{Class: classOf(t, reg, "int")}
	tv := typesystem.GenericVar{Name: "T"}
	sigma := typesystem.Substitutions{tv: intType}

	homogeneous := &typesystem.Tuple{Kind: typesystem.TupleHomogeneous, Item: tv}
	got := typesystem.Substitute(homogeneous, sigma, nil)
	gotTuple, ok := got.(*typesystem.Tuple)
	if !ok || !gotTuple.IsHomogeneous() {
		t.Fatalf("Substitute on a homogeneous tuple = %v, want a homogeneous tuple", got)
	}
	if !typesystem.Equal(gotTuple.Item, intType) {
		t.Errorf("substituted homogeneous tuple item = %v, want int", gotTuple.Item)
	}
}

func TestSubstituteIdempotentOnAcyclicSigma(t *testing.T) {
	reg := newTestRegistry(t)
	intType := typesystem.ClassType{Class: classOf(t, reg, "int")}
	tv := typesystem.GenericVar{Name: "T"}
	sigma := typesystem.Substitutions{tv: intType}

	tree := &typesystem.Collection{Params: []typesystem.Type{tv}}
	once := typesystem.Substitute(tree, sigma, nil)
	twice := typesystem.Substitute(once, sigma, nil)
	if !typesystem.Equal(once, twice) {
		t.Errorf("substitute(substitute(t, sigma), sigma) = %v, want %v (idempotent)", twice, once)
	}
}
