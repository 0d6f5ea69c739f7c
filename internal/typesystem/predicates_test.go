package typesystem

import "testing"

func TestIsUnknownNilAndAbsent(t *testing.T) {
	if !IsUnknown(nil, true) {
		t.Error("IsUnknown(nil) = false, want true")
	}
	if !IsUnknown(Unknown{}, true) {
		t.Error("IsUnknown(Unknown{}) = false, want true")
	}
}

func TestIsUnknownGenericFlagControlsVariables(t *testing.T) {
	gv := GenericVar{Name: "T"}
	if !IsUnknown(gv, true) {
		t.Error("IsUnknown(T, genericsAreUnknown=true) = false, want true")
	}
	if IsUnknown(gv, false) {
		t.Error("IsUnknown(T, genericsAreUnknown=false) = true, want false")
	}
}

func TestIsUnknownUnionAnyMemberPropagates(t *testing.T) {
	u := &Union{Members: []Type{ClassType{}, Unknown{}}}
	if !IsUnknown(u, true) {
		t.Error("IsUnknown(C|unknown) = false, want true")
	}
	weak := &Union{Members: []Type{ClassType{}}, Weak: true}
	if IsUnknown(weak, true) {
		t.Error("a weak union with no unknown member should not itself be unknown")
	}
}

func TestIsCallableAbsentIsUnknown(t *testing.T) {
	if got := IsCallable(nil); got != CallableUnknown {
		t.Errorf("IsCallable(nil) = %v, want CallableUnknown", got)
	}
}

func TestIsCallableFlagsOnCallableAndClosure(t *testing.T) {
	if got := IsCallable(&Callable{}); got != CallableYes {
		t.Errorf("IsCallable(callable) = %v, want CallableYes", got)
	}
	if got := IsCallable(&Callable{NotCallable: true}); got != CallableNo {
		t.Errorf("IsCallable(not-callable) = %v, want CallableNo", got)
	}
	if got := IsCallable(&Closure{}); got != CallableYes {
		t.Errorf("IsCallable(closure) = %v, want CallableYes", got)
	}
}

func TestIsCallableStructural(t *testing.T) {
	inferred := NewStructural([]string{"__call__"}, true)
	if got := IsCallable(inferred); got != CallableYes {
		t.Errorf("IsCallable(inferred structural) = %v, want CallableYes", got)
	}
	declared := NewStructural([]string{"__call__"}, false)
	if got := IsCallable(declared); got != CallableNo {
		t.Errorf("IsCallable(declared structural) = %v, want CallableNo", got)
	}
}

func TestIsCallableUnionPrefersYesThenUnknownThenNo(t *testing.T) {
	yes := &Union{Members: []Type{&Callable{NotCallable: true}, &Closure{}}}
	if got := IsCallable(yes); got != CallableYes {
		t.Errorf("IsCallable(notcallable|closure) = %v, want CallableYes", got)
	}
	unknown := &Union{Members: []Type{&Callable{NotCallable: true}, Unknown{}}}
	if got := IsCallable(unknown); got != CallableUnknown {
		t.Errorf("IsCallable(notcallable|unknown) = %v, want CallableUnknown", got)
	}
	no := &Union{Members: []Type{&Callable{NotCallable: true}, ClassType{}}}
	if got := IsCallable(no); got != CallableNo {
		t.Errorf("IsCallable(notcallable|C) = %v, want CallableNo", got)
	}
}
