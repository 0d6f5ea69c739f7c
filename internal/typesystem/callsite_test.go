package typesystem

import "testing"

func TestCallSiteGetReceiverPerKind(t *testing.T) {
	fc := CallSite{Kind: CallSiteFunctionCall, Qualifier: "obj"}
	if got := fc.GetReceiver(); got != "obj" {
		t.Errorf("function-call GetReceiver() = %v, want %v", got, "obj")
	}

	sub := CallSite{Kind: CallSiteSubscription, Operand: "seq"}
	if got := sub.GetReceiver(); got != "seq" {
		t.Errorf("subscription GetReceiver() = %v, want %v", got, "seq")
	}

	bin := CallSite{Kind: CallSiteBinaryOp, Left: "a", Right: "b"}
	if got := bin.GetReceiver(); got != "a" {
		t.Errorf("non-reflected binary-op GetReceiver() = %v, want %v", got, "a")
	}
	bin.Reflected = true
	if got := bin.GetReceiver(); got != "b" {
		t.Errorf("reflected binary-op GetReceiver() = %v, want %v", got, "b")
	}
}

func TestCallSiteGetArgumentsDefaultsPerKind(t *testing.T) {
	sub := CallSite{Kind: CallSiteSubscription, Operand: "seq", Index: "i"}
	args := sub.GetArguments()
	if len(args) != 1 || args[0].Expr != "i" {
		t.Errorf("subscription GetArguments() = %v, want [{i}]", args)
	}

	bin := CallSite{Kind: CallSiteBinaryOp, Left: "a", Right: "b"}
	args = bin.GetArguments()
	if len(args) != 1 || args[0].Expr != "b" {
		t.Errorf("non-reflected binary-op GetArguments() = %v, want [{b}]", args)
	}
	bin.Reflected = true
	args = bin.GetArguments()
	if len(args) != 1 || args[0].Expr != "a" {
		t.Errorf("reflected binary-op GetArguments() = %v, want [{a}]", args)
	}
}

func TestFilterExplicitParametersDropsSelfWhenQualified(t *testing.T) {
	params := []CallableParameter{{Name: "self"}, {Name: "x"}, {Name: "y"}}
	qualified := CallSite{Kind: CallSiteFunctionCall, Qualifier: "obj"}
	got := qualified.FilterExplicitParameters(params)
	if len(got) != 2 || got[0].Name != "x" || got[1].Name != "y" {
		t.Errorf("FilterExplicitParameters(%v) on a qualified call = %v, want [x, y]", params, got)
	}
	if got := qualified.FilterExplicitParameters(nil); got != nil {
		t.Errorf("FilterExplicitParameters(nil) = %v, want nil", got)
	}
}

func TestFilterExplicitParametersKeepsAllForStaticCall(t *testing.T) {
	params := []CallableParameter{{Name: "x"}, {Name: "y"}}
	static := CallSite{Kind: CallSiteFunctionCall} // no Qualifier: a free function, not a method
	got := static.FilterExplicitParameters(params)
	if len(got) != 2 || got[0].Name != "x" || got[1].Name != "y" {
		t.Errorf("FilterExplicitParameters(%v) on a static call = %v, want [x, y] unchanged (no implicit receiver to drop)", params, got)
	}
}

func TestFilterExplicitParametersDropsSelfForSubscriptionAndBinaryOp(t *testing.T) {
	params := []CallableParameter{{Name: "self"}, {Name: "item"}}

	sub := CallSite{Kind: CallSiteSubscription, Operand: "seq"}
	if got := sub.FilterExplicitParameters(params); len(got) != 1 || got[0].Name != "item" {
		t.Errorf("FilterExplicitParameters(%v) on a subscription = %v, want [item]", params, got)
	}

	bin := CallSite{Kind: CallSiteBinaryOp, Left: "a", Right: "b"}
	if got := bin.FilterExplicitParameters(params); len(got) != 1 || got[0].Name != "item" {
		t.Errorf("FilterExplicitParameters(%v) on a binary op = %v, want [item]", params, got)
	}
}
