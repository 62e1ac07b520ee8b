package adt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhall-go/dhall-typecheck/internal/core/adt"
)

func TestShiftLeavesUnrelatedNamesAlone(t *testing.T) {
	e := &adt.Var{V: adt.V{Name: "y", Index: 0}}
	got := adt.Shift(1, adt.V{Name: "x", Index: 0}, e)
	require.Equal(t, e, got)
}

func TestShiftBumpsFreeOccurrenceAtOrAboveIndex(t *testing.T) {
	e := &adt.Var{V: adt.V{Name: "x", Index: 1}}
	got := adt.Shift(1, adt.V{Name: "x", Index: 0}, e).(*adt.Var)
	require.Equal(t, 2, got.V.Index)
}

func TestShiftDoesNotCrossOwnBinder(t *testing.T) {
	// λ(x : Bool) → x  — the bound x is index 0 under its own binder and
	// must not be touched by a shift targeting the outer x.
	lam := &adt.Lam{
		Label:  "x",
		Domain: adt.Builtin(adt.Bool),
		Body:   &adt.Var{V: adt.V{Name: "x", Index: 0}},
	}
	got := adt.Shift(1, adt.V{Name: "x", Index: 0}, lam).(*adt.Lam)
	body := got.Body.(*adt.Var)
	require.Equal(t, 0, body.V.Index)
}

func TestSubstReplacesExactMatch(t *testing.T) {
	v := adt.V{Name: "x", Index: 0}
	repl := adt.Builtin(adt.Bool)
	got := adt.Subst(v, repl, &adt.Var{V: v})
	require.Equal(t, repl, got)
}

func TestSubstAvoidsCaptureUnderBinder(t *testing.T) {
	// Substituting a free x@0 for x@0 inside λ(x : Type) → x@1 must not let
	// the binder capture the replacement: entering the binder shifts both
	// the target and the replacement to x@1, so the body's x@1 becomes the
	// replacement x@1, which still refers past the binder to the outer x.
	v := adt.V{Name: "x", Index: 0}
	repl := &adt.Var{V: adt.V{Name: "x", Index: 0}}
	body := &adt.Lam{
		Label:  "x",
		Domain: adt.Const(adt.Type),
		Body:   &adt.Var{V: adt.V{Name: "x", Index: 1}},
	}
	got := adt.Subst(v, repl, body).(*adt.Lam)
	inner := got.Body.(*adt.Var)
	require.Equal(t, adt.V{Name: "x", Index: 1}, inner.V)
}

func TestSubstShiftsReplacementAcrossUnrelatedBinder(t *testing.T) {
	// Substituting a free "g" for x inside λ(g : Bool) → x must not let the
	// lambda's own g capture the replacement: repl's free g has to be
	// bumped to index 1 even though the binder being crossed is named "g",
	// not "x", the variable actually being replaced.
	v := adt.V{Name: "x", Index: 0}
	repl := &adt.Var{V: adt.V{Name: "g", Index: 0}}
	body := &adt.Lam{
		Label:  "g",
		Domain: adt.Builtin(adt.Bool),
		Body:   &adt.Var{V: adt.V{Name: "x", Index: 0}},
	}
	got := adt.Subst(v, repl, body).(*adt.Lam)
	inner := got.Body.(*adt.Var)
	require.Equal(t, adt.V{Name: "g", Index: 1}, inner.V)
}

func TestCanonicalizeSortsAndDedupesRecordLit(t *testing.T) {
	rec := adt.NewRecordLit([]adt.KV{
		{Label: "b", Expr: &adt.NaturalLit{}},
		{Label: "a", Expr: &adt.BoolLit{Value: true}},
		{Label: "a", Expr: &adt.BoolLit{Value: false}},
	})
	require.Len(t, rec.Fields, 2)
	require.Equal(t, adt.Label("a"), rec.Fields[0].Label)
	require.Equal(t, adt.Label("b"), rec.Fields[1].Label)
}
