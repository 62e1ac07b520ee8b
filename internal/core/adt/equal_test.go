package adt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhall-go/dhall-typecheck/internal/core/adt"
)

type identityNormalizer struct{}

func (identityNormalizer) Normalize(e adt.Expr) adt.Expr { return e }

func TestPropEqualRenamesBoundVariables(t *testing.T) {
	l := &adt.Pi{Label: "x", Domain: adt.Builtin(adt.Bool), Codomain: &adt.Var{V: adt.V{Name: "x", Index: 0}}}
	r := &adt.Pi{Label: "y", Domain: adt.Builtin(adt.Bool), Codomain: &adt.Var{V: adt.V{Name: "y", Index: 0}}}
	require.True(t, adt.PropEqual(identityNormalizer{}, l, r))
}

func TestPropEqualRejectsDifferentFreeVariables(t *testing.T) {
	l := &adt.Var{V: adt.V{Name: "x", Index: 0}}
	r := &adt.Var{V: adt.V{Name: "y", Index: 0}}
	require.False(t, adt.PropEqual(identityNormalizer{}, l, r))
}

func TestPropEqualDistinguishesShadowedFromFree(t *testing.T) {
	// λ(x : Bool) → λ(x : Bool) → x  — the inner x shadows; it must not be
	// considered equal to a lambda whose body refers to the outer binder.
	shadowed := &adt.Lam{
		Label: "x", Domain: adt.Builtin(adt.Bool),
		Body: &adt.Lam{
			Label: "x", Domain: adt.Builtin(adt.Bool),
			Body: &adt.Var{V: adt.V{Name: "x", Index: 0}},
		},
	}
	outerRef := &adt.Lam{
		Label: "x", Domain: adt.Builtin(adt.Bool),
		Body: &adt.Lam{
			Label: "x", Domain: adt.Builtin(adt.Bool),
			Body: &adt.Var{V: adt.V{Name: "x", Index: 1}},
		},
	}
	require.False(t, adt.PropEqual(identityNormalizer{}, shadowed, outerRef))
}

func TestPropEqualOnRecordsIgnoresConstructionOrder(t *testing.T) {
	l := adt.NewRecord([]adt.KV{
		{Label: "a", Expr: adt.Builtin(adt.Bool)},
		{Label: "b", Expr: adt.Builtin(adt.Natural)},
	})
	r := adt.NewRecord([]adt.KV{
		{Label: "b", Expr: adt.Builtin(adt.Natural)},
		{Label: "a", Expr: adt.Builtin(adt.Bool)},
	})
	require.True(t, adt.PropEqual(identityNormalizer{}, l, r))
}

func TestPropEqualOnUnionLitComparesTagAndValue(t *testing.T) {
	l := &adt.UnionLit{Tag: "Left", Value: adt.Builtin(adt.Bool)}
	r := &adt.UnionLit{Tag: "Left", Value: adt.Builtin(adt.Bool)}
	require.True(t, adt.PropEqual(identityNormalizer{}, l, r))

	different := &adt.UnionLit{Tag: "Right", Value: adt.Builtin(adt.Bool)}
	require.False(t, adt.PropEqual(identityNormalizer{}, l, different))
}
