package norm_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhall-go/dhall-typecheck/internal/core/adt"
	"github.com/dhall-go/dhall-typecheck/internal/core/norm"
)

func nat(n int64) *adt.NaturalLit {
	var lit adt.NaturalLit
	lit.Value.SetInt64(n)
	return &lit
}

// requireNat asserts got normalizes to a NaturalLit numerically equal to
// want, comparing via apd.Decimal.Cmp rather than require.Equal so the
// assertion doesn't depend on which internal representation an arithmetic
// result happens to carry.
func requireNat(t *testing.T, want int64, got adt.Expr) {
	t.Helper()
	n, ok := got.(*adt.NaturalLit)
	require.Truef(t, ok, "expected *adt.NaturalLit, got %T", got)
	require.Zerof(t, n.Value.Cmp(&nat(want).Value), "expected %d, got %s", want, &n.Value)
}

func TestNormalizeBetaReducesApplication(t *testing.T) {
	n := norm.New()
	lam := &adt.Lam{Label: "x", Domain: adt.Builtin(adt.Natural), Body: &adt.Var{V: adt.V{Name: "x", Index: 0}}}
	requireNat(t, 5, n.Normalize(&adt.App{Fn: lam, Arg: nat(5)}))
}

func TestNormalizeReducesLetByInlining(t *testing.T) {
	n := norm.New()
	let := &adt.Let{Label: "x", Value: nat(1), Body: &adt.Var{V: adt.V{Name: "x", Index: 0}}}
	requireNat(t, 1, n.Normalize(let))
}

func TestNormalizeShortCircuitsBoolIf(t *testing.T) {
	n := norm.New()
	e := &adt.BoolIf{Cond: &adt.BoolLit{Value: true}, Then: nat(1), Else: nat(2)}
	requireNat(t, 1, n.Normalize(e))
}

func TestNormalizeReducesNaturalPlus(t *testing.T) {
	n := norm.New()
	e := &adt.BinOp{Op: adt.NaturalPlus, Left: nat(2), Right: nat(3)}
	requireNat(t, 5, n.Normalize(e))
}

func TestNormalizeFusesNaturalIsZero(t *testing.T) {
	n := norm.New()
	e := &adt.App{Fn: adt.Builtin(adt.NaturalIsZero), Arg: nat(0)}
	got, ok := n.Normalize(e).(*adt.BoolLit)
	require.True(t, ok)
	require.True(t, got.Value)
}

func TestNormalizeFusesListLength(t *testing.T) {
	n := norm.New()
	xs := &adt.ListLit{ElemType: adt.Builtin(adt.Natural), Elems: []adt.Expr{nat(1), nat(2)}}
	e := &adt.App{Fn: &adt.App{Fn: adt.Builtin(adt.ListLength), Arg: adt.Builtin(adt.Natural)}, Arg: xs}
	requireNat(t, 2, n.Normalize(e))
}

func TestNormalizeFusesListFold(t *testing.T) {
	n := norm.New()
	xs := &adt.ListLit{ElemType: adt.Builtin(adt.Natural), Elems: []adt.Expr{nat(1), nat(2), nat(3)}}
	cons := &adt.Lam{
		Label: "x", Domain: adt.Builtin(adt.Natural),
		Body: &adt.Lam{
			Label: "acc", Domain: adt.Builtin(adt.Natural),
			Body: &adt.BinOp{
				Op:    adt.NaturalPlus,
				Left:  &adt.Var{V: adt.V{Name: "x", Index: 0}},
				Right: &adt.Var{V: adt.V{Name: "acc", Index: 0}},
			},
		},
	}
	args := []adt.Expr{adt.Builtin(adt.Natural), xs, adt.Builtin(adt.Natural), cons, nat(0)}
	var e adt.Expr = adt.Builtin(adt.ListFold)
	for _, a := range args {
		e = &adt.App{Fn: e, Arg: a}
	}
	requireNat(t, 6, n.Normalize(e))
}

func TestNormalizeCombinesRecordLiteralsFieldwise(t *testing.T) {
	n := norm.New()
	l := adt.NewRecordLit([]adt.KV{{Label: "a", Expr: nat(1)}})
	r := adt.NewRecordLit([]adt.KV{{Label: "b", Expr: &adt.BoolLit{Value: true}}})
	got := n.Normalize(&adt.Combine{Left: l, Right: r}).(*adt.RecordLit)
	require.Len(t, got.Fields, 2)
}

func TestNormalizeAppliesMergeHandler(t *testing.T) {
	n := norm.New()
	handlers := adt.NewRecordLit([]adt.KV{
		{Label: "Left", Expr: &adt.Lam{Label: "n", Domain: adt.Builtin(adt.Natural), Body: &adt.Var{V: adt.V{Name: "n", Index: 0}}}},
	})
	union := &adt.UnionLit{Tag: "Left", Value: nat(7)}
	got := n.Normalize(&adt.Merge{Handlers: handlers, Union: union, ResultType: adt.Builtin(adt.Natural)})
	requireNat(t, 7, got)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	n := norm.New()
	e := &adt.BinOp{Op: adt.NaturalTimes, Left: nat(2), Right: nat(3)}
	once := n.Normalize(e)
	twice := n.Normalize(once)
	require.Equal(t, once, twice)
}
