package debug_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhall-go/dhall-typecheck/internal/core/adt"
	"github.com/dhall-go/dhall-typecheck/internal/core/debug"
)

func TestExprStringRendersPiType(t *testing.T) {
	e := &adt.Pi{Label: "x", Domain: adt.Builtin(adt.Bool), Codomain: adt.Builtin(adt.Bool)}
	require.Equal(t, "∀(x : Bool) → Bool", debug.ExprString(e, nil))
}

func TestExprStringRendersApplication(t *testing.T) {
	e := &adt.App{Fn: adt.Builtin(adt.List), Arg: adt.Builtin(adt.Natural)}
	require.Equal(t, "List Natural", debug.ExprString(e, nil))
}

func TestExprStringRendersEmptyRecordCompactly(t *testing.T) {
	e := adt.NewRecord(nil)
	require.Equal(t, "{}", debug.ExprString(e, nil))
}

func TestExprStringRendersRecordLiteralMultiline(t *testing.T) {
	e := adt.NewRecordLit([]adt.KV{
		{Label: "x", Expr: &adt.BoolLit{Value: true}},
	})
	require.Equal(t, "{\n  x : true\n}", debug.ExprString(e, nil))
}
