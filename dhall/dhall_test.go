package dhall_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhall-go/dhall-typecheck/dhall"
)

func TestTypeOfIdentityFunction(t *testing.T) {
	// λ(x : Bool) → x  :  ∀(x : Bool) → Bool
	id := dhall.NewLam("x", dhall.Bool, dhall.NewVar("x", 0))
	got, err := dhall.TypeOf(id)
	require.NoError(t, err)

	want := dhall.NewPi("x", dhall.Bool, dhall.Bool)
	require.Equal(t, dhall.String(want), dhall.String(got))
}

func TestTypeOfRecordLiteral(t *testing.T) {
	rec := dhall.NewRecordLit(map[string]dhall.Expr{
		"a": dhall.NewBool(true),
		"b": dhall.NewNatural(0),
	})
	got, err := dhall.TypeOf(rec)
	require.NoError(t, err)

	want := dhall.NewRecord(map[string]dhall.Expr{
		"a": dhall.Bool,
		"b": dhall.Natural,
	})
	require.Equal(t, dhall.String(want), dhall.String(got))
}

func TestTypeOfUnboundVariableFails(t *testing.T) {
	_, err := dhall.TypeOf(dhall.NewVar("x", 0))
	require.Error(t, err)

	var typeErr *dhall.TypeError
	require.True(t, errors.As(err, &typeErr))
}

func TestTypeOfAppliesFunction(t *testing.T) {
	id := dhall.NewLam("x", dhall.Bool, dhall.NewVar("x", 0))
	app := dhall.NewApp(id, dhall.NewBool(true))
	got, err := dhall.TypeOf(app)
	require.NoError(t, err)
	require.Equal(t, dhall.String(dhall.Bool), dhall.String(got))
}

func TestTypeOfLetBinding(t *testing.T) {
	let := dhall.NewLet("x", nil, dhall.NewNatural(0), dhall.NewVar("x", 0))
	got, err := dhall.TypeOf(let)
	require.NoError(t, err)
	require.Equal(t, dhall.String(dhall.Natural), dhall.String(got))
}

func TestNormalizeBetaReducesApplication(t *testing.T) {
	id := dhall.NewLam("x", dhall.Natural, dhall.NewVar("x", 0))
	app := dhall.NewApp(id, dhall.NewNatural(42))
	got := dhall.Normalize(app)
	require.Equal(t, dhall.String(dhall.NewNatural(42)), dhall.String(got))
}
