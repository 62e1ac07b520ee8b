// Package dhall is the public façade over internal/core/*: the small
// surface a caller builds and checks a closed term through, without
// reaching into internal packages directly. It plays the role the
// teacher's own cue package plays over its internal/core tree.
package dhall

import (
	"github.com/cockroachdb/apd/v2"

	"github.com/dhall-go/dhall-typecheck/internal/core/adt"
	"github.com/dhall-go/dhall-typecheck/internal/core/context"
	"github.com/dhall-go/dhall-typecheck/internal/core/debug"
	"github.com/dhall-go/dhall-typecheck/internal/core/norm"
	"github.com/dhall-go/dhall-typecheck/internal/core/typecheck"
)

// Expr is every node internal/core/adt.Expr recognizes.
type Expr = adt.Expr

// Context is the typing context TypeWith checks a term against.
type Context = context.Context

// TypeError is the structured error the checker returns on failure.
type TypeError = typecheck.Error

// EmptyContext returns the empty typing context.
func EmptyContext() *Context { return context.Empty() }

// TypeWith infers the type of e under ctx.
func TypeWith(ctx *Context, e Expr) (Expr, error) {
	return typecheck.TypeWith(ctx, e)
}

// TypeOf infers the type of a closed expression e, under the empty
// context.
func TypeOf(e Expr) (Expr, error) {
	return typecheck.TypeOf(e)
}

// Normalize reduces e to beta-normal form.
func Normalize(e Expr) Expr {
	return norm.New().Normalize(e)
}

// Constructors re-exported so a caller never needs to import
// internal/core/adt directly to build a term.

func NewVar(name string, index int) *adt.Var {
	return &adt.Var{V: adt.V{Name: adt.NewLabel(name), Index: index}}
}

func NewLam(label string, domain, body Expr) *adt.Lam {
	return &adt.Lam{Label: adt.NewLabel(label), Domain: domain, Body: body}
}

func NewPi(label string, domain, codomain Expr) *adt.Pi {
	return &adt.Pi{Label: adt.NewLabel(label), Domain: domain, Codomain: codomain}
}

func NewApp(fn, arg Expr) *adt.App {
	return &adt.App{Fn: fn, Arg: arg}
}

func NewLet(label string, annotation, value, body Expr) *adt.Let {
	return &adt.Let{Label: adt.NewLabel(label), Annotation: annotation, Value: value, Body: body}
}

func NewAnnot(e, t Expr) *adt.Annot {
	return &adt.Annot{Expr: e, Type: t}
}

func NewRecord(fields map[string]Expr) *adt.Record {
	return adt.NewRecord(kvsFromMap(fields))
}

func NewRecordLit(fields map[string]Expr) *adt.RecordLit {
	return adt.NewRecordLit(kvsFromMap(fields))
}

func NewUnion(alts map[string]Expr) *adt.Union {
	return adt.NewUnion(kvsFromMap(alts))
}

func NewBool(v bool) *adt.BoolLit { return &adt.BoolLit{Value: v} }

func NewNatural(v int64) *adt.NaturalLit {
	var d apd.Decimal
	d.SetInt64(v)
	return &adt.NaturalLit{Value: d}
}

func NewText(v string) *adt.TextLit { return &adt.TextLit{Value: v} }

func kvsFromMap(m map[string]Expr) []adt.KV {
	out := make([]adt.KV, 0, len(m))
	for k, v := range m {
		out = append(out, adt.KV{Label: adt.NewLabel(k), Expr: v})
	}
	return out
}

// Builtin constants, re-exported for convenience.
const (
	Bool     = adt.Bool
	Natural  = adt.Natural
	Integer  = adt.Integer
	Double   = adt.Double
	Text     = adt.Text
	List     = adt.List
	Optional = adt.Optional
)

// Type and Kind are the two sorts of the PTS.
const (
	Type = adt.Type
	Kind = adt.Kind
)

// String renders e for debugging; not valid Dhall source.
func String(e Expr) string {
	return debug.ExprString(e, nil)
}
