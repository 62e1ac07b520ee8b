// Package typecheck implements the Dhall type checker: the Pure Type
// System engine, the fixed builtin schemas, and the per-constructor
// typing judgments for every composite node in internal/core/adt. It is
// grounded directly on original_source/dhall/src/typecheck.rs — the Go
// switch below is a faithful re-expression of that file's match arms —
// in the structural idiom of the teacher's internal/core/compile package:
// a small checker type threading context through a single recursive
// entry point.
package typecheck

import (
	"github.com/dhall-go/dhall-typecheck/internal/core/adt"
	"github.com/dhall-go/dhall-typecheck/internal/core/context"
	"github.com/dhall-go/dhall-typecheck/internal/core/norm"
)

// Normalizer is the subset of norm.Normalizer the checker depends on. It
// is an interface so tests can swap in a stub, the way the teacher keeps
// its own evaluator behind a narrow seam.
type Normalizer interface {
	Normalize(adt.Expr) adt.Expr
}

type checker struct {
	norm Normalizer
}

// TypeWith infers the type of e under ctx using the default normalizer.
func TypeWith(ctx *context.Context, e adt.Expr) (adt.Expr, error) {
	return TypeWithNormalizer(norm.New(), ctx, e)
}

// TypeWithNormalizer is TypeWith parameterized over the normalizer
// collaborator, for callers (and tests) that want to supply their own.
func TypeWithNormalizer(n Normalizer, ctx *context.Context, e adt.Expr) (adt.Expr, error) {
	c := &checker{norm: n}
	return c.typeWith(ctx, e)
}

// TypeOf is TypeWith under the empty context: e must be closed.
func TypeOf(e adt.Expr) (adt.Expr, error) {
	return TypeWith(context.Empty(), e)
}

func axiom(c adt.Const) (adt.Const, error) {
	if c == adt.Type {
		return adt.Kind, nil
	}
	return 0, newError(context.Empty(), adt.Const(adt.Kind), Untyped, nil)
}

// rule implements the PTS sort-combination table: simple types and
// polymorphism and type operators are allowed; a dependent function type
// over a term (Type, Kind) is rejected outright.
func rule(a, b adt.Const) (adt.Const, bool) {
	switch {
	case a == adt.Type && b == adt.Kind:
		return 0, false
	case a == adt.Kind && b == adt.Kind:
		return adt.Kind, true
	default: // (Type,Type) or (Kind,Type)
		return adt.Type, true
	}
}

func (c *checker) normalize(e adt.Expr) adt.Expr { return c.norm.Normalize(e) }

func (c *checker) propEqual(l, r adt.Expr) bool {
	return adt.PropEqual(c.norm, l, r)
}

// typeWith is the single recursive entry point every judgment shares.
// Sub-expression inference follows the fixed left-to-right order spec.md
// §5 mandates (domain before codomain, predicate before branches,
// operands before operator) so that, among several possible failures,
// the same one is always reported first.
func (c *checker) typeWith(ctx *context.Context, e adt.Expr) (adt.Expr, error) {
	if note, ok := e.(*adt.Note); ok {
		t, err := c.typeWith(ctx, note.Expr)
		if err != nil {
			if te, ok := err.(*Error); ok {
				if _, isNote := te.Current.(*adt.Note); !isNote {
					te.Current = &adt.Note{Tag: note.Tag, Expr: te.Current}
				}
			}
			return nil, err
		}
		return t, nil
	}

	switch x := e.(type) {
	case adt.Const:
		k, err := axiom(x)
		if err != nil {
			return nil, err
		}
		return k, nil

	case *adt.Var:
		t, ok := ctx.Lookup(x.V.Name, x.V.Index)
		if !ok {
			return nil, newError(ctx, e, UnboundVariable, x.V)
		}
		return t, nil

	case *adt.Lam:
		ctx2 := ctx.Insert(x.Label, x.Domain)
		tB, err := c.typeWith(ctx2, x.Body)
		if err != nil {
			return nil, err
		}
		p := &adt.Pi{Label: x.Label, Domain: x.Domain, Codomain: tB}
		if _, err := c.typeWith(ctx, p); err != nil {
			return nil, err
		}
		return p, nil

	case *adt.Pi:
		return c.typePi(ctx, e, x)

	case *adt.App:
		return c.typeApp(ctx, e, x)

	case *adt.Let:
		return c.typeLet(ctx, e, x)

	case *adt.Annot:
		if _, err := c.typeWith(ctx, x.Type); err != nil {
			return nil, err
		}
		t2, err := c.typeWith(ctx, x.Expr)
		if err != nil {
			return nil, err
		}
		if !c.propEqual(x.Type, t2) {
			return nil, newError(ctx, e, AnnotMismatch, mismatch{c.normalize(x.Type), c.normalize(t2)})
		}
		return x.Type, nil

	case *adt.BoolLit:
		return adt.Builtin(adt.Bool), nil
	case *adt.NaturalLit:
		return adt.Builtin(adt.Natural), nil
	case *adt.IntegerLit:
		return adt.Builtin(adt.Integer), nil
	case *adt.DoubleLit:
		return adt.Builtin(adt.Double), nil
	case *adt.TextLit:
		return adt.Builtin(adt.Text), nil

	case *adt.BinOp:
		return c.typeBinOp(ctx, e, x)

	case *adt.BoolIf:
		return c.typeBoolIf(ctx, e, x)

	case adt.Builtin:
		if t, ok := builtinSchema(x); ok {
			return t, nil
		}
		panic("typecheck: unhandled builtin")

	case *adt.ListLit:
		return c.typeListLit(ctx, e, x)
	case *adt.OptionalLit:
		return c.typeOptionalLit(ctx, e, x)
	case *adt.Record:
		return c.typeRecord(ctx, e, x)
	case *adt.RecordLit:
		return c.typeRecordLit(ctx, e, x)
	case *adt.Union:
		return c.typeUnion(ctx, e, x)
	case *adt.UnionLit:
		return c.typeUnionLit(ctx, e, x)
	case *adt.Combine:
		return c.typeCombine(ctx, e, x)
	case *adt.Merge:
		return c.typeMerge(ctx, e, x)
	case *adt.Field:
		return c.typeField(ctx, e, x)

	default:
		panic("typecheck: unhandled node")
	}
}

type mismatch struct{ Expected, Got adt.Expr }

func (c *checker) typePi(ctx *context.Context, e adt.Expr, x *adt.Pi) (adt.Expr, error) {
	tA, err := c.typeWith(ctx, x.Domain)
	if err != nil {
		return nil, err
	}
	tA = c.normalize(tA)
	kA, ok := tA.(adt.Const)
	if !ok {
		return nil, newError(ctx, e, InvalidInputType, x.Domain)
	}

	ctx2 := ctx.Insert(x.Label, x.Domain)
	tB, err := c.typeWith(ctx2, x.Codomain)
	if err != nil {
		return nil, err
	}
	tB = c.normalize(tB)
	kB, ok := tB.(adt.Const)
	if !ok {
		return nil, newError(ctx2, e, InvalidOutputType, tB)
	}

	k, ok := rule(kA, kB)
	if !ok {
		return nil, newError(ctx, e, NoDependentTypes, mismatch{x.Domain, tB})
	}
	return adt.Const(k), nil
}

func (c *checker) typeApp(ctx *context.Context, e adt.Expr, x *adt.App) (adt.Expr, error) {
	tf, err := c.typeWith(ctx, x.Fn)
	if err != nil {
		return nil, err
	}
	tf = c.normalize(tf)
	piType, ok := tf.(*adt.Pi)
	if !ok {
		return nil, newError(ctx, e, NotAFunction, notAFunction{x.Fn, tf})
	}

	tA2, err := c.typeWith(ctx, x.Arg)
	if err != nil {
		return nil, err
	}
	if !c.propEqual(piType.Domain, tA2) {
		return nil, newError(ctx, e, TypeMismatch, typeMismatch{
			Fn: x.Fn, Expected: c.normalize(piType.Domain), Arg: x.Arg, Got: c.normalize(tA2),
		})
	}

	bound := adt.V{Name: piType.Label, Index: 0}
	shiftedArg := adt.Shift(1, bound, x.Arg)
	substituted := adt.Subst(bound, shiftedArg, piType.Codomain)
	return adt.Shift(-1, bound, substituted), nil
}

type notAFunction struct{ Fn, Type adt.Expr }
type typeMismatch struct {
	Fn, Expected, Arg, Got adt.Expr
}

func (c *checker) typeLet(ctx *context.Context, e adt.Expr, x *adt.Let) (adt.Expr, error) {
	tR, err := c.typeWith(ctx, x.Value)
	if err != nil {
		return nil, err
	}
	ttR, err := c.typeWith(ctx, tR)
	if err != nil {
		return nil, err
	}
	kR, ok := c.normalize(ttR).(adt.Const)
	if !ok {
		return nil, newError(ctx, e, InvalidInputType, tR)
	}

	ctx2 := ctx.Insert(x.Label, tR)
	tB, err := c.typeWith(ctx2, x.Body)
	if err != nil {
		return nil, err
	}
	ttB, err := c.typeWith(ctx, tB)
	if err != nil {
		return nil, err
	}
	kB, ok := c.normalize(ttB).(adt.Const)
	if !ok {
		return nil, newError(ctx, e, InvalidOutputType, tB)
	}

	if _, ok := rule(kR, kB); !ok {
		return nil, newError(ctx, e, NoDependentLet, mismatch{tR, tB})
	}

	if x.Annotation != nil {
		if !c.propEqual(x.Annotation, tR) {
			return nil, newError(ctx, e, AnnotMismatch, mismatch{c.normalize(x.Annotation), c.normalize(tR)})
		}
	}
	return tB, nil
}

func (c *checker) typeBinOp(ctx *context.Context, e adt.Expr, x *adt.BinOp) (adt.Expr, error) {
	var want adt.Builtin
	var code Code
	switch x.Op {
	case adt.BoolAnd:
		want, code = adt.Bool, CantAnd
	case adt.BoolOr:
		want, code = adt.Bool, CantOr
	case adt.BoolEQ:
		want, code = adt.Bool, CantEQ
	case adt.BoolNE:
		want, code = adt.Bool, CantNE
	case adt.NaturalPlus:
		want, code = adt.Natural, CantAdd
	case adt.NaturalTimes:
		want, code = adt.Natural, CantMultiply
	case adt.TextAppend:
		want, code = adt.Text, CantTextAppend
	}
	return c.op2Type(ctx, e, want, code, x.Left, x.Right)
}

func (c *checker) op2Type(ctx *context.Context, e adt.Expr, want adt.Builtin, code Code, l, r adt.Expr) (adt.Expr, error) {
	tl, err := c.typeWith(ctx, l)
	if err != nil {
		return nil, err
	}
	if b, ok := c.normalize(tl).(adt.Builtin); !ok || b != want {
		return nil, newError(ctx, e, code, operand{l, c.normalize(tl)})
	}

	tr, err := c.typeWith(ctx, r)
	if err != nil {
		return nil, err
	}
	if b, ok := c.normalize(tr).(adt.Builtin); !ok || b != want {
		return nil, newError(ctx, e, code, operand{r, c.normalize(tr)})
	}
	return adt.Builtin(want), nil
}

type operand struct {
	Expr, Type adt.Expr
}

func (c *checker) typeBoolIf(ctx *context.Context, e adt.Expr, x *adt.BoolIf) (adt.Expr, error) {
	tx, err := c.typeWith(ctx, x.Cond)
	if err != nil {
		return nil, err
	}
	if b, ok := c.normalize(tx).(adt.Builtin); !ok || b != adt.Bool {
		return nil, newError(ctx, e, InvalidPredicate, mismatch{x.Cond, c.normalize(tx)})
	}

	ty, err := c.typeWith(ctx, x.Then)
	if err != nil {
		return nil, err
	}
	ty = c.normalize(ty)
	tty, err := c.typeWith(ctx, ty)
	if err != nil {
		return nil, err
	}
	if k, ok := c.normalize(tty).(adt.Const); !ok || k != adt.Type {
		return nil, newError(ctx, e, IfBranchMustBeTerm, ifBranch{true, x.Then, ty, c.normalize(tty)})
	}

	tz, err := c.typeWith(ctx, x.Else)
	if err != nil {
		return nil, err
	}
	tz = c.normalize(tz)
	ttz, err := c.typeWith(ctx, tz)
	if err != nil {
		return nil, err
	}
	if k, ok := c.normalize(ttz).(adt.Const); !ok || k != adt.Type {
		return nil, newError(ctx, e, IfBranchMustBeTerm, ifBranch{false, x.Else, tz, c.normalize(ttz)})
	}

	if !c.propEqual(ty, tz) {
		return nil, newError(ctx, e, IfBranchMismatch, mismatch{ty, tz})
	}
	return ty, nil
}

type ifBranch struct {
	Then         bool
	Branch, Type adt.Expr
	TypeOfType   adt.Expr
}
