package norm

import (
	"github.com/cockroachdb/apd/v2"

	"github.com/dhall-go/dhall-typecheck/internal/core/adt"
)

// spine flattens a chain of App nodes into its head and the arguments
// applied to it, outermost argument last — the shape every builtin
// reduction rule below pattern-matches against.
func spine(fn, arg adt.Expr) (head adt.Expr, args []adt.Expr) {
	args = []adt.Expr{arg}
	for {
		app, ok := fn.(*adt.App)
		if !ok {
			return fn, args
		}
		args = append([]adt.Expr{app.Arg}, args...)
		fn = app.Fn
	}
}

// fuseBuiltinApp recognizes a fully- or partially-applied builtin
// combinator at the head of an application spine and, once enough
// arguments are present to decide, returns its Dhall-specified reduction.
// It reports false when fn/arg don't form a reducible builtin
// application, leaving the caller to keep it as an opaque App node.
func fuseBuiltinApp(fn, arg adt.Expr) (adt.Expr, bool) {
	head, args := spine(fn, arg)
	b, ok := head.(adt.Builtin)
	if !ok {
		return nil, false
	}
	switch b {
	case adt.NaturalIsZero:
		if n, ok := natLit(args, 0); ok {
			return &adt.BoolLit{Value: n.Sign() == 0}, true
		}
	case adt.NaturalEven:
		if n, ok := natLit(args, 0); ok {
			return &adt.BoolLit{Value: isEven(n)}, true
		}
	case adt.NaturalOdd:
		if n, ok := natLit(args, 0); ok {
			return &adt.BoolLit{Value: !isEven(n)}, true
		}
	case adt.NaturalFold:
		// Natural/fold n natural succ zero
		if len(args) == 4 {
			if n, ok := natLit(args, 0); ok {
				return foldNatural(n, args[2], args[3]), true
			}
		}
	case adt.NaturalBuild:
		// Natural/build g  ≡  g Natural (λ(x:Natural) → x + 1) 0
		if len(args) == 1 {
			succ := &adt.Lam{
				Label:  "x",
				Domain: adt.Builtin(adt.Natural),
				Body: &adt.BinOp{
					Op:    adt.NaturalPlus,
					Left:  &adt.Var{V: adt.V{Name: "x", Index: 0}},
					Right: &adt.NaturalLit{Value: oneDecimal()},
				},
			}
			return applyAll(args[0], adt.Builtin(adt.Natural), succ, &adt.NaturalLit{Value: decimalFromInt(0)}), true
		}
	case adt.ListLength:
		// List/length a xs
		if len(args) == 2 {
			if xs, ok := args[1].(*adt.ListLit); ok {
				return &adt.NaturalLit{Value: decimalFromInt(len(xs.Elems))}, true
			}
		}
	case adt.ListHead:
		if len(args) == 2 {
			if xs, ok := args[1].(*adt.ListLit); ok {
				if len(xs.Elems) == 0 {
					return &adt.OptionalLit{ElemType: args[0]}, true
				}
				return &adt.OptionalLit{ElemType: args[0], Elems: []adt.Expr{xs.Elems[0]}}, true
			}
		}
	case adt.ListLast:
		if len(args) == 2 {
			if xs, ok := args[1].(*adt.ListLit); ok {
				if len(xs.Elems) == 0 {
					return &adt.OptionalLit{ElemType: args[0]}, true
				}
				return &adt.OptionalLit{ElemType: args[0], Elems: []adt.Expr{xs.Elems[len(xs.Elems)-1]}}, true
			}
		}
	case adt.ListReverse:
		if len(args) == 2 {
			if xs, ok := args[1].(*adt.ListLit); ok {
				out := make([]adt.Expr, len(xs.Elems))
				for i, e := range xs.Elems {
					out[len(xs.Elems)-1-i] = e
				}
				return &adt.ListLit{ElemType: xs.ElemType, Elems: out}, true
			}
		}
	case adt.ListIndexed:
		if len(args) == 2 {
			if xs, ok := args[1].(*adt.ListLit); ok {
				out := make([]adt.Expr, len(xs.Elems))
				for i, e := range xs.Elems {
					out[i] = adt.NewRecordLit([]adt.KV{
						{Label: "index", Expr: &adt.NaturalLit{Value: decimalFromInt(i)}},
						{Label: "value", Expr: e},
					})
				}
				var elemType adt.Expr
				if args[0] != nil {
					elemType = adt.NewRecord([]adt.KV{
						{Label: "index", Expr: adt.Builtin(adt.Natural)},
						{Label: "value", Expr: args[0]},
					})
				}
				return &adt.ListLit{ElemType: elemType, Elems: out}, true
			}
		}
	case adt.ListFold:
		// List/fold a xs list cons nil
		if len(args) == 5 {
			if xs, ok := args[1].(*adt.ListLit); ok {
				return foldList(xs.Elems, args[3], args[4]), true
			}
		}
	case adt.OptionalFold:
		// Optional/fold a xs optional just nothing
		if len(args) == 5 {
			if xs, ok := args[1].(*adt.OptionalLit); ok {
				if len(xs.Elems) == 1 {
					return applyAll(args[3], xs.Elems[0]), true
				}
				return args[4], true
			}
		}
	}
	return nil, false
}

func natLit(args []adt.Expr, i int) (*apd.Decimal, bool) {
	if i >= len(args) {
		return nil, false
	}
	n, ok := args[i].(*adt.NaturalLit)
	if !ok {
		return nil, false
	}
	return &n.Value, true
}

func isEven(n *apd.Decimal) bool {
	var rem apd.Decimal
	two := decimalFromInt(2)
	_, _ = apd.BaseContext.Rem(&rem, n, &two)
	return rem.Sign() == 0
}

func decimalFromInt(i int) apd.Decimal {
	var d apd.Decimal
	d.SetInt64(int64(i))
	return d
}

func oneDecimal() apd.Decimal { return decimalFromInt(1) }

// foldNatural applies succ to zero n times, where n is a concrete
// Natural — Natural/fold's only specified reduction.
func foldNatural(n *apd.Decimal, succ, zero adt.Expr) adt.Expr {
	count, _ := n.Int64()
	acc := zero
	for i := int64(0); i < count; i++ {
		acc = normalizeApp(succ, acc)
	}
	return acc
}

// foldList applies cons right-to-left over elems, ending in nil — the
// standard Church-list consumption List/fold specifies.
func foldList(elems []adt.Expr, cons, nilVal adt.Expr) adt.Expr {
	acc := nilVal
	for i := len(elems) - 1; i >= 0; i-- {
		acc = applyAll(cons, elems[i], acc)
	}
	return acc
}

// applyAll builds and reduces fn applied to args left to right.
func applyAll(fn adt.Expr, args ...adt.Expr) adt.Expr {
	acc := fn
	for _, a := range args {
		acc = normalizeApp(normalize(acc), normalize(a))
	}
	return acc
}
