package typecheck

import "github.com/dhall-go/dhall-typecheck/internal/core/adt"

// pi is a small builder for nested ∀-types, mirroring the `pi` helper the
// original Rust source uses to keep the builtin schema table below
// readable instead of a wall of nested &adt.Pi{} literals.
func pi(label adt.Label, domain, codomain adt.Expr) *adt.Pi {
	return &adt.Pi{Label: label, Domain: domain, Codomain: codomain}
}

func v(name adt.Label) *adt.Var { return &adt.Var{V: adt.V{Name: name, Index: 0}} }

func appListOf(a adt.Expr) *adt.App { return &adt.App{Fn: adt.Builtin(adt.List), Arg: a} }

func appOptionalOf(a adt.Expr) *adt.App { return &adt.App{Fn: adt.Builtin(adt.Optional), Arg: a} }

// builtinSchema returns the fixed type of a builtin constant, per
// spec.md §4.6. Every schema here is itself a closed, well-typed
// expression — see TestBuiltinSchemasSelfCheck, spec.md §8 property 7.
func builtinSchema(b adt.Builtin) (adt.Expr, bool) {
	switch b {
	case adt.Bool, adt.Natural, adt.Integer, adt.Double, adt.Text:
		return adt.Const(adt.Type), true

	case adt.List, adt.Optional:
		return pi("_", adt.Const(adt.Type), adt.Const(adt.Type)), true

	case adt.NaturalIsZero, adt.NaturalEven, adt.NaturalOdd:
		return pi("_", adt.Builtin(adt.Natural), adt.Builtin(adt.Bool)), true

	case adt.NaturalFold:
		return pi("_", adt.Builtin(adt.Natural),
			pi("natural", adt.Const(adt.Type),
				pi("succ", pi("_", v("natural"), v("natural")),
					pi("zero", v("natural"), v("natural"))))), true

	case adt.NaturalBuild:
		return pi("_",
			pi("natural", adt.Const(adt.Type),
				pi("succ", pi("_", v("natural"), v("natural")),
					pi("zero", v("natural"), v("natural")))),
			adt.Builtin(adt.Natural)), true

	case adt.ListBuild:
		return pi("a", adt.Const(adt.Type),
			pi("_",
				pi("list", adt.Const(adt.Type),
					pi("cons", pi("_", v("a"), pi("_", v("list"), v("list"))),
						pi("nil", v("list"), v("list")))),
				appListOf(v("a")))), true

	case adt.ListFold:
		return pi("a", adt.Const(adt.Type),
			pi("_", appListOf(v("a")),
				pi("list", adt.Const(adt.Type),
					pi("cons", pi("_", v("a"), pi("_", v("list"), v("list"))),
						pi("nil", v("list"), v("list")))))), true

	case adt.ListLength:
		return pi("a", adt.Const(adt.Type), pi("_", appListOf(v("a")), adt.Builtin(adt.Natural))), true

	case adt.ListHead, adt.ListLast:
		return pi("a", adt.Const(adt.Type), pi("_", appListOf(v("a")), appOptionalOf(v("a")))), true

	case adt.ListIndexed:
		elem := adt.NewRecord([]adt.KV{
			{Label: "index", Expr: adt.Builtin(adt.Natural)},
			{Label: "value", Expr: v("a")},
		})
		return pi("a", adt.Const(adt.Type), pi("_", appListOf(v("a")), appListOf(elem))), true

	case adt.ListReverse:
		return pi("a", adt.Const(adt.Type), pi("_", appListOf(v("a")), appListOf(v("a")))), true

	case adt.OptionalFold:
		return pi("a", adt.Const(adt.Type),
			pi("_", appOptionalOf(v("a")),
				pi("optional", adt.Const(adt.Type),
					pi("just", pi("_", v("a"), v("optional")),
						pi("nothing", v("optional"), v("optional")))))), true
	}
	return nil, false
}
