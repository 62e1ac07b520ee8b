// Package norm implements the peer collaborator internal/core/typecheck
// treats as a black box: reduction of a closed or open adt.Expr to
// beta-normal form. It plays the same role relative to
// internal/core/typecheck that the teacher's internal/core/eval plays
// relative to internal/core/compile — a separate package the checker
// calls into rather than one it implements itself — though unlike the
// teacher's unification-based evaluator this one is a plain, terminating
// beta reducer: Dhall's PTS guarantees normalization always terminates on
// a well-typed term.
package norm

import (
	"github.com/cockroachdb/apd/v2"

	"github.com/dhall-go/dhall-typecheck/internal/core/adt"
)

// Normalizer reduces expressions to beta-normal form.
type Normalizer struct{}

// New returns the default Normalizer.
func New() *Normalizer { return &Normalizer{} }

// Normalize reduces e to beta-normal form. It is total on well-typed
// input, idempotent, and respects alpha-equivalence — the contract
// internal/core/adt.PropEqual and internal/core/typecheck depend on.
func (n *Normalizer) Normalize(e adt.Expr) adt.Expr {
	return normalize(e)
}

func normalize(e adt.Expr) adt.Expr {
	switch x := e.(type) {
	case *adt.Note:
		return normalize(x.Expr)
	case adt.Const, adt.Builtin, *adt.Var,
		*adt.BoolLit, *adt.NaturalLit, *adt.IntegerLit, *adt.DoubleLit, *adt.TextLit:
		return e
	case *adt.Lam:
		return &adt.Lam{Label: x.Label, Domain: normalize(x.Domain), Body: normalize(x.Body)}
	case *adt.Pi:
		return &adt.Pi{Label: x.Label, Domain: normalize(x.Domain), Codomain: normalize(x.Codomain)}
	case *adt.App:
		return normalizeApp(normalize(x.Fn), normalize(x.Arg))
	case *adt.Let:
		// A let-binding normalizes by substituting its (normalized)
		// value into its body and continuing — Dhall has no runtime
		// notion of a let left in place past type checking.
		v := adt.V{Name: x.Label, Index: 0}
		value := normalize(x.Value)
		body := adt.Shift(-1, v, adt.Subst(v, adt.Shift(1, v, value), x.Body))
		return normalize(body)
	case *adt.Annot:
		return normalize(x.Expr)
	case *adt.BinOp:
		return normalizeBinOp(x.Op, normalize(x.Left), normalize(x.Right))
	case *adt.BoolIf:
		cond := normalize(x.Cond)
		if b, ok := cond.(*adt.BoolLit); ok {
			if b.Value {
				return normalize(x.Then)
			}
			return normalize(x.Else)
		}
		return &adt.BoolIf{Cond: cond, Then: normalize(x.Then), Else: normalize(x.Else)}
	case *adt.ListLit:
		return &adt.ListLit{ElemType: normalizeMaybe(x.ElemType), Elems: normalizeAll(x.Elems)}
	case *adt.OptionalLit:
		return &adt.OptionalLit{ElemType: normalizeMaybe(x.ElemType), Elems: normalizeAll(x.Elems)}
	case *adt.Record:
		return adt.NewRecord(normalizeKVs(x.Fields))
	case *adt.RecordLit:
		return adt.NewRecordLit(normalizeKVs(x.Fields))
	case *adt.Union:
		return adt.NewUnion(normalizeKVs(x.Alternatives))
	case *adt.UnionLit:
		return &adt.UnionLit{Tag: x.Tag, Value: normalize(x.Value), Alts: normalizeKVs(x.Alts)}
	case *adt.Combine:
		return normalizeCombine(normalize(x.Left), normalize(x.Right))
	case *adt.Merge:
		return normalizeMerge(x)
	case *adt.Field:
		r := normalize(x.Record)
		if rec, ok := r.(*adt.RecordLit); ok {
			for _, kv := range rec.Fields {
				if kv.Label == x.Label {
					return kv.Expr
				}
			}
		}
		return &adt.Field{Record: r, Label: x.Label}
	default:
		panic("norm: unhandled node")
	}
}

func normalizeMaybe(e adt.Expr) adt.Expr {
	if e == nil {
		return nil
	}
	return normalize(e)
}

func normalizeAll(es []adt.Expr) []adt.Expr {
	if es == nil {
		return nil
	}
	out := make([]adt.Expr, len(es))
	for i, e := range es {
		out[i] = normalize(e)
	}
	return out
}

func normalizeKVs(kv []adt.KV) []adt.KV {
	if kv == nil {
		return nil
	}
	out := make([]adt.KV, len(kv))
	for i, e := range kv {
		out[i] = adt.KV{Label: e.Label, Expr: normalize(e.Expr)}
	}
	return out
}

// normalizeApp beta-reduces (λ(x:A)→b) a, and otherwise performs the
// builtin fusion rules of fuseBuiltinApp (builtins.go), so a builtin
// combinator applied to enough arguments — with a literal Natural, list
// or optional where its rule needs one — normalizes away rather than
// getting stuck as an opaque application.
//
// List/build is left opaque here: expressing its Church-encoded witness
// (the "cons" argument the builder is applied to) needs a list-append
// primitive that isn't part of this checker's term grammar (spec.md §3
// lists only And/Or/EQ/NE, Plus/Times and TextAppend as binary
// operators). Its builtin typing is still exercised fully — see
// internal/core/typecheck/builtins.go — only this convenience
// normal-form reduction is out of scope.
func normalizeApp(fn, arg adt.Expr) adt.Expr {
	if lam, ok := fn.(*adt.Lam); ok {
		v := adt.V{Name: lam.Label, Index: 0}
		body := adt.Shift(-1, v, adt.Subst(v, adt.Shift(1, v, arg), lam.Body))
		return normalize(body)
	}
	if reduced, ok := fuseBuiltinApp(fn, arg); ok {
		return normalize(reduced)
	}
	return &adt.App{Fn: fn, Arg: arg}
}

func normalizeBinOp(op adt.BinOpKind, l, r adt.Expr) adt.Expr {
	switch op {
	case adt.BoolAnd, adt.BoolOr:
		lb, lok := l.(*adt.BoolLit)
		rb, rok := r.(*adt.BoolLit)
		if lok && rok {
			if op == adt.BoolAnd {
				return &adt.BoolLit{Value: lb.Value && rb.Value}
			}
			return &adt.BoolLit{Value: lb.Value || rb.Value}
		}
	case adt.BoolEQ, adt.BoolNE:
		lb, lok := l.(*adt.BoolLit)
		rb, rok := r.(*adt.BoolLit)
		if lok && rok {
			eq := lb.Value == rb.Value
			if op == adt.BoolNE {
				eq = !eq
			}
			return &adt.BoolLit{Value: eq}
		}
	case adt.NaturalPlus, adt.NaturalTimes:
		ln, lok := l.(*adt.NaturalLit)
		rn, rok := r.(*adt.NaturalLit)
		if lok && rok {
			var out apd.Decimal
			ctx := apd.BaseContext
			if op == adt.NaturalPlus {
				_, _ = ctx.Add(&out, &ln.Value, &rn.Value)
			} else {
				_, _ = ctx.Mul(&out, &ln.Value, &rn.Value)
			}
			return &adt.NaturalLit{Value: out}
		}
	case adt.TextAppend:
		lt, lok := l.(*adt.TextLit)
		rt, rok := r.(*adt.TextLit)
		if lok && rok {
			return &adt.TextLit{Value: lt.Value + rt.Value}
		}
	}
	return &adt.BinOp{Op: op, Left: l, Right: r}
}

// normalizeCombine recursively merges two normal-form records field by
// field: a field present in only one side keeps its value; a field
// present in both, both being records, is combined recursively.
// Type-level FieldCollision errors are the checker's concern, not the
// normalizer's — Combine here is only ever called on already-checked
// terms, so any remaining collision keeps the right-hand value, matching
// how record update is specified for already-validated input.
func normalizeCombine(l, r adt.Expr) adt.Expr {
	lr, lok := l.(*adt.RecordLit)
	rr, rok := r.(*adt.RecordLit)
	if !lok || !rok {
		return &adt.Combine{Left: l, Right: r}
	}
	byLabel := map[adt.Label]adt.Expr{}
	for _, kv := range lr.Fields {
		byLabel[kv.Label] = kv.Expr
	}
	for _, kv := range rr.Fields {
		if existing, ok := byLabel[kv.Label]; ok {
			el, eok := existing.(*adt.RecordLit)
			er, rok2 := kv.Expr.(*adt.RecordLit)
			if eok && rok2 {
				byLabel[kv.Label] = normalizeCombine(el, er)
				continue
			}
		}
		byLabel[kv.Label] = kv.Expr
	}
	out := make([]adt.KV, 0, len(byLabel))
	for k, v := range byLabel {
		out = append(out, adt.KV{Label: k, Expr: v})
	}
	return adt.NewRecordLit(out)
}

func normalizeMerge(m *adt.Merge) adt.Expr {
	handlers := normalize(m.Handlers)
	union := normalize(m.Union)
	var resultType adt.Expr
	if m.ResultType != nil {
		resultType = normalize(m.ResultType)
	}
	h, hok := handlers.(*adt.RecordLit)
	u, uok := union.(*adt.UnionLit)
	if hok && uok {
		for _, kv := range h.Fields {
			if kv.Label == u.Tag {
				return normalizeApp(kv.Expr, u.Value)
			}
		}
	}
	return &adt.Merge{Handlers: handlers, Union: union, ResultType: resultType}
}
