package adt

// Normalizer is the black-box collaborator PropEqual and the type checker
// use to bring a term to beta-normal form before comparing or inspecting
// its shape. It is implemented by internal/core/norm; adt only depends on
// the interface so the term model never imports the normalizer.
type Normalizer interface {
	Normalize(Expr) Expr
}

// renameFrame is one entry of the renaming stack PropEqual threads through
// simultaneous Pi binders: while comparing under a jointly-entered Pi,
// a left-bound name and a right-bound name are considered interchangeable.
type renameFrame struct {
	left, right Label
}

// PropEqual reports whether l and r are alpha-equivalent once both are
// reduced to beta-normal form by norm.
func PropEqual(norm Normalizer, l, r Expr) bool {
	return alphaEqual(nil, norm.Normalize(l), norm.Normalize(r))
}

func alphaEqual(stack []renameFrame, l, r Expr) bool {
	switch lx := l.(type) {
	case Const:
		rx, ok := r.(Const)
		return ok && lx == rx
	case Builtin:
		rx, ok := r.(Builtin)
		return ok && lx == rx
	case *Var:
		rx, ok := r.(*Var)
		if !ok {
			return false
		}
		return matchVars(lx.V, rx.V, stack)
	case *Pi:
		rx, ok := r.(*Pi)
		if !ok {
			return false
		}
		if !alphaEqual(stack, lx.Domain, rx.Domain) {
			return false
		}
		stack = append(stack, renameFrame{lx.Label, rx.Label})
		return alphaEqual(stack, lx.Codomain, rx.Codomain)
	case *Lam:
		rx, ok := r.(*Lam)
		if !ok {
			return false
		}
		if !alphaEqual(stack, lx.Domain, rx.Domain) {
			return false
		}
		stack = append(stack, renameFrame{lx.Label, rx.Label})
		return alphaEqual(stack, lx.Body, rx.Body)
	case *App:
		rx, ok := r.(*App)
		return ok && alphaEqual(stack, lx.Fn, rx.Fn) && alphaEqual(stack, lx.Arg, rx.Arg)
	case *BinOp:
		rx, ok := r.(*BinOp)
		return ok && lx.Op == rx.Op && alphaEqual(stack, lx.Left, rx.Left) && alphaEqual(stack, lx.Right, rx.Right)
	case *BoolIf:
		rx, ok := r.(*BoolIf)
		return ok && alphaEqual(stack, lx.Cond, rx.Cond) && alphaEqual(stack, lx.Then, rx.Then) && alphaEqual(stack, lx.Else, rx.Else)
	case *BoolLit:
		rx, ok := r.(*BoolLit)
		return ok && lx.Value == rx.Value
	case *NaturalLit:
		rx, ok := r.(*NaturalLit)
		return ok && lx.Value.Cmp(&rx.Value) == 0
	case *IntegerLit:
		rx, ok := r.(*IntegerLit)
		return ok && lx.Value.Cmp(&rx.Value) == 0
	case *DoubleLit:
		rx, ok := r.(*DoubleLit)
		return ok && lx.Value.Cmp(&rx.Value) == 0
	case *TextLit:
		rx, ok := r.(*TextLit)
		return ok && lx.Value == rx.Value
	case *ListLit:
		rx, ok := r.(*ListLit)
		if !ok || len(lx.Elems) != len(rx.Elems) {
			return false
		}
		for i := range lx.Elems {
			if !alphaEqual(stack, lx.Elems[i], rx.Elems[i]) {
				return false
			}
		}
		return true
	case *OptionalLit:
		rx, ok := r.(*OptionalLit)
		if !ok || len(lx.Elems) != len(rx.Elems) {
			return false
		}
		for i := range lx.Elems {
			if !alphaEqual(stack, lx.Elems[i], rx.Elems[i]) {
				return false
			}
		}
		return true
	case *Record:
		rx, ok := r.(*Record)
		return ok && kvsEqual(stack, lx.Fields, rx.Fields)
	case *RecordLit:
		rx, ok := r.(*RecordLit)
		return ok && kvsEqual(stack, lx.Fields, rx.Fields)
	case *Union:
		rx, ok := r.(*Union)
		return ok && kvsEqual(stack, lx.Alternatives, rx.Alternatives)
	case *UnionLit:
		rx, ok := r.(*UnionLit)
		return ok && lx.Tag == rx.Tag && alphaEqual(stack, lx.Value, rx.Value) && kvsEqual(stack, lx.Alts, rx.Alts)
	case *Field:
		rx, ok := r.(*Field)
		return ok && lx.Label == rx.Label && alphaEqual(stack, lx.Record, rx.Record)
	case *Combine:
		rx, ok := r.(*Combine)
		return ok && alphaEqual(stack, lx.Left, rx.Left) && alphaEqual(stack, lx.Right, rx.Right)
	case *Merge:
		rx, ok := r.(*Merge)
		if !ok {
			return false
		}
		if lx.ResultType == nil || rx.ResultType == nil {
			return lx.ResultType == nil && rx.ResultType == nil &&
				alphaEqual(stack, lx.Handlers, rx.Handlers) && alphaEqual(stack, lx.Union, rx.Union)
		}
		return alphaEqual(stack, lx.Handlers, rx.Handlers) &&
			alphaEqual(stack, lx.Union, rx.Union) &&
			alphaEqual(stack, lx.ResultType, rx.ResultType)
	case *Note:
		inner, _ := Peel(lx)
		return alphaEqual(stack, inner, r)
	default:
		return false
	}
}

// kvsEqual compares two canonically-sorted KV slices as ordered sequences:
// equal iff same length and every positional pair has equal keys and
// alpha-equal values. This is why NewRecord, NewRecordLit and NewUnion
// keep their fields in sorted order — two structurally-equal composites
// built in a different literal order must still agree here. UnionLit.Alts
// has no sorting constructor and is compared in the order it was built.
func kvsEqual(stack []renameFrame, l, r []KV) bool {
	if len(l) != len(r) {
		return false
	}
	for i := range l {
		if l[i].Label != r[i].Label {
			return false
		}
		if !alphaEqual(stack, l[i].Expr, r[i].Expr) {
			return false
		}
	}
	return true
}

// matchVars decides Var(xL, nL) ≡ Var(xR, nR) under a stack of paired
// binder names pushed on every simultaneously-entered Pi/Lam. Walking the
// stack outward, each frame decrements nL if its name matches xL (same for
// nR/xR); the variables are equal iff both counters reach 0 at the same
// frame, or both survive to the bottom unchanged with matching name and
// index.
func matchVars(l, r V, stack []renameFrame) bool {
	if len(stack) == 0 {
		return l.Name == r.Name && l.Index == r.Index
	}
	frame := stack[len(stack)-1]
	rest := stack[:len(stack)-1]
	lBound := l.Index == 0 && l.Name == frame.left
	rBound := r.Index == 0 && r.Name == frame.right
	if lBound || rBound {
		return lBound && rBound
	}
	nl := l.Index
	if l.Name == frame.left {
		nl--
	}
	nr := r.Index
	if r.Name == frame.right {
		nr--
	}
	return matchVars(V{Name: l.Name, Index: nl}, V{Name: r.Name, Index: nr}, rest)
}
