package adt

// Shift returns e with every free occurrence of a variable named v.Name
// and index ≥ v.Index renumbered by d. Entering a binder for v.Name
// increments v.Index by one before recursing into the body, so the
// binder's own newly-introduced index 0 is left alone. d may be negative;
// callers must guarantee no free occurrence underflows.
func Shift(d int, v V, e Expr) Expr {
	switch x := e.(type) {
	case *Note:
		return &Note{Tag: x.Tag, Expr: Shift(d, v, x.Expr)}
	case Const, Builtin:
		return e
	case *Var:
		if x.V.Name == v.Name && x.V.Index >= v.Index {
			return &Var{V: x.V.Shifted(d)}
		}
		return x
	case *Lam:
		return &Lam{
			Label:  x.Label,
			Domain: Shift(d, v, x.Domain),
			Body:   Shift(d, shiftedUnder(v, x.Label), x.Body),
		}
	case *Pi:
		return &Pi{
			Label:    x.Label,
			Domain:   Shift(d, v, x.Domain),
			Codomain: Shift(d, shiftedUnder(v, x.Label), x.Codomain),
		}
	case *App:
		return &App{Fn: Shift(d, v, x.Fn), Arg: Shift(d, v, x.Arg)}
	case *Let:
		var ann Expr
		if x.Annotation != nil {
			ann = Shift(d, v, x.Annotation)
		}
		return &Let{
			Label:      x.Label,
			Annotation: ann,
			Value:      Shift(d, v, x.Value),
			Body:       Shift(d, shiftedUnder(v, x.Label), x.Body),
		}
	case *Annot:
		return &Annot{Expr: Shift(d, v, x.Expr), Type: Shift(d, v, x.Type)}
	case *BoolLit, *NaturalLit, *IntegerLit, *DoubleLit, *TextLit:
		return e
	case *BinOp:
		return &BinOp{Op: x.Op, Left: Shift(d, v, x.Left), Right: Shift(d, v, x.Right)}
	case *BoolIf:
		return &BoolIf{Cond: Shift(d, v, x.Cond), Then: Shift(d, v, x.Then), Else: Shift(d, v, x.Else)}
	case *ListLit:
		return &ListLit{ElemType: shiftMaybe(d, v, x.ElemType), Elems: shiftAll(d, v, x.Elems)}
	case *OptionalLit:
		return &OptionalLit{ElemType: shiftMaybe(d, v, x.ElemType), Elems: shiftAll(d, v, x.Elems)}
	case *Record:
		return &Record{Fields: shiftKVs(d, v, x.Fields)}
	case *RecordLit:
		return &RecordLit{Fields: shiftKVs(d, v, x.Fields)}
	case *Union:
		return &Union{Alternatives: shiftKVs(d, v, x.Alternatives)}
	case *UnionLit:
		return &UnionLit{Tag: x.Tag, Value: Shift(d, v, x.Value), Alts: shiftKVs(d, v, x.Alts)}
	case *Combine:
		return &Combine{Left: Shift(d, v, x.Left), Right: Shift(d, v, x.Right)}
	case *Merge:
		var rt Expr
		if x.ResultType != nil {
			rt = Shift(d, v, x.ResultType)
		}
		return &Merge{Handlers: Shift(d, v, x.Handlers), Union: Shift(d, v, x.Union), ResultType: rt}
	case *Field:
		return &Field{Record: Shift(d, v, x.Record), Label: x.Label}
	default:
		panic("adt: unhandled node in Shift")
	}
}

// shiftedUnder returns v adjusted for having just crossed a binder of
// name label.
func shiftedUnder(v V, label Label) V {
	if label == v.Name {
		return v.Shifted(1)
	}
	return v
}

func shiftMaybe(d int, v V, e Expr) Expr {
	if e == nil {
		return nil
	}
	return Shift(d, v, e)
}

func shiftAll(d int, v V, es []Expr) []Expr {
	if es == nil {
		return nil
	}
	out := make([]Expr, len(es))
	for i, e := range es {
		out[i] = Shift(d, v, e)
	}
	return out
}

func shiftKVs(d int, v V, kv []KV) []KV {
	if kv == nil {
		return nil
	}
	out := make([]KV, len(kv))
	for i, e := range kv {
		out[i] = KV{Label: e.Label, Expr: Shift(d, v, e.Expr)}
	}
	return out
}

// Subst returns e with every free occurrence of the variable v replaced
// by repl. Entering any binder shifts repl by +1 on that binder's label
// before recursing, which is what prevents repl's free variables from
// being captured by the binder; entering a binder for v.Name also
// increments v.Index by one (see enterBinder).
func Subst(v V, repl Expr, e Expr) Expr {
	switch x := e.(type) {
	case *Note:
		return &Note{Tag: x.Tag, Expr: Subst(v, repl, x.Expr)}
	case Const, Builtin:
		return e
	case *Var:
		if x.V == v {
			return repl
		}
		return x
	case *Lam:
		v2, repl2 := enterBinder(v, repl, x.Label)
		return &Lam{Label: x.Label, Domain: Subst(v, repl, x.Domain), Body: Subst(v2, repl2, x.Body)}
	case *Pi:
		v2, repl2 := enterBinder(v, repl, x.Label)
		return &Pi{Label: x.Label, Domain: Subst(v, repl, x.Domain), Codomain: Subst(v2, repl2, x.Codomain)}
	case *App:
		return &App{Fn: Subst(v, repl, x.Fn), Arg: Subst(v, repl, x.Arg)}
	case *Let:
		var ann Expr
		if x.Annotation != nil {
			ann = Subst(v, repl, x.Annotation)
		}
		v2, repl2 := enterBinder(v, repl, x.Label)
		return &Let{
			Label:      x.Label,
			Annotation: ann,
			Value:      Subst(v, repl, x.Value),
			Body:       Subst(v2, repl2, x.Body),
		}
	case *Annot:
		return &Annot{Expr: Subst(v, repl, x.Expr), Type: Subst(v, repl, x.Type)}
	case *BoolLit, *NaturalLit, *IntegerLit, *DoubleLit, *TextLit:
		return e
	case *BinOp:
		return &BinOp{Op: x.Op, Left: Subst(v, repl, x.Left), Right: Subst(v, repl, x.Right)}
	case *BoolIf:
		return &BoolIf{Cond: Subst(v, repl, x.Cond), Then: Subst(v, repl, x.Then), Else: Subst(v, repl, x.Else)}
	case *ListLit:
		return &ListLit{ElemType: substMaybe(v, repl, x.ElemType), Elems: substAll(v, repl, x.Elems)}
	case *OptionalLit:
		return &OptionalLit{ElemType: substMaybe(v, repl, x.ElemType), Elems: substAll(v, repl, x.Elems)}
	case *Record:
		return &Record{Fields: substKVs(v, repl, x.Fields)}
	case *RecordLit:
		return &RecordLit{Fields: substKVs(v, repl, x.Fields)}
	case *Union:
		return &Union{Alternatives: substKVs(v, repl, x.Alternatives)}
	case *UnionLit:
		return &UnionLit{Tag: x.Tag, Value: Subst(v, repl, x.Value), Alts: substKVs(v, repl, x.Alts)}
	case *Combine:
		return &Combine{Left: Subst(v, repl, x.Left), Right: Subst(v, repl, x.Right)}
	case *Merge:
		var rt Expr
		if x.ResultType != nil {
			rt = Subst(v, repl, x.ResultType)
		}
		return &Merge{Handlers: Subst(v, repl, x.Handlers), Union: Subst(v, repl, x.Union), ResultType: rt}
	case *Field:
		return &Field{Record: Subst(v, repl, x.Record), Label: x.Label}
	default:
		panic("adt: unhandled node in Subst")
	}
}

// enterBinder advances v and repl across a binder named label. repl is
// shifted by +1 on label unconditionally: once substituted into the body,
// repl sits under this binder, so any of its own free occurrences of label
// must be bumped to keep referring to what they referred to before the
// binder was crossed — this, not the v.Name comparison, is what prevents
// capture. v's index is incremented only when label == v.Name, since only
// then does this binder shadow the variable being substituted for.
func enterBinder(v V, repl Expr, label Label) (V, Expr) {
	repl = Shift(1, V{Name: label, Index: 0}, repl)
	if label == v.Name {
		return v.Shifted(1), repl
	}
	return v, repl
}

func substMaybe(v V, repl Expr, e Expr) Expr {
	if e == nil {
		return nil
	}
	return Subst(v, repl, e)
}

func substAll(v V, repl Expr, es []Expr) []Expr {
	if es == nil {
		return nil
	}
	out := make([]Expr, len(es))
	for i, e := range es {
		out[i] = Subst(v, repl, e)
	}
	return out
}

func substKVs(v V, repl Expr, kv []KV) []KV {
	if kv == nil {
		return nil
	}
	out := make([]KV, len(kv))
	for i, e := range kv {
		out[i] = KV{Label: e.Label, Expr: Subst(v, repl, e.Expr)}
	}
	return out
}
