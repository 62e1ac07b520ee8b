package typecheck

import (
	"github.com/dhall-go/dhall-typecheck/internal/core/adt"
	"github.com/dhall-go/dhall-typecheck/internal/core/context"
)

func (c *checker) typeRecord(ctx *context.Context, e adt.Expr, x *adt.Record) (adt.Expr, error) {
	for _, kv := range x.Fields {
		s, err := c.typeWith(ctx, kv.Expr)
		if err != nil {
			return nil, err
		}
		if k, ok := c.normalize(s).(adt.Const); !ok || k != adt.Type {
			return nil, newError(ctx, e, InvalidFieldType, labeled{kv.Label, kv.Expr})
		}
	}
	return adt.Const(adt.Type), nil
}

func (c *checker) typeRecordLit(ctx *context.Context, e adt.Expr, x *adt.RecordLit) (adt.Expr, error) {
	fields := make([]adt.KV, len(x.Fields))
	for i, kv := range x.Fields {
		t, err := c.typeWith(ctx, kv.Expr)
		if err != nil {
			return nil, err
		}
		s, err := c.typeWith(ctx, t)
		if err != nil {
			return nil, err
		}
		if k, ok := c.normalize(s).(adt.Const); !ok || k != adt.Type {
			return nil, newError(ctx, e, InvalidField, labeled{kv.Label, kv.Expr})
		}
		fields[i] = adt.KV{Label: kv.Label, Expr: t}
	}
	return adt.NewRecord(fields), nil
}

func (c *checker) typeUnion(ctx *context.Context, e adt.Expr, x *adt.Union) (adt.Expr, error) {
	for _, kv := range x.Alternatives {
		s, err := c.typeWith(ctx, kv.Expr)
		if err != nil {
			return nil, err
		}
		if k, ok := c.normalize(s).(adt.Const); !ok || k != adt.Type {
			return nil, newError(ctx, e, InvalidAlternativeType, labeled{kv.Label, kv.Expr})
		}
	}
	return adt.Const(adt.Type), nil
}

func (c *checker) typeUnionLit(ctx *context.Context, e adt.Expr, x *adt.UnionLit) (adt.Expr, error) {
	for _, kv := range x.Alts {
		if kv.Label == x.Tag {
			return nil, newError(ctx, e, DuplicateAlternative, x.Tag)
		}
	}
	t, err := c.typeWith(ctx, x.Value)
	if err != nil {
		return nil, err
	}
	alts := append(append([]adt.KV{}, x.Alts...), adt.KV{Label: x.Tag, Expr: t})
	union := adt.NewUnion(alts)
	if _, err := c.typeWith(ctx, union); err != nil {
		return nil, err
	}
	return union, nil
}

type labeled struct {
	Label adt.Label
	Expr  adt.Expr
}

func (c *checker) typeListLit(ctx *context.Context, e adt.Expr, x *adt.ListLit) (adt.Expr, error) {
	elemType := x.ElemType
	rest := x.Elems
	if elemType == nil {
		if len(x.Elems) == 0 {
			return nil, newError(ctx, e, MissingListType, nil)
		}
		t, err := c.typeWith(ctx, x.Elems[0])
		if err != nil {
			return nil, err
		}
		elemType = t
		rest = x.Elems[1:]
	}

	s, err := c.typeWith(ctx, elemType)
	if err != nil {
		return nil, err
	}
	if k, ok := c.normalize(s).(adt.Const); !ok || k != adt.Type {
		return nil, newError(ctx, e, InvalidListType, elemType)
	}

	offset := len(x.Elems) - len(rest)
	for i, el := range rest {
		t2, err := c.typeWith(ctx, el)
		if err != nil {
			return nil, err
		}
		if !c.propEqual(elemType, t2) {
			return nil, newError(ctx, e, InvalidListElement, listElem{
				Index: i + offset, Expected: c.normalize(elemType), Elem: el, Got: c.normalize(t2),
			})
		}
	}
	return &adt.App{Fn: adt.Builtin(adt.List), Arg: elemType}, nil
}

type listElem struct {
	Index          int
	Expected, Got  adt.Expr
	Elem           adt.Expr
}

func (c *checker) typeOptionalLit(ctx *context.Context, e adt.Expr, x *adt.OptionalLit) (adt.Expr, error) {
	elemType := x.ElemType
	rest := x.Elems
	if elemType == nil {
		if len(x.Elems) == 0 {
			return nil, newError(ctx, e, MissingOptionalType, nil)
		}
		t, err := c.typeWith(ctx, x.Elems[0])
		if err != nil {
			return nil, err
		}
		elemType = t
		rest = nil
	}

	s, err := c.typeWith(ctx, elemType)
	if err != nil {
		return nil, err
	}
	if k, ok := c.normalize(s).(adt.Const); !ok || k != adt.Type {
		return nil, newError(ctx, e, InvalidOptionalType, elemType)
	}

	if len(x.Elems) >= 2 {
		return nil, newError(ctx, e, InvalidOptionalLiteral, len(x.Elems))
	}

	for _, el := range rest {
		t2, err := c.typeWith(ctx, el)
		if err != nil {
			return nil, err
		}
		if !c.propEqual(elemType, t2) {
			return nil, newError(ctx, e, InvalidOptionalElement, mismatch{c.normalize(elemType), c.normalize(t2)})
		}
	}
	return &adt.App{Fn: adt.Builtin(adt.Optional), Arg: elemType}, nil
}

func (c *checker) typeField(ctx *context.Context, e adt.Expr, x *adt.Field) (adt.Expr, error) {
	t, err := c.typeWith(ctx, x.Record)
	if err != nil {
		return nil, err
	}
	rec, ok := c.normalize(t).(*adt.Record)
	if !ok {
		return nil, newError(ctx, e, NotARecord, notARecord{x.Label, x.Record, t})
	}
	for _, kv := range rec.Fields {
		if kv.Label == x.Label {
			return kv.Expr, nil
		}
	}
	return nil, newError(ctx, e, MissingField, labeled{x.Label, t})
}

type notARecord struct {
	Label adt.Label
	Expr  adt.Expr
	Type  adt.Expr
}

// typeCombine types the record-merge operator ∧. Both operands must
// normalize to Record types; the result recursively merges the two
// field-by-field: a field present in only one side keeps its type; a
// field present in both, both being records, is combined recursively;
// any other overlap is a FieldCollision.
func (c *checker) typeCombine(ctx *context.Context, e adt.Expr, x *adt.Combine) (adt.Expr, error) {
	tl, err := c.typeWith(ctx, x.Left)
	if err != nil {
		return nil, err
	}
	recL, ok := c.normalize(tl).(*adt.Record)
	if !ok {
		return nil, newError(ctx, e, MustCombineARecord, mismatch{x.Left, c.normalize(tl)})
	}

	tr, err := c.typeWith(ctx, x.Right)
	if err != nil {
		return nil, err
	}
	recR, ok := c.normalize(tr).(*adt.Record)
	if !ok {
		return nil, newError(ctx, e, MustCombineARecord, mismatch{x.Right, c.normalize(tr)})
	}

	merged, err := combineTypes(ctx, e, recL.Fields, recR.Fields)
	if err != nil {
		return nil, err
	}
	return adt.NewRecord(merged), nil
}

func combineTypes(ctx *context.Context, e adt.Expr, l, r []adt.KV) ([]adt.KV, error) {
	byLabel := map[adt.Label]adt.Expr{}
	order := []adt.Label{}
	for _, kv := range l {
		byLabel[kv.Label] = kv.Expr
		order = append(order, kv.Label)
	}
	for _, kv := range r {
		existing, ok := byLabel[kv.Label]
		if !ok {
			byLabel[kv.Label] = kv.Expr
			order = append(order, kv.Label)
			continue
		}
		exRec, exOK := existing.(*adt.Record)
		newRec, newOK := kv.Expr.(*adt.Record)
		if !exOK || !newOK {
			return nil, newError(ctx, e, FieldCollision, kv.Label)
		}
		sub, err := combineTypes(ctx, e, exRec.Fields, newRec.Fields)
		if err != nil {
			return nil, err
		}
		byLabel[kv.Label] = adt.NewRecord(sub)
	}
	out := make([]adt.KV, len(order))
	for i, label := range order {
		out[i] = adt.KV{Label: label, Expr: byLabel[label]}
	}
	return out, nil
}

// typeMerge types a merge: Handlers must be a Record, Union must be a
// Union, every alternative needs exactly one matching handler shaped
// Pi(_, altType, resultType), and no handler may be left over.
func (c *checker) typeMerge(ctx *context.Context, e adt.Expr, x *adt.Merge) (adt.Expr, error) {
	th, err := c.typeWith(ctx, x.Handlers)
	if err != nil {
		return nil, err
	}
	handlers, ok := c.normalize(th).(*adt.Record)
	if !ok {
		return nil, newError(ctx, e, MustMergeARecord, mismatch{x.Handlers, c.normalize(th)})
	}

	tu, err := c.typeWith(ctx, x.Union)
	if err != nil {
		return nil, err
	}
	union, ok := c.normalize(tu).(*adt.Union)
	if !ok {
		return nil, newError(ctx, e, MustMergeUnion, mismatch{x.Union, c.normalize(tu)})
	}

	handlerKeys := map[adt.Label]adt.Expr{}
	for _, kv := range handlers.Fields {
		handlerKeys[kv.Label] = kv.Expr
	}
	altKeys := map[adt.Label]bool{}
	for _, kv := range union.Alternatives {
		altKeys[kv.Label] = true
	}

	var extra []adt.Label
	for label := range handlerKeys {
		if !altKeys[label] {
			extra = append(extra, label)
		}
	}
	if len(extra) > 0 {
		return nil, newError(ctx, e, UnusedHandler, extra)
	}

	var resultType adt.Expr
	if x.ResultType != nil {
		resultType = c.normalize(x.ResultType)
	}

	var missing []adt.Label
	for _, kv := range union.Alternatives {
		handler, ok := handlerKeys[kv.Label]
		if !ok {
			missing = append(missing, kv.Label)
			continue
		}
		handlerPi, ok := c.normalize(handler).(*adt.Pi)
		if !ok {
			return nil, newError(ctx, e, HandlerNotAFunction, labeled{kv.Label, handler})
		}
		if !c.propEqual(kv.Expr, handlerPi.Domain) {
			return nil, newError(ctx, e, HandlerInputTypeMismatch, handlerMismatch{kv.Label, c.normalize(kv.Expr), c.normalize(handlerPi.Domain)})
		}
		if resultType == nil {
			resultType = c.normalize(handlerPi.Codomain)
		} else if !c.propEqual(resultType, handlerPi.Codomain) {
			return nil, newError(ctx, e, HandlerOutputTypeMismatch, handlerMismatch{kv.Label, resultType, c.normalize(handlerPi.Codomain)})
		}
	}
	if len(missing) > 0 {
		return nil, newError(ctx, e, MissingHandler, missing)
	}
	if resultType == nil {
		return nil, newError(ctx, e, MissingHandler, []adt.Label{})
	}
	return resultType, nil
}

type handlerMismatch struct {
	Label          adt.Label
	Expected, Got  adt.Expr
}
