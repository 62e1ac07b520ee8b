package adt

import (
	"sort"

	"github.com/cockroachdb/apd/v2"
	"github.com/mpvl/unique"
)

// Expr is the sum type over every Dhall term node the checker can see.
// Recursive positions are uniquely owned; the tree never cycles.
type Expr interface {
	// isExpr is unexported so Expr can only be implemented inside this
	// package — callers build trees through the constructors below.
	isExpr()
}

// Note wraps any node with a side-band annotation (typically a source
// span). The checker is transparent to it except that a TypeError raised
// inside a noted sub-term re-attaches the innermost Note to its Current
// field, so diagnostics can point at source.
type Note struct {
	Tag  interface{}
	Expr Expr
}

func (*Note) isExpr() {}

// Peel strips any number of Note wrappers and returns the underlying node
// together with the innermost Note seen, if any.
func Peel(e Expr) (inner Expr, note *Note) {
	for {
		n, ok := e.(*Note)
		if !ok {
			return e, note
		}
		note = n
		e = n.Expr
	}
}

// Const is a sort: Type classifies terms, Kind classifies types.
type Const int

const (
	Type Const = iota
	Kind
)

func (c Const) String() string {
	if c == Kind {
		return "Kind"
	}
	return "Type"
}

func (Const) isExpr() {}

// Builtin enumerates the fixed set of Dhall builtin constants: primitive
// types and the Natural/List/Optional combinator family.
type Builtin int

const (
	Bool Builtin = iota
	Natural
	Integer
	Double
	Text
	List
	Optional
	NaturalFold
	NaturalBuild
	NaturalIsZero
	NaturalEven
	NaturalOdd
	ListBuild
	ListFold
	ListLength
	ListHead
	ListLast
	ListIndexed
	ListReverse
	OptionalFold
)

func (Builtin) isExpr() {}

var builtinNames = map[Builtin]string{
	Bool: "Bool", Natural: "Natural", Integer: "Integer", Double: "Double",
	Text: "Text", List: "List", Optional: "Optional",
	NaturalFold: "Natural/fold", NaturalBuild: "Natural/build",
	NaturalIsZero: "Natural/isZero", NaturalEven: "Natural/even", NaturalOdd: "Natural/odd",
	ListBuild: "List/build", ListFold: "List/fold", ListLength: "List/length",
	ListHead: "List/head", ListLast: "List/last", ListIndexed: "List/indexed",
	ListReverse: "List/reverse", OptionalFold: "Optional/fold",
}

func (b Builtin) String() string {
	if s, ok := builtinNames[b]; ok {
		return s
	}
	return "<unknown builtin>"
}

// Var is a reference to a bound variable.
type Var struct{ V V }

func (*Var) isExpr() {}

// Lam is a function literal: λ(Label : Domain) → Body.
type Lam struct {
	Label  Label
	Domain Expr
	Body   Expr
}

func (*Lam) isExpr() {}

// Pi is a (possibly dependent, within the PTS rules) function type:
// ∀(Label : Domain) → Codomain.
type Pi struct {
	Label    Label
	Domain   Expr
	Codomain Expr
}

func (*Pi) isExpr() {}

// App is function application.
type App struct {
	Fn  Expr
	Arg Expr
}

func (*App) isExpr() {}

// Let is a let-binding; Annotation is nil when the binding carries no
// explicit type.
type Let struct {
	Label      Label
	Annotation Expr
	Value      Expr
	Body       Expr
}

func (*Let) isExpr() {}

// Annot is an explicit type ascription: Expr : Type.
type Annot struct {
	Expr Expr
	Type Expr
}

func (*Annot) isExpr() {}

// Literal leaves.
type (
	BoolLit   struct{ Value bool }
	NaturalLit struct{ Value apd.Decimal }
	IntegerLit struct{ Value apd.Decimal }
	DoubleLit  struct{ Value apd.Decimal }
	TextLit    struct{ Value string }
)

func (*BoolLit) isExpr()    {}
func (*NaturalLit) isExpr() {}
func (*IntegerLit) isExpr() {}
func (*DoubleLit) isExpr()  {}
func (*TextLit) isExpr()    {}

// BinOp is a fixed-arity binary operator over two operands of the same
// builtin type.
type BinOpKind int

const (
	BoolAnd BinOpKind = iota
	BoolOr
	BoolEQ
	BoolNE
	NaturalPlus
	NaturalTimes
	TextAppend
)

type BinOp struct {
	Op          BinOpKind
	Left, Right Expr
}

func (*BinOp) isExpr() {}

// BoolIf is the conditional expression.
type BoolIf struct {
	Cond, Then, Else Expr
}

func (*BoolIf) isExpr() {}

// ListLit is a (possibly empty, in which case ElemType must be non-nil)
// list literal.
type ListLit struct {
	ElemType Expr // nil if inferred from Elems[0]
	Elems    []Expr
}

func (*ListLit) isExpr() {}

// OptionalLit carries 0 or 1 elements.
type OptionalLit struct {
	ElemType Expr
	Elems    []Expr
}

func (*OptionalLit) isExpr() {}

// KV is one label/expression pair of a Record, RecordLit, or Union. Slices
// of KV are kept canonically sorted by Label so that structural
// (sequence-wise) comparison in PropEqual agrees for alpha-equal
// composites regardless of construction order.
type KV struct {
	Label Label
	Expr  Expr
}

type kvs []KV

func (s kvs) Len() int           { return len(s) }
func (s kvs) Less(i, j int) bool { return s[i].Label < s[j].Label }
func (s kvs) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// canonicalize sorts kv by label and drops duplicate labels, keeping the
// first occurrence of each — unique.Sort's documented behavior. It
// reports whether any duplicate was dropped.
func canonicalize(kv []KV) ([]KV, bool) {
	if len(kv) == 0 {
		return kv, false
	}
	cp := append([]KV(nil), kv...)
	n := unique.Sort(kvs(cp))
	return cp[:n], n != len(kv)
}

// Record is a record type: { label : type, ... }.
type Record struct {
	Fields []KV
}

func (*Record) isExpr() {}

// NewRecord canonicalizes fields into sorted, de-duplicated order. Per the
// data model, duplicate keys in a Record are a structural invariant
// violated only by a misbehaving caller (the parser guarantees
// uniqueness); NewRecord keeps one entry per repeated key rather than
// panicking.
func NewRecord(fields []KV) *Record {
	sorted, _ := canonicalize(fields)
	return &Record{Fields: sorted}
}

// RecordLit is a record literal: { label = value, ... }.
type RecordLit struct {
	Fields []KV
}

func NewRecordLit(fields []KV) *RecordLit {
	sorted, _ := canonicalize(fields)
	return &RecordLit{Fields: sorted}
}

func (*RecordLit) isExpr() {}

// Union is a union type: < Tag : type | ... >.
type Union struct {
	Alternatives []KV
}

func NewUnion(alts []KV) *Union {
	sorted, _ := canonicalize(alts)
	return &Union{Alternatives: sorted}
}

func (*Union) isExpr() {}

// UnionLit injects Value under Tag into the union described by Alts (the
// other alternatives, not including Tag).
type UnionLit struct {
	Tag   Label
	Value Expr
	Alts  []KV
}

func (*UnionLit) isExpr() {}

// Combine is the record/record merge operator: l ∧ r.
type Combine struct {
	Left, Right Expr
}

func (*Combine) isExpr() {}

// Merge eliminates a union value with a record of handlers. ResultType is
// nil when the merge's type is meant to be inferred from the handlers'
// common codomain rather than stated by an explicit annotation.
type Merge struct {
	Handlers   Expr
	Union      Expr
	ResultType Expr
}

func (*Merge) isExpr() {}

// Field projects a single field out of a record value.
type Field struct {
	Record Expr
	Label  Label
}

func (*Field) isExpr() {}

// lookup returns the type/value paired with name, and whether it was
// found, scanning the canonically-sorted KV slice with binary search.
func lookup(kv []KV, name Label) (Expr, bool) {
	i := sort.Search(len(kv), func(i int) bool { return kv[i].Label >= name })
	if i < len(kv) && kv[i].Label == name {
		return kv[i].Expr, true
	}
	return nil, false
}
