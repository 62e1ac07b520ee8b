package typecheck

import (
	"fmt"

	"github.com/dhall-go/dhall-typecheck/internal/core/adt"
	"github.com/dhall-go/dhall-typecheck/internal/core/context"
)

// Code is the sealed taxonomy of ways a term can fail to type-check. New
// variants are added here, never by extending an existing one.
type Code int

const (
	UnboundVariable Code = iota
	InvalidInputType
	InvalidOutputType
	NoDependentTypes
	NoDependentLet
	NotAFunction
	TypeMismatch
	AnnotMismatch
	Untyped
	InvalidListType
	InvalidListElement
	InvalidOptionalType
	InvalidOptionalElement
	InvalidOptionalLiteral
	MissingListType
	MissingOptionalType
	InvalidPredicate
	IfBranchMustBeTerm
	IfBranchMismatch
	InvalidField
	InvalidFieldType
	InvalidAlternative
	InvalidAlternativeType
	DuplicateAlternative
	FieldCollision
	MissingField
	NotARecord
	MustCombineARecord
	MustMergeARecord
	MustMergeUnion
	UnusedHandler
	MissingHandler
	HandlerInputTypeMismatch
	HandlerOutputTypeMismatch
	HandlerNotAFunction
	CantAnd
	CantOr
	CantEQ
	CantNE
	CantTextAppend
	CantAdd
	CantMultiply
)

var codeNames = map[Code]string{
	UnboundVariable:          "UnboundVariable",
	InvalidInputType:         "InvalidInputType",
	InvalidOutputType:        "InvalidOutputType",
	NoDependentTypes:         "NoDependentTypes",
	NoDependentLet:           "NoDependentLet",
	NotAFunction:             "NotAFunction",
	TypeMismatch:             "TypeMismatch",
	AnnotMismatch:            "AnnotMismatch",
	Untyped:                  "Untyped",
	InvalidListType:          "InvalidListType",
	InvalidListElement:       "InvalidListElement",
	InvalidOptionalType:      "InvalidOptionalType",
	InvalidOptionalElement:   "InvalidOptionalElement",
	InvalidOptionalLiteral:   "InvalidOptionalLiteral",
	MissingListType:          "MissingListType",
	MissingOptionalType:      "MissingOptionalType",
	InvalidPredicate:         "InvalidPredicate",
	IfBranchMustBeTerm:       "IfBranchMustBeTerm",
	IfBranchMismatch:         "IfBranchMismatch",
	InvalidField:             "InvalidField",
	InvalidFieldType:         "InvalidFieldType",
	InvalidAlternative:       "InvalidAlternative",
	InvalidAlternativeType:   "InvalidAlternativeType",
	DuplicateAlternative:     "DuplicateAlternative",
	FieldCollision:           "FieldCollision",
	MissingField:             "MissingField",
	NotARecord:               "NotARecord",
	MustCombineARecord:       "MustCombineARecord",
	MustMergeARecord:         "MustMergeARecord",
	MustMergeUnion:           "MustMergeUnion",
	UnusedHandler:            "UnusedHandler",
	MissingHandler:           "MissingHandler",
	HandlerInputTypeMismatch: "HandlerInputTypeMismatch",
	HandlerOutputTypeMismatch: "HandlerOutputTypeMismatch",
	HandlerNotAFunction:      "HandlerNotAFunction",
	CantAnd:                  "CantAnd",
	CantOr:                   "CantOr",
	CantEQ:                   "CantEQ",
	CantNE:                   "CantNE",
	CantTextAppend:           "CantTextAppend",
	CantAdd:                  "CantAdd",
	CantMultiply:             "CantMultiply",
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return "UnknownError"
}

// Error is a structured type error: the sealed Code, the sub-term being
// judged when the failure was discovered (current), and the context in
// effect at that point. It implements the standard error interface the
// way the teacher's own nodeError/valueError pair does, rather than the
// hand-rolled include_str! message templates of the original Rust source.
type Error struct {
	Context *context.Context
	Current adt.Expr
	Code    Code
	// Detail carries whichever extra payload the taxonomy entry needs
	// (the mismatched types, the offending label, the index, ...); kept
	// untyped here the way the Rust TypeMessage enum's per-variant
	// payloads collapse to one Go field.
	Detail interface{}
}

func (e *Error) Error() string {
	if e.Detail != nil {
		return fmt.Sprintf("dhall: %s: %v", e.Code, e.Detail)
	}
	return fmt.Sprintf("dhall: %s", e.Code)
}

func newError(ctx *context.Context, current adt.Expr, code Code, detail interface{}) *Error {
	return &Error{Context: ctx, Current: current, Code: code, Detail: detail}
}
