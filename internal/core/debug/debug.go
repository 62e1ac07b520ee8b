// Package debug prints a given adt.Expr node.
//
// Note that the result is not valid Dhall source, but instead prints the
// internals of an expression tree in human-readable form. It uses a simple
// indentation algorithm for improved readability and diffing.
package debug

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhall-go/dhall-typecheck/internal/core/adt"
)

type Config struct {
	// Compact suppresses the line breaks and indentation a non-empty
	// record or record literal would otherwise get, printing it on one
	// line instead. Unions are always printed on one line.
	Compact bool
}

func WriteExpr(w io.Writer, e adt.Expr, config *Config) {
	if config == nil {
		config = &Config{}
	}
	p := printer{Writer: w, cfg: config}
	p.expr(e)
}

func ExprString(e adt.Expr, config *Config) string {
	b := &strings.Builder{}
	WriteExpr(b, e, config)
	return b.String()
}

type printer struct {
	io.Writer
	indent string
	cfg    *Config
}

func (w *printer) string(s string) {
	s = strings.Replace(s, "\n", "\n"+w.indent, -1)
	_, _ = io.WriteString(w, s)
}

func (w *printer) nl() {
	if !w.cfg.Compact {
		w.string("\n")
	}
}

func (w *printer) kv(prefix string, kv []adt.KV) {
	if len(kv) == 0 {
		w.string(prefix + "{}")
		return
	}
	w.string(prefix + "{")
	saved := w.indent
	w.indent += "  "
	for i, f := range kv {
		if i > 0 {
			w.string(",")
		}
		w.nl()
		w.string(f.Label.String())
		w.string(" : ")
		w.expr(f.Expr)
	}
	w.indent = saved
	w.nl()
	w.string("}")
}

func (w *printer) expr(e adt.Expr) {
	switch x := e.(type) {
	case *adt.Note:
		w.expr(x.Expr)

	case adt.Const:
		w.string(x.String())

	case adt.Builtin:
		w.string(x.String())

	case *adt.Var:
		w.string(x.V.Name.String())
		w.string("@")
		w.string(strconv.Itoa(x.V.Index))

	case *adt.Lam:
		w.string("λ(")
		w.string(x.Label.String())
		w.string(" : ")
		w.expr(x.Domain)
		w.string(") → ")
		w.expr(x.Body)

	case *adt.Pi:
		w.string("∀(")
		w.string(x.Label.String())
		w.string(" : ")
		w.expr(x.Domain)
		w.string(") → ")
		w.expr(x.Codomain)

	case *adt.App:
		w.expr(x.Fn)
		w.string(" ")
		w.expr(x.Arg)

	case *adt.Let:
		w.string("let ")
		w.string(x.Label.String())
		if x.Annotation != nil {
			w.string(" : ")
			w.expr(x.Annotation)
		}
		w.string(" = ")
		w.expr(x.Value)
		w.string(" in ")
		w.expr(x.Body)

	case *adt.Annot:
		w.expr(x.Expr)
		w.string(" : ")
		w.expr(x.Type)

	case *adt.BoolLit:
		fmt.Fprint(w, x.Value)

	case *adt.NaturalLit:
		fmt.Fprint(w, &x.Value)

	case *adt.IntegerLit:
		fmt.Fprint(w, &x.Value)

	case *adt.DoubleLit:
		fmt.Fprint(w, &x.Value)

	case *adt.TextLit:
		w.string(strconv.Quote(x.Value))

	case *adt.BinOp:
		w.string("(")
		w.expr(x.Left)
		w.string(" " + binOpSymbol(x.Op) + " ")
		w.expr(x.Right)
		w.string(")")

	case *adt.BoolIf:
		w.string("if ")
		w.expr(x.Cond)
		w.string(" then ")
		w.expr(x.Then)
		w.string(" else ")
		w.expr(x.Else)

	case *adt.ListLit:
		w.string("[")
		for i, el := range x.Elems {
			if i > 0 {
				w.string(", ")
			}
			w.expr(el)
		}
		w.string("]")

	case *adt.OptionalLit:
		if len(x.Elems) == 0 {
			w.string("None")
		} else {
			w.string("Some ")
			w.expr(x.Elems[0])
		}

	case *adt.Record:
		w.kv("", x.Fields)

	case *adt.RecordLit:
		w.kv("", x.Fields)

	case *adt.Union:
		w.string("<")
		for i, a := range x.Alternatives {
			if i > 0 {
				w.string(" | ")
			}
			w.string(a.Label.String())
			w.string(" : ")
			w.expr(a.Expr)
		}
		w.string(">")

	case *adt.UnionLit:
		w.string("<")
		w.string(x.Tag.String())
		w.string(" = ")
		w.expr(x.Value)
		for _, a := range x.Alts {
			w.string(" | ")
			w.string(a.Label.String())
			w.string(" : ")
			w.expr(a.Expr)
		}
		w.string(">")

	case *adt.Combine:
		w.string("(")
		w.expr(x.Left)
		w.string(" ∧ ")
		w.expr(x.Right)
		w.string(")")

	case *adt.Merge:
		w.string("merge ")
		w.expr(x.Handlers)
		w.string(" ")
		w.expr(x.Union)
		if x.ResultType != nil {
			w.string(" : ")
			w.expr(x.ResultType)
		}

	case *adt.Field:
		w.expr(x.Record)
		w.string(".")
		w.string(x.Label.String())

	default:
		panic(fmt.Sprintf("debug: unknown node type %T", x))
	}
}

func binOpSymbol(op adt.BinOpKind) string {
	switch op {
	case adt.BoolAnd:
		return "&&"
	case adt.BoolOr:
		return "||"
	case adt.BoolEQ:
		return "=="
	case adt.BoolNE:
		return "!="
	case adt.NaturalPlus:
		return "+"
	case adt.NaturalTimes:
		return "*"
	case adt.TextAppend:
		return "++"
	default:
		return "?"
	}
}
