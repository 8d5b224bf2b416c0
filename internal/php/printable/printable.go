// Package printable pairs PHP syntax nodes with their exact source lines.
//
// A Printable's lines are fully indented, first line included. Lines and node
// are kept in lockstep by deriving the lines from the node through the
// canonical printer; hand-written lines are reserved for layouts the printer
// does not own.
package printable

import (
	"strings"

	"github.com/wpkernel/phpgen/internal/errors"
	"github.com/wpkernel/phpgen/internal/php/ast"
	"github.com/wpkernel/phpgen/internal/php/printer"
)

// IndentUnit is the indent used for every generated line.
const IndentUnit = printer.DefaultIndent

var canonical = printer.New(IndentUnit)

// Printable is a node together with its rendering.
type Printable[N ast.Node] struct {
	Node  N
	Lines []string
}

// Statement is the common printable shape appended to method bodies.
type Statement = Printable[ast.Stmt]

// Expression is a rendered expression.
type Expression = Printable[ast.Expr]

// New pairs node with a copy of lines.
func New[N ast.Node](node N, lines []string) Printable[N] {
	return Printable[N]{Node: node, Lines: append([]string(nil), lines...)}
}

// Indent returns the indent string for level.
func Indent(level int) string {
	return canonical.Indent(level)
}

// Printer returns the canonical printer.
func Printer() *printer.Printer {
	return canonical
}

// EscapeSingleQuotes escapes value for a single-quoted PHP string.
func EscapeSingleQuotes(value string) string {
	return printer.EscapeSingleQuotes(value)
}

// FromStmt renders stmt at level.
func FromStmt(stmt ast.Stmt, level int) (Statement, error) {
	lines, err := canonical.Stmt(stmt, level)
	if err != nil {
		return Statement{}, err
	}
	return Statement{Node: stmt, Lines: lines}, nil
}

// FromExpr renders expr with its first line indented at level.
func FromExpr(expr ast.Expr, level int) (Expression, error) {
	lines, err := canonical.Expr(expr, level)
	if err != nil {
		return Expression{}, err
	}
	lines[0] = Indent(level) + lines[0]
	return Expression{Node: expr, Lines: lines}, nil
}

// Stmt is FromStmt for nodes assembled from known-valid parts. A printer
// failure panics with the *errors.GeneratorError; Catch turns it back into an
// error at the generation boundary.
func Stmt(stmt ast.Stmt, level int) Statement {
	p, err := FromStmt(stmt, level)
	if err != nil {
		panic(mustError(err))
	}
	return p
}

// Expr is the expression counterpart of Stmt.
func Expr(expr ast.Expr, level int) Expression {
	p, err := FromExpr(expr, level)
	if err != nil {
		panic(mustError(err))
	}
	return p
}

// Inline renders expr on a single line. Multi-line renderings are joined
// with single spaces.
func Inline(expr ast.Expr) string {
	lines := Expr(expr, 0).Lines
	if len(lines) == 1 {
		return lines[0]
	}
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, strings.TrimSpace(line))
	}
	return strings.Join(parts, " ")
}

// Catch recovers a generator error raised by Stmt or Expr and stores it in
// err. Other panics are re-raised.
func Catch(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if genErr, ok := r.(*errors.GeneratorError); ok {
		*err = genErr
		return
	}
	panic(r)
}

func mustError(err error) *errors.GeneratorError {
	if genErr, ok := errors.As(err); ok {
		return genErr
	}
	return errors.NewGenerationFailed("printer", err)
}

// Blank is a line-only statement printable. It has no node, so the node
// side of a block ignores it.
func Blank() Statement {
	return Statement{Lines: []string{""}}
}

// Nodes collects the nodes of printables in order, skipping blanks.
func Nodes[N ast.Node](items []Printable[N]) []N {
	nodes := make([]N, 0, len(items))
	for _, item := range items {
		if any(item.Node) == nil {
			continue
		}
		nodes = append(nodes, item.Node)
	}
	return nodes
}

// Lines concatenates the lines of printables in order.
func Lines[N ast.Node](items []Printable[N]) []string {
	var lines []string
	for _, item := range items {
		lines = append(lines, item.Lines...)
	}
	return lines
}

// AsStmt widens a statement printable of a concrete node type.
func AsStmt[N ast.Stmt](p Printable[N]) Statement {
	return Statement{Node: p.Node, Lines: p.Lines}
}
