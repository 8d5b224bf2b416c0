// Package printer renders PHP syntax trees into source lines using the
// generator's house style: spaced parentheses, spaced call arguments, and
// either array( ... ) or [ ... ] literals depending on the node's kind.
package printer

import (
	"math"
	"strconv"
	"strings"

	"github.com/wpkernel/phpgen/internal/errors"
	"github.com/wpkernel/phpgen/internal/php/ast"
)

// DefaultIndent is the indent unit used by every generated PHP file.
const DefaultIndent = "        "

// Printer converts nodes to lines. Statement output is fully indented.
// Expression output leaves the first line unindented so callers can splice
// it after a prefix; continuation lines carry their absolute indent.
type Printer struct {
	indent string
}

// New creates a Printer with the given indent unit.
func New(indent string) *Printer {
	if indent == "" {
		indent = DefaultIndent
	}
	return &Printer{indent: indent}
}

// Default returns a Printer using DefaultIndent.
func Default() *Printer {
	return New(DefaultIndent)
}

// IndentUnit returns the printer's indent unit.
func (p *Printer) IndentUnit() string {
	return p.indent
}

// Indent returns the indent string for level.
func (p *Printer) Indent(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat(p.indent, level)
}

// EscapeSingleQuotes escapes backslashes and single quotes for a
// single-quoted PHP string.
func EscapeSingleQuotes(value string) string {
	return quoteEscaper.Replace(value)
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// Quote returns value as a single-quoted PHP string literal.
func Quote(value string) string {
	return "'" + EscapeSingleQuotes(value) + "'"
}

// Stmts prints statements in order at level.
func (p *Printer) Stmts(stmts []ast.Stmt, level int) ([]string, error) {
	lines := make([]string, 0, len(stmts))
	for _, stmt := range stmts {
		printed, err := p.Stmt(stmt, level)
		if err != nil {
			return nil, err
		}
		lines = append(lines, printed...)
	}
	return lines, nil
}

// Stmt prints a single statement at level, preceded by its comments.
func (p *Printer) Stmt(stmt ast.Stmt, level int) ([]string, error) {
	indent := p.Indent(level)
	lines := p.comments(stmt, indent)

	body, err := p.stmt(stmt, level, indent)
	if err != nil {
		return nil, err
	}
	return append(lines, body...), nil
}

func (p *Printer) comments(node ast.Node, indent string) []string {
	var lines []string
	for _, comment := range node.Attributes().Comments() {
		for _, line := range strings.Split(comment.Text, "\n") {
			lines = append(lines, indent+line)
		}
	}
	return lines
}

func (p *Printer) stmt(stmt ast.Stmt, level int, indent string) ([]string, error) {
	switch s := stmt.(type) {
	case *ast.Expression:
		expr, err := p.Expr(s.Expr, level)
		if err != nil {
			return nil, err
		}
		return terminate(prefix(indent, expr)), nil

	case *ast.Return:
		if s.Expr == nil {
			return []string{indent + "return;"}, nil
		}
		expr, err := p.Expr(s.Expr, level)
		if err != nil {
			return nil, err
		}
		return terminate(prefix(indent+"return ", expr)), nil

	case *ast.If:
		return p.ifStmt(s, level, indent)

	case *ast.Foreach:
		return p.foreachStmt(s, level, indent)

	case *ast.For:
		return p.forStmt(s, level, indent)

	case *ast.While:
		head, err := p.condition(indent+"while ( ", s.Cond, " ) {", level)
		if err != nil {
			return nil, err
		}
		return p.block(head, s.Stmts, level, indent)

	case *ast.Switch:
		return p.switchStmt(s, level, indent)

	case *ast.Break:
		return p.jump(indent, "break", s.Num, level)

	case *ast.Continue:
		return p.jump(indent, "continue", s.Num, level)

	case *ast.Unset:
		args := make([][]string, 0, len(s.Vars))
		for _, v := range s.Vars {
			expr, err := p.Expr(v, level)
			if err != nil {
				return nil, err
			}
			args = append(args, expr)
		}
		return terminate(prefix(indent, wrapList("unset(", args, ")"))), nil

	case *ast.Declare:
		parts := make([]string, 0, len(s.Declares))
		for _, item := range s.Declares {
			value, err := p.Expr(item.Value, level)
			if err != nil {
				return nil, err
			}
			parts = append(parts, item.Key.Name+"="+value[0])
		}
		return []string{indent + "declare(" + strings.Join(parts, ", ") + ");"}, nil

	case *ast.Nop:
		return nil, nil

	case *ast.ClassConst:
		return p.classConst(s, level, indent)

	case *ast.Property:
		return p.property(s, level, indent)
	}

	return nil, errors.NewUnsupportedNode(stmt.NodeType())
}

func (p *Printer) ifStmt(s *ast.If, level int, indent string) ([]string, error) {
	head, err := p.condition(indent+"if ( ", s.Cond, " ) {", level)
	if err != nil {
		return nil, err
	}
	lines, err := p.appendBody(head, s.Stmts, level)
	if err != nil {
		return nil, err
	}

	for _, branch := range s.ElseIfs {
		cond, err := p.condition(indent+"} elseif ( ", branch.Cond, " ) {", level)
		if err != nil {
			return nil, err
		}
		lines = append(lines, cond...)
		if lines, err = p.appendBody(lines, branch.Stmts, level); err != nil {
			return nil, err
		}
	}

	if s.Else != nil {
		lines = append(lines, indent+"} else {")
		if lines, err = p.appendBody(lines, s.Else.Stmts, level); err != nil {
			return nil, err
		}
	}

	return append(lines, indent+"}"), nil
}

func (p *Printer) foreachStmt(s *ast.Foreach, level int, indent string) ([]string, error) {
	subject, err := p.Expr(s.Expr, level)
	if err != nil {
		return nil, err
	}

	target := ""
	if s.KeyVar != nil {
		key, err := p.Expr(s.KeyVar, level)
		if err != nil {
			return nil, err
		}
		target = key[0] + " => "
	}
	if s.ByRef {
		target += "&"
	}
	value, err := p.Expr(s.ValueVar, level)
	if err != nil {
		return nil, err
	}
	target += value[0]

	head := suffix(prefix(indent+"foreach ( ", subject), " as "+target+" ) {")
	return p.block(head, s.Stmts, level, indent)
}

func (p *Printer) forStmt(s *ast.For, level int, indent string) ([]string, error) {
	groups := make([]string, 0, 3)
	for _, group := range [][]ast.Expr{s.Init, s.Cond, s.Loop} {
		parts := make([]string, 0, len(group))
		for _, expr := range group {
			printed, err := p.Expr(expr, level)
			if err != nil {
				return nil, err
			}
			parts = append(parts, strings.Join(printed, " "))
		}
		groups = append(groups, strings.Join(parts, ", "))
	}

	head := []string{indent + "for ( " + strings.Join(groups, "; ") + " ) {"}
	return p.block(head, s.Stmts, level, indent)
}

func (p *Printer) switchStmt(s *ast.Switch, level int, indent string) ([]string, error) {
	lines, err := p.condition(indent+"switch ( ", s.Cond, " ) {", level)
	if err != nil {
		return nil, err
	}

	caseIndent := p.Indent(level + 1)
	for _, c := range s.Cases {
		if c.Cond == nil {
			lines = append(lines, caseIndent+"default:")
		} else {
			cond, err := p.Expr(c.Cond, level+1)
			if err != nil {
				return nil, err
			}
			lines = append(lines, suffix(prefix(caseIndent+"case ", cond), ":")...)
		}

		body, err := p.Stmts(c.Stmts, level+2)
		if err != nil {
			return nil, err
		}
		lines = append(lines, body...)
	}

	return append(lines, indent+"}"), nil
}

func (p *Printer) jump(indent, keyword string, num ast.Expr, level int) ([]string, error) {
	if num == nil {
		return []string{indent + keyword + ";"}, nil
	}
	printed, err := p.Expr(num, level)
	if err != nil {
		return nil, err
	}
	return terminate(prefix(indent+keyword+" ", printed)), nil
}

func (p *Printer) classConst(s *ast.ClassConst, level int, indent string) ([]string, error) {
	var lines []string
	for _, c := range s.Consts {
		value, err := p.Expr(c.Value, level)
		if err != nil {
			return nil, err
		}
		head := indent + modifiers(s.Flags) + "const " + c.Name.Name + " = "
		lines = append(lines, terminate(prefix(head, value))...)
	}
	return lines, nil
}

func (p *Printer) property(s *ast.Property, level int, indent string) ([]string, error) {
	typ := ""
	if s.Type != nil {
		printed, err := p.Type(s.Type)
		if err != nil {
			return nil, err
		}
		typ = printed + " "
	}

	var lines []string
	for _, item := range s.Props {
		head := indent + modifiers(s.Flags) + typ + "$" + item.Name.Name
		if item.Default == nil {
			lines = append(lines, head+";")
			continue
		}
		value, err := p.Expr(item.Default, level)
		if err != nil {
			return nil, err
		}
		lines = append(lines, terminate(prefix(head+" = ", value))...)
	}
	return lines, nil
}

func (p *Printer) condition(open string, cond ast.Expr, close string, level int) ([]string, error) {
	printed, err := p.Expr(cond, level)
	if err != nil {
		return nil, err
	}
	return suffix(prefix(open, printed), close), nil
}

func (p *Printer) block(head []string, stmts []ast.Stmt, level int, indent string) ([]string, error) {
	lines, err := p.appendBody(head, stmts, level)
	if err != nil {
		return nil, err
	}
	return append(lines, indent+"}"), nil
}

func (p *Printer) appendBody(lines []string, stmts []ast.Stmt, level int) ([]string, error) {
	body, err := p.Stmts(stmts, level+1)
	if err != nil {
		return nil, err
	}
	return append(lines, body...), nil
}

// Type prints a type declaration.
func (p *Printer) Type(node ast.TypeNode) (string, error) {
	switch t := node.(type) {
	case *ast.Identifier:
		return t.Name, nil
	case *ast.Name:
		return t.String(), nil
	case *ast.NullableType:
		inner, err := p.Type(t.Type)
		if err != nil {
			return "", err
		}
		return "?" + inner, nil
	}
	return "", errors.NewUnsupportedNode(node.NodeType())
}

// Params prints a parameter list without the surrounding parentheses.
func (p *Printer) Params(params []*ast.Param) (string, error) {
	parts := make([]string, 0, len(params))
	for _, param := range params {
		text := ""
		if param.Type != nil {
			typ, err := p.Type(param.Type)
			if err != nil {
				return "", err
			}
			text = typ + " "
		}
		if param.ByRef {
			text += "&"
		}
		if param.Variadic {
			text += "..."
		}
		v, err := p.Expr(param.Var, 0)
		if err != nil {
			return "", err
		}
		text += v[0]
		if param.Default != nil {
			def, err := p.Expr(param.Default, 0)
			if err != nil {
				return "", err
			}
			text += " = " + strings.Join(def, " ")
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, ", "), nil
}

func modifiers(flags int) string {
	var parts []string
	if flags&ast.ModifierFinal != 0 {
		parts = append(parts, "final")
	}
	if flags&ast.ModifierAbstract != 0 {
		parts = append(parts, "abstract")
	}
	switch {
	case flags&ast.ModifierPublic != 0:
		parts = append(parts, "public")
	case flags&ast.ModifierProtected != 0:
		parts = append(parts, "protected")
	case flags&ast.ModifierPrivate != 0:
		parts = append(parts, "private")
	}
	if flags&ast.ModifierStatic != 0 {
		parts = append(parts, "static")
	}
	if flags&ast.ModifierReadonly != 0 {
		parts = append(parts, "readonly")
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ") + " "
}

// Modifiers returns the keywords for flags, in declaration order.
func Modifiers(flags int) []string {
	text := strings.TrimSpace(modifiers(flags))
	if text == "" {
		return nil
	}
	return strings.Split(text, " ")
}

func formatFloat(value float64) (string, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "", errors.NewNonFiniteNumber(value)
	}

	abs := math.Abs(value)
	var text string
	if abs >= 1e21 || (abs != 0 && abs < 1e-6) {
		text = strconv.FormatFloat(value, 'e', -1, 64)
	} else {
		text = strconv.FormatFloat(value, 'f', -1, 64)
	}
	if !strings.ContainsAny(text, ".e") {
		text += ".0"
	}
	return text, nil
}
