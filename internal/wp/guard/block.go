package guard

import (
	"strings"

	"github.com/wpkernel/phpgen/internal/php/ast"
	"github.com/wpkernel/phpgen/internal/php/printable"
)

// If combines cond with body into if ( cond ) { ... }. Blank printables in
// body keep their line and contribute no node.
func If(cond ast.Expr, level int, body ...printable.Statement) printable.Statement {
	node := ast.NewIf(cond, printable.Nodes(body))
	return printable.New[ast.Stmt](node, block("if ( ", cond, " ) {", level, body))
}

// Foreach combines foreach ( expr as [key =>] value ) { ... }. key may be nil.
func Foreach(expr, key, value ast.Expr, level int, body ...printable.Statement) printable.Statement {
	node := ast.NewForeach(expr, key, value, printable.Nodes(body))

	head := printable.Inline(expr) + " as "
	if key != nil {
		head += printable.Inline(key) + " => "
	}
	head += printable.Inline(value)

	lines := []string{printable.Indent(level) + "foreach ( " + head + " ) {"}
	lines = append(lines, printable.Lines(body)...)
	lines = append(lines, printable.Indent(level)+"}")
	return printable.New[ast.Stmt](node, lines)
}

func block(open string, cond ast.Expr, close string, level int, body []printable.Statement) []string {
	indent := printable.Indent(level)

	head := printable.Expr(cond, level).Lines
	head[0] = indent + open + strings.TrimPrefix(head[0], indent)
	head[len(head)-1] += close

	lines := append(head, printable.Lines(body)...)
	return append(lines, indent+"}")
}

// Assign renders target = value;.
func Assign(target, value ast.Expr, level int) printable.Statement {
	return printable.Stmt(ast.NewExpression(ast.NewAssign(target, value)), level)
}

// Expression renders expr;.
func Expression(expr ast.Expr, level int) printable.Statement {
	return printable.Stmt(ast.NewExpression(expr), level)
}

// Return renders return expr;. A nil expr renders return;.
func Return(expr ast.Expr, level int) printable.Statement {
	return printable.Stmt(ast.NewReturn(expr), level)
}

// Continue renders continue;.
func Continue(level int) printable.Statement {
	return printable.Stmt(ast.NewContinue(nil), level)
}

// Comment renders a nop carrying a single line comment.
func Comment(text string, level int) printable.Statement {
	return printable.Stmt(ast.NewNop(ast.NewComment("// "+text)), level)
}

// ReturnIfWpError renders if ( is_wp_error( $name ) ) { return $name; }.
func ReturnIfWpError(name string, level int) printable.Statement {
	return If(Call("is_wp_error", Variable(name)), level, Return(Variable(name), level+1))
}

// EnsureArray renders if ( ! is_array( $name ) ) { $name = array( $name ); }.
func EnsureArray(name string, level int) printable.Statement {
	v := Variable(name)
	return If(BooleanNot(Call("is_array", v)), level,
		Assign(v, ast.NewLongArray(ast.NewArrayItem(v)), level+1),
	)
}
