package template

import (
	"strings"

	"github.com/wpkernel/phpgen/internal/php/ast"
	"github.com/wpkernel/phpgen/internal/php/printable"
	"github.com/wpkernel/phpgen/internal/php/printer"
)

// ClassOptions describes a class declaration.
type ClassOptions struct {
	Name       string
	Flags      int
	Docblock   []string
	Extends    string
	Implements []string
	Members    []printable.Statement
	Methods    []MethodTemplate
	Attributes *ast.Attributes
}

// ClassTemplate is a rendered class and its node.
type ClassTemplate = printable.Printable[*ast.Class]

// NewClass renders a class template. Members are separated by blank lines,
// as are methods; the class itself is not indented.
func NewClass(opts ClassOptions) ClassTemplate {
	extends := parseName(opts.Extends)

	var implements []*ast.Name
	for _, name := range opts.Implements {
		if parsed := parseName(name); parsed != nil {
			implements = append(implements, parsed)
		}
	}

	stmts := make([]ast.Stmt, 0, len(opts.Members)+len(opts.Methods))
	for _, member := range opts.Members {
		stmts = append(stmts, member.Node)
	}
	for _, method := range opts.Methods {
		if method.Node != nil {
			stmts = append(stmts, method.Node)
		}
	}

	node := ast.NewClass(ast.NewIdentifier(opts.Name), opts.Flags, extends, implements, stmts)
	node = ast.WithAttributes(node, withDocComment(opts.Attributes, opts.Docblock))

	lines := Docblock(opts.Docblock, "")
	lines = append(lines, classSignature(opts.Name, opts.Flags, extends, implements), "{")

	for i, member := range opts.Members {
		lines = append(lines, member.Lines...)

		spaced := i < len(opts.Members)-1 || len(opts.Methods) > 0
		if spaced && !endsBlank(member.Lines) {
			lines = append(lines, "")
		}
	}

	for i, method := range opts.Methods {
		lines = append(lines, method.Lines...)
		if i < len(opts.Methods)-1 {
			lines = append(lines, "")
		}
	}

	lines = append(lines, "}")

	return ClassTemplate{Node: node, Lines: lines}
}

func classSignature(name string, flags int, extends *ast.Name, implements []*ast.Name) string {
	parts := printer.Modifiers(flags)
	parts = append(parts, "class", name)
	if extends != nil {
		parts = append(parts, "extends "+extends.String())
	}
	if len(implements) > 0 {
		names := make([]string, 0, len(implements))
		for _, n := range implements {
			names = append(names, n.String())
		}
		parts = append(parts, "implements "+strings.Join(names, ", "))
	}
	return strings.Join(parts, " ")
}

func parseName(value string) *ast.Name {
	name := ast.ParseName(value)
	if len(name.Parts) == 0 {
		return nil
	}
	return name
}

func endsBlank(lines []string) bool {
	return len(lines) > 0 && lines[len(lines)-1] == ""
}
