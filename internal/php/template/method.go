// Package template assembles PHP class and method skeletons. Every template
// produces its source lines and its syntax node together, and the node's
// statements are exactly the statements appended to the body builder.
package template

import (
	"regexp"
	"strings"

	"github.com/wpkernel/phpgen/internal/php/ast"
	"github.com/wpkernel/phpgen/internal/php/printable"
	"github.com/wpkernel/phpgen/internal/php/printer"
)

// MethodBodyBuilder records body lines and statement nodes in parallel.
type MethodBodyBuilder struct {
	indentUnit string
	level      int
	lines      []string
	statements []ast.Stmt
}

// NewMethodBodyBuilder creates a builder whose Line calls indent at level.
func NewMethodBodyBuilder(indentUnit string, level int) *MethodBodyBuilder {
	if indentUnit == "" {
		indentUnit = printable.IndentUnit
	}
	return &MethodBodyBuilder{indentUnit: indentUnit, level: level}
}

// Level returns the builder's indent level.
func (b *MethodBodyBuilder) Level() int {
	return b.level
}

// Line appends content indented at the builder's level. Empty content
// appends a blank line.
func (b *MethodBodyBuilder) Line(content string) {
	if content == "" {
		b.lines = append(b.lines, "")
		return
	}
	b.lines = append(b.lines, strings.Repeat(b.indentUnit, b.level)+content)
}

// Raw appends content unchanged.
func (b *MethodBodyBuilder) Raw(content string) {
	b.lines = append(b.lines, content)
}

// Blank appends an empty line.
func (b *MethodBodyBuilder) Blank() {
	b.lines = append(b.lines, "")
}

// StatementOption adjusts how Statement appends a printable.
type StatementOption func(*statementOptions)

type statementOptions struct {
	applyIndent bool
}

// ApplyIndent prefixes every non-blank line with the builder's indent. It is
// meant for printables rendered at level zero.
func ApplyIndent() StatementOption {
	return func(o *statementOptions) { o.applyIndent = true }
}

// Statement appends the printable's lines and records its node.
func (b *MethodBodyBuilder) Statement(p printable.Statement, opts ...StatementOption) {
	var options statementOptions
	for _, opt := range opts {
		opt(&options)
	}

	indent := strings.Repeat(b.indentUnit, b.level)
	for _, line := range p.Lines {
		if options.applyIndent && line != "" {
			line = indent + line
		}
		b.lines = append(b.lines, line)
	}
	if p.Node != nil {
		b.statements = append(b.statements, p.Node)
	}
}

// Statements appends each printable in order.
func (b *MethodBodyBuilder) Statements(items ...printable.Statement) {
	for _, item := range items {
		b.Statement(item)
	}
}

// Lines returns a snapshot of the body lines.
func (b *MethodBodyBuilder) Lines() []string {
	return append([]string(nil), b.lines...)
}

// Stmts returns a snapshot of the recorded statements.
func (b *MethodBodyBuilder) Stmts() []ast.Stmt {
	return append([]ast.Stmt(nil), b.statements...)
}

// MethodOptions describes a method. When Signature is empty it is derived
// from Flags, Name, Params and ReturnType.
type MethodOptions struct {
	Signature  string
	Level      int
	Docblock   []string
	IndentUnit string
	Body       func(body *MethodBodyBuilder)

	Name       string
	Flags      int
	ByRef      bool
	Params     []*ast.Param
	ReturnType ast.TypeNode
	Attributes *ast.Attributes
}

// MethodTemplate is a rendered method and its node.
type MethodTemplate struct {
	Lines []string
	Node  *ast.ClassMethod
}

var methodNamePattern = regexp.MustCompile(`function\s+&?\s*([a-zA-Z0-9_]+)`)

// NewMethod renders a method template.
func NewMethod(opts MethodOptions) (MethodTemplate, error) {
	unit := opts.IndentUnit
	if unit == "" {
		unit = printable.IndentUnit
	}
	indent := strings.Repeat(unit, opts.Level)

	signature := opts.Signature
	if signature == "" {
		derived, err := deriveSignature(opts)
		if err != nil {
			return MethodTemplate{}, err
		}
		signature = derived
	}

	lines := Docblock(opts.Docblock, indent)
	lines = append(lines, indent+signature, indent+"{")

	body := NewMethodBodyBuilder(unit, opts.Level+1)
	if opts.Body != nil {
		opts.Body(body)
	}
	lines = append(lines, body.Lines()...)
	lines = append(lines, indent+"}")

	name := opts.Name
	if name == "" {
		name = inferMethodName(signature)
	}

	node := ast.NewClassMethod(ast.NewIdentifier(name), opts.Flags, opts.Params, opts.ReturnType, body.Stmts())
	node.ByRef = opts.ByRef
	node = ast.WithAttributes(node, withDocComment(opts.Attributes, opts.Docblock))

	return MethodTemplate{Lines: lines, Node: node}, nil
}

func deriveSignature(opts MethodOptions) (string, error) {
	p := printer.New(opts.IndentUnit)

	params, err := p.Params(opts.Params)
	if err != nil {
		return "", err
	}

	parts := printer.Modifiers(opts.Flags)
	name := opts.Name
	if opts.ByRef {
		name = "&" + name
	}
	parts = append(parts, "function", name)
	signature := strings.Join(parts, " ")

	if params == "" {
		signature += "()"
	} else {
		signature += "( " + params + " )"
	}

	if opts.ReturnType != nil {
		typ, err := p.Type(opts.ReturnType)
		if err != nil {
			return "", err
		}
		signature += ": " + typ
	}
	return signature, nil
}

func inferMethodName(signature string) string {
	match := methodNamePattern.FindStringSubmatch(signature)
	if match == nil {
		return "method"
	}
	return match[1]
}

// Docblock renders lines as a docblock at indent: "/** line */" for one
// line, a starred block for several, nothing for none.
func Docblock(lines []string, indent string) []string {
	if len(lines) == 0 {
		return nil
	}
	rendered := strings.Split(ast.DocblockText(lines), "\n")
	for i := range rendered {
		rendered[i] = indent + rendered[i]
	}
	return rendered
}

func withDocComment(attrs *ast.Attributes, docblock []string) *ast.Attributes {
	if len(docblock) == 0 {
		if attrs == nil {
			return ast.EmptyAttributes()
		}
		return attrs
	}

	doc := ast.NewDocComment(docblock)
	comments := append(append([]*ast.Comment(nil), attrs.Comments()...), doc)
	return attrs.Merge(ast.NewAttributes(ast.Attribute{Key: ast.AttrComments, Value: comments}))
}
