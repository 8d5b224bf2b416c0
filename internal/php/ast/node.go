// Package ast defines the PHP syntax tree emitted by the generator. The node
// set is a hand-curated subset of nikic/php-parser sufficient to express REST
// controllers, and it serialises to the same JSON shape (nodeType discriminant
// plus an attributes object).
package ast

import "reflect"

// Node is implemented by every syntax node.
type Node interface {
	// NodeType returns the nikic/php-parser discriminant, e.g. "Stmt_Return".
	NodeType() string
	// Attributes returns the node's attribute bag, never nil.
	Attributes() *Attributes
	setAttributes(attrs *Attributes)
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node. Every Expr may also stand where a class or
// function name is accepted.
type Expr interface {
	Node
	NameOrExpr
	exprNode()
}

// Scalar is a literal expression node.
type Scalar interface {
	Expr
	scalarNode()
}

// TypeNode is a type declaration position (param type, return type).
type TypeNode interface {
	Node
	typeNode()
}

// NameOrExpr is accepted as a class reference (new, instanceof, static call)
// or a function name.
type NameOrExpr interface {
	Node
	nameOrExpr()
}

type base struct {
	attrs *Attributes
}

func (b *base) Attributes() *Attributes {
	if b.attrs == nil {
		return emptyAttributes
	}
	return b.attrs
}

func (b *base) setAttributes(attrs *Attributes) {
	b.attrs = attrs.orEmpty()
}

type stmtBase struct{ base }

func (stmtBase) stmtNode() {}

type exprBase struct{ base }

func (exprBase) exprNode()   {}
func (exprBase) nameOrExpr() {}

type scalarBase struct{ exprBase }

func (scalarBase) scalarNode() {}

// MergeAttributes returns node unchanged when attrs is empty, is the node's
// own bag, or would not change it. Otherwise it returns a shallow copy of node
// whose attributes are the union of both bags.
func MergeAttributes[N Node](node N, attrs *Attributes) N {
	if attrs.IsEmpty() {
		return node
	}

	current := node.Attributes()
	if current == attrs {
		return node
	}

	merged := current.Merge(attrs)
	if merged.Equal(current) {
		return node
	}

	clone := cloneNode(node)
	clone.setAttributes(merged)
	return clone
}

// WithComments attaches comments to node, replacing any previous ones.
func WithComments[N Node](node N, comments ...*Comment) N {
	if len(comments) == 0 {
		return node
	}
	return MergeAttributes(node, NewAttributes(Attribute{Key: AttrComments, Value: comments}))
}

// WithAttributes sets attrs on a freshly built node and returns it. It is meant
// for factories; shared nodes should go through MergeAttributes.
func WithAttributes[N Node](node N, attrs *Attributes) N {
	node.setAttributes(attrs)
	return node
}

func cloneNode[N Node](node N) N {
	value := reflect.ValueOf(node)
	if value.Kind() != reflect.Pointer {
		return node
	}
	copied := reflect.New(value.Elem().Type())
	copied.Elem().Set(value.Elem())
	return copied.Interface().(N)
}

// Comment is a line or doc comment attached to a node.
type Comment struct {
	base
	Text string `php:"text"`
	Doc  bool   `php:"-"`
}

func (c *Comment) NodeType() string {
	if c.Doc {
		return "Comment_Doc"
	}
	return "Comment"
}

// NewComment creates a line comment. text must include the comment marker.
func NewComment(text string) *Comment {
	return &Comment{Text: text}
}

// NewDocComment creates a doc comment from docblock lines.
func NewDocComment(lines []string) *Comment {
	return &Comment{Text: DocblockText(lines), Doc: true}
}

// DocblockText formats lines as a PHP docblock: "/** */" for none,
// "/** line */" for one, a starred block otherwise.
func DocblockText(lines []string) string {
	switch len(lines) {
	case 0:
		return "/** */"
	case 1:
		return "/** " + lines[0] + " */"
	}

	text := "/**\n"
	for _, line := range lines {
		text += " * " + line + "\n"
	}
	return text + " */"
}
