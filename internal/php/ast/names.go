package ast

import "strings"

// Identifier is a bare identifier (method name, property name, builtin type).
type Identifier struct {
	base
	Name string `php:"name"`
}

func (*Identifier) NodeType() string { return "Identifier" }
func (*Identifier) typeNode()        {}

// NewIdentifier creates an Identifier.
func NewIdentifier(name string) *Identifier {
	return &Identifier{Name: name}
}

// Name is a possibly qualified name such as WP_Post or Demo\Rest.
type Name struct {
	base
	Parts          []string `php:"parts"`
	FullyQualified bool     `php:"-"`
}

func (n *Name) NodeType() string {
	if n.FullyQualified {
		return "Name_FullyQualified"
	}
	return "Name"
}

func (*Name) typeNode()   {}
func (*Name) nameOrExpr() {}

// String joins the parts with the namespace separator.
func (n *Name) String() string {
	text := strings.Join(n.Parts, `\`)
	if n.FullyQualified {
		return `\` + text
	}
	return text
}

// NewName creates a Name from its parts.
func NewName(parts ...string) *Name {
	return &Name{Parts: append([]string(nil), parts...)}
}

// NewFullyQualifiedName creates a Name_FullyQualified from its parts.
func NewFullyQualifiedName(parts ...string) *Name {
	return &Name{Parts: append([]string(nil), parts...), FullyQualified: true}
}

// ParseName splits a PHP name on backslashes. A leading backslash marks it
// fully qualified.
func ParseName(value string) *Name {
	trimmed := strings.TrimSpace(value)
	fullyQualified := strings.HasPrefix(trimmed, `\`)

	var parts []string
	for _, part := range strings.Split(strings.TrimPrefix(trimmed, `\`), `\`) {
		if part != "" {
			parts = append(parts, part)
		}
	}

	return &Name{Parts: parts, FullyQualified: fullyQualified}
}

// NullableType is ?Type.
type NullableType struct {
	base
	Type TypeNode `php:"type"`
}

func (*NullableType) NodeType() string { return "NullableType" }
func (*NullableType) typeNode()        {}

// NewNullableType creates a NullableType.
func NewNullableType(inner TypeNode) *NullableType {
	return &NullableType{Type: inner}
}

// Param is a function or method parameter.
type Param struct {
	base
	Type       TypeNode `php:"type"`
	ByRef      bool     `php:"byRef"`
	Variadic   bool     `php:"variadic"`
	Var        Expr     `php:"var"`
	Default    Expr     `php:"default"`
	Flags      int      `php:"flags"`
	AttrGroups []Node   `php:"attrGroups"`
}

func (*Param) NodeType() string { return "Param" }

// NewParam creates a Param for variable v with an optional type.
func NewParam(v *Variable, typ TypeNode) *Param {
	return &Param{Var: v, Type: typ, AttrGroups: []Node{}}
}

// Arg is a call argument.
type Arg struct {
	base
	Name   *Identifier `php:"name"`
	Value  Expr        `php:"value"`
	ByRef  bool        `php:"byRef"`
	Unpack bool        `php:"unpack"`
}

func (*Arg) NodeType() string { return "Arg" }

// NewArg creates a positional Arg.
func NewArg(value Expr) *Arg {
	return &Arg{Value: value}
}

// Args wraps each expression in a positional Arg.
func Args(values ...Expr) []*Arg {
	args := make([]*Arg, 0, len(values))
	for _, value := range values {
		args = append(args, NewArg(value))
	}
	return args
}
