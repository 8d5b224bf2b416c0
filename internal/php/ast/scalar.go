package ast

// String is a string literal. Value is the unescaped content.
type String struct {
	scalarBase
	Value string `php:"value"`
}

func (*String) NodeType() string { return "Scalar_String" }

// NewString creates a String.
func NewString(value string) *String {
	return &String{Value: value}
}

// LNumber is an integer literal.
type LNumber struct {
	scalarBase
	Value int64 `php:"value"`
}

func (*LNumber) NodeType() string { return "Scalar_LNumber" }

// NewInt creates an LNumber.
func NewInt(value int64) *LNumber {
	return &LNumber{Value: value}
}

// DNumber is a floating point literal.
type DNumber struct {
	scalarBase
	Value float64 `php:"value"`
}

func (*DNumber) NodeType() string { return "Scalar_DNumber" }

// NewFloat creates a DNumber.
func NewFloat(value float64) *DNumber {
	return &DNumber{Value: value}
}
