package errors

import "fmt"

// Generation error codes (GEN600-699)
const (
	// ErrGenerationFailed indicates a general generation failure
	ErrGenerationFailed ErrorCode = "GEN600"
	// ErrEmptyName indicates an empty variable or identifier name
	ErrEmptyName ErrorCode = "GEN601"
	// ErrStorageMismatch indicates a helper invoked for the wrong storage mode
	ErrStorageMismatch ErrorCode = "GEN602"
	// ErrNonFiniteNumber indicates NaN or an infinity passed to the value renderer
	ErrNonFiniteNumber ErrorCode = "GEN603"
	// ErrUnsupportedValue indicates a host value with no PHP literal form
	ErrUnsupportedValue ErrorCode = "GEN604"
	// ErrUnsupportedOperator indicates an unknown binary operator or cast kind
	ErrUnsupportedOperator ErrorCode = "GEN605"
	// ErrUnsupportedNode indicates a node the canonical printer cannot render
	ErrUnsupportedNode ErrorCode = "GEN606"
	// ErrSyntax indicates generated PHP that does not parse
	ErrSyntax ErrorCode = "GEN607"
)

// NewGenerationFailed creates a GEN600 error
func NewGenerationFailed(reason string, cause error) *GeneratorError {
	return newError(
		ErrGenerationFailed,
		"generation_failed",
		CategoryDeveloper,
		SeverityError,
		fmt.Sprintf("Generation failed: %s", reason),
	).WithCause(cause)
}

// NewEmptyName creates a GEN601 error
func NewEmptyName(what string) *GeneratorError {
	return newError(
		ErrEmptyName,
		"empty_name",
		CategoryDeveloper,
		SeverityError,
		fmt.Sprintf("%s name must not be empty", what),
	).WithSuggestion("Pass a non-empty name without the leading '$'")
}

// NewStorageMismatch creates a GEN602 error
func NewStorageMismatch(resource, want, got string) *GeneratorError {
	if got == "" {
		got = "none"
	}
	return newError(
		ErrStorageMismatch,
		"storage_mismatch",
		CategoryDeveloper,
		SeverityError,
		fmt.Sprintf("Resource '%s' requires %s storage, found %s", resource, want, got),
	).WithResource(resource).
		WithSuggestion("Only call storage helpers for resources whose storage mode matches")
}

// NewUnsupportedOperator creates a GEN605 error
func NewUnsupportedOperator(kind, name string) *GeneratorError {
	return newError(
		ErrUnsupportedOperator,
		"unsupported_operator",
		CategoryDeveloper,
		SeverityError,
		fmt.Sprintf("Unsupported %s '%s'", kind, name),
	)
}

// NewUnsupportedNode creates a GEN606 error
func NewUnsupportedNode(nodeType string) *GeneratorError {
	return newError(
		ErrUnsupportedNode,
		"unsupported_node",
		CategoryDeveloper,
		SeverityError,
		fmt.Sprintf("Node '%s' cannot be printed as a statement or expression", nodeType),
	).WithSuggestion("Render declarations through the class and method templates")
}

// NewNonFiniteNumber creates a GEN603 error
func NewNonFiniteNumber(value float64) *GeneratorError {
	return newError(
		ErrNonFiniteNumber,
		"non_finite_number",
		CategoryUnsupportedValue,
		SeverityError,
		fmt.Sprintf("Cannot render non-finite number %v", value),
	).WithSuggestion("Replace NaN and infinite values before rendering")
}

// NewUnsupportedValue creates a GEN604 error
func NewUnsupportedValue(typeName string) *GeneratorError {
	return newError(
		ErrUnsupportedValue,
		"unsupported_value",
		CategoryUnsupportedValue,
		SeverityError,
		fmt.Sprintf("Cannot render value of type %s as a PHP literal", typeName),
	).WithSuggestion("Use strings, numbers, booleans, nil, slices or string-keyed maps").
		WithExamples(
			"[]any{\"a\", 1, true}",
			"map[string]any{\"type\": \"string\"}",
		)
}

// NewSyntaxError creates a GEN607 error for the first of count syntax
// problems found in file
func NewSyntaxError(file string, line, column, count int) *GeneratorError {
	return newError(
		ErrSyntax,
		"syntax_error",
		CategoryDeveloper,
		SeverityError,
		fmt.Sprintf("Generated PHP has %d syntax error(s), first at %d:%d", count, line, column),
	).WithFile(file).
		WithSuggestion("Run 'phpgen lint' on the file and inspect the reported lines")
}
