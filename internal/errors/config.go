package errors

import "fmt"

// Configuration and descriptor error codes (CFG500-599)
const (
	// ErrConfigRead indicates the config file could not be read
	ErrConfigRead ErrorCode = "CFG500"
	// ErrConfigInvalid indicates an invalid config value
	ErrConfigInvalid ErrorCode = "CFG501"
	// ErrDescriptorDecode indicates a descriptor file that failed to decode
	ErrDescriptorDecode ErrorCode = "CFG502"
	// ErrDescriptorInvalid indicates a descriptor that decoded but is incomplete
	ErrDescriptorInvalid ErrorCode = "CFG503"
	// ErrMissingPolicy indicates a write route without a policy
	ErrMissingPolicy ErrorCode = "CFG504"
)

// Workspace error codes (WRK700-799)
const (
	// ErrWorkspaceWrite indicates a failed output write
	ErrWorkspaceWrite ErrorCode = "WRK700"
)

// NewConfigRead creates a CFG500 error
func NewConfigRead(file string, cause error) *GeneratorError {
	return newError(
		ErrConfigRead,
		"config_read",
		CategoryConfig,
		SeverityError,
		"Failed to read config file",
	).WithFile(file).WithCause(cause)
}

// NewConfigInvalid creates a CFG501 error
func NewConfigInvalid(key, reason string) *GeneratorError {
	return newError(
		ErrConfigInvalid,
		"config_invalid",
		CategoryConfig,
		SeverityError,
		fmt.Sprintf("Invalid value for %s: %s", key, reason),
	)
}

// NewDescriptorDecode creates a CFG502 error
func NewDescriptorDecode(file string, cause error) *GeneratorError {
	return newError(
		ErrDescriptorDecode,
		"descriptor_decode",
		CategoryConfig,
		SeverityError,
		"Failed to decode resource descriptors",
	).WithFile(file).WithCause(cause).
		WithSuggestion("Descriptor files must be YAML (.yml, .yaml) or JSON (.json)")
}

// NewDescriptorInvalid creates a CFG503 error
func NewDescriptorInvalid(resource, reason string) *GeneratorError {
	return newError(
		ErrDescriptorInvalid,
		"descriptor_invalid",
		CategoryConfig,
		SeverityError,
		fmt.Sprintf("Invalid resource descriptor: %s", reason),
	).WithResource(resource)
}

// NewMissingPolicy creates a CFG504 warning
func NewMissingPolicy(resource, method, path string) *GeneratorError {
	return newError(
		ErrMissingPolicy,
		"missing_policy",
		CategoryConfig,
		SeverityWarning,
		fmt.Sprintf("Write route [%s] %s has no policy", method, path),
	).WithResource(resource).
		WithSuggestion("Set a policy on the route so the handler calls Policy::enforce")
}

// NewWorkspaceWrite creates a WRK700 error
func NewWorkspaceWrite(file string, cause error) *GeneratorError {
	return newError(
		ErrWorkspaceWrite,
		"workspace_write",
		CategoryWorkspace,
		SeverityError,
		"Failed to write generated file",
	).WithFile(file).WithCause(cause)
}
