package errors

import (
	"fmt"
	"strings"
)

// FormatError returns a human-readable error message for terminal output
func FormatError(e *GeneratorError) string {
	var b strings.Builder

	subject := e.File
	if subject == "" {
		subject = e.Resource
	}
	if subject == "" {
		subject = "<generator>"
	}

	fmt.Fprintf(&b, "%s %s in %s [%s]\n", severityIcon(e.Severity), categoryDisplayName(e.Category), subject, e.Code)
	fmt.Fprintf(&b, "  %s\n", e.Message)
	if e.cause != nil {
		fmt.Fprintf(&b, "  Cause: %v\n", e.cause)
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n💡 %s\n", e.Suggestion)
	}

	if len(e.Examples) > 0 {
		b.WriteString("\nExamples:\n")
		for i, example := range e.Examples {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, example)
		}
	}

	if e.Documentation != "" {
		fmt.Fprintf(&b, "\nLearn more: %s\n", e.Documentation)
	}

	return b.String()
}

// FormatErrorList returns a formatted string of all errors
func FormatErrorList(errors ErrorList) string {
	if len(errors) == 0 {
		return "no errors"
	}

	var b strings.Builder

	errCount, warnCount, infoCount := errors.ErrorCount()
	fmt.Fprintf(&b, "Generation finished with %d error(s), %d warning(s), %d info\n\n",
		errCount, warnCount, infoCount)

	for i, err := range errors {
		if i > 0 {
			b.WriteString("\n" + strings.Repeat("-", 80) + "\n\n")
		}
		b.WriteString(err.Format())
	}

	return b.String()
}

// FormatCompact returns a compact one-line error format
func FormatCompact(e *GeneratorError) string {
	subject := e.File
	if subject == "" {
		subject = e.Resource
	}
	if subject == "" {
		subject = "<generator>"
	}
	return fmt.Sprintf("%s: %s: %s [%s]", subject, e.Severity, e.Message, e.Code)
}

func severityIcon(severity ErrorSeverity) string {
	switch severity {
	case SeverityError:
		return "❌"
	case SeverityWarning:
		return "⚠️ "
	case SeverityInfo:
		return "ℹ️ "
	default:
		return "❓"
	}
}

func categoryDisplayName(category ErrorCategory) string {
	switch category {
	case CategoryDeveloper:
		return "Developer Error"
	case CategoryUnsupportedValue:
		return "Unsupported Value"
	case CategoryConfig:
		return "Configuration Error"
	case CategoryWorkspace:
		return "Workspace Error"
	default:
		return "Generator Error"
	}
}
