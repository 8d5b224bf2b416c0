package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/wpkernel/phpgen/internal/errors"
)

// ErrorLevel represents the severity of an error message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

// ErrorOptions configures the error message formatting
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Problem      string
	Detail       string
	Suggestions  []string
	Examples     []string
	HelpCommands []string
	NoColor      bool
}

// FormatError creates a standardized error message with suggestions and help commands
//
// Example output:
//
//	❌ RESOURCE NOT FOUND: Cannot find resource 'bokks'.
//
//	   Did you mean: books?
//
//	   → Check the resources list in your descriptor file
//	   → Get help: phpgen generate --help
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	var headerColor, bodyColor *color.Color
	var symbol string

	switch opts.Level {
	case ErrorLevelError:
		headerColor = color.New(color.FgRed, color.Bold)
		bodyColor = color.New(color.FgRed)
		symbol = "❌"
	case ErrorLevelWarning:
		headerColor = color.New(color.FgYellow, color.Bold)
		bodyColor = color.New(color.FgYellow)
		symbol = "⚠️"
	default:
		headerColor = color.New(color.FgCyan, color.Bold)
		bodyColor = color.New(color.FgCyan)
		symbol = "ℹ️"
	}

	if opts.NoColor {
		headerColor.DisableColor()
		bodyColor.DisableColor()
	}

	if opts.Context != "" {
		headerColor.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(opts.Context), opts.Problem)
	} else {
		headerColor.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	if opts.Detail != "" {
		bodyColor.Fprintf(&b, "   %s\n", opts.Detail)
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		yellow := color.New(color.FgYellow)
		if opts.NoColor {
			yellow.DisableColor()
		}
		yellow.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.Examples) > 0 {
		b.WriteString("\n   Examples:\n")
		for i, example := range opts.Examples {
			fmt.Fprintf(&b, "     %d. %s\n", i+1, example)
		}
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		cyan := color.New(color.FgCyan)
		if opts.NoColor {
			cyan.DisableColor()
		}
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// WriteError writes a formatted error message to the writer
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// FormatGeneratorError renders any error for the terminal. Structured
// generator errors keep their code, subject, suggestion and examples; a
// list of several is rendered in full.
func FormatGeneratorError(err error, noColor bool) string {
	if list, ok := errors.AsList(err); ok && len(list) > 1 {
		return errors.FormatErrorList(list)
	}
	genErr, ok := errors.As(err)
	if !ok {
		return FormatError(ErrorOptions{Level: ErrorLevelError, Problem: err.Error(), NoColor: noColor})
	}

	opts := ErrorOptions{
		Level:    levelFor(genErr.Severity),
		Context:  fmt.Sprintf("%s %s", genErr.Code, strings.ReplaceAll(genErr.Type, "_", " ")),
		Problem:  genErr.Message,
		Examples: genErr.Examples,
		NoColor:  noColor,
	}

	var detail []string
	if genErr.Resource != "" {
		detail = append(detail, "resource "+genErr.Resource)
	}
	if genErr.File != "" {
		detail = append(detail, "file "+genErr.File)
	}
	if cause := genErr.Unwrap(); cause != nil {
		detail = append(detail, "cause: "+cause.Error())
	}
	opts.Detail = strings.Join(detail, ", ")

	if genErr.Suggestion != "" {
		opts.HelpCommands = append(opts.HelpCommands, genErr.Suggestion)
	}
	if genErr.Documentation != "" {
		opts.HelpCommands = append(opts.HelpCommands, "Learn more: "+genErr.Documentation)
	}
	return FormatError(opts)
}

func levelFor(severity errors.ErrorSeverity) ErrorLevel {
	switch severity {
	case errors.SeverityWarning:
		return ErrorLevelWarning
	case errors.SeverityInfo:
		return ErrorLevelInfo
	default:
		return ErrorLevelError
	}
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	return green.Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// ResourceNotFoundError reports a --resource filter that matched nothing.
func ResourceNotFoundError(name string, suggestions []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:       ErrorLevelError,
		Context:     "RESOURCE NOT FOUND",
		Problem:     fmt.Sprintf("Cannot find resource '%s'.", name),
		Suggestions: suggestions,
		HelpCommands: []string{
			"Check the resources list in your descriptor file",
			"Get help: phpgen generate --help",
		},
		NoColor: noColor,
	})
}

// LintError reports generated or hand-written PHP that failed to parse.
func LintError(file string, issues []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelError,
		Context: "SYNTAX ERROR",
		Problem: file,
		Detail:  strings.Join(issues, "\n   "),
		HelpCommands: []string{
			"Re-run with --log-level debug to trace the generating route",
		},
		NoColor: noColor,
	})
}

// Warning creates a standardized warning message
func Warning(message string, suggestions []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:       ErrorLevelWarning,
		Problem:     message,
		Suggestions: suggestions,
		NoColor:     noColor,
	})
}

// Info creates a standardized info message
func Info(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelInfo,
		Problem: message,
		NoColor: noColor,
	})
}
