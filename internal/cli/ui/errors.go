package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/conduit-lang/paramgen/pkg/arguments"
)

// ErrorLevel represents the severity of a message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

// ErrorOptions configures error message formatting
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Problem      string
	Details      []string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

// FormatError renders a message with optional details, suggestions and help
// commands.
//
// Example output:
//
//	❌ FUNCTION NOT FOUND: Serch
//	   No function named 'Serch' in package app.
//
//	   Did you mean: Search?
//
//	   → List functions: paramgen inspect
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	var header, body *color.Color
	var symbol string
	switch opts.Level {
	case ErrorLevelWarning:
		header, body, symbol = color.New(color.FgYellow, color.Bold), color.New(color.FgYellow), "⚠️"
	case ErrorLevelInfo:
		header, body, symbol = color.New(color.FgCyan, color.Bold), color.New(color.FgCyan), "ℹ️"
	default:
		header, body, symbol = color.New(color.FgRed, color.Bold), color.New(color.FgRed), "❌"
	}
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)
	if opts.NoColor {
		for _, c := range []*color.Color{header, body, yellow, cyan} {
			c.DisableColor()
		}
	}

	if opts.Context != "" {
		header.Fprintf(&b, "%s %s\n", symbol, strings.ToUpper(opts.Context))
		body.Fprintf(&b, "   %s\n", opts.Problem)
	} else {
		header.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	if len(opts.Details) > 0 {
		b.WriteString("\n")
		for _, d := range opts.Details {
			fmt.Fprintf(&b, "   %s\n", d)
		}
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		yellow.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// GenerationError renders an argument generation failure
func GenerationError(err *arguments.GenerationError, noColor bool) string {
	opts := ErrorOptions{
		Level:   ErrorLevelError,
		Context: fmt.Sprintf("%s [%s]", err.Function, err.Code),
		Problem: err.Message,
		NoColor: noColor,
	}

	param := fmt.Sprintf("Parameter: #%d", err.Position)
	if err.Parameter != "" {
		param += " " + err.Parameter
	}
	opts.Details = append(opts.Details, param)
	if err.Type != "" {
		opts.Details = append(opts.Details, "Type:      "+err.Type)
	}
	if err.Suggestion != "" {
		opts.Details = append(opts.Details, "", "Suggestion: "+err.Suggestion)
	}

	if err.Code == arguments.ErrAbstractInput {
		opts.HelpCommands = []string{"Mark struct types abstract: abstract_types in paramgen.yml"}
	}
	opts.HelpCommands = append(opts.HelpCommands, "Inspect parameters: paramgen inspect --func "+err.Function)
	return FormatError(opts)
}

// FunctionNotFoundError reports an unknown --func value
func FunctionNotFoundError(name, pkg string, suggestions []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:        ErrorLevelError,
		Context:      "FUNCTION NOT FOUND: " + name,
		Problem:      fmt.Sprintf("No function named '%s' in package %s.", name, pkg),
		Suggestions:  suggestions,
		HelpCommands: []string{"List functions: paramgen inspect"},
		NoColor:      noColor,
	})
}

// LoadError reports a package that could not be loaded
func LoadError(dir string, err error, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelError,
		Context: "LOAD FAILED",
		Problem: err.Error(),
		Details: []string{"Directory: " + dir},
		HelpCommands: []string{
			"Check the package compiles: go vet " + dir,
			"Get help: paramgen inspect --help",
		},
		NoColor: noColor,
	})
}

// ConfigError reports an invalid configuration
func ConfigError(err error, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelError,
		Context: "CONFIGURATION ERROR",
		Problem: err.Error(),
		HelpCommands: []string{
			"View config: cat paramgen.yml",
			"Get help: paramgen --help",
		},
		NoColor: noColor,
	})
}

// Warning creates a warning message
func Warning(message string, noColor bool) string {
	return FormatError(ErrorOptions{Level: ErrorLevelWarning, Problem: message, NoColor: noColor})
}
