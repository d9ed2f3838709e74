package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/mvp-joe/sg-mcp/internal/pattern"
)

// Exit codes for CLI commands.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitInvalidParams = 2
)

// Color definitions for error formatting.
var (
	colorError = color.New(color.FgRed, color.Bold)
	colorKind  = color.New(color.FgYellow)
	colorFix   = color.New(color.FgGreen)
)

// formatError renders err for the terminal. Pipeline errors carry their kind
// and, when the engine is missing, the install remedy.
func formatError(err error, noColor bool) string {
	originalNoColor := color.NoColor
	defer func() { color.NoColor = originalNoColor }()

	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	var out strings.Builder
	out.WriteString(colorError.Sprint("Error: "))
	out.WriteString(err.Error())
	out.WriteString("\n")

	var pe *pattern.Error
	if errors.As(err, &pe) {
		out.WriteString(colorKind.Sprint("Kind:  "))
		out.WriteString(string(pe.Kind))
		out.WriteString("\n")
	}

	if errors.Is(err, pattern.ErrEngineUnavailable) {
		out.WriteString(colorFix.Sprint("Fix:   "))
		out.WriteString(pattern.InstallHint)
		out.WriteString("\n")
	}

	return out.String()
}

func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var pe *pattern.Error
	if errors.As(err, &pe) && pe.Kind == pattern.KindInvalidParams {
		return ExitInvalidParams
	}
	return ExitFailure
}
