// Package output provides terminal output formatting utilities for the relkit
// CLI. This package is designed to have minimal dependencies to avoid import
// cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintInfo prints an informational line with a dim prefix.
func PrintInfo(out io.Writer, format string, args ...any) {
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", dim("info:"), fmt.Sprintf(format, args...))
}

// PrintPackageHeader prints a colored header for a package's release run
// (e.g., "[Package 1/3] api...", or the repository root when name is empty).
func PrintPackageHeader(out io.Writer, num, total int, name string) {
	if name == "" {
		name = "(root)"
	}
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", cyan(fmt.Sprintf("[Package %d/%d]", num, total)), white(name))
}

// PrintSuccess prints a colored success message.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), cyan(message))
}

// PrintSkip prints a dim line for a package that needs no release.
func PrintSkip(out io.Writer, message string) {
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", dim("·"), dim(message))
}

// PrintNotesSeparator prints a colored horizontal rule around previewed
// release notes so they stand out from the surrounding log lines.
func PrintNotesSeparator(out io.Writer) {
	termWidth := GetTerminalWidth()
	magenta := color.New(color.FgMagenta, color.Faint).SprintFunc()

	label := " relkit "
	lineLen := (termWidth - len(label)) / 2
	if lineLen < 3 {
		lineLen = 3
	}

	line := strings.Repeat("─", lineLen)
	fmt.Fprintf(out, "%s%s%s\n", magenta(line), magenta(label), magenta(line))
}
