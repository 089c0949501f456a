// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides user interface utilities for the methodsig CLI.
//
// This package offers color output helpers that respect the --no-color flag
// and NO_COLOR environment variable. Colors are automatically disabled when
// the output is not a TTY (e.g., when piped).
//
// Color usage guidelines:
//   - Red: Errors, malformed signatures
//   - Yellow: Warnings, rejected inputs, return types
//   - Green: Success, parsed signatures
//   - Cyan: Info, counts, access modifiers
//   - Bold: Headers, method names
//   - Dim: Less important details, paths
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/kraklabs/methodsig/pkg/sigparse"
)

// Pre-configured color instances for consistent CLI output.
var (
	// Red is used for error messages and failures.
	Red = color.New(color.FgRed)

	// Yellow is used for warnings and cautions.
	Yellow = color.New(color.FgYellow)

	// Green is used for success messages and completions.
	Green = color.New(color.FgGreen)

	// Cyan is used for informational messages.
	Cyan = color.New(color.FgCyan)

	// Bold is used for headers and important labels.
	Bold = color.New(color.Bold)

	// Dim is used for less important details like paths.
	Dim = color.New(color.Faint)
)

// Output receives everything the message helpers print.
var Output io.Writer = color.Output

// InitColors configures global color output based on the noColor flag.
//
// This should be called early in main() after parsing flags. fatih/color
// already honours NO_COLOR and non-TTY output; noColor only ever turns
// colors off.
func InitColors(noColor bool) {
	if noColor {
		color.NoColor = true
	}
}

// Success prints a green success message with a checkmark prefix.
//
// Example output: "✓ Wrote .methodsig.yaml"
func Success(msg string) {
	_, _ = Green.Fprintln(Output, "✓ "+msg)
}

// Successf prints a formatted green success message with a checkmark prefix.
func Successf(format string, args ...any) {
	_, _ = Green.Fprintf(Output, "✓ "+format+"\n", args...)
}

// Warningf prints a formatted yellow warning message with a warning symbol prefix.
func Warningf(format string, args ...any) {
	_, _ = Yellow.Fprintf(Output, "⚠ "+format+"\n", args...)
}

// Errorf prints a formatted red error message with an X prefix.
func Errorf(format string, args ...any) {
	_, _ = Red.Fprintf(Output, "✗ "+format+"\n", args...)
}

// Info prints a cyan informational message with an info symbol prefix.
func Info(msg string) {
	_, _ = Cyan.Fprintln(Output, "ℹ "+msg)
}

// Infof prints a formatted cyan informational message with an info symbol prefix.
func Infof(format string, args ...any) {
	_, _ = Cyan.Fprintf(Output, "ℹ "+format+"\n", args...)
}

// Header prints a bold header with an underline separator.
//
// Example output:
//
//	Scan Summary
//	============
func Header(text string) {
	_, _ = Bold.Fprintln(Output, text)
	_, _ = fmt.Fprintln(Output, strings.Repeat("=", len(text)))
}

// SubHeader prints a bold sub-header without an underline.
func SubHeader(text string) {
	_, _ = Bold.Fprintln(Output, text)
}

// Label returns a bold-formatted label string for inline use.
//
// Example: fmt.Printf("%s %s\n", ui.Label("Parsed:"), n)
func Label(text string) string {
	return Bold.Sprint(text)
}

// DimText returns a dim-formatted string for less important text.
func DimText(text string) string {
	return Dim.Sprint(text)
}

// CountText returns a cyan-formatted count value for statistics display.
func CountText(count int) string {
	return Cyan.Sprint(count)
}

// Location returns "path:line" dimmed. A zero line prints the path alone.
func Location(path string, line int) string {
	if line <= 0 {
		return Dim.Sprint(path)
	}
	return Dim.Sprintf("%s:%d", path, line)
}

// SignatureText renders sig in canonical form with the access modifier in
// cyan, the return type in yellow and the method name in bold. With colors
// disabled it equals sig.String().
func SignatureText(sig sigparse.Signature) string {
	var b strings.Builder
	if sig.HasAccessModifier() {
		b.WriteString(Cyan.Sprint(sig.AccessModifier))
		b.WriteByte(' ')
	}
	b.WriteString(Yellow.Sprint(sig.ReturnType))
	b.WriteByte(' ')
	b.WriteString(Bold.Sprint(sig.MethodName))
	b.WriteByte('(')
	for i, arg := range sig.Arguments {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(Yellow.Sprint(arg.Type))
		b.WriteByte(' ')
		b.WriteString(arg.Name)
	}
	b.WriteByte(')')
	return b.String()
}

// StatusText returns a fixed-width colored status tag: "ok", "malformed" or
// "rejected". Unknown values are returned unchanged.
func StatusText(status string) string {
	switch status {
	case "parsed":
		return Green.Sprintf("%-9s", "ok")
	case "malformed":
		return Red.Sprintf("%-9s", "malformed")
	case "rejected":
		return Yellow.Sprintf("%-9s", "rejected")
	default:
		return status
	}
}
