package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

func renderStatusLine(label string, ok bool, message string, colorize bool) string {
	status, color := "ERROR", ansiRed
	if ok {
		status, color = "OK", ansiGreen
	}
	statusText := fmt.Sprintf("[%s]", status)
	if message != "" {
		statusText = fmt.Sprintf("[%s] %s", status, message)
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		return color + base + ansiReset
	}
	return base
}

// renderDiagnostics lists unparsed references under the heading the
// handlist editors search for in run output.
func renderDiagnostics(refs []string, colorize bool) []string {
	if len(refs) == 0 {
		return nil
	}
	heading := "Failed to parse these manuscript references:"
	if colorize {
		heading = ansiYellow + heading + ansiReset
	}
	lines := make([]string, 0, len(refs)+1)
	lines = append(lines, heading)
	return append(lines, refs...)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
