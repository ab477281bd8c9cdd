package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	debugLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#575653")).Render("DEBUG")
	infoLabel  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4385BE")).Render("INFO ")
	warnLabel  = lipgloss.NewStyle().Foreground(lipgloss.Color("#DA702C")).Bold(true).Render("WARN ")
	errorLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#D14D41")).Bold(true).Render("ERROR")
)

// consoleLogger writes engine logs with styled level labels. Debug and info
// lines are shown only in verbose mode.
type consoleLogger struct {
	w       io.Writer
	verbose bool
}

func newConsoleLogger(w io.Writer, verbose bool) *consoleLogger {
	return &consoleLogger{w: w, verbose: verbose}
}

func (l *consoleLogger) log(label, format string, args ...any) {
	fmt.Fprintf(l.w, "  %s %s\n", label, fmt.Sprintf(format, args...))
}

func (l *consoleLogger) Debugf(format string, args ...any) {
	if l.verbose {
		l.log(debugLabel, format, args...)
	}
}

func (l *consoleLogger) Infof(format string, args ...any) {
	if l.verbose {
		l.log(infoLabel, format, args...)
	}
}

func (l *consoleLogger) Warnf(format string, args ...any)  { l.log(warnLabel, format, args...) }
func (l *consoleLogger) Errorf(format string, args ...any) { l.log(errorLabel, format, args...) }
