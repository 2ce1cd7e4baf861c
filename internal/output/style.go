// Package output is the terminal review and the migrations directory sink.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	styleHeader  = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// PHP source
	styleKeyword  = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	styleString   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleNumber   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleComment  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	styleVariable = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	styleFunction = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

var colorEnabled = detectColor()

// detectColor enables colors on a terminal unless NO_COLOR or TERM=dumb
// says otherwise.
func detectColor() bool {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return true
}

// SetColor overrides terminal detection, e.g. for --no-color.
func SetColor(enabled bool) {
	colorEnabled = enabled
}

func ColorEnabled() bool {
	return colorEnabled
}

func render(st lipgloss.Style, s string) string {
	if !colorEnabled {
		return s
	}
	return st.Render(s)
}

func Header(s string) string  { return render(styleHeader, s) }
func Warning(s string) string { return render(styleWarning, s) }
func Error(s string) string   { return render(styleError, s) }
func Success(s string) string { return render(styleSuccess, s) }
func Dim(s string) string     { return render(styleDim, s) }
