package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	Green     = lipgloss.Color("#22C55E")
	Amber     = lipgloss.Color("#F59E0B")
	Red       = lipgloss.Color("#EF4444")
	Blue      = lipgloss.Color("#3B82F6")
	Cyan      = lipgloss.Color("#06B6D4")
	LightGray = lipgloss.Color("#9CA3AF")
)

var (
	successStyle = lipgloss.NewStyle().Foreground(Green).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(Cyan)
	debugStyle   = lipgloss.NewStyle().Foreground(LightGray)
	warnStyle    = lipgloss.NewStyle().Foreground(Amber).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(Red).Bold(true)
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func printStyled(w io.Writer, style lipgloss.Style, format string, a ...any) {
	fmt.Fprintln(w, style.Render(fmt.Sprintf(format, a...)))
}

func Success(format string, a ...any) { printStyled(stdout, successStyle, format, a...) }
func Info(format string, a ...any)    { printStyled(stdout, infoStyle, format, a...) }
func Debug(format string, a ...any)   { printStyled(stdout, debugStyle, format, a...) }
func Warn(format string, a ...any)    { printStyled(stderr, warnStyle, format, a...) }
func Error(format string, a ...any)   { printStyled(stderr, errorStyle, format, a...) }

// Section prints a bold title followed by indented lines.
func Section(title string, lines []string) {
	fmt.Fprintln(stdout, lipgloss.NewStyle().Bold(true).Underline(true).Render(title))
	for _, line := range lines {
		fmt.Fprintln(stdout, "  "+line)
	}
}
