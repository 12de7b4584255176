package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Styles used by the status tree renderer
var (
	branchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ccbf1")).Bold(true)
	trackingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9f83e4"))
	stagedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4dca7d"))
	modifiedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f5c800"))
	untrackedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f89048"))
	deletedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f46251"))
	hashStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#eb82bc"))
	dimStyle       = lipgloss.NewStyle().Faint(true)
)

// ColorEnabled reports whether stdout is a color-capable terminal
func ColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}
