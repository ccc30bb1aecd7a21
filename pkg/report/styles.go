package report

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fulmenhq/ruletune/pkg/severity"
)

var (
	colorCritical      = lipgloss.Color("#EF4444")
	colorHigh          = lipgloss.Color("#F97316")
	colorMedium        = lipgloss.Color("#F59E0B")
	colorLow           = lipgloss.Color("#10B981")
	colorInformational = lipgloss.Color("#6B7280")
	colorPath          = lipgloss.Color("#7C3AED")
)

// levelStyle returns the style used for a level name.
func levelStyle(r *lipgloss.Renderer, l severity.Level) lipgloss.Style {
	s := r.NewStyle()
	switch l {
	case severity.Critical:
		return s.Foreground(colorCritical).Bold(true)
	case severity.High:
		return s.Foreground(colorHigh).Bold(true)
	case severity.Medium:
		return s.Foreground(colorMedium)
	case severity.Low:
		return s.Foreground(colorLow)
	case severity.Informational:
		return s.Foreground(colorInformational)
	default:
		return s
	}
}

func pathStyle(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Foreground(colorPath)
}
