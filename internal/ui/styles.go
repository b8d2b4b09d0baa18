package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all lipgloss styles for terminal output
type Styles struct {
	enabled bool

	// Severity styles
	Critical lipgloss.Style
	Strong   lipgloss.Style
	Moderate lipgloss.Style
	Optional lipgloss.Style
	Success  lipgloss.Style

	// Structural styles
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Path      lipgloss.Style
	Rule      lipgloss.Style
	Separator lipgloss.Style

	// Icons (degraded to ASCII when not interactive)
	IconCritical string
	IconStrong   string
	IconModerate string
	IconOptional string
	IconSuccess  string
}

// NewStyles creates a new Styles instance
// When enabled is false, styles return text unchanged (for non-TTY output)
func NewStyles(enabled bool) *Styles {
	s := &Styles{enabled: enabled}

	if enabled {
		// Severity styles
		s.Critical = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // Red
		s.Strong = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))   // Yellow
		s.Moderate = lipgloss.NewStyle().Foreground(lipgloss.Color("14")) // Cyan
		s.Optional = lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // Blue
		s.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))  // Green

		// Structural styles
		s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")) // White bold
		s.Subheader = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))          // Gray
		s.Path = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))               // Gray
		s.Rule = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))               // Gray
		s.Separator = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))          // Gray

		// Unicode icons
		s.IconCritical = "✗" // ✗
		s.IconStrong = "⚠"   // ⚠
		s.IconModerate = "○" // ○
		s.IconOptional = "ℹ" // ℹ
		s.IconSuccess = "✓"  // ✓
	} else {
		// No-op styles for non-TTY (plain text output)
		s.Critical = lipgloss.NewStyle()
		s.Strong = lipgloss.NewStyle()
		s.Moderate = lipgloss.NewStyle()
		s.Optional = lipgloss.NewStyle()
		s.Success = lipgloss.NewStyle()

		s.Header = lipgloss.NewStyle()
		s.Subheader = lipgloss.NewStyle()
		s.Path = lipgloss.NewStyle()
		s.Rule = lipgloss.NewStyle()
		s.Separator = lipgloss.NewStyle()

		// ASCII fallback icons
		s.IconCritical = "CRITICAL:"
		s.IconStrong = "STRONG:"
		s.IconModerate = "MODERATE:"
		s.IconOptional = "OPTIONAL:"
		s.IconSuccess = "OK:"
	}

	return s
}

// Enabled returns whether styling is enabled
func (s *Styles) Enabled() bool {
	return s.enabled
}

// SeverityStyle returns the style for a recommendation severity name.
func (s *Styles) SeverityStyle(severity string) lipgloss.Style {
	switch severity {
	case "critical":
		return s.Critical
	case "strong":
		return s.Strong
	case "moderate":
		return s.Moderate
	case "optional":
		return s.Optional
	default:
		return s.Subheader
	}
}

// SeverityIcon returns the icon for a recommendation severity name.
func (s *Styles) SeverityIcon(severity string) string {
	switch severity {
	case "critical":
		return s.IconCritical
	case "strong":
		return s.IconStrong
	case "moderate":
		return s.IconModerate
	case "optional":
		return s.IconOptional
	default:
		return s.IconOptional
	}
}

// ScoreStyle returns a style keyed to score bands: healthy, middling, weak.
func (s *Styles) ScoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 70:
		return s.Success
	case score >= 40:
		return s.Strong
	default:
		return s.Critical
	}
}
