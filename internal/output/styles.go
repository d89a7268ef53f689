package output

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: module names, class ids.
	ColorCyan = lipgloss.Color("14")

	// colorGreen is used for the "loaded" and "valid" statuses.
	colorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "loading" status.
	ColorYellow = lipgloss.Color("220")

	// colorRed is used for the "stalled" status.
	colorRed = lipgloss.Color("196")

	// colorBoldRed is used for the "failed" status (matches ERROR level).
	colorBoldRed = lipgloss.Color("204")

	// ColorMagenta is used for interfaces and abstract markers.
	ColorMagenta = lipgloss.Color("213")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (module names, class ids).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleInterface styles interface ids and the abstract marker.
	StyleInterface = lipgloss.NewStyle().Foreground(ColorMagenta)

	// StyleDim styles structural chrome (scope prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Module status words.
const (
	StatusLoaded  = "loaded"
	StatusLoading = "loading"
	StatusPending = "pending"
	StatusStalled = "stalled"
	StatusFailed  = "failed"
	StatusValid   = "valid"
)

// statusStyle returns the style for a status word. Unknown statuses are
// unstyled.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusLoaded, StatusValid:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case StatusLoading:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusPending:
		return lipgloss.NewStyle().Faint(true)
	case StatusStalled:
		return lipgloss.NewStyle().Foreground(colorRed)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(colorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minModuleColumnWidth keeps status words aligned across lines.
const minModuleColumnWidth = 40

// FormatModuleLine renders "m:<name>" with a right-aligned, color-coded
// status suffix.
func FormatModuleLine(name, status string) string {
	padding := minModuleColumnWidth - len(name)
	if padding < 2 {
		padding = 2
	}

	return StyleDim.Render("m:") +
		StyleNoun.Render(name) +
		strings.Repeat(" ", padding) +
		statusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// vetCheckColumn aligns vet details.
const vetCheckColumn = 34

// FormatVetCheck renders a passed check with an optional dim detail.
func FormatVetCheck(label, detail string) string {
	line := FormatCheckmark(label)
	if detail == "" {
		return line
	}
	padding := vetCheckColumn - len(label)
	if padding < 2 {
		padding = 2
	}
	return line + strings.Repeat(" ", padding) + StyleDim.Render(detail)
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes terminal color sequences.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
