// Package tui holds the lipgloss styles shared by the CLI's text-mode
// report rendering, kept as its own package the way the teacher separates
// styling from command wiring.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Error styling
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	// Success styling
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	// Subtle text styling, used for skipped-commit listings
	SubtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	// BumpMajorStyle colors a major increment in the version bump table.
	BumpMajorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	// BumpMinorStyle colors a minor increment in the version bump table.
	BumpMinorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	// BumpPatchStyle colors a patch increment in the version bump table.
	BumpPatchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)
)
