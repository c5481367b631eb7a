package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dloez/tag-track/internal/report"
	"github.com/dloez/tag-track/internal/tui"
)

// renderReport writes rep to cmd's output stream in the requested format.
// --output-format json bypasses lipgloss entirely and emits the Report
// unchanged, per spec.md §6.
func renderReport(cmd *cobra.Command, format string, rep *report.Report) error {
	out := cmd.OutOrStdout()

	if strings.EqualFold(format, "json") {
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	_, err := fmt.Fprint(out, renderText(rep))
	return err
}

func renderText(rep *report.Report) string {
	var b strings.Builder

	if len(rep.VersionBumps) == 0 {
		b.WriteString(tui.SubtleStyle.Render("No version bump computed.") + "\n")
	}
	for _, v := range rep.VersionBumps {
		b.WriteString(fmt.Sprintf("%s %s -> %s (%s)\n", scopeLabel(v.Scope), v.OldVersion, v.NewVersion, bumpKindStyle(v.IncrementKind).Render(v.IncrementKind)))
	}

	if len(rep.NewTags) > 0 {
		b.WriteString("\n" + tui.SuccessStyle.Render("Created tag(s):") + "\n")
		for _, tag := range rep.NewTags {
			b.WriteString(fmt.Sprintf("  %s\n", tag))
		}
	}

	if len(rep.SkippedCommits) > 0 {
		b.WriteString("\n" + tui.SubtleStyle.Render(fmt.Sprintf("Skipped %d commit(s) that did not match commit_pattern:", len(rep.SkippedCommits))) + "\n")
		for _, id := range rep.SkippedCommits {
			b.WriteString(tui.SubtleStyle.Render(fmt.Sprintf("  %s", id)) + "\n")
		}
	}

	if rep.Error != "" {
		b.WriteString("\n" + tui.ErrorStyle.Render("Error: "+rep.Error) + "\n")
	}

	return b.String()
}

func scopeLabel(scope string) string {
	if scope == "" {
		return "(default)"
	}
	return scope
}

func bumpKindStyle(kind string) lipgloss.Style {
	switch kind {
	case "major":
		return tui.BumpMajorStyle
	case "minor":
		return tui.BumpMinorStyle
	default:
		return tui.BumpPatchStyle
	}
}
