// Package cli wraps the bump engine in a single cobra command, grounded on
// the teacher's internal/cli/root.go wiring style (a constructor taking
// already-built collaborators, plus a package-level Execute for main.go),
// generalized from a multi-subcommand changeset workflow down to the one
// "compute and optionally apply a version bump" operation spec.md §6
// describes.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dloez/tag-track/internal/filesystem"
)

// NewRootCommand builds the tagtrack command against fs, used directly by
// tests and indirectly by Execute against the real OS filesystem.
func NewRootCommand(fs filesystem.FileSystem) *cobra.Command {
	opts := &runOptions{}

	rootCmd := &cobra.Command{
		Use:   "tagtrack",
		Short: "Compute and tag semantic version bumps from Conventional Commits",
		Long: `tagtrack inspects commits since the closest reachable tag for each
configured scope, classifies them against configurable bump rules, and
reports - or creates - the resulting version tags.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, fs, opts)
		},
	}

	rootCmd.Flags().StringVar(&opts.configPath, "config", "", "path to a track.yml/track.yaml configuration file (default: auto-discover in the current directory)")
	rootCmd.Flags().BoolVar(&opts.createTag, "create-tag", false, "create the computed tag(s) via the resolved source")
	rootCmd.Flags().BoolVar(&opts.yes, "yes", false, "skip the interactive confirmation before creating tags")
	rootCmd.Flags().StringVar(&opts.githubRepo, "github-repo", "", "owner/repo; when set, the GitHub REST API backend is used instead of the local git repository")
	rootCmd.Flags().StringVar(&opts.githubToken, "github-token", "", "GitHub token; falls back to GITHUB_TOKEN or GH_TOKEN")
	rootCmd.Flags().StringVar(&opts.commitSHA, "commit-sha", "", "target commit; falls back to GITHUB_SHA, then the source's resolved HEAD")
	rootCmd.Flags().StringVar(&opts.outputFormat, "output-format", "text", "output format: text or json")

	return rootCmd
}

// Execute runs the root command against the real filesystem, the
// entrypoint main.go invokes.
func Execute() error {
	fs := filesystem.NewOSFileSystem()
	rootCmd := NewRootCommand(fs)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}
	return nil
}

type runOptions struct {
	configPath   string
	createTag    bool
	yes          bool
	githubRepo   string
	githubToken  string
	commitSHA    string
	outputFormat string
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
