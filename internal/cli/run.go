package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dloez/tag-track/internal/bump"
	"github.com/dloez/tag-track/internal/config"
	"github.com/dloez/tag-track/internal/filesystem"
	"github.com/dloez/tag-track/internal/report"
	"github.com/dloez/tag-track/internal/source/githubsource"
	"github.com/dloez/tag-track/internal/source/gitsource"
)

// runRoot resolves configuration and a Source from opts, runs the bump
// engine once, and renders the resulting Report, matching the teacher's
// single Run(cmd, args) handler shape per subcommand.
func runRoot(cmd *cobra.Command, fs filesystem.FileSystem, opts *runOptions) error {
	cwd, err := fs.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	configPath := opts.configPath
	if configPath == "" {
		if found, ok := config.Find(fs); ok {
			configPath = found
		}
	}

	cfg, err := config.Load(fs, configPath, cwd)
	if err != nil {
		return renderAndReturn(cmd, opts.outputFormat, failureReport(err))
	}

	engine, err := bump.New(cfg)
	if err != nil {
		return renderAndReturn(cmd, opts.outputFormat, failureReport(err))
	}

	src, err := resolveSource(opts, cwd)
	if err != nil {
		return renderAndReturn(cmd, opts.outputFormat, failureReport(err))
	}

	targetCommit := opts.commitSHA
	if targetCommit == "" {
		targetCommit = os.Getenv("GITHUB_SHA")
	}

	createTag := opts.createTag
	if createTag && !opts.yes {
		confirmed, err := confirmTagCreation(cmd)
		if err != nil {
			return renderAndReturn(cmd, opts.outputFormat, failureReport(err))
		}
		if !confirmed {
			createTag = false
		}
	}

	rep, runErr := engine.Run(context.Background(), src, targetCommit, createTag)
	if renderErr := renderReport(cmd, opts.outputFormat, rep); renderErr != nil {
		return renderErr
	}
	if runErr != nil {
		return runErr
	}
	return nil
}

// resolveSource builds the local git backend by default, or the GitHub
// REST backend when --github-repo is present, mirroring the teacher's
// split between internal/git.OSGitClient and internal/github.NewClient.
func resolveSource(opts *runOptions, cwd string) (bump.Source, error) {
	if opts.githubRepo == "" {
		return gitsource.New(cwd), nil
	}

	owner, repo, ok := strings.Cut(opts.githubRepo, "/")
	if !ok {
		return nil, fmt.Errorf("invalid --github-repo %q, expected owner/repo", opts.githubRepo)
	}

	token := opts.githubToken
	if token == "" {
		token = envOrDefault("GITHUB_TOKEN", os.Getenv("GH_TOKEN"))
	}
	apiURL := os.Getenv("GITHUB_API_URL")

	return githubsource.New(owner, repo, token, apiURL)
}

func failureReport(err error) *report.Report {
	return &report.Report{
		NewTags:        []string{},
		VersionBumps:   []report.VersionBump{},
		SkippedCommits: []string{},
		Error:          err.Error(),
	}
}

func renderAndReturn(cmd *cobra.Command, format string, rep *report.Report) error {
	if err := renderReport(cmd, format, rep); err != nil {
		return err
	}
	return errors.New(rep.Error)
}
