// Package config loads the YAML configuration document described in
// spec.md §6, grounded on the original tag-track implementation's
// config.rs (file discovery, defaults-by-omission) and on the teacher's
// internal/filesystem abstraction for testable file access.
package config

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/dloez/tag-track/internal/bumperr"
	"github.com/dloez/tag-track/internal/bump"
	"github.com/dloez/tag-track/internal/filesystem"
	"github.com/dloez/tag-track/internal/pattern"
	"github.com/dloez/tag-track/internal/rules"
	"github.com/dloez/tag-track/internal/scopeinfer"
	"github.com/dloez/tag-track/internal/semver"
)

// FileNames are checked in order in the current directory, matching the
// original implementation's is_config_available.
var FileNames = []string{"track.yml", "track.yaml"}

// DefaultNewTagMessage is used when new_tag_message is omitted.
const DefaultNewTagMessage = "Version {version}"

// rawRule mirrors the YAML shape of one bump_rules entry.
type rawRule struct {
	Bump                  string   `yaml:"bump"`
	Types                 []string `yaml:"types"`
	Scopes                []string `yaml:"scopes"`
	IfBreakingType        *bool    `yaml:"if_breaking_type"`
	IfBreakingDescription *bool    `yaml:"if_breaking_description"`
}

// document mirrors the top-level YAML shape from spec.md §6.
type document struct {
	TagPattern    *string   `yaml:"tag_pattern"`
	CommitPattern *string   `yaml:"commit_pattern"`
	BumpRules     []rawRule `yaml:"bump_rules"`
	VersionScopes []string  `yaml:"version_scopes"`
	NewTagMessage *string   `yaml:"new_tag_message"`
}

// Find returns the path to the first configuration file present in the
// current directory, or ok=false if none of FileNames exist.
func Find(fsys filesystem.FileSystem) (path string, ok bool) {
	for _, name := range FileNames {
		if fsys.Exists(name) {
			return name, true
		}
	}
	return "", false
}

// Load reads and parses the configuration file at path, applying defaults
// for any omitted key per spec.md §6. A path of "" returns the all-defaults
// configuration, matching the original implementation's Config::new(). root
// is the repository root to probe for a go.work file when version_scopes is
// omitted entirely; pass "" to skip workspace inference.
func Load(fsys filesystem.FileSystem, path, root string) (bump.Config, error) {
	if path == "" {
		return applyScopeInference(fsys, root, Defaults()), nil
	}

	raw, err := fsys.ReadFile(path)
	if err != nil {
		return bump.Config{}, bumperr.Wrap(bumperr.ConfigError, err, "failed to read configuration file %q", path)
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return bump.Config{}, bumperr.Wrap(bumperr.ConfigError, err, "failed to parse configuration file %q", path)
	}

	cfg, err := fromDocument(doc)
	if err != nil {
		return bump.Config{}, err
	}

	if doc.VersionScopes == nil {
		cfg = applyScopeInference(fsys, root, cfg)
	}
	return cfg, nil
}

// applyScopeInference overrides cfg's default version_scopes with the
// workspace-derived scopes when root contains a go.work file. It is a best-
// effort convenience: a malformed go.work is ignored rather than failing
// the whole configuration load, since version_scopes always has a valid
// documented default.
func applyScopeInference(fsys filesystem.FileSystem, root string, cfg bump.Config) bump.Config {
	if root == "" {
		return cfg
	}
	scopes, ok, err := scopeinfer.Infer(fsys, root)
	if err != nil || !ok {
		return cfg
	}
	cfg.VersionScopes = scopes
	return cfg
}

// Defaults returns the configuration that applies when no configuration
// file is present.
func Defaults() bump.Config {
	return bump.Config{
		TagPattern:    pattern.DefaultTagPattern,
		CommitPattern: pattern.DefaultCommitPattern,
		BumpRules:     rules.Default(),
		VersionScopes: []string{""},
		NewTagMessage: DefaultNewTagMessage,
	}
}

func fromDocument(doc document) (bump.Config, error) {
	cfg := Defaults()

	if doc.TagPattern != nil {
		cfg.TagPattern = *doc.TagPattern
	}
	if doc.CommitPattern != nil {
		cfg.CommitPattern = *doc.CommitPattern
	}
	if doc.NewTagMessage != nil {
		cfg.NewTagMessage = *doc.NewTagMessage
	}
	if len(doc.VersionScopes) > 0 {
		cfg.VersionScopes = doc.VersionScopes
	}

	if len(doc.BumpRules) > 0 {
		parsedRules := make([]rules.Rule, 0, len(doc.BumpRules))
		for i, rr := range doc.BumpRules {
			bumpKind, err := semver.ParseBumpKind(rr.Bump)
			if err != nil {
				return bump.Config{}, bumperr.Wrap(bumperr.ConfigError, err, "bump_rules[%d] has an invalid bump kind %q", i, rr.Bump)
			}
			parsedRules = append(parsedRules, rules.Rule{
				Bump:                  bumpKind,
				Types:                 rr.Types,
				Scopes:                rr.Scopes,
				IfBreakingType:        rr.IfBreakingType,
				IfBreakingDescription: rr.IfBreakingDescription,
			})
		}
		cfg.BumpRules = parsedRules
	}

	return cfg, nil
}

// String renders cfg's patterns and version scopes as a one-line,
// debug-friendly description.
func String(cfg bump.Config) string {
	return fmt.Sprintf("tag_pattern=%q commit_pattern=%q version_scopes=%v", cfg.TagPattern, cfg.CommitPattern, cfg.VersionScopes)
}
