// Package rules evaluates bump rules against a parsed commit, grounded on
// the original tag-track implementation's version.rs::bump_version loop.
package rules

import (
	"strings"

	"github.com/dloez/tag-track/internal/pattern"
	"github.com/dloez/tag-track/internal/semver"
)

// breakingDescriptionMarkers are the substrings that mark a commit
// description as a breaking change per the Conventional Commits convention.
var breakingDescriptionMarkers = []string{"BREAKING CHANGE", "BREAKING-CHANGE"}

// Rule is one bump rule. A rule passes a commit iff every present
// condition passes; a rule with no present conditions always passes.
type Rule struct {
	Bump                  semver.BumpKind
	Types                 []string
	Scopes                []string
	IfBreakingType        *bool
	IfBreakingDescription *bool
}

// Matches reports whether r passes for the given parsed commit.
func (r Rule) Matches(c pattern.CommitMatch) bool {
	if len(r.Types) > 0 && !containsExact(r.Types, c.Type) {
		return false
	}

	if len(r.Scopes) > 0 {
		scope := ""
		if c.HasScope {
			scope = c.Scope
		}
		if !containsExact(r.Scopes, scope) {
			return false
		}
	}

	if r.IfBreakingType != nil && c.Breaking != *r.IfBreakingType {
		return false
	}

	if r.IfBreakingDescription != nil {
		if hasBreakingDescription(c.Description) != *r.IfBreakingDescription {
			return false
		}
	}

	return true
}

func hasBreakingDescription(description string) bool {
	for _, marker := range breakingDescriptionMarkers {
		if strings.Contains(description, marker) {
			return true
		}
	}
	return false
}

func containsExact(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// Evaluate returns the strongest bump kind contributed by any rule that
// passes for c. It returns semver.BumpNone if no rule passes.
func Evaluate(rules []Rule, c pattern.CommitMatch) semver.BumpKind {
	strongest := semver.BumpNone
	for _, rule := range rules {
		if rule.Matches(c) {
			strongest = semver.Max(strongest, rule.Bump)
		}
	}
	return strongest
}

// Default returns the default rule set from spec.md §6. Breaking-type and
// breaking-description are two independent rules: either signal alone
// triggers major, so a commit only needs to carry one of the two.
func Default() []Rule {
	breakingTrue := true
	return []Rule{
		{Bump: semver.BumpPatch, Types: []string{"fix", "style"}},
		{Bump: semver.BumpMinor, Types: []string{"feat", "refactor", "perf"}},
		{Bump: semver.BumpMajor, IfBreakingType: &breakingTrue},
		{Bump: semver.BumpMajor, IfBreakingDescription: &breakingTrue},
	}
}
