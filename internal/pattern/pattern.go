// Package pattern compiles the tag and commit regular expressions used to
// classify tags and conventional commits.
//
// Patterns in configuration use the `(?<name>...)` named-capture syntax
// common to PCRE/.NET/Rust regex engines (and documented in spec.md §4.2).
// Go's standard regexp package (RE2) only understands `(?P<name>...)`, so
// patterns are translated before compilation. No third-party regex library
// in the example pack offers named captures beyond what the standard
// library already provides, so regexp is used as-is rather than pulled in
// as an extra dependency.
package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultTagPattern is used when configuration omits tag_pattern.
const DefaultTagPattern = `(?<version>.*)`

// DefaultCommitPattern is used when configuration omits commit_pattern.
const DefaultCommitPattern = `^(?<type>[a-zA-Z]*)(?<scope>\(.*\))?(?<breaking>!)?:(?<description>[\s\S]*)$`

var namedCaptureRewrite = regexp.MustCompile(`\(\?<([a-zA-Z_][a-zA-Z0-9_]*)>`)

func toRE2(pattern string) string {
	return namedCaptureRewrite.ReplaceAllString(pattern, "(?P<$1>")
}

func compile(pattern string, required ...string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(toRE2(pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
	}

	names := make(map[string]bool)
	for _, n := range re.SubexpNames() {
		if n != "" {
			names[n] = true
		}
	}
	for _, name := range required {
		if !names[name] {
			return nil, fmt.Errorf("pattern %q is missing required named capture group %q", pattern, name)
		}
	}
	return re, nil
}

// TagMatch is the result of matching a tag name against a TagPattern.
type TagMatch struct {
	Scope   string
	Version string
}

// TagPattern matches tag names and extracts the version (required) and
// scope (optional) named captures.
type TagPattern struct {
	raw      string
	re       *regexp.Regexp
	hasScope bool
}

// CompileTagPattern compiles pattern, failing if the required "version"
// capture group is absent.
func CompileTagPattern(raw string) (*TagPattern, error) {
	if raw == "" {
		raw = DefaultTagPattern
	}
	re, err := compile(raw, "version")
	if err != nil {
		return nil, err
	}
	return &TagPattern{raw: raw, re: re, hasScope: hasGroup(re, "scope")}, nil
}

// Raw returns the pattern string as configured, in `(?<name>...)` syntax,
// before RE2 translation. Used to mechanically invert the pattern when
// rendering a tag name for a given scope and version.
func (p *TagPattern) Raw() string {
	return p.raw
}

// HasScope reports whether the pattern declares a "scope" capture group.
func (p *TagPattern) HasScope() bool {
	return p.hasScope
}

// Match matches tagName against the pattern. ok is false if the tag does
// not match at all; the tag should be ignored for this run in that case.
func (p *TagPattern) Match(tagName string) (m TagMatch, ok bool) {
	groups := p.re.FindStringSubmatch(tagName)
	if groups == nil {
		return TagMatch{}, false
	}

	m.Version = groupValue(p.re, groups, "version")
	if p.hasScope {
		m.Scope = groupValue(p.re, groups, "scope")
	}
	return m, true
}

// CommitMatch is the result of matching a commit message against a CommitPattern.
type CommitMatch struct {
	Type        string
	Scope       string
	HasScope    bool
	Breaking    bool
	Description string
}

// CommitPattern matches conventional-commit-style messages and extracts
// type and description (required), plus scope and breaking (optional).
type CommitPattern struct {
	re          *regexp.Regexp
	hasScope    bool
	hasBreaking bool
}

// CompileCommitPattern compiles pattern, failing if the required "type" or
// "description" capture groups are absent.
func CompileCommitPattern(raw string) (*CommitPattern, error) {
	if raw == "" {
		raw = DefaultCommitPattern
	}
	re, err := compile(raw, "type", "description")
	if err != nil {
		return nil, err
	}
	return &CommitPattern{
		re:          re,
		hasScope:    hasGroup(re, "scope"),
		hasBreaking: hasGroup(re, "breaking"),
	}, nil
}

// Match matches message against the pattern. ok is false on a mismatch -
// the caller should record a SkippedCommit.
func (p *CommitPattern) Match(message string) (m CommitMatch, ok bool) {
	groups := p.re.FindStringSubmatch(message)
	if groups == nil {
		return CommitMatch{}, false
	}

	m.Type = strings.TrimSpace(groupValue(p.re, groups, "type"))

	if p.hasScope {
		raw := groupValue(p.re, groups, "scope")
		if raw != "" {
			m.HasScope = true
			m.Scope = strings.TrimSpace(strings.Trim(raw, "()"))
		}
	}

	if p.hasBreaking {
		m.Breaking = groupValue(p.re, groups, "breaking") != ""
	}

	rawDescription := groupValue(p.re, groups, "description")
	if rawDescription == "" {
		return CommitMatch{}, false
	}
	m.Description = strings.TrimSpace(rawDescription)
	return m, true
}

func hasGroup(re *regexp.Regexp, name string) bool {
	for _, n := range re.SubexpNames() {
		if n == name {
			return true
		}
	}
	return false
}

func groupValue(re *regexp.Regexp, groups []string, name string) string {
	idx := re.SubexpIndex(name)
	if idx < 0 || idx >= len(groups) {
		return ""
	}
	return groups[idx]
}
