// Package semver implements the MAJOR.MINOR.PATCH version triple used by
// the bump engine. Pre-release identifiers and build metadata are
// intentionally unsupported.
package semver

import (
	"fmt"
	"strconv"
	"strings"
)

// BumpKind is the strength of a version increment.
type BumpKind int

const (
	// BumpNone means no rule matched; the scope is left unbumped.
	BumpNone BumpKind = iota
	BumpPatch
	BumpMinor
	BumpMajor
)

// String returns the lowercase name used in configuration and reports.
func (b BumpKind) String() string {
	switch b {
	case BumpMajor:
		return "major"
	case BumpMinor:
		return "minor"
	case BumpPatch:
		return "patch"
	default:
		return "none"
	}
}

// ParseBumpKind parses a bump kind from configuration. "none" is not a
// valid configuration value; it only exists as the zero value.
func ParseBumpKind(s string) (BumpKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "major":
		return BumpMajor, nil
	case "minor":
		return BumpMinor, nil
	case "patch":
		return BumpPatch, nil
	default:
		return BumpNone, fmt.Errorf("invalid bump kind: %s (must be major, minor, or patch)", s)
	}
}

// Max returns the stronger of two bump kinds.
func Max(a, b BumpKind) BumpKind {
	if a > b {
		return a
	}
	return b
}

// Version is a semver 2.0 triple restricted to MAJOR.MINOR.PATCH.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Parse parses a version string such as "1.2.3" or "v1.2.3".
//
// Parsing fails if any component is missing, negative, non-numeric, or if
// the string carries a pre-release/build suffix - those are explicitly
// unsupported.
func Parse(s string) (Version, error) {
	raw := s
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")

	if s == "" {
		return Version{}, fmt.Errorf("invalid version format: %q (expected major.minor.patch)", raw)
	}

	if strings.ContainsAny(s, "-+") {
		return Version{}, fmt.Errorf("invalid version format: %q (pre-release/build metadata not supported)", raw)
	}

	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version format: %q (expected major.minor.patch)", raw)
	}

	major, err := parseComponent(parts[0])
	if err != nil {
		return Version{}, fmt.Errorf("invalid major version in %q: %w", raw, err)
	}
	minor, err := parseComponent(parts[1])
	if err != nil {
		return Version{}, fmt.Errorf("invalid minor version in %q: %w", raw, err)
	}
	patch, err := parseComponent(parts[2])
	if err != nil {
		return Version{}, fmt.Errorf("invalid patch version in %q: %w", raw, err)
	}

	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

func parseComponent(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a non-negative integer", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%d is negative", n)
	}
	return n, nil
}

// String renders the version without a leading "v".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Bump returns a new version with kind applied. BumpNone returns v unchanged.
func (v Version) Bump(kind BumpKind) Version {
	switch kind {
	case BumpMajor:
		return Version{Major: v.Major + 1, Minor: 0, Patch: 0}
	case BumpMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1, Patch: 0}
	case BumpPatch:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	default:
		return v
	}
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater than other.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		return cmpInt(v.Major, other.Major)
	}
	if v.Minor != other.Minor {
		return cmpInt(v.Minor, other.Minor)
	}
	return cmpInt(v.Patch, other.Patch)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
