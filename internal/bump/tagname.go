package bump

import "strings"

// literalSafeOutsideGroup is the set of characters the mechanical pattern
// inverter tolerates outside of the scope/version capture groups. Anything
// else is regex syntax (anchors, quantifiers, character classes) that has
// no literal meaning in a tag name, so its presence sends rendering to the
// documented fallback template instead of producing a mangled name.
func literalSafeOutsideGroup(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '-' || r == '.' || r == '/' || r == '@':
		return true
	}
	return false
}

// captureGroupSpan is a `(?<name>...)` span found in a raw, pre-RE2 pattern
// string, recorded as a half-open byte range over the original string.
type captureGroupSpan struct {
	name       string
	start, end int
}

// findCaptureGroups scans raw for `(?<name>...)` groups, returning their
// spans in order of appearance. It tracks nested parens so that a group
// containing its own sub-groups is captured as a single span.
func findCaptureGroups(raw string) []captureGroupSpan {
	var spans []captureGroupSpan
	i := 0
	for i < len(raw) {
		if !strings.HasPrefix(raw[i:], "(?<") {
			i++
			continue
		}
		start := i
		nameStart := i + 3
		nameEnd := strings.IndexByte(raw[nameStart:], '>')
		if nameEnd < 0 {
			break
		}
		nameEnd += nameStart
		name := raw[nameStart:nameEnd]

		depth := 1
		j := nameEnd + 1
		for ; j < len(raw) && depth > 0; j++ {
			switch raw[j] {
			case '\\':
				j++ // skip escaped char
			case '(':
				depth++
			case ')':
				depth--
			}
		}
		if depth != 0 {
			break // unbalanced; bail, caller falls back to template
		}
		spans = append(spans, captureGroupSpan{name: name, start: start, end: j})
		i = j
	}
	return spans
}

// renderTagName computes the tag name for scope and version given the raw
// tag pattern the engine was configured with, per spec.md §4.6. It tries a
// mechanical inversion of the pattern first (substituting the literal
// scope/version values into their capture group positions) and falls back
// to the documented template when the pattern cannot be safely inverted -
// e.g. it uses anchors, quantifiers, or character classes outside the named
// groups, or names groups the inverter does not recognize.
func renderTagName(rawTagPattern string, hasScope bool, scope, version string) string {
	if name, ok := invertTagPattern(rawTagPattern, scope, version); ok {
		return name
	}
	if hasScope && scope != "" {
		return scope + "/" + version
	}
	return version
}

func invertTagPattern(raw string, scope, version string) (string, bool) {
	spans := findCaptureGroups(raw)
	if len(spans) == 0 {
		return "", false
	}

	var b strings.Builder
	pos := 0
	for _, span := range spans {
		literal := raw[pos:span.start]
		for _, r := range literal {
			if !literalSafeOutsideGroup(r) {
				return "", false
			}
		}
		b.WriteString(literal)

		switch span.name {
		case "version":
			b.WriteString(version)
		case "scope":
			b.WriteString(scope)
		default:
			// An unrecognized named group (anything other than the two the
			// engine cares about) makes the pattern unsafe to invert
			// mechanically: we have no literal value to substitute.
			return "", false
		}
		pos = span.end
	}

	trailing := raw[pos:]
	for _, r := range trailing {
		if !literalSafeOutsideGroup(r) {
			return "", false
		}
	}
	b.WriteString(trailing)

	return b.String(), true
}

// renderTagMessage substitutes {scope} and {version} placeholders in a
// configured message template. It is intentionally a plain substitution
// rather than text/template: the template syntax in configuration files is
// the literal `{scope}`/`{version}` placeholders documented in spec.md §6,
// not Go template directives.
func renderTagMessage(template, scope, version string) string {
	replacer := strings.NewReplacer("{scope}", scope, "{version}", version)
	return replacer.Replace(template)
}
