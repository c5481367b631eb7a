package bump

import (
	"testing"

	"github.com/dloez/tag-track/internal/pattern"
)

func TestRenderTagName_DefaultPattern(t *testing.T) {
	name := renderTagName(`(?<version>.*)`, false, "", "1.2.3")
	if name != "1.2.3" {
		t.Errorf("got %q", name)
	}
}

func TestRenderTagName_ScopedPattern(t *testing.T) {
	name := renderTagName(`(?<scope>.*)/(?<version>.*)`, true, "api", "1.2.3")
	if name != "api/1.2.3" {
		t.Errorf("got %q", name)
	}
}

func TestRenderTagName_LiteralPrefix(t *testing.T) {
	name := renderTagName(`v(?<version>.*)`, false, "", "1.2.3")
	if name != "v1.2.3" {
		t.Errorf("got %q", name)
	}
}

func TestRenderTagName_FallsBackOnAnchors(t *testing.T) {
	name := renderTagName(`^v(?<version>.*)$`, false, "", "1.2.3")
	if name != "1.2.3" {
		t.Errorf("anchored pattern should fall back to the bare version template, got %q", name)
	}
}

func TestRenderTagName_FallsBackWithScopeTemplate(t *testing.T) {
	name := renderTagName(`^(?<scope>.+)@(?<version>.+)$`, true, "api", "1.2.3")
	if name != "api/1.2.3" {
		t.Errorf("anchored scoped pattern should fall back to scope/version template, got %q", name)
	}
}

func TestRenderTagName_RoundTrip(t *testing.T) {
	raw := `(?<scope>.*)/(?<version>.*)`
	tp, err := pattern.CompileTagPattern(raw)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	name := renderTagName(raw, true, "api", "2.3.4")
	m, ok := tp.Match(name)
	if !ok {
		t.Fatalf("rendered name %q did not match its own pattern", name)
	}
	if m.Scope != "api" || m.Version != "2.3.4" {
		t.Errorf("got %+v", m)
	}
}

func TestRenderTagMessage(t *testing.T) {
	msg := renderTagMessage("Version {version} for {scope}", "api", "1.2.3")
	if msg != "Version 1.2.3 for api" {
		t.Errorf("got %q", msg)
	}
}
