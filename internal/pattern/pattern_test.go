package pattern

import "testing"

func TestCompileTagPattern_RequiresVersionCapture(t *testing.T) {
	if _, err := CompileTagPattern(`^(?<scope>.*)$`); err == nil {
		t.Fatal("expected error for missing version capture")
	}
}

func TestCompileTagPattern_InvalidRegex(t *testing.T) {
	if _, err := CompileTagPattern(`(?<version>[`); err == nil {
		t.Fatal("expected error for invalid regex")
	}
}

func TestTagPattern_Default(t *testing.T) {
	p, err := CompileTagPattern("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, ok := p.Match("1.2.3")
	if !ok {
		t.Fatal("expected match")
	}
	if m.Version != "1.2.3" || m.Scope != "" {
		t.Errorf("got %+v", m)
	}
}

func TestTagPattern_Scoped(t *testing.T) {
	p, err := CompileTagPattern(`(?<scope>.*)/(?<version>.*)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, ok := p.Match("api/1.0.0")
	if !ok {
		t.Fatal("expected match")
	}
	if m.Scope != "api" || m.Version != "1.0.0" {
		t.Errorf("got %+v", m)
	}

	if _, ok := p.Match("no-slash-here"); ok {
		t.Error("expected no match without a slash")
	}
}

func TestCompileCommitPattern_RequiresCaptures(t *testing.T) {
	if _, err := CompileCommitPattern(`^(?<type>\w+):`); err == nil {
		t.Fatal("expected error for missing description capture")
	}
}

func TestCommitPattern_Default(t *testing.T) {
	p, err := CompileCommitPattern("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		msg      string
		wantOk   bool
		wantType string
		wantDesc string
		wantBrk  bool
		wantScp  string
		hasScp   bool
	}{
		{"feat: add thing", true, "feat", "add thing", false, "", false},
		{"feat!: rewrite", true, "feat", "rewrite", true, "", false},
		{"fix(api): bug", true, "fix", "bug", false, "api", true},
		{"malformed message", false, "", "", false, "", false},
		{"chore: x\n\nBREAKING CHANGE: api", true, "chore", "x\n\nBREAKING CHANGE: api", false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			m, ok := p.Match(tt.msg)
			if ok != tt.wantOk {
				t.Fatalf("Match(%q) ok = %v, want %v", tt.msg, ok, tt.wantOk)
			}
			if !ok {
				return
			}
			if m.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", m.Type, tt.wantType)
			}
			if m.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", m.Description, tt.wantDesc)
			}
			if m.Breaking != tt.wantBrk {
				t.Errorf("Breaking = %v, want %v", m.Breaking, tt.wantBrk)
			}
			if m.HasScope != tt.hasScp || m.Scope != tt.wantScp {
				t.Errorf("Scope = %q (has=%v), want %q (has=%v)", m.Scope, m.HasScope, tt.wantScp, tt.hasScp)
			}
		})
	}
}

func TestCommitPattern_EmptyDescriptionIsSkipped(t *testing.T) {
	p, err := CompileCommitPattern("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := p.Match("feat:"); ok {
		t.Error("expected no match when description capture is empty")
	}
}
