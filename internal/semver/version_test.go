package semver

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Version
		wantErr bool
	}{
		{"1.2.3", Version{1, 2, 3}, false},
		{"v1.2.3", Version{1, 2, 3}, false},
		{"0.0.0", Version{0, 0, 0}, false},
		{"", Version{}, true},
		{"1.2", Version{}, true},
		{"1.2.3.4", Version{}, true},
		{"1.2.x", Version{}, true},
		{"1.2.3-rc0", Version{}, true},
		{"1.2.3+build", Version{}, true},
		{"-1.2.3", Version{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %+v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestVersion_String(t *testing.T) {
	if got := (Version{1, 2, 3}).String(); got != "1.2.3" {
		t.Errorf("String() = %q, want %q", got, "1.2.3")
	}
}

func TestVersion_Bump(t *testing.T) {
	tests := []struct {
		name string
		v    Version
		kind BumpKind
		want Version
	}{
		{"major resets minor and patch", Version{1, 2, 3}, BumpMajor, Version{2, 0, 0}},
		{"minor resets patch", Version{1, 2, 3}, BumpMinor, Version{1, 3, 0}},
		{"patch increments patch", Version{1, 2, 3}, BumpPatch, Version{1, 2, 4}},
		{"none is a no-op", Version{1, 2, 3}, BumpNone, Version{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Bump(tt.kind); got != tt.want {
				t.Errorf("Bump(%v) = %+v, want %+v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestVersion_Compare(t *testing.T) {
	tests := []struct {
		a, b Version
		want int
	}{
		{Version{1, 0, 0}, Version{1, 0, 0}, 0},
		{Version{1, 0, 0}, Version{2, 0, 0}, -1},
		{Version{2, 0, 0}, Version{1, 9, 9}, 1},
		{Version{1, 2, 0}, Version{1, 3, 0}, -1},
		{Version{1, 2, 5}, Version{1, 2, 4}, 1},
	}

	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestBumpKind_String(t *testing.T) {
	tests := map[BumpKind]string{
		BumpMajor: "major",
		BumpMinor: "minor",
		BumpPatch: "patch",
		BumpNone:  "none",
	}
	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", kind, got, want)
		}
	}
}

func TestParseBumpKind(t *testing.T) {
	valid := map[string]BumpKind{"major": BumpMajor, "minor": BumpMinor, "patch": BumpPatch}
	for s, want := range valid {
		got, err := ParseBumpKind(s)
		if err != nil {
			t.Fatalf("ParseBumpKind(%q) unexpected error: %v", s, err)
		}
		if got != want {
			t.Errorf("ParseBumpKind(%q) = %v, want %v", s, got, want)
		}
	}

	if _, err := ParseBumpKind("nonsense"); err == nil {
		t.Error("ParseBumpKind(\"nonsense\") expected error")
	}
}

func TestMax(t *testing.T) {
	if Max(BumpPatch, BumpMajor) != BumpMajor {
		t.Error("Max should return the stronger bump kind")
	}
	if Max(BumpMinor, BumpNone) != BumpMinor {
		t.Error("Max should treat BumpNone as weakest")
	}
}
