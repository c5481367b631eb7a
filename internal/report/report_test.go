package report

import (
	"encoding/json"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func TestReportSnapshots(t *testing.T) {
	t.Run("single scope patch bump, no tag created", func(t *testing.T) {
		rep := Report{
			TagCreated: false,
			NewTags:    []string{},
			VersionBumps: []VersionBump{
				{Scope: "", OldVersion: "1.0.0", NewVersion: "1.0.1", IncrementKind: "patch"},
			},
			SkippedCommits: []string{},
			Error:          "",
		}
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			t.Fatalf("MarshalIndent failed: %v", err)
		}
		snaps.MatchSnapshot(t, string(data))
	})

	t.Run("multi scope major bump with created tags and skipped commits", func(t *testing.T) {
		rep := Report{
			TagCreated: true,
			NewTags:    []string{"api/2.0.0", "worker/1.1.0"},
			VersionBumps: []VersionBump{
				{Scope: "api", OldVersion: "1.4.2", NewVersion: "2.0.0", IncrementKind: "major"},
				{Scope: "worker", OldVersion: "1.0.0", NewVersion: "1.1.0", IncrementKind: "minor"},
			},
			SkippedCommits: []string{"a1b2c3d"},
			Error:          "",
		}
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			t.Fatalf("MarshalIndent failed: %v", err)
		}
		snaps.MatchSnapshot(t, string(data))
	})
}
