// Package bump implements the bump engine: the orchestrator that walks a
// repository's history from each scope's baseline tag to a target commit,
// classifies commits, evaluates bump rules, and materializes the resulting
// version bumps and (optionally) new tags. It is grounded on the
// orchestration style of the teacher's internal/cli/version.go, generalized
// from a single-project changeset workflow to the multi-scope source
// abstraction described by the original tag-track implementation's
// source/mod.rs.
package bump

import "context"

// Tag is a single tag reachable from a commit, as reported by a Source.
type Tag struct {
	Name     string
	CommitID string
}

// RawCommit is a single commit in a Source's history, before pattern
// matching is applied.
type RawCommit struct {
	ID      string
	Message string
}

// TagIterator streams tags in order of increasing distance from the commit
// passed to Source.ClosestTags, closest first. Next returns ok=false with a
// nil error once the stream is exhausted normally.
type TagIterator interface {
	Next() (Tag, bool, error)
}

// CommitIterator streams commits strictly after a baseline commit, up to and
// including the head commit, ordered oldest-to-newest (ancestry path only, per spec.md §4.4).
// Next returns ok=false with a nil error once the stream is exhausted.
type CommitIterator interface {
	Next() (RawCommit, bool, error)
}

// Source abstracts the repository backend the engine walks: a local git
// checkout via os/exec, or a remote GitHub repository via its REST API.
// Every method is given a context so long-running network operations can be
// cancelled by the caller.
type Source interface {
	// ClosestTags returns tags reachable from commitID, ordered closest
	// first. The engine stops consuming the iterator once every configured
	// scope has found a baseline.
	ClosestTags(ctx context.Context, commitID string) (TagIterator, error)

	// CommitsBetween streams the commits on the ancestry path strictly
	// after baselineCommitID, up to and including headCommitID.
	CommitsBetween(ctx context.Context, baselineCommitID, headCommitID string) (CommitIterator, error)

	// CreateTag creates an annotated tag named tagName at commitID with the
	// given message. It returns a bumperr.TagConflict error if the tag
	// already exists.
	CreateTag(ctx context.Context, commitID, tagName, message string) error

	// ResolveHead resolves the Source's default target commit, used when
	// the caller does not pin one explicitly.
	ResolveHead(ctx context.Context) (string, error)
}
