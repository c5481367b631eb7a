package bump

import (
	"context"
	"fmt"
	"sort"

	"github.com/dloez/tag-track/internal/bumperr"
	"github.com/dloez/tag-track/internal/pattern"
	"github.com/dloez/tag-track/internal/report"
	"github.com/dloez/tag-track/internal/rules"
	"github.com/dloez/tag-track/internal/semver"
)

// Config configures an Engine. It is the fully-resolved form of a loaded
// configuration file - defaults are already applied by the caller.
type Config struct {
	TagPattern    string
	CommitPattern string
	BumpRules     []rules.Rule
	VersionScopes []string
	NewTagMessage string
}

// ScopeState tracks one scope's baseline and accumulated bump across a run.
type ScopeState struct {
	Scope               string
	BaselineVersion     semver.Version
	BaselineCommitID    string
	hasBaseline         bool
	Accumulated         semver.BumpKind
	ContributingCommits []string
}

// PendingTag is a scope's materialized new tag, staged for optional
// creation.
type PendingTag struct {
	Scope    string
	Version  semver.Version
	CommitID string
	Name     string
	Message  string
}

// Engine is the bump engine orchestrator described by spec.md §4.5. It is
// stateless between runs: all per-run state lives in a call to Run.
type Engine struct {
	tagPattern    *pattern.TagPattern
	commitPattern *pattern.CommitPattern
	rules         []rules.Rule
	scopes        []string
	newTagMessage string
}

// New constructs an Engine, compiling both patterns. It returns a
// bumperr.ConfigError if either pattern is invalid or missing a required
// capture group.
func New(cfg Config) (*Engine, error) {
	tp, err := pattern.CompileTagPattern(cfg.TagPattern)
	if err != nil {
		return nil, bumperr.Wrap(bumperr.ConfigError, err, "invalid tag_pattern")
	}
	cp, err := pattern.CompileCommitPattern(cfg.CommitPattern)
	if err != nil {
		return nil, bumperr.Wrap(bumperr.ConfigError, err, "invalid commit_pattern")
	}

	scopes := cfg.VersionScopes
	if len(scopes) == 0 {
		scopes = []string{""}
	}

	return &Engine{
		tagPattern:    tp,
		commitPattern: cp,
		rules:         cfg.BumpRules,
		scopes:        scopes,
		newTagMessage: cfg.NewTagMessage,
	}, nil
}

// Run executes one pass of the bump engine against src, resolving targetCommit
// via src.ResolveHead when empty, and optionally creating the resulting tags.
//
// Run never panics across its public contract: failures are returned both
// as a typed error and mirrored into the returned Report's Error field, so
// callers that only care about the machine-readable report (e.g. the
// --output-format json CLI path) don't need to inspect the error value.
func (e *Engine) Run(ctx context.Context, src Source, targetCommit string, createTags bool) (*report.Report, error) {
	rep := &report.Report{NewTags: []string{}, VersionBumps: []report.VersionBump{}, SkippedCommits: []string{}}

	target := targetCommit
	if target == "" {
		resolved, err := src.ResolveHead(ctx)
		if err != nil {
			wrapped := bumperr.Wrap(bumperr.InputError, err, "failed to resolve head commit")
			rep.Error = wrapped.Error()
			return rep, wrapped
		}
		target = resolved
	}

	states := make(map[string]*ScopeState, len(e.scopes))
	for _, scope := range e.scopes {
		states[scope] = &ScopeState{Scope: scope}
	}

	if err := e.discoverBaselines(ctx, src, target, states); err != nil {
		rep.Error = err.Error()
		return rep, err
	}

	var missing []string
	for _, scope := range e.scopes {
		if !states[scope].hasBaseline {
			missing = append(missing, scope)
		}
	}
	if len(missing) > 0 {
		err := bumperr.New(bumperr.MissingBaseline, "no reachable baseline tag for scope(s): %v", missing)
		rep.Error = err.Error()
		return rep, err
	}

	skipped := make(map[string]bool)
	for _, scope := range e.scopes {
		state := states[scope]
		if err := e.traverseScope(ctx, src, state, states, target, skipped); err != nil {
			rep.Error = err.Error()
			return rep, err
		}
	}

	for _, id := range sortedKeys(skipped) {
		rep.SkippedCommits = append(rep.SkippedCommits, id)
	}

	pending := e.materializePendingTags(states, target)
	renderPendingMessages(pending, e.newTagMessage)

	for _, p := range pending {
		rep.VersionBumps = append(rep.VersionBumps, report.VersionBump{
			Scope:         p.Scope,
			OldVersion:    states[p.Scope].BaselineVersion.String(),
			NewVersion:    p.Version.String(),
			IncrementKind: states[p.Scope].Accumulated.String(),
		})
	}

	if createTags && len(pending) > 0 {
		if err := e.createTags(ctx, src, pending, rep); err != nil {
			rep.Error = err.Error()
			return rep, err
		}
		rep.TagCreated = len(rep.NewTags) > 0
	}

	return rep, nil
}

// discoverBaselines consumes src.ClosestTags(target) in increasing-distance
// order, recording the first matching tag per configured scope as that
// scope's baseline, per spec.md §4.5 step 2.
func (e *Engine) discoverBaselines(ctx context.Context, src Source, target string, states map[string]*ScopeState) error {
	it, err := src.ClosestTags(ctx, target)
	if err != nil {
		return classifySourceErr(err, fmt.Sprintf("failed to list tags reachable from %s", target))
	}

	remaining := len(states)
	for remaining > 0 {
		tag, ok, err := it.Next()
		if err != nil {
			return classifySourceErr(err, "failed to enumerate tags")
		}
		if !ok {
			break
		}

		m, matched := e.tagPattern.Match(tag.Name)
		if !matched {
			continue
		}
		scope := ""
		if e.tagPattern.HasScope() {
			scope = m.Scope
		}
		state, configured := states[scope]
		if !configured || state.hasBaseline {
			continue
		}

		version, err := semver.Parse(m.Version)
		if err != nil {
			continue
		}

		state.BaselineVersion = version
		state.BaselineCommitID = tag.CommitID
		state.hasBaseline = true
		remaining--
	}

	return nil
}

// traverseScope streams commits_between(baseline, target) for one scope and
// routes each matched commit's bump to the ScopeState(s) it affects, per the
// routing rule in spec.md §3: a scoped commit updates only its own scope's
// state, an unscoped commit reaches every configured scope. Each scope's
// traversal applies commits only to that scope's own state, so an unscoped
// commit bumps exactly the scopes whose baseline-to-target range contains it.
func (e *Engine) traverseScope(ctx context.Context, src Source, state *ScopeState, states map[string]*ScopeState, target string, skipped map[string]bool) error {
	it, err := src.CommitsBetween(ctx, state.BaselineCommitID, target)
	if err != nil {
		return classifySourceErr(err, fmt.Sprintf("failed to list commits for scope %q", state.Scope))
	}

	sawHead := state.BaselineCommitID == target
	for {
		commit, ok, err := it.Next()
		if err != nil {
			return classifySourceErr(err, fmt.Sprintf("failed to stream commits for scope %q", state.Scope))
		}
		if !ok {
			break
		}
		if commit.ID == target {
			sawHead = true
		}

		m, matched := e.commitPattern.Match(commit.Message)
		if !matched {
			skipped[commit.ID] = true
			continue
		}

		bumpKind := rules.Evaluate(e.rules, m)
		if bumpKind == semver.BumpNone {
			continue
		}

		var targets []*ScopeState
		switch {
		case !m.HasScope:
			// every other scope applies this commit in its own traversal
			// if it lies within that scope's range.
			targets = []*ScopeState{state}
		case m.Scope == state.Scope:
			targets = []*ScopeState{state}
		default:
			// commit is scoped to another scope (configured or not), so it
			// contributes nothing here. A configured scope it belongs to
			// picks it up during its own traversal.
			continue
		}

		for _, t := range targets {
			t.Accumulated = semver.Max(t.Accumulated, bumpKind)
			t.ContributingCommits = append(t.ContributingCommits, commit.ID)
		}
	}

	if !sawHead {
		return bumperr.New(bumperr.IncompleteHistory, "commit stream for scope %q ended before reaching target %s", state.Scope, target)
	}
	return nil
}

// materializePendingTags builds the PendingTag set per spec.md §4.5 step 4,
// in deterministic scope-config order.
func (e *Engine) materializePendingTags(states map[string]*ScopeState, target string) []PendingTag {
	var pending []PendingTag
	for _, scope := range e.scopes {
		state := states[scope]
		if state.Accumulated == semver.BumpNone {
			continue
		}
		newVersion := state.BaselineVersion.Bump(state.Accumulated)
		name := renderTagName(e.tagPattern.Raw(), e.tagPattern.HasScope(), scope, newVersion.String())
		pending = append(pending, PendingTag{
			Scope:    scope,
			Version:  newVersion,
			CommitID: target,
			Name:     name,
		})
	}
	return pending
}

// createTags invokes src.CreateTag for each pending tag in order, stopping
// and reporting on the first failure per spec.md §4.5 step 5. Each tag's
// message has already been rendered by renderPendingMessages.
func (e *Engine) createTags(ctx context.Context, src Source, pending []PendingTag, rep *report.Report) error {
	for _, p := range pending {
		if err := ctx.Err(); err != nil {
			return bumperr.Wrap(bumperr.SourceTransient, err, "tag creation cancelled before %s", p.Name)
		}
		if err := src.CreateTag(ctx, p.CommitID, p.Name, p.Message); err != nil {
			return classifySourceErr(err, fmt.Sprintf("failed to create tag %q", p.Name))
		}
		rep.NewTags = append(rep.NewTags, p.Name)
	}
	return nil
}

// renderPendingMessages resolves each PendingTag's message from template.
func renderPendingMessages(pending []PendingTag, template string) {
	for i := range pending {
		pending[i].Message = renderTagMessage(template, pending[i].Scope, pending[i].Version.String())
	}
}

func classifySourceErr(err error, msg string) error {
	if bumperr.Is(err, bumperr.SourceTransient) || bumperr.Is(err, bumperr.SourceFatal) || bumperr.Is(err, bumperr.TagConflict) {
		return err
	}
	return bumperr.Wrap(bumperr.SourceFatal, err, "%s", msg)
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
