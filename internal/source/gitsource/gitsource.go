// Package gitsource implements bump.Source against the local git
// installation via os/exec, grounded on the teacher's internal/git/os.go
// (OSGitClient's exec.CommandContext + bytes.Buffer pattern) and on the
// original tag-track implementation's git.rs (describe/rev-list/log command
// shapes), generalized from a single-tag lookup to the multi-scope,
// distance-ordered iteration the bump engine requires.
package gitsource

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/dloez/tag-track/internal/bump"
	"github.com/dloez/tag-track/internal/bumperr"
)

// Source implements bump.Source against the git repository rooted at Dir
// (the current working directory when Dir is empty).
type Source struct {
	Dir string
}

// New returns a Source rooted at dir. dir may be empty to use the process's
// current working directory.
func New(dir string) *Source {
	return &Source{Dir: dir}
}

func (s *Source) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = s.Dir

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(out.String()), nil
}

// ResolveHead returns the current HEAD commit SHA, grounded on the original
// implementation's get_current_commit_sha (git rev-parse HEAD).
func (s *Source) ResolveHead(ctx context.Context) (string, error) {
	out, err := s.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", bumperr.Wrap(bumperr.InputError, err, "failed to resolve HEAD")
	}
	return out, nil
}

// ClosestTags lists every tag merged into commitID, ordered by increasing
// ancestor distance from commitID. The original implementation only ever
// needed the single closest tag (git describe --abbrev=0 --tags); Tag
// Track's multi-scope baseline discovery needs every candidate ranked, so
// this lists tags via for-each-ref and ranks each by `git rev-list --count`.
// Annotated tags are peeled so each Tag carries the commit it points to.
func (s *Source) ClosestTags(ctx context.Context, commitID string) (bump.TagIterator, error) {
	out, err := s.run(ctx, "for-each-ref", "refs/tags", "--merged", commitID, "--format=%(refname:short)%09%(objectname)%09%(*objectname)")
	if err != nil {
		return nil, bumperr.Wrap(bumperr.SourceFatal, err, "failed to list tags merged into %s", commitID)
	}

	type candidate struct {
		tag      bump.Tag
		distance int
	}
	var candidates []candidate

	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 3)
		if len(fields) < 2 {
			continue
		}
		name, commit := fields[0], fields[1]
		if len(fields) == 3 && fields[2] != "" {
			commit = fields[2]
		}

		count, err := s.run(ctx, "rev-list", "--count", commit+".."+commitID)
		if err != nil {
			return nil, bumperr.Wrap(bumperr.SourceFatal, err, "failed to compute distance for tag %q", name)
		}
		distance, err := strconv.Atoi(count)
		if err != nil {
			return nil, bumperr.Wrap(bumperr.SourceFatal, err, "unexpected rev-list output for tag %q: %q", name, count)
		}

		candidates = append(candidates, candidate{tag: bump.Tag{Name: name, CommitID: commit}, distance: distance})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	tags := make([]bump.Tag, len(candidates))
	for i, c := range candidates {
		tags[i] = c.tag
	}
	return &tagIterator{tags: tags}, nil
}

// CommitsBetween streams commits strictly after baselineCommitID up to and
// including headCommitID, oldest first, following only the ancestry path
// from baseline to head - grounded on the original's get_commit_messages
// (git log --ancestry-path), extended with --reverse for parent-first order
// and %H to carry the commit id the engine needs.
func (s *Source) CommitsBetween(ctx context.Context, baselineCommitID, headCommitID string) (bump.CommitIterator, error) {
	rangeArg := baselineCommitID + ".." + headCommitID
	out, err := s.run(ctx, "log", "--format=%H%x1f%s", "--ancestry-path", "--reverse", rangeArg)
	if err != nil {
		return nil, bumperr.Wrap(bumperr.SourceFatal, err, "failed to list commits between %s and %s", baselineCommitID, headCommitID)
	}

	var commits []bump.RawCommit
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "\x1f", 2)
		if len(fields) != 2 {
			continue
		}
		commits = append(commits, bump.RawCommit{ID: fields[0], Message: fields[1]})
	}

	return &commitIterator{commits: commits}, nil
}

// CreateTag creates an annotated tag at commitID, grounded on the
// original's create_tag (git tag -a <tag> -m <message>), extended with an
// explicit target commit since the engine may tag a commit other than HEAD.
func (s *Source) CreateTag(ctx context.Context, commitID, tagName, message string) error {
	_, err := s.run(ctx, "tag", "-a", tagName, "-m", message, commitID)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return bumperr.Wrap(bumperr.TagConflict, err, "tag %q already exists", tagName)
		}
		return bumperr.Wrap(bumperr.SourceFatal, err, "failed to create tag %q", tagName)
	}
	return nil
}

type tagIterator struct {
	tags []bump.Tag
	pos  int
}

func (it *tagIterator) Next() (bump.Tag, bool, error) {
	if it.pos >= len(it.tags) {
		return bump.Tag{}, false, nil
	}
	tag := it.tags[it.pos]
	it.pos++
	return tag, true, nil
}

type commitIterator struct {
	commits []bump.RawCommit
	pos     int
}

func (it *commitIterator) Next() (bump.RawCommit, bool, error) {
	if it.pos >= len(it.commits) {
		return bump.RawCommit{}, false, nil
	}
	c := it.commits[it.pos]
	it.pos++
	return c, true, nil
}
