// Package githubsource implements bump.Source against the GitHub REST API,
// grounded on the teacher's internal/github/client.go (go-github + oauth2
// wiring, NewClient/NewClientWithoutAuth/NewClientFromEnv shape) and on the
// original tag-track implementation's source/github.rs, which hand-rolled
// pagination and ancestor tracking that go-github already does idiomatically:
// Repositories.ListTags and Repositories.CompareCommits replace the
// original's per-page RefIterator and its version_scopes bookkeeping.
package githubsource

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/dloez/tag-track/internal/bump"
	"github.com/dloez/tag-track/internal/bumperr"
)

// ErrGitHubTokenNotFound mirrors the teacher's sentinel for a missing token,
// returned from create-tag calls when no token was configured.
var ErrGitHubTokenNotFound = fmt.Errorf("a GitHub token is required to create tags; pass --github-token or set GITHUB_TOKEN/GH_TOKEN")

// Source implements bump.Source against a single GitHub repository.
type Source struct {
	client     *github.Client
	owner      string
	repo       string
	authorized bool
}

// New returns a Source for owner/repo. A non-empty token authorizes
// requests (required for CreateTag); apiURL overrides the API base for
// GitHub Enterprise, honoring the GITHUB_API_URL the CLI wrapper forwards.
func New(owner, repo, token, apiURL string) (*Source, error) {
	var client *github.Client
	if token != "" {
		ctx := context.Background()
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		tc := oauth2.NewClient(ctx, ts)
		client = github.NewClient(tc)
	} else {
		client = github.NewClient(nil)
	}

	if apiURL != "" {
		enterprise, err := client.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, bumperr.Wrap(bumperr.ConfigError, err, "invalid GitHub API URL %q", apiURL)
		}
		client = enterprise
	}

	return &Source{client: client, owner: owner, repo: repo, authorized: token != ""}, nil
}

// ResolveHead resolves the repository's default branch HEAD commit SHA,
// grounded on the teacher's GetRepository call.
func (s *Source) ResolveHead(ctx context.Context) (string, error) {
	repository, _, err := s.client.Repositories.Get(ctx, s.owner, s.repo)
	if err != nil {
		return "", bumperr.Wrap(bumperr.SourceFatal, err, "failed to get repository %s/%s", s.owner, s.repo)
	}

	ref, _, err := s.client.Git.GetRef(ctx, s.owner, s.repo, "refs/heads/"+repository.GetDefaultBranch())
	if err != nil {
		return "", bumperr.Wrap(bumperr.SourceFatal, err, "failed to resolve default branch %q", repository.GetDefaultBranch())
	}

	return ref.GetObject().GetSHA(), nil
}

// ClosestTags lists every tag in the repository and ranks it by ancestor
// distance to commitID using Repositories.CompareCommits, which reports the
// exact ahead-by count when the tag is a strict ancestor. Tags that are not
// ancestors of commitID (diverged or behind) are excluded.
func (s *Source) ClosestTags(ctx context.Context, commitID string) (bump.TagIterator, error) {
	allTags, err := s.listAllTags(ctx)
	if err != nil {
		return nil, err
	}

	type candidate struct {
		tag      bump.Tag
		distance int
	}
	var candidates []candidate

	for _, t := range allTags {
		comparison, _, err := s.client.Repositories.CompareCommits(ctx, s.owner, s.repo, t.GetCommit().GetSHA(), commitID, nil)
		if err != nil {
			return nil, classifyAPIErr(err, fmt.Sprintf("failed to compare tag %q against %s", t.GetName(), commitID))
		}

		switch comparison.GetStatus() {
		case "identical", "ahead":
			candidates = append(candidates, candidate{
				tag:      bump.Tag{Name: t.GetName(), CommitID: t.GetCommit().GetSHA()},
				distance: comparison.GetAheadBy(),
			})
		default: // "behind" or "diverged": tag is not an ancestor of commitID
		}
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

func (s *Source) listAllTags(ctx context.Context) ([]*github.RepositoryTag, error) {
	var all []*github.RepositoryTag
	opts := &github.ListOptions{PerPage: 100}
	for {
		tags, resp, err := s.client.Repositories.ListTags(ctx, s.owner, s.repo, opts)
		if err != nil {
			return nil, classifyAPIErr(err, "failed to list tags")
		}
		all = append(all, tags...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// CommitsBetween streams the commits strictly after baselineCommitID up to
// and including headCommitID via Repositories.CompareCommits, whose Commits
// field is already ordered oldest-first and excludes the base commit -
// exactly the contract spec.md §4.4 requires, with none of the original's
// hand-rolled page-and-scope bookkeeping needed.
func (s *Source) CommitsBetween(ctx context.Context, baselineCommitID, headCommitID string) (bump.CommitIterator, error) {
	var commits []bump.RawCommit
	opts := &github.ListOptions{PerPage: 100}
	for {
		comparison, resp, err := s.client.Repositories.CompareCommits(ctx, s.owner, s.repo, baselineCommitID, headCommitID, opts)
		if err != nil {
			return nil, classifyAPIErr(err, fmt.Sprintf("failed to compare %s..%s", baselineCommitID, headCommitID))
		}
		for _, c := range comparison.Commits {
			commits = append(commits, bump.RawCommit{ID: c.GetSHA(), Message: c.GetCommit().GetMessage()})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return &commitIterator{commits: commits}, nil
}

// CreateTag creates an annotated tag via the two-step git data API (create
// the tag object, then the refs/tags ref pointing at it), grounded on the
// original implementation's create_tag, which performs the same two REST
// calls by hand with reqwest.
func (s *Source) CreateTag(ctx context.Context, commitID, tagName, message string) error {
	if !s.authorized {
		return bumperr.Wrap(bumperr.SourceFatal, ErrGitHubTokenNotFound, "cannot create tag %q", tagName)
	}

	commitType := "commit"
	tagObj, _, err := s.client.Git.CreateTag(ctx, s.owner, s.repo, &github.Tag{
		Tag:     github.String(tagName),
		Message: github.String(message),
		Object: &github.GitObject{
			SHA:  github.String(commitID),
			Type: github.String(commitType),
		},
	})
	if err != nil {
		return classifyAPIErr(err, fmt.Sprintf("failed to create git tag object %q", tagName))
	}

	ref := "refs/tags/" + tagName
	_, _, err = s.client.Git.CreateRef(ctx, s.owner, s.repo, &github.Reference{
		Ref:    github.String(ref),
		Object: &github.GitObject{SHA: tagObj.SHA},
	})
	if err != nil {
		return classifyAPIErr(err, fmt.Sprintf("failed to create ref %q", ref))
	}

	return nil
}

func classifyAPIErr(err error, msg string) error {
	if strings.Contains(err.Error(), "422") || strings.Contains(err.Error(), "already exists") {
		return bumperr.Wrap(bumperr.TagConflict, err, "%s", msg)
	}
	if rateLimited(err) {
		return bumperr.Wrap(bumperr.SourceTransient, err, "%s", msg)
	}
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) {
		if respErr.Response != nil && respErr.Response.StatusCode >= 500 {
			return bumperr.Wrap(bumperr.SourceTransient, err, "%s", msg)
		}
	} else if urlErr := (*url.Error)(nil); errors.As(err, &urlErr) {
		return bumperr.Wrap(bumperr.SourceTransient, err, "%s", msg)
	}
	return bumperr.Wrap(bumperr.SourceFatal, err, "%s", msg)
}

func rateLimited(err error) bool {
	_, isRateLimit := err.(*github.RateLimitError)
	_, isAbuseLimit := err.(*github.AbuseRateLimitError)
	return isRateLimit || isAbuseLimit
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
