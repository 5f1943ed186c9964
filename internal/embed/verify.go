package embed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v63/github"

	"git.home.luguber.info/chenyuan/blogsite/internal/foundation/errors"
)

const githubAPITimeout = 15 * time.Second

// RepositoryGetter is the slice of the GitHub repositories API the verifier needs.
type RepositoryGetter interface {
	Get(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error)
}

// Verifier checks a Binding against the live repository. The widget itself fails
// silently on a mismatched repository id; this makes the mismatch visible before
// deploying.
type Verifier struct {
	repos RepositoryGetter
}

// NewVerifier creates a verifier backed by the GitHub REST API. An empty token
// uses unauthenticated requests.
func NewVerifier(token string) *Verifier {
	client := github.NewClient(&http.Client{Timeout: githubAPITimeout})
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &Verifier{repos: client.Repositories}
}

// NewVerifierWith uses a caller-supplied repository client.
func NewVerifierWith(repos RepositoryGetter) *Verifier {
	return &Verifier{repos: repos}
}

// Report is the outcome of a verification.
type Report struct {
	Repo               string
	ExpectedRepoID     string
	ActualRepoID       string
	DiscussionsEnabled bool
	Private            bool
	Problems           []string
}

// OK reports whether no problems were found.
func (r *Report) OK() bool { return len(r.Problems) == 0 }

// Verify fetches the bound repository and compares its node id and discussion
// settings with the binding. Category ids are not exposed by the REST API and are
// not checked.
func (v *Verifier) Verify(ctx context.Context, b Binding) (*Report, error) {
	owner, name, ok := strings.Cut(b.Repo, "/")
	if !ok {
		return nil, errors.ValidationError("comments.repo must be owner/name").WithContext("repo", b.Repo).Build()
	}
	repo, resp, err := v.repos.Get(ctx, owner, name)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, errors.EmbedError("repository not found or not visible").WithContext("repo", b.Repo).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryNetwork, "fetch repository").Transient().WithContext("repo", b.Repo).Build()
	}

	report := &Report{
		Repo:               b.Repo,
		ExpectedRepoID:     b.RepoID,
		ActualRepoID:       repo.GetNodeID(),
		DiscussionsEnabled: repo.GetHasDiscussions(),
		Private:            repo.GetPrivate(),
	}
	if report.ActualRepoID != b.RepoID {
		report.Problems = append(report.Problems,
			fmt.Sprintf("repo_id %s does not match repository node id %s", b.RepoID, report.ActualRepoID))
	}
	if !report.DiscussionsEnabled {
		report.Problems = append(report.Problems, "discussions are disabled on the repository")
	}
	if report.Private {
		report.Problems = append(report.Problems, "repository is private; visitors cannot load discussions")
	}
	return report, nil
}
