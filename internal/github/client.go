package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/go-github/v81/github"
	"golang.org/x/oauth2"

	"github.com/Blazekiller8/mpgitleaks/internal/repo"
)

// Client is the external API collaborator: it lists repositories and branch
// names. Everything else the tool does to a repository happens through git.
type Client struct {
	Client *github.Client
	HTTP   *http.Client
}

type options struct {
	verbose bool
	// writer controls where verbose HTTP logs are written (typically stderr)
	// so structured output on stdout stays clean and tests can capture logs.
	writer io.Writer
}

type Option func(*options)

func WithVerbose(enabled bool, writer io.Writer) Option {
	return func(o *options) {
		o.verbose = enabled
		o.writer = writer
	}
}

// loggingRoundTripper wraps an underlying transport and emits one line per
// request and response (including latency) when verbose logging is enabled.
type loggingRoundTripper struct {
	base http.RoundTripper
	w    io.Writer
}

func (t *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	if t.w != nil {
		_, _ = fmt.Fprintf(t.w, "[verbose] github api: %s %s\n", req.Method, req.URL.String())
	}
	resp, err := t.base.RoundTrip(req)
	dur := time.Since(start)
	if t.w != nil {
		if err != nil {
			_, _ = fmt.Fprintf(t.w, "[verbose] github api: error after %s: %v\n", dur.Truncate(time.Millisecond), err)
		} else {
			_, _ = fmt.Fprintf(t.w, "[verbose] github api: %d %s (%s)\n", resp.StatusCode, http.StatusText(resp.StatusCode), dur.Truncate(time.Millisecond))
		}
	}
	return resp, err
}

func NewClient(ctx context.Context, token string, opts ...Option) (*Client, error) {
	if ctx == nil {
		return nil, fmt.Errorf("github client: ctx is nil")
	}

	o := &options{}
	for _, apply := range opts {
		if apply != nil {
			apply(o)
		}
	}
	if o.verbose && o.writer == nil {
		o.writer = os.Stderr
	}

	transport := http.DefaultTransport
	if o.verbose {
		transport = &loggingRoundTripper{base: transport, w: o.writer}
	}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		transport = &oauth2.Transport{Source: ts, Base: transport}
	}
	tc := &http.Client{Transport: transport}

	return &Client{
		Client: github.NewClient(tc),
		HTTP:   tc,
	}, nil
}

// ListBranches returns the branch names of owner/name in listing order.
// The listing order is authoritative; no sort is imposed.
func (c *Client) ListBranches(ctx context.Context, owner, name string) ([]string, error) {
	var branches []string

	opts := &github.BranchListOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for {
		page, resp, err := c.Client.Repositories.ListBranches(ctx, owner, name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list branches of %s/%s: %w", owner, name, err)
		}
		for _, b := range page {
			branches = append(branches, b.GetName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return branches, nil
}

// ListAuthenticatedRepos returns refs for every repository of the
// authenticated user, keyed by SSH clone address.
func (c *Client) ListAuthenticatedRepos(ctx context.Context) ([]repo.Ref, error) {
	var refs []repo.Ref

	opts := &github.RepositoryListByAuthenticatedUserOptions{
		ListOptions: github.ListOptions{PerPage: 100},
		Visibility:  "all",
		Affiliation: "owner",
	}
	for {
		repos, resp, err := c.Client.Repositories.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list authenticated user repos: %w", err)
		}
		refs = appendRepoRefs(refs, repos)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return refs, nil
}

// ListOrgRepos returns refs for every repository of the named organization.
func (c *Client) ListOrgRepos(ctx context.Context, org string) ([]repo.Ref, error) {
	var refs []repo.Ref

	opts := &github.RepositoryListByOrgOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for {
		repos, resp, err := c.Client.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list org repos: %w", err)
		}
		refs = appendRepoRefs(refs, repos)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return refs, nil
}

func appendRepoRefs(refs []repo.Ref, repos []*github.Repository) []repo.Ref {
	for _, r := range repos {
		refs = append(refs, repo.Ref{
			Address: r.GetSSHURL(),
			Owner:   r.GetOwner().GetLogin(),
			Name:    r.GetName(),
		})
	}
	return refs
}
