package engine

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Blazekiller8/mpgitleaks/internal/config"
	"github.com/Blazekiller8/mpgitleaks/internal/repo"
)

// RepoLister is the slice of the API collaborator used for repository
// discovery.
type RepoLister interface {
	ListAuthenticatedRepos(ctx context.Context) ([]repo.Ref, error)
	ListOrgRepos(ctx context.Context, org string) ([]repo.Ref, error)
}

// ResolveRepos produces the candidate repository set from the configured
// source: the authenticated user's repositories, an organization's
// repositories, or a newline-delimited address file.
func ResolveRepos(ctx context.Context, lister RepoLister, cfg *config.Config) ([]repo.Ref, error) {
	switch {
	case cfg.Source.User:
		refs, err := lister.ListAuthenticatedRepos(ctx)
		if err != nil {
			return nil, err
		}
		return refs, nil
	case cfg.Source.Org != "":
		refs, err := lister.ListOrgRepos(ctx, cfg.Source.Org)
		if err != nil {
			return nil, err
		}
		return refs, nil
	default:
		return ReadRepoFile(cfg.Source.File)
	}
}

// ReadRepoFile parses a repository ref from every non-blank line of path.
// Lines starting with '#' are skipped.
func ReadRepoFile(path string) ([]repo.Ref, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("the repos file %q cannot be read: %w", path, err)
	}
	defer f.Close()

	var refs []repo.Ref
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ref, err := repo.ParseAddress(line)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		refs = append(refs, ref)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return refs, nil
}
