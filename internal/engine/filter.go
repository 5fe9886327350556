package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Blazekiller8/mpgitleaks/internal/repo"
)

// Matcher keeps a repository iff it matches the include pattern and does not
// match the exclude pattern. An empty include matches all; an empty exclude
// matches none. Patterns are anchored at the start of the name. A pattern
// containing '/' is matched against the owner-qualified full name, otherwise
// against the bare repository name.
type Matcher struct {
	include *anchoredPattern
	exclude *anchoredPattern
}

type anchoredPattern struct {
	re       *regexp.Regexp
	fullName bool
}

func NewMatcher(include, exclude string) (*Matcher, error) {
	m := &Matcher{}
	var err error
	if include != "" {
		if m.include, err = compileAnchored(include); err != nil {
			return nil, fmt.Errorf("invalid include pattern: %w", err)
		}
	}
	if exclude != "" {
		if m.exclude, err = compileAnchored(exclude); err != nil {
			return nil, fmt.Errorf("invalid exclude pattern: %w", err)
		}
	}
	return m, nil
}

func compileAnchored(pattern string) (*anchoredPattern, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return nil, err
	}
	return &anchoredPattern{re: re, fullName: strings.Contains(pattern, "/")}, nil
}

func (p *anchoredPattern) match(r repo.Ref) bool {
	if p.fullName {
		return p.re.MatchString(r.FullName())
	}
	return p.re.MatchString(r.Name)
}

// Match reports whether r is kept.
func (m *Matcher) Match(r repo.Ref) bool {
	if m.include != nil && !m.include.match(r) {
		return false
	}
	if m.exclude != nil && m.exclude.match(r) {
		return false
	}
	return true
}

// FilterRepos returns the refs kept by m, preserving input order.
func FilterRepos(refs []repo.Ref, m *Matcher) []repo.Ref {
	if m == nil {
		return refs
	}
	var kept []repo.Ref
	for _, r := range refs {
		if m.Match(r) {
			kept = append(kept, r)
		}
	}
	return kept
}
