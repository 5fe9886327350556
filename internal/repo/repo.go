// Package repo defines the work item model: one repository's clone address
// and the identity derived from it.
package repo

import (
	"fmt"
	"strings"
)

// Ref identifies one repository to scan. Owner and Name are derived from
// Address by ParseAddress and never change after construction.
type Ref struct {
	Address string
	Owner   string
	Name    string
}

// FullName returns the owner-qualified repository name ("owner/name").
func (r Ref) FullName() string {
	return r.Owner + "/" + r.Name
}

// ResultKey returns the aggregation key for one scanned branch.
// Keys are unique per (repository, branch) pair across a run.
func (r Ref) ResultKey(branch string) string {
	return r.FullName() + ":" + branch
}

// ParseAddress derives a Ref from a clone address.
//
// The parsing rule is fixed: the owner is the first path segment after the
// host separator (':' for SSH addresses, the host component for URLs), the
// name is the last '/' segment with a trailing ".git" stripped.
//
//	git@github.com:acme/widgets.git -> acme/widgets
//	https://github.com/acme/widgets -> acme/widgets
func ParseAddress(address string) (Ref, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Ref{}, fmt.Errorf("empty repository address")
	}

	path := address
	if _, after, ok := strings.Cut(address, ":"); ok {
		path = after
	}
	path = strings.Trim(path, "/")
	parts := strings.Split(path, "/")
	if strings.Contains(address, "://") && len(parts) > 2 {
		// URL addresses carry a host component before owner/name; drop it.
		parts = parts[1:]
	}
	if len(parts) < 2 {
		return Ref{}, fmt.Errorf("invalid repository address %q: expected owner/name", address)
	}

	owner := parts[0]
	name := strings.TrimSuffix(parts[len(parts)-1], ".git")
	if owner == "" || name == "" {
		return Ref{}, fmt.Errorf("invalid repository address %q: expected owner/name", address)
	}

	return Ref{Address: address, Owner: owner, Name: name}, nil
}
