package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Blazekiller8/mpgitleaks/internal/repo"
)

// Dirs holds the three working paths shared by all workers. Each worker only
// writes under owner-scoped subdirectories, so same-named repositories from
// different owners never collide on disk.
type Dirs struct {
	Scans   string
	Clones  string
	Reports string
}

// CreateDirs creates the scans/clones/reports layout under base.
func CreateDirs(base string) (Dirs, error) {
	d := Dirs{
		Scans:   base,
		Clones:  filepath.Join(base, "clones"),
		Reports: filepath.Join(base, "reports"),
	}
	for _, dir := range []string{d.Scans, d.Clones, d.Reports} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Dirs{}, fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return d, nil
}

// CloneParent is the directory a repository is cloned into (git creates the
// repo-named directory below it).
func (d Dirs) CloneParent(r repo.Ref) string {
	return filepath.Join(d.Clones, r.Owner)
}

// CloneDir is the repository's local clone directory.
func (d Dirs) CloneDir(r repo.Ref) string {
	return filepath.Join(d.CloneParent(r), r.Name)
}

// ReportDir is the directory a repository's branch reports are written to.
func (d Dirs) ReportDir(r repo.Ref) string {
	return filepath.Join(d.Reports, r.Owner)
}

// ReportPath is the gitleaks report artifact path for one branch. Slashes in
// branch names are flattened so the path stays inside the report directory.
func (d Dirs) ReportPath(r repo.Ref, branch string) string {
	safe := strings.ReplaceAll(branch, "/", "-")
	return filepath.Join(d.ReportDir(r), r.Name+"-"+safe+".json")
}
