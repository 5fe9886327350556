package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Blazekiller8/mpgitleaks/internal/repo"
)

func TestCreateDirsLayout(t *testing.T) {
	base := filepath.Join(t.TempDir(), "scans")
	dirs, err := CreateDirs(base)
	if err != nil {
		t.Fatal(err)
	}

	for _, dir := range []string{dirs.Scans, dirs.Clones, dirs.Reports} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("stat %s: %v", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
	}

	// Creating again is idempotent.
	if _, err := CreateDirs(base); err != nil {
		t.Errorf("second CreateDirs failed: %v", err)
	}
}

func TestDirsOwnerScoping(t *testing.T) {
	dirs := Dirs{
		Scans:   "/s",
		Clones:  "/s/clones",
		Reports: "/s/reports",
	}
	a := repo.Ref{Owner: "acme", Name: "widgets"}
	b := repo.Ref{Owner: "other", Name: "widgets"}

	if dirs.CloneDir(a) == dirs.CloneDir(b) {
		t.Error("same-named repos from different owners must not share a clone dir")
	}
	if dirs.ReportPath(a, "main") == dirs.ReportPath(b, "main") {
		t.Error("same-named repos from different owners must not share report paths")
	}

	if got, want := dirs.CloneDir(a), filepath.Join("/s/clones", "acme", "widgets"); got != want {
		t.Errorf("CloneDir = %q, want %q", got, want)
	}
	if got, want := dirs.ReportPath(a, "main"), filepath.Join("/s/reports", "acme", "widgets-main.json"); got != want {
		t.Errorf("ReportPath = %q, want %q", got, want)
	}
}

func TestReportPathFlattensBranchSlashes(t *testing.T) {
	dirs := Dirs{Reports: "/s/reports"}
	r := repo.Ref{Owner: "acme", Name: "widgets"}
	got := dirs.ReportPath(r, "feature/login")
	if filepath.Dir(got) != filepath.Join("/s/reports", "acme") {
		t.Errorf("branch slashes must not escape the report dir: %q", got)
	}
}
