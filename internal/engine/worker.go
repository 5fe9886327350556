package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Blazekiller8/mpgitleaks/internal/execx"
	"github.com/Blazekiller8/mpgitleaks/internal/progress"
	"github.com/Blazekiller8/mpgitleaks/internal/repo"
	"github.com/Blazekiller8/mpgitleaks/internal/scan"
)

// BranchLister is the slice of the API collaborator the worker needs: the
// remote branch names of one repository, in listing order.
type BranchLister interface {
	ListBranches(ctx context.Context, owner, name string) ([]string, error)
}

// Worker executes one assignment: it clones each repository it is handed,
// iterates its branches, runs the scan tool per branch, and accumulates a
// partial result map. Command failures (clone, checkout, scan) are recorded
// as scan outcomes; only a failed branch listing aborts the worker.
type Worker struct {
	Lister       BranchLister
	Runner       execx.Runner
	Dirs         Dirs
	Progress     *progress.Reporter
	Log          *slog.Logger
	ScanThreads  int
	QueueTimeout time.Duration
}

// Run consumes one assignment and returns the worker's partial result map.
func (w *Worker) Run(ctx context.Context, a Assignment) (scan.ResultMap, error) {
	w.Progress.Identity(a.Label())

	switch a := a.(type) {
	case DirectAssignment:
		return w.scanRepo(ctx, a.Ref)
	case QueuedAssignment:
		return w.drainQueue(ctx, a.Queue)
	default:
		return nil, fmt.Errorf("unknown assignment type %T", a)
	}
}

// drainQueue pulls repositories off the shared queue until the idle timeout
// fires, accumulating one result map across everything this worker drained.
func (w *Worker) drainQueue(ctx context.Context, q *Queue) (scan.ResultMap, error) {
	results := make(scan.ResultMap)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ref, ok := q.TryGet(w.QueueTimeout)
		if !ok {
			w.Log.Debug("queue drained, worker terminating")
			return results, nil
		}
		part, err := w.scanRepo(ctx, ref)
		if err != nil {
			return nil, err
		}
		for k, v := range part {
			results[k] = v
		}
	}
}

func (w *Worker) scanRepo(ctx context.Context, ref repo.Ref) (scan.ResultMap, error) {
	log := w.Log.With("repo", ref.FullName())
	log.Debug("processing repo")
	w.Progress.Identity(ref.FullName())

	branches, err := w.Lister.ListBranches(ctx, ref.Owner, ref.Name)
	if err != nil {
		return nil, fmt.Errorf("listing branches of %s: %w", ref.FullName(), err)
	}

	// One clone plus checkout and scan per branch; declared up front so a
	// progress display can size itself.
	total := 2*len(branches) + 1
	w.Progress.Total(total)
	log.Debug("processing commands", "total", total)

	cloneDir := w.Dirs.CloneDir(ref)
	// Stale clones from earlier runs are removed; a missing directory is fine.
	if err := os.RemoveAll(cloneDir); err != nil {
		return nil, fmt.Errorf("removing stale clone %s: %w", cloneDir, err)
	}
	for _, dir := range []string{w.Dirs.CloneParent(ref), w.Dirs.ReportDir(ref)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	if _, err := w.Runner.Run(ctx, w.Dirs.CloneParent(ref), "git", "clone", ref.Address); err != nil {
		log.Warn("clone did not run", "error", err)
	}
	w.Progress.Increment()

	results := make(scan.ResultMap)
	for _, branch := range branches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		log.Debug("processing branch", "branch", branch)

		// A failed checkout is not classified specially: the scan below
		// fails or no-ops and the branch is recorded like any scan failure.
		if _, err := w.Runner.Run(ctx, cloneDir, "git", "checkout", "-b", branch, "origin/"+branch); err != nil {
			log.Warn("checkout did not run", "branch", branch, "error", err)
		}
		w.Progress.Increment()

		report := w.Dirs.ReportPath(ref, branch)
		code, err := w.Runner.Run(ctx, cloneDir, "gitleaks",
			"--path=.",
			"--branch="+branch,
			"--report="+report,
			fmt.Sprintf("--threads=%d", w.ScanThreads),
		)
		w.Progress.Increment()

		key := ref.ResultKey(branch)
		switch {
		case err != nil:
			// The scan never produced an exit status (missing clone dir,
			// per-command timeout). Recorded as a failure for the branch.
			log.Warn("scan did not complete", "branch", branch, "error", err)
			results[key] = report
		case code == 0:
			results[key] = ""
		default:
			// Any nonzero exit is a finding; the report path is the artifact.
			results[key] = report
		}
		log.Debug("branch complete", "branch", branch, "passed", results[key] == "")
	}

	log.Debug("repo complete")
	return results, nil
}
