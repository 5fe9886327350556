package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/Blazekiller8/mpgitleaks/internal/config"
	"github.com/Blazekiller8/mpgitleaks/internal/execx"
	applog "github.com/Blazekiller8/mpgitleaks/internal/log"
	"github.com/Blazekiller8/mpgitleaks/internal/output"
	"github.com/Blazekiller8/mpgitleaks/internal/progress"
	"github.com/Blazekiller8/mpgitleaks/internal/scan"
)

// Exit code contract:
// 0 = orchestration completed; leak findings are data, reported in the summary
// 1 = fatal error: precondition failure or a worker structural error
func exitCodeForRun(fatal bool) int {
	if fatal {
		return 1
	}
	return 0
}

// Engine wires discovery, distribution, the worker pool and aggregation into
// one run. The API collaborator and the command runner are interfaces so runs
// can be exercised without network or external tools.
type Engine struct {
	Repos    RepoLister
	Branches BranchLister
	Runner   execx.Runner
	Log      *slog.Logger
}

func New(repos RepoLister, branches BranchLister, runner execx.Runner, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = applog.Discard()
	}
	return &Engine{Repos: repos, Branches: branches, Runner: runner, Log: logger}
}

func setupOutputManager(cfg *config.Config) (*output.Manager, error) {
	outMgr := output.NewManager()

	if err := outMgr.AddSink(output.NewConsoleSink(nil)); err != nil {
		outMgr.Close()
		return nil, err
	}
	if cfg.Output.Emit == "ndjson" {
		if err := outMgr.AddSink(output.NewStreamSink(os.Stdout)); err != nil {
			outMgr.Close()
			return nil, err
		}
	}
	if cfg.Output.Out != "" {
		fs, err := output.NewFileSink(cfg.Output.Out, cfg.Output.OutFormat)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(fs); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	return outMgr, nil
}

func (e *Engine) fatalf(format string, args ...any) int {
	err := fmt.Errorf(format, args...)
	e.Log.Error("run failed", "error", err)
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return exitCodeForRun(true)
}

// Run executes a full scan: resolve and filter the repository set, build the
// distribution plan, run the worker pool, merge partial results, and emit the
// summary. Any worker structural error fails the whole run once all workers
// have been joined.
func (e *Engine) Run(ctx context.Context, cfg *config.Config) int {
	matcher, err := NewMatcher(cfg.Filter.Include, cfg.Filter.Exclude)
	if err != nil {
		return e.fatalf("%v", err)
	}

	refs, err := ResolveRepos(ctx, e.Repos, cfg)
	if err != nil {
		return e.fatalf("resolving repositories: %v", err)
	}
	refs = FilterRepos(refs, matcher)
	e.Log.Info("matched repositories", "count", len(refs))

	plan, err := BuildPlan(refs, cfg.Runtime.MaxWorkers)
	if err != nil {
		return e.fatalf("%v", err)
	}
	e.Log.Info("distribution planned", "mode", string(plan.Mode), "workers", len(plan.Assignments))

	dirs, err := CreateDirs(cfg.Output.ScansDir)
	if err != nil {
		return e.fatalf("%v", err)
	}

	outMgr, err := setupOutputManager(cfg)
	if err != nil {
		return e.fatalf("creating output sinks: %v", err)
	}
	defer outMgr.Close()

	_ = outMgr.Write(output.Event{
		Type:    "run.started",
		Repos:   len(refs),
		Workers: len(plan.Assignments),
		Mode:    string(plan.Mode),
	})

	var events chan progress.Event
	var rendererDone chan struct{}
	if cfg.Output.Progress {
		labels := make([]string, 0, len(plan.Assignments))
		for _, a := range plan.Assignments {
			labels = append(labels, a.Label())
		}
		renderer := progress.NewRenderer(os.Stderr, labels)
		events = make(chan progress.Event, 64)
		rendererDone = make(chan struct{})
		go func() {
			renderer.Consume(events)
			close(rendererDone)
		}()
	}

	g, gctx := errgroup.WithContext(ctx)
	parts := make([]scan.ResultMap, len(plan.Assignments))
	for i, a := range plan.Assignments {
		g.Go(func() error {
			w := &Worker{
				Lister:       e.Branches,
				Runner:       e.Runner,
				Dirs:         dirs,
				Progress:     progress.NewReporter(a.Label(), events),
				Log:          e.Log.With("worker", a.Label()),
				ScanThreads:  cfg.Runtime.ScanThreads,
				QueueTimeout: cfg.Runtime.QueueTimeout,
			}
			part, err := w.Run(gctx, a)
			if err != nil {
				return fmt.Errorf("worker %s: %w", a.Label(), err)
			}
			parts[i] = part
			return nil
		})
	}
	runErr := g.Wait()

	if events != nil {
		close(events)
		<-rendererDone
	}

	if runErr != nil {
		return e.fatalf("%v", runErr)
	}

	results := scan.Merge(parts...)
	e.Log.Info("scan complete", "branches", len(results), "failed", len(results.FailedKeys()))

	keys := make([]string, 0, len(results))
	for k := range results {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_ = outMgr.Write(output.Event{
			Type:   "branch.result",
			Key:    k,
			Report: results[k],
			Failed: results[k] != "",
		})
	}
	_ = outMgr.Write(output.Event{
		Type:   "run.finished",
		Failed: len(results.FailedKeys()) > 0,
	})

	return exitCodeForRun(false)
}
