package engine

import (
	"errors"
	"fmt"

	"github.com/Blazekiller8/mpgitleaks/internal/repo"
)

// Mode is the distribution strategy chosen once per run.
type Mode string

const (
	// ModeDirect binds one worker to each repository. Used when the
	// repository count fits under the worker cap, so no worker idles.
	ModeDirect Mode = "direct"

	// ModeQueue runs exactly the capped number of workers, all draining one
	// shared queue. Used when repositories outnumber the cap, bounding the
	// concurrent clone/scan load regardless of input size.
	ModeQueue Mode = "queue"
)

// Assignment is the unit of work handed to one worker: either a single
// repository (direct mode) or an offset plus a handle to the shared queue
// (queue mode). The shape is chosen once per run, never per item.
type Assignment interface {
	// Label is the worker's stable progress identity: the repository full
	// name in direct mode, the zero-padded offset in queue mode.
	Label() string

	isAssignment()
}

type DirectAssignment struct {
	Ref repo.Ref
}

func (a DirectAssignment) Label() string { return a.Ref.FullName() }
func (DirectAssignment) isAssignment() {}

type QueuedAssignment struct {
	Offset int
	Queue  *Queue

	// width pads the offset label so queue-mode labels align.
	width int
}

func (a QueuedAssignment) Label() string { return fmt.Sprintf("%0*d", a.width, a.Offset) }
func (QueuedAssignment) isAssignment() {}

// Plan is the per-run work distribution: the chosen mode and one assignment
// per worker. In queue mode, Queue is the shared backlog; it is nil in
// direct mode.
type Plan struct {
	Mode        Mode
	Assignments []Assignment
	Queue       *Queue
}

// BuildPlan partitions refs across at most maxWorkers workers.
// An empty input set is a configuration error, surfaced before any worker
// is spawned.
func BuildPlan(refs []repo.Ref, maxWorkers int) (*Plan, error) {
	if maxWorkers <= 0 {
		return nil, fmt.Errorf("worker cap must be >= 1, got %d", maxWorkers)
	}
	if len(refs) == 0 {
		return nil, errors.New("no repositories to scan after filtering")
	}

	if len(refs) <= maxWorkers {
		assignments := make([]Assignment, 0, len(refs))
		for _, r := range refs {
			assignments = append(assignments, DirectAssignment{Ref: r})
		}
		return &Plan{Mode: ModeDirect, Assignments: assignments}, nil
	}

	queue := NewQueue(refs)
	width := len(fmt.Sprint(maxWorkers - 1))
	assignments := make([]Assignment, 0, maxWorkers)
	for i := 0; i < maxWorkers; i++ {
		assignments = append(assignments, QueuedAssignment{Offset: i, Queue: queue, width: width})
	}
	return &Plan{Mode: ModeQueue, Assignments: assignments, Queue: queue}, nil
}
