package engine

import (
	"time"

	"github.com/Blazekiller8/mpgitleaks/internal/repo"
)

// Queue is the shared backlog drained by queue-mode workers. It is fully
// populated before any worker starts, so consumers never race producers: a
// bounded wait that comes back empty means the queue is permanently drained.
type Queue struct {
	ch chan repo.Ref
}

// NewQueue returns a queue pre-loaded with refs.
func NewQueue(refs []repo.Ref) *Queue {
	q := &Queue{ch: make(chan repo.Ref, len(refs))}
	for _, r := range refs {
		q.ch <- r
	}
	return q
}

// TryGet removes and returns one item, waiting up to timeout for one to
// become available. ok is false when the wait elapsed with nothing to take;
// because population finished before workers started, that means the queue
// is drained for good.
func (q *Queue) TryGet(timeout time.Duration) (repo.Ref, bool) {
	select {
	case r := <-q.ch:
		return r, true
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case r := <-q.ch:
		return r, true
	case <-timer.C:
		return repo.Ref{}, false
	}
}

// Len reports how many items remain queued.
func (q *Queue) Len() int {
	return len(q.ch)
}
