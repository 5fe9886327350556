// Package progress carries typed progress signals from scan workers to a
// rendering collaborator. Workers only know the event channel; how (or
// whether) the events are drawn is the consumer's business.
package progress

// Kind discriminates the three progress signals a worker emits.
type Kind int

const (
	// KindIdentity declares what a worker is currently processing: the
	// repository full name in direct mode, the worker offset in queue mode.
	KindIdentity Kind = iota

	// KindTotal (re)declares the number of work units for the repository the
	// worker is about to process: one clone plus checkout and scan per branch.
	// In queue mode a worker emits this once per drained repository, so a
	// rendered counter visibly resets between repositories.
	KindTotal

	// KindIncrement reports one completed work unit.
	KindIncrement
)

// Event is one progress signal from one worker.
type Event struct {
	Worker   string // stable worker label, set at dispatch time
	Kind     Kind
	Identity string // KindIdentity only
	Total    int    // KindTotal only
}

// Reporter is the worker-side handle for emitting events.
type Reporter struct {
	worker string
	ch     chan<- Event
}

// NewReporter returns a Reporter labelled worker that emits into ch.
// A nil ch yields a Reporter that drops every event.
func NewReporter(worker string, ch chan<- Event) *Reporter {
	return &Reporter{worker: worker, ch: ch}
}

func (r *Reporter) send(e Event) {
	if r == nil || r.ch == nil {
		return
	}
	e.Worker = r.worker
	r.ch <- e
}

func (r *Reporter) Identity(identity string) {
	r.send(Event{Kind: KindIdentity, Identity: identity})
}

func (r *Reporter) Total(total int) {
	r.send(Event{Kind: KindTotal, Total: total})
}

func (r *Reporter) Increment() {
	r.send(Event{Kind: KindIncrement})
}
