package progress

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"
)

const barWidth = 30

// Renderer draws one progress line per worker, redrawn in place as events
// arrive. It is the terminal collaborator for the worker event stream.
type Renderer struct {
	w          io.Writer
	labelWidth int

	mu      sync.Mutex
	order   []string
	workers map[string]*workerState
	drawn   int // lines currently on screen
}

type workerState struct {
	identity string
	total    int
	count    int
	message  string
}

// NewRenderer returns a Renderer writing to w. labels fixes the worker row
// order and the label column width up front so rows never shift.
func NewRenderer(w io.Writer, labels []string) *Renderer {
	r := &Renderer{
		w:       w,
		workers: make(map[string]*workerState, len(labels)),
	}
	for _, l := range labels {
		r.order = append(r.order, l)
		r.workers[l] = &workerState{}
		if len(l) > r.labelWidth {
			r.labelWidth = len(l)
		}
	}
	sort.Strings(r.order)
	return r
}

// Consume applies events until ch is closed, redrawing after each one.
// It is meant to run on its own goroutine; Wait on it via the done channel
// pattern used by the engine.
func (r *Renderer) Consume(ch <-chan Event) {
	for e := range ch {
		r.Apply(e)
	}
	r.mu.Lock()
	for _, ws := range r.workers {
		if ws.total > 0 && ws.count >= ws.total {
			ws.message = "scanning of all branches complete"
		}
	}
	r.redrawLocked()
	r.mu.Unlock()
}

// Apply folds one event into the worker's counter state.
func (r *Renderer) Apply(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ws, ok := r.workers[e.Worker]
	if !ok {
		ws = &workerState{}
		r.workers[e.Worker] = ws
		r.order = append(r.order, e.Worker)
		sort.Strings(r.order)
		if len(e.Worker) > r.labelWidth {
			r.labelWidth = len(e.Worker)
		}
	}

	switch e.Kind {
	case KindIdentity:
		ws.identity = e.Identity
	case KindTotal:
		// A fresh total resets the counter; queue-mode workers restart the
		// bar for every repository they drain.
		ws.total = e.Total
		ws.count = 0
		ws.message = ""
	case KindIncrement:
		ws.count++
	}
	r.redrawLocked()
}

// State reports a worker's current counter, for tests and alternative views.
func (r *Renderer) State(worker string) (identity string, count, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ws, ok := r.workers[worker]
	if !ok {
		return "", 0, 0
	}
	return ws.identity, ws.count, ws.total
}

func (r *Renderer) redrawLocked() {
	if r.w == nil {
		return
	}

	// Move the cursor back over the previously drawn block.
	if r.drawn > 0 {
		fmt.Fprintf(r.w, "\033[%dA", r.drawn)
	}

	for _, label := range r.order {
		ws := r.workers[label]
		fmt.Fprint(r.w, "\r\033[K")
		padded := fmt.Sprintf("%-*s", r.labelWidth, label)
		fmt.Fprintf(r.w, "%s %s\n", color.CyanString(padded), r.lineFor(ws))
	}
	r.drawn = len(r.order)
}

func (r *Renderer) lineFor(ws *workerState) string {
	if ws.message != "" {
		return color.GreenString(ws.message)
	}
	if ws.total <= 0 {
		if ws.identity != "" {
			return ws.identity
		}
		return "waiting"
	}

	count := ws.count
	if count > ws.total {
		count = ws.total
	}
	filled := count * barWidth / ws.total
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", barWidth-filled)
	pct := count * 100 / ws.total

	line := fmt.Sprintf("[%s] %3d%% (%d/%d)", bar, pct, count, ws.total)
	if ws.identity != "" {
		line += " " + ws.identity
	}
	return line
}
