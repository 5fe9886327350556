package output

import (
	"io"
	"os"
	"sort"
	"sync"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// ConsoleSink renders the human-readable summary: nothing while the run is in
// flight, then either a clean-run line or a table of every failed
// (repository, branch) with its report artifact.
type ConsoleSink struct {
	writer io.Writer

	mu     sync.Mutex
	failed map[string]string // result key -> report path
}

func NewConsoleSink(w io.Writer) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleSink{
		writer: w,
		failed: make(map[string]string),
	}
}

func (s *ConsoleSink) Write(e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch e.Type {
	case "branch.result":
		if e.Failed {
			s.failed[e.Key] = e.Report
		}
		return nil
	case "run.finished":
		return s.printSummaryLocked()
	default:
		return nil
	}
}

func (s *ConsoleSink) printSummaryLocked() error {
	if len(s.failed) == 0 {
		_, err := color.New(color.FgGreen).Fprintln(s.writer, "All branches in all repos passed gitleaks scan")
		return err
	}

	if _, err := color.New(color.FgRed).Fprintln(s.writer, "The following repos failed gitleaks scan:"); err != nil {
		return err
	}

	keys := make([]string, 0, len(s.failed))
	for k := range s.failed {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := tablewriter.NewWriter(s.writer)
	table.SetHeader([]string{"Repo:Branch", "Report"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	for _, k := range keys {
		table.Append([]string{k, s.failed[k]})
	}
	table.Render()
	return nil
}

func (s *ConsoleSink) Close() error {
	return nil
}
