package output

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConsoleSinkCleanRun(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf)

	writeAll(t, s,
		Event{Type: "run.started", Repos: 1, Workers: 1, Mode: "direct"},
		Event{Type: "branch.result", Key: "acme/widgets:main", Failed: false},
		Event{Type: "run.finished"},
	)

	if !strings.Contains(buf.String(), "All branches in all repos passed gitleaks scan") {
		t.Errorf("missing clean-run summary, got: %q", buf.String())
	}
}

func TestConsoleSinkFailedSummary(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf)

	writeAll(t, s,
		Event{Type: "branch.result", Key: "acme/widgets:main", Failed: false},
		Event{Type: "branch.result", Key: "acme/widgets:dev", Report: "/r/widgets-dev.json", Failed: true},
		Event{Type: "run.finished", Failed: true},
	)

	out := buf.String()
	if !strings.Contains(out, "The following repos failed gitleaks scan:") {
		t.Errorf("missing failure header, got: %q", out)
	}
	if !strings.Contains(out, "acme/widgets:dev") || !strings.Contains(out, "/r/widgets-dev.json") {
		t.Errorf("missing failed entry, got: %q", out)
	}
	if strings.Contains(out, "acme/widgets:main") {
		t.Errorf("passing branches must not appear in the summary, got: %q", out)
	}
}

func TestFileSinkJSONAggregates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	s, err := NewFileSink(path, "json")
	if err != nil {
		t.Fatal(err)
	}

	writeAll(t, s,
		Event{Type: "run.started"},
		Event{Type: "branch.result", Key: "acme/widgets:main"},
		Event{Type: "branch.result", Key: "acme/widgets:dev", Report: "/r/d.json", Failed: true},
		Event{Type: "run.finished", Failed: true},
	)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var results map[string]string
	if err := json.Unmarshal(raw, &results); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(results) != 2 || results["acme/widgets:dev"] != "/r/d.json" || results["acme/widgets:main"] != "" {
		t.Errorf("unexpected aggregate: %v", results)
	}
}

func TestFileSinkNDJSONStreams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.ndjson")
	s, err := NewFileSink(path, "ndjson")
	if err != nil {
		t.Fatal(err)
	}

	writeAll(t, s,
		Event{Type: "run.started", Repos: 2},
		Event{Type: "branch.result", Key: "acme/widgets:main"},
		Event{Type: "run.finished"},
	)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var lines int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines++
		var e Event
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", lines, err)
		}
	}
	if lines != 3 {
		t.Errorf("streamed %d lines, want 3", lines)
	}
}

func TestFileSinkRejectsUnknownFormat(t *testing.T) {
	if _, err := NewFileSink(filepath.Join(t.TempDir(), "x"), "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestStreamSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewStreamSink(&buf)
	writeAll(t, s, Event{Type: "run.started", Mode: "queue", Workers: 35})

	var e Event
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatal(err)
	}
	if e.Type != "run.started" || e.Mode != "queue" || e.Workers != 35 {
		t.Errorf("unexpected event: %+v", e)
	}
}

func TestManagerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	m := NewManager()
	if err := m.AddSink(NewStreamSink(&a)); err != nil {
		t.Fatal(err)
	}
	if err := m.AddSink(NewStreamSink(&b)); err != nil {
		t.Fatal(err)
	}
	if err := m.AddSink(nil); err == nil {
		t.Error("nil sink must be rejected")
	}

	if err := m.Write(Event{Type: "run.started"}); err != nil {
		t.Fatal(err)
	}
	if a.Len() == 0 || b.Len() == 0 {
		t.Error("event not fanned out to all sinks")
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
}

func writeAll(t *testing.T, s Sink, events ...Event) {
	t.Helper()
	for _, e := range events {
		if err := s.Write(e); err != nil {
			t.Fatalf("Write(%+v): %v", e, err)
		}
	}
}
