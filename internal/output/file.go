package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// FileSink writes structured results to a file. In ndjson format every event
// is streamed as it arrives; in json format branch results are aggregated
// into one result object written on Close.
type FileSink struct {
	file   *os.File
	format string // "json" or "ndjson"

	mu      sync.Mutex
	results map[string]string
}

func NewFileSink(path, format string) (*FileSink, error) {
	if format != "json" && format != "ndjson" {
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", path, err)
	}
	return &FileSink{
		file:    f,
		format:  format,
		results: make(map[string]string),
	}, nil
}

func (s *FileSink) Write(e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.format {
	case "ndjson":
		return json.NewEncoder(s.file).Encode(e)
	case "json":
		if e.Type == "branch.result" {
			s.results[e.Key] = e.Report
		}
		return nil
	}
	return nil
}

func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format == "json" {
		enc := json.NewEncoder(s.file)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s.results); err != nil {
			s.file.Close()
			return err
		}
	}
	return s.file.Close()
}

// StreamSink streams every event as NDJSON to an arbitrary writer, typically
// stdout for machine consumers.
type StreamSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func NewStreamSink(w io.Writer) *StreamSink {
	return &StreamSink{enc: json.NewEncoder(w)}
}

func (s *StreamSink) Write(e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(e)
}

func (s *StreamSink) Close() error {
	return nil
}
