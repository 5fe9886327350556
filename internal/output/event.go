// Package output routes run results to one or more sinks: the human console
// summary, structured files, and event streams for machine consumers.
package output

// Event is one lifecycle record of a scan run. Structured sinks emit Events
// as NDJSON (one JSON object per line); the console sink folds them into the
// final human-readable summary.
//
// Event types:
//   - run.started:   Repos, Workers, Mode are set
//   - branch.result: Key, Failed and (for failures) Report are set
//   - run.finished:  Failed carries whether any branch had findings
type Event struct {
	Type    string `json:"type"`
	Repos   int    `json:"repos,omitempty"`
	Workers int    `json:"workers,omitempty"`
	Mode    string `json:"mode,omitempty"`
	Key     string `json:"key,omitempty"`
	Report  string `json:"report,omitempty"`
	Failed  bool   `json:"failed,omitempty"`
}
