package flags

// Package flags defines canonical CLI flag names shared across the CLI and
// engine. Keeping these as constants avoids drift between Cobra flag wiring
// and other code paths that reference flags in error messages.
// IMPORTANT: These are flag *names* without leading dashes.
const (
	// Source
	FlagFile = "file"
	FlagUser = "user"
	FlagOrg  = "org"

	// Filter
	FlagInclude = "include"
	FlagExclude = "exclude"

	// Runtime
	FlagMaxWorkers     = "max-workers"
	FlagQueueTimeout   = "queue-timeout"
	FlagCommandTimeout = "command-timeout"
	FlagScanThreads    = "scan-threads"

	// Output
	FlagProgress  = "progress"
	FlagScansDir  = "scans-dir"
	FlagLogFile   = "log-file"
	FlagOut       = "out"
	FlagOutFormat = "out-format"
	FlagEmit      = "emit"
	FlagVerbose   = "verbose"
)
