package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields that affect scan
	// behavior, keep the CLI flags in internal/cli/scan.go in sync.
	Source  Source
	Filter  Filter
	Runtime Runtime
	Output  Output
}

type Source struct {
	// File is a newline-delimited file of repository clone addresses
	// (see --file). Used when neither User nor Org is set.
	File string

	// User scans every repository of the authenticated user (see --user).
	User bool

	// Org scans every repository of the named organization (see --org).
	Org string
}

type Filter struct {
	// Include keeps only repositories whose full name matches this regex
	// (see --include). Patterns match at the start of the name. Empty means
	// match-all.
	Include string

	// Exclude drops repositories whose full name matches this regex
	// (see --exclude). Same matching rules as Include. Empty means match-none.
	Exclude string
}

type Runtime struct {
	// MaxWorkers caps how many repositories are scanned concurrently
	// (see --max-workers). With more repositories than workers, a shared
	// queue is drained by exactly MaxWorkers workers. Must be >= 1.
	MaxWorkers int

	// QueueTimeout is how long an idle queue-mode worker waits for another
	// item before concluding the queue is drained (see --queue-timeout).
	QueueTimeout time.Duration

	// CommandTimeout bounds each external git/gitleaks invocation
	// (see --command-timeout). 0 disables the bound.
	CommandTimeout time.Duration

	// ScanThreads is the parallelism hint passed to each gitleaks invocation
	// (see --scan-threads). Must be >= 1.
	ScanThreads int
}

type Output struct {
	// Progress renders a per-worker progress bar on stderr (see --progress).
	Progress bool

	// ScansDir is the base directory under which clones and reports are
	// staged (see --scans-dir). Defaults to ./scans.
	ScansDir string

	// LogFile receives the structured run log (see --log-file).
	LogFile string

	// Out writes the aggregated result map to this path (see --out).
	Out string

	// OutFormat selects the format for --out (see --out-format).
	// Allowed values: json, ndjson. If empty, inferred from the extension.
	OutFormat string

	// Emit streams lifecycle events to stdout (see --emit).
	// Allowed values: ndjson.
	Emit string

	// Verbose enables debug records in the run log and GitHub API tracing.
	Verbose bool
}

func New() *Config {
	return &Config{
		Source: Source{
			File: "repos.txt",
		},
		Runtime: Runtime{
			MaxWorkers:     35,
			QueueTimeout:   10 * time.Second,
			CommandTimeout: 15 * time.Minute,
			ScanThreads:    10,
		},
		Output: Output{
			ScansDir: "scans",
			LogFile:  "mpgitleaks.log",
		},
	}
}

func (c *Config) Validate() error {
	if c.Source.User && c.Source.Org != "" {
		return errors.New("--user and --org are mutually exclusive")
	}
	if !c.Source.User && c.Source.Org == "" && strings.TrimSpace(c.Source.File) == "" {
		return errors.New("one of --file, --user, or --org must be provided")
	}

	if c.Filter.Include != "" {
		if _, err := regexp.Compile(c.Filter.Include); err != nil {
			return fmt.Errorf("invalid --include pattern: %w", err)
		}
	}
	if c.Filter.Exclude != "" {
		if _, err := regexp.Compile(c.Filter.Exclude); err != nil {
			return fmt.Errorf("invalid --exclude pattern: %w", err)
		}
	}

	if c.Runtime.MaxWorkers <= 0 {
		return errors.New("--max-workers must be >= 1")
	}
	if c.Runtime.QueueTimeout <= 0 {
		return errors.New("--queue-timeout must be > 0")
	}
	if c.Runtime.CommandTimeout < 0 {
		return errors.New("--command-timeout must be >= 0 (0 disables the bound)")
	}
	if c.Runtime.ScanThreads <= 0 {
		return errors.New("--scan-threads must be >= 1")
	}

	if strings.TrimSpace(c.Output.ScansDir) == "" {
		return errors.New("--scans-dir must not be empty")
	}
	if strings.TrimSpace(c.Output.LogFile) == "" {
		return errors.New("--log-file must not be empty")
	}

	if c.Output.Out != "" {
		c.Output.OutFormat = strings.ToLower(strings.TrimSpace(c.Output.OutFormat))
		if c.Output.OutFormat == "" {
			switch ext := strings.ToLower(filepath.Ext(c.Output.Out)); ext {
			case ".json":
				c.Output.OutFormat = "json"
			case ".ndjson":
				c.Output.OutFormat = "ndjson"
			default:
				return fmt.Errorf("cannot infer output format from file extension %q; use --out-format", ext)
			}
		} else if c.Output.OutFormat != "json" && c.Output.OutFormat != "ndjson" {
			return fmt.Errorf("unsupported --out-format: %s (must be one of: json, ndjson)", c.Output.OutFormat)
		}
	}

	if c.Output.Emit != "" {
		v := strings.ToLower(strings.TrimSpace(c.Output.Emit))
		if v != "ndjson" {
			return fmt.Errorf("unsupported --emit value: %s (must be: ndjson)", c.Output.Emit)
		}
		c.Output.Emit = v
	}

	return nil
}
