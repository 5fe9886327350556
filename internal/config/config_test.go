package config

import (
	"strings"
	"testing"
)

func TestValidateDefaults(t *testing.T) {
	c := New()
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults must validate, got: %v", err)
	}
	if c.Runtime.MaxWorkers != 35 {
		t.Errorf("default MaxWorkers = %d, want 35", c.Runtime.MaxWorkers)
	}
	if c.Source.File != "repos.txt" {
		t.Errorf("default Source.File = %q, want repos.txt", c.Source.File)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{
			name: "user and org exclusive",
			mutate: func(c *Config) {
				c.Source.User = true
				c.Source.Org = "acme"
			},
			wantMsg: "mutually exclusive",
		},
		{
			name: "no source",
			mutate: func(c *Config) {
				c.Source.File = "  "
			},
			wantMsg: "one of --file, --user, or --org",
		},
		{
			name: "bad include regex",
			mutate: func(c *Config) {
				c.Filter.Include = "("
			},
			wantMsg: "invalid --include",
		},
		{
			name: "bad exclude regex",
			mutate: func(c *Config) {
				c.Filter.Exclude = "[z"
			},
			wantMsg: "invalid --exclude",
		},
		{
			name: "zero workers",
			mutate: func(c *Config) {
				c.Runtime.MaxWorkers = 0
			},
			wantMsg: "--max-workers",
		},
		{
			name: "zero queue timeout",
			mutate: func(c *Config) {
				c.Runtime.QueueTimeout = 0
			},
			wantMsg: "--queue-timeout",
		},
		{
			name: "negative command timeout",
			mutate: func(c *Config) {
				c.Runtime.CommandTimeout = -1
			},
			wantMsg: "--command-timeout",
		},
		{
			name: "zero scan threads",
			mutate: func(c *Config) {
				c.Runtime.ScanThreads = 0
			},
			wantMsg: "--scan-threads",
		},
		{
			name: "out without inferable format",
			mutate: func(c *Config) {
				c.Output.Out = "results.txt"
			},
			wantMsg: "cannot infer output format",
		},
		{
			name: "bad out format",
			mutate: func(c *Config) {
				c.Output.Out = "results.json"
				c.Output.OutFormat = "xml"
			},
			wantMsg: "unsupported --out-format",
		},
		{
			name: "bad emit",
			mutate: func(c *Config) {
				c.Output.Emit = "yaml"
			},
			wantMsg: "unsupported --emit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			tt.mutate(c)
			err := c.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestValidateInfersOutFormat(t *testing.T) {
	c := New()
	c.Output.Out = "results.ndjson"
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Output.OutFormat != "ndjson" {
		t.Errorf("inferred OutFormat = %q, want ndjson", c.Output.OutFormat)
	}
}
