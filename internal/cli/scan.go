package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Blazekiller8/mpgitleaks/internal/config"
	"github.com/Blazekiller8/mpgitleaks/internal/engine"
	"github.com/Blazekiller8/mpgitleaks/internal/execx"
	"github.com/Blazekiller8/mpgitleaks/internal/flags"
	gh "github.com/Blazekiller8/mpgitleaks/internal/github"
	applog "github.com/Blazekiller8/mpgitleaks/internal/log"
)

var cfg = config.New()

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Clone, branch-iterate, and gitleaks-scan a set of repositories",
	Long: `Scan every branch of a set of GitHub repositories with gitleaks.

Sources (pick one):
  --file   newline-delimited file of clone addresses (default: repos.txt)
  --user   every repository of the authenticated user
  --org    every repository of the named organization

Filtering:
  --include / --exclude are regular expressions matched at the start of the
  repository name (or the owner/name full name when the pattern contains '/').
  A repository is kept iff it matches the include pattern and does not match
  the exclude pattern.

Authentication:
  A GitHub access token is required before any work begins. Sources, in order:
  GH_TOKEN_PSW, GITHUB_TOKEN, then GitHub CLI auth (gh auth token). A .env
  file in the working directory is loaded first.

Results:
  A branch passes when gitleaks exits 0. Any nonzero exit records the report
  artifact path for that branch. Leak findings do not change the process exit
  status; inspect the summary (or --out/--emit streams) to detect them.

Exit codes:
  0 = run completed (findings, if any, are listed in the summary)
  1 = fatal error (bad configuration, missing token, or a worker failure)`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		ctx := context.Background()

		token, _, err := gh.ResolveAuthToken(ctx, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to resolve GitHub auth token: %v\n", err)
			os.Exit(1)
		}
		if strings.TrimSpace(token) == "" {
			fmt.Fprintln(os.Stderr, "Error: GitHub auth token is required (set GH_TOKEN_PSW or GITHUB_TOKEN, or run 'gh auth login')")
			os.Exit(1)
		}

		logger, closer, err := applog.NewFileLogger(cfg.Output.LogFile, cfg.Output.Verbose)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer closer.Close()

		client, err := gh.NewClient(ctx, token, gh.WithVerbose(cfg.Output.Verbose, nil))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create GitHub client: %v\n", err)
			os.Exit(1)
		}

		runner := execx.NewCommandRunner(cfg.Runtime.CommandTimeout, logger)
		eng := engine.New(client, client, runner, logger)
		os.Exit(eng.Run(ctx, cfg))
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)

	// Source
	scanCmd.Flags().StringVar(&cfg.Source.File, flags.FlagFile, cfg.Source.File, "File containing repository clone addresses, one per line")
	scanCmd.Flags().BoolVar(&cfg.Source.User, flags.FlagUser, false, "Scan all repositories of the authenticated user")
	scanCmd.Flags().StringVar(&cfg.Source.Org, flags.FlagOrg, "", "Scan all repositories of the named organization")

	// Filter
	scanCmd.Flags().StringVar(&cfg.Filter.Include, flags.FlagInclude, "", "Regex matching repos to include (matched at start of name)")
	scanCmd.Flags().StringVar(&cfg.Filter.Exclude, flags.FlagExclude, "", "Regex matching repos to exclude (matched at start of name)")

	// Runtime
	scanCmd.Flags().IntVar(&cfg.Runtime.MaxWorkers, flags.FlagMaxWorkers, cfg.Runtime.MaxWorkers, "Maximum concurrent scan workers")
	scanCmd.Flags().DurationVar(&cfg.Runtime.QueueTimeout, flags.FlagQueueTimeout, cfg.Runtime.QueueTimeout, "Idle wait before a queue-mode worker concludes the queue is drained")
	scanCmd.Flags().DurationVar(&cfg.Runtime.CommandTimeout, flags.FlagCommandTimeout, cfg.Runtime.CommandTimeout, "Per-command timeout for git/gitleaks invocations (0 disables)")
	scanCmd.Flags().IntVar(&cfg.Runtime.ScanThreads, flags.FlagScanThreads, cfg.Runtime.ScanThreads, "Parallelism hint passed to each gitleaks invocation")

	// Output
	scanCmd.Flags().BoolVar(&cfg.Output.Progress, flags.FlagProgress, false, "Display a progress bar for each worker")
	scanCmd.Flags().StringVar(&cfg.Output.ScansDir, flags.FlagScansDir, cfg.Output.ScansDir, "Base directory for clone and report staging")
	scanCmd.Flags().StringVar(&cfg.Output.LogFile, flags.FlagLogFile, cfg.Output.LogFile, "Structured run log file")
	scanCmd.Flags().StringVar(&cfg.Output.Out, flags.FlagOut, "", "Write the aggregated result map to this path")
	scanCmd.Flags().StringVar(&cfg.Output.OutFormat, flags.FlagOutFormat, "", "Format for --out: json|ndjson (default: inferred from file extension)")
	scanCmd.Flags().StringVar(&cfg.Output.Emit, flags.FlagEmit, "", "Stream lifecycle events to stdout: ndjson")
	scanCmd.Flags().BoolVar(&cfg.Output.Verbose, flags.FlagVerbose, false, "Enable debug logging and GitHub API call tracing")
}
