package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "mpgitleaks",
	Short: "Scan many GitHub repositories with gitleaks in parallel",
	Long: `mpgitleaks wraps the gitleaks tool to scan every branch of many GitHub
repositories in parallel and aggregates pass/fail results into one report.

Repositories come from a newline-delimited address file, from the
authenticated user, or from a named organization. Each matched repository is
cloned, every branch is checked out and scanned, and failed branches are
listed with their gitleaks report artifacts.

Examples:
	# Scan the repos listed in repos.txt (the default source)
	mpgitleaks scan

	# Scan every repo of an organization, 10 at a time, with progress bars
	mpgitleaks scan --org acme --max-workers 10 --progress

	# Scan your own repos, excluding forks of upstream tooling
	mpgitleaks scan --user --exclude '^tool-'`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A .env next to the working directory may carry the GitHub token.
		// Missing files are fine; the token preflight reports absence later.
		_ = godotenv.Load()
	},
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
