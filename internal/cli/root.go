// Package cli wires the relkit commands. The root command runs the release
// pipeline; subcommands cover config scaffolding and version info.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relkit/internal/app"
	"github.com/ariel-frischer/relkit/internal/config"
	"github.com/ariel-frischer/relkit/internal/errors"
	"github.com/ariel-frischer/relkit/internal/git"
	"github.com/ariel-frischer/relkit/internal/github"
	"github.com/ariel-frischer/relkit/internal/output"
)

var rootCmd = &cobra.Command{
	Use:   "relkit",
	Short: "Create releases from conventional commits",
	Long: `relkit computes releases from your conventional commit history: it decides
whether a release is due, what the next version is, and renders the release
notes, then bumps version files, tags, pushes and publishes.

Requires a GH_TOKEN environment variable with push and release permissions.
The release author defaults can be overridden with GIT_AUTHOR_NAME and
GIT_AUTHOR_EMAIL.

Examples:
  # Preview the pending release without publishing
  relkit --dry-run

  # Publish a release
  relkit

  # Cut a beta prerelease
  relkit --pre-id beta

  # Release only selected monorepo packages
  relkit --package api --package worker

  # Publish a stable release and delete its prereleases
  relkit --clean-pre`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRelease,
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultConfigFile, "Configuration file path")
	rootCmd.Flags().String("pre-id", "", "Prerelease id (e.g. alpha, beta, rc); empty for a stable release")
	rootCmd.Flags().Bool("dry-run", false, "Preview the pending release without publishing it")
	rootCmd.Flags().StringArray("package", nil, "Restrict the run to the named package (repeatable)")
	rootCmd.Flags().Bool("clean-pre", false, "After a stable release, delete prereleases and their tags")
}

// Execute runs the CLI and prints structured errors. The caller decides the
// exit code.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}
	if cliErr := errors.AsCLIError(err); cliErr != nil {
		errors.PrintError(cliErr)
	} else {
		errors.PrintSimpleError(err, errors.Runtime)
	}
	return err
}

func runRelease(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	preID, _ := cmd.Flags().GetString("pre-id")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	packages, _ := cmd.Flags().GetStringArray("package")
	cleanPre, _ := cmd.Flags().GetBool("clean-pre")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	token := os.Getenv("GH_TOKEN")
	if token == "" {
		return errors.NewConfigError(
			"GH_TOKEN environment variable not set",
			"Export a token with push and release permissions: export GH_TOKEN=...",
		)
	}

	gitClient, err := git.Open("", token, authorName(), authorEmail())
	if err != nil {
		return errors.Wrap(err, errors.Collaborator)
	}

	ctx := cmd.Context()
	if err := gitClient.Sync(ctx); err != nil {
		return errors.WrapWithMessage(err, errors.Collaborator, "syncing repository")
	}

	out := cmd.OutOrStdout()
	if dryRun {
		output.PrintInfo(out, "running in preview mode, release will not be published")
	} else {
		output.PrintInfo(out, "running in publish mode, release will be published")
	}

	runner := &app.Runner{
		Config:    cfg,
		Git:       gitClient,
		Publisher: github.New(ctx, token, gitClient.Owner, gitClient.Repo),
		Out:       out,
		PreID:     preID,
		Preview:   dryRun,
		CleanPre:  cleanPre,
		Packages:  packages,
	}
	if err := runner.Run(ctx); err != nil {
		return err
	}

	fmt.Fprintln(out, "completed successfully 🎉")
	return nil
}

// authorName returns the release commit author, overridable via environment.
func authorName() string {
	if name := os.Getenv("GIT_AUTHOR_NAME"); name != "" {
		return name
	}
	return "relkit-release"
}

// authorEmail returns the release commit author email, overridable via
// environment.
func authorEmail() string {
	if email := os.Getenv("GIT_AUTHOR_EMAIL"); email != "" {
		return email
	}
	return "release@relkit.dev"
}
