// Package main implements cargo-semver-bump, a cargo subcommand that bumps
// the version in Cargo.toml from API changes and git history.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	semverbump "github.com/bcomnes/semverbump/pkg"
)

const envPrefix = "SEMVER_BUMP"

// used to patch over calls to os.Exit() during test
var osExit = os.Exit

// loggedError marks an error that run already reported through the logger.
type loggedError struct{ error }

func (e loggedError) Unwrap() error { return e.error }

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "cargo-semver-bump",
		Short: "Bump the crate version from API changes and git history",
		Long: `Bumps package.version in Cargo.toml.

Two candidates are computed: the bump required by cargo semver-checks against
the baseline, and the next version inferred from conventional commits since the
last git tag. The greater one is written to Cargo.toml.

Examples:
  cargo semver-bump
  cargo semver-bump --dry-run --verbose
  cargo semver-bump -p crates/foo --baseline-root .`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), v)
		},
	}

	flags := cmd.Flags()
	flags.BoolP("dry-run", "d", false, "Run without making any changes")
	flags.StringP("path", "p", "./", "Path to project")
	flags.BoolP("verbose", "v", false, "Enable verbose output")
	flags.String("baseline-root", "", "Baseline for the API diff (defaults to --path)")
	flags.String("tag-pattern", "", "Only consider tags matching this regular expression")
	flags.String("cargo", defaultCargo(), "Cargo executable used to run semver-checks")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(flags)

	return cmd
}

func run(ctx context.Context, v *viper.Viper) error {
	logger, err := semverbump.NewLogger(v.GetBool("verbose"))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	path := v.GetString("path")

	var gitOpts []semverbump.GitOption
	if pattern := v.GetString("tag-pattern"); pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			logger.Error("invalid tag pattern", zap.String("pattern", pattern), zap.Error(err))
			return loggedError{err}
		}
		gitOpts = append(gitOpts, semverbump.WithTagPattern(re))
	}

	repo, err := semverbump.OpenGitRepository(path, gitOpts...)
	if err != nil {
		logger.Error("could not get git releases", zap.Error(err))
		return loggedError{err}
	}

	p := semverbump.Pipeline{
		FS:       afero.NewOsFs(),
		History:  repo,
		Checker:  semverbump.SemverChecks{Cargo: v.GetString("cargo")},
		Inferrer: semverbump.ConventionalInferrer{},
		Logger:   logger,
	}
	if _, err := p.Run(ctx, semverbump.Options{
		Path:         path,
		BaselineRoot: v.GetString("baseline-root"),
		DryRun:       v.GetBool("dry-run"),
	}); err != nil {
		logger.Error(err.Error())
		return loggedError{err}
	}
	return nil
}

// defaultCargo prefers the cargo that invoked us as a subcommand.
func defaultCargo() string {
	if cargo := os.Getenv("CARGO"); cargo != "" {
		return cargo
	}
	return "cargo"
}

// cargoArgs drops the subcommand name cargo passes when invoked as
// `cargo semver-bump`.
func cargoArgs(args []string) []string {
	if len(args) > 0 && args[0] == "semver-bump" {
		return args[1:]
	}
	return args
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	cmd.SetArgs(cargoArgs(os.Args[1:]))
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.As(err, new(loggedError)) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		osExit(1)
	}
}
