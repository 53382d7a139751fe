// Package main implements the cargo-semver-bump CLI tool.
//
// The tool is a cargo subcommand that computes the next semantic version of a
// crate and writes it to the `package.version` field of Cargo.toml. Two
// candidates are computed independently:
//
//   - the bump required by `cargo semver-checks check-release` when comparing the
//     crate against the baseline (the repository root unless --baseline-root is
//     given): major → X+1.0.0, minor → X.Y+1.0, anything else → X.Y.Z+1;
//   - the next version inferred from the git history: commits are grouped into
//     releases at tag boundaries and the conventional commits made since the last
//     release decide the bump. Without a prior release this is 0.1.0.
//
// The greater candidate's major, minor and patch are applied to the current
// version; the current version's pre-release and build metadata are kept.
//
// Command Usage:
//
//	cargo semver-bump [flags]
//	cargo-semver-bump [flags]
//
// Flags:
//
//	-d, --dry-run:       Compute and log the new version without writing Cargo.toml.
//	-p, --path:          Path to the project (defaults to "./").
//	-v, --verbose:       Enable debug logging.
//	    --baseline-root: Baseline for the API diff (defaults to --path).
//	    --tag-pattern:   Only consider tags matching this regular expression.
//	    --cargo:         Cargo executable running semver-checks (defaults to $CARGO, then "cargo").
//	    --version:       Displays the version of the tool and exits.
//
// Every flag can also be set through the environment with the SEMVER_BUMP_
// prefix, e.g. SEMVER_BUMP_DRY_RUN=true.
//
// Examples:
//
//	# Show what the next version would be
//	cargo semver-bump --dry-run
//
//	# Bump a crate living in a workspace member
//	cargo semver-bump -p crates/parser --baseline-root .
//
//	# Ignore tags that are not plain versions
//	cargo semver-bump --tag-pattern '^v?\d+\.\d+\.\d+$'
//
// Any failure is logged and the process exits with status 1 without touching
// Cargo.toml.
//
// For the library API see the "pkg" package.
package main
