// Package semverbump computes the next semantic version of a Rust crate.
//
// It provides functionalities for:
//   - Parsing and ordering semantic versions (Version).
//   - Partitioning a git log into releases at tag boundaries (BuildReleases) and
//     inferring the next version from the unreleased commits (ResolveHistoryVersion).
//   - Turning the bump required by `cargo semver-checks` into a version candidate
//     (ResolveAPIVersion, BumpBySeverity).
//   - Merging both candidates onto the current version (MergeVersions).
//   - Reading and rewriting the `package.version` field of Cargo.toml in place (Manifest).
//
// The git history, the API diff and the commit-convention rules are reached
// through the History, APIChecker and NextVersionInferrer interfaces, with
// go-git, `cargo semver-checks` and conventional-commit implementations
// provided.
//
// Usage Example:
//
//	repo, err := semverbump.OpenGitRepository(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p := semverbump.Pipeline{
//	    FS:      afero.NewOsFs(),
//	    History: repo,
//	    Checker: semverbump.SemverChecks{},
//	}
//	meta, err := p.DryRun(context.Background(), semverbump.Options{Path: "."})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Println("next version:", meta.NewVersion)
package semverbump
