package semverbump

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// VersionMeta holds metadata about the version bump operation.
type VersionMeta struct {
	OldVersion     string // The version found in the manifest.
	APIVersion     string // Candidate proposed by the API diff.
	HistoryVersion string // Candidate inferred from the git history.
	NewVersion     string // The merged version.
	ManifestPath   string // The manifest that was (or would be) rewritten.
	Written        bool   // Whether the manifest was rewritten.
}

// Options selects the project a Pipeline works on.
type Options struct {
	Path         string // Project directory holding Cargo.toml.
	BaselineRoot string // Baseline for the API diff; Path when empty.
	DryRun       bool   // Compute only; never write the manifest.
}

// Pipeline wires the collaborators needed to compute and persist a version.
type Pipeline struct {
	FS       afero.Fs
	History  History
	Checker  APIChecker
	Inferrer NextVersionInferrer
	Logger   *zap.Logger
}

// Run computes the next version and, unless opts.DryRun is set, writes it to
// the manifest. Nothing is written if any step fails.
func (p Pipeline) Run(ctx context.Context, opts Options) (VersionMeta, error) {
	var meta VersionMeta
	log := nopIfNil(p.Logger)

	if opts.Path == "" {
		opts.Path = "."
	}
	if opts.BaselineRoot == "" {
		opts.BaselineRoot = opts.Path
	}

	// 1. Read the current version
	log.Debug("Reading " + manifestName)
	manifest, err := ReadManifest(p.FS, opts.Path)
	if err != nil {
		return meta, err
	}
	current := manifest.Version
	meta.OldVersion = current.String()
	meta.ManifestPath = manifest.Path
	log.Info("Current version", zap.String("version", meta.OldVersion))

	// 2. API diff candidate
	log.Debug("Getting semver-check version")
	apiVersion, err := ResolveAPIVersion(ctx, p.Checker, current, opts.Path, opts.BaselineRoot)
	if err != nil {
		return meta, err
	}
	meta.APIVersion = apiVersion.String()
	log.Debug("Possible semver-check version", zap.String("version", meta.APIVersion))

	// 3. History candidate
	log.Debug("Getting git version")
	historyVersion, err := p.historyVersion(ctx)
	if err != nil {
		return meta, err
	}
	meta.HistoryVersion = historyVersion.String()
	log.Debug("Possible git version", zap.String("version", meta.HistoryVersion))

	// 4. Merge
	next := MergeVersions(current, apiVersion, historyVersion)
	meta.NewVersion = next.String()
	log.Info("New version", zap.String("version", meta.NewVersion))

	// 5. Persist
	if opts.DryRun {
		log.Info("Dry run, not writing new version to " + manifestName)
		return meta, nil
	}
	log.Debug("Writing new version to " + manifestName)
	manifest.SetVersion(next)
	if err := manifest.Write(p.FS); err != nil {
		return meta, err
	}
	meta.Written = true
	return meta, nil
}

// DryRun is Run with opts.DryRun forced on.
func (p Pipeline) DryRun(ctx context.Context, opts Options) (VersionMeta, error) {
	opts.DryRun = true
	return p.Run(ctx, opts)
}

func (p Pipeline) historyVersion(ctx context.Context) (Version, error) {
	commits, err := p.History.Commits(ctx)
	if err != nil {
		return Version{}, fmt.Errorf("could not get git releases: %w", err)
	}
	tags, err := p.History.Tags(ctx)
	if err != nil {
		return Version{}, fmt.Errorf("could not get git releases: %w", err)
	}
	releases := BuildReleases(commits, tags)
	nopIfNil(p.Logger).Debug("Built release history",
		zap.Int("commits", len(commits)),
		zap.Int("tags", len(tags)),
		zap.Int("releases", len(releases)))

	inferrer := p.Inferrer
	if inferrer == nil {
		inferrer = ConventionalInferrer{}
	}
	return ResolveHistoryVersion(releases, inferrer)
}
