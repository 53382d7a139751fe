package semverbump

import (
	"fmt"
	"regexp"
	"strings"
)

// conventionalHeader matches "type(scope)!: description".
var conventionalHeader = regexp.MustCompile(`^(\w+)(?:\([^)]*\))?(!)?:\s`)

// breakingFooter matches the footer token that marks a breaking change.
var breakingFooter = regexp.MustCompile(`(?m)^BREAKING[ -]CHANGE:\s`)

// ConventionalInferrer bumps the previous release's version according to the
// conventional-commit types of the commits that followed it.
type ConventionalInferrer struct {
	// BreakingAlwaysBumpMajor bumps major on breaking changes even for 0.x.
	BreakingAlwaysBumpMajor bool
	// FeaturesAlwaysBumpMinor bumps minor on features even for 0.x.
	FeaturesAlwaysBumpMinor bool
}

type commitKind int

const (
	kindPatch commitKind = iota
	kindFeature
	kindBreaking
)

func classifyCommit(message string) commitKind {
	header, _, _ := strings.Cut(message, "\n")
	m := conventionalHeader.FindStringSubmatch(header)
	if m == nil {
		return kindPatch
	}
	if m[2] == "!" || breakingFooter.MatchString(message) {
		return kindBreaking
	}
	if strings.EqualFold(m[1], "feat") {
		return kindFeature
	}
	return kindPatch
}

// NextVersion implements NextVersionInferrer. It returns "" when r has no
// previous release to bump from, and the previous version when r has no
// commits.
func (c ConventionalInferrer) NextVersion(r Release) (string, error) {
	if r.Previous == nil || r.Previous.Version == "" {
		return "", nil
	}
	prev, err := ParseTag(r.Previous.Version)
	if err != nil {
		return "", fmt.Errorf("previous release %q: %w", r.Previous.Version, err)
	}

	if len(r.Commits) == 0 {
		return prev.String(), nil
	}

	kind := kindPatch
	for _, commit := range r.Commits {
		if k := classifyCommit(commit.Message); k > kind {
			kind = k
		}
	}

	var next Version
	switch {
	case kind == kindBreaking && (prev.Major > 0 || c.BreakingAlwaysBumpMajor):
		next = BumpBySeverity(prev, SeverityMajor)
	case kind == kindBreaking:
		next = BumpBySeverity(prev, SeverityMinor)
	case kind == kindFeature && (prev.Major > 0 || c.FeaturesAlwaysBumpMinor):
		next = BumpBySeverity(prev, SeverityMinor)
	default:
		next = BumpBySeverity(prev, SeverityPatch)
	}
	return next.String(), nil
}
