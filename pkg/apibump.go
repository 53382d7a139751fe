package semverbump

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrAPICheck wraps a failure of the API-diff analyzer itself.
	ErrAPICheck = errors.New("semver check failed")
	// ErrNoCrateReports is returned when the analyzer succeeds without a report.
	ErrNoCrateReports = errors.New("no crate reports")
)

// Severity is the bump an API diff requires.
type Severity int

const (
	// SeverityNone means no bump was reported.
	SeverityNone Severity = iota
	SeverityPatch
	SeverityMinor
	SeverityMajor
)

func (s Severity) String() string {
	switch s {
	case SeverityPatch:
		return "patch"
	case SeverityMinor:
		return "minor"
	case SeverityMajor:
		return "major"
	default:
		return "none"
	}
}

// CrateReport is the analyzer's verdict for a single crate.
type CrateReport struct {
	Crate        string
	Current      string
	Baseline     string
	RequiredBump Severity
}

// APIChecker compares the public API of the project at projectPath with the
// baseline found under baselineRoot.
type APIChecker interface {
	CheckRelease(ctx context.Context, projectPath, baselineRoot string) ([]CrateReport, error)
}

// BumpBySeverity maps a required bump onto current. An absent severity still
// proposes a patch bump.
func BumpBySeverity(current Version, s Severity) Version {
	switch s {
	case SeverityMajor:
		return NewVersion(current.Major+1, 0, 0)
	case SeverityMinor:
		return NewVersion(current.Major, current.Minor+1, 0)
	default:
		return NewVersion(current.Major, current.Minor, current.Patch+1)
	}
}

// ResolveAPIVersion runs checker once and turns the first crate report into a
// version candidate.
func ResolveAPIVersion(ctx context.Context, checker APIChecker, current Version, projectPath, baselineRoot string) (Version, error) {
	reports, err := checker.CheckRelease(ctx, projectPath, baselineRoot)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %s", ErrAPICheck, err.Error())
	}
	if len(reports) == 0 {
		return Version{}, ErrNoCrateReports
	}
	return BumpBySeverity(current, reports[0].RequiredBump), nil
}
