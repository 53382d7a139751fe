package semverbump

import (
	"errors"
	"fmt"
)

// ErrInference wraps failures of a NextVersionInferrer.
var ErrInference = errors.New("could not infer next version from history")

// NextVersionInferrer computes the next version of a release from its commits
// and its previous release. An empty result means there is no prior release to
// bump from.
type NextVersionInferrer interface {
	NextVersion(r Release) (string, error)
}

// InferrerFunc adapts an ordinary function to NextVersionInferrer.
type InferrerFunc func(r Release) (string, error)

// NextVersion calls f(r).
func (f InferrerFunc) NextVersion(r Release) (string, error) {
	return f(r)
}

// ResolveHistoryVersion returns the version suggested by the commit history.
//
// When the newest bucket is empty and a tagged release precedes it there is
// nothing unreleased, so that release's own version is the candidate.
// Otherwise the inferrer is asked about the newest bucket; InitialVersion is
// used when it has no release context.
func ResolveHistoryVersion(releases []Release, inferrer NextVersionInferrer) (Version, error) {
	if len(releases) == 0 {
		return InitialVersion, nil
	}

	last := releases[len(releases)-1]
	if len(last.Commits) == 0 && !last.Closed() {
		if closed, ok := LastClosed(releases); ok {
			v, err := ParseTag(closed.Version)
			if err != nil {
				return Version{}, fmt.Errorf("release %s: %w", closed.Version, err)
			}
			return v, nil
		}
		return InitialVersion, nil
	}

	next, err := inferrer.NextVersion(last)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %v", ErrInference, err)
	}
	if next == "" {
		return InitialVersion, nil
	}
	v, err := ParseTag(next)
	if err != nil {
		return Version{}, fmt.Errorf("inferred version: %w", err)
	}
	return v, nil
}
