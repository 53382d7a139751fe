package semverbump

import (
	"errors"
	"fmt"

	msemver "github.com/Masterminds/semver/v3"
	"golang.org/x/mod/semver"
)

// ErrInvalidVersion is returned when a string is not a strict semantic version.
var ErrInvalidVersion = errors.New("invalid semantic version")

// Version is a semantic version value. Build metadata is carried but never
// participates in ordering.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
	Pre   string
	Build string
}

// NewVersion returns a release version with no pre-release or build metadata.
func NewVersion(major, minor, patch uint64) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// InitialVersion is used when the history holds no prior release.
var InitialVersion = NewVersion(0, 1, 0)

// ParseVersion parses a strict semantic version such as "1.2.3-rc.1+build".
// A leading "v" is not accepted; use ParseTag for tag names.
func ParseVersion(s string) (Version, error) {
	v, err := msemver.StrictNewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("%w %q: %v", ErrInvalidVersion, s, err)
	}
	return Version{
		Major: v.Major(),
		Minor: v.Minor(),
		Patch: v.Patch(),
		Pre:   v.Prerelease(),
		Build: v.Metadata(),
	}, nil
}

// ParseTag parses a tag name, stripping a single leading "v" or "V".
func ParseTag(tag string) (Version, error) {
	if tag != "" && (tag[0] == 'v' || tag[0] == 'V') {
		tag = tag[1:]
	}
	return ParseVersion(tag)
}

// String renders the version without a "v" prefix.
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Pre != "" {
		s += "-" + v.Pre
	}
	if v.Build != "" {
		s += "+" + v.Build
	}
	return s
}

// canonical is the "v"-prefixed form understood by golang.org/x/mod/semver.
func (v Version) canonical() string {
	return "v" + v.String()
}

// Compare returns -1, 0 or +1 following semantic version precedence.
func (v Version) Compare(o Version) int {
	return semver.Compare(v.canonical(), o.canonical())
}

// LessThan reports whether v has lower precedence than o.
func (v Version) LessThan(o Version) bool {
	return v.Compare(o) < 0
}

// Core returns v with pre-release and build metadata dropped.
func (v Version) Core() Version {
	return NewVersion(v.Major, v.Minor, v.Patch)
}

// MaxVersion returns the version with the higher precedence. When both compare
// equal a is returned.
func MaxVersion(a, b Version) Version {
	if b.Compare(a) > 0 {
		return b
	}
	return a
}
