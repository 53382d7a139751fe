package semverbump

// Commit is a single entry of the version-control log.
type Commit struct {
	ID        string
	Message   string
	Timestamp int64 // unix seconds
}

// TagIndex maps a commit id to the tag attached to it.
type TagIndex map[string]string

// Release is a contiguous bucket of commits ending at a tagged commit. The
// trailing Release of a history is always open (Version == "") and holds the
// commits made since the last tag.
type Release struct {
	Version   string
	CommitID  string
	Timestamp int64
	Commits   []Commit
	Previous  *PreviousRelease
}

// PreviousRelease summarizes the release that came immediately before another
// one. It has no link of its own, so a chain is never more than one level deep.
type PreviousRelease struct {
	Version   string
	CommitID  string
	Timestamp int64
	Commits   []Commit
}

// Closed reports whether the release ends at a tagged commit.
func (r Release) Closed() bool {
	return r.Version != ""
}

func (r Release) summary() *PreviousRelease {
	return &PreviousRelease{
		Version:   r.Version,
		CommitID:  r.CommitID,
		Timestamp: r.Timestamp,
		Commits:   append([]Commit(nil), r.Commits...),
	}
}

// BuildReleases partitions a newest-first commit log into releases, oldest
// first. Every tagged commit closes the release it was appended to; the last
// element is the open bucket of unreleased commits.
func BuildReleases(commits []Commit, tags TagIndex) []Release {
	releases := []Release{{}}
	idx := 0
	var previous *PreviousRelease

	for i := len(commits) - 1; i >= 0; i-- {
		commit := commits[i]
		releases[idx].Commits = append(releases[idx].Commits, commit)

		tag, ok := tags[commit.ID]
		if !ok {
			continue
		}
		releases[idx].Version = tag
		releases[idx].CommitID = commit.ID
		releases[idx].Timestamp = commit.Timestamp
		releases[idx].Previous = previous
		previous = releases[idx].summary()

		releases = append(releases, Release{})
		idx++
	}

	// The open bucket only learns about the latest release once there was more
	// than one of them.
	if idx > 1 {
		releases[idx].Previous = previous
	}

	return releases
}

// LastClosed returns the most recent closed release, if any.
func LastClosed(releases []Release) (Release, bool) {
	for i := len(releases) - 1; i >= 0; i-- {
		if releases[i].Closed() {
			return releases[i], true
		}
	}
	return Release{}, false
}
