package semverbump

// MergeVersions applies the greater of the two candidates' major, minor and
// patch onto current. Pre-release and build metadata of current are kept.
func MergeVersions(current, api, history Version) Version {
	winner := MaxVersion(api, history)
	current.Major = winner.Major
	current.Minor = winner.Minor
	current.Patch = winner.Patch
	return current
}
