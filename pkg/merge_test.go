package semverbump

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var mergeCandidates = []Version{
	NewVersion(0, 1, 0),
	NewVersion(0, 4, 1),
	NewVersion(0, 5, 0),
	NewVersion(1, 2, 4),
	NewVersion(1, 3, 0),
	NewVersion(2, 0, 0),
	{Major: 2, Minor: 0, Patch: 0, Pre: "rc.1"},
	{Major: 2, Minor: 1, Patch: 0, Build: "meta"},
}

func TestMergeVersionsPicksGreater(t *testing.T) {
	current := NewVersion(1, 2, 3)
	for _, a := range mergeCandidates {
		for _, b := range mergeCandidates {
			got := MergeVersions(current, a, b)
			want := MaxVersion(a, b)
			assert.Equal(t, want.Core(), got.Core(), "merge(%s, %s)", a, b)
			assert.False(t, got.LessThan(a.Core()), "merge(%s, %s) < %s", a, b, a)
			assert.False(t, got.LessThan(b.Core()), "merge(%s, %s) < %s", a, b, b)
		}
	}
}

func TestMergeVersionsKeepsCurrentMetadata(t *testing.T) {
	currents := []Version{
		NewVersion(1, 2, 3),
		{Major: 1, Minor: 2, Patch: 3, Pre: "beta.2"},
		{Major: 1, Minor: 2, Patch: 3, Build: "sha.abc"},
		{Major: 1, Minor: 2, Patch: 3, Pre: "rc.1", Build: "7"},
	}
	for _, cur := range currents {
		for _, a := range mergeCandidates {
			for _, b := range mergeCandidates {
				got := MergeVersions(cur, a, b)
				assert.Equal(t, cur.Pre, got.Pre)
				assert.Equal(t, cur.Build, got.Build)
			}
		}
	}
}

func TestMergeVersionsScenarios(t *testing.T) {
	tests := []struct {
		current, api, history, expected string
	}{
		{"1.2.3", "1.3.0", "0.1.0", "1.3.0"},
		{"0.4.0", "0.4.1", "0.5.0", "0.5.0"},
		{"2.0.0", "2.0.1", "2.1.0", "2.1.0"},
		{"1.0.0-rc.1", "1.0.1", "1.1.0", "1.1.0-rc.1"},
	}
	for _, tc := range tests {
		cur, _ := ParseVersion(tc.current)
		api, _ := ParseVersion(tc.api)
		hist, _ := ParseVersion(tc.history)
		got := MergeVersions(cur, api, hist)
		assert.Equal(t, tc.expected, got.String())
	}
}
