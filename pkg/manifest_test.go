package semverbump

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cargoToml = `# demo crate
[package]
name = "demo"
version = "1.2.3" # keep in sync
edition = "2021"

[dependencies]
serde = { version = "1.0.190", features = ["derive"] }

[dependencies.log]
version = "0.4.20"
`

func memFsWith(t *testing.T, path, content string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	return fs
}

func TestReadManifest(t *testing.T) {
	fs := memFsWith(t, "proj/Cargo.toml", cargoToml)
	m, err := ReadManifest(fs, "proj")
	require.NoError(t, err)
	assert.Equal(t, NewVersion(1, 2, 3), m.Version)
	assert.Equal(t, "proj/Cargo.toml", m.Path)
}

func TestReadManifestErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  *string
		expected error
	}{
		{"missing file", nil, ErrManifestNotFound},
		{"not toml", ptr("[package\nname = "), ErrManifestInvalid},
		{"no version", ptr("[package]\nname = \"demo\"\n"), ErrVersionMissing},
		{"no package", ptr("[workspace]\nmembers = []\n"), ErrVersionMissing},
		{"version not a string", ptr("[package]\nversion = 3\n"), ErrVersionMissing},
		{"workspace inherited", ptr("[package]\nversion.workspace = true\n"), ErrVersionMissing},
		{"bad version", ptr("[package]\nversion = \"one\"\n"), ErrVersionInvalid},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if tc.content != nil {
				require.NoError(t, afero.WriteFile(fs, "Cargo.toml", []byte(*tc.content), 0644))
			}
			_, err := ReadManifest(fs, ".")
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func ptr(s string) *string { return &s }

func TestManifestSetVersionPreservesDocument(t *testing.T) {
	fs := memFsWith(t, "Cargo.toml", cargoToml)
	m, err := ReadManifest(fs, ".")
	require.NoError(t, err)

	m.SetVersion(NewVersion(1, 3, 0))
	require.NoError(t, m.Write(fs))

	got, err := afero.ReadFile(fs, "Cargo.toml")
	require.NoError(t, err)
	expected := `# demo crate
[package]
name = "demo"
version = "1.3.0" # keep in sync
edition = "2021"

[dependencies]
serde = { version = "1.0.190", features = ["derive"] }

[dependencies.log]
version = "0.4.20"
`
	assert.Equal(t, expected, string(got))

	reread, err := ReadManifest(fs, ".")
	require.NoError(t, err)
	assert.Equal(t, NewVersion(1, 3, 0), reread.Version)
}

func TestManifestSetVersionAfterDependencies(t *testing.T) {
	content := "[dependencies]\nrand = { version = \"0.8\" }\n\n[package]\r\nname = 'demo'\r\nversion = '0.4.0-alpha.1'\r\n"
	fs := memFsWith(t, "Cargo.toml", content)
	m, err := ReadManifest(fs, ".")
	require.NoError(t, err)

	m.SetVersion(Version{Major: 0, Minor: 5, Patch: 0, Pre: "alpha.1"})
	assert.Equal(t,
		"[dependencies]\nrand = { version = \"0.8\" }\n\n[package]\r\nname = 'demo'\r\nversion = '0.5.0-alpha.1'\r\n",
		string(m.Bytes()))
}

func TestManifestVersionAfterMultilineArray(t *testing.T) {
	content := `[package]
name = "demo"
metadata = [
  ["a", "b"],
  ["c"]
]
version = "1.0.0"

[features]
default = [
  "std", # "]"
]
`
	fs := memFsWith(t, "Cargo.toml", content)
	m, err := ReadManifest(fs, ".")
	require.NoError(t, err)
	assert.Equal(t, NewVersion(1, 0, 0), m.Version)

	m.SetVersion(NewVersion(1, 1, 0))
	assert.Contains(t, string(m.Bytes()), "]\nversion = \"1.1.0\"\n")
}

func TestBracketDepth(t *testing.T) {
	tests := []struct {
		line     string
		expected int
	}{
		{`keywords = [`, 1},
		{`  ["a", "b"],`, 0},
		{`]`, -1},
		{`x = [[`, 2},
		{`s = "[" # [`, 0},
		{`s = '[\'`, 0},
		{`s = "\"[" [`, 1},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, bracketDepth(tc.line), tc.line)
	}
}

func TestManifestDottedKey(t *testing.T) {
	content := "package.name = \"demo\"\npackage.version = \"2.0.0\"\n"
	fs := memFsWith(t, "Cargo.toml", content)
	m, err := ReadManifest(fs, ".")
	require.NoError(t, err)

	m.SetVersion(NewVersion(2, 1, 0))
	assert.Equal(t, "package.name = \"demo\"\npackage.version = \"2.1.0\"\n", string(m.Bytes()))
}

func TestManifestWriteFailure(t *testing.T) {
	fs := memFsWith(t, "Cargo.toml", cargoToml)
	m, err := ReadManifest(fs, ".")
	require.NoError(t, err)

	err = m.Write(afero.NewReadOnlyFs(fs))
	assert.ErrorIs(t, err, ErrManifestWrite)
}
