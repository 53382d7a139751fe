package semverbump

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/spf13/afero"
)

const manifestName = "Cargo.toml"

var (
	ErrManifestNotFound = errors.New("could not open " + manifestName)
	ErrManifestInvalid  = errors.New(manifestName + " is not valid TOML")
	ErrVersionMissing   = errors.New("'package.version' field not found in " + manifestName)
	ErrVersionInvalid   = errors.New("could not parse version")
	ErrManifestWrite    = errors.New("could not write " + manifestName)
)

var (
	tableHeader     = regexp.MustCompile(`^\s*\[\[?[\w."' -]+\]\]?\s*(#.*)?$`)
	packageHeader   = regexp.MustCompile(`^\s*\[\s*package\s*\]\s*(#.*)?$`)
	packageVersion  = regexp.MustCompile(`^(\s*version\s*=\s*["'])([^"']*)(["'].*)$`)
	dottedVersion   = regexp.MustCompile(`^(\s*package\.version\s*=\s*["'])([^"']*)(["'].*)$`)
	errNoVersionKey = errors.New("no editable version key")
)

// Manifest is a parsed Cargo.toml that remembers its original text so that
// only the version field changes on write.
type Manifest struct {
	Path    string
	Version Version

	lines []string
	line  int // index of the package version line
}

// ReadManifest loads <projectPath>/Cargo.toml from fs.
func ReadManifest(fs afero.Fs, projectPath string) (*Manifest, error) {
	path := filepath.Join(projectPath, manifestName)
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestNotFound, err)
	}

	tree, err := toml.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestInvalid, err)
	}
	raw, ok := tree.Get("package.version").(string)
	if !ok {
		return nil, ErrVersionMissing
	}
	version, err := ParseVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVersionInvalid, err)
	}

	m := &Manifest{
		Path:    path,
		Version: version,
		lines:   strings.Split(string(data), "\n"),
	}
	if m.line, err = m.findVersionLine(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVersionMissing, err)
	}
	return m, nil
}

// findVersionLine locates the version key inside the [package] table, or a
// top-level dotted package.version key.
func (m *Manifest) findVersionLine() (int, error) {
	inPackage := false
	beforeTables := true
	depth := 0 // open brackets of a multiline array
	for i, line := range m.lines {
		if depth > 0 {
			depth += bracketDepth(line)
			continue
		}
		if tableHeader.MatchString(line) {
			beforeTables = false
			inPackage = packageHeader.MatchString(line)
			continue
		}
		if inPackage && packageVersion.MatchString(line) {
			return i, nil
		}
		if beforeTables && dottedVersion.MatchString(line) {
			return i, nil
		}
		depth = bracketDepth(line)
	}
	return -1, errNoVersionKey
}

// bracketDepth counts the square brackets a line leaves open, ignoring
// quoted strings and comments.
func bracketDepth(line string) int {
	depth := 0
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == '\\' && quote == '"' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '#':
			return depth
		case c == '[':
			depth++
		case c == ']':
			depth--
		}
	}
	return depth
}

// SetVersion replaces the package version, keeping the rest of the document.
func (m *Manifest) SetVersion(v Version) {
	line := m.lines[m.line]
	re := packageVersion
	if dottedVersion.MatchString(line) {
		re = dottedVersion
	}
	m.lines[m.line] = re.ReplaceAllString(line, "${1}"+v.String()+"${3}")
	m.Version = v
}

// Bytes returns the current document.
func (m *Manifest) Bytes() []byte {
	return []byte(strings.Join(m.lines, "\n"))
}

// Write truncates the manifest on fs and writes the current document.
func (m *Manifest) Write(fs afero.Fs) error {
	if err := afero.WriteFile(fs, m.Path, m.Bytes(), 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrManifestWrite, err)
	}
	return nil
}
