package semverbump

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// Checking <crate> v<baseline> -> v<current>
	checkingLine = regexp.MustCompile(`^\s*Checking\s+(\S+)\s+v(\S+)\s+->\s+v(\S+)`)
	summaryBump  = regexp.MustCompile(`^\s*Summary\s+semver requires new (major|minor) version`)
	summaryNone  = regexp.MustCompile(`^\s*Summary\s+no semver update required`)
)

// CommandRunner runs an external command in dir and returns its combined output.
type CommandRunner func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// SemverChecks runs `cargo semver-checks check-release` and parses its report.
type SemverChecks struct {
	// Cargo is the cargo executable; "cargo" when empty.
	Cargo string
	// Run executes the command; os/exec when nil.
	Run CommandRunner
}

// CheckRelease implements APIChecker.
func (s SemverChecks) CheckRelease(ctx context.Context, projectPath, baselineRoot string) ([]CrateReport, error) {
	cargo := s.Cargo
	if cargo == "" {
		cargo = "cargo"
	}
	run := s.Run
	if run == nil {
		run = execRunner
	}

	project, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, err
	}
	baseline, err := filepath.Abs(baselineRoot)
	if err != nil {
		return nil, err
	}

	args := []string{
		"semver-checks", "check-release",
		"--manifest-path", filepath.Join(project, manifestName),
		"--baseline-root", baseline,
	}
	out, runErr := run(ctx, project, cargo, args...)

	reports, err := parseSemverChecks(out)
	if runErr == nil {
		// A clean exit without a summary means nothing required a bump.
		if errors.Is(err, errNoSummary) {
			return reports, nil
		}
		return reports, err
	}
	// A failing check exits non-zero but still prints a summary.
	if err != nil {
		return nil, fmt.Errorf("%s %s: %v: %s", cargo, strings.Join(args, " "), runErr, bytes.TrimSpace(out))
	}
	return reports, nil
}

var errNoSummary = errors.New("semver-checks output has no summary")

// parseSemverChecks extracts one report per checked crate. A summary line
// applies to the crate most recently announced by a Checking line and is
// ignored when no crate has been announced yet.
func parseSemverChecks(out []byte) ([]CrateReport, error) {
	reports := []CrateReport{}
	summaries := 0

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if m := checkingLine.FindStringSubmatch(line); m != nil {
			reports = append(reports, CrateReport{Crate: m[1], Baseline: m[2], Current: m[3]})
			continue
		}
		if m := summaryBump.FindStringSubmatch(line); m != nil {
			summaries++
			if len(reports) == 0 {
				continue
			}
			last := &reports[len(reports)-1]
			if m[1] == "major" {
				last.RequiredBump = SeverityMajor
			} else {
				last.RequiredBump = SeverityMinor
			}
			continue
		}
		if summaryNone.MatchString(line) {
			summaries++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if summaries == 0 {
		return reports, errNoSummary
	}
	return reports, nil
}
