package profile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/job-discovery/internal/types"
)

// ResumeEnvVar overrides résumé auto-discovery when set
const ResumeEnvVar = "JOB_DISCOVERY_RESUME"

// DefaultResumePaths are checked, relative to the working directory, when no
// explicit path is given
var DefaultResumePaths = []string{
	filepath.Join("data", "masters", "resume.md"),
	filepath.Join("data", "masters", "resume.txt"),
	"resume.md",
	"resume.txt",
}

// CandidatePaths lists the paths Resolve will check, in order.
func CandidatePaths(explicit string) []string {
	var paths []string
	if explicit != "" {
		paths = append(paths, explicit)
	}
	if env := os.Getenv(ResumeEnvVar); env != "" {
		paths = append(paths, env)
	}
	paths = append(paths, DefaultResumePaths...)
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".job-discovery", "resume.md"))
	}
	return paths
}

// Resolve returns the first existing résumé path. An explicit path that does
// not exist is an error on its own; defaults are only searched without one.
func Resolve(explicit string) (string, error) {
	if explicit != "" {
		if fileExists(explicit) {
			return explicit, nil
		}
		return "", &NotFoundError{Checked: []string{explicit}}
	}

	checked := CandidatePaths("")
	for _, p := range checked {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", &NotFoundError{Checked: checked}
}

// Load resolves and parses the résumé into a profile.
func Load(explicit string) (*types.CandidateProfile, error) {
	path, err := Resolve(explicit)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read résumé %s", path),
			Cause:   err,
		}
	}

	p := Parse(string(content))
	p.Source = path
	return p, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
