package plugins

import (
	"os"
	"path/filepath"
)

// interpreterCandidates are tried in order when no override is given and no
// bundled runtime ships next to the executable.
var interpreterCandidates = []string{
	"/opt/homebrew/bin/python3.11",
	"/opt/homebrew/bin/python3",
	"/usr/local/bin/python3",
}

// ResolveInterpreter picks the command used to launch provider processes.
// An explicit override wins. Otherwise a runtime bundled under
// Resources/python next to the executable is preferred, then well-known
// install paths, then a bare "python3" left to PATH lookup.
func ResolveInterpreter(override string) string {
	if override != "" {
		return override
	}
	if exe, err := os.Executable(); err == nil {
		bundled := filepath.Join(filepath.Dir(exe), "..", "Resources", "python", "bin", "python3")
		if _, err := os.Stat(bundled); err == nil {
			return bundled
		}
	}
	for _, c := range interpreterCandidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return "python3"
}
