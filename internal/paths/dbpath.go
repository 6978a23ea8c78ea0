// Package paths resolves where the registry database lives.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// DataDir is the per-project directory holding the database and config.
	DataDir = ".platekeeper"
	// DBFile is the database file name inside DataDir.
	DBFile = "platekeeper.db"
)

// ResolveDBPath turns user input into the database file path.
//
// Input normalization:
//   - "" -> "./.platekeeper/platekeeper.db"
//   - "/srv/gate" -> "/srv/gate/.platekeeper/platekeeper.db"
//   - "/srv/gate/.platekeeper" -> "/srv/gate/.platekeeper/platekeeper.db"
//   - "/srv/gate/registry.db" -> "/srv/gate/registry.db"
//
// When the data directory contains a "redirect" file, its first line names
// another data directory (relative to the first) and that one is used. This
// lets several project checkouts share a registry on a mounted volume.
func ResolveDBPath(path string) string {
	if path == "" {
		path = "."
	}
	path = filepath.Clean(path)

	if strings.HasSuffix(path, ".db") {
		return path
	}

	dataDir := path
	if filepath.Base(path) != DataDir {
		dataDir = filepath.Join(path, DataDir)
	}
	return filepath.Join(followRedirect(dataDir), DBFile)
}

// followRedirect returns the redirect target of dataDir, or dataDir itself.
func followRedirect(dataDir string) string {
	content, err := os.ReadFile(filepath.Join(dataDir, "redirect")) //nolint:gosec // redirect lives inside the data dir
	if err != nil {
		return dataDir
	}

	target := strings.TrimSpace(strings.SplitN(string(content), "\n", 2)[0])
	if target == "" {
		return dataDir
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Clean(filepath.Join(dataDir, target))
}
