package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvConfigHome is the environment variable naming the configuration base directory.
const EnvConfigHome = "XDG_CONFIG_HOME"

// BaseDir determines the configuration base directory.
//
// Lookup order: $XDG_CONFIG_HOME, then $HOME/.config (%USERPROFILE% on Windows). When neither is set a
// fresh private directory is created under the system temp dir so the store
// always has a writable location. Every call without environment creates a
// new directory; callers resolve once per store.
func BaseDir(getenv func(string) string) (string, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	if dir := getenv(EnvConfigHome); dir != "" {
		return filepath.Abs(dir)
	}
	for _, key := range []string{"HOME", "USERPROFILE"} {
		if home := getenv(key); home != "" {
			return filepath.Abs(filepath.Join(home, ".config"))
		}
	}

	tmp := os.TempDir()
	if real, err := filepath.EvalSymlinks(tmp); err == nil {
		tmp = real
	}
	dir, err := os.MkdirTemp(tmp, "configstore-")
	if err != nil {
		return "", fmt.Errorf("failed to create fallback config directory: %w", err)
	}
	return dir, nil
}

// ResolvePath computes the store file path below base.
//
//	default: <base>/configstore/<id>.<ext>
//	global:  <base>/<id>/config.<ext>
func ResolvePath(base, id, ext string, global bool) string {
	if global {
		return filepath.Join(base, id, "config."+ext)
	}
	return filepath.Join(base, "configstore", id+"."+ext)
}
