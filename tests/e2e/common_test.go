package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// buildBinary builds the configstore CLI in the specified directory and returns its path.
func buildBinary(t *testing.T, dir string) string {
	t.Helper()
	bin := filepath.Join(dir, "configstore.exe")
	// Assumes tests are running from tests/e2e.
	buildCmd := exec.Command("go", "build", "-o", bin, "../../cmd/configstore")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build configstore: %v\n%s", err, string(out))
	}
	return bin
}

// runCmd runs the binary with XDG_CONFIG_HOME pointing at configHome and returns
// trimmed stdout. It fails the test on a non-zero exit unless allowFail is set.
func runCmd(t *testing.T, bin, configHome string, allowFail bool, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(bin, args...)
	cmd.Env = append(os.Environ(), "XDG_CONFIG_HOME="+configHome)

	var stderr strings.Builder
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil && !allowFail {
		t.Fatalf("%v failed: %v\nstderr: %s", args, err, stderr.String())
	}
	return strings.TrimSpace(string(out)), err
}
