//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	// sharedDevlogPath holds the path to a shared devlog binary built once for all tests.
	sharedDevlogPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

const (
	featLog = "# Development Log #2 - Add board\n\n" +
		"**Date**: 2025-01-07 14:02:11\n**Author**: Jin\n**Commit**: `0f1e2d3c4b5a`\n**Type**: feat\n\n" +
		"## Summary\n\nRender the board.\n\n" +
		"| `+` | `src/components/Board.tsx` | new |\n\n" +
		"| Files Changed | 1 |\n| Lines Added | +180 |\n| Lines Deleted | -20 |\n"
	fixLog = "# Development Log #1 - Fix login\n\n" +
		"**Date**: 2025-01-06 09:00:00\n**Author**: Mina\n**Commit**: `aa11bb22cc33`\n**Type**: fix\n\n" +
		"| `~` | `server/auth.py` | guard |\n\n" +
		"| Files Changed | 1 |\n| Lines Added | +3 |\n| Lines Deleted | -1 |\n"
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getDevlogBinary returns the path to the devlog binary, building it once if needed.
func getDevlogBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "devlog-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		devlogPath := filepath.Join(tempDir, "devlog")
		buildCmd := exec.Command("go", "build", "-o", devlogPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if err := buildCmd.Run(); err != nil {
			panic(fmt.Sprintf("failed to build devlog: %v", err))
		}

		sharedDevlogPath = devlogPath
	})

	return sharedDevlogPath
}

// newProject writes a small dev-log project into a temp directory.
func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	logDir := filepath.Join(root, "docs", "dev-log")
	require.NoError(t, os.MkdirAll(logDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(logDir, "002-board.md"), []byte(featLog), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(logDir, "001-login.md"), []byte(fixLog), 0o644))
	return root
}

// runDevlogCommand runs the binary in dir and returns its combined output.
func runDevlogCommand(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getDevlogBinary(), args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
	}
	return string(output), err
}
