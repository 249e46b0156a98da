package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"goalboard/integration/harness"
)

func TestInitSmoke(t *testing.T) {
	binPath := harness.BuildBinary(t)
	runDir := t.TempDir()
	workspaceRoot := filepath.Join(t.TempDir(), "workspace-init")

	args := []string{
		"init",
		"--workspace", workspaceRoot,
	}
	stdout, stderr, code := harness.Run(t, binPath, runDir, args)
	if code != 0 {
		t.Fatalf("goalboard init exit code %d\nstdout:\n%s\nstderr:\n%s", code, stdout, stderr)
	}
	if !strings.Contains(stdout, "Initialized workspace") {
		t.Fatalf("expected init confirmation, got:\n%s", stdout)
	}

	paths := []string{
		filepath.Join(workspaceRoot, "goals"),
		filepath.Join(workspaceRoot, "reports"),
		filepath.Join(workspaceRoot, "checkins"),
		filepath.Join(workspaceRoot, "goals", "company.yml"),
		filepath.Join(workspaceRoot, "config.yml"),
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("missing init path %s: %v", path, err)
		}
	}

	// The scaffolded workspace must validate cleanly out of the box.
	stdout, stderr, code = harness.Run(t, binPath, runDir, []string{"validate", "--workspace", workspaceRoot})
	if code != 0 {
		t.Fatalf("goalboard validate exit code %d\nstdout:\n%s\nstderr:\n%s", code, stdout, stderr)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	binPath := harness.BuildBinary(t)
	runDir := t.TempDir()
	workspaceRoot := filepath.Join(t.TempDir(), "workspace-init")

	for i := 0; i < 2; i++ {
		_, stderr, code := harness.Run(t, binPath, runDir, []string{"init", "--workspace", workspaceRoot})
		if code != 0 {
			t.Fatalf("goalboard init exit code %d\nstderr:\n%s", code, stderr)
		}
	}

	customized := "objectives: []\n"
	goalsPath := filepath.Join(workspaceRoot, "goals", "company.yml")
	if err := os.WriteFile(goalsPath, []byte(customized), 0o644); err != nil {
		t.Fatalf("write customized goals: %v", err)
	}

	_, stderr, code := harness.Run(t, binPath, runDir, []string{"init", "--workspace", workspaceRoot})
	if code != 0 {
		t.Fatalf("goalboard init exit code %d\nstderr:\n%s", code, stderr)
	}
	data, err := os.ReadFile(goalsPath)
	if err != nil {
		t.Fatalf("read goals: %v", err)
	}
	if string(data) != customized {
		t.Fatalf("init overwrote existing goals file:\n%s", data)
	}
}
