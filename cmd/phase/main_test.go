package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes the root command with args and no .env file.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	return runCLIWithEnvFile(t, filepath.Join(t.TempDir(), "missing.env"), stdin, args...)
}

// runCLIWithEnvFile executes the root command with args and --env-file set
// ahead of them.
func runCLIWithEnvFile(t *testing.T, envFile, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--env-file=" + envFile}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// useTestStore points the process configuration at a fresh sqlite file.
func useTestStore(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "sqlite://"+filepath.Join(t.TempDir(), "phase.db"))
	t.Setenv("PHASE_MODE", "test")
	t.Setenv("PHASE_LOG_LEVEL", "error")
	t.Setenv("PHASE_AUTH_SECRET", "")
}

func TestVersionCmd(t *testing.T) {
	out, _, err := runCLI(t, "", "version")
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(out, "phase dev") {
		t.Errorf("expected output to contain 'phase dev', got: %s", out)
	}
	if !strings.Contains(out, "commit: none") {
		t.Errorf("expected output to contain 'commit: none', got: %s", out)
	}
}

func TestVersionCmdWithCustomValues(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, Date
	Version, Commit, Date = "1.0.0", "abc123", "2026-01-01"
	defer func() { Version, Commit, Date = origVersion, origCommit, origDate }()

	out, _, err := runCLI(t, "", "version")
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(out, "phase 1.0.0 (commit: abc123, built: 2026-01-01)") {
		t.Errorf("got: %s", out)
	}
}

func TestRootCmdHelp(t *testing.T) {
	out, _, err := runCLI(t, "", "--help")
	if err != nil {
		t.Fatalf("--help failed: %v", err)
	}
	for _, sub := range []string{"serve", "db", "schema", "token", "list", "show", "version"} {
		if !strings.Contains(out, sub) {
			t.Errorf("help does not list %q:\n%s", sub, out)
		}
	}
}

func TestExecute_ExitCode(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	errOut := new(bytes.Buffer)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"no-such-command"})
	if code := execute(cmd); code != 1 {
		t.Errorf("execute = %d, want 1", code)
	}
	if !strings.Contains(errOut.String(), "Error:") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestConfigError_ListsEveryVariable(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PHASE_MODE", "staging")
	t.Setenv("PHASE_AUTH_SECRET", "")
	_, _, err := runCLI(t, "", "db", "migrate")
	if err == nil {
		t.Fatal("expected config error")
	}
	for _, name := range []string{"DATABASE_URL", "PHASE_MODE"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not name %s", err, name)
		}
	}
}

func TestEnvFileFlag_ReadBeforeSubcommand(t *testing.T) {
	for _, v := range []string{"DATABASE_URL", "PHASE_LOG_LEVEL"} {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}
	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte("DATABASE_URL=sqlite://x.db\nPHASE_LOG_LEVEL=loud\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, _, err := runCLIWithEnvFile(t, envFile, "", "db", "status")
	if err == nil {
		t.Fatal("expected config error from .env values")
	}
	if !strings.Contains(err.Error(), "PHASE_LOG_LEVEL") || strings.Contains(err.Error(), "DATABASE_URL") {
		t.Errorf("error = %q, want only PHASE_LOG_LEVEL reported", err)
	}
}
