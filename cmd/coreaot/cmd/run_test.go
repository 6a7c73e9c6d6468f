package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func resetRunFlags() func() {
	oldEval, oldNoCheck := runEval, runNoCheck
	return func() { runEval, runNoCheck = oldEval, oldNoCheck }
}

func TestRunRunRejectsInvalidSource(t *testing.T) {
	defer resetRunFlags()()
	runEval = "fn f( { return; }"

	if err := runRun(runCmd, nil); err == nil {
		t.Fatal("expected a parse error for malformed input")
	}
}

func TestRunRunExecutesProgramViaLLI(t *testing.T) {
	requireCLITool(t, "lli")

	defer resetRunFlags()()
	runEval = "fn main(): int { return 0; }"
	runNoCheck = true

	if err := runRun(runCmd, nil); err != nil {
		t.Fatalf("runRun failed: %v", err)
	}
}

func TestReadInputRequiresFileOrEval(t *testing.T) {
	if _, _, err := readInput("", nil); err == nil {
		t.Fatal("expected an error when neither a file nor -e is given")
	}
}

func TestReadInputReadsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.src")
	content := "fn main(): int { return 0; }"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	input, filename, err := readInput("", []string{path})
	if err != nil {
		t.Fatalf("readInput failed: %v", err)
	}
	if input != content {
		t.Errorf("expected input %q, got %q", content, input)
	}
	if filename != path {
		t.Errorf("expected filename %q, got %q", path, filename)
	}
}
