package cmd

import (
	"os"
	"strings"
	"testing"
)

func TestRunIRPrintsTranslatedFunction(t *testing.T) {
	oldEval := irEval
	defer func() { irEval = oldEval }()

	irEval = "fn add(a: int, b: int): int { return a + b; }"

	var runErr error
	output := captureStdout(t, func() {
		runErr = runIR(irCmd, nil)
	})

	if runErr != nil {
		t.Fatalf("runIR failed: %v\noutput: %s", runErr, output)
	}
	if !strings.Contains(output, "fn add") {
		t.Errorf("expected IR dump to mention fn add, got: %s", output)
	}
}

func TestRunIRReportsTranslationErrors(t *testing.T) {
	oldEval := irEval
	defer func() { irEval = oldEval }()

	irEval = "fn f(): int { return undefinedVariable; }"

	if err := runIR(irCmd, nil); err == nil {
		t.Fatal("expected a translation error for an undefined reference")
	}
}

func TestFrontendReturnsParseErrorBeforeTranslating(t *testing.T) {
	_, _, _, err := frontend("fn f( {", "<test>")
	if err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestFrontendPrependsProjectExterns(t *testing.T) {
	dir := t.TempDir()
	srcPath := dir + "/main.src"
	if err := os.WriteFile(srcPath, []byte("fn main(): int { return puts(); }"), 0o644); err != nil {
		t.Fatalf("failed to write source file: %v", err)
	}
	projectYAML := "externs:\n  - name: puts\n    params: []\n    return: int\n"
	if err := os.WriteFile(dir+"/coreaot.yaml", []byte(projectYAML), 0o644); err != nil {
		t.Fatalf("failed to write project file: %v", err)
	}

	content, err := os.ReadFile(srcPath)
	if err != nil {
		t.Fatalf("failed to read source file: %v", err)
	}

	_, irProg, proj, err := frontend(string(content), srcPath)
	if err != nil {
		t.Fatalf("frontend failed: %v", err)
	}
	if proj == nil {
		t.Fatal("expected a discovered project")
	}
	if len(irProg.ExternFunctions) != 1 || irProg.ExternFunctions[0].Name != "puts" {
		t.Errorf("expected puts to be registered as an extern function, got: %+v", irProg.ExternFunctions)
	}
}
