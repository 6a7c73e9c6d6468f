package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w
	fn()
	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestRunLexTokenizesInlineExpression(t *testing.T) {
	oldEval, oldShowPos, oldOnlyErrs := lexEval, lexShowPos, lexOnlyErrs
	defer func() { lexEval, lexShowPos, lexOnlyErrs = oldEval, oldShowPos, oldOnlyErrs }()

	lexEval = "fn add(a: int, b: int): int { return a + b; }"
	lexShowPos = false
	lexOnlyErrs = false

	var runErr error
	output := captureStdout(t, func() {
		runErr = runLex(lexCmd, nil)
	})

	if runErr != nil {
		t.Fatalf("runLex failed: %v\noutput: %s", runErr, output)
	}
	if !strings.Contains(output, "FN") && !strings.Contains(output, "IDENT") {
		t.Errorf("expected token output to mention a keyword or identifier, got: %s", output)
	}
}

func TestRunLexReportsIllegalTokens(t *testing.T) {
	oldEval, oldShowPos, oldOnlyErrs := lexEval, lexShowPos, lexOnlyErrs
	defer func() { lexEval, lexShowPos, lexOnlyErrs = oldEval, oldShowPos, oldOnlyErrs }()

	lexEval = "fn f() { let x = `; }"
	lexShowPos = false
	lexOnlyErrs = true

	var runErr error
	_ = captureStdout(t, func() {
		runErr = runLex(lexCmd, nil)
	})

	if runErr == nil {
		t.Fatal("expected an error for illegal token input")
	}
}

func TestRunLexRequiresFileOrEval(t *testing.T) {
	oldEval := lexEval
	defer func() { lexEval = oldEval }()
	lexEval = ""

	if err := runLex(lexCmd, nil); err == nil {
		t.Fatal("expected an error when neither a file nor -e is given")
	}
}
