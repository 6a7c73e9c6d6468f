package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

func TestRunIRJSONFormatIsQueryableWithGJSON(t *testing.T) {
	oldEval, oldFormat := irEval, irFormat
	defer func() { irEval, irFormat = oldEval, oldFormat }()

	irEval = "fn add(a: int, b: int): int { return a + b; }"
	irFormat = "json"

	var runErr error
	output := captureStdout(t, func() {
		runErr = runIR(irCmd, nil)
	})
	if runErr != nil {
		t.Fatalf("runIR failed: %v\noutput: %s", runErr, output)
	}

	name := gjson.Get(output, "functions.0.name")
	if name.String() != "add" {
		t.Errorf("expected functions.0.name to be \"add\", got %q (raw: %s)", name.String(), output)
	}

	paramCount := gjson.Get(output, "functions.0.params.#")
	if paramCount.Int() != 2 {
		t.Errorf("expected 2 params, got %d", paramCount.Int())
	}
}

// TestGoldenIRFixturePatchedWithSJSON demonstrates patching a recorded
// golden fixture's field in place rather than regenerating the whole
// fixture by hand, the way a maintainer would bump one expectation after
// an intentional IR-shape change.
func TestGoldenIRFixturePatchedWithSJSON(t *testing.T) {
	golden := `{"functions":[{"name":"add","params":[{"name":"a"},{"name":"b"}]}]}`

	patched, err := sjson.Set(golden, "functions.0.name", "sum")
	if err != nil {
		t.Fatalf("sjson.Set failed: %v", err)
	}

	if got := gjson.Get(patched, "functions.0.name").String(); got != "sum" {
		t.Errorf("expected patched name \"sum\", got %q", got)
	}

	path := filepath.Join(t.TempDir(), "add.golden.json")
	if err := os.WriteFile(path, []byte(patched), 0o644); err != nil {
		t.Fatalf("failed to write patched fixture: %v", err)
	}
}
