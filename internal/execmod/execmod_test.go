package execmod

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

// mainReturns42 builds a minimal `define i32 @main() { ret i32 42 }`
// module, enough to exercise every execmod operation without depending on
// internal/backend.
func mainReturns42() *ir.Module {
	m := ir.NewModule()
	fn := m.NewFunc("main", types.I32)
	block := fn.NewBlock("entry")
	block.NewRet(constant.NewInt(types.I32, 42))
	return m
}

func requireTool(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not found on PATH, skipping", name)
	}
}

func TestWriteIRProducesLLVMAssembly(t *testing.T) {
	mod := New(mainReturns42(), "test")
	dir := t.TempDir()
	path := filepath.Join(dir, "test.ll")

	if err := mod.WriteIR(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), "define i32 @main()") {
		t.Fatalf("expected a main definition in the written IR, got:\n%s", data)
	}
}

func TestStringRendersSameTextAsWriteIR(t *testing.T) {
	mod := New(mainReturns42(), "test")
	if !strings.Contains(mod.String(), "ret i32 42") {
		t.Fatalf("expected the rendered module to contain its return instruction, got:\n%s", mod.String())
	}
}

func TestVerifyAcceptsAWellFormedModule(t *testing.T) {
	requireTool(t, "opt")
	mod := New(mainReturns42(), "test")
	if err := mod.Verify(); err != nil {
		t.Fatalf("expected a well-formed module to verify cleanly, got: %v", err)
	}
}

func TestRunReturnsTheModuleExitCode(t *testing.T) {
	requireTool(t, "lli")
	mod := New(mainReturns42(), "test")
	result, err := mod.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ExitCode != 42 {
		t.Fatalf("expected exit code 42, got %d", result.ExitCode)
	}
}

func TestCompileToObjectWritesAFile(t *testing.T) {
	requireTool(t, "llc")
	mod := New(mainReturns42(), "test")
	dir := t.TempDir()
	objPath := filepath.Join(dir, "test.o")

	if err := mod.CompileToObject(objPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info, err := os.Stat(objPath); err != nil || info.Size() == 0 {
		t.Fatalf("expected a non-empty object file at %s", objPath)
	}
}

func TestBuildProducesARunnableExecutable(t *testing.T) {
	requireTool(t, "llc")
	if _, err := exec.LookPath("cc"); err != nil {
		if _, err := exec.LookPath("clang"); err != nil {
			t.Skip("no C compiler driver found on PATH, skipping")
		}
	}
	mod := New(mainReturns42(), "test")
	dir := t.TempDir()
	binPath := filepath.Join(dir, "test.bin")

	if err := mod.Build(binPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := exec.Command(binPath).CombinedOutput()
	if exitErr, ok := err.(*exec.ExitError); ok {
		if exitErr.ExitCode() != 42 {
			t.Fatalf("expected exit code 42, got %d (output: %s)", exitErr.ExitCode(), out)
		}
		return
	}
	if err != nil {
		t.Fatalf("unexpected error running built executable: %v", err)
	}
}

func TestRunReportsMissingToolClearly(t *testing.T) {
	if _, err := exec.LookPath("lli"); err == nil {
		t.Skip("lli is present on PATH, cannot exercise the missing-tool path")
	}
	mod := New(mainReturns42(), "test")
	if _, err := mod.Run(); err == nil {
		t.Fatalf("expected an error when lli is not on PATH")
	}
}
