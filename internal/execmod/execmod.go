// Package execmod is the execution module: it takes the *ir.Module a
// backend.Emitter built and hands it to an external LLVM toolchain for
// assembly, linking, and running, the way cmd/coreaot/cmd/run.go and
// compile.go drive a "build, then optionally run, then optionally write a
// file" pipeline — and the way occam2go's e2e codegen tests shell out to
// an external compiler (`go build`) and then exec the resulting binary to
// observe a generated program's behavior.
//
// github.com/llir/llvm only builds an in-memory IR module and renders its
// textual form; it does not itself verify, optimize, assemble, or link.
// Those steps are delegated to whatever LLVM toolchain (clang/llc/lli) is
// on PATH, treated as an external collaborator assumed available.
package execmod

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/llir/llvm/ir"
)

// Module wraps one emitted LLVM module and the external tools used to
// turn it into a running program or an object file.
type Module struct {
	llvm *ir.Module

	// Name identifies the temporary files this module writes; it has no
	// effect on the emitted IR itself.
	Name string
}

// New wraps an emitted module. name is used only for temp file naming.
func New(llvm *ir.Module, name string) *Module {
	if name == "" {
		name = "module"
	}
	return &Module{llvm: llvm, Name: name}
}

// String renders the module's textual LLVM IR form.
func (m *Module) String() string {
	return m.llvm.String()
}

// WriteIR writes the module's textual LLVM IR to path.
func (m *Module) WriteIR(path string) error {
	return os.WriteFile(path, []byte(m.llvm.String()), 0o644)
}

// Result is the outcome of running a module: its exit code and
// whatever it wrote to stdout/stderr, kept separate so a caller can tell
// a nonzero exit from a tool invocation failure.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// toolError wraps a failed external-tool invocation with its captured
// stderr, since the bare *exec.ExitError a failed os/exec.Cmd.Run returns
// carries no hint of what the tool actually complained about.
type toolError struct {
	tool   string
	stderr string
	err    error
}

func (e *toolError) Error() string {
	if e.stderr == "" {
		return fmt.Sprintf("%s: %v", e.tool, e.err)
	}
	return fmt.Sprintf("%s: %v\n%s", e.tool, e.err, e.stderr)
}

func (e *toolError) Unwrap() error { return e.err }

func runTool(name string, args ...string) (stdout, stderr string, err error) {
	if _, lookErr := exec.LookPath(name); lookErr != nil {
		return "", "", fmt.Errorf("%s not found on PATH: %w", name, lookErr)
	}
	cmd := exec.Command(name, args...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	if runErr := cmd.Run(); runErr != nil {
		return outBuf.String(), errBuf.String(), &toolError{tool: name, stderr: errBuf.String(), err: runErr}
	}
	return outBuf.String(), errBuf.String(), nil
}

// Verify shells to `opt -passes=verify` over the module's textual IR and
// reports any structural violation LLVM itself detects (dangling block
// references, mismatched terminators, type mismatches), none of which
// internal/backend checks for itself.
func (m *Module) Verify() error {
	dir, err := os.MkdirTemp("", "coreaot-verify-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	irPath := filepath.Join(dir, m.Name+".ll")
	if err := m.WriteIR(irPath); err != nil {
		return err
	}

	_, stderr, err := runTool("opt", "-passes=verify", "-disable-output", irPath)
	if err != nil {
		if stderr != "" {
			return fmt.Errorf("module verification failed:\n%s", stderr)
		}
		return err
	}
	return nil
}

// Run JIT-executes the module with `lli`, the way `dwscript run` directly
// interprets a parsed program rather than producing a standalone binary
// first.
func (m *Module) Run(args ...string) (*Result, error) {
	dir, err := os.MkdirTemp("", "coreaot-run-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	irPath := filepath.Join(dir, m.Name+".ll")
	if err := m.WriteIR(irPath); err != nil {
		return nil, err
	}

	if _, lookErr := exec.LookPath("lli"); lookErr != nil {
		return nil, fmt.Errorf("lli not found on PATH: %w", lookErr)
	}
	cmd := exec.Command("lli", append([]string{irPath}, args...)...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	runErr := cmd.Run()

	result := &Result{Stdout: outBuf.String(), Stderr: errBuf.String()}
	if exitErr, ok := runErr.(*exec.ExitError); ok {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	if runErr != nil {
		return result, &toolError{tool: "lli", stderr: errBuf.String(), err: runErr}
	}
	return result, nil
}

// CompileToObject lowers the module to a native object file at objPath
// via `llc`, mirroring `dwscript compile`'s "build once, run many times
// faster" bytecode artifact, but producing a real `.o` instead.
func (m *Module) CompileToObject(objPath string) error {
	dir, err := os.MkdirTemp("", "coreaot-obj-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	irPath := filepath.Join(dir, m.Name+".ll")
	if err := m.WriteIR(irPath); err != nil {
		return err
	}

	_, _, err = runTool("llc", "-filetype=obj", "-o", objPath, irPath)
	return err
}

// LinkExecutable links one or more object files into a native executable
// using the system C compiler driver as the linker frontend, the same way
// clang/gcc are conventionally invoked to resolve libc and the platform
// startup files an LLVM object alone does not carry.
func LinkExecutable(outPath string, objPaths []string, extraArgs ...string) error {
	args := append(append([]string{"-o", outPath}, objPaths...), extraArgs...)
	cc := "cc"
	if _, err := exec.LookPath(cc); err != nil {
		cc = "clang"
	}
	_, _, err := runTool(cc, args...)
	return err
}

// Build is the all-in-one "emit object, link" convenience the compile
// entry point needs: CompileToObject followed by LinkExecutable
// against a scratch object file that is removed once linking finishes.
func (m *Module) Build(outPath string, extraArgs ...string) error {
	dir, err := os.MkdirTemp("", "coreaot-build-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	objPath := filepath.Join(dir, m.Name+".o")
	if err := m.CompileToObject(objPath); err != nil {
		return err
	}
	return LinkExecutable(outPath, []string{objPath}, extraArgs...)
}
