package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/coreaot/coreaot/internal/backend"
	"github.com/coreaot/coreaot/internal/execmod"
	"github.com/spf13/cobra"
)

var (
	compileEval   string
	outputFile    string
	emitIR        bool
	emitObject    bool
	skipVerify    bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a source file to a native executable",
	Long: `Compile runs the full pipeline — lex, parse, translate, emit LLVM IR —
and then hands the result to the system LLVM toolchain to produce either a
standalone executable (the default), a textual .ll file (--emit-ir), or a
native object file (--emit-object).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileEval, "eval", "e", "", "compile inline code instead of reading from file")
	compileCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output path (default derived from the input file)")
	compileCmd.Flags().BoolVar(&emitIR, "emit-ir", false, "stop after writing textual LLVM IR (.ll)")
	compileCmd.Flags().BoolVar(&emitObject, "emit-object", false, "stop after writing a native object file (.o)")
	compileCmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "skip the LLVM module verification pass")
}

func runCompile(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(compileEval, args)
	if err != nil {
		return err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")

	in, irProg, proj, err := frontend(input, filename)
	if err != nil {
		return err
	}

	name := moduleName(filename)
	emitter := backend.New(in)
	if proj != nil && proj.Target != "" {
		emitter.SetTarget(proj.Target)
	}
	mod := execmod.New(emitter.Emit(irProg), name)

	if !skipVerify {
		if err := mod.Verify(); err != nil {
			return fmt.Errorf("module verification failed: %w", err)
		}
	}

	out := outputFile
	switch {
	case emitIR:
		if out == "" {
			out = name + ".ll"
		}
		if err := mod.WriteIR(out); err != nil {
			return err
		}
	case emitObject:
		if out == "" {
			out = name + ".o"
		}
		if err := mod.CompileToObject(out); err != nil {
			return err
		}
	default:
		if out == "" {
			out = name
		}
		if err := mod.Build(out); err != nil {
			return err
		}
	}

	if verbose {
		fmt.Printf("Compiled %s -> %s\n", filename, out)
	} else {
		fmt.Printf("%s -> %s\n", filename, out)
	}
	return nil
}

func moduleName(filename string) string {
	if filename == "" || filename == "<eval>" {
		return "module"
	}
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
