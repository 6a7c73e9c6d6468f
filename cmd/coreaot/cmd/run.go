package cmd

import (
	"fmt"
	"os"

	"github.com/coreaot/coreaot/internal/backend"
	"github.com/coreaot/coreaot/internal/execmod"
	"github.com/spf13/cobra"
)

var (
	runEval    string
	runNoCheck bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Compile and immediately execute a source file",
	Long: `Run compiles a source file to LLVM IR and executes it through the
system's lli interpreter rather than producing an executable on disk — the
fastest path from source to output when you don't need the binary itself.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runEval, "eval", "e", "", "run inline code instead of reading from file")
	runCmd.Flags().BoolVar(&runNoCheck, "no-verify", false, "skip the LLVM module verification pass")
}

func runRun(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(runEval, args)
	if err != nil {
		return err
	}

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

	if !runNoCheck {
		if err := mod.Verify(); err != nil {
			return fmt.Errorf("module verification failed: %w", err)
		}
	}

	result, err := mod.Run()
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	if result.Stdout != "" {
		fmt.Print(result.Stdout)
	}
	if result.Stderr != "" {
		fmt.Fprint(os.Stderr, result.Stderr)
	}
	if result.ExitCode != 0 {
		os.Exit(result.ExitCode)
	}
	return nil
}
