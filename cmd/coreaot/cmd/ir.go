package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/coreaot/coreaot/internal/config"
	"github.com/coreaot/coreaot/internal/diag"
	"github.com/coreaot/coreaot/internal/intern"
	cir "github.com/coreaot/coreaot/internal/ir"
	"github.com/coreaot/coreaot/internal/lexer"
	"github.com/coreaot/coreaot/internal/parser"
	"github.com/coreaot/coreaot/internal/translator"
	"github.com/coreaot/coreaot/internal/types"
	"github.com/spf13/cobra"
)

var (
	irEval   string
	irFormat string
)

var irCmd = &cobra.Command{
	Use:   "ir [file]",
	Short: "Translate a source file to IR and print it",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runIR,
}

func init() {
	rootCmd.AddCommand(irCmd)

	irCmd.Flags().StringVarP(&irEval, "eval", "e", "", "translate inline code instead of reading from file")
	irCmd.Flags().StringVar(&irFormat, "format", "text", `output format: "text" or "json"`)
}

// frontend runs lexing, parsing, and IR translation, reporting
// diagnostics from whichever stage fails first. Shared by the ir, compile,
// and run subcommands so each one fails the same way.
//
// If a coreaot.yaml project file sits next to filename, its extern
// declarations are prepended to input before lexing, and the project
// itself is returned so compile/run can apply its target triple.
func frontend(input, filename string) (*intern.Interner, *cir.Program, *config.Project, error) {
	proj, cfgErr := config.Discover(filename)
	if cfgErr != nil {
		return nil, nil, nil, cfgErr
	}
	if proj != nil {
		input = proj.ExternSource() + input
	}

	p := parser.New(lexer.New(input))
	prog, perr := p.ParseProgram()
	if perr != nil {
		var b diag.Bag
		b.Add(diag.FromParseError(perr))
		fmt.Fprintln(os.Stderr, b.Render(input, filename, false))
		return nil, nil, nil, fmt.Errorf("parsing failed")
	}

	in := intern.New()
	tr := translator.New(in, types.NewContext())
	irProg, errs := tr.Translate(prog)
	if len(errs) > 0 {
		var b diag.Bag
		b.Add(diag.FromTranslateErrors(errs)...)
		fmt.Fprintln(os.Stderr, b.Render(input, filename, false))
		return nil, nil, nil, fmt.Errorf("translation failed with %d error(s)", len(errs))
	}

	return in, irProg, proj, nil
}

func runIR(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(irEval, args)
	if err != nil {
		return err
	}

	in, irProg, _, err := frontend(input, filename)
	if err != nil {
		return err
	}

	switch irFormat {
	case "json":
		data, err := json.MarshalIndent(irToJSONTree(irProg, in), "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling IR as JSON: %w", err)
		}
		fmt.Println(string(data))
	default:
		dumpIR(irProg, in)
	}
	return nil
}
