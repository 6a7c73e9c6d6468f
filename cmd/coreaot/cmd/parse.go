package cmd

import (
	"fmt"
	"os"

	"github.com/coreaot/coreaot/internal/diag"
	"github.com/coreaot/coreaot/internal/lexer"
	"github.com/coreaot/coreaot/internal/parser"
	"github.com/spf13/cobra"
)

var (
	parseEval string
	dumpAST   bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a source file or expression and print its AST",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline code instead of reading from file")
	parseCmd.Flags().BoolVar(&dumpAST, "dump-ast", true, "print the parsed AST tree")
}

func runParse(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(parseEval, args)
	if err != nil {
		return err
	}

	p := parser.New(lexer.New(input))
	prog, perr := p.ParseProgram()
	if perr != nil {
		if d := diag.FromParseError(perr); d != nil {
			var b diag.Bag
			b.Add(d)
			fmt.Fprintln(os.Stderr, b.Render(input, filename, false))
		}
		return fmt.Errorf("parsing failed")
	}

	if dumpAST {
		dumpASTNode(prog, 0)
	}
	return nil
}
