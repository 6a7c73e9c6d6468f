package cmd

import (
	"fmt"

	"github.com/coreaot/coreaot/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	lexEval     string
	lexShowPos  bool
	lexOnlyErrs bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a source file or expression and print its tokens",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexOnlyErrs, "only-errors", false, "show only illegal tokens")
}

func runLex(cmd *cobra.Command, args []string) error {
	input, _, err := readInput(lexEval, args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	illegal := 0
	for {
		tok := l.NextToken()
		if tok.Type == lexer.EOF {
			break
		}
		if lexOnlyErrs && tok.Type != lexer.ILLEGAL {
			continue
		}
		if tok.Type == lexer.ILLEGAL {
			illegal++
		}
		printToken(tok)
	}

	if illegal > 0 {
		return fmt.Errorf("found %d illegal token(s)", illegal)
	}
	return nil
}

func printToken(tok lexer.Token) {
	out := fmt.Sprintf("%-14s %q", tok.Type.String(), tok.Literal)
	if lexShowPos {
		out += fmt.Sprintf(" @%s", tok.Pos)
	}
	fmt.Println(out)
}
