package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quill-lang/quill/internal/diag"
	"github.com/quill-lang/quill/internal/lexer"
)

func newTokensCmd() *cobra.Command {
	var withTrivia bool

	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Dump the token stream of a Quill source file",
		Long: `Dump the token stream of a Quill source file, one token per line
with its span. With --trivia, whitespace and comment tokens are included
and the concatenated token text reproduces the input exactly.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename, src, err := readSource(args)
			if err != nil {
				return err
			}

			var lx *lexer.Lexer
			if withTrivia {
				lx = lexer.NewWithTrivia(src)
			} else {
				lx = lexer.New(src)
			}
			lx.SetFilename(filename)

			for {
				tok := lx.NextToken()
				fmt.Printf("%-12s %-4d:%-3d %q\n", tok.Type, tok.Span.Line, tok.Span.Column, tok.Text)
				if tok.Type == lexer.EOF {
					break
				}
			}

			if len(lx.Errors) > 0 {
				formatter := diag.NewFormatter(os.Stderr)
				formatter.SetSource(filename, src)
				for _, e := range lx.Errors {
					formatter.Format(e.ToDiagnostic())
				}
				return fmt.Errorf("%s: lexing failed", filename)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withTrivia, "trivia", false, "include whitespace and comment tokens")

	return cmd
}
