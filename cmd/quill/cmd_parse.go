package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diag"
	"github.com/quill-lang/quill/internal/parser"
)

const stdinName = "<stdin>"

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a Quill source file and dump its syntax tree",
		Long: `Parse a Quill source file.

Diagnostics are printed to stderr with source snippets. On success the
syntax tree is dumped to stdout in s-expression form. If no file is
given, source is read from stdin.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename, src, err := readSource(args)
			if err != nil {
				return err
			}

			mod, diags := parser.Parse(src, parser.WithFilename(filename))

			formatter := diag.NewFormatter(os.Stderr)
			formatter.SetSource(filename, src)
			for _, d := range diags {
				formatter.Format(d)
			}

			if diag.HasErrors(diags) {
				return fmt.Errorf("%s: parsing failed", filename)
			}

			fmt.Println(ast.Dump(mod))
			return nil
		},
	}
}

// readSource resolves the single optional file argument, falling back to
// stdin when no argument is given.
func readSource(args []string) (filename, src string, err error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return stdinName, string(data), nil
	}

	filename = args[0]
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", "", fmt.Errorf("read file: %w", err)
	}
	return filename, string(data), nil
}
