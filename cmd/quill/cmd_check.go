package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diag"
	"github.com/quill-lang/quill/internal/parser"
)

var checkLog = commonlog.GetLogger("quill.check")

type checkResult struct {
	filename string
	src      string
	diags    []diag.Diagnostic
	readErr  error
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Parse Quill source files and report diagnostics",
		Long: `Parse one or more Quill source files and report all diagnostics.

Files are independent source units and are checked in parallel. The
command fails if any file fails to read or produces error diagnostics.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]checkResult, len(args))

			var wg sync.WaitGroup
			for i, filename := range args {
				wg.Add(1)
				go func(i int, filename string) {
					defer wg.Done()
					results[i] = checkFile(filename)
				}(i, filename)
			}
			wg.Wait()

			formatter := diag.NewFormatter(os.Stderr)
			failed := 0
			for _, res := range results {
				if res.readErr != nil {
					fmt.Fprintf(os.Stderr, "quill: %v\n", res.readErr)
					failed++
					continue
				}
				formatter.SetSource(res.filename, res.src)
				for _, d := range res.diags {
					formatter.Format(d)
				}
				if diag.HasErrors(res.diags) {
					failed++
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			checkLog.Infof("%d files ok", len(args))
			return nil
		},
	}
}

func checkFile(filename string) checkResult {
	data, err := os.ReadFile(filename)
	if err != nil {
		return checkResult{filename: filename, readErr: fmt.Errorf("read file: %w", err)}
	}
	src := string(data)

	checkLog.Debugf("checking %s", filename)
	mod, diags := parser.Parse(src, parser.WithFilename(filename))
	if mod != nil {
		nodes := 0
		ast.Walk(mod, func(ast.Node) bool { nodes++; return true })
		checkLog.Debugf("%s: %d nodes, %d diagnostics", filename, nodes, len(diags))
	}

	return checkResult{filename: filename, src: src, diags: diags}
}
