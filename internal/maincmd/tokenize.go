package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/galaxyclient/galaxy/lang/scanner"
)

// Tokenize implements the "tokenize" subcommand.
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(ctx, stdio, args...)
}

// TokenizeFiles scans each file and prints one definition per line, in the
// form "file:line: name = word word...". The returned error, if non-nil,
// is the first scan failure encountered; scanning continues across the
// remaining files regardless so every error gets printed.
func TokenizeFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	var firstErr error
	for _, file := range files {
		lines, err := scanner.ScanFile(file)
		if err != nil {
			scanner.PrintError(stdio.Stderr, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		for _, ln := range lines {
			fmt.Fprintf(stdio.Stdout, "%s:%d: %s =", file, ln.Pos.Line, ln.Var)
			for _, w := range ln.Body {
				fmt.Fprintf(stdio.Stdout, " %s", w.Leaf.String())
			}
			fmt.Fprintln(stdio.Stdout)
		}
	}
	return firstErr
}
