package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/galaxyclient/galaxy/lang/parser"
	"github.com/galaxyclient/galaxy/lang/scanner"
)

// Parse implements the "parse" subcommand.
func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ParseFiles(ctx, stdio, args...)
}

// ParseFiles parses each file and prints its definitions as application
// trees, one per line, in source order: "name = expr".
func ParseFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	var firstErr error
	for _, file := range files {
		prog, err := parser.ParseFile(file)
		if err != nil {
			scanner.PrintError(stdio.Stderr, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		for _, def := range prog {
			fmt.Fprintf(stdio.Stdout, "%s = %s\n", def.Var, def.Expr)
		}
	}
	return firstErr
}
