package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/galaxyclient/galaxy/lang/ast"
	"github.com/galaxyclient/galaxy/lang/parser"
	"github.com/galaxyclient/galaxy/lang/reduce"
	"github.com/galaxyclient/galaxy/lang/scanner"
	"github.com/galaxyclient/galaxy/lang/value"
)

// Eval implements the "eval" subcommand: load a program, optionally apply
// its entry point to the --arg value, reduce to a full value, and print it
// in the §6 text format.
func (c *Cmd) Eval(ctx context.Context, stdio mainer.Stdio, args []string) error {
	if len(args) != 1 {
		return printError(stdio, fmt.Errorf("eval: exactly one file must be provided"))
	}
	file := args[0]

	prog, err := parser.ParseFile(file)
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return err
	}

	entry, ok := prog.EntryPoint()
	if !ok {
		return printError(stdio, fmt.Errorf("eval: %s defines no entry point", file))
	}

	env := reduce.New(len(prog))
	for _, def := range prog {
		env.Insert(def.Var, def.Expr)
	}

	var expr ast.Expr = ast.NewVar(entry)
	if c.Arg != "" {
		argVal, err := value.Parse(c.Arg)
		if err != nil {
			return printError(stdio, fmt.Errorf("eval: parsing --arg: %w", err))
		}
		expr = ast.NewApp(expr, value.Quote(argVal))
	}

	v, err := value.Project(expr, env)
	if err != nil {
		return printError(stdio, fmt.Errorf("eval: %w", err))
	}

	fmt.Fprintln(stdio.Stdout, value.Format(v))
	return nil
}
