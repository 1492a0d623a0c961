package maincmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mna/mainer"

	"github.com/galaxyclient/galaxy/driver"
	"github.com/galaxyclient/galaxy/lang/ast"
	"github.com/galaxyclient/galaxy/lang/parser"
	"github.com/galaxyclient/galaxy/lang/reduce"
	"github.com/galaxyclient/galaxy/lang/scanner"
	"github.com/galaxyclient/galaxy/lang/value"
	"github.com/galaxyclient/galaxy/transport"
)

// Run implements the "run" subcommand: load a program, optionally perform
// the join/start handshake, then replay --clicks through the interaction
// driver, printing each round's committed state and the number of points
// in each of its screens.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	if len(args) != 1 {
		return printError(stdio, fmt.Errorf("run: exactly one program file must be provided"))
	}
	file := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return printError(stdio, fmt.Errorf("run: loading config: %w", err))
	}

	url := c.URL
	if url == "" {
		url = cfg.ServerURL
	}
	if url == "" {
		return printError(stdio, fmt.Errorf("run: no --url given and GALAXY_SERVER_URL is not set"))
	}

	prog, err := parser.ParseFile(file)
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return err
	}
	entry, ok := prog.EntryPoint()
	if !ok {
		return printError(stdio, fmt.Errorf("run: %s defines no entry point", file))
	}

	env := reduce.New(len(prog))
	for _, def := range prog {
		env.Insert(def.Var, def.Expr)
	}

	if cfg.Verbose {
		fmt.Fprintf(stdio.Stdout, "run: url=%s request-timeout=%s retry-backoff=%s\n", url, cfg.RequestTimeout, cfg.RetryBackoff)
	}

	sender := transport.NewHTTPSender(url, cfg.RequestTimeout)
	sender.Backoff = cfg.RetryBackoff

	d := driver.New(env, ast.NewVar(entry), sender)

	if c.PlayerKey != "" {
		playerKey, err := strconv.ParseInt(c.PlayerKey, 10, 64)
		if err != nil {
			return printError(stdio, fmt.Errorf("run: invalid --player-key: %w", err))
		}
		if _, err := d.Join(ctx, playerKey); err != nil {
			return printError(stdio, fmt.Errorf("run: join: %w", err))
		}
		if _, err := d.Start(ctx, playerKey); err != nil {
			return printError(stdio, fmt.Errorf("run: start: %w", err))
		}
	}

	clicks, err := parseClicks(c.Clicks)
	if err != nil {
		return printError(stdio, fmt.Errorf("run: invalid --clicks: %w", err))
	}
	if len(clicks) == 0 {
		clicks = []driver.Point{{X: 0, Y: 0}}
	}

	for i, click := range clicks {
		if cfg.Verbose {
			fmt.Fprintf(stdio.Stdout, "round %d: click = (%d, %d)\n", i, click.X, click.Y)
		}
		screens, err := d.Interact(ctx, click)
		if err != nil {
			return printError(stdio, fmt.Errorf("run: round %d: %w", i, err))
		}
		fmt.Fprintf(stdio.Stdout, "round %d: state = %s\n", i, value.Format(d.State()))
		for j, screen := range screens {
			fmt.Fprintf(stdio.Stdout, "  screen %d: %d points\n", j, len(screen))
		}
	}

	return nil
}

func parseClicks(s string) ([]driver.Point, error) {
	if s == "" {
		return nil, nil
	}
	var clicks []driver.Point
	for _, part := range strings.Split(s, ";") {
		x, y, ok := strings.Cut(part, ",")
		if !ok {
			return nil, fmt.Errorf("malformed click %q", part)
		}
		xi, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed click %q: %w", part, err)
		}
		yi, err := strconv.ParseInt(strings.TrimSpace(y), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed click %q: %w", part, err)
		}
		clicks = append(clicks, driver.Point{X: xi, Y: yi})
	}
	return clicks, nil
}
