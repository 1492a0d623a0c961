// Package maincmd implements the galaxy CLI's command dispatch, following
// the teacher's reflection-based subcommand scaffolding (mna/mainer) so
// that adding a new verb is "add a method", not "add a switch case".
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "galaxy"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> [<path>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> [<path>...] [-- <arg>...]
       %[1]s -h|--help
       %[1]s -v|--version

Client and evaluator for the galaxy combinator protocol.

The <command> can be one of:
       tokenize                  Scan a program file and print its tokens.
       parse                     Parse a program file and print its
                                 application-tree definitions.
       eval                      Reduce a program's entry point (optionally
                                 applied to an inline argument expression)
                                 and print the resulting value.
       run                       Drive the interaction loop against a
                                 program file and a transport URL, replaying
                                 a sequence of clicks.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.

Valid flag options for the <eval> command are:
       --arg <expr>              Text-format value applied to the entry
                                 point before reduction.

Valid flag options for the <run> command are:
       --url <url>               Server URL to POST interactions to.
                                 Falls back to GALAXY_SERVER_URL if unset.
       --player-key <key>        Player key used for the join/start
                                 handshake.
       --clicks <x,y;x,y;...>    Sequence of click coordinates to replay.

Environment variables read by the <run> command (GALAXY_SERVER_URL,
GALAXY_REQUEST_TIMEOUT, GALAXY_RETRY_BACKOFF, GALAXY_VERBOSE) only ever
fill in for a flag that was left unset; a flag always wins.

More information on the galaxy protocol:
       https://icfpcontest2020.github.io/
`, binName)
)

// Cmd is the mainer.App implementation; its exported flag-tagged fields are
// populated by mainer.Parser before Validate/Main run.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Arg       string `flag:"arg"`
	URL       string `flag:"url"`
	PlayerKey string `flag:"player-key"`
	Clicks    string `flag:"clicks"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) { c.args = args }

func (c *Cmd) SetFlags(flags map[string]bool) { c.flags = flags }

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]

	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", c.args[0])
	}

	switch cmdName {
	case "tokenize", "parse", "eval":
		if len(c.args[1:]) == 0 {
			return fmt.Errorf("%s: at least one file must be provided", cmdName)
		}
	case "run":
		if len(c.args[1:]) == 0 {
			return errors.New("run: a program file must be provided")
		}
	}

	if c.Arg != "" && cmdName != "eval" {
		return fmt.Errorf("%s: invalid flag '--arg'", cmdName)
	}

	return nil
}

func printError(stdio mainer.Stdio, err error) error {
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
	}
	return err
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: strings.ToUpper(binName) + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		return mainer.Failure
	}
	return mainer.Success
}

// buildCmds collects the methods of v that match the (context.Context,
// mainer.Stdio, []string) error shape, exactly as the teacher's own
// reflection-based dispatch does.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
