// Package driver implements the interaction-loop state machine (§4.F): it
// repeatedly applies the reduced "protocol" function to the current state
// and a pending input, alternating between emitting local screens and
// round-tripping through a transport.Sender, until the round's flag says to
// stop and wait for the next user input.
package driver

import (
	"context"
	"fmt"
	"math/big"

	"github.com/galaxyclient/galaxy/lang/ast"
	"github.com/galaxyclient/galaxy/lang/codec"
	"github.com/galaxyclient/galaxy/lang/reduce"
	"github.com/galaxyclient/galaxy/lang/value"
	"github.com/galaxyclient/galaxy/transport"
)

// ScreenBound is the coordinate magnitude beyond which a point is dropped
// from a screen's point-list (§4.F "out-of-range coordinates are dropped",
// a collaborator decision — see DESIGN.md).
const ScreenBound = 1 << 16

// Point is one (x, y) pixel of a rendered screen.
type Point struct{ X, Y int64 }

// Screen is one point-list of a round's data.
type Screen []Point

// Driver owns the combinator environment, the protocol entry point, and the
// transport used for non-local rounds. It is single-owner and not safe for
// concurrent use from more than one goroutine (§5 "single-owner env").
type Driver struct {
	env     *reduce.Env
	program ast.Expr // the "protocol" entry point, already a Var reference
	state   value.V
	sender  transport.Sender
}

// New constructs a Driver whose program is the entry point of env (already
// populated with every definition), initial state VNil, and a sender used
// for rounds where the reduced flag is non-zero.
func New(env *reduce.Env, program ast.Expr, sender transport.Sender) *Driver {
	return &Driver{env: env, program: program, state: value.VNil{}, sender: sender}
}

// State returns the driver's current committed state value.
func (d *Driver) State() value.V { return d.state }

// Interact runs one user-visible round: starting from the driver's
// committed state and the given click, it iterates sub-rounds through the
// transport (§4.F step 4) until a flag of 0 is produced, and returns that
// round's screens. No user interaction happens between sub-iterations.
func (d *Driver) Interact(ctx context.Context, click Point) ([]Screen, error) {
	pendingInput := value.V(value.VCons{
		Head: value.VInt{N: big.NewInt(click.X)},
		Tail: value.VInt{N: big.NewInt(click.Y)},
	})

	for {
		e := ast.NewApp(ast.NewApp(d.program, value.Quote(d.state)), value.Quote(pendingInput))

		v, err := value.Project(e, d.env)
		if err != nil {
			return nil, fmt.Errorf("driver: %w", err)
		}

		flag, newState, data, err := unpackRound(v)
		if err != nil {
			return nil, fmt.Errorf("driver: %w", err)
		}

		if flag.Sign() == 0 {
			d.state = newState
			return projectScreens(data), nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		bits := codec.Modulate(data)
		respBits, err := d.sender.Send(ctx, bits)
		if err != nil {
			return nil, fmt.Errorf("driver: transport: %w", err)
		}
		resp, rest, err := codec.Demodulate(respBits)
		if err != nil {
			return nil, fmt.Errorf("driver: codec: %w", err)
		}
		if rest != "" {
			return nil, fmt.Errorf("driver: codec: non-empty remainder after demodulating response")
		}

		d.state = newState
		pendingInput = resp
	}
}

// unpackRound destructures v as [flag, state', data] (§4.F step 2). The
// source asserts that this list always has a trailing VNil after data; that
// assertion is kept here (§9) rather than silently accepting a longer list.
// Any other shape is a ProtocolError.
func unpackRound(v value.V) (flag *big.Int, state, data value.V, err error) {
	c1, ok := v.(value.VCons)
	if !ok {
		return nil, nil, nil, protocolError(v)
	}
	f, ok := c1.Head.(value.VInt)
	if !ok {
		return nil, nil, nil, protocolError(v)
	}
	c2, ok := c1.Tail.(value.VCons)
	if !ok {
		return nil, nil, nil, protocolError(v)
	}
	c3, ok := c2.Tail.(value.VCons)
	if !ok {
		return nil, nil, nil, protocolError(v)
	}
	if _, ok := c3.Tail.(value.VNil); !ok {
		return nil, nil, nil, protocolError(v)
	}
	return f.N, c2.Head, c3.Head, nil
}

// Error is a fatal ProtocolError (§7): Construct carries the text-format
// rendering of the round value that did not shape as [flag, state, data].
type Error struct {
	Msg       string
	Construct string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Msg, e.Construct)
}

func protocolError(v value.V) error {
	return &Error{Msg: "protocol error: expected [flag, state, data]", Construct: value.Format(v)}
}

// projectScreens interprets data as a list of point-lists (§4.F "Screens
// projection"), dropping any point whose coordinate magnitude reaches or
// exceeds ScreenBound rather than treating it as fatal.
func projectScreens(data value.V) []Screen {
	var screens []Screen
	for _, pointListV := range toSlice(data) {
		var screen Screen
		for _, pointV := range toSlice(pointListV) {
			pair, ok := pointV.(value.VCons)
			if !ok {
				continue
			}
			x, xok := pair.Head.(value.VInt)
			y, yok := pair.Tail.(value.VInt)
			if !xok || !yok {
				continue
			}
			if !inBounds(x.N) || !inBounds(y.N) {
				continue
			}
			screen = append(screen, Point{X: x.N.Int64(), Y: y.N.Int64()})
		}
		screens = append(screens, screen)
	}
	return screens
}

func inBounds(n *big.Int) bool {
	return n.IsInt64() && n.Int64() > -ScreenBound && n.Int64() < ScreenBound
}

// toSlice walks a VCons spine terminating in VNil into a Go slice. A
// malformed (non-list) spine yields the elements collected so far.
func toSlice(v value.V) []value.V {
	var out []value.V
	node := v
	for {
		c, ok := node.(value.VCons)
		if !ok {
			break
		}
		out = append(out, c.Head)
		node = c.Tail
	}
	return out
}
