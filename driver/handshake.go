// Join/start handshake (SPEC_FULL.md "Supplemented features" §1), grounded
// on the original submission's join_msg/start_msg: before the interactive
// loop begins, a session POSTs a join request and then a start request with
// a fixed resource allocation.
package driver

import (
	"context"
	"math/big"

	"github.com/galaxyclient/galaxy/lang/codec"
	"github.com/galaxyclient/galaxy/lang/value"
)

// startResources is the fixed [fuel, cannon, cooling, clones] allocation
// the original client always sent at game start.
var startResources = []int64{1, 1, 1, 1}

// Join sends a [2, playerKey, []] request directly over the transport,
// bypassing protocol reduction entirely — the join/start handshake talks
// to the server, not to the combinator program.
func (d *Driver) Join(ctx context.Context, playerKey int64) (value.V, error) {
	return d.postRaw(ctx, listOf(intV(2), intV(playerKey), value.VNil{}))
}

// Start sends a [3, playerKey, [1, 1, 1, 1]] request.
func (d *Driver) Start(ctx context.Context, playerKey int64) (value.V, error) {
	resources := value.V(value.VNil{})
	for i := len(startResources) - 1; i >= 0; i-- {
		resources = value.VCons{Head: intV(startResources[i]), Tail: resources}
	}
	return d.postRaw(ctx, listOf(intV(3), intV(playerKey), resources))
}

func (d *Driver) postRaw(ctx context.Context, msg value.V) (value.V, error) {
	respBits, err := d.sender.Send(ctx, codec.Modulate(msg))
	if err != nil {
		return nil, err
	}
	resp, _, err := codec.Demodulate(respBits)
	return resp, err
}

func intV(n int64) value.V { return value.VInt{N: big.NewInt(n)} }

func listOf(elems ...value.V) value.V {
	result := value.V(value.VNil{})
	for i := len(elems) - 1; i >= 0; i-- {
		result = value.VCons{Head: elems[i], Tail: result}
	}
	return result
}
