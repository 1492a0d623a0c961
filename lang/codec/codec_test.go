package codec_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galaxyclient/galaxy/lang/codec"
	"github.com/galaxyclient/galaxy/lang/value"
)

func vi(n int64) value.V { return value.VInt{N: big.NewInt(n)} }

func cons(head, tail value.V) value.V { return value.VCons{Head: head, Tail: tail} }

func TestModulateFixtures(t *testing.T) {
	assert.Equal(t, "010", codec.Modulate(vi(0)))
	assert.Equal(t, "01100001", codec.Modulate(vi(1)))
	assert.Equal(t, "10100001", codec.Modulate(vi(-1)))
	assert.Equal(t, "011110000100000000", codec.Modulate(vi(256)))
	assert.Equal(t, "00", codec.Modulate(value.VNil{}))
	assert.Equal(t, "110000", codec.Modulate(cons(value.VNil{}, value.VNil{})))
	assert.Equal(t, "1101100001110110001000", codec.Modulate(cons(vi(1), cons(vi(2), value.VNil{}))))
}

func TestDemodulateFixtures(t *testing.T) {
	tests := []struct {
		bits string
		want value.V
	}{
		{"00", value.VNil{}},
		{"110000", cons(value.VNil{}, value.VNil{})},
		{"1101000", cons(vi(0), value.VNil{})},
		{"110110000101100010", cons(vi(1), vi(2))},
		{"1101100001110110001000", cons(vi(1), cons(vi(2), value.VNil{}))},
	}
	for _, tc := range tests {
		t.Run(tc.bits, func(t *testing.T) {
			got, rest, err := codec.Demodulate(tc.bits)
			require.NoError(t, err)
			assert.Empty(t, rest)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestModulateDemodulateRoundTrip(t *testing.T) {
	values := []value.V{
		vi(0), vi(1), vi(-1), vi(255), vi(-255), vi(256), vi(-256),
		value.VNil{},
		cons(vi(1), vi(2)),
		cons(vi(1), cons(cons(vi(2), cons(vi(3), value.VNil{})), cons(vi(4), value.VNil{}))),
	}
	for _, v := range values {
		bits := codec.Modulate(v)
		got, rest, err := codec.Demodulate(bits)
		require.NoError(t, err)
		assert.Empty(t, rest)
		assert.Equal(t, v, got)
		assert.Equal(t, bits, codec.Modulate(got))
	}
}

func TestDemodulateTruncated(t *testing.T) {
	_, _, err := codec.Demodulate("0")
	require.Error(t, err)
	var cerr *codec.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 0, cerr.Offset)
}

func TestDemodulateMalformed(t *testing.T) {
	_, _, err := codec.Demodulate("")
	require.Error(t, err)
	var cerr *codec.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 0, cerr.Offset)
}

// TestDemodulateReportsNestedOffset checks that a fault inside the second
// element of a cons cell is reported at its own bit offset, not offset 0 —
// the offset must thread through the recursion, not just the top call.
func TestDemodulateReportsNestedOffset(t *testing.T) {
	// "11" (cons tag) + "00" (nil head, bits 2-3) + "0" (truncated tail at bit 4).
	_, _, err := codec.Demodulate("11000")
	require.Error(t, err)
	var cerr *codec.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 4, cerr.Offset)
}
