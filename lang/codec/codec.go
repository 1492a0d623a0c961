// Package codec implements the self-describing bit-string wire format
// ("modulate"/"demodulate", §4.B): every value carries its own shape and
// width, so a demodulator never needs an out-of-band schema.
//
// The wire format is specified here as a string of '0'/'1' characters
// rather than a packed bitset, matching the original implementation's own
// choice and keeping Modulate/Demodulate trivially testable against the
// literal fixture strings in §8.
package codec

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/galaxyclient/galaxy/lang/value"
)

// Modulate encodes v as a bit string.
func Modulate(v value.V) string {
	var b strings.Builder
	modulateInto(&b, v)
	return b.String()
}

func modulateInto(b *strings.Builder, v value.V) {
	switch t := v.(type) {
	case value.VNil:
		b.WriteString("00")
	case value.VCons:
		b.WriteString("11")
		modulateInto(b, t.Head)
		modulateInto(b, t.Tail)
	case value.VInt:
		modulateInt(b, t.N)
	default:
		panic(fmt.Sprintf("codec: cannot modulate %T", v))
	}
}

func modulateInt(b *strings.Builder, n *big.Int) {
	if n.Sign() < 0 {
		b.WriteString("10")
	} else {
		b.WriteString("01")
	}
	mag := new(big.Int).Abs(n)

	width := intWidth(mag)
	b.WriteString(strings.Repeat("1", width/4))
	b.WriteByte('0')

	if mag.Sign() > 0 {
		bits := mag.Text(2)
		padding := width - len(bits)
		b.WriteString(strings.Repeat("0", padding))
		b.WriteString(bits)
	}
}

// intWidth returns the number of bits (always a multiple of 4) needed to
// hold mag's binary representation, the unary-length-prefix unit of §4.B.
func intWidth(mag *big.Int) int {
	width := 0
	remaining := new(big.Int).Set(mag)
	for remaining.Sign() > 0 {
		width += 4
		remaining.Rsh(remaining, 4)
	}
	return width
}

// Error is a fatal CodecError (§7): Offset is the bit offset into the
// original input at which the malformed or truncated encoding was
// detected, the codec's analogue of a parse error's line number.
type Error struct {
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("codec: bit offset %d: %s", e.Offset, e.Msg)
}

// Demodulate decodes the leading value off s, returning it along with
// whatever bits remain. A malformed or truncated encoding is reported as an
// error rather than a panic, unlike the function this is grounded on.
func Demodulate(s string) (value.V, string, error) {
	return demodulate(s, 0)
}

func demodulate(s string, offset int) (value.V, string, error) {
	if len(s) < 2 {
		return nil, "", &Error{Offset: offset, Msg: fmt.Sprintf("truncated encoding %q", s)}
	}
	switch s[0:2] {
	case "00":
		return value.VNil{}, s[2:], nil
	case "11":
		head, rest, err := demodulate(s[2:], offset+2)
		if err != nil {
			return nil, "", err
		}
		consumed := len(s[2:]) - len(rest)
		tail, rest, err := demodulate(rest, offset+2+consumed)
		if err != nil {
			return nil, "", err
		}
		return value.VCons{Head: head, Tail: tail}, rest, nil
	case "01", "10":
		return demodulateInt(s, offset)
	default:
		return nil, "", &Error{Offset: offset, Msg: fmt.Sprintf("cannot demodulate %q", s)}
	}
}

func demodulateInt(s string, offset int) (value.V, string, error) {
	sign := 1
	if s[0:2] == "10" {
		sign = -1
	}
	rest := s[2:]

	n := strings.IndexByte(rest, '0')
	if n < 0 {
		return nil, "", &Error{Offset: offset + 2, Msg: fmt.Sprintf("malformed integer length prefix in %q", s)}
	}
	width := n * 4
	rest = rest[n+1:]
	if width == 0 {
		return value.VInt{N: big.NewInt(0)}, rest, nil
	}
	if len(rest) < width {
		return nil, "", &Error{Offset: offset + 2 + n + 1, Msg: fmt.Sprintf("truncated integer payload in %q", s)}
	}

	mag, ok := new(big.Int).SetString(rest[:width], 2)
	if !ok {
		return nil, "", &Error{Offset: offset + 2 + n + 1, Msg: fmt.Sprintf("malformed integer payload in %q", s)}
	}
	mag.Mul(mag, big.NewInt(int64(sign)))
	return value.VInt{N: mag}, rest[width:], nil
}
