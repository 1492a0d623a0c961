// Package value projects a fully reduced expression into a concrete data
// value (§4.E) and renders/parses that value's text form (§6).
package value

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/galaxyclient/galaxy/lang/ast"
	"github.com/galaxyclient/galaxy/lang/reduce"
	"github.com/galaxyclient/galaxy/lang/token"
)

// V is a fully forced value: Nil, an arbitrary-precision integer, or a cons
// pair of two further values. Unlike W, a V has no pending arguments left —
// every reachable cons cell has already been forced.
type V interface {
	isV()
	String() string
}

type VNil struct{}

func (VNil) isV()             {}
func (v VNil) String() string { return Format(v) }

type VInt struct{ N *big.Int }

func (VInt) isV()             {}
func (v VInt) String() string { return v.N.String() }

type VCons struct {
	Head V
	Tail V
}

func (VCons) isV() {}

// String renders v using the cons-list shorthand of §6 when the spine
// terminates in VNil, and the plain pair form otherwise.
func (v VCons) String() string { return Format(v) }

// Project forces e to a full value against env, recursively demanding both
// sides of every cons pair (§4.E). Project panics on nothing; a reduction
// failure surfaces as the underlying *reduce.Error and an ill-formed WHNF
// that cannot be a value surfaces as *Error, both through the ordinary
// error return.
func Project(e ast.Expr, env *reduce.Env) (V, error) {
	w, err := reduce.Reduce(e, env)
	if err != nil {
		return nil, err
	}
	return projectW(w, env)
}

// Error is a fatal ProjectionError (§7): Construct carries the token
// sequence of the weak head normal form that could not be projected to a
// value, the same diagnostic a ReductionError carries for a reduction
// failure.
type Error struct {
	Msg       string
	Construct string
}

func (e *Error) Error() string {
	if e.Construct == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Msg, e.Construct)
}

func projectW(w reduce.W, env *reduce.Env) (V, error) {
	switch t := w.(type) {
	case reduce.WLeaf:
		switch t.Token {
		case token.NIL:
			return VNil{}, nil
		case token.INT:
			return VInt{N: t.Int}, nil
		default:
			return nil, &Error{Msg: "value: cannot project bare token to a value", Construct: t.String()}
		}
	case reduce.WAp2:
		if t.Token != token.CONS && t.Token != token.VEC {
			return nil, &Error{Msg: "value: cannot project to a value", Construct: t.String()}
		}
		head, err := value(t.A1, env)
		if err != nil {
			return nil, err
		}
		tail, err := value(t.A2, env)
		if err != nil {
			return nil, err
		}
		return VCons{Head: head, Tail: tail}, nil
	default:
		return nil, &Error{Msg: "value: cannot project a partially applied primitive to a value", Construct: w.String()}
	}
}

func value(e ast.Expr, env *reduce.Env) (V, error) {
	w, err := reduce.Reduce(e, env)
	if err != nil {
		return nil, err
	}
	return projectW(w, env)
}

// Quote turns a forced value back into an application tree that reduces to
// itself, so a value parsed from the CLI or from a demodulated wire message
// can be spliced into a program as an argument expression.
func Quote(v V) ast.Expr {
	switch t := v.(type) {
	case VNil:
		return ast.NewToken(token.NIL)
	case VInt:
		return ast.NewInt(t.N)
	case VCons:
		return ast.NewApp(ast.NewApp(ast.NewToken(token.CONS), Quote(t.Head)), Quote(t.Tail))
	default:
		panic(fmt.Sprintf("value: cannot quote %T", v))
	}
}

// Format renders v in the §6 text format: a cons cell whose spine ends in
// Nil prints as a comma-separated list "[a, b, c]" (Nil itself prints as
// the empty list "[]"); any other cons cell prints as a pair "(a, b)"; an
// integer prints in decimal.
func Format(v V) string {
	var b strings.Builder
	formatInto(&b, v)
	return b.String()
}

func formatInto(b *strings.Builder, v V) {
	if isConsList(v) {
		b.WriteByte('[')
		node := v
		first := true
		for {
			c, ok := node.(VCons)
			if !ok {
				break
			}
			if !first {
				b.WriteString(", ")
			}
			first = false
			formatInto(b, c.Head)
			node = c.Tail
		}
		b.WriteByte(']')
		return
	}
	switch t := v.(type) {
	case VNil:
		b.WriteString("[]")
	case VInt:
		b.WriteString(t.N.String())
	case VCons:
		b.WriteByte('(')
		formatInto(b, t.Head)
		b.WriteString(", ")
		formatInto(b, t.Tail)
		b.WriteByte(')')
	}
}

// isConsList reports whether v's spine of Tail links terminates in VNil,
// the same walk the original Display impl performs before choosing between
// list and pair notation.
func isConsList(v V) bool {
	node := v
	for {
		c, ok := node.(VCons)
		if !ok {
			break
		}
		node = c.Tail
	}
	_, ok := node.(VNil)
	return ok
}

// Parse reads the §6 text format back into a V. It accepts exactly the
// grammar Format produces: integers, "(a, b)" pairs, and "[a, b, ...]"
// lists (including the empty list "[]", which parses to Nil).
func Parse(s string) (V, error) {
	v, rest, err := parseValue(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(rest) != "" {
		return nil, fmt.Errorf("value: unexpected trailing input %q", rest)
	}
	return v, nil
}

func parseValue(s string) (V, string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, "", fmt.Errorf("value: unexpected end of input")
	}
	switch {
	case s[0] == '(':
		return parsePair(s)
	case s[0] == '[':
		return parseList(s)
	case s[0] == '-' || isDigit(s[0]):
		return parseInt(s)
	default:
		return nil, "", fmt.Errorf("value: unexpected input %q", s)
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func parseInt(s string) (V, string, error) {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == start {
		return nil, "", fmt.Errorf("value: malformed integer in %q", s)
	}
	n, ok := new(big.Int).SetString(s[:i], 10)
	if !ok {
		return nil, "", fmt.Errorf("value: malformed integer in %q", s)
	}
	return VInt{N: n}, s[i:], nil
}

func parsePair(s string) (V, string, error) {
	rest, ok := cut(s, "(")
	if !ok {
		return nil, "", fmt.Errorf("value: expected '(' in %q", s)
	}
	head, rest, err := parseValue(rest)
	if err != nil {
		return nil, "", err
	}
	rest, ok = cut(strings.TrimSpace(rest), ",")
	if !ok {
		return nil, "", fmt.Errorf("value: expected ',' in %q", s)
	}
	tail, rest, err := parseValue(rest)
	if err != nil {
		return nil, "", err
	}
	rest, ok = cut(strings.TrimSpace(rest), ")")
	if !ok {
		return nil, "", fmt.Errorf("value: expected ')' in %q", s)
	}
	return VCons{Head: head, Tail: tail}, rest, nil
}

func parseList(s string) (V, string, error) {
	rest, ok := cut(s, "[")
	if !ok {
		return nil, "", fmt.Errorf("value: expected '[' in %q", s)
	}
	var elems []V
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "]") {
		return VNil{}, rest[1:], nil
	}
	for {
		var elem V
		var err error
		elem, rest, err = parseValue(rest)
		if err != nil {
			return nil, "", err
		}
		elems = append(elems, elem)
		rest = strings.TrimSpace(rest)
		if r, ok := cut(rest, ","); ok {
			rest = strings.TrimSpace(r)
			continue
		}
		break
	}
	rest, ok = cut(rest, "]")
	if !ok {
		return nil, "", fmt.Errorf("value: expected ']' in %q", s)
	}
	result := V(VNil{})
	for i := len(elems) - 1; i >= 0; i-- {
		result = VCons{Head: elems[i], Tail: result}
	}
	return result, rest, nil
}

func cut(s, prefix string) (string, bool) {
	if strings.HasPrefix(s, prefix) {
		return s[len(prefix):], true
	}
	return s, false
}
