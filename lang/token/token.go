// Package token defines the lexical tokens of the combinator language and
// the source positions used to report errors against them.
package token

import "fmt"

// A Token identifies the lexical class of a word in a definition line.
type Token int8

//nolint:revive
const (
	ILLEGAL Token = iota
	EOF

	AP // the literal "ap", signals a binary application

	INT // a signed decimal integer literal
	VAR // ":N" or the bare identifier "galaxy"

	TRUE
	FALSE

	// unary primitives
	INC
	DEC
	NEG
	PWR2
	CAR
	CDR
	ISNIL
	IDENT_I // "i", the identity combinator (named to avoid colliding with Go's I)

	// binary primitives
	ADD
	MUL
	DIV
	EQ
	LT

	// combinators
	S
	C
	B

	IF0

	// lists
	CONS
	NIL
	VEC // alias for Cons, historically used for pairs of ints

	// protocol and drawing markers: part of the closed token set (§3) but
	// uninterpreted by the reducer, which has no rewrite rule for them.
	MODULATE
	DEMODULATE
	SEND
	DRAW
	CHECKERBOARD
	DRAWLIST

	maxToken
)

func (tok Token) String() string {
	if tok < 0 || int(tok) >= len(tokenNames) {
		return fmt.Sprintf("token(%d)", int(tok))
	}
	return tokenNames[tok]
}

// IsPrimitive reports whether tok is one of the fixed-arity primitives that
// the reducer knows an arity-promotion and rewrite rule for (i.e. every
// token except EOF/ILLEGAL/INT/VAR/AP, which are handled structurally).
func (tok Token) IsPrimitive() bool {
	switch tok {
	case ILLEGAL, EOF, AP, INT, VAR:
		return false
	default:
		return true
	}
}

var tokenNames = [...]string{
	ILLEGAL:      "illegal token",
	EOF:          "end of input",
	AP:           "ap",
	INT:          "int literal",
	VAR:          "variable",
	TRUE:         "t",
	FALSE:        "f",
	INC:          "inc",
	DEC:          "dec",
	NEG:          "neg",
	PWR2:         "pwr2",
	CAR:          "car",
	CDR:          "cdr",
	ISNIL:        "isnil",
	IDENT_I:      "i",
	ADD:          "add",
	MUL:          "mul",
	DIV:          "div",
	EQ:           "eq",
	LT:           "lt",
	S:            "s",
	C:            "c",
	B:            "b",
	IF0:          "if0",
	CONS:         "cons",
	NIL:          "nil",
	VEC:          "vec",
	MODULATE:     "modulate",
	DEMODULATE:   "demodulate",
	SEND:         "send",
	DRAW:         "draw",
	CHECKERBOARD: "checkerboard",
	DRAWLIST:     "draw_list",
}

// keywords maps the reserved identifiers of §3 to their Token, for every
// token that is not a literal integer or variable reference.
var keywords = func() map[string]Token {
	m := make(map[string]Token, len(tokenNames))
	for tok, name := range tokenNames {
		switch Token(tok) {
		case ILLEGAL, EOF, AP, INT, VAR:
			continue
		default:
			m[name] = Token(tok)
		}
	}
	// aliases observed in galaxy programs in the wild.
	m["mul"] = MUL
	m["t"] = TRUE
	m["f"] = FALSE
	return m
}()

// Lookup returns the Token for a reserved word, and ok=false if word is not
// one of the reserved identifiers (i.e. it must be parsed as an INT or VAR).
func Lookup(word string) (Token, bool) {
	tok, ok := keywords[word]
	return tok, ok
}
