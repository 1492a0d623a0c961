package reduce

import (
	"math/big"

	"github.com/galaxyclient/galaxy/lang/ast"
	"github.com/galaxyclient/galaxy/lang/token"
)

// W is the weak head normal form (§3 "Work form"): a token on its own, or a
// primitive partially applied to one, two, or three pending arguments. The
// pending arguments are unreduced ast.Expr — they are forced only when the
// primitive that holds them demands it.
type W interface {
	isW()
	String() string
}

// WLeaf is a token that is neither Var nor an application: a boolean, an
// integer literal, or a nullary/unsaturated combinator name. Int is non-nil
// only when Token == token.INT.
type WLeaf struct {
	Token token.Token
	Int   *big.Int
}

func leaf(tok token.Token) WLeaf { return WLeaf{Token: tok} }

func leafFromAST(l ast.Leaf) WLeaf { return WLeaf{Token: l.Token, Int: l.Int} }

func intLeaf(n *big.Int) WLeaf { return WLeaf{Token: token.INT, Int: n} }

func (WLeaf) isW() {}
func (w WLeaf) String() string {
	if w.Token == token.INT && w.Int != nil {
		return w.Int.String()
	}
	return w.Token.String()
}

// WAp1 is a primitive with one pending argument.
type WAp1 struct {
	Token token.Token
	A1    ast.Expr
}

func (WAp1) isW()              {}
func (w WAp1) String() string { return "(" + w.Token.String() + " " + w.A1.String() + ")" }

// WAp2 is a primitive with two pending arguments.
type WAp2 struct {
	Token  token.Token
	A1, A2 ast.Expr
}

func (WAp2) isW() {}
func (w WAp2) String() string {
	return "(" + w.Token.String() + " " + w.A1.String() + " " + w.A2.String() + ")"
}

// WAp3 is a primitive with three pending arguments; it is terminal for
// arity — a fourth application forces evaluation of its rewrite rule (if it
// has one) before the new argument can be attached (§3).
type WAp3 struct {
	Token      token.Token
	A1, A2, A3 ast.Expr
}

func (WAp3) isW() {}
func (w WAp3) String() string {
	return "(" + w.Token.String() + " " + w.A1.String() + " " + w.A2.String() + " " + w.A3.String() + ")"
}

// extend implements the arity-promotion table of §4.D: attaching one more
// argument to a WHNF either grows its pending-argument count or, for an
// already-saturated WAp3, is a fatal over-application.
func extend(w W, arg ast.Expr) (W, error) {
	switch t := w.(type) {
	case WLeaf:
		return WAp1{Token: t.Token, A1: arg}, nil
	case WAp1:
		return WAp2{Token: t.Token, A1: t.A1, A2: arg}, nil
	case WAp2:
		return WAp3{Token: t.Token, A1: t.A1, A2: t.A2, A3: arg}, nil
	case WAp3:
		return nil, &Error{Kind: OverApplication, Msg: "over-application of " + t.Token.String(), Construct: t.String()}
	default:
		panic("reduce: unknown W type")
	}
}
