// Reduction rules (§4.D). reduceLeftLoop is the trampoline between
// "classify" (turn an Expr into a W) and "step" (try to fire one rewrite
// rule); the repeated stepping of one W is an explicit loop. classify itself
// recurses once per application on the left spine, so the Go call stack
// grows with the length of a left spine of "ap"s.
package reduce

import (
	"math/big"

	"github.com/galaxyclient/galaxy/lang/ast"
	"github.com/galaxyclient/galaxy/lang/token"
)

// Reduce drives e to weak head normal form against env.
func Reduce(e ast.Expr, env *Env) (W, error) {
	return reduceLeftLoop(e, env)
}

func reduceLeftLoop(e ast.Expr, env *Env) (W, error) {
	w, err := classify(e, env)
	if err != nil {
		return nil, err
	}
	for {
		next, changed, err := step(w, env)
		if err != nil {
			return nil, err
		}
		if !changed {
			return w, nil
		}
		w = next
	}
}

// classify turns an expression into a W: a Var leaf demands its definition
// from the environment, a non-Var leaf is already a WLeaf, and an App
// reduces its function position to WHNF and then extends it with the
// (still unreduced) argument.
func classify(e ast.Expr, env *Env) (W, error) {
	switch n := e.(type) {
	case ast.Leaf:
		if n.Token == token.VAR {
			return env.LookupWHNF(n.Variable)
		}
		return leafFromAST(n), nil
	case ast.App:
		fw, err := reduceLeftLoop(n.Func, env)
		if err != nil {
			return nil, err
		}
		return extend(fw, n.Arg)
	default:
		panic("reduce: unknown Expr type")
	}
}

// step tries to fire the rewrite rule for w's primitive, given the number of
// pending arguments it already carries. changed=false means w is already in
// weak head normal form.
func step(w W, env *Env) (next W, changed bool, err error) {
	switch v := w.(type) {
	case WLeaf:
		return nil, false, nil
	case WAp1:
		return step1(v, env)
	case WAp2:
		return step2(v, env)
	case WAp3:
		return step3(v, env)
	default:
		panic("reduce: unknown W type")
	}
}

func step1(a WAp1, env *Env) (W, bool, error) {
	switch a.Token {
	// Lazy partial applications: not enough arguments yet.
	case token.TRUE, token.FALSE, token.S, token.C, token.B,
		token.CONS, token.VEC, token.IF0,
		token.ADD, token.MUL, token.DIV, token.EQ, token.LT,
		token.MODULATE, token.DEMODULATE, token.SEND,
		token.DRAW, token.CHECKERBOARD, token.DRAWLIST:
		return nil, false, nil

	case token.NIL:
		// Nil applied to any argument behaves as the constant-true function
		// (§4.D, §9 "open question" — preserved verbatim).
		return leaf(token.TRUE), true, nil

	case token.IDENT_I:
		argW, err := reduceLeftLoop(a.A1, env)
		if err != nil {
			return nil, false, err
		}
		return argW, true, nil

	case token.INC, token.DEC, token.NEG, token.PWR2:
		n, err := forceInt(a.A1, env, a.Token, a.String())
		if err != nil {
			return nil, false, err
		}
		return intLeaf(applyUnaryArith(a.Token, n)), true, nil

	case token.CAR, token.CDR:
		argW, err := reduceLeftLoop(a.A1, env)
		if err != nil {
			return nil, false, err
		}
		if isNil(argW) {
			// Car/Cdr of Nil return True — looks like a fallback rather than
			// a principled rule; preserved verbatim (§9).
			return leaf(token.TRUE), true, nil
		}
		pairA, pairB, ok := asPair(argW)
		if !ok {
			return nil, false, typeError(a.String(), "%s requires a cons pair or nil, got %s", a.Token, argW.String())
		}
		target := pairA
		if a.Token == token.CDR {
			target = pairB
		}
		result, err := reduceLeftLoop(target, env)
		return result, true, err

	case token.ISNIL:
		argW, err := reduceLeftLoop(a.A1, env)
		if err != nil {
			return nil, false, err
		}
		if isNil(argW) {
			return leaf(token.TRUE), true, nil
		}
		if _, _, ok := asPair(argW); ok {
			return leaf(token.FALSE), true, nil
		}
		return nil, false, typeError(a.String(), "isnil requires a cons pair or nil, got %s", argW.String())

	default:
		return nil, false, typeError(a.String(), "%s is not a unary primitive", a.Token)
	}
}

func step2(a WAp2, env *Env) (W, bool, error) {
	switch a.Token {
	case token.CONS, token.VEC, token.S, token.C, token.B, token.IF0:
		// Not enough arguments yet (Cons/Vec need a 3rd to become a Church
		// pair application; S/C/B/If0 need a 3rd argument to fire at all).
		return nil, false, nil

	case token.TRUE:
		w, err := reduceLeftLoop(a.A1, env)
		return w, true, err
	case token.FALSE:
		w, err := reduceLeftLoop(a.A2, env)
		return w, true, err

	case token.ADD, token.MUL, token.DIV, token.EQ, token.LT:
		x, err := forceInt(a.A1, env, a.Token, a.String())
		if err != nil {
			return nil, false, err
		}
		y, err := forceInt(a.A2, env, a.Token, a.String())
		if err != nil {
			return nil, false, err
		}
		return applyBinary(a.Token, x, y, a.String())

	default:
		return nil, false, typeError(a.String(), "%s is not a binary primitive", a.Token)
	}
}

func step3(a WAp3, env *Env) (W, bool, error) {
	switch a.Token {
	case token.S:
		fresh := env.Fresh()
		env.Insert(fresh, a.A3) // bind z once; x(z') and y(z') share this thunk
		xz := ast.NewApp(a.A1, ast.NewVar(fresh))
		yz := ast.NewApp(a.A2, ast.NewVar(fresh))
		xzW, err := reduceLeftLoop(xz, env)
		if err != nil {
			return nil, false, err
		}
		result, err := extend(xzW, yz)
		return result, true, err

	case token.C:
		newExpr := ast.NewApp(ast.NewApp(a.A1, a.A3), a.A2)
		w, err := reduceLeftLoop(newExpr, env)
		return w, true, err

	case token.B:
		newExpr := ast.NewApp(a.A1, ast.NewApp(a.A2, a.A3))
		w, err := reduceLeftLoop(newExpr, env)
		return w, true, err

	case token.IF0:
		condW, err := reduceLeftLoop(a.A1, env)
		if err != nil {
			return nil, false, err
		}
		n, ok := asIntW(condW)
		if !ok {
			return nil, false, typeError(a.String(), "if0 condition must be an integer, got %s", condW.String())
		}
		branch := a.A3
		if n.Sign() == 0 {
			branch = a.A2
		}
		w, err := reduceLeftLoop(branch, env)
		return w, true, err

	case token.CONS, token.VEC:
		// Church pair: Cons(a,b)(z) = z(a)(b).
		newExpr := ast.NewApp(ast.NewApp(a.A3, a.A1), a.A2)
		w, err := reduceLeftLoop(newExpr, env)
		return w, true, err

	default:
		// Saturated but no rule: e.g. WAp3(Add, a, b, x) — a genuine
		// over-application will only be reported if a fourth argument
		// arrives (extend on this WAp3).
		return nil, false, nil
	}
}

func forceInt(e ast.Expr, env *Env, owner token.Token, construct string) (*big.Int, error) {
	w, err := reduceLeftLoop(e, env)
	if err != nil {
		return nil, err
	}
	n, ok := asIntW(w)
	if !ok {
		return nil, typeError(construct, "%s requires an integer argument, got %s", owner, w.String())
	}
	return n, nil
}

func asIntW(w W) (*big.Int, bool) {
	l, ok := w.(WLeaf)
	if !ok || l.Token != token.INT {
		return nil, false
	}
	return l.Int, true
}

func isNil(w W) bool {
	l, ok := w.(WLeaf)
	return ok && l.Token == token.NIL
}

func asPair(w W) (ast.Expr, ast.Expr, bool) {
	p, ok := w.(WAp2)
	if !ok || (p.Token != token.CONS && p.Token != token.VEC) {
		return nil, nil, false
	}
	return p.A1, p.A2, true
}

func applyUnaryArith(tok token.Token, n *big.Int) *big.Int {
	switch tok {
	case token.INC:
		return new(big.Int).Add(n, big.NewInt(1))
	case token.DEC:
		return new(big.Int).Sub(n, big.NewInt(1))
	case token.NEG:
		return new(big.Int).Neg(n)
	case token.PWR2:
		return new(big.Int).Lsh(big.NewInt(1), uint(n.Int64()))
	default:
		panic("reduce: not a unary arithmetic token")
	}
}

func applyBinary(tok token.Token, x, y *big.Int, construct string) (W, bool, error) {
	switch tok {
	case token.ADD:
		return intLeaf(new(big.Int).Add(x, y)), true, nil
	case token.MUL:
		return intLeaf(new(big.Int).Mul(x, y)), true, nil
	case token.DIV:
		if y.Sign() == 0 {
			return nil, false, &Error{Kind: DivisionByZero, Msg: "division by zero", Construct: construct}
		}
		return intLeaf(new(big.Int).Quo(x, y)), true, nil // Quo truncates toward zero
	case token.EQ:
		return leaf(boolToken(x.Cmp(y) == 0)), true, nil
	case token.LT:
		return leaf(boolToken(x.Cmp(y) < 0)), true, nil
	default:
		panic("reduce: not a binary arithmetic token")
	}
}

func boolToken(b bool) token.Token {
	if b {
		return token.TRUE
	}
	return token.FALSE
}
