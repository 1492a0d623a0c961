// Package ast defines the application-tree expression representation (§3)
// built by lang/parser and consumed by lang/reduce.
package ast

import (
	"math/big"
	"strconv"

	"github.com/galaxyclient/galaxy/lang/token"
)

// Var identifies a variable, either one parsed from source (":N", always
// >= 0, or the distinguished entry point "galaxy" which is aliased to -1)
// or one minted by the reducer's fresh-variable allocator (§4.C), which
// uses ids < -1 to guarantee they never collide with a parsed id.
type Var int64

// GalaxyVar is the conventional id of the program's entry point.
const GalaxyVar Var = -1

func (v Var) String() string {
	if v == GalaxyVar {
		return "galaxy"
	}
	return ":" + strconv.FormatInt(int64(v), 10)
}

// Expr is the sum type of application-tree nodes: Leaf or App. Expressions
// are created during parsing and by the reducer (for S/B/C rewrites); they
// are never mutated in place.
type Expr interface {
	isExpr()
	String() string
}

// Leaf is a single token: a primitive, a boolean, a literal integer, or a
// variable reference. Int is non-nil only when Token == token.INT; Variable
// is meaningful only when Token == token.VAR.
type Leaf struct {
	Token    token.Token
	Int      *big.Int
	Variable Var
}

func (Leaf) isExpr() {}

func (l Leaf) String() string {
	switch l.Token {
	case token.INT:
		return l.Int.String()
	case token.VAR:
		return l.Variable.String()
	default:
		return l.Token.String()
	}
}

// App is a binary application; each node exclusively owns its two children.
type App struct {
	Func Expr
	Arg  Expr
}

func (App) isExpr() {}

func (a App) String() string {
	return "ap " + a.Func.String() + " " + a.Arg.String()
}

// NewToken builds a Leaf for any reserved-word token (not INT or VAR).
func NewToken(tok token.Token) Leaf { return Leaf{Token: tok} }

// NewInt builds a Leaf wrapping an arbitrary-precision integer literal.
func NewInt(n *big.Int) Leaf { return Leaf{Token: token.INT, Int: n} }

// NewVar builds a Leaf referencing a variable.
func NewVar(v Var) Leaf { return Leaf{Token: token.VAR, Variable: v} }

// NewApp builds a binary application node.
func NewApp(fn, arg Expr) App { return App{Func: fn, Arg: arg} }

// Definition is one parsed program line: a variable bound to its
// unevaluated expression tree, along with the source position used for
// error reporting.
type Definition struct {
	Var  Var
	Expr Expr
	Pos  token.Position
}

// Program is an ordered sequence of definitions (§3). By convention the
// last definition's Var is the program's entry point.
type Program []Definition

// EntryPoint returns the variable of the last definition, or false if the
// program is empty.
func (p Program) EntryPoint() (Var, bool) {
	if len(p) == 0 {
		return 0, false
	}
	return p[len(p)-1].Var, true
}

// Arity classifies an expression by how many arguments are applied to its
// left-most leaf token (§3 "Arity view"), always reading the left spine
// first. It is a read-only convenience lens; nothing in this module calls
// it, and the reducer itself works directly on Expr/WHNF and does not need
// to classify a whole tree at once.
type Arity struct {
	Token token.Token
	Args  []Expr // 0, 1, 2, or 3 arguments; len(Args) > 3 means NestedApp
}

// NestedApp reports whether this Arity represents an application nest four
// or more levels deep (no fixed-arity primitive can be the head of it).
func (a Arity) NestedApp() bool { return len(a.Args) > 3 }

// GetArity computes the Arity view of e by walking its left spine.
func GetArity(e Expr) Arity {
	var args []Expr
	cur := e
	for {
		app, ok := cur.(App)
		if !ok {
			break
		}
		args = append(args, app.Arg)
		cur = app.Func
	}
	// args were collected head-to-tail from the outermost application
	// inward, so reverse them to left-to-right argument order.
	for i, j := 0, len(args)-1; i < j; i, j = i+1, j-1 {
		args[i], args[j] = args[j], args[i]
	}
	leaf, ok := cur.(Leaf)
	if !ok {
		// cur is itself an App only if the loop above is wrong; defensive.
		return Arity{}
	}
	return Arity{Token: leaf.Token, Args: args}
}
