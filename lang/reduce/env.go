// Package reduce implements the environment (§4.C) and the weak-head-normal-
// form reducer (§4.D) as one package: the two are, in the spec's own words,
// "tightly coupled" — lookup_whnf calls the reducer, and the reducer's Var
// case calls back into the environment — so they are grouped the way the
// teacher groups its own mutually-recursive runtime pieces (frame, thread,
// opcode and value all live together in its machine package).
package reduce

import (
	"github.com/dolthub/swiss"

	"github.com/galaxyclient/galaxy/lang/ast"
)

// entryState is the lifecycle of one environment slot (§3 "Environment").
type entryState int8

const (
	stateUnreduced entryState = iota
	stateReducing             // taken out for re-entrant-demand detection
	stateReduced
)

type entry struct {
	state entryState
	expr  ast.Expr // valid while Unreduced
	whnf  W        // valid once Reduced
}

// Env maps variables to either their unreduced expression or their cached
// weak-head-normal form, and mints fresh variables for the S-combinator's
// sharing device (§4.D). The zero value is not usable; construct with New.
//
// Entries are backed by a swiss-table map keyed on the variable's int64 id,
// the same map implementation the teacher uses to back its own highest-churn
// key/value store (lang/machine/map.go), since env lookups are the hottest
// path in the reducer.
type Env struct {
	entries  *swiss.Map[int64, *entry]
	nextFree int64 // next fresh id to hand out, strictly decreasing from -2
}

// New returns an empty environment ready to hold size definitions.
func New(size int) *Env {
	return &Env{
		entries:  swiss.NewMap[int64, *entry](uint32(size)),
		nextFree: int64(ast.GalaxyVar) - 1, // -2, -3, ... never collides with a parsed id
	}
}

// Insert records an unreduced definition for v, replacing any prior entry.
func (e *Env) Insert(v ast.Var, expr ast.Expr) {
	e.entries.Put(int64(v), &entry{state: stateUnreduced, expr: expr})
}

// Fresh allocates a variable id guaranteed not to collide with any parsed
// id or any previously returned fresh id (§4.C). The fresh variable is not
// itself inserted into the environment; callers bind it with Insert.
func (e *Env) Fresh() ast.Var {
	v := e.nextFree
	e.nextFree--
	return ast.Var(v)
}

// LookupWHNF returns the weak head normal form of v, reducing and caching it
// on first demand (§4.C). While a definition is being reduced, its slot is
// marked "reducing"; a re-entrant demand for the same variable through an
// ill-founded (non-lazy) cycle is reported as a ReductionError instead of
// looping forever.
func (e *Env) LookupWHNF(v ast.Var) (W, error) {
	ent, ok := e.entries.Get(int64(v))
	if !ok {
		return nil, &Error{Kind: UnresolvedVariable, Msg: "unresolved variable", Construct: v.String()}
	}

	switch ent.state {
	case stateReduced:
		return ent.whnf, nil
	case stateReducing:
		return nil, &Error{Kind: CyclicDemand, Msg: "cyclic definition demand", Construct: v.String()}
	}

	expr := ent.expr
	ent.state = stateReducing
	ent.expr = nil

	w, err := reduceLeftLoop(expr, e)
	if err != nil {
		// Leave the slot marked "reducing" so a subsequent demand fails with
		// a cyclic-demand error instead of silently re-attempting a
		// reduction that is known to fail.
		return nil, err
	}

	ent.state = stateReduced
	ent.whnf = w
	return w, nil
}
