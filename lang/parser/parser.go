// Package parser assembles the flat, prefix-serialized word sequences that
// lang/scanner produces into binary application trees (§4.A).
package parser

import (
	"fmt"
	"go/scanner"

	"github.com/galaxyclient/galaxy/lang/ast"
	scan "github.com/galaxyclient/galaxy/lang/scanner"
	"github.com/galaxyclient/galaxy/lang/token"
)

type (
	Error     = scanner.Error
	ErrorList = scanner.ErrorList
)

// ParseFile scans and parses filename into a Program. The returned error,
// if non-nil, is always an ErrorList (§7 ParseError).
func ParseFile(filename string) (ast.Program, error) {
	lines, err := scan.ScanFile(filename)
	if err != nil {
		return nil, err
	}
	return parseLines(lines)
}

// ParseSource is like ParseFile but reads from src instead of disk.
func ParseSource(filename string, src []byte) (ast.Program, error) {
	lines, err := scan.ScanSource(filename, src)
	if err != nil {
		return nil, err
	}
	return parseLines(lines)
}

func parseLines(lines []scan.Line) (ast.Program, error) {
	var el ErrorList
	prog := make(ast.Program, 0, len(lines))
	for _, ln := range lines {
		expr, err := WordsToTree(ln.Body)
		if err != nil {
			el.Add(ln.Pos, err.Error())
			continue
		}
		prog = append(prog, ast.Definition{Var: ln.Var, Expr: expr, Pos: ln.Pos})
	}
	el.Sort()
	if err := el.Err(); err != nil {
		return nil, err
	}
	return prog, nil
}

// partial is the parse stack's element type (§4.A): a marker awaiting both
// operands of an application, a marker awaiting only the right operand
// (left already fixed), or a completed subtree.
type partial struct {
	kind partialKind
	left ast.Expr // meaningful only when kind == pendingRight
	tree ast.Expr // meaningful only when kind == completeTree
}

type partialKind int

const (
	pendingBoth partialKind = iota
	pendingRight
	completeTree
)

// WordsToTree assembles a single flat word sequence into one application
// tree, following the single-pass stack construction of §4.A: "ap" pushes a
// pending-both marker; any other token attaches as the next available slot,
// collapsing pendingRight markers into App nodes as it bubbles up the
// stack.
func WordsToTree(words []scan.Word) (ast.Expr, error) {
	var stack []partial

	for _, w := range words {
		var top ast.Expr
		if w.Leaf.Token == token.AP {
			stack = append(stack, partial{kind: pendingBoth})
			continue
		}
		top = w.Leaf

		for {
			if len(stack) == 0 {
				stack = append(stack, partial{kind: completeTree, tree: top})
				break
			}
			last := stack[len(stack)-1]
			switch last.kind {
			case pendingBoth:
				stack[len(stack)-1] = partial{kind: pendingRight, left: top}
				top = nil
			case pendingRight:
				stack = stack[:len(stack)-1]
				top = ast.NewApp(last.left, top)
				continue
			case completeTree:
				return nil, fmt.Errorf("trailing word after a completed expression")
			}
			break
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("unterminated application: expression did not collapse to a single tree")
	}
	top := stack[0]
	if top.kind != completeTree {
		return nil, fmt.Errorf("unterminated application: missing operand for 'ap'")
	}
	return top.tree, nil
}
