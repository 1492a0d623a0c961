// Package scanner tokenizes combinator-language source lines (§4.A). Each
// line is "name = word (word)*"; name is either the literal "galaxy" or
// ":" followed by a signed decimal integer, and each word is either the
// literal "ap" or one of the reserved primitive identifiers, a signed
// decimal integer, or a ":N" variable reference.
package scanner

import (
	"bufio"
	"fmt"
	"go/scanner"
	"math/big"
	"os"
	"strings"

	"github.com/galaxyclient/galaxy/lang/ast"
	"github.com/galaxyclient/galaxy/lang/token"
)

// Error and ErrorList are re-exported from the standard library's go/scanner
// package, the same aliasing idiom the teacher uses for its own scanner
// errors: a single malformed line becomes an *Error, a whole file's worth of
// malformed lines accumulate into an ErrorList.
type (
	Error     = scanner.Error
	ErrorList = scanner.ErrorList
)

// PrintError prints err (an Error, an ErrorList, or any other error) to w.
var PrintError = scanner.PrintError

// Word is one scanned token, already carrying its literal payload (the
// integer value for INT, the variable id for VAR) so the parser can attach
// it directly to an ast.Leaf without re-parsing.
type Word struct {
	Leaf ast.Leaf
	Pos  token.Position
}

// Line is the tokenized form of one definition: the bound variable and the
// flat sequence of words making up its body.
type Line struct {
	Var  ast.Var
	Pos  token.Position
	Body []Word
}

// ScanFile tokenizes every line of filename, skipping blank lines (which
// §6 says are "not expected" but are tolerated here rather than treated as
// fatal, since a trailing newline is common). The returned error, if
// non-nil, is always an ErrorList.
func ScanFile(filename string) ([]Line, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		var el ErrorList
		el.Add(token.Position{Filename: filename}, err.Error())
		return nil, el.Err()
	}
	return ScanSource(filename, b)
}

// ScanSource tokenizes src as if it were the contents of filename (used for
// error positions).
func ScanSource(filename string, src []byte) ([]Line, error) {
	var (
		el    ErrorList
		lines []Line
	)

	sc := bufio.NewScanner(strings.NewReader(string(src)))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		pos := token.Position{Filename: filename, Line: lineNum}
		ln, err := scanLine(pos, text)
		if err != nil {
			el.Add(pos, err.Error())
			continue
		}
		lines = append(lines, ln)
	}

	el.Sort()
	return lines, el.Err()
}

func scanLine(pos token.Position, text string) (Line, error) {
	name, body, ok := strings.Cut(text, "=")
	if !ok {
		return Line{}, fmt.Errorf("missing '=' in definition")
	}
	v, err := scanName(strings.TrimSpace(name))
	if err != nil {
		return Line{}, err
	}

	fields := strings.Fields(body)
	if len(fields) == 0 {
		return Line{}, fmt.Errorf("definition of %s has an empty body", v)
	}

	words := make([]Word, 0, len(fields))
	for _, f := range fields {
		leaf, err := scanWord(f)
		if err != nil {
			return Line{}, fmt.Errorf("in definition of %s: %w", v, err)
		}
		words = append(words, Word{Leaf: leaf, Pos: pos})
	}
	return Line{Var: v, Pos: pos, Body: words}, nil
}

func scanName(s string) (ast.Var, error) {
	if s == "galaxy" {
		return ast.GalaxyVar, nil
	}
	if strings.HasPrefix(s, ":") {
		n, ok := new(big.Int).SetString(s[1:], 10)
		if !ok {
			return 0, fmt.Errorf("invalid variable name %q", s)
		}
		return ast.Var(n.Int64()), nil
	}
	return 0, fmt.Errorf("definition name must be %q or %q, got %q", "galaxy", ":N", s)
}

func scanWord(s string) (ast.Leaf, error) {
	if s == "ap" {
		return ast.NewToken(token.AP), nil
	}
	if strings.HasPrefix(s, ":") {
		n, ok := new(big.Int).SetString(s[1:], 10)
		if !ok {
			return ast.Leaf{}, fmt.Errorf("invalid variable reference %q", s)
		}
		return ast.NewVar(ast.Var(n.Int64())), nil
	}
	if n, ok := new(big.Int).SetString(s, 10); ok {
		return ast.NewInt(n), nil
	}
	if tok, ok := token.Lookup(s); ok {
		return ast.NewToken(tok), nil
	}
	return ast.Leaf{}, fmt.Errorf("unknown token %q", s)
}
