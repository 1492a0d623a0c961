package value_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galaxyclient/galaxy/lang/ast"
	"github.com/galaxyclient/galaxy/lang/reduce"
	"github.com/galaxyclient/galaxy/lang/token"
	"github.com/galaxyclient/galaxy/lang/value"
)

func vi(n int64) value.V { return value.VInt{N: big.NewInt(n)} }

func cons(head, tail value.V) value.V { return value.VCons{Head: head, Tail: tail} }

func TestFormat(t *testing.T) {
	assert.Equal(t, "[]", value.Format(value.VNil{}))
	assert.Equal(t, "42", value.Format(vi(42)))
	assert.Equal(t, "-7", value.Format(vi(-7)))
	assert.Equal(t, "(1, 2)", value.Format(cons(vi(1), vi(2))))
	assert.Equal(t, "[1, 2, 3]", value.Format(cons(vi(1), cons(vi(2), cons(vi(3), value.VNil{})))))
	assert.Equal(t, "[1, (2, 3)]", value.Format(cons(vi(1), cons(cons(vi(2), vi(3)), value.VNil{}))))
}

func TestParseFormatRoundTrip(t *testing.T) {
	values := []value.V{
		value.VNil{},
		vi(0),
		vi(-123456789),
		cons(vi(1), vi(2)),
		cons(vi(1), cons(vi(2), cons(vi(3), value.VNil{}))),
		cons(cons(vi(1), vi(2)), cons(value.VNil{}, value.VNil{})),
	}
	for _, v := range values {
		text := value.Format(v)
		got, err := value.Parse(text)
		require.NoError(t, err, "parsing %q", text)
		assert.Equal(t, v, got)
	}
}

func TestParseTrailingGarbage(t *testing.T) {
	_, err := value.Parse("[1, 2] garbage")
	assert.Error(t, err)
}

func TestProjectCons(t *testing.T) {
	env := reduce.New(0)
	e := ast.NewApp(ast.NewApp(ast.NewToken(token.CONS), ast.NewInt(big.NewInt(1))), ast.NewInt(big.NewInt(2)))
	got, err := value.Project(e, env)
	require.NoError(t, err)
	assert.Equal(t, cons(vi(1), vi(2)), got)
}

func TestProjectPartialApplicationIsError(t *testing.T) {
	env := reduce.New(0)
	_, err := value.Project(ast.NewApp(ast.NewToken(token.CONS), ast.NewInt(big.NewInt(1))), env)
	assert.Error(t, err)
}

func TestQuoteProjectRoundTrip(t *testing.T) {
	env := reduce.New(0)
	v := cons(vi(1), cons(vi(2), value.VNil{}))
	got, err := value.Project(value.Quote(v), env)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}
