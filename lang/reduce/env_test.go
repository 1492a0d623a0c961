package reduce

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galaxyclient/galaxy/lang/ast"
	"github.com/galaxyclient/galaxy/lang/token"
)

// TestLookupWHNFMemoizes demands the same variable twice and confirms the
// second demand returns the cached WHNF rather than re-reducing: the
// entry's unreduced expression is discarded (set to nil) the moment it is
// taken for reduction (§4.C "take ownership, reduce, put back"), so a
// second successful lookup is only possible through the cache.
func TestLookupWHNFMemoizes(t *testing.T) {
	env := New(1)
	v := ast.Var(1)
	env.Insert(v, ast.NewInt(big.NewInt(42)))

	first, err := env.LookupWHNF(v)
	require.NoError(t, err)
	assert.Equal(t, token.INT, first.(WLeaf).Token)
	assert.Equal(t, big.NewInt(42), first.(WLeaf).Int)

	ent, ok := env.entries.Get(int64(v))
	require.True(t, ok)
	assert.Nil(t, ent.expr, "unreduced expression must be discarded once taken")

	second, err := env.LookupWHNF(v)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFreshNeverCollidesWithParsedIds(t *testing.T) {
	env := New(0)
	f1 := env.Fresh()
	f2 := env.Fresh()
	assert.NotEqual(t, f1, f2)
	assert.Less(t, int64(f1), int64(ast.GalaxyVar))
	assert.Less(t, int64(f2), int64(ast.GalaxyVar))
}
