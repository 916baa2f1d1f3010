package ast

import (
	"testing"

	"github.com/stretchr/testify/require"

	"toyc/lang/token"
)

func TestArenaNewReturnsDistinctNodes(t *testing.T) {
	a := NewArena()
	x := a.NewIntExpr()
	y := a.NewIntExpr()
	require.NotSame(t, x, y)

	x.Value = 1
	y.Value = 2
	require.Equal(t, uint64(1), x.Value)
	require.Equal(t, uint64(2), y.Value)
}

func TestArenaManyAllocationsAcrossBuckets(t *testing.T) {
	a := NewArena()
	// more than one bucket's worth (bucketElems == 512), to exercise the
	// bump allocator's overflow-into-a-new-bucket path.
	nodes := make([]*IdentExpr, 0, 600)
	for i := 0; i < 600; i++ {
		n := a.NewIdentExpr()
		n.Name = token.NameID(i)
		nodes = append(nodes, n)
	}
	for i, n := range nodes {
		require.Equal(t, token.NameID(i), n.Name, "node %d was overwritten by a later allocation", i)
	}
}

func TestIsAssignable(t *testing.T) {
	require.True(t, IsAssignable(&IdentExpr{}))
	require.True(t, IsAssignable(&DotAccessExpr{}))
	require.False(t, IsAssignable(&IntExpr{}))
	require.False(t, IsAssignable(&CallExpr{}))
}

func TestExprSpans(t *testing.T) {
	left := &IntExpr{Pos: 0, Raw: "1"}
	right := &IntExpr{Pos: 4, Raw: "2"}
	add := &AddExpr{Left: left, Op: 2, Right: right}

	start, end := add.Span()
	require.Equal(t, token.Pos(0), start)
	require.Equal(t, token.Pos(5), end)
}

func TestChunkSpanFallsBackToEOF(t *testing.T) {
	c := &Chunk{Block: &Block{Stmts: nil}, EOF: 42}
	start, end := c.Span()
	require.Equal(t, token.Pos(42), start)
	require.Equal(t, token.Pos(42), end)
}

func TestCallExprSpan(t *testing.T) {
	callee := &IdentExpr{Pos: 0, Lit: "f"}
	call := &CallExpr{Callee: callee, Lparen: 1, Rparen: 5}
	start, end := call.Span()
	require.Equal(t, token.Pos(0), start)
	require.Equal(t, token.Pos(6), end)
}
