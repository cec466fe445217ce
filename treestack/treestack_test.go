package treestack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeStackAlgebra(t *testing.T) {
	ts := New(0)
	assert.Equal(t, 0, ts.CurrentSymbol())

	ts, ok := ts.Push(1, 1)
	require.True(t, ok)
	assert.Equal(t, 1, ts.CurrentSymbol())

	ts, ok = ts.Down()
	require.True(t, ok)
	assert.Equal(t, 0, ts.CurrentSymbol())

	ts, ok = ts.Push(2, 2)
	require.True(t, ok)
	assert.Equal(t, 2, ts.CurrentSymbol())

	ts, ok = ts.Down()
	require.True(t, ok)
	ts, ok = ts.Up(1)
	require.True(t, ok)
	assert.Equal(t, 1, ts.CurrentSymbol())

	ts1, ok1 := ts.Push(1, 11)
	ts2, ok2 := ts.Push(1, 11)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.True(t, Equal(ts1, ts2))
}

func TestPushCollisionIsNonFatal(t *testing.T) {
	ts := New("root")
	ts, ok := ts.Push(0, "child")
	require.True(t, ok)
	ts, ok = ts.Down()
	require.True(t, ok)

	collided, ok := ts.Push(0, "other")
	assert.False(t, ok)
	assert.True(t, Equal(ts, collided), "a failed push must return the unchanged receiver")
}

func TestUpIntoVacantSlotIsNonFatal(t *testing.T) {
	ts := New("root")
	next, ok := ts.Up(4)
	assert.False(t, ok)
	assert.True(t, Equal(ts, next))
}

func TestDownAtRootIsNonFatal(t *testing.T) {
	ts := New("root")
	next, ok := ts.Down()
	assert.False(t, ok)
	assert.True(t, Equal(ts, next))
}

func TestUpPushIdentity(t *testing.T) {
	ts := New("root")
	pushed, ok := ts.Push(2, "child")
	require.True(t, ok)

	// down() re-attaches the pushed child under the root and moves the
	// pointer back to it; up(2) from there must land back on a node
	// carrying the same value push(2,a) produced.
	back, ok := pushed.Down()
	require.True(t, ok)
	assert.Equal(t, "root", back.CurrentSymbol())

	up, ok := back.Up(2)
	require.True(t, ok)
	assert.Equal(t, "child", up.CurrentSymbol())
	assert.True(t, Equal(pushed, up), "up(n) after down() lands back on the pushed child")

	down, ok := up.Down()
	require.True(t, ok)
	assert.True(t, Equal(back, down), "down(n) after up(n) is idempotent once the child is attached")
}

func TestSparsePushPaddingAllowsLaterDifferentIndex(t *testing.T) {
	ts := New("root")
	ts, ok := ts.Push(3, "far child")
	require.True(t, ok)
	ts, ok = ts.Down()
	require.True(t, ok)

	_, ok = ts.Push(0, "near child")
	assert.True(t, ok, "push at a lower index must remain legal after a sparse push at a higher one")
}

func TestMapPreservesStructure(t *testing.T) {
	ts := New(1)
	ts, ok := ts.Push(0, 2)
	require.True(t, ok)

	mapped := Map(ts, func(v int) int { return v * 10 })
	assert.Equal(t, 20, mapped.CurrentSymbol())

	down, ok := mapped.Down()
	require.True(t, ok)
	assert.Equal(t, 10, down.CurrentSymbol())
}
