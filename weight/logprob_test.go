package weight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogProbArithmetic(t *testing.T) {
	x := MustLogProb(0.5)
	y := MustLogProb(0.25)
	z := MustLogProb(0.75)

	assert.True(t, x.Add(y).Equal(z))
	assert.True(t, y.Add(x).Equal(z))
	assert.True(t, z.Sub(x).Equal(y))
	assert.True(t, z.Sub(y).Equal(x))
	assert.True(t, x.Mul(x).Equal(y))
	assert.True(t, z.Div(z).Equal(OneLogProb()))
}

func TestLogProbOrderIsInverted(t *testing.T) {
	// A more probable outcome must be a higher-priority weight.
	high := MustLogProb(0.9)
	low := MustLogProb(0.1)

	assert.True(t, low.Less(high))
	assert.False(t, high.Less(low))
}

func TestLogProbDomainError(t *testing.T) {
	_, err := NewLogProb(1.5)
	require.Error(t, err)

	_, err = NewLogProb(-0.1)
	require.Error(t, err)
}

func TestLogProbStringRoundTrip(t *testing.T) {
	p := MustLogProb(0.4)
	parsed, err := ParseLogProb(p.String())
	require.NoError(t, err)
	assert.InDelta(t, p.Probability(), parsed.Probability(), 1e-9)
}
