package movecounter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCounterIncDec(t *testing.T) {
	var c Counter
	require.Equal(t, 0, c.Value())

	c.Inc()
	c.Inc()
	require.Equal(t, 2, c.Value())

	c.Dec()
	require.Equal(t, 1, c.Value())
}

func TestCounterSaturatesAtZero(t *testing.T) {
	var c Counter
	c.Dec()
	c.Dec()
	require.Equal(t, 0, c.Value(), "Dec below zero must saturate")

	c.Inc()
	require.Equal(t, 1, c.Value())
}
