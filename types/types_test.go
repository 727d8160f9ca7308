package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypes(t *testing.T) {
	{ // Boundary condition labels
		bc, err := NewBCFLAG("Wall")
		require.NoError(t, err)
		assert.Equal(t, BC_Wall, bc)
		assert.Equal(t, "Wall", bc.String())
		bc, err = NewBCFLAG("outflow")
		require.NoError(t, err)
		assert.Equal(t, BC_Out, bc)
		_, err = NewBCFLAG("wormhole")
		assert.True(t, IsConfiguration(err))
	}
	{ // Error taxonomy survives wrapping
		var err error = NewConfigurationError("basis", "degree %d unsupported on %s", 9, "Pyramid")
		wrapped := fmt.Errorf("setup: %w", err)
		assert.True(t, IsConfiguration(wrapped))
		assert.False(t, IsPhysicalInfeasibility(wrapped))
		var ce *ConfigurationError
		require.True(t, errors.As(wrapped, &ce))
		assert.Equal(t, "basis", ce.Component)
		assert.Contains(t, err.Error(), "degree 9 unsupported on Pyramid")

		state := []float64{-1, 0, 1}
		pe := NewPhysicalInfeasibilityError("riemann", state, "negative density")
		state[0] = 5
		assert.Equal(t, -1., pe.State[0])
		assert.True(t, IsPhysicalInfeasibility(fmt.Errorf("step: %w", pe)))

		se := &NumericalStallError{Component: "exact riemann", Iterations: 50, Residual: 1.e-3}
		assert.True(t, IsNumericalStall(se))
		assert.Contains(t, se.Error(), "50 iterations")
	}
}
