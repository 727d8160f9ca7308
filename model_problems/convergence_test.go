package model_problems

import (
	"bytes"
	"strings"
	"testing"

	"github.com/notargets/godgfr/InputParameters"
	"github.com/notargets/godgfr/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvergenceStudy(t *testing.T) {
	cs := NewConvergenceStudy("burgers", 2, 0.3)
	cs.Add(10, []float64{1.e-2})
	cs.Add(20, []float64{1.25e-3})
	orders := cs.Orders()
	require.Len(t, orders, 1)
	assert.InDelta(t, 3., orders[0][0], 1.e-12)

	var buf bytes.Buffer
	require.NoError(t, cs.WriteCSV(&buf))
	studies, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Contains(t, studies, "burgers2")
	assert.Equal(t, cs, studies["burgers2"])

	_, err = ReadCSV(strings.NewReader("Title,K,Order,CFL,L2\nburgers,ten,2,0.3,0.01\n"))
	assert.Error(t, err)
}

func TestRunConvergence(t *testing.T) {
	ip := InputParameters.NewInputParameters()
	ip.Case, ip.PolynomialOrder = "burgers", 1
	ip.CFL, ip.FinalTime = 0.2, 0.05
	cs, err := RunConvergence(ip, []int{16, 32})
	require.NoError(t, err)
	assert.Equal(t, []int{16, 32}, cs.NumCells)
	assert.Greater(t, cs.Orders()[0][0], 1.5)
	// The input is not modified
	assert.Equal(t, 20, ip.K)

	ip.FinalTime, ip.Limiter = 0.3, "modal"
	_, err = RunConvergence(ip, []int{8})
	assert.True(t, types.IsConfiguration(err))
}
