package InputParameters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/notargets/godgfr/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := []byte(`
Title: "Sod shock tube"
Case: sod
Family: fr
Layout: lobatto
PolynomialOrder: 3
K: 100
CFL: 0.2
FinalTime: 0.2
Limiter: modal
Threshold: -2.5
BCs:
  left: inflow
  right: outflow
`)
	ip := NewInputParameters()
	require.NoError(t, ip.Parse(input))
	assert.Equal(t, "Sod shock tube", ip.Title)
	assert.Equal(t, "sod", ip.Case)
	assert.Equal(t, "fr", ip.Family)
	assert.Equal(t, "lobatto", ip.Layout)
	assert.Equal(t, 3, ip.PolynomialOrder)
	assert.Equal(t, 100, ip.K)
	assert.Equal(t, 0.2, ip.CFL)
	assert.Equal(t, "modal", ip.Limiter)
	assert.Equal(t, -2.5, ip.Threshold)
	assert.Equal(t, map[string]string{"left": "inflow", "right": "outflow"}, ip.BCs)
	// Defaults survive
	assert.Equal(t, 3, ip.RKOrder)
	assert.Equal(t, "line", ip.Shape)
	assert.Equal(t, 1.4, ip.Gamma)

	ip = NewInputParameters()
	assert.True(t, types.IsConfiguration(ip.Parse([]byte("K: 0"))))
	ip = NewInputParameters()
	assert.True(t, types.IsConfiguration(ip.Parse([]byte("CFL: [1, 2]"))))
}

func TestReadFile(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(fileName, []byte("Case: burgers\nK: 8\n"), 0644))
	ip := NewInputParameters()
	require.NoError(t, ip.ReadFile(fileName))
	assert.Equal(t, "burgers", ip.Case)
	assert.Equal(t, 8, ip.K)
	assert.True(t, types.IsConfiguration(ip.ReadFile(filepath.Join(t.TempDir(), "missing.yaml"))))
}
