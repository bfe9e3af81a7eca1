package cli

import (
	"testing"

	"github.com/alexanderramin/blockplan/internal/domain"
	"github.com/alexanderramin/blockplan/internal/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodingValue(t *testing.T) {
	var enc domain.Encoding
	v := newEncodingValue(domain.EncodingWindowIndicator, &enc)
	assert.Equal(t, "windowed-indicator", v.String())
	assert.Equal(t, "encoding", v.Type())

	require.NoError(t, v.Set("b"))
	assert.Equal(t, domain.EncodingWindowStart, enc)
	require.NoError(t, v.Set("indicator"))
	assert.Equal(t, domain.EncodingWindowIndicator, enc)

	assert.Error(t, v.Set("interval"))
	assert.Equal(t, domain.EncodingWindowIndicator, enc, "failed Set leaves the value alone")
}

func TestSolverValue(t *testing.T) {
	var name string
	v := newSolverValue(solver.NameGophersat, &name)
	assert.Equal(t, solver.NameGophersat, v.String())

	require.NoError(t, v.Set(solver.NameGini))
	assert.Equal(t, solver.NameGini, name)

	err := v.Set("cplex")
	require.Error(t, err)
	assert.Contains(t, err.Error(), solver.NameGophersat)
	assert.Equal(t, solver.NameGini, name)
}
