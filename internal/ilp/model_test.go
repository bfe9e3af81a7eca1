package ilp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_CountersAreMonotonicPerModel(t *testing.T) {
	m1 := NewModel()
	m2 := NewModel()

	a := m1.NewBinary("")
	b := m1.NewBinary("")
	c := m2.NewBinary("")

	assert.Equal(t, Var(0), a)
	assert.Equal(t, Var(1), b)
	assert.Equal(t, Var(0), c, "second model must not share the first model's counter")
	assert.Equal(t, "x1", m1.Variable(a).Name)
	assert.Equal(t, "x2", m1.Variable(b).Name)

	c1 := m1.NewConstraint("")
	c2 := m1.NewConstraint("")
	assert.Equal(t, "c1", c1.Name())
	assert.Equal(t, "c2", c2.Name())
}

func TestModel_BinaryBoundsAreClamped(t *testing.T) {
	m := NewModel()
	v := m.NewVariable(Binary, -3, 7)
	got := m.Variable(v)
	assert.Equal(t, 0.0, got.Lower)
	assert.Equal(t, 1.0, got.Upper)
	assert.Equal(t, Binary, got.Kind)
}

func TestConstraint_SetOverwritesCoefficient(t *testing.T) {
	m := NewModel()
	x := m.NewBinary("x")
	c := m.NewConstraint("dup").Set(x, 1).Set(x, 3).AtMost(2)

	terms := c.Terms()
	require.Len(t, terms, 1)
	assert.Equal(t, 3.0, terms[0].Coef)
	assert.Equal(t, AtMost, c.Sense())
	assert.Equal(t, 2.0, c.RHS())
}

func TestConstraint_Satisfied(t *testing.T) {
	m := NewModel()
	x := m.NewBinary("x")
	y := m.NewBinary("y")

	eq := m.NewConstraint("eq").Set(x, 1).Set(y, 1).Equals(1)
	ge := m.NewConstraint("ge").Set(x, 2).Set(y, -2).AtLeast(0)

	assert.True(t, eq.Satisfied([]float64{1, 0}))
	assert.False(t, eq.Satisfied([]float64{1, 1}))
	assert.True(t, ge.Satisfied([]float64{1, 1}))
	assert.False(t, ge.Satisfied([]float64{0, 1}))
}

func TestConstraint_DoubleBoundPanics(t *testing.T) {
	m := NewModel()
	c := m.NewConstraint("c").Equals(1)
	assert.Panics(t, func() { c.AtMost(2) })
}

func TestModel_FrozenRejectsMutation(t *testing.T) {
	m := NewModel()
	x := m.NewBinary("x")
	c := m.NewConstraint("c").Set(x, 1).Equals(1)
	m.Freeze()

	assert.True(t, m.Frozen())
	assert.Panics(t, func() { m.NewBinary("y") })
	assert.Panics(t, func() { m.NewConstraint("d") })
	assert.Panics(t, func() { c.Set(x, 2) })
}

func TestModel_ValidateRequiresBound(t *testing.T) {
	m := NewModel()
	x := m.NewBinary("x")
	m.NewConstraint("open").Set(x, 1)

	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open")
}

func TestModel_ValidateRejectsForeignVariable(t *testing.T) {
	m := NewModel()
	m.NewBinary("x")
	m.NewConstraint("bad").Set(Var(5), 1).Equals(1)

	assert.Error(t, m.Validate())
}

func TestObjective_Trivial(t *testing.T) {
	assert.True(t, Objective{}.Trivial())
	assert.True(t, Objective{Terms: []Term{{Var: 0, Coef: 0}}}.Trivial())
	assert.False(t, Objective{Terms: []Term{{Var: 0, Coef: 1}}}.Trivial())
}

func TestResult_ValueOutOfRange(t *testing.T) {
	r := &Result{Status: StatusOptimal, Values: []float64{1}}
	assert.Equal(t, 1.0, r.Value(0))
	assert.Equal(t, 0.0, r.Value(4))

	var nilResult *Result
	assert.Equal(t, 0.0, nilResult.Value(0))
}

func TestWriteLP(t *testing.T) {
	m := NewModel()
	x := m.NewBinary("x_1")
	y := m.NewBinary("x_2")
	z := m.NewVariable(Continuous, 0, 4)
	m.NewConstraint("cap").Set(x, 1).Set(y, 1).AtMost(1)
	m.NewConstraint("win").Set(x, 1).Set(y, -2).AtLeast(0)
	m.NewConstraint("len").Set(z, 1).Equals(2)

	var buf bytes.Buffer
	require.NoError(t, WriteLP(&buf, m, Objective{}))

	out := buf.String()
	assert.Contains(t, out, "Minimize\n obj: 0 x_1\n")
	assert.Contains(t, out, " cap: 1 x_1 + 1 x_2 <= 1\n")
	assert.Contains(t, out, " win: 1 x_1 - 2 x_2 >= 0\n")
	assert.Contains(t, out, " len: 1 x3 = 2\n")
	assert.Contains(t, out, "Bounds\n 0 <= x3 <= 4\n")
	assert.Contains(t, out, "Binary\n x_1\n x_2\n")
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("End\n")))
}
