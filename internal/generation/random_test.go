package generation

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemLabel(t *testing.T) {
	tests := map[int]string{0: "A", 25: "Z", 26: "AA", 27: "AB", 51: "AZ", 52: "BA", 701: "ZZ", 702: "AAA"}
	for i, want := range tests {
		assert.Equal(t, want, ItemLabel(i), "index %d", i)
	}
}

func TestRandomInstance_RespectsParams(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := Params{Items: 30, Positions: 80, MaxLength: 3}

	inst, err := RandomInstance(rng, p)
	require.NoError(t, err)
	require.NoError(t, inst.Validate())

	assert.Equal(t, 80, inst.TimelineLength)
	require.Len(t, inst.Items, 30)
	assert.Equal(t, "A", inst.Items[0].ID)
	assert.Equal(t, "AD", inst.Items[29].ID)

	seen := make(map[int]bool)
	for _, it := range inst.Items {
		assert.GreaterOrEqual(t, it.Length, 1)
		assert.LessOrEqual(t, it.Length, 3)
		seen[it.Length] = true
	}
	assert.Len(t, seen, 3, "thirty draws should hit every length")
}

func TestRandomInstance_SeedIsReproducible(t *testing.T) {
	p := DefaultParams()
	a, err := RandomInstance(rand.New(rand.NewSource(7)), p)
	require.NoError(t, err)
	b, err := RandomInstance(rand.New(rand.NewSource(7)), p)
	require.NoError(t, err)

	assert.Equal(t, a.Items, b.Items)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"no items", Params{Items: 0, Positions: 5, MaxLength: 1}},
		{"no positions", Params{Items: 1, Positions: 0, MaxLength: 1}},
		{"no length", Params{Items: 1, Positions: 5, MaxLength: 0}},
		{"length past timeline", Params{Items: 1, Positions: 2, MaxLength: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RandomInstance(rand.New(rand.NewSource(1)), tt.p)
			assert.Error(t, err)
		})
	}
}
