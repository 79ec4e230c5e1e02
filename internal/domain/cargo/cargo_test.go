package cargo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
)

func TestMerge_SumsAcrossMaps(t *testing.T) {
	merged := cargo.Merge(cargo.Map{"water": 5, "steel": 2}, cargo.Map{"water": 3})

	assert.Equal(t, cargo.Map{"water": 8, "steel": 2}, merged)
}

func TestMerge_UnknownContributesZero(t *testing.T) {
	merged := cargo.Merge(cargo.Map{"steel": cargo.Unknown, "water": 4}, cargo.Map{"steel": 10})

	assert.Equal(t, cargo.Map{"steel": 10, "water": 4}, merged)
	assert.Equal(t, cargo.Map{"gold": 0}, cargo.Merge(cargo.Map{"gold": cargo.Unknown}))
}

func TestMerge_EmptyInput(t *testing.T) {
	assert.Empty(t, cargo.Merge())
	assert.NotNil(t, cargo.Merge())
}

func TestMerge_Algebra(t *testing.T) {
	a := cargo.Map{"steel": 3, "water": cargo.Unknown}
	b := cargo.Map{"water": 7, "gold": 1}
	c := cargo.Map{"steel": 2, "copper": 9}

	assert.Equal(t, cargo.Merge(a, b), cargo.Merge(b, a), "commutative")
	assert.Equal(t,
		cargo.Merge(cargo.Merge(a, b), c),
		cargo.Merge(a, cargo.Merge(b, c)), "associative")
	assert.Equal(t, cargo.Merge(cargo.Merge(a, b)), cargo.Merge(a, b), "idempotent")
	assert.Equal(t, b, cargo.Merge(b, cargo.Map{}), "identity")
}

func TestMap_Helpers(t *testing.T) {
	m := cargo.Map{"water": cargo.Unknown, "steel": 4, "gold": 0}

	assert.True(t, m.IsUnknown("water"))
	assert.False(t, m.IsUnknown("steel"))
	assert.False(t, m.IsUnknown("copper"))
	assert.Equal(t, 0, m.Known("water"))
	assert.Equal(t, 4, m.Known("steel"))
	assert.Equal(t, []string{"gold", "steel", "water"}, m.Keys())
	assert.Equal(t, []string{"steel"}, m.Needed())

	clone := m.Clone()
	clone["steel"] = 99
	assert.Equal(t, 4, m["steel"])
}

func TestMap_Validate(t *testing.T) {
	require.NoError(t, cargo.Map{"steel": 1, "water": cargo.Unknown}.Validate())
	assert.Error(t, cargo.Map{"steel": -5}.Validate())
	assert.Error(t, cargo.Map{"": 1}.Validate())
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "?", cargo.FormatCount(cargo.Unknown))
	assert.Equal(t, "0", cargo.FormatCount(0))
	assert.Equal(t, "1200", cargo.FormatCount(1200))
}

func TestHold_Trips(t *testing.T) {
	hold, err := cargo.NewHold("Type-9", 784)
	require.NoError(t, err)

	assert.Equal(t, 0, hold.Trips(0))
	assert.Equal(t, 1, hold.Trips(784))
	assert.Equal(t, 2, hold.Trips(785))
	assert.Equal(t, 1, hold.TripsFor(cargo.Map{"steel": 500, "water": cargo.Unknown}, cargo.Map{"steel": 100}))

	_, err = cargo.NewHold("broken", 0)
	assert.Error(t, err)
}
