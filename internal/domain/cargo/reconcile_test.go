package cargo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
)

func TestDiff(t *testing.T) {
	need := cargo.Map{"steel": 100, "water": cargo.Unknown, "gold": 5}
	have := cargo.Map{"steel": 40, "water": 12, "copper": 8, "gold": cargo.Unknown}

	assert.Equal(t, -60, cargo.Diff(need, have, "steel"))
	assert.Equal(t, 0, cargo.Diff(need, have, "water"), "unknown need")
	assert.Equal(t, 8, cargo.Diff(need, have, "copper"), "surplus with no need")
	assert.Equal(t, -5, cargo.Diff(need, have, "gold"), "unknown supply counts as none")
	assert.Equal(t, 0, cargo.Diff(need, have, "titanium"))
}

func TestOnHandCount_UnknownNeed(t *testing.T) {
	need := cargo.Map{"steel": 100, "water": cargo.Unknown}
	have := cargo.Map{"steel": 40}

	assert.Equal(t, 40, cargo.OnHandCount(need, have))
	assert.Equal(t, 0, cargo.Diff(need, have, "water"))
}

func TestOnHandCount_CeilingPerCommodity(t *testing.T) {
	need := cargo.Map{"steel": 10, "water": 50}
	have := cargo.Map{"steel": 500, "water": 20}

	assert.Equal(t, 30, cargo.OnHandCount(need, have))
	assert.LessOrEqual(t, cargo.OnHandCount(need, have), cargo.TotalNeed(need))
}

func TestOnHandCount_UnknownSafety(t *testing.T) {
	base := cargo.Map{"steel": 10}
	withUnknown := cargo.Map{"steel": 10, "water": cargo.Unknown}

	for _, haveWater := range []int{0, 5, 1000, cargo.Unknown} {
		have := cargo.Map{"steel": 3, "water": haveWater}
		assert.Equal(t, cargo.OnHandCount(base, have), cargo.OnHandCount(withUnknown, have))
		assert.Equal(t, 0, cargo.Diff(withUnknown, have, "water"))
	}
}

func TestProgress(t *testing.T) {
	assert.InDelta(t, 40.0, cargo.Progress(cargo.Map{"steel": 100}, cargo.Map{"steel": 40}), 0.001)
	assert.InDelta(t, 100.0, cargo.Progress(cargo.Map{}, cargo.Map{"steel": 40}), 0.001)
}

func TestRemaining(t *testing.T) {
	need := cargo.Map{"steel": 100, "water": cargo.Unknown, "gold": 5, "copper": 0}
	have := cargo.Map{"steel": 40, "gold": 10}

	assert.Equal(t, cargo.Map{"steel": 60}, cargo.Remaining(need, have))
}

func TestReconcile_Lines(t *testing.T) {
	need := cargo.Map{"steel": 100, "water": cargo.Unknown}
	have := cargo.Map{"steel": 120, "copper": 3}

	lines := cargo.Reconcile(need, have)

	assert.Equal(t, []cargo.Line{
		{ID: "copper", Need: 0, Have: 3, Diff: 3},
		{ID: "steel", Need: 100, Have: 120, Diff: 20},
		{ID: "water", Need: cargo.Unknown, Have: 0, Diff: 0, UnknownNeed: true},
	}, lines)
	assert.True(t, lines[1].Ready())
	assert.False(t, lines[2].Ready())
}
