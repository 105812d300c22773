package schedule

import (
	"testing"

	"examtimer/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []model.Phase {
	return []model.Phase{
		{Name: "A", DurationMinutes: 3},
		{Name: "B", DurationMinutes: 5},
		{Name: "C", DurationMinutes: 5},
		{Name: "D", DurationMinutes: 5},
		{Name: "E", DurationMinutes: 2},
	}
}

func TestBuild_PrefixSums(t *testing.T) {
	built := Build(sample())

	assert.Equal(t, []int{3, 8, 13, 18, 20}, built.CumulativeEndMinutes())
	assert.Equal(t, 20, built.TotalMinutes())
	assert.Equal(t, 1200, built.TotalSeconds())
	assert.Equal(t, 5, built.Len())
}

func TestBuild_PrefixSumInvariantForCatalog(t *testing.T) {
	catalog := model.DefaultCatalog()
	for _, id := range catalog.Modes() {
		phases, _ := catalog.Phases(id)
		built := Build(phases)
		ends := built.CumulativeEndMinutes()

		require.Len(t, ends, len(phases), id)
		sum := 0
		for i, phase := range phases {
			sum += phase.DurationMinutes
			assert.Equal(t, sum, ends[i], "%s boundary %d", id, i)
			if i > 0 {
				assert.Greater(t, ends[i], ends[i-1], "%s boundaries must increase", id)
			}
		}
		assert.Equal(t, ends[len(ends)-1], built.TotalMinutes(), id)
	}
}

func TestBuild_Empty(t *testing.T) {
	built := Build(nil)

	assert.Equal(t, 0, built.TotalMinutes())
	assert.Equal(t, 0, built.Len())
	assert.Empty(t, built.CumulativeEndMinutes())
	assert.Equal(t, -1, built.PhaseAt(0))

	_, ok := built.Phase(0)
	assert.False(t, ok)
}

func TestBuild_DoesNotAliasInput(t *testing.T) {
	phases := sample()
	built := Build(phases)
	phases[0].Name = "changed"

	first, ok := built.Phase(0)
	require.True(t, ok)
	assert.Equal(t, "A", first.Name)
}

func TestPhaseAt(t *testing.T) {
	built := Build(sample())

	tests := []struct {
		minutes int
		want    string
	}{
		{0, "A"},
		{2, "A"},
		{3, "B"},
		{7, "B"},
		{8, "C"},
		{19, "E"},
		{20, "E"},
		{25, "E"},
	}

	for _, tt := range tests {
		index := built.PhaseAt(tt.minutes)
		phase, ok := built.Phase(index)
		require.True(t, ok, "minute %d", tt.minutes)
		assert.Equal(t, tt.want, phase.Name, "minute %d", tt.minutes)
	}
}
