package intersection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eikden/traffic-lights-optimization/entity/intersection"
	"github.com/eikden/traffic-lights-optimization/utils/config"
)

func threePhaseLayout() config.LayoutConfig {
	return config.LayoutConfig{
		ID: "demo",
		Phases: []config.PhaseConfig{
			{Name: "north_south", Lanes: []string{"N_S", "S_N"}, MinGreen: 5, MaxGreen: 20},
			{Name: "east_west", Lanes: []string{"E_W"}, MinGreen: 5, MaxGreen: 15},
			{Name: "left_turns", Lanes: []string{"N_L", "S_L"}, MinGreen: 5, MaxGreen: 10},
		},
	}
}

func TestNewMaterializesAllPhaseLanes(t *testing.T) {
	i := intersection.New(threePhaseLayout())

	assert.Len(t, i.Phases(), 3)
	assert.Len(t, i.Lanes(), 5)
	for _, p := range i.Phases() {
		for _, laneID := range p.Lanes() {
			assert.NotNil(t, i.Lane(laneID))
		}
	}
	assert.Equal(t, "north_south", i.CurrentPhase().Name())
}

func TestCyclicAdvancement(t *testing.T) {
	i := intersection.New(threePhaseLayout())

	// one full cycle visits every phase exactly once and wraps to the start
	visited := []string{i.CurrentPhase().Name()}
	for k := 0; k < 3; k++ {
		i.AdvancePhase()
		visited = append(visited, i.CurrentPhase().Name())
	}
	assert.Equal(t, []string{"north_south", "east_west", "left_turns", "north_south"}, visited)
}

func TestAdvanceResetsElapsed(t *testing.T) {
	i := intersection.New(threePhaseLayout())

	i.Tick()
	i.Tick()
	assert.Equal(t, int32(2), i.CurrentPhase().Elapsed())
	assert.Equal(t, int32(2), i.Time())

	i.AdvancePhase()
	assert.Equal(t, int32(0), i.CurrentPhase().Elapsed())
	// intersection time is monotonic across switches
	assert.Equal(t, int32(2), i.Time())
}

func TestSetPhase(t *testing.T) {
	i := intersection.New(threePhaseLayout())

	require.NoError(t, i.SetPhase("left_turns"))
	assert.Equal(t, "left_turns", i.CurrentPhase().Name())
	assert.Equal(t, int32(0), i.CurrentPhase().Elapsed())

	err := i.SetPhase("no_such_phase")
	assert.ErrorIs(t, err, intersection.ErrUnknownPhase)
	assert.Equal(t, "left_turns", i.CurrentPhase().Name())
}

func TestPhasePredicates(t *testing.T) {
	i := intersection.New(threePhaseLayout())
	p := i.CurrentPhase()

	assert.True(t, p.MustExtend())
	assert.True(t, p.CanExtend())

	for k := int32(0); k < p.MinGreen(); k++ {
		i.Tick()
	}
	assert.False(t, p.MustExtend())
	assert.True(t, p.CanExtend())

	for k := p.MinGreen(); k < p.MaxGreen(); k++ {
		i.Tick()
	}
	assert.False(t, p.CanExtend())
}

func TestRecordSnapshotIsImmutable(t *testing.T) {
	i := intersection.New(threePhaseLayout())
	i.Lane("N_S").AddVehicles(4)
	i.Lane("N_S").AddPedestrian()
	i.Record()

	// mutating the lane afterwards must not affect the recorded snapshot
	i.Lane("N_S").AddVehicles(10)
	i.Lane("N_S").AddPedestrian()

	snapshot, ok := i.LatestSnapshot()
	require.True(t, ok)
	assert.Equal(t, int32(0), snapshot.Time)
	assert.Equal(t, "north_south", snapshot.Phase)
	assert.Equal(t, 4, snapshot.Queues["N_S"])
	assert.Equal(t, 1, snapshot.Pedestrians["N_S"])
	assert.Len(t, i.History(), 1)
}

func TestLatestSnapshotEmpty(t *testing.T) {
	i := intersection.New(threePhaseLayout())
	_, ok := i.LatestSnapshot()
	assert.False(t, ok)
}
