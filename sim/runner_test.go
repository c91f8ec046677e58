package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eikden/traffic-lights-optimization/control"
	"github.com/eikden/traffic-lights-optimization/sim"
	"github.com/eikden/traffic-lights-optimization/utils/config"
	"github.com/eikden/traffic-lights-optimization/utils/randengine"
)

func runOptions(steps int32) sim.Options {
	return sim.Options{
		Steps:            steps,
		ArrivalIntensity: 0.7,
		CrossingRate:     0,
		SaturationFlow:   5,
	}
}

func TestRunProducesOneSnapshotPerStep(t *testing.T) {
	i, err := sim.Run(
		twoPhaseLayout(),
		control.NewDemandResponsive(12, true),
		runOptions(30),
		randengine.New(7),
	)
	require.NoError(t, err)

	assert.Len(t, i.History(), 30)
	assert.Equal(t, int32(30), i.Time())
	// snapshots are in time order
	for idx, snapshot := range i.History() {
		assert.Equal(t, int32(idx), snapshot.Time)
	}
}

func TestRunRespectsMinGreen(t *testing.T) {
	// high demand and a low threshold force a switch as soon as allowed;
	// no phase may be recorded for fewer ticks than its minimum green
	i, err := sim.Run(
		twoPhaseLayout(),
		control.NewDemandResponsive(1, true),
		sim.Options{Steps: 40, ArrivalIntensity: 2, CrossingRate: 0, SaturationFlow: 5},
		randengine.New(3),
	)
	require.NoError(t, err)

	history := i.History()
	runLength := 1
	for idx := 1; idx < len(history); idx++ {
		if history[idx].Phase == history[idx-1].Phase {
			runLength++
			continue
		}
		assert.GreaterOrEqual(t, runLength, 5, "phase %s held %d < min green", history[idx-1].Phase, runLength)
		runLength = 1
	}
}

func TestRunQueuesNeverNegative(t *testing.T) {
	i, err := sim.Run(
		twoPhaseLayout(),
		control.NewDemandResponsive(12, true),
		sim.Options{Steps: 60, ArrivalIntensity: 0.3, CrossingRate: 0.2, SaturationFlow: 5},
		randengine.New(11),
	)
	require.NoError(t, err)

	for _, snapshot := range i.History() {
		for laneID, queue := range snapshot.Queues {
			assert.GreaterOrEqual(t, queue, 0, "lane %s at time %d", laneID, snapshot.Time)
		}
		for laneID, pedestrians := range snapshot.Pedestrians {
			assert.GreaterOrEqual(t, pedestrians, 0, "lane %s at time %d", laneID, snapshot.Time)
		}
	}
}

func TestRunNegativeSteps(t *testing.T) {
	_, err := sim.Run(
		twoPhaseLayout(),
		control.NewDemandResponsive(12, true),
		runOptions(-1),
		randengine.New(7),
	)
	assert.ErrorIs(t, err, sim.ErrNegativeSteps)
}

func TestRunRejectsInvalidLayout(t *testing.T) {
	layout := twoPhaseLayout()
	layout.Phases[0].MinGreen = 20 // min > max
	_, err := sim.Run(layout, control.NewDemandResponsive(12, true), runOptions(5), randengine.New(7))
	assert.ErrorIs(t, err, config.ErrInvalidLayout)
}

func TestRunEachMatchesSequentialRuns(t *testing.T) {
	layouts := []config.LayoutConfig{twoPhaseLayout(), otherLayout()}
	opts := runOptions(25)

	parallelResults, err := sim.RunEach(
		layouts,
		func() control.IController { return control.NewDemandResponsive(12, true) },
		opts,
		100,
	)
	require.NoError(t, err)
	require.Len(t, parallelResults, 2)

	// sharded execution is reproducible: engine seed is 100+idx per shard
	for idx, layout := range layouts {
		sequential, err := sim.Run(
			layout,
			control.NewDemandResponsive(12, true),
			opts,
			randengine.New(100+uint64(idx)),
		)
		require.NoError(t, err)
		assert.Equal(t, sequential.History(), parallelResults[idx].History())
	}
}

func otherLayout() config.LayoutConfig {
	return config.LayoutConfig{
		ID: "other",
		Phases: []config.PhaseConfig{
			{Name: "main_corridor", Lanes: []string{"N_S", "S_N"}, MinGreen: 5, MaxGreen: 15},
			{Name: "side_street", Lanes: []string{"E_W", "W_E"}, MinGreen: 5, MaxGreen: 10},
		},
	}
}
