package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eikden/traffic-lights-optimization/entity/lane"
	"github.com/eikden/traffic-lights-optimization/entity/intersection"
	"github.com/eikden/traffic-lights-optimization/sim"
	"github.com/eikden/traffic-lights-optimization/utils/config"
	"github.com/eikden/traffic-lights-optimization/utils/randengine"
)

func twoPhaseLayout() config.LayoutConfig {
	return config.LayoutConfig{
		ID: "demo",
		Phases: []config.PhaseConfig{
			{Name: "main_corridor", Lanes: []string{"N_S"}, MinGreen: 5, MaxGreen: 10},
			{Name: "side_street", Lanes: []string{"E_W"}, MinGreen: 5, MaxGreen: 10},
		},
	}
}

func newLanes(ids ...string) []*lane.Lane {
	lanes := make([]*lane.Lane, 0, len(ids))
	for _, id := range ids {
		lanes = append(lanes, lane.New(id))
	}
	return lanes
}

func TestSimulateArrivalsReproducible(t *testing.T) {
	first := newLanes("A", "B", "C")
	second := newLanes("A", "B", "C")
	firstEngine := randengine.New(42)
	secondEngine := randengine.New(42)

	// identical seeds yield identical arrival sequences
	for k := 0; k < 20; k++ {
		sim.SimulateArrivals(first, 0.7, firstEngine)
		sim.SimulateArrivals(second, 0.7, secondEngine)
	}
	for idx := range first {
		assert.Equal(t, first[idx].Queue(), second[idx].Queue())
		assert.GreaterOrEqual(t, first[idx].Queue(), 0)
	}
}

func TestSimulatePedestriansRates(t *testing.T) {
	lanes := newLanes("A", "B")
	engine := randengine.New(1)

	sim.SimulatePedestrians(lanes, 0, engine)
	for _, l := range lanes {
		assert.Equal(t, 0, l.Pedestrians())
	}

	sim.SimulatePedestrians(lanes, 1, engine)
	for _, l := range lanes {
		assert.Equal(t, 1, l.Pedestrians())
	}
}

func TestCaptureObservationIsACopy(t *testing.T) {
	i := intersection.New(twoPhaseLayout())
	i.Lane("N_S").AddVehicles(6)
	i.Lane("E_W").AddPedestrian()

	observation := sim.CaptureObservation(i)
	assert.Equal(t, 6, observation.Vehicles["N_S"])
	assert.Equal(t, 1, observation.Pedestrians["E_W"])

	// later mutation must not leak into the captured observation
	i.Lane("N_S").AddVehicles(10)
	i.Lane("E_W").AddPedestrian()
	assert.Equal(t, 6, observation.Vehicles["N_S"])
	assert.Equal(t, 1, observation.Pedestrians["E_W"])
}

func TestApplyDischargeOnlyServesCurrentPhase(t *testing.T) {
	i := intersection.New(twoPhaseLayout())
	i.Lane("N_S").AddVehicles(8)
	i.Lane("E_W").AddVehicles(8)
	i.Lane("N_S").AddPedestrian()
	i.Lane("E_W").AddPedestrian()

	discharged, err := sim.ApplyDischarge(i, 5)
	require.NoError(t, err)

	// only the current phase's lanes discharge
	assert.Equal(t, map[string]int{"N_S": 5}, discharged)
	assert.Equal(t, 3, i.Lane("N_S").Queue())
	assert.Equal(t, 8, i.Lane("E_W").Queue())

	// pedestrians decay once per tick on every lane
	assert.Equal(t, 0, i.Lane("N_S").Pedestrians())
	assert.Equal(t, 0, i.Lane("E_W").Pedestrians())
}

func TestApplyDischargeNegativeFlow(t *testing.T) {
	i := intersection.New(twoPhaseLayout())
	i.Lane("N_S").AddVehicles(8)
	i.Lane("N_S").AddPedestrian()

	_, err := sim.ApplyDischarge(i, -1)
	assert.ErrorIs(t, err, lane.ErrNegativeCapacity)
	// rejected before any mutation
	assert.Equal(t, 8, i.Lane("N_S").Queue())
	assert.Equal(t, 1, i.Lane("N_S").Pedestrians())
}
