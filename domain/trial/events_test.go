package trial

import (
	"math/rand"
	"sort"
	"testing"
)

func TestEventTimeSimulator_MedianMatchesModel(t *testing.T) {
	scenario := testScenario()
	sim := NewEventTimeSimulator(scenario)
	rng := rand.New(rand.NewSource(11))

	n := 20000
	patients := make([]*Patient, n)
	for i := range patients {
		patients[i] = &Patient{Arm: ArmExperimental, Biomarker: BiomarkerPositive}
	}
	sim.SimulateStage(patients, StageOne, rng)

	times := make([]float64, n)
	for i, p := range patients {
		times[i] = p.Stage1Progression
	}
	sort.Float64s(times)

	// Exponential with rate ln2/7: sample median ~ 7 months.
	median := times[n/2]
	if median < 6.5 || median > 7.5 {
		t.Errorf("Sample median %f far from assumed median 7", median)
	}
}

func TestEventTimeSimulator_StageTwoIndependent(t *testing.T) {
	scenario := testScenario()
	sim := NewEventTimeSimulator(scenario)
	rng := rand.New(rand.NewSource(3))

	p := &Patient{Arm: ArmControl, Biomarker: BiomarkerNegative}
	sim.SimulateStage([]*Patient{p}, StageOne, rng)
	sim.SimulateStage([]*Patient{p}, StageTwo, rng)

	if p.Stage1Progression <= 0 || p.Stage2Progression <= 0 {
		t.Fatalf("Both stage draws must be positive, got %f / %f", p.Stage1Progression, p.Stage2Progression)
	}
	if p.Stage1Progression == p.Stage2Progression {
		t.Error("Stage-2 draw must be a fresh deviate, not a copy of stage 1")
	}
	if p.ProgressionThrough(StageTwo) != p.Stage1Progression+p.Stage2Progression {
		t.Error("Stage-2 progression must combine both draws")
	}
}
