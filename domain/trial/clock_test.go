package trial

import (
	"math"
	"testing"

	"trialsim/domain/core"
)

func TestCalendarClock_LocateCutoff(t *testing.T) {
	clock := NewCalendarClock()
	patients := []*Patient{
		{Biomarker: BiomarkerPositive, EntryTime: 0, Stage1Progression: 5},  // event at 5
		{Biomarker: BiomarkerPositive, EntryTime: 2, Stage1Progression: 1},  // event at 3
		{Biomarker: BiomarkerPositive, EntryTime: 1, Stage1Progression: 9},  // event at 10
		{Biomarker: BiomarkerNegative, EntryTime: 0, Stage1Progression: 4},  // event at 4, other stratum
		{Biomarker: BiomarkerNegative, EntryTime: 0, Stage1Progression: 20}, // event at 20
	}

	cutoff, err := clock.LocateCutoff(patients, StageOne, 2, SubgroupPositive)
	if err != nil {
		t.Fatalf("LocateCutoff failed: %v", err)
	}
	if cutoff != 5 {
		t.Errorf("2nd positive event at calendar time 5, got %f", cutoff)
	}

	cutoff, err = clock.LocateCutoff(patients, StageOne, 4, SubgroupAll)
	if err != nil {
		t.Fatalf("LocateCutoff failed: %v", err)
	}
	if cutoff != 10 {
		t.Errorf("4th combined event at calendar time 10, got %f", cutoff)
	}
}

func TestCalendarClock_LocateCutoff_Unavailable(t *testing.T) {
	clock := NewCalendarClock()
	patients := []*Patient{
		{Biomarker: BiomarkerPositive, EntryTime: 0, Stage1Progression: 1},
	}

	_, err := clock.LocateCutoff(patients, StageOne, 2, SubgroupPositive)
	if !core.IsFeasibilityError(err) {
		t.Fatalf("Expected order statistic error, got %v", err)
	}
	if _, err := clock.LocateCutoff(patients, StageOne, 1, SubgroupNegative); !core.IsFeasibilityError(err) {
		t.Fatalf("Expected order statistic error for empty subgroup, got %v", err)
	}
}

func TestCalendarClock_CensorAt(t *testing.T) {
	clock := NewCalendarClock()
	patients := []*Patient{
		{EntryTime: 0, Stage1Progression: 3},  // progressed before cutoff
		{EntryTime: 0, Stage1Progression: 12}, // censored at cutoff
		{EntryTime: 15, Stage1Progression: 1}, // enters after cutoff
	}

	clock.CensorAt(patients, StageOne, 10)

	if !patients[0].Event || patients[0].TimeAtRisk != 3 {
		t.Errorf("Progressor: event=%v time=%f, want event at 3", patients[0].Event, patients[0].TimeAtRisk)
	}
	if patients[1].Event || patients[1].TimeAtRisk != 10 {
		t.Errorf("Censored: event=%v time=%f, want censored at 10", patients[1].Event, patients[1].TimeAtRisk)
	}
	if patients[2].Event || patients[2].TimeAtRisk >= 0 {
		t.Errorf("Late entrant: event=%v time=%f, want no event and non-positive time", patients[2].Event, patients[2].TimeAtRisk)
	}
}

func TestCalendarClock_CensorAt_BoundaryTolerance(t *testing.T) {
	clock := NewCalendarClock()
	// Progression lands on the cutoff up to floating-point noise smaller
	// than the tolerance: still an event.
	p := &Patient{EntryTime: 2, Stage1Progression: 8 + 1e-9}
	clock.CensorAt([]*Patient{p}, StageOne, 10)

	if !p.Event {
		t.Error("Tie at cutoff within tolerance must count as an event")
	}
	if math.Abs(p.TimeAtRisk-8) > 1e-6 {
		t.Errorf("Time at risk %f, want ~8", p.TimeAtRisk)
	}
}

func TestCalendarClock_StageTwoReadsCombinedProgression(t *testing.T) {
	clock := NewCalendarClock()
	p := &Patient{Biomarker: BiomarkerPositive, EntryTime: 1, Stage1Progression: 2, Stage2Progression: 3}

	cutoff, err := clock.LocateCutoff([]*Patient{p}, StageTwo, 1, SubgroupPositive)
	if err != nil {
		t.Fatalf("LocateCutoff failed: %v", err)
	}
	if cutoff != 6 {
		t.Errorf("Stage-2 calendar event time entry+stage1+stage2 = 6, got %f", cutoff)
	}

	clock.CensorAt([]*Patient{p}, StageTwo, 4)
	if p.Event || p.TimeAtRisk != 3 {
		t.Errorf("Stage-2 censoring: event=%v time=%f, want censored at 3", p.Event, p.TimeAtRisk)
	}
}
