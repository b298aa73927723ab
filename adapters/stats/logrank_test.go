package stats

import (
	"context"
	"math"
	"testing"

	"trialsim/domain/trial"
)

func subject(timeAtRisk float64, event bool, arm trial.Arm) *trial.Patient {
	return &trial.Patient{Arm: arm, TimeAtRisk: timeAtRisk, Event: event}
}

func TestLogRankEngine_HandComputed(t *testing.T) {
	// Two subjects, both events: at t=1 one of two at risk is experimental,
	// so O-E = 0.5 and V = 0.25; the t=2 risk set is a single subject and
	// contributes nothing. Chi-square = 1.
	engine := NewLogRankEngine()
	patients := []*trial.Patient{
		subject(1, true, trial.ArmExperimental),
		subject(2, true, trial.ArmControl),
	}

	res, err := engine.Compare(context.Background(), patients)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if math.Abs(res.ChiSquare-1.0) > 1e-12 {
		t.Errorf("ChiSquare = %f, want 1.0", res.ChiSquare)
	}
	// 1-df chi-square upper tail at 1.
	if math.Abs(res.PValue-0.31731) > 1e-4 {
		t.Errorf("PValue = %f, want ~0.31731", res.PValue)
	}
	if res.NAtRisk != 2 {
		t.Errorf("NAtRisk = %d, want 2", res.NAtRisk)
	}
}

func TestLogRankEngine_SymmetricGroupsNull(t *testing.T) {
	// Mirrored event times across arms cancel exactly.
	engine := NewLogRankEngine()
	patients := []*trial.Patient{
		subject(1, true, trial.ArmExperimental),
		subject(1, true, trial.ArmControl),
		subject(2, true, trial.ArmExperimental),
		subject(2, true, trial.ArmControl),
	}

	res, err := engine.Compare(context.Background(), patients)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if res.ChiSquare != 0 {
		t.Errorf("ChiSquare = %f, want 0 for symmetric groups", res.ChiSquare)
	}
	if res.PValue != 1 {
		t.Errorf("PValue = %f, want 1", res.PValue)
	}
}

func TestLogRankEngine_ArmLabelInvariance(t *testing.T) {
	engine := NewLogRankEngine()
	build := func(swap bool) []*trial.Patient {
		a, b := trial.ArmExperimental, trial.ArmControl
		if swap {
			a, b = b, a
		}
		return []*trial.Patient{
			subject(1.2, true, a),
			subject(2.5, true, a),
			subject(3.1, false, a),
			subject(4.0, true, b),
			subject(5.5, false, b),
			subject(6.2, true, b),
		}
	}

	res1, err := engine.Compare(context.Background(), build(false))
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	res2, err := engine.Compare(context.Background(), build(true))
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if math.Abs(res1.ChiSquare-res2.ChiSquare) > 1e-12 {
		t.Errorf("Statistic changed under label swap: %f vs %f", res1.ChiSquare, res2.ChiSquare)
	}
	if math.Abs(res1.PValue-res2.PValue) > 1e-12 {
		t.Errorf("P-value changed under label swap: %f vs %f", res1.PValue, res2.PValue)
	}
}

func TestLogRankEngine_AllCensored(t *testing.T) {
	engine := NewLogRankEngine()
	patients := []*trial.Patient{
		subject(1, false, trial.ArmExperimental),
		subject(2, false, trial.ArmControl),
	}

	res, err := engine.Compare(context.Background(), patients)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if res.ChiSquare != 0 || res.PValue != 1 {
		t.Errorf("No events must give stat 0, p 1; got %f, %f", res.ChiSquare, res.PValue)
	}
}

func TestLogRankEngine_TooFewSubjects(t *testing.T) {
	engine := NewLogRankEngine()
	if _, err := engine.Compare(context.Background(), nil); err == nil {
		t.Error("Expected error for empty comparison")
	}
}
