package design

import (
	"math"
	"testing"
)

func TestSpendingBoundary_CenterPoint(t *testing.T) {
	// A statistic exactly at the planned-events threshold puts the normal
	// argument at zero, so the boundary is 0.5 in either stratum.
	stat := PrimaryMultiplier * math.Sqrt(PlannedEvents)

	for _, info := range []int{InfoNegative, InfoPositive} {
		if got := SpendingBoundary(stat, info); math.Abs(got-0.5) > 1e-12 {
			t.Errorf("SpendingBoundary(%f, %d) = %f, want 0.5", stat, info, got)
		}
	}
}

func TestSpendingBoundary_RelaxesWithStatistic(t *testing.T) {
	prev := -1.0
	for _, stat := range []float64{0, 1, 4, 9, 16, 25} {
		b := SpendingBoundary(stat, InfoNegative)
		if b <= prev {
			t.Fatalf("Boundary must grow with the statistic: %f after %f", b, prev)
		}
		if b <= 0 || b >= 1 {
			t.Fatalf("Boundary %f out of (0,1)", b)
		}
		prev = b
	}

	// Early-information conservatism: a null-typical statistic leaves a
	// threshold far below the nominal 5% level.
	if b := SpendingBoundary(1.0, InfoNegative); b > 0.05 {
		t.Errorf("Null-typical boundary %f, want < 0.05", b)
	}
}

func TestSecondaryTail_StricterThanPrimary(t *testing.T) {
	for _, stat := range []float64{0, 2, 10, 20} {
		primary := SpendingBoundary(stat, InfoPositive)
		secondary := SecondaryTail(stat, InfoPositive)
		if secondary >= primary {
			t.Errorf("Secondary tail %f must undercut primary %f at stat %f", secondary, primary, stat)
		}
	}
}

func TestCombineIntersection_UnionBound(t *testing.T) {
	cases := []struct{ p2, p3 float64 }{
		{0.01, 0.02},
		{0.5, 0.5},
		{0, 0.3},
		{1, 0.4},
	}
	for _, tc := range cases {
		p4 := CombineIntersection(tc.p2, tc.p3)
		lower := math.Max(tc.p2, tc.p3)
		upper := math.Min(tc.p2+tc.p3, 1)
		if p4 < lower-1e-12 || p4 > upper+1e-12 {
			t.Errorf("CombineIntersection(%f,%f) = %f outside [%f,%f]", tc.p2, tc.p3, p4, lower, upper)
		}
	}
}
