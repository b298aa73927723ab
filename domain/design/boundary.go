package design

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// SpendingBoundary is the O'Brien-Fleming style adjusted significance
// threshold at an interim information denominator:
//
//	1 - Phi((m * sqrt(plannedEvents) - statistic) / sqrt(infoDenominator))
//
// with the primary multiplier. It starts conservative at low information and
// relaxes as the observed statistic grows.
func SpendingBoundary(statistic float64, infoDenominator int) float64 {
	return boundaryTail(statistic, infoDenominator, PrimaryMultiplier)
}

// SecondaryTail is the same normal tail probability computed with the
// stricter secondary multiplier; two of these feed the closed-testing
// intersection below.
func SecondaryTail(statistic float64, infoDenominator int) float64 {
	return boundaryTail(statistic, infoDenominator, SecondaryMultiplier)
}

// CombineIntersection applies the union bound for the closed-testing
// intersection hypothesis of the subgroup and overall tests:
// p2 + p3 - p2*p3.
func CombineIntersection(p2, p3 float64) float64 {
	return p2 + p3 - p2*p3
}

func boundaryTail(statistic float64, infoDenominator int, multiplier float64) float64 {
	z := (multiplier*math.Sqrt(PlannedEvents) - statistic) / math.Sqrt(float64(infoDenominator))
	return 1 - distuv.UnitNormal.CDF(z)
}
