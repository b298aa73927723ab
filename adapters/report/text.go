package report

import (
	"fmt"
	"strings"

	"trialsim/domain/trial"
)

// RenderText produces the labeled plain-text summary of one run.
func RenderText(s *trial.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Adaptive enrichment design: operating characteristics\n")
	fmt.Fprintf(&b, "run %s, %d replications, seed %d\n\n", s.RunID, s.Replications, s.Scenario.Seed)

	fmt.Fprintf(&b, "Scenario\n")
	fmt.Fprintf(&b, "  prevalence           %.3f\n", s.Scenario.Prevalence)
	fmt.Fprintf(&b, "  accrual rate         %.1f patients/month\n", s.Scenario.AccrualRate)
	fmt.Fprintf(&b, "  median PFS positive  %.1f vs %.1f months\n", s.Scenario.MedianPositiveExperimental, s.Scenario.MedianPositiveControl)
	fmt.Fprintf(&b, "  median PFS negative  %.1f vs %.1f months\n", s.Scenario.MedianNegativeExperimental, s.Scenario.MedianNegativeControl)
	fmt.Fprintf(&b, "  interim alpha        %.3f (neg) / %.3f (pos)\n\n", s.Scenario.AlphaNegative, s.Scenario.AlphaPositive)

	fmt.Fprintf(&b, "Outcome probabilities\n")
	for _, o := range trial.Outcomes() {
		fmt.Fprintf(&b, "  %-42s %6.4f  (%d)\n", o.Label(), s.Probability(o), s.Counts[o])
	}

	fmt.Fprintf(&b, "\nAnalysis times (months)\n")
	fmt.Fprintf(&b, "  interim  mean %.1f  median %.1f  p90 %.1f\n", s.InterimTime.Mean, s.InterimTime.Median, s.InterimTime.P90)
	if s.StageTwoFraction > 0 {
		fmt.Fprintf(&b, "  final    mean %.1f  median %.1f  p90 %.1f  (%.1f%% of replications)\n",
			s.FinalTime.Mean, s.FinalTime.Median, s.FinalTime.P90, 100*s.StageTwoFraction)
	}
	return b.String()
}
