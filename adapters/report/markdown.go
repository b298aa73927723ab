package report

import (
	"fmt"
	"strings"

	"trialsim/domain/trial"
)

// RenderMarkdown produces the markdown variant of the run report, suitable
// for HTML rendering by the HTTP surface.
func RenderMarkdown(s *trial.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Adaptive enrichment design: operating characteristics\n\n")
	fmt.Fprintf(&b, "Run `%s`, %d replications, seed %d.\n\n", s.RunID, s.Replications, s.Scenario.Seed)

	fmt.Fprintf(&b, "| Outcome | Probability | Count |\n")
	fmt.Fprintf(&b, "|---|---:|---:|\n")
	for _, o := range trial.Outcomes() {
		fmt.Fprintf(&b, "| %s | %.4f | %d |\n", o.Label(), s.Probability(o), s.Counts[o])
	}

	fmt.Fprintf(&b, "\n**Analysis times (months):** interim mean %.1f / median %.1f; ", s.InterimTime.Mean, s.InterimTime.Median)
	if s.StageTwoFraction > 0 {
		fmt.Fprintf(&b, "final mean %.1f / median %.1f over %.1f%% of replications.\n",
			s.FinalTime.Mean, s.FinalTime.Median, 100*s.StageTwoFraction)
	} else {
		fmt.Fprintf(&b, "no replication reached stage two.\n")
	}
	return b.String()
}
