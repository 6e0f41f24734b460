// Package scoring implements the health score engine: a pure mapping from a
// scan's findings to a 0-100 aggregate. The doubling and clamping compress the
// effect of many low-severity findings while a handful of critical findings
// drives the score toward zero quickly.
package scoring

import "domainguard/pkg/domain"

// Severity weights. Unknown severities weigh nothing.
const (
	weightLow      = 1
	weightMedium   = 3
	weightHigh     = 7
	weightCritical = 10
)

// Weight returns the score weight of a severity.
func Weight(s domain.Severity) int {
	switch s {
	case domain.SeverityLow:
		return weightLow
	case domain.SeverityMedium:
		return weightMedium
	case domain.SeverityHigh:
		return weightHigh
	case domain.SeverityCritical:
		return weightCritical
	default:
		return 0
	}
}

// Score computes the health score for a set of findings:
//
//	score = max(0, 100 - min(100, 2 * sum(weight(severity))))
//
// No findings yields 100. The result is always within [0, 100].
func Score(findings []domain.Finding) int {
	total := 0
	for i := range findings {
		total += Weight(findings[i].Severity)
	}

	penalty := min(100, 2*total)

	return 100 - penalty
}
