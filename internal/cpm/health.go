package cpm

import "sort"

// Health score weights and scaling divisors. These are tuning constants
// carried over for compatibility, not derived from scheduling theory;
// revisit them here without touching the scoring algorithm.
const (
	healthWeightNonCritical = 0.4
	healthWeightAvgFloat    = 0.4
	healthWeightVariance    = 0.2

	// avgFloatSaturationDays is the mean float (in days) at which the
	// average-float component saturates at its maximum.
	avgFloatSaturationDays = 10.0

	// varianceDampingDays scales the float-variance penalty.
	varianceDampingDays = 10.0
)

// healthScore produces the composite 0–100 schedule health metric: more
// slack and more evenly distributed slack score higher. Zero tasks score
// a perfect 100. Sums run in sorted ID order so the score is identical
// across runs despite non-associative float addition.
func healthScore(out map[string]*Analysis, criticalCount int) float64 {
	total := len(out)
	if total == 0 {
		return 100
	}

	ids := make([]string, 0, total)
	for id := range out {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	nonCriticalRatio := float64(total-criticalCount) / float64(total)

	var sumDays float64
	for _, id := range ids {
		sumDays += out[id].TotalFloatHours / 24
	}
	meanDays := sumDays / float64(total)

	var variance float64
	for _, id := range ids {
		d := out[id].TotalFloatHours/24 - meanDays
		variance += d * d
	}
	variance /= float64(total)

	avgFloatScore := meanDays / avgFloatSaturationDays
	if avgFloatScore > 1 {
		avgFloatScore = 1
	}
	varianceScore := 1 / (1 + variance/varianceDampingDays)

	score := 100 * (healthWeightNonCritical*nonCriticalRatio +
		healthWeightAvgFloat*avgFloatScore +
		healthWeightVariance*varianceScore)

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
