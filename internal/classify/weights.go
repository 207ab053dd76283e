// Package classify turns trait scores into discrete framework labels:
// MBTI, Enneagram, Big Five, Socionics, Holland Code, D&D alignment, and
// attachment style. Every classifier is a pure function of the trait
// scores and the effective weight tables.
package classify

import "github.com/AbdouB/persona/internal/models"

// weightedScore computes the weight-normalized mean of the traits in one
// dimension table, staying on the 1-10 response scale regardless of how
// the weights sum.
func weightedScore(scores models.TraitScores, dim models.DimensionWeights, subject string) (float64, error) {
	if len(dim.Traits) == 0 {
		return 0, &models.ConfigError{Subject: subject, Reason: "dimension has no trait weights"}
	}
	sum := 0.0
	total := 0.0
	for trait, weight := range dim.Traits {
		v, ok := scores[trait]
		if !ok {
			return 0, &models.ConfigError{Subject: subject, Reason: "weight references trait missing from score map: " + trait}
		}
		sum += v * weight
		total += weight
	}
	if total == 0 {
		return 0, &models.ConfigError{Subject: subject, Reason: "dimension weights sum to zero"}
	}
	return sum / total, nil
}

// dimensionThreshold returns the dimension's threshold or the fallback.
func dimensionThreshold(dim models.DimensionWeights, fallback float64) float64 {
	if dim.Threshold != nil {
		return *dim.Threshold
	}
	return fallback
}
