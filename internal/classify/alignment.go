package classify

import "github.com/AbdouB/persona/internal/models"

// NeutralBand is the half-width of the neutral zone around an axis
// threshold: scores within it classify as Neutral on that axis.
const NeutralBand = 1.0

// Alignment computes the D&D alignment from the lawfulness and goodness
// axes. An axis score at or above threshold+NeutralBand takes the first
// pole, at or below threshold-NeutralBand the second, Neutral otherwise.
// Both axes neutral renders as "True Neutral".
func Alignment(scores models.TraitScores, weights models.FrameworkWeights) (string, error) {
	law, err := axisLabel(scores, weights, "lawfulness", "Lawful", "Chaotic")
	if err != nil {
		return "", err
	}
	good, err := axisLabel(scores, weights, "goodness", "Good", "Evil")
	if err != nil {
		return "", err
	}
	if law == "Neutral" && good == "Neutral" {
		return "True Neutral", nil
	}
	return law + " " + good, nil
}

func axisLabel(scores models.TraitScores, weights models.FrameworkWeights, axis, high, low string) (string, error) {
	dim, ok := weights[axis]
	if !ok {
		return "", &models.ConfigError{Subject: "alignment." + axis, Reason: "axis missing from weight table"}
	}
	score, err := weightedScore(scores, dim, "alignment."+axis)
	if err != nil {
		return "", err
	}
	th := dimensionThreshold(dim, DefaultMBTIThreshold)
	switch {
	case score >= th+NeutralBand:
		return high, nil
	case score <= th-NeutralBand:
		return low, nil
	default:
		return "Neutral", nil
	}
}
