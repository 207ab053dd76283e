package scoring

import "github.com/AbdouB/persona/internal/models"

// TieTolerance is how close to the triad's top score a trait must be to
// count as tied with it.
const TieTolerance = 0.01

// DominantTrait picks the winning trait of one triad.
//
// Tie-break policy:
//   - no tie beyond the top score: the top trait wins
//   - the two poles (first and last) tied above the middle: the middle
//     trait wins, as the balanced reading of opposed extremes
//   - all three tied: the middle trait wins
//   - an adjacent pair tied: the earlier of the pair in triad order wins
func DominantTrait(triad models.Triad, scores models.TraitScores) (string, error) {
	var vals [3]float64
	for i, trait := range triad.Traits {
		v, ok := scores[trait]
		if !ok {
			return "", &models.ConfigError{Subject: trait, Reason: "trait missing from score map"}
		}
		vals[i] = v
	}

	highest := vals[0]
	for _, v := range vals[1:] {
		if v > highest {
			highest = v
		}
	}

	var tied []int
	for i, v := range vals {
		if highest-v <= TieTolerance {
			tied = append(tied, i)
		}
	}

	switch len(tied) {
	case 1:
		return triad.Traits[tied[0]], nil
	case 3:
		return triad.Traits[1], nil
	default: // exactly 2
		if tied[0] == 0 && tied[1] == 2 {
			// Opposed poles: treat as ambivalence, pick the balanced middle.
			return triad.Traits[1], nil
		}
		return triad.Traits[tied[0]], nil
	}
}

// DominantTraits resolves every triad in the structural table, keyed by
// "<domain>-<subdimension>".
func DominantTraits(scores models.TraitScores) (models.DominantTraits, error) {
	out := make(models.DominantTraits, len(models.Triads))
	for _, triad := range models.Triads {
		winner, err := DominantTrait(triad, scores)
		if err != nil {
			return nil, err
		}
		out[triad.Key()] = winner
	}
	return out, nil
}
