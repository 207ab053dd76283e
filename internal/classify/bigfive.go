package classify

import "github.com/AbdouB/persona/internal/models"

// Big Five dimension names in canonical order.
var bigFiveDimensions = []string{
	"openness",
	"conscientiousness",
	"extraversion",
	"agreeableness",
	"neuroticism",
}

// Banding boundaries on the 1-10 scale.
const (
	bigFiveHigh = 6.5
	bigFiveLow  = 4.5
)

// BigFive computes the five weighted dimension scores and bands each as
// High, Balanced, or Low.
func BigFive(scores models.TraitScores, weights models.FrameworkWeights) (*models.BigFiveProfile, error) {
	out := &models.BigFiveProfile{
		Scores: make(map[string]float64, len(bigFiveDimensions)),
		Levels: make(map[string]string, len(bigFiveDimensions)),
	}
	for _, name := range bigFiveDimensions {
		dim, ok := weights[name]
		if !ok {
			return nil, &models.ConfigError{Subject: "bigfive." + name, Reason: "dimension missing from weight table"}
		}
		score, err := weightedScore(scores, dim, "bigfive."+name)
		if err != nil {
			return nil, err
		}
		out.Scores[name] = score
		switch {
		case score >= bigFiveHigh:
			out.Levels[name] = "High"
		case score <= bigFiveLow:
			out.Levels[name] = "Low"
		default:
			out.Levels[name] = "Balanced"
		}
	}
	return out, nil
}
