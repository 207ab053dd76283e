package classify

import "github.com/AbdouB/persona/internal/models"

// Attachment styles in canonical order; the order breaks score ties.
var attachmentStyles = []string{"secure", "anxious", "avoidant", "disorganized"}

// Attachment computes the four weighted style scores and returns the
// highest-scoring style.
func Attachment(scores models.TraitScores, weights models.FrameworkWeights) (string, error) {
	bestStyle := ""
	bestScore := 0.0
	for _, style := range attachmentStyles {
		dim, ok := weights[style]
		if !ok {
			return "", &models.ConfigError{Subject: "attachment." + style, Reason: "style missing from weight table"}
		}
		score, err := weightedScore(scores, dim, "attachment."+style)
		if err != nil {
			return "", err
		}
		if bestStyle == "" || score > bestScore {
			bestStyle = style
			bestScore = score
		}
	}
	return bestStyle, nil
}
