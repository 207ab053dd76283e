// Package scoring implements the deterministic response-to-trait pipeline:
// trait means, triad dominance, and domain aggregation. Everything here is
// pure; identical inputs produce bit-identical outputs.
package scoring

import (
	"fmt"

	"github.com/AbdouB/persona/internal/models"
)

// TraitScores computes the per-trait mean of the mapped question responses.
// Indices in mappings are 1-based. A trait with zero mapped indices is a
// configuration error, not a default score: silently substituting a
// constant would mask override bugs.
func TraitScores(responses models.ResponseVector, mappings map[string][]int) (models.TraitScores, error) {
	if err := responses.Validate(); err != nil {
		return nil, err
	}

	scores := make(models.TraitScores, len(mappings))
	for trait, indices := range mappings {
		if len(indices) == 0 {
			return nil, &models.ConfigError{Subject: trait, Reason: "trait has no mapped question indices"}
		}
		sum := 0
		for _, idx := range indices {
			if idx < 1 || idx > len(responses) {
				return nil, &models.ConfigError{Subject: trait, Reason: fmt.Sprintf("question index %d out of range [1,%d]", idx, len(responses))}
			}
			sum += responses[idx-1]
		}
		scores[trait] = float64(sum) / float64(len(indices))
	}
	return scores, nil
}
