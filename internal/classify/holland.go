package classify

import (
	"sort"

	"github.com/AbdouB/persona/internal/models"
)

// RIASEC dimensions in canonical order; the order also breaks score ties.
var hollandDimensions = []struct {
	name   string
	letter byte
}{
	{"realistic", 'R'},
	{"investigative", 'I'},
	{"artistic", 'A'},
	{"social", 'S'},
	{"enterprising", 'E'},
	{"conventional", 'C'},
}

// HollandCode computes the six RIASEC scores and returns the three-letter
// code of the top-scoring interests.
func HollandCode(scores models.TraitScores, weights models.FrameworkWeights) (string, error) {
	type scored struct {
		letter byte
		order  int
		score  float64
	}
	ranked := make([]scored, 0, len(hollandDimensions))
	for i, d := range hollandDimensions {
		dim, ok := weights[d.name]
		if !ok {
			return "", &models.ConfigError{Subject: "holland." + d.name, Reason: "dimension missing from weight table"}
		}
		score, err := weightedScore(scores, dim, "holland."+d.name)
		if err != nil {
			return "", err
		}
		ranked = append(ranked, scored{letter: d.letter, order: i, score: score})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].order < ranked[j].order
	})
	return string([]byte{ranked[0].letter, ranked[1].letter, ranked[2].letter}), nil
}
