package classify

import (
	"fmt"
	"strconv"

	"github.com/AbdouB/persona/internal/models"
)

// Enneagram centers in tritype order: gut, heart, head.
var enneagramCenters = []struct {
	name  string
	types [3]int
}{
	{"gut", [3]int{8, 9, 1}},
	{"heart", [3]int{2, 3, 4}},
	{"head", [3]int{5, 6, 7}},
}

// EnneagramType computes the nine weighted type scores and derives the
// primary type, wing, and tritype. The wing is the second-highest type
// overall, not restricted to the primary's neighbors. Ties resolve to the
// lower type number.
func EnneagramType(scores models.TraitScores, weights models.FrameworkWeights) (*models.EnneagramDetails, error) {
	typeScores := make(map[int]float64, 9)
	for n := 1; n <= 9; n++ {
		key := strconv.Itoa(n)
		dim, ok := weights[key]
		if !ok {
			return nil, &models.ConfigError{Subject: "enneagram." + key, Reason: "type missing from weight table"}
		}
		score, err := weightedScore(scores, dim, "enneagram."+key)
		if err != nil {
			return nil, err
		}
		typeScores[n] = score
	}

	primary, wing := 0, 0
	for n := 1; n <= 9; n++ {
		if primary == 0 || typeScores[n] > typeScores[primary] {
			primary = n
		}
	}
	for n := 1; n <= 9; n++ {
		if n == primary {
			continue
		}
		if wing == 0 || typeScores[n] > typeScores[wing] {
			wing = n
		}
	}

	// Tritype: the best type per center, primary's center first, the other
	// two ordered by their best score descending.
	best := make(map[string]int, 3)
	primaryCenter := ""
	for _, c := range enneagramCenters {
		b := c.types[0]
		for _, t := range c.types {
			if typeScores[t] > typeScores[b] {
				b = t
			}
			if t == primary {
				primaryCenter = c.name
			}
		}
		best[c.name] = b
	}
	// The primary always represents its own center, even when a center
	// sibling ties it.
	best[primaryCenter] = primary
	var rest []string
	for _, c := range enneagramCenters {
		if c.name != primaryCenter {
			rest = append(rest, c.name)
		}
	}
	if len(rest) == 2 && typeScores[best[rest[1]]] > typeScores[best[rest[0]]] {
		rest[0], rest[1] = rest[1], rest[0]
	}
	tritype := fmt.Sprintf("%d%d%d", best[primaryCenter], best[rest[0]], best[rest[1]])

	return &models.EnneagramDetails{
		Type:    primary,
		Wing:    wing,
		Tritype: tritype,
		Scores:  typeScores,
	}, nil
}

// EnneagramLabel renders the conventional "type w wing" label.
func EnneagramLabel(d *models.EnneagramDetails) string {
	return fmt.Sprintf("%dw%d", d.Type, d.Wing)
}
