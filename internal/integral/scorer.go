// Package integral scores the six-level developmental questionnaire and
// runs the confidence-enhancement flow that narrows ambiguous results with
// targeted follow-up questions.
package integral

import (
	"fmt"
	"math"

	"github.com/AbdouB/persona/internal/models"
)

// Scoring constants.
const (
	// SecondaryBand is how close (as a fraction of the primary score) the
	// runner-up must be to count as a secondary level.
	SecondaryBand = 0.85

	// PriorScale damps the trait-derived prior added per level when a
	// trait profile accompanies the questionnaire.
	PriorScale = 0.2

	// spreadSaturation is the primary/secondary spread ratio at which the
	// spread component of confidence maxes out.
	spreadSaturation = 0.3
)

// Question is one fixed questionnaire item. Each option awards points to
// one or more levels.
type Question struct {
	Text    string
	Options []models.QuestionOption
}

// Score computes the IntegralDetail from questionnaire answers (option
// index per bank question). traits and priors are optional: when both are
// present, each level receives a small trait-derived prior from the
// effective integral weight table.
func Score(answers []int, traits models.TraitScores, priors models.FrameworkWeights) (*models.IntegralDetail, error) {
	if len(answers) != len(QuestionBank) {
		return nil, &models.InputError{Reason: fmt.Sprintf("expected %d answers, got %d", len(QuestionBank), len(answers))}
	}

	raw := make(map[string]float64, len(models.IntegralLevels))
	for _, level := range models.IntegralLevels {
		raw[level] = 0
	}

	consistent := 0
	for i, choice := range answers {
		q := QuestionBank[i]
		if choice < 0 || choice >= len(q.Options) {
			return nil, &models.InputError{Reason: fmt.Sprintf("answer %d selects option %d of %d", i+1, choice, len(q.Options))}
		}
		for level, pts := range q.Options[choice].Points {
			raw[level] += pts
		}
	}

	if traits != nil && priors != nil {
		applyTraitPriors(raw, traits, priors)
	}

	detail := detailFromScores(raw)

	// Response consistency: the share of answers whose strongest option
	// points at the primary level.
	for i, choice := range answers {
		if topLevel(QuestionBank[i].Options[choice].Points) == detail.PrimaryLevel {
			consistent++
		}
	}
	consistency := float64(consistent) / float64(len(answers))
	detail.Confidence = confidence(detail.LevelScores, detail.PrimaryLevel, detail.SecondaryLevel, consistency)
	return detail, nil
}

// applyTraitPriors nudges each level score by its weighted trait mean's
// distance from the scale midpoint. Scores never drop below zero.
func applyTraitPriors(raw map[string]float64, traits models.TraitScores, priors models.FrameworkWeights) {
	mid := float64(models.ScaleMin+models.ScaleMax) / 2
	for level, dim := range priors {
		if _, ok := raw[level]; !ok {
			continue
		}
		sum, total := 0.0, 0.0
		for trait, weight := range dim.Traits {
			v, ok := traits[trait]
			if !ok {
				continue
			}
			sum += v * weight
			total += weight
		}
		if total == 0 {
			continue
		}
		raw[level] = math.Max(0, raw[level]+(sum/total-mid)*PriorScale)
	}
}

// detailFromScores derives primary, secondary, and the static per-level
// descriptors from raw scores. Ties resolve to the earlier (lower) level.
func detailFromScores(raw map[string]float64) *models.IntegralDetail {
	primary := models.IntegralLevels[0]
	for _, level := range models.IntegralLevels[1:] {
		if raw[level] > raw[primary] {
			primary = level
		}
	}
	secondary := ""
	for _, level := range models.IntegralLevels {
		if level == primary {
			continue
		}
		if secondary == "" || raw[level] > raw[secondary] {
			secondary = level
		}
	}
	if raw[primary] <= 0 || raw[secondary] < SecondaryBand*raw[primary] {
		secondary = ""
	}

	profile := levelProfiles[primary]
	edge := ""
	if idx := models.LevelIndex(primary); idx >= 0 && idx < len(models.IntegralLevels)-1 {
		edge = models.IntegralLevels[idx+1]
	}

	scores := make(map[string]float64, len(raw))
	for k, v := range raw {
		scores[k] = v
	}
	triad := make(map[string]string, len(profile.Triad))
	for k, v := range profile.Triad {
		triad[k] = v
	}

	return &models.IntegralDetail{
		PrimaryLevel:        primary,
		SecondaryLevel:      secondary,
		CognitiveComplexity: profile.Complexity,
		RealityTriadMapping: triad,
		DevelopmentalEdge:   edge,
		LevelScores:         scores,
	}
}

// confidence maps the primary/secondary spread and response consistency to
// a 0-100 score. A wider spread means the instrument separated the levels
// cleanly; consistent answers reinforce it.
func confidence(raw map[string]float64, primary, secondary string, consistency float64) float64 {
	spread := 1.0
	if secondary == "" {
		// No close runner-up: find the actual second-best for the spread.
		for _, level := range models.IntegralLevels {
			if level != primary && (secondary == "" || raw[level] > raw[secondary]) {
				secondary = level
			}
		}
	}
	if raw[primary] > 0 {
		spread = (raw[primary] - raw[secondary]) / raw[primary]
	}
	spreadScore := math.Min(spread/spreadSaturation, 1.0)
	c := (0.6*spreadScore + 0.4*consistency) * 100
	return math.Max(0, math.Min(100, c))
}

func topLevel(points map[string]float64) string {
	best := ""
	for _, level := range models.IntegralLevels {
		pts, ok := points[level]
		if !ok {
			continue
		}
		if best == "" || pts > points[best] {
			best = level
		}
	}
	return best
}

// levelProfiles holds the static descriptors attached to each primary
// level.
var levelProfiles = map[string]struct {
	Complexity string
	Triad      map[string]string
}{
	"Impulsive": {
		Complexity: "reactive-concrete",
		Triad: map[string]string{
			"self":    "impulse and immediate need",
			"culture": "power defines belonging",
			"nature":  "arena of threat and reward",
		},
	},
	"Conformist": {
		Complexity: "rule-based",
		Triad: map[string]string{
			"self":    "role within the group",
			"culture": "tradition and shared rules",
			"nature":  "ordered and governed",
		},
	},
	"Achiever": {
		Complexity: "systemic-strategic",
		Triad: map[string]string{
			"self":    "autonomous goal-setter",
			"culture": "meritocratic exchange",
			"nature":  "resource to be optimized",
		},
	},
	"Pluralist": {
		Complexity: "contextual-relativistic",
		Triad: map[string]string{
			"self":    "one perspective among many",
			"culture": "plural communities of meaning",
			"nature":  "web of interdependence",
		},
	},
	"Integral": {
		Complexity: "meta-systemic",
		Triad: map[string]string{
			"self":    "developmental process in motion",
			"culture": "nested systems of value",
			"nature":  "co-evolving whole",
		},
	},
	"Transpersonal": {
		Complexity: "unitive",
		Triad: map[string]string{
			"self":    "witness beyond identity",
			"culture": "expression of shared ground",
			"nature":  "continuous with awareness",
		},
	},
}
