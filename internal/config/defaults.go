// Package config resolves the effective scoring configuration from three
// layers: built-in defaults, the global override record, and per-user
// overrides.
package config

import "github.com/AbdouB/persona/internal/models"

// DefaultThreshold is the decision boundary for threshold-based dimensions
// on the 1-10 response scale.
const DefaultThreshold = 5.0

func threshold(v float64) *float64 { return &v }

// DefaultOverrides returns the built-in configuration: the default trait
// mappings plus every framework's default weight table. Callers receive a
// fresh copy and may mutate it freely.
func DefaultOverrides() *models.ScoringOverrides {
	return &models.ScoringOverrides{
		TraitMappings: models.DefaultTraitMappings(),

		// Each MBTI dimension measures its first letter's pole. Weighted
		// sum >= threshold selects the first letter (E, S, T, J).
		MBTI: models.FrameworkWeights{
			"EI": {Traits: map[string]float64{"Outgoing": 0.5, "Expressive": 0.3, "Outward": 0.2}, Threshold: threshold(DefaultThreshold)},
			"SN": {Traits: map[string]float64{"Concrete": 0.5, "Grounded": 0.3, "Methodical": 0.2}, Threshold: threshold(DefaultThreshold)},
			"TF": {Traits: map[string]float64{"Logical": 0.5, "Calculated": 0.3, "Contained": 0.2}, Threshold: threshold(DefaultThreshold)},
			"JP": {Traits: map[string]float64{"Structured": 0.5, "Careful": 0.3, "Driven": 0.2}, Threshold: threshold(DefaultThreshold)},
		},

		Enneagram: models.FrameworkWeights{
			"1": {Traits: map[string]float64{"Structured": 0.4, "Careful": 0.3, "Logical": 0.3}},
			"2": {Traits: map[string]float64{"Empathic": 0.5, "Accommodating": 0.3, "Expressive": 0.2}},
			"3": {Traits: map[string]float64{"Driven": 0.4, "Assertive": 0.3, "Outgoing": 0.3}},
			"4": {Traits: map[string]float64{"Sensitive": 0.4, "Abstract": 0.3, "Contained": 0.3}},
			"5": {Traits: map[string]float64{"Abstract": 0.4, "Inward": 0.3, "Reserved": 0.3}},
			"6": {Traits: map[string]float64{"Careful": 0.4, "Cautious": 0.3, "Steady": 0.3}},
			"7": {Traits: map[string]float64{"Spontaneous": 0.4, "Optimistic": 0.3, "Exploratory": 0.3}},
			"8": {Traits: map[string]float64{"Assertive": 0.4, "Bold": 0.4, "Outward": 0.2}},
			"9": {Traits: map[string]float64{"Accommodating": 0.3, "Steady": 0.4, "Paced": 0.3}},
		},

		BigFive: models.FrameworkWeights{
			"openness":          {Traits: map[string]float64{"Abstract": 0.4, "Exploratory": 0.3, "Integrative": 0.3}},
			"conscientiousness": {Traits: map[string]float64{"Structured": 0.4, "Methodical": 0.3, "Careful": 0.3}},
			"extraversion":      {Traits: map[string]float64{"Outgoing": 0.5, "Expressive": 0.3, "Outward": 0.2}},
			"agreeableness":     {Traits: map[string]float64{"Empathic": 0.4, "Accommodating": 0.4, "Steady": 0.2}},
			"neuroticism":       {Traits: map[string]float64{"Sensitive": 0.5, "Cautious": 0.3, "Responsive": 0.2}},
		},

		Holland: models.FrameworkWeights{
			"realistic":     {Traits: map[string]float64{"Concrete": 0.4, "Bold": 0.3, "Outward": 0.3}},
			"investigative": {Traits: map[string]float64{"Abstract": 0.4, "Inward": 0.3, "Methodical": 0.3}},
			"artistic":      {Traits: map[string]float64{"Exploratory": 0.4, "Expressive": 0.3, "Spontaneous": 0.3}},
			"social":        {Traits: map[string]float64{"Empathic": 0.5, "Outgoing": 0.3, "Accommodating": 0.2}},
			"enterprising":  {Traits: map[string]float64{"Assertive": 0.4, "Driven": 0.3, "Optimistic": 0.3}},
			"conventional":  {Traits: map[string]float64{"Structured": 0.5, "Careful": 0.3, "Paced": 0.2}},
		},

		Alignment: models.FrameworkWeights{
			"lawfulness": {Traits: map[string]float64{"Structured": 0.4, "Methodical": 0.3, "Careful": 0.3}, Threshold: threshold(DefaultThreshold)},
			"goodness":   {Traits: map[string]float64{"Empathic": 0.4, "Accommodating": 0.3, "Steady": 0.3}, Threshold: threshold(DefaultThreshold)},
		},

		Attachment: models.FrameworkWeights{
			"secure":       {Traits: map[string]float64{"Steady": 0.4, "Optimistic": 0.3, "Measured": 0.3}},
			"anxious":      {Traits: map[string]float64{"Sensitive": 0.4, "Cautious": 0.3, "Expressive": 0.3}},
			"avoidant":     {Traits: map[string]float64{"Reserved": 0.4, "Contained": 0.3, "Inward": 0.3}},
			"disorganized": {Traits: map[string]float64{"Spontaneous": 0.4, "Responsive": 0.3, "Bold": 0.3}},
		},

		// Per-level trait priors applied by the integral scorer when a
		// trait profile accompanies the level questionnaire. Socionics has
		// no weights: it is a static lookup from the MBTI code.
		Integral: models.FrameworkWeights{
			"Impulsive":     {Traits: map[string]float64{"Bold": 0.5, "Spontaneous": 0.5}},
			"Conformist":    {Traits: map[string]float64{"Structured": 0.5, "Careful": 0.5}},
			"Achiever":      {Traits: map[string]float64{"Driven": 0.5, "Assertive": 0.5}},
			"Pluralist":     {Traits: map[string]float64{"Empathic": 0.5, "Accommodating": 0.5}},
			"Integral":      {Traits: map[string]float64{"Integrative": 0.5, "Adaptive": 0.5}},
			"Transpersonal": {Traits: map[string]float64{"Abstract": 0.5, "Inward": 0.5}},
		},
	}
}
