package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdouB/persona/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestGenerateChangesSummary(t *testing.T) {
	t.Run("identical states report no changes", func(t *testing.T) {
		state := &models.ScoringOverrides{
			TraitMappings: map[string][]int{"Concrete": {1, 2, 3}},
		}
		assert.Equal(t, []string{"no changes"}, GenerateChangesSummary(state, state.Clone()))
	})

	t.Run("nil states report no changes", func(t *testing.T) {
		assert.Equal(t, []string{"no changes"}, GenerateChangesSummary(nil, nil))
	})

	t.Run("mapping changes", func(t *testing.T) {
		before := &models.ScoringOverrides{
			TraitMappings: map[string][]int{
				"Concrete": {1, 2, 3},
				"Abstract": {7, 8, 9},
			},
		}
		after := &models.ScoringOverrides{
			TraitMappings: map[string][]int{
				"Concrete": {1, 2, 4},
				"Logical":  {10, 11, 12},
			},
		}

		lines := GenerateChangesSummary(before, after)
		assert.Contains(t, lines, "trait mapping changed: Concrete [1 2 3] -> [1 2 4]")
		assert.Contains(t, lines, "trait mapping removed: Abstract (was [7 8 9])")
		assert.Contains(t, lines, "trait mapping added: Logical -> [10 11 12]")
	})

	t.Run("weight and threshold changes", func(t *testing.T) {
		before := &models.ScoringOverrides{
			MBTI: models.FrameworkWeights{
				"EI": {
					Traits:    map[string]float64{"Outgoing": 0.5, "Expressive": 0.5},
					Threshold: floatPtr(5.0),
				},
			},
		}
		after := &models.ScoringOverrides{
			MBTI: models.FrameworkWeights{
				"EI": {
					Traits:    map[string]float64{"Outgoing": 0.6, "Outward": 0.4},
					Threshold: floatPtr(5.5),
				},
				"SN": {Traits: map[string]float64{"Concrete": 1.0}},
			},
		}

		lines := GenerateChangesSummary(before, after)
		assert.Contains(t, lines, "mbti.EI: weight Outgoing 0.50 -> 0.60")
		assert.Contains(t, lines, "mbti.EI: weight removed Expressive (was 0.50)")
		assert.Contains(t, lines, "mbti.EI: weight added Outward=0.40")
		assert.Contains(t, lines, "mbti.EI: threshold 5.00 -> 5.50")
		assert.Contains(t, lines, "weights added: mbti.SN")
	})

	t.Run("threshold set and cleared", func(t *testing.T) {
		weights := func(th *float64) *models.ScoringOverrides {
			return &models.ScoringOverrides{
				Holland: models.FrameworkWeights{
					"realistic": {Traits: map[string]float64{"Bold": 1.0}, Threshold: th},
				},
			}
		}

		lines := GenerateChangesSummary(weights(nil), weights(floatPtr(6.0)))
		assert.Contains(t, lines, "holland.realistic: threshold set to 6.00")

		lines = GenerateChangesSummary(weights(floatPtr(6.0)), weights(nil))
		assert.Contains(t, lines, "holland.realistic: threshold cleared (was 6.00)")
	})

	t.Run("lines are deterministic", func(t *testing.T) {
		before := &models.ScoringOverrides{
			TraitMappings: map[string][]int{"Concrete": {1}, "Abstract": {2}, "Logical": {3}},
		}
		first := GenerateChangesSummary(before, nil)
		require.Len(t, first, 3)
		for i := 0; i < 20; i++ {
			assert.Equal(t, first, GenerateChangesSummary(before, nil))
		}
	})
}
