package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threshold(v float64) *float64 { return &v }

func sampleOverrides() *ScoringOverrides {
	return &ScoringOverrides{
		TraitMappings: map[string][]int{"Concrete": {1, 2, 3}},
		MBTI: FrameworkWeights{
			"EI": {Traits: map[string]float64{"Outgoing": 0.7, "Outward": 0.3}, Threshold: threshold(5.0)},
			"SN": {Traits: map[string]float64{"Concrete": 1.0}},
		},
	}
}

func TestScoringOverridesClone(t *testing.T) {
	orig := sampleOverrides()
	clone := orig.Clone()

	require.Empty(t, cmp.Diff(orig, clone))

	clone.TraitMappings["Concrete"][0] = 99
	clone.MBTI["EI"].Traits["Outgoing"] = 0.1
	*clone.MBTI["EI"].Threshold = 9.0

	assert.Equal(t, 1, orig.TraitMappings["Concrete"][0])
	assert.Equal(t, 0.7, orig.MBTI["EI"].Traits["Outgoing"])
	assert.Equal(t, 5.0, *orig.MBTI["EI"].Threshold)
}

func TestScoringOverridesMerge(t *testing.T) {
	t.Run("dimension in the partial replaces the base dimension wholesale", func(t *testing.T) {
		base := sampleOverrides()
		partial := &ScoringOverrides{
			MBTI: FrameworkWeights{
				"EI": {Traits: map[string]float64{"Expressive": 1.0}},
			},
		}

		merged := base.Merge(partial)
		assert.Equal(t, map[string]float64{"Expressive": 1.0}, merged.MBTI["EI"].Traits)
		assert.Nil(t, merged.MBTI["EI"].Threshold, "threshold does not survive a dimension replacement")
		// Dimensions absent from the partial are kept.
		assert.Equal(t, map[string]float64{"Concrete": 1.0}, merged.MBTI["SN"].Traits)
		// The base is not mutated.
		assert.Equal(t, map[string]float64{"Outgoing": 0.7, "Outward": 0.3}, base.MBTI["EI"].Traits)
	})

	t.Run("trait mappings merge per trait", func(t *testing.T) {
		base := sampleOverrides()
		partial := &ScoringOverrides{
			TraitMappings: map[string][]int{"Abstract": {7, 8, 9}},
		}

		merged := base.Merge(partial)
		assert.Equal(t, []int{1, 2, 3}, merged.TraitMappings["Concrete"])
		assert.Equal(t, []int{7, 8, 9}, merged.TraitMappings["Abstract"])
	})

	t.Run("frameworks untouched by the partial are kept", func(t *testing.T) {
		base := sampleOverrides()
		partial := &ScoringOverrides{
			Holland: FrameworkWeights{"realistic": {Traits: map[string]float64{"Bold": 1.0}}},
		}

		merged := base.Merge(partial)
		require.Empty(t, cmp.Diff(base.MBTI, merged.MBTI))
		assert.NotNil(t, merged.Holland)
	})

	t.Run("nil receiver and nil partial", func(t *testing.T) {
		var base *ScoringOverrides
		merged := base.Merge(sampleOverrides())
		require.Empty(t, cmp.Diff(sampleOverrides(), merged))

		merged = sampleOverrides().Merge(nil)
		require.Empty(t, cmp.Diff(sampleOverrides(), merged))
	})
}

func TestScoringOverridesValidate(t *testing.T) {
	t.Run("sample payload passes", func(t *testing.T) {
		assert.NoError(t, sampleOverrides().Validate())
	})

	cases := []struct {
		name   string
		mutate func(o *ScoringOverrides)
	}{
		{"unknown trait in mapping", func(o *ScoringOverrides) {
			o.TraitMappings["NoSuchTrait"] = []int{1}
		}},
		{"empty mapping", func(o *ScoringOverrides) {
			o.TraitMappings["Concrete"] = nil
		}},
		{"question index out of range", func(o *ScoringOverrides) {
			o.TraitMappings["Concrete"] = []int{1, 2, 109}
		}},
		{"dimension with no weights", func(o *ScoringOverrides) {
			o.MBTI["TF"] = DimensionWeights{}
		}},
		{"weight for unknown trait", func(o *ScoringOverrides) {
			o.MBTI["EI"].Traits["NoSuchTrait"] = 0.5
		}},
		{"negative weight", func(o *ScoringOverrides) {
			o.MBTI["EI"].Traits["Outgoing"] = -0.1
		}},
		{"threshold outside response scale", func(o *ScoringOverrides) {
			o.MBTI["EI"] = DimensionWeights{
				Traits:    map[string]float64{"Outgoing": 1.0},
				Threshold: threshold(11.0),
			}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := sampleOverrides()
			tc.mutate(o)
			var cfgErr *ConfigError
			require.ErrorAs(t, o.Validate(), &cfgErr)
		})
	}
}

func TestOverridesJSONRoundTrip(t *testing.T) {
	orig := sampleOverrides()
	data, err := orig.ToJSON()
	require.NoError(t, err)

	back, err := OverridesFromJSON(data)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(orig, back))

	_, err = OverridesFromJSON("{not json")
	assert.Error(t, err)
}
