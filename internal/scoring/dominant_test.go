package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdouB/persona/internal/models"
)

func perceptionTriad(t *testing.T) models.Triad {
	t.Helper()
	for _, triad := range models.Triads {
		if triad.Key() == "cognition-perception" {
			return triad
		}
	}
	t.Fatal("perception triad missing from catalog")
	return models.Triad{}
}

func TestDominantTrait(t *testing.T) {
	triad := perceptionTriad(t) // Concrete / Integrative / Abstract

	resolve := func(t *testing.T, scores models.TraitScores) string {
		t.Helper()
		got, err := DominantTrait(triad, scores)
		require.NoError(t, err)
		return got
	}

	t.Run("clear winner", func(t *testing.T) {
		got := resolve(t, models.TraitScores{
			"Concrete": 7.2, "Integrative": 5.0, "Abstract": 4.1,
		})
		assert.Equal(t, "Concrete", got)
	})

	t.Run("all three tied resolves to the balanced middle", func(t *testing.T) {
		got := resolve(t, models.TraitScores{
			"Concrete": 5.0, "Integrative": 5.0, "Abstract": 5.0,
		})
		assert.Equal(t, "Integrative", got)
	})

	t.Run("tied extremes above the middle resolve to the middle", func(t *testing.T) {
		got := resolve(t, models.TraitScores{
			"Concrete": 6.0, "Integrative": 4.0, "Abstract": 6.0,
		})
		assert.Equal(t, "Integrative", got)
	})

	t.Run("adjacent tie keeps the first of the pair", func(t *testing.T) {
		got := resolve(t, models.TraitScores{
			"Concrete": 6.0, "Integrative": 6.0, "Abstract": 3.0,
		})
		assert.Equal(t, "Concrete", got)

		got = resolve(t, models.TraitScores{
			"Concrete": 3.0, "Integrative": 6.0, "Abstract": 6.0,
		})
		assert.Equal(t, "Integrative", got)
	})

	t.Run("scores within tolerance count as tied", func(t *testing.T) {
		got := resolve(t, models.TraitScores{
			"Concrete": 6.005, "Integrative": 4.0, "Abstract": 6.0,
		})
		assert.Equal(t, "Integrative", got)
	})

	t.Run("scores outside tolerance do not tie", func(t *testing.T) {
		got := resolve(t, models.TraitScores{
			"Concrete": 6.02, "Integrative": 4.0, "Abstract": 6.0,
		})
		assert.Equal(t, "Concrete", got)
	})

	t.Run("missing trait is a configuration error", func(t *testing.T) {
		_, err := DominantTrait(triad, models.TraitScores{"Concrete": 5.0})
		var cfgErr *models.ConfigError
		require.ErrorAs(t, err, &cfgErr)
	})
}

func TestDominantTraits(t *testing.T) {
	scores, err := TraitScores(allFives(), models.DefaultTraitMappings())
	require.NoError(t, err)

	dominant, err := DominantTraits(scores)
	require.NoError(t, err)
	require.Len(t, dominant, len(models.Triads))
	for _, triad := range models.Triads {
		assert.Equal(t, triad.Traits[1], dominant[triad.Key()], "triad %s", triad.Key())
	}
}
