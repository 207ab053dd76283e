package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdouB/persona/internal/config"
	"github.com/AbdouB/persona/internal/models"
)

func defaultEffective() *models.EffectiveConfig {
	defaults := config.DefaultOverrides()
	frameworks := make(map[string]models.FrameworkWeights, len(models.Frameworks))
	for _, f := range models.Frameworks {
		if w := defaults.Framework(f); w != nil {
			frameworks[f] = w
		}
	}
	return &models.EffectiveConfig{
		TraitMappings: models.DefaultTraitMappings(),
		Frameworks:    frameworks,
	}
}

func uniformResponses(value int) models.ResponseVector {
	v := make(models.ResponseVector, models.QuestionCount)
	for i := range v {
		v[i] = value
	}
	return v
}

func TestScoreProfile(t *testing.T) {
	t.Run("uniform fives land on every threshold boundary", func(t *testing.T) {
		profile, err := ScoreProfile(uniformResponses(5), defaultEffective())
		require.NoError(t, err)
		require.Empty(t, profile.FrameworkErrors)

		for trait, score := range profile.TraitScores {
			assert.Equal(t, 5.0, score, "trait %s", trait)
		}
		for _, triad := range models.Triads {
			assert.Equal(t, triad.Traits[1], profile.DominantTraits[triad.Key()])
		}
		for _, domain := range models.Domains {
			assert.Equal(t, 5.0, profile.DomainScores[domain])
		}

		// Every MBTI dimension sits exactly at threshold, which resolves
		// to the first letter of each pair.
		assert.Equal(t, "ESTJ", profile.Mappings.MBTI)
		assert.Equal(t, "LSE (ESTj)", profile.Mappings.Socionics)
		assert.Equal(t, "True Neutral", profile.Mappings.DNDAlignment)
		assert.Equal(t, "1w2", profile.Mappings.Enneagram)
		require.NotNil(t, profile.Mappings.EnneagramDetails)
		assert.Equal(t, "125", profile.Mappings.EnneagramDetails.Tritype)
		require.NotNil(t, profile.Mappings.BigFive)
		for dim, level := range profile.Mappings.BigFive.Levels {
			assert.Equal(t, "Balanced", level, "dimension %s", dim)
		}
		assert.Equal(t, "secure", profile.Mappings.Attachment)
		assert.Len(t, profile.Mappings.HollandCode, 3)
	})

	t.Run("one broken framework does not take down the rest", func(t *testing.T) {
		eff := defaultEffective()
		broken := eff.Frameworks[models.FrameworkEnneagram].Clone()
		delete(broken, "9")
		eff.Frameworks[models.FrameworkEnneagram] = broken

		profile, err := ScoreProfile(uniformResponses(5), eff)
		require.NoError(t, err)
		assert.Contains(t, profile.FrameworkErrors, models.FrameworkEnneagram)
		assert.Empty(t, profile.Mappings.Enneagram)
		assert.Equal(t, "ESTJ", profile.Mappings.MBTI)
		assert.Equal(t, "True Neutral", profile.Mappings.DNDAlignment)
	})

	t.Run("a failed MBTI takes socionics with it", func(t *testing.T) {
		eff := defaultEffective()
		broken := eff.Frameworks[models.FrameworkMBTI].Clone()
		delete(broken, "EI")
		eff.Frameworks[models.FrameworkMBTI] = broken

		profile, err := ScoreProfile(uniformResponses(5), eff)
		require.NoError(t, err)
		assert.Contains(t, profile.FrameworkErrors, models.FrameworkMBTI)
		assert.Contains(t, profile.FrameworkErrors, models.FrameworkSocionics)
		assert.Empty(t, profile.Mappings.Socionics)
	})

	t.Run("user values pin labels without changing computation", func(t *testing.T) {
		eff := defaultEffective()
		eff.UserValues = map[string]string{models.FrameworkMBTI: "INFP"}

		profile, err := ScoreProfile(uniformResponses(5), eff)
		require.NoError(t, err)
		assert.Equal(t, "INFP", profile.Mappings.MBTI)
		// Socionics still derives from the computed code, not the pin.
		assert.Equal(t, "LSE (ESTj)", profile.Mappings.Socionics)
		assert.Equal(t, []string{models.FrameworkMBTI}, profile.OverriddenFrameworks)
	})

	t.Run("invalid responses are fatal", func(t *testing.T) {
		v := uniformResponses(5)
		v[0] = 0
		_, err := ScoreProfile(v, defaultEffective())
		var inputErr *models.InputError
		require.ErrorAs(t, err, &inputErr)
	})
}
