package integral

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdouB/persona/internal/models"
)

// answersAll returns one answer sheet selecting the same option index for
// every bank question.
func answersAll(option int) []int {
	answers := make([]int, len(QuestionBank))
	for i := range answers {
		answers[i] = option
	}
	return answers
}

func TestScore(t *testing.T) {
	t.Run("uniform first options score Impulsive with full confidence", func(t *testing.T) {
		detail, err := Score(answersAll(0), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "Impulsive", detail.PrimaryLevel)
		assert.Empty(t, detail.SecondaryLevel, "no runner-up comes close")
		assert.Equal(t, 100.0, detail.Confidence)
		assert.Equal(t, "Conformist", detail.DevelopmentalEdge)
		assert.Equal(t, "reactive-concrete", detail.CognitiveComplexity)
		assert.Contains(t, detail.RealityTriadMapping, "self")
	})

	t.Run("uniform second options score Conformist", func(t *testing.T) {
		detail, err := Score(answersAll(1), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "Conformist", detail.PrimaryLevel)
		assert.Equal(t, "Achiever", detail.DevelopmentalEdge)
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		answers := []int{0, 2, 3, 1, 4, 2, 3, 2}
		first, err := Score(answers, nil, nil)
		require.NoError(t, err)
		second, err := Score(answers, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("close race yields a secondary level and low confidence", func(t *testing.T) {
		// Alternating Achiever- and Pluralist-leaning answers.
		detail, err := Score([]int{2, 3, 2, 3, 2, 3, 2, 3}, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "Achiever", detail.PrimaryLevel)
		assert.Equal(t, "Pluralist", detail.SecondaryLevel)
		assert.Less(t, detail.Confidence, ConfidenceThreshold)
	})

	t.Run("confidence stays within bounds", func(t *testing.T) {
		for option := 0; option < 4; option++ {
			detail, err := Score(answersAll(option), nil, nil)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, detail.Confidence, 0.0)
			assert.LessOrEqual(t, detail.Confidence, 100.0)
		}
	})

	t.Run("trait priors nudge level scores", func(t *testing.T) {
		priors := models.FrameworkWeights{
			"Conformist": {Traits: map[string]float64{"Structured": 1.0}},
		}
		traits := models.TraitScores{"Structured": 10.0}

		bare, err := Score(answersAll(0), nil, nil)
		require.NoError(t, err)
		primed, err := Score(answersAll(0), traits, priors)
		require.NoError(t, err)

		// (10 - 5.5) * PriorScale = 0.9 extra on Conformist, nothing else.
		assert.InDelta(t, bare.LevelScores["Conformist"]+0.9, primed.LevelScores["Conformist"], 1e-9)
		assert.Equal(t, bare.LevelScores["Impulsive"], primed.LevelScores["Impulsive"])
	})

	t.Run("priors never push a score below zero", func(t *testing.T) {
		priors := models.FrameworkWeights{
			"Transpersonal": {Traits: map[string]float64{"Bold": 1.0}},
		}
		traits := models.TraitScores{"Bold": 1.0}

		detail, err := Score(answersAll(0), traits, priors)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, detail.LevelScores["Transpersonal"], 0.0)
	})

	t.Run("wrong answer count is an input error", func(t *testing.T) {
		_, err := Score([]int{0, 1}, nil, nil)
		var inputErr *models.InputError
		require.ErrorAs(t, err, &inputErr)
	})

	t.Run("out of range option is an input error", func(t *testing.T) {
		answers := answersAll(0)
		answers[3] = 99
		_, err := Score(answers, nil, nil)
		var inputErr *models.InputError
		require.ErrorAs(t, err, &inputErr)

		answers[3] = -1
		_, err = Score(answers, nil, nil)
		require.ErrorAs(t, err, &inputErr)
	})
}

func TestQuestionBank(t *testing.T) {
	require.NotEmpty(t, QuestionBank)
	for i, q := range QuestionBank {
		assert.NotEmpty(t, q.Text, "question %d", i+1)
		require.NotEmpty(t, q.Options, "question %d", i+1)
		for j, opt := range q.Options {
			assert.NotEmpty(t, opt.Text, "question %d option %d", i+1, j+1)
			require.NotEmpty(t, opt.Points, "question %d option %d", i+1, j+1)
			for level := range opt.Points {
				assert.GreaterOrEqual(t, models.LevelIndex(level), 0,
					"question %d option %d references unknown level %q", i+1, j+1, level)
			}
		}
	}
}
