package integral

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdouB/persona/internal/models"
)

// ambiguousDetail returns a low-confidence result with Achiever and
// Pluralist in a near-tie.
func ambiguousDetail(t *testing.T) *models.IntegralDetail {
	t.Helper()
	detail, err := Score([]int{2, 3, 2, 3, 2, 3, 2, 3}, nil, nil)
	require.NoError(t, err)
	require.Less(t, detail.Confidence, ConfidenceThreshold)
	return detail
}

// confidentDetail returns a high-confidence result.
func confidentDetail(t *testing.T) *models.IntegralDetail {
	t.Helper()
	detail, err := Score(answersAll(1), nil, nil)
	require.NoError(t, err)
	require.GreaterOrEqual(t, detail.Confidence, ConfidenceThreshold)
	return detail
}

type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, *models.IntegralDetail, []models.LevelPair, *models.PersonalityProfile) ([]models.DynamicQuestion, error) {
	return nil, errors.New("generator unavailable")
}

func TestAnalyzeConfidence(t *testing.T) {
	t.Run("confident result needs nothing", func(t *testing.T) {
		analysis := AnalyzeConfidence(confidentDetail(t))
		assert.False(t, analysis.NeedsAdditionalQuestions)
		assert.Empty(t, analysis.UncertainAreas)
	})

	t.Run("ambiguous result names the unseparated pair", func(t *testing.T) {
		analysis := AnalyzeConfidence(ambiguousDetail(t))
		require.True(t, analysis.NeedsAdditionalQuestions)
		require.NotEmpty(t, analysis.UncertainAreas)
		assert.Equal(t, models.LevelPair{First: "Achiever", Second: "Pluralist"}, analysis.UncertainAreas[0])
	})
}

func TestFlow(t *testing.T) {
	t.Run("confident result terminates at analyze", func(t *testing.T) {
		flow := NewFlow(confidentDetail(t), StaticGenerator{}, nil)
		analysis, err := flow.Analyze()
		require.NoError(t, err)
		assert.False(t, analysis.NeedsAdditionalQuestions)
		assert.Equal(t, models.StateEnhanced, flow.State())
	})

	t.Run("full clarification pass", func(t *testing.T) {
		original := ambiguousDetail(t)
		before := original.Clone()

		flow := NewFlow(original, StaticGenerator{}, nil)
		assert.Equal(t, models.StateAnalyzing, flow.State())

		analysis, err := flow.Analyze()
		require.NoError(t, err)
		require.True(t, analysis.NeedsAdditionalQuestions)
		assert.Equal(t, models.StateNeedsClarification, flow.State())

		questions, err := flow.GenerateQuestions(context.Background(), nil)
		require.NoError(t, err)
		require.NotEmpty(t, questions)
		assert.Equal(t, models.StateAwaitingResponses, flow.State())

		// Answer every clarification question toward the primary level.
		answers := make([]int, len(questions))
		require.NoError(t, flow.SubmitResponses(answers))
		assert.Equal(t, models.StateProcessing, flow.State())

		enhanced, err := flow.Process()
		require.NoError(t, err)
		assert.Equal(t, models.StateEnhanced, flow.State())
		assert.Equal(t, "Achiever", enhanced.PrimaryLevel)
		assert.Greater(t, enhanced.Confidence, before.Confidence)

		// The pre-flow result is untouched.
		require.Empty(t, cmp.Diff(before, original))
	})

	t.Run("clarification can flip the primary level", func(t *testing.T) {
		original := ambiguousDetail(t)
		flow := NewFlow(original, StaticGenerator{}, nil)
		_, err := flow.Analyze()
		require.NoError(t, err)
		questions, err := flow.GenerateQuestions(context.Background(), nil)
		require.NoError(t, err)

		// Answer every question toward the second level of its pair.
		answers := make([]int, len(questions))
		for i := range answers {
			answers[i] = 1
		}
		require.NoError(t, flow.SubmitResponses(answers))
		enhanced, err := flow.Process()
		require.NoError(t, err)
		assert.Equal(t, "Pluralist", enhanced.PrimaryLevel)
		assert.Equal(t, "Achiever", original.PrimaryLevel, "original is unchanged")
	})

	t.Run("generation failure reverts and can be retried", func(t *testing.T) {
		flow := NewFlow(ambiguousDetail(t), failingGenerator{}, nil)
		_, err := flow.Analyze()
		require.NoError(t, err)

		_, err = flow.GenerateQuestions(context.Background(), nil)
		var enhErr *EnhancementError
		require.ErrorAs(t, err, &enhErr)
		assert.Equal(t, "generating_questions", enhErr.Stage)
		assert.Equal(t, models.StateNeedsClarification, flow.State())

		// Swapping the generator and retrying works.
		flow.gen = StaticGenerator{}
		questions, err := flow.GenerateQuestions(context.Background(), nil)
		require.NoError(t, err)
		assert.NotEmpty(t, questions)
	})

	t.Run("response validation", func(t *testing.T) {
		flow := NewFlow(ambiguousDetail(t), StaticGenerator{}, nil)
		_, err := flow.Analyze()
		require.NoError(t, err)
		questions, err := flow.GenerateQuestions(context.Background(), nil)
		require.NoError(t, err)

		assert.Error(t, flow.SubmitResponses(make([]int, len(questions)+1)))

		bad := make([]int, len(questions))
		bad[0] = 99
		assert.Error(t, flow.SubmitResponses(bad))
		assert.Equal(t, models.StateAwaitingResponses, flow.State())
	})

	t.Run("skip returns the original unchanged", func(t *testing.T) {
		original := ambiguousDetail(t)
		before := original.Clone()

		flow := NewFlow(original, StaticGenerator{}, nil)
		_, err := flow.Analyze()
		require.NoError(t, err)

		skipped := flow.Skip()
		assert.Equal(t, models.StateSkipped, flow.State())
		require.Empty(t, cmp.Diff(before, skipped))

		// Skip after a terminal state is inert.
		flow.Skip()
		assert.Equal(t, models.StateSkipped, flow.State())
	})

	t.Run("stage calls out of order fail", func(t *testing.T) {
		flow := NewFlow(ambiguousDetail(t), StaticGenerator{}, nil)

		_, err := flow.GenerateQuestions(context.Background(), nil)
		assert.Error(t, err)
		assert.Error(t, flow.SubmitResponses(nil))
		_, err = flow.Process()
		assert.Error(t, err)
	})
}

func TestProcessConfidenceEnhancement(t *testing.T) {
	detail := ambiguousDetail(t)
	questions := []models.DynamicQuestion{
		{
			ID:      "clarify-1",
			Text:    "which is closer?",
			Targets: models.LevelPair{First: "Achiever", Second: "Pluralist"},
			Options: []models.QuestionOption{
				{Text: "a", Points: map[string]float64{"Achiever": 3}},
				{Text: "b", Points: map[string]float64{"Pluralist": 3}},
			},
		},
	}

	t.Run("does not mutate the input", func(t *testing.T) {
		before := detail.Clone()
		_, err := ProcessConfidenceEnhancement(detail, []int{0}, questions)
		require.NoError(t, err)
		require.Empty(t, cmp.Diff(before, detail))
	})

	t.Run("response count mismatch", func(t *testing.T) {
		_, err := ProcessConfidenceEnhancement(detail, []int{0, 1}, questions)
		var enhErr *EnhancementError
		require.ErrorAs(t, err, &enhErr)
	})

	t.Run("unknown level in generated points", func(t *testing.T) {
		broken := []models.DynamicQuestion{
			{
				ID:      "clarify-1",
				Options: []models.QuestionOption{{Text: "a", Points: map[string]float64{"Mythic": 3}}},
			},
		}
		_, err := ProcessConfidenceEnhancement(detail, []int{0}, broken)
		var enhErr *EnhancementError
		require.ErrorAs(t, err, &enhErr)
		assert.Equal(t, "processing", enhErr.Stage)
	})
}

func TestStaticGenerator(t *testing.T) {
	t.Run("one question per uncertain pair", func(t *testing.T) {
		areas := []models.LevelPair{
			{First: "Achiever", Second: "Pluralist"},
			{First: "Achiever", Second: "Conformist"},
		}
		questions, err := StaticGenerator{}.Generate(context.Background(), nil, areas, nil)
		require.NoError(t, err)
		require.Len(t, questions, 2)
		for i, q := range questions {
			assert.Equal(t, areas[i], q.Targets)
			require.Len(t, q.Options, 3)
			assert.Equal(t, map[string]float64{areas[i].First: 3}, q.Options[0].Points)
			assert.Equal(t, map[string]float64{areas[i].Second: 3}, q.Options[1].Points)
		}
	})

	t.Run("no areas is an error", func(t *testing.T) {
		_, err := StaticGenerator{}.Generate(context.Background(), nil, nil, nil)
		assert.Error(t, err)
	})
}

func TestStripMarkdownCodeFences(t *testing.T) {
	cases := []struct{ in, want string }{
		{"[]", "[]"},
		{"```json\n[]\n```", "[]"},
		{"```\n[]\n```", "[]"},
		{"  []  ", "[]"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, stripMarkdownCodeFences(tc.in))
	}
}
