package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AbdouB/persona/internal/integral"
	"github.com/AbdouB/persona/internal/models"
)

var integralTraitsFile string

// integralCmd groups the developmental-level commands
var integralCmd = &cobra.Command{
	Use:   "integral",
	Short: "Score the Integral developmental-level questionnaire",
}

var integralQuestionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Print the fixed question bank",
	Run: func(cmd *cobra.Command, args []string) {
		outputResult(integral.QuestionBank)
	},
}

var integralScoreCmd = &cobra.Command{
	Use:   "score [file|-]",
	Short: "Score questionnaire answers into an Integral level",
	Long: `Score questionnaire answers (JSON array of option indices, one per
bank question) into an Integral level with a confidence score.

With --traits, a trait-scores JSON object adds the configured per-level
priors to the raw questionnaire scores.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var answers []int
		if err := readInputJSON(args[0], &answers); err != nil {
			outputError(err)
			return
		}

		var traits models.TraitScores
		var priors models.FrameworkWeights
		if integralTraitsFile != "" {
			if err := readInputJSON(integralTraitsFile, &traits); err != nil {
				outputError(err)
				return
			}
			priors = configStore.Effective("").Weights(models.FrameworkIntegral)
		}

		detail, err := integral.Score(answers, traits, priors)
		if err != nil {
			outputError(err)
			return
		}
		outputResult(detail)
	},
}

var integralClarifyCmd = &cobra.Command{
	Use:   "clarify [detail-file|-]",
	Short: "Generate clarification questions for a low-confidence result",
	Long: `Analyze a stored IntegralDetail and, when its confidence is below the
enhancement threshold, generate clarification questions for the uncertain
level pairs. Uses the Anthropic API when ANTHROPIC_API_KEY is set,
otherwise the built-in static generator.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var detail models.IntegralDetail
		if err := readInputJSON(args[0], &detail); err != nil {
			outputError(err)
			return
		}

		flow := integral.NewFlow(&detail, pickGenerator(), logger)
		analysis, err := flow.Analyze()
		if err != nil {
			outputError(err)
			return
		}
		if !analysis.NeedsAdditionalQuestions {
			outputResult(map[string]interface{}{
				"status":     "confident",
				"confidence": detail.Confidence,
			})
			return
		}

		questions, err := flow.GenerateQuestions(cmd.Context(), nil)
		if err != nil {
			outputError(err)
			return
		}
		outputResult(map[string]interface{}{
			"uncertainAreas": analysis.UncertainAreas,
			"questions":      questions,
		})
	},
}

var integralEnhanceCmd = &cobra.Command{
	Use:   "enhance <detail-file> <questions-file> <responses-file>",
	Short: "Fold clarification answers into a stored result",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		var detail models.IntegralDetail
		var questions []models.DynamicQuestion
		var responses []int
		if err := readInputJSON(args[0], &detail); err != nil {
			outputError(err)
			return
		}
		if err := readInputJSON(args[1], &questions); err != nil {
			outputError(err)
			return
		}
		if err := readInputJSON(args[2], &responses); err != nil {
			outputError(err)
			return
		}

		enhanced, err := integral.ProcessConfidenceEnhancement(&detail, responses, questions)
		if err != nil {
			outputError(fmt.Errorf("%w (the original result is unchanged)", err))
			return
		}
		outputResult(enhanced)
	},
}

func pickGenerator() integral.QuestionGenerator {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return integral.NewClaudeGenerator(key, os.Getenv("ANTHROPIC_MODEL"))
	}
	return integral.StaticGenerator{}
}

func init() {
	integralScoreCmd.Flags().StringVar(&integralTraitsFile, "traits", "", "Trait-scores JSON file for per-level priors")

	integralCmd.AddCommand(integralQuestionsCmd, integralScoreCmd, integralClarifyCmd, integralEnhanceCmd)
	rootCmd.AddCommand(integralCmd)
}
