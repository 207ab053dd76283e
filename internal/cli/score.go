package cli

import (
	"github.com/spf13/cobra"

	"github.com/AbdouB/persona/internal/classify"
	"github.com/AbdouB/persona/internal/models"
)

var scoreUserID string

// scoreCmd scores a response vector into a full personality profile
var scoreCmd = &cobra.Command{
	Use:   "score [file|-]",
	Short: "Score a 108-answer response vector into a personality profile",
	Long: `Score a response vector into a full personality profile.

Input is a JSON array of 108 integers in [1,10], read from a file or stdin:
  persona score responses.json
  cat responses.json | persona score -

With --user, any user overrides pin the displayed framework values.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var responses models.ResponseVector
		if err := readInputJSON(args[0], &responses); err != nil {
			outputError(err)
			return
		}

		eff := configStore.Effective(scoreUserID)
		profile, err := classify.ScoreProfile(responses, eff)
		if err != nil {
			outputError(err)
			return
		}
		outputResult(profile)
	},
}

func init() {
	scoreCmd.Flags().StringVar(&scoreUserID, "user", "", "User ID whose overrides apply to the displayed values")
	rootCmd.AddCommand(scoreCmd)
}
