package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AbdouB/persona/internal/models"
	"github.com/AbdouB/persona/internal/search"
)

var (
	configActor    string
	overrideReason string
)

// configCmd groups global configuration commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and tune the global scoring configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration (defaults + global override)",
	Run: func(cmd *cobra.Command, args []string) {
		outputResult(configStore.Effective(""))
	},
}

var configStoredCmd = &cobra.Command{
	Use:   "stored",
	Short: "Show only the stored global override record",
	Run: func(cmd *cobra.Command, args []string) {
		overrides, err := configStore.LoadScoringOverrides()
		if err != nil {
			outputError(err)
			return
		}
		if overrides == nil {
			outputResult(map[string]string{"status": "no global override stored, defaults active"})
			return
		}
		outputResult(overrides)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [file|-]",
	Short: "Merge a partial override payload into the global configuration",
	Long: `Merge a partial ScoringOverrides JSON payload into the stored global
configuration. Dimensions present in the payload replace the stored ones;
everything else is kept. The write is logged to the audit trail.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var partial models.ScoringOverrides
		if err := readInputJSON(args[0], &partial); err != nil {
			outputError(err)
			return
		}
		if err := configStore.SaveScoringOverrides(configActor, &partial); err != nil {
			outputError(err)
			return
		}
		outputResult(map[string]string{"status": "saved"})
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the stored global override, restoring built-in defaults",
	Run: func(cmd *cobra.Command, args []string) {
		if err := configStore.ResetScoringOverrides(configActor); err != nil {
			outputError(err)
			return
		}
		outputResult(map[string]string{"status": "reset to defaults"})
	},
}

// overrideCmd groups per-user override commands
var overrideCmd = &cobra.Command{
	Use:   "override",
	Short: "Manage per-user framework overrides",
}

var overrideSetCmd = &cobra.Command{
	Use:   "set <user-id> <framework> <value>",
	Short: "Pin a user's displayed value for one framework",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		userID, framework, value := args[0], args[1], args[2]
		if !models.IsFramework(framework) {
			if match := search.Resolve(framework, 0.4); match != nil && match.Kind == "framework" {
				outputError(fmt.Errorf("unknown framework %q, did you mean %q?", framework, match.Name))
			} else {
				outputError(fmt.Errorf("unknown framework %q", framework))
			}
			return
		}
		if err := configStore.SaveUserOverride(userID, framework, value, overrideReason, configActor); err != nil {
			outputError(err)
			return
		}
		outputResult(map[string]string{"status": "saved"})
	},
}

var overrideGetCmd = &cobra.Command{
	Use:   "get <user-id>",
	Short: "List a user's framework overrides",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		overrides, err := configStore.LoadUserOverride(args[0])
		if err != nil {
			outputError(err)
			return
		}
		outputResult(overrides)
	},
}

var overrideDeleteCmd = &cobra.Command{
	Use:   "delete <user-id> <framework>",
	Short: "Remove a user's override for one framework",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := configStore.DeleteUserOverride(args[0], args[1], configActor); err != nil {
			outputError(err)
			return
		}
		outputResult(map[string]string{"status": "deleted"})
	},
}

// traitsCmd lists the trait catalog, optionally filtered by fuzzy query
var traitsCmd = &cobra.Command{
	Use:   "traits [query]",
	Short: "List the trait catalog, optionally fuzzy-filtered",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			outputResult(search.CatalogItems())
			return
		}
		outputResult(search.Lookup(args[0], 0.3))
	},
}

func init() {
	configCmd.PersistentFlags().StringVar(&configActor, "by", "admin", "Operator identity recorded in the audit trail")
	overrideCmd.PersistentFlags().StringVar(&configActor, "by", "admin", "Operator identity recorded in the audit trail")
	overrideSetCmd.Flags().StringVar(&overrideReason, "reason", "", "Free-text reason stored with the override")

	configCmd.AddCommand(configShowCmd, configStoredCmd, configSetCmd, configResetCmd)
	overrideCmd.AddCommand(overrideSetCmd, overrideGetCmd, overrideDeleteCmd)
	rootCmd.AddCommand(configCmd, overrideCmd, traitsCmd)
}
