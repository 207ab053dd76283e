// Package cli provides the command-line interface for Persona
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AbdouB/persona/internal/audit"
	"github.com/AbdouB/persona/internal/config"
	"github.com/AbdouB/persona/internal/db"
)

var (
	database     *db.DB
	configStore  *config.Store
	auditService *audit.Service
	logger       *zap.Logger
	outputText   bool // --text flag for human-readable output (default is JSON)
	verbose      bool
	dbPath       string
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "persona",
	Short: "Survey scoring and personality-type classification engine",
	Long: `Persona - Personality Classification Engine

Score a 108-answer survey into MBTI, Enneagram, Big Five, Socionics,
Holland Code, alignment, attachment, and Integral level - and retune the
classification rules at runtime.

Quick Start:
  persona score responses.json        # Score a response vector
  persona config show                 # Show effective configuration
  persona config set overrides.json   # Apply a partial override
  persona snapshot create "pre-tune"  # Snapshot the current config
  persona rollback <snapshot-id>      # Restore a snapshot
  persona audit                       # Show the mutation log`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip DB init for help commands
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		logger = zap.NewNop()
		if verbose {
			var err error
			logger, err = zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}
		}

		var err error
		database, err = db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		auditService = audit.NewService(database, logger)
		configStore = config.NewStore(database, auditService, logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if database != nil {
			database.Close()
		}
	},
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&outputText, "text", false, "Human-readable text output (default is JSON)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the config database (default ~/.persona/config.db)")

	rootCmd.AddCommand(versionCmd)
}

// outputResult outputs the result in the appropriate format
func outputResult(result interface{}) {
	if outputText {
		fmt.Printf("%+v\n", result)
	} else {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(result)
	}
}

// outputError outputs an error in the appropriate format
func outputError(err error) {
	if outputText {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	} else {
		result := map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
		enc := json.NewEncoder(os.Stderr)
		enc.Encode(result)
	}
}

// readStdinJSON reads JSON from stdin
func readStdinJSON(v interface{}) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(data) == 0 {
		return fmt.Errorf("no input provided on stdin")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

// readInputJSON reads JSON from stdin or file
func readInputJSON(input string, v interface{}) error {
	if input == "-" {
		return readStdinJSON(v)
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("persona version 1.0.0")
	},
}
