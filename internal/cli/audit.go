package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AbdouB/persona/internal/audit"
)

var (
	auditLimit int
	auditActor string
)

// auditCmd shows the configuration mutation log
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show the configuration audit log, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := auditService.GetAuditLog(auditLimit)
		if err != nil {
			outputError(err)
			return
		}
		outputResult(entries)
	},
}

// snapshotCmd groups snapshot commands
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Create and list named configuration snapshots",
}

var snapshotCreateCmd = &cobra.Command{
	Use:   "create <description>",
	Short: "Snapshot the current global override state",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		current, err := configStore.LoadScoringOverrides()
		if err != nil {
			outputError(err)
			return
		}
		summary := audit.GenerateChangesSummary(nil, current)
		id, err := auditService.CreateSnapshot(auditActor, args[0], current, summary)
		if err != nil {
			// A snapshot may be durable even when its audit entry failed;
			// report the ID alongside the error so the operator can retry
			// logging instead of re-snapshotting.
			if id != "" {
				outputError(fmt.Errorf("snapshot %s created but audit logging failed: %w", id, err))
				return
			}
			outputError(err)
			return
		}
		outputResult(map[string]string{"status": "created", "snapshot_id": id})
	},
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		snapshots, err := auditService.GetSnapshots(auditLimit)
		if err != nil {
			outputError(err)
			return
		}
		outputResult(snapshots)
	},
}

// rollbackCmd restores a snapshot
var rollbackCmd = &cobra.Command{
	Use:   "rollback <snapshot-id>",
	Short: "Restore a snapshot's configuration",
	Long: `Restore a snapshot's configuration. The restored config and the
rollback audit entry commit together; the restored overrides are printed.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		restored, err := auditService.RollbackToSnapshot(args[0], auditActor)
		if err != nil {
			outputError(err)
			return
		}
		if restored == nil {
			outputError(fmt.Errorf("snapshot %q not found", args[0]))
			return
		}
		outputResult(restored)
	},
}

func init() {
	auditCmd.Flags().IntVar(&auditLimit, "limit", 50, "Maximum entries to return")
	snapshotListCmd.Flags().IntVar(&auditLimit, "limit", 20, "Maximum snapshots to return")
	snapshotCmd.PersistentFlags().StringVar(&auditActor, "by", "admin", "Operator identity recorded in the audit trail")
	rollbackCmd.Flags().StringVar(&auditActor, "by", "admin", "Operator identity recorded in the audit trail")

	snapshotCmd.AddCommand(snapshotCreateCmd, snapshotListCmd)
	rootCmd.AddCommand(auditCmd, snapshotCmd, rollbackCmd)
}
