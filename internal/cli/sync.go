package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncUploadCmd = LeafCommand{
	Use:   "upload",
	Short: "Back up the whole store to the cloud",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			return runSyncUpload(cmd, a)
		})
	},
}.Build()

var syncDownloadCmd = LeafCommand{
	Use:   "download [sync-id]",
	Short: "Replace the store with the cloud backup",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		syncID := ""
		if len(args) == 1 {
			syncID = args[0]
		}
		return withApp(cmd, func(a *app) error {
			return runSyncDownload(cmd, a, syncID)
		})
	},
}.Build()

var syncStatusCmd = LeafCommand{
	Use:   "status",
	Short: "Show the sync id and last upload time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			return runSyncStatus(cmd, a)
		})
	},
}.Build()

var syncCmd = GroupCommand{
	Use:   "sync",
	Short: "Cloud backup and restore",
	Subcommands: []*cobra.Command{
		syncUploadCmd,
		syncDownloadCmd,
		syncStatusCmd,
	},
}.Build()

func runSyncUpload(cmd *cobra.Command, a *app) error {
	syncID, err := a.components.Sync.Upload(cmd.Context())
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", Success("uploaded, sync id:"), Primary(syncID))
	return nil
}

func runSyncDownload(cmd *cobra.Command, a *app, syncID string) error {
	report, err := a.components.Sync.Download(cmd.Context(), syncID)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", Success("restored from sync id:"), Primary(report.SyncID))
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  keys: %d\n", report.RestoredKeys)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  images: %d scanned, %d repaired, %d failed\n",
		report.Images.Scanned, report.Images.Repaired, report.Images.Failed)
	return nil
}

func runSyncStatus(cmd *cobra.Command, a *app) error {
	status, err := a.components.Sync.Status(cmd.Context())
	if err != nil {
		return err
	}
	if status.SyncID == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), Warning("never synced"))
		return nil
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", Primary("sync id:"), status.SyncID)
	if status.LastSync != nil {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", Primary("last sync:"), status.LastSync.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
