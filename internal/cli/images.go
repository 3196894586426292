package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var imagesRepairCmd = LeafCommand{
	Use:   "repair",
	Short: "Download missing exercise images again",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			return runImagesRepair(cmd, a)
		})
	},
}.Build()

var imagesLookupCmd = LeafCommand{
	Use:   "lookup <exercise name>",
	Short: "Find a remote image for an exercise name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			return runImagesLookup(cmd, a, strings.Join(args, " "))
		})
	},
}.Build()

var imagesCmd = GroupCommand{
	Use:   "images",
	Short: "Exercise images",
	Subcommands: []*cobra.Command{
		imagesRepairCmd,
		imagesLookupCmd,
	},
}.Build()

func runImagesRepair(cmd *cobra.Command, a *app) error {
	report := a.components.Provisioner.Repair(cmd.Context())
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %d scanned, %d repaired, %d failed\n",
		Info("images:"), report.Scanned, report.Repaired, report.Failed)
	return nil
}

func runImagesLookup(cmd *cobra.Command, a *app, name string) error {
	image := a.components.ImageLookup.Lookup(cmd.Context(), name)
	if image == nil {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), Warning("no image found"))
		return nil
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), *image)
	return nil
}
