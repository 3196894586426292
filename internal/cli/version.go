package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
)

func SetVersionInfo(version, commit string) {
	appVersion = version
	appCommit = commit
}

var versionCmd = LeafCommand{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "gymrota %s %s\n", appVersion, Silent("("+appCommit+")"))
		return nil
	},
}.Build()
