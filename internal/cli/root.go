package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "gymrota",
	Short:         "Workout rotation tracker",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().String("env", "development", "environment [prod | production | dev | development]")
	rootCmd.PersistentFlags().String("config", "./config.toml", "path for the TOML config file")
	rootCmd.PersistentFlags().Bool("verbose", false, "print debug logs to stderr")

	rootCmd.AddCommand(currentCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(advanceCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(imagesCmd)
	rootCmd.AddCommand(versionCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
