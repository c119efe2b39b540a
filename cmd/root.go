package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X ...cmd.Version=...".
var Version = "dev"

// Execute runs the root command.
func Execute() error {
	root := &cobra.Command{
		Use:           "growthvision",
		Short:         "Growthvision Pathum chat console service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCMD(), versionCMD())
	return root.Execute()
}

func versionCMD() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}
