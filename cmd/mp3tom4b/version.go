package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of mp3tom4b",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mp3tom4b %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
