package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mp3tom4b/internal/bootstrap"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Locate ffmpeg, installing it where supported",
	Long: `Bootstrap probes for a working ffmpeg and prints its absolute path. On
Windows, if none is found, the release archive is downloaded and the
executable is copied into the tools directory. No conversions are run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		b := bootstrap.New(cfg.Transcoder, cmd.OutOrStdout(), newLogger(cmd))
		path, err := b.Ensure(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bootstrapCmd)
}
