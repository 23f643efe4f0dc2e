// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the mp3tom4b CLI. Run with no
// arguments it converts every MP3 in the working directory to M4B.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mp3tom4b/internal/bootstrap"
	"github.com/pdiddy/mp3tom4b/internal/convert"
	"github.com/pdiddy/mp3tom4b/internal/pipeline"
	"github.com/pdiddy/mp3tom4b/internal/transcoder"
	"github.com/pdiddy/mp3tom4b/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd converts the working directory when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "mp3tom4b",
	Short: "Batch-convert MP3 files to M4B audiobooks",
	Long: `mp3tom4b converts every .mp3 file in a directory to an .m4b file next to
it, using ffmpeg with AAC audio at 128 kbit/s. Existing .m4b files with the
same name are overwritten.

Before converting, ffmpeg is located. On Windows a release build is
downloaded automatically when none is found; on Linux and macOS install it
with your package manager.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./mp3tom4b.yaml or ~/.config/mp3tom4b/mp3tom4b.yaml)")
	pf.Bool("verbose", false, "print debug diagnostics to stderr")
	pf.String("ffmpeg", "", "explicit path to the ffmpeg executable")
	pf.String("tools-dir", "", "directory that receives an automatically installed ffmpeg")
	rootCmd.Flags().String("dir", ".", "directory containing the MP3 files")

	_ = viper.BindPFlag("transcoder.path", pf.Lookup("ffmpeg"))
	_ = viper.BindPFlag("transcoder.tools_dir", pf.Lookup("tools-dir"))
	_ = viper.BindPFlag("conversion.dir", rootCmd.Flags().Lookup("dir"))

	setDefaults()
}

func setDefaults() {
	viper.SetDefault("conversion.dir", ".")
	viper.SetDefault("transcoder.archive_url", bootstrap.DefaultArchiveURL)
	viper.SetDefault("transcoder.timeout", "0s")
	viper.SetDefault("transcoder.user_agent", "mp3tom4b/"+version)
	if cache, err := os.UserCacheDir(); err == nil {
		viper.SetDefault("transcoder.tools_dir", filepath.Join(cache, "mp3tom4b", "bin"))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("mp3tom4b")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "mp3tom4b"))
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged flag, file, and default settings.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cmd)
	out := cmd.OutOrStdout()

	deps := pipeline.Deps{
		Bootstrapper: bootstrap.New(cfg.Transcoder, out, logger),
		NewConverter: func(path string) convert.Converter { return transcoder.New(path) },
		Out:          out,
		Logger:       logger,
	}
	_, err = pipeline.Run(cmd.Context(), cfg.Conversion.Dir, deps)
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
