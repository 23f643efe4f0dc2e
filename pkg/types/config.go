// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds settings for the archive download.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with the download
	// (e.g. "mp3tom4b/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// TranscoderConfig controls how the ffmpeg executable is located and,
// where supported, installed.
type TranscoderConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Path is an explicit ffmpeg executable to probe before anything else.
	Path string `json:"path,omitempty" yaml:"path,omitempty" mapstructure:"path"`

	// ArchiveURL is the zip archive downloaded on platforms with automated install.
	ArchiveURL string `json:"archive_url" yaml:"archive_url" mapstructure:"archive_url"`

	// ToolsDir receives the installed executable so later runs find it.
	ToolsDir string `json:"tools_dir" yaml:"tools_dir" mapstructure:"tools_dir"`

	// WorkDir holds the downloaded archive and extraction directory while
	// installing. Both are removed before the install returns.
	WorkDir string `json:"work_dir" yaml:"work_dir" mapstructure:"work_dir"`
}

// ConversionConfig holds settings for the batch conversion.
type ConversionConfig struct {
	// Dir is the directory scanned for input files (default ".").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// Config groups all settings for a run.
type Config struct {
	Transcoder TranscoderConfig `json:"transcoder" yaml:"transcoder" mapstructure:"transcoder"`
	Conversion ConversionConfig `json:"conversion" yaml:"conversion" mapstructure:"conversion"`
}
