// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transcoder runs the external ffmpeg binary. Callers hand it an
// absolute executable path; nothing here consults or changes PATH.
package transcoder

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pdiddy/mp3tom4b/pkg/types"
)

// DefaultBinary is the executable name searched for on PATH.
const DefaultBinary = "ffmpeg"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(ctx context.Context, name string, args ...string) error
	RunCaptured(ctx context.Context, name string, args []string, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func (o *osExecutor) RunCaptured(ctx context.Context, name string, args []string, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = stderr
	return cmd.Run()
}

var defaultExec executor = &osExecutor{}

// FFmpeg invokes one specific ffmpeg executable.
type FFmpeg struct {
	path string
	exec executor
}

// New returns an FFmpeg bound to the executable at path.
func New(path string) *FFmpeg {
	return newFFmpeg(path, defaultExec)
}

func newFFmpeg(path string, exec executor) *FFmpeg {
	return &FFmpeg{path: path, exec: exec}
}

// Path returns the executable this FFmpeg invokes.
func (f *FFmpeg) Path() string { return f.path }

// Version runs the version query. A nil error means the executable is usable.
func (f *FFmpeg) Version(ctx context.Context) error {
	if err := f.exec.RunSilent(ctx, f.path, "-version"); err != nil {
		return fmt.Errorf("%s -version: %w", f.path, err)
	}
	return nil
}

// ConvertArgs builds the command line for one MP3 to M4B conversion.
// Argument order is fixed; scripts and tests compare it verbatim.
func ConvertArgs(input, output string) []string {
	return []string{
		"-i", input,
		"-f", types.ContainerFormat,
		"-b:a", types.AudioBitrate,
		"-acodec", types.AudioCodec,
		output,
		"-y",
	}
}

// Convert transcodes input into output, overwriting output if it exists.
// On failure the error carries ffmpeg's stderr.
func (f *FFmpeg) Convert(ctx context.Context, input, output string) error {
	var stderr bytes.Buffer
	if err := f.exec.RunCaptured(ctx, f.path, ConvertArgs(input, output), &stderr); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("ffmpeg %s: %w", input, err)
		}
		return fmt.Errorf("ffmpeg %s: %w: %s", input, err, msg)
	}
	return nil
}

// Resolve looks up name on PATH, or accepts it as-is when it already
// contains a path separator, and returns an FFmpeg for the absolute result.
func Resolve(name string) (*FFmpeg, error) {
	return resolve(name, defaultExec)
}

func resolve(name string, exec executor) (*FFmpeg, error) {
	p, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%s not found: %w", name, err)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", p, err)
	}
	return newFFmpeg(abs, exec), nil
}
