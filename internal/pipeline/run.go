// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences one run: bootstrap the transcoder, discover
// inputs, then convert them one at a time.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/pdiddy/mp3tom4b/internal/convert"
	"github.com/pdiddy/mp3tom4b/pkg/types"
)

var (
	// ErrBootstrap means no usable transcoder could be found or installed.
	ErrBootstrap = errors.New("transcoder bootstrap failed")
	// ErrNoInputs means the directory held no eligible files.
	ErrNoInputs = errors.New("no MP3 files found")
)

// Bootstrapper yields the absolute path of a working transcoder.
type Bootstrapper interface {
	Ensure(ctx context.Context) (string, error)
}

// ConverterFactory builds a Converter bound to a resolved executable path.
type ConverterFactory func(path string) convert.Converter

// Deps are the collaborators for a run.
type Deps struct {
	Bootstrapper Bootstrapper
	NewConverter ConverterFactory
	Out          io.Writer
	Logger       *slog.Logger
}

// Run executes a full batch over dir. It returns ErrBootstrap or ErrNoInputs
// for the two fatal conditions. Per-file failures are reported to Out and
// do not make Run fail.
func Run(ctx context.Context, dir string, deps Deps) (convert.BatchResult, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	path, err := deps.Bootstrapper.Ensure(ctx)
	if err != nil {
		fmt.Fprintln(deps.Out, "Failed to install FFmpeg. Please install it manually.")
		return convert.BatchResult{}, fmt.Errorf("%w: %w", ErrBootstrap, err)
	}
	logger.Debug("transcoder ready", "path", path)

	inputs, err := convert.Discover(dir, types.SourceExt)
	if err != nil {
		return convert.BatchResult{}, err
	}
	if len(inputs) == 0 {
		fmt.Fprintln(deps.Out, "No MP3 files found in the current directory.")
		return convert.BatchResult{}, ErrNoInputs
	}
	logger.Debug("inputs discovered", "dir", dir, "count", len(inputs))

	result := convert.ConvertBatch(ctx, deps.NewConverter(path), convert.Jobs(inputs), deps.Out)
	return result, nil
}
