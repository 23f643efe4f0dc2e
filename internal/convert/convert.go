// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert discovers MP3 files in a directory and converts each one
// to an M4B sibling through a pluggable Converter. Files are processed
// sequentially; a failure on one file is reported and the batch moves on.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/mp3tom4b/pkg/types"
)

// Converter transcodes one input file into one output file. The ffmpeg
// backend in internal/transcoder implements this interface.
type Converter interface {
	// Convert writes output from input, replacing output if it exists.
	Convert(ctx context.Context, input, output string) error
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Failed    int
}

// Total returns the total number of files attempted.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Discover lists dir and returns the paths of regular entries whose name
// ends in ext, compared case-insensitively. Results follow directory
// listing order (sorted by name).
func Discover(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	ext = strings.ToLower(ext)
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ext) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}

// OutputPath swaps the extension of input for targetExt, keeping the
// directory and base name.
func OutputPath(input, targetExt string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + targetExt
}

// Jobs pairs each input path with its M4B output path.
func Jobs(inputs []string) []types.Job {
	jobs := make([]types.Job, len(inputs))
	for i, in := range inputs {
		jobs[i] = types.Job{Input: in, Output: OutputPath(in, types.TargetExt)}
	}
	return jobs
}

// ConvertFile runs one job and prints a single status line to w. A panic
// raised by the converter is recovered and counted as a failure for this
// file only.
func ConvertFile(ctx context.Context, c Converter, job types.Job, w io.Writer) (status types.ConversionStatus) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(w, "An error occurred while processing %s: %v\n", job.Input, r)
			status = types.ConversionFailed
		}
	}()

	if err := c.Convert(ctx, job.Input, job.Output); err != nil {
		fmt.Fprintf(w, "Error occurred while converting %s: %v\n", job.Input, err)
		return types.ConversionFailed
	}

	fmt.Fprintf(w, "Successfully converted %s to %s\n", job.Input, job.Output)
	return types.ConversionDone
}

// ConvertBatch processes jobs in order, printing per-file status to w and
// returning a summary. It never stops early on a failed file.
func ConvertBatch(ctx context.Context, c Converter, jobs []types.Job, w io.Writer) BatchResult {
	var result BatchResult
	for _, job := range jobs {
		switch ConvertFile(ctx, c, job, w) {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nConversion process completed: %d converted, %d failed (total: %d)\n",
		result.Converted, result.Failed, result.Total())
	return result
}
