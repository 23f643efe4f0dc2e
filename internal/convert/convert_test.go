// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/mp3tom4b/pkg/types"
)

// fakeConverter implements Converter for testing. It writes canned output
// unless err or panicAll is set, or the input is listed in errors or panics.
type fakeConverter struct {
	err      error
	panicAll bool
	errors   map[string]error
	panics   map[string]bool
	calls    []string
}

func (f *fakeConverter) Convert(_ context.Context, input, output string) error {
	f.calls = append(f.calls, input)
	if f.panicAll || f.panics[input] {
		panic("decoder blew up")
	}
	if f.err != nil {
		return f.err
	}
	if err, ok := f.errors[input]; ok {
		return err
	}
	return os.WriteFile(output, []byte("m4b from "+filepath.Base(input)), 0o644)
}

// setupDir creates files with the given names in a temp dir.
func setupDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("audio"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestDiscover(t *testing.T) {
	dir := setupDir(t, "b.mp3", "A.MP3", "c.Mp3", "notes.txt", "cover.jpg", "d.mp3.bak", "e.m4b")
	if err := os.Mkdir(filepath.Join(dir, "folder.mp3"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Discover(dir, ".mp3")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	want := []string{
		filepath.Join(dir, "A.MP3"),
		filepath.Join(dir, "b.mp3"),
		filepath.Join(dir, "c.Mp3"),
	}
	if len(got) != len(want) {
		t.Fatalf("got %d files %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDiscover_Empty(t *testing.T) {
	dir := setupDir(t, "readme.md")
	got, err := Discover(dir, ".mp3")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no files, got %v", got)
	}
}

func TestDiscover_MissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), ".mp3")
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sample.mp3", "sample.m4b"},
		{"LOUD.MP3", "LOUD.m4b"},
		{filepath.Join("books", "ch 01.mp3"), filepath.Join("books", "ch 01.m4b")},
		{"part.1.mp3", "part.1.m4b"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := OutputPath(tt.in, types.TargetExt); got != tt.want {
				t.Errorf("OutputPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestConvertFile(t *testing.T) {
	tests := []struct {
		name       string
		converter  *fakeConverter
		wantStatus types.ConversionStatus
		wantLog    string
	}{
		{
			name:       "successful conversion",
			converter:  &fakeConverter{},
			wantStatus: types.ConversionDone,
			wantLog:    "Successfully converted",
		},
		{
			name:       "transcoder failure",
			converter:  &fakeConverter{err: errors.New("exit status 1")},
			wantStatus: types.ConversionFailed,
			wantLog:    "Error occurred while converting",
		},
		{
			name:       "converter panic",
			converter:  &fakeConverter{panicAll: true},
			wantStatus: types.ConversionFailed,
			wantLog:    "An error occurred while processing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupDir(t, "sample.mp3")
			in := filepath.Join(dir, "sample.mp3")
			job := types.Job{Input: in, Output: OutputPath(in, types.TargetExt)}

			var log bytes.Buffer
			status := ConvertFile(context.Background(), tt.converter, job, &log)

			if status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status, tt.wantStatus)
			}
			if !strings.Contains(log.String(), tt.wantLog) {
				t.Errorf("log output %q does not contain %q", log.String(), tt.wantLog)
			}
			if tt.wantStatus == types.ConversionFailed && !strings.Contains(log.String(), in) {
				t.Errorf("failure log %q should name the input file", log.String())
			}
		})
	}
}

func TestConvertFile_OverwritesExistingOutput(t *testing.T) {
	dir := setupDir(t, "sample.mp3")
	out := filepath.Join(dir, "sample.m4b")
	if err := os.WriteFile(out, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	job := types.Job{Input: filepath.Join(dir, "sample.mp3"), Output: out}
	var log bytes.Buffer
	if status := ConvertFile(context.Background(), &fakeConverter{}, job, &log); status != types.ConversionDone {
		t.Fatalf("expected ConversionDone, got %q", status)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "m4b from sample.mp3" {
		t.Errorf("output = %q, want fresh conversion", data)
	}
}

func TestConvertBatch(t *testing.T) {
	dir := setupDir(t, "a.mp3", "b.mp3", "c.mp3", "d.mp3", "skip.wav")

	inputs, err := Discover(dir, types.SourceExt)
	if err != nil {
		t.Fatal(err)
	}

	// "b" fails and "c" panics; "a" and "d" still convert.
	conv := &fakeConverter{
		errors: map[string]error{filepath.Join(dir, "b.mp3"): errors.New("bad header")},
		panics: map[string]bool{filepath.Join(dir, "c.mp3"): true},
	}

	var log bytes.Buffer
	result := ConvertBatch(context.Background(), conv, Jobs(inputs), &log)

	if len(conv.calls) != 4 {
		t.Errorf("converter called %d times, want 4", len(conv.calls))
	}
	if result.Converted != 2 {
		t.Errorf("converted = %d, want 2", result.Converted)
	}
	if result.Failed != 2 {
		t.Errorf("failed = %d, want 2", result.Failed)
	}
	if !result.HasFailures() {
		t.Error("HasFailures should be true")
	}
	if result.Total() != 4 {
		t.Errorf("total = %d, want 4", result.Total())
	}

	for _, name := range []string{"a.m4b", "d.m4b"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected output %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "skip.m4b")); err == nil {
		t.Error("non-mp3 input should not be converted")
	}

	if !strings.Contains(log.String(), "Conversion process completed:") {
		t.Error("batch output should contain completion line")
	}
}

func TestJobs(t *testing.T) {
	jobs := Jobs([]string{"x.mp3", filepath.Join("d", "y.MP3")})
	if len(jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(jobs))
	}
	if jobs[0].Output != "x.m4b" {
		t.Errorf("jobs[0].Output = %q", jobs[0].Output)
	}
	if jobs[1].Output != filepath.Join("d", "y.m4b") {
		t.Errorf("jobs[1].Output = %q", jobs[1].Output)
	}
}
