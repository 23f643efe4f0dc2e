// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bootstrap makes sure an ffmpeg executable is callable before any
// conversion runs. It probes known locations first and, on Windows only,
// downloads and unpacks a release archive. On Linux and macOS it prints
// install guidance instead.
//
// The resolved executable is returned as an absolute path. The process
// PATH is never modified.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pdiddy/mp3tom4b/internal/httputil"
	"github.com/pdiddy/mp3tom4b/internal/transcoder"
	"github.com/pdiddy/mp3tom4b/pkg/types"
)

const (
	// DefaultArchiveURL serves the Windows essentials build of ffmpeg.
	DefaultArchiveURL = "https://www.gyan.dev/ffmpeg/builds/ffmpeg-release-essentials.zip"

	archiveName = "ffmpeg.zip"
	extractName = "ffmpeg"
)

// Prober checks whether a candidate executable answers its version query.
// It returns the absolute path of the usable executable.
type Prober interface {
	Probe(ctx context.Context, name string) (string, error)
}

// versionProber is the production Prober backed by the transcoder package.
type versionProber struct{}

func (versionProber) Probe(ctx context.Context, name string) (string, error) {
	f, err := transcoder.Resolve(name)
	if err != nil {
		return "", err
	}
	if err := f.Version(ctx); err != nil {
		return "", err
	}
	return f.Path(), nil
}

// Bootstrapper locates or installs ffmpeg.
type Bootstrapper struct {
	cfg    types.TranscoderConfig
	goos   string
	client *http.Client
	prober Prober
	out    io.Writer
	logger *slog.Logger
}

// New returns a Bootstrapper for the current OS. User-facing messages go to
// out; diagnostics go to logger, which may be nil.
func New(cfg types.TranscoderConfig, out io.Writer, logger *slog.Logger) *Bootstrapper {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.ArchiveURL == "" {
		cfg.ArchiveURL = DefaultArchiveURL
	}
	return &Bootstrapper{
		cfg:    cfg,
		goos:   runtime.GOOS,
		client: &http.Client{Timeout: cfg.Timeout},
		prober: versionProber{},
		out:    out,
		logger: logger,
	}
}

// Ensure returns the absolute path of a working ffmpeg executable. When no
// candidate passes the version probe it attempts an install on platforms
// that support it. Every failure is terminal for the run; nothing retries.
func (b *Bootstrapper) Ensure(ctx context.Context) (string, error) {
	for _, c := range b.candidates() {
		path, err := b.prober.Probe(ctx, c)
		if err == nil {
			b.logger.Debug("ffmpeg available", "candidate", c, "path", path)
			return path, nil
		}
		b.logger.Debug("ffmpeg probe failed", "candidate", c, "err", err)
	}

	fmt.Fprintln(b.out, "FFmpeg is not installed. Installing now...")

	switch modeFor(b.goos) {
	case modeAutomated:
		return b.install(ctx)
	case modeManual:
		printManualGuidance(b.out)
		return "", ErrManualInstall
	default:
		fmt.Fprintf(b.out, "Unsupported operating system: %s\n", b.goos)
		return "", fmt.Errorf("%w: %s", ErrUnsupportedOS, b.goos)
	}
}

// candidates lists the executables to probe, most specific first.
func (b *Bootstrapper) candidates() []string {
	var out []string
	if b.cfg.Path != "" {
		out = append(out, b.cfg.Path)
	}
	if b.cfg.ToolsDir != "" {
		installed := b.installedPath()
		if _, err := os.Stat(installed); err == nil {
			out = append(out, installed)
		}
	}
	return append(out, transcoder.DefaultBinary)
}

func (b *Bootstrapper) installedPath() string {
	return filepath.Join(b.cfg.ToolsDir, executableName(b.goos))
}

// install downloads the archive, unpacks it, and copies the executable into
// the tools directory. The archive and extraction directory are removed on
// every return path.
func (b *Bootstrapper) install(ctx context.Context) (string, error) {
	workDir := b.cfg.WorkDir
	if workDir == "" {
		tmp, err := os.MkdirTemp("", "mp3tom4b-install-*")
		if err != nil {
			return "", fmt.Errorf("%w: creating work directory: %v", ErrDownload, err)
		}
		defer os.RemoveAll(tmp)
		workDir = tmp
	}

	archivePath := filepath.Join(workDir, archiveName)
	extractPath := filepath.Join(workDir, extractName)
	defer func() {
		os.Remove(archivePath)
		os.RemoveAll(extractPath)
		b.logger.Debug("removed install artifacts", "archive", archivePath, "dir", extractPath)
	}()

	fmt.Fprintln(b.out, "Downloading ffmpeg...")
	if err := b.download(ctx, archivePath); err != nil {
		fmt.Fprintf(b.out, "Failed to download ffmpeg: %v\n", err)
		return "", fmt.Errorf("%w: %v", ErrDownload, err)
	}

	fmt.Fprintln(b.out, "Extracting ffmpeg...")
	if err := ExtractZip(archivePath, extractPath); err != nil {
		fmt.Fprintf(b.out, "Failed to extract ffmpeg: %v\n", err)
		return "", fmt.Errorf("%w: %v", ErrExtract, err)
	}

	found, err := FindExecutable(extractPath, executableName(b.goos))
	if err != nil {
		fmt.Fprintln(b.out, "Failed to install ffmpeg.")
		b.logger.Debug("executable search failed", "err", err)
		return "", ErrNotFound
	}

	if b.cfg.ToolsDir == "" {
		fmt.Fprintln(b.out, "Failed to install ffmpeg.")
		return "", fmt.Errorf("%w: no tools directory configured", ErrInstall)
	}
	dest, err := filepath.Abs(b.installedPath())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInstall, err)
	}
	if err := copyExecutable(found, dest); err != nil {
		fmt.Fprintln(b.out, "Failed to install ffmpeg.")
		return "", fmt.Errorf("%w: %v", ErrInstall, err)
	}

	fmt.Fprintf(b.out, "ffmpeg installed: %s\n", dest)
	return dest, nil
}

func (b *Bootstrapper) download(ctx context.Context, archivePath string) error {
	out, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", archivePath, err)
	}

	n, err := httputil.Download(ctx, b.client, b.cfg.ArchiveURL, b.cfg.UserAgent, out)
	closeErr := out.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return fmt.Errorf("closing %s: %w", archivePath, closeErr)
	}
	b.logger.Debug("archive downloaded", "url", b.cfg.ArchiveURL, "bytes", n)
	return nil
}
