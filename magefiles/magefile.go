//go:build mage

// Package main contains Mage build targets for mp3tom4b developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "mp3tom4b"
	cmdPkg  = "./cmd/mp3tom4b"
)

// binPath returns the output path of Build, with .exe on Windows targets.
func binPath() string {
	name := binName
	if os.Getenv("GOOS") == "windows" {
		name += ".exe"
	}
	return filepath.Join(binDir, name)
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", binPath(), cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", binPath())
	return nil
}

// Test runs the unit tests for every package.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet over the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Convert builds the CLI and converts the MP3 files in dir.
func Convert(dir string) error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "--dir", dir)
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}
