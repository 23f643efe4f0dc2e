package bootstrap

import (
	"fmt"
	"io"
)

// installMode describes what the bootstrapper can do on a given OS.
type installMode int

const (
	modeUnsupported installMode = iota
	modeAutomated
	modeManual
)

func modeFor(goos string) installMode {
	switch goos {
	case "windows":
		return modeAutomated
	case "linux", "darwin":
		return modeManual
	default:
		return modeUnsupported
	}
}

// executableName returns the ffmpeg file name used on goos.
func executableName(goos string) string {
	if goos == "windows" {
		return "ffmpeg.exe"
	}
	return "ffmpeg"
}

func printManualGuidance(w io.Writer) {
	fmt.Fprintln(w, "For Linux and macOS, please install FFmpeg using your system's package manager.")
	fmt.Fprintln(w, "For example, on Ubuntu or Debian: sudo apt-get install ffmpeg")
	fmt.Fprintln(w, "On macOS with Homebrew: brew install ffmpeg")
}
