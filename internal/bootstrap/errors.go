package bootstrap

import "errors"

var (
	// ErrDownload reports that the release archive could not be fetched.
	ErrDownload = errors.New("downloading ffmpeg")
	// ErrExtract reports that the archive could not be unpacked.
	ErrExtract = errors.New("extracting ffmpeg")
	// ErrNotFound reports that the unpacked archive held no ffmpeg executable.
	ErrNotFound = errors.New("ffmpeg executable not found in archive")
	// ErrInstall reports that the located executable could not be copied
	// into the tools directory.
	ErrInstall = errors.New("installing ffmpeg")
	// ErrManualInstall means the OS has no automated install path.
	ErrManualInstall = errors.New("ffmpeg must be installed manually")
	// ErrUnsupportedOS means the OS is not recognized at all.
	ErrUnsupportedOS = errors.New("unsupported operating system")
)
