// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionStatus indicates the outcome of converting one input file.
type ConversionStatus string

const (
	ConversionNone   ConversionStatus = "none"
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// Fixed encoding parameters. The output contract is not configurable.
const (
	SourceExt    = ".mp3"
	TargetExt    = ".m4b"
	AudioCodec   = "aac"
	AudioBitrate = "128k"
	// ContainerFormat is the ffmpeg muxer for M4B: the iPod flavour of MP4.
	ContainerFormat = "ipod"
)

// Job is a single conversion: one eligible input and the sibling output it
// produces. Jobs are built per run and never persisted.
type Job struct {
	// Input is the path to the source audio file (e.g. "book/ch01.mp3").
	Input string `json:"input" yaml:"input"`

	// Output is the path of the file to write (e.g. "book/ch01.m4b").
	Output string `json:"output" yaml:"output"`
}
