// ============================================================================
// meinTRANSKRIPTARCHIV (mTA) - Lokales Transkriptionsarchiv
// ============================================================================
//
// Package:     asr
// Description: Speech recognition engine interface
// Author:      Mike Stoffels with Claude
// Created:     2026-08-15
// License:     MIT
// ============================================================================

package asr

import "context"

// Engine is the interface for speech recognition engines
type Engine interface {
	// Transcribe recognizes a media file and returns timed segments
	Transcribe(ctx context.Context, path string, opts Options) (Result, error)

	// Close releases resources
	Close() error
}

// Options control one recognition call
type Options struct {
	// Params is the resolved decoding parameter bundle for this file
	Params DecodeParams

	// Language is a language hint (e.g. "en", "de"); empty = autodetect
	Language string

	// DisableVAD turns off silence skipping
	DisableVAD bool
}

// Segment is a raw recognized segment with timing
type Segment struct {
	// Start and End are seconds from the beginning of the file
	Start float64
	End   float64

	// Text is the recognized text, whitespace-trimmed
	Text string
}

// Result holds the recognition result for one file
type Result struct {
	// Language is the detected (or hinted) language code
	Language string

	// Duration is the recognized audio duration in seconds
	Duration float64

	// Segments are ordered by start time as emitted by the engine
	Segments []Segment
}
