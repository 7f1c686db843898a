// ============================================================================
// meinTRANSKRIPTARCHIV (mTA) - Lokales Transkriptionsarchiv
// ============================================================================
//
// Package:     asr
// Description: Decoding preset selection by estimated media duration
// Author:      Mike Stoffels with Claude
// Created:     2026-08-15
// License:     MIT
// ============================================================================

package asr

import "fmt"

// Preset names a decoding-effort profile
type Preset string

const (
	PresetAuto     Preset = "auto"
	PresetShort    Preset = "short"
	PresetStandard Preset = "standard"
	PresetLong     Preset = "long"
)

// Duration thresholds for automatic preset selection. Boundary values
// belong to the extreme preset: exactly 15s is short, exactly 1800s is long.
const (
	ShortMaxSeconds = 15.0
	LongMinSeconds  = 30.0 * 60.0
)

// ParsePreset validates a preset name
func ParsePreset(s string) (Preset, error) {
	switch Preset(s) {
	case PresetAuto, PresetShort, PresetStandard, PresetLong:
		return Preset(s), nil
	default:
		return "", fmt.Errorf("invalid preset: %q (want auto|short|standard|long)", s)
	}
}

// ChoosePreset maps a duration to a decoding preset. A non-auto override
// wins unconditionally, also when the duration is unknown. With auto, an
// unknown duration falls back to standard since effort cannot be pre-sized
// without information. Pure policy; no engine is loaded.
func ChoosePreset(durationSec float64, known bool, override Preset) Preset {
	if override != PresetAuto && override != "" {
		return override
	}
	if !known {
		return PresetStandard
	}
	if durationSec <= ShortMaxSeconds {
		return PresetShort
	}
	if durationSec >= LongMinSeconds {
		return PresetLong
	}
	return PresetStandard
}

// LongOptions are the caller-tunable search-breadth parameters for the
// long preset, bounded to 1..8
type LongOptions struct {
	BeamSize int
	BestOf   int
}

// DefaultLongOptions returns the default long-preset search breadth
func DefaultLongOptions() LongOptions {
	return LongOptions{BeamSize: 3, BestOf: 3}
}

// DecodeParams is the fixed bundle of recognition-call parameters one
// preset maps to. A zero threshold means the engine default applies.
type DecodeParams struct {
	// MinSilenceMS is the silence-gap sensitivity for voice activity
	// detection
	MinSilenceMS int

	// BeamSize and BestOf control search breadth; 1/1 is greedy
	BeamSize int
	BestOf   int

	// ConditionOnPrevious carries decoding context across segments
	ConditionOnPrevious bool

	// NoSpeechThreshold and LogProbThreshold gate segment acceptance
	NoSpeechThreshold float64
	LogProbThreshold  float64

	Temperature    float64
	WordTimestamps bool
}

// DecodeParamsFor resolves a non-auto preset to its parameter bundle.
// Short favors minimal latency with independent per-segment decisions,
// long favors accuracy and cross-segment continuity, standard balances.
func DecodeParamsFor(preset Preset, long LongOptions) DecodeParams {
	switch preset {
	case PresetShort:
		return DecodeParams{
			MinSilenceMS:        150,
			BeamSize:            1,
			BestOf:              1,
			ConditionOnPrevious: false,
			NoSpeechThreshold:   0.6,
			LogProbThreshold:    -1.0,
		}
	case PresetLong:
		return DecodeParams{
			MinSilenceMS:        400,
			BeamSize:            clampBreadth(long.BeamSize),
			BestOf:              clampBreadth(long.BestOf),
			ConditionOnPrevious: true,
		}
	default: // standard
		return DecodeParams{
			MinSilenceMS:        250,
			BeamSize:            1,
			BestOf:              1,
			ConditionOnPrevious: true,
		}
	}
}

func clampBreadth(n int) int {
	if n < 1 {
		return 1
	}
	if n > 8 {
		return 8
	}
	return n
}
