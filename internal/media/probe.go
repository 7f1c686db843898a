// ============================================================================
// meinTRANSKRIPTARCHIV (mTA) - Lokales Transkriptionsarchiv
// ============================================================================
// Package: media
// Description: Media file handling around transcription: duration
//              probing, library placement and playback
// Author: Mike Stoffels with Claude
// Created: 2026-08-30
// License: MIT
// ============================================================================

package media

import (
	"context"
	"encoding/json"
	"os/exec"
	"strconv"
)

// ffprobeOutput mirrors the JSON shape of ffprobe -show_entries
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// ProbeDuration asks ffprobe for the media duration in seconds. It
// reports false whenever the duration cannot be determined (missing
// ffprobe, unreadable file, streams without a length) and never fails
// the caller.
func ProbeDuration(ctx context.Context, path string) (float64, bool) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return 0, false
	}

	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "format=duration",
		"-of", "json",
		path)

	out, err := cmd.Output()
	if err != nil {
		return 0, false
	}

	return parseProbeOutput(out)
}

func parseProbeOutput(out []byte) (float64, bool) {
	var probe ffprobeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return 0, false
	}
	if probe.Format.Duration == "" {
		return 0, false
	}

	seconds, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil || seconds < 0 {
		return 0, false
	}
	return seconds, true
}
