// ============================================================================
// meinTRANSKRIPTARCHIV (mTA) - Lokales Transkriptionsarchiv
// ============================================================================
//
// Package:     asr
// Description: Whisper engine implementation using whisper.cpp CLI
// Author:      Mike Stoffels with Claude
// Created:     2026-08-15
// License:     MIT
// ============================================================================

package asr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// WhisperCLI implements Engine using the whisper.cpp CLI
type WhisperCLI struct {
	binaryPath string
	modelPath  string
	numThreads int
	tempDir    string
}

// WhisperConfig holds whisper.cpp configuration
type WhisperConfig struct {
	// Binary is the whisper binary path; empty = auto-detect
	Binary string

	// ModelPath is the path to the ggml model file
	ModelPath string

	// NumThreads is the number of threads to use
	NumThreads int
}

// NewWhisperCLI creates a new whisper.cpp engine
func NewWhisperCLI(cfg WhisperConfig) (*WhisperCLI, error) {
	binaryPath := cfg.Binary
	if binaryPath == "" {
		binaryPath = findWhisperBinary()
	}
	if binaryPath == "" {
		return nil, fmt.Errorf("whisper binary not found")
	}

	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("model path is required")
	}
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}

	tempDir, err := os.MkdirTemp("", "mta-whisper-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	numThreads := cfg.NumThreads
	if numThreads <= 0 {
		numThreads = 4
	}

	return &WhisperCLI{
		binaryPath: binaryPath,
		modelPath:  cfg.ModelPath,
		numThreads: numThreads,
		tempDir:    tempDir,
	}, nil
}

// findWhisperBinary finds the whisper binary
func findWhisperBinary() string {
	// Check PATH for whisper-cli first (newer whisper.cpp), then whisper
	if path, err := exec.LookPath("whisper-cli"); err == nil {
		return path
	}
	if path, err := exec.LookPath("whisper"); err == nil {
		return path
	}

	// Common install locations
	locations := []string{
		"/opt/homebrew/bin/whisper-cli",
		"/opt/homebrew/bin/whisper",
		"/usr/local/bin/whisper-cli",
		"/usr/local/bin/whisper",
		"/usr/bin/whisper-cli",
		"/usr/bin/whisper",
	}
	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Transcribe recognizes a media file and returns timed segments
func (w *WhisperCLI) Transcribe(ctx context.Context, path string, opts Options) (Result, error) {
	outBase := filepath.Join(w.tempDir, fmt.Sprintf("out_%d", time.Now().UnixNano()))
	defer os.Remove(outBase + ".json")

	args := w.buildArgs(path, outBase, opts)

	cmd := exec.CommandContext(ctx, w.binaryPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return Result{}, fmt.Errorf("whisper failed for %s: %w, stderr: %s",
			path, err, strings.TrimSpace(stderr.String()))
	}

	result, err := parseWhisperJSON(outBase + ".json")
	if err != nil {
		return Result{}, fmt.Errorf("failed to parse whisper output for %s: %w", path, err)
	}

	if result.Language == "" {
		result.Language = opts.Language
	}
	return result, nil
}

// buildArgs maps the decode parameter bundle to whisper-cli arguments
func (w *WhisperCLI) buildArgs(path, outBase string, opts Options) []string {
	p := opts.Params

	args := []string{
		"--model", w.modelPath,
		"--threads", strconv.Itoa(w.numThreads),
		"--beam-size", strconv.Itoa(p.BeamSize),
		"--best-of", strconv.Itoa(p.BestOf),
		"--no-prints",
		"--output-json",
		"--output-file", outBase,
	}

	language := opts.Language
	if language == "" {
		language = "auto"
	}
	args = append(args, "--language", language)

	if !p.ConditionOnPrevious {
		args = append(args, "--no-context")
	}
	if p.NoSpeechThreshold > 0 {
		args = append(args, "--no-speech-thold",
			strconv.FormatFloat(p.NoSpeechThreshold, 'f', -1, 64))
	}
	if p.LogProbThreshold != 0 {
		args = append(args, "--logprob-thold",
			strconv.FormatFloat(p.LogProbThreshold, 'f', -1, 64))
	}
	if !opts.DisableVAD && p.MinSilenceMS > 0 {
		args = append(args,
			"--vad",
			"--vad-min-silence-duration-ms", strconv.Itoa(p.MinSilenceMS),
		)
	}

	args = append(args, "--file", path)
	return args
}

// whisperJSON mirrors the whisper.cpp JSON output file
type whisperJSON struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"` // milliseconds
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// parseWhisperJSON reads a whisper.cpp JSON output file into a Result.
// The reported duration is the end of the last segment; callers with a
// probed container duration should prefer that value.
func parseWhisperJSON(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	return parseWhisperOutput(data)
}

func parseWhisperOutput(data []byte) (Result, error) {
	var parsed whisperJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		return Result{}, err
	}

	result := Result{Language: parsed.Result.Language}
	for _, t := range parsed.Transcription {
		text := strings.TrimSpace(t.Text)
		if text == "" {
			continue
		}
		seg := Segment{
			Start: float64(t.Offsets.From) / 1000.0,
			End:   float64(t.Offsets.To) / 1000.0,
			Text:  text,
		}
		result.Segments = append(result.Segments, seg)
		if seg.End > result.Duration {
			result.Duration = seg.End
		}
	}
	return result, nil
}

// Close releases resources
func (w *WhisperCLI) Close() error {
	if w.tempDir != "" {
		os.RemoveAll(w.tempDir)
	}
	return nil
}
