// ============================================================================
// meinTRANSKRIPTARCHIV (mTA) - Lokales Transkriptionsarchiv
// ============================================================================
// Package: transcriber
// Description: Orchestrates a transcription run: media placement,
//              preset selection, recognition, enrichment, export and
//              archive indexing
// Author: Mike Stoffels with Claude
// Created: 2026-08-30
// License: MIT
// ============================================================================

package transcriber

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/msto63/mTA/internal/archive"
	"github.com/msto63/mTA/internal/asr"
	"github.com/msto63/mTA/internal/enrich"
	"github.com/msto63/mTA/internal/export"
	"github.com/msto63/mTA/internal/media"
	"github.com/msto63/mTA/internal/transcript"
	"github.com/msto63/mTA/pkg/core/logging"
)

// Options controls one transcription run
type Options struct {
	// Preset overrides the automatic selection when not PresetAuto
	Preset asr.Preset

	// Language is an optional hint that skips autodetection
	Language string

	// DisableVAD turns silence skipping off
	DisableVAD bool

	// Long tunes search breadth for long recordings
	Long asr.LongOptions

	// Move removes the source after placement; false copies instead
	Move bool
}

// FileResult is the outcome of one successfully processed file
type FileResult struct {
	RunID    string
	Source   string
	Placed   string
	Parent   string
	Preset   asr.Preset
	Language string
	Duration *float64
	Segments []transcript.Segment
}

// Transcriber wires the recognition engine, the enrichment pool and
// the archive into one pipeline. The store may be nil for runs that
// should leave no archive trace.
type Transcriber struct {
	engine asr.Engine
	pool   *enrich.Pool
	store  *archive.Store
	logger *logging.Logger
}

// New creates a pipeline over the given components
func New(engine asr.Engine, pool *enrich.Pool, store *archive.Store) *Transcriber {
	return &Transcriber{
		engine: engine,
		pool:   pool,
		store:  store,
		logger: logging.New("transcriber"),
	}
}

// Process runs the full pipeline for one file: place the media into
// materialDir, transcribe, enrich, write the transcript artifacts into
// transcriptsDir and index everything into the archive. A recognition
// failure aborts the file; nothing is exported or archived for it.
func (t *Transcriber) Process(ctx context.Context, src, materialDir, transcriptsDir string, opts Options) (*FileResult, error) {
	runID := uuid.NewString()
	log := t.logger.WithFields(logging.Fields{"run_id": runID})

	placed, err := media.PlaceMedia(src, materialDir, opts.Move)
	if err != nil {
		return nil, fmt.Errorf("failed to place %s: %w", src, err)
	}

	result, err := t.transcribeOne(ctx, placed, opts, log)
	if err != nil {
		return nil, err
	}
	result.RunID = runID
	result.Source = src
	result.Placed = placed
	result.Parent = filepath.Dir(materialDir)

	base := filepath.Join(transcriptsDir, baseName(placed))
	if err := writeArtifacts(result.Segments, base); err != nil {
		return nil, err
	}

	if t.store != nil {
		if err := t.archiveResult(ctx, result); err != nil {
			return nil, err
		}
	}

	log.Info("File processed",
		"file", filepath.Base(placed),
		"preset", string(result.Preset),
		"segments", len(result.Segments))

	return result, nil
}

// ProcessAll runs Process over all files sequentially. One failing
// file is logged and skipped; the others still go through.
func (t *Transcriber) ProcessAll(ctx context.Context, files []string, materialDir, transcriptsDir string, opts Options) ([]*FileResult, error) {
	var results []*FileResult
	var firstErr error

	for _, f := range files {
		result, err := t.Process(ctx, f, materialDir, transcriptsDir, opts)
		if err != nil {
			t.logger.Error("File failed", "file", f, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		results = append(results, result)
	}

	if len(results) == 0 && firstErr != nil {
		return nil, fmt.Errorf("no file processed: %w", firstErr)
	}
	return results, nil
}

// ProcessTemporary transcribes one file into the temp cache without
// touching the source, the session folders or the archive. The cache
// is cleared first, so only the latest temporary run survives.
func (t *Transcriber) ProcessTemporary(ctx context.Context, src string, opts Options) (*FileResult, string, error) {
	if err := media.ClearTempCache(); err != nil {
		return nil, "", err
	}
	cache, err := media.TempCacheRoot()
	if err != nil {
		return nil, "", err
	}

	runID := uuid.NewString()
	log := t.logger.WithFields(logging.Fields{"run_id": runID})

	result, err := t.transcribeOne(ctx, src, opts, log)
	if err != nil {
		return nil, "", err
	}
	result.RunID = runID
	result.Source = src
	result.Placed = src

	if err := writeArtifacts(result.Segments, filepath.Join(cache, "temp")); err != nil {
		return nil, "", err
	}

	return result, cache, nil
}

// Plan is the dry-run view of one file: what would happen without
// transcribing anything
type Plan struct {
	File     string
	Duration *float64
	Preset   asr.Preset
}

// PlanFiles probes each file and reports the preset the pipeline
// would pick. No engine, no placement, no archive writes.
func PlanFiles(ctx context.Context, files []string, override asr.Preset) []Plan {
	plans := make([]Plan, 0, len(files))
	for _, f := range files {
		durationSec, known := media.ProbeDuration(ctx, f)
		plan := Plan{
			File:   f,
			Preset: asr.ChoosePreset(durationSec, known, override),
		}
		if known {
			d := durationSec
			plan.Duration = &d
		}
		plans = append(plans, plan)
	}
	return plans
}

// transcribeOne probes, selects the preset, recognizes and enriches
func (t *Transcriber) transcribeOne(ctx context.Context, path string, opts Options, log *logging.Logger) (*FileResult, error) {
	durationSec, known := media.ProbeDuration(ctx, path)
	preset := asr.ChoosePreset(durationSec, known, opts.Preset)
	log.Debug("Preset selected",
		"file", filepath.Base(path),
		"preset", string(preset),
		"duration_known", known)

	asrResult, err := t.engine.Transcribe(ctx, path, asr.Options{
		Params:     asr.DecodeParamsFor(preset, opts.Long),
		Language:   opts.Language,
		DisableVAD: opts.DisableVAD,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to transcribe %s: %w", path, err)
	}

	result := &FileResult{
		Preset:   preset,
		Language: asrResult.Language,
		Segments: t.pool.Enrich(ctx, asrResult.Segments),
	}
	if known {
		result.Duration = &durationSec
	} else if asrResult.Duration > 0 {
		d := asrResult.Duration
		result.Duration = &d
	}
	return result, nil
}

// archiveResult indexes one processed file into the store
func (t *Transcriber) archiveResult(ctx context.Context, result *FileResult) error {
	fileID, err := t.store.InsertFile(ctx, &archive.File{
		Path:     result.Placed,
		Parent:   result.Parent,
		Duration: result.Duration,
		Language: result.Language,
		Preset:   string(result.Preset),
	})
	if err != nil {
		return err
	}

	inputs := make([]archive.SegmentInput, len(result.Segments))
	for i, seg := range result.Segments {
		inputs[i] = archive.SegmentInput{
			Start:     seg.Start,
			End:       seg.End,
			Text:      seg.Text,
			Sentiment: seg.Sentiment,
			Tones:     seg.Tones,
		}
	}
	return t.store.InsertSegments(ctx, fileID, inputs)
}

// writeArtifacts writes the SRT, JSON and annotated text outputs next
// to each other under the given base path (without extension)
func writeArtifacts(segments []transcript.Segment, base string) error {
	for _, format := range []export.Format{export.FormatSRT, export.FormatJSON, export.FormatText} {
		if err := export.WriteFile(segments, format, base+"."+string(format)); err != nil {
			return err
		}
	}
	return nil
}

func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
