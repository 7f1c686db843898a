// ============================================================================
// meinTRANSKRIPTARCHIV (mTA) - Lokales Transkriptionsarchiv
// ============================================================================
// Package: enrich
// Description: Bounded worker pool attaching sentiment and tone tags to
//              transcript segments after recognition
// Author: Mike Stoffels with Claude
// Created: 2026-08-29
// License: MIT
// ============================================================================

package enrich

import (
	"context"
	"sync"

	"github.com/msto63/mTA/internal/asr"
	"github.com/msto63/mTA/internal/sentiment"
	"github.com/msto63/mTA/internal/transcript"
	"github.com/msto63/mTA/pkg/core/logging"
)

// DefaultMaxWorkers bounds the pool when the config does not
const DefaultMaxWorkers = 8

// Pool enriches recognized segments concurrently. Each segment is an
// independent job; results come back in the original segment order
// regardless of which worker finished first.
type Pool struct {
	scorer  sentiment.Scorer
	workers int
	logger  *logging.Logger
}

// NewPool creates a pool over the given scorer. maxWorkers values
// below one fall back to DefaultMaxWorkers.
func NewPool(scorer sentiment.Scorer, maxWorkers int) *Pool {
	if maxWorkers < 1 {
		maxWorkers = DefaultMaxWorkers
	}
	return &Pool{
		scorer:  scorer,
		workers: maxWorkers,
		logger:  logging.New("enrich"),
	}
}

// job carries one segment together with its position in the batch
type job struct {
	index   int
	segment asr.Segment
}

// Enrich annotates all segments of one file. A scorer failure on one
// segment leaves that segment without annotations and never aborts the
// batch. The returned slice has the same length and order as the input.
func (p *Pool) Enrich(ctx context.Context, segments []asr.Segment) []transcript.Segment {
	out := make([]transcript.Segment, len(segments))
	if len(segments) == 0 {
		return out
	}

	workers := p.workers
	if workers > len(segments) {
		workers = len(segments)
	}

	jobs := make(chan job, len(segments))
	for i, seg := range segments {
		jobs <- job{index: i, segment: seg}
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				out[j.index] = p.enrichOne(ctx, j.segment)
			}
		}()
	}
	wg.Wait()

	return out
}

// enrichOne scores a single segment. Workers never share scorer results,
// so identical text always yields identical annotations.
func (p *Pool) enrichOne(ctx context.Context, seg asr.Segment) transcript.Segment {
	enriched := transcript.Segment{
		Start: seg.Start,
		End:   seg.End,
		Text:  seg.Text,
	}

	result, err := p.scorer.Score(ctx, seg.Text)
	if err != nil {
		p.logger.Warn("Segment enrichment failed",
			"start", seg.Start,
			"error", err)
		return enriched
	}

	enriched.Sentiment = result.Label
	enriched.Tones = result.Tones
	return enriched
}
