package enrich

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/msto63/mTA/internal/asr"
	"github.com/msto63/mTA/internal/sentiment"
)

// slowScorer sleeps a random short time per call so later jobs often
// finish before earlier ones
type slowScorer struct{}

func (s *slowScorer) Score(ctx context.Context, text string) (sentiment.Result, error) {
	time.Sleep(time.Duration(rand.Intn(10)) * time.Millisecond)
	return sentiment.Result{Label: "neutral", Tones: []string{text}}, nil
}

// failingScorer rejects texts containing "boom"
type failingScorer struct{}

func (s *failingScorer) Score(ctx context.Context, text string) (sentiment.Result, error) {
	if strings.Contains(text, "boom") {
		return sentiment.Result{}, fmt.Errorf("scorer rejected %q", text)
	}
	return sentiment.Result{Label: "positive"}, nil
}

func makeSegments(n int) []asr.Segment {
	segs := make([]asr.Segment, n)
	for i := range segs {
		segs[i] = asr.Segment{
			Start: float64(i),
			End:   float64(i) + 1,
			Text:  fmt.Sprintf("segment %03d", i),
		}
	}
	return segs
}

func TestEnrich_PreservesOrder(t *testing.T) {
	pool := NewPool(&slowScorer{}, 4)
	segments := makeSegments(50)

	out := pool.Enrich(context.Background(), segments)

	if len(out) != len(segments) {
		t.Fatalf("got %d segments, want %d", len(out), len(segments))
	}
	for i, seg := range out {
		if seg.Text != segments[i].Text {
			t.Errorf("segment %d: Text = %q, want %q", i, seg.Text, segments[i].Text)
		}
		if seg.Start != segments[i].Start || seg.End != segments[i].End {
			t.Errorf("segment %d: timing changed to [%v, %v]", i, seg.Start, seg.End)
		}
		// The slow scorer echoes the text as a tone, proving the result
		// landed at its own index
		if len(seg.Tones) != 1 || seg.Tones[0] != segments[i].Text {
			t.Errorf("segment %d: result misplaced, tones %v", i, seg.Tones)
		}
	}
}

func TestEnrich_FailureIsolation(t *testing.T) {
	pool := NewPool(&failingScorer{}, 2)
	segments := []asr.Segment{
		{Start: 0, End: 1, Text: "fine"},
		{Start: 1, End: 2, Text: "boom here"},
		{Start: 2, End: 3, Text: "also fine"},
	}

	out := pool.Enrich(context.Background(), segments)

	if out[0].Sentiment != "positive" || out[2].Sentiment != "positive" {
		t.Errorf("healthy segments not annotated: %+v", out)
	}
	if out[1].Sentiment != "" || len(out[1].Tones) != 0 {
		t.Errorf("failed segment should stay unannotated, got %+v", out[1])
	}
	if out[1].Text != "boom here" {
		t.Errorf("failed segment lost its text: %q", out[1].Text)
	}
}

func TestEnrich_Empty(t *testing.T) {
	pool := NewPool(&slowScorer{}, 4)
	out := pool.Enrich(context.Background(), nil)
	if len(out) != 0 {
		t.Errorf("got %d segments for empty input", len(out))
	}
}

func TestNewPool_WorkerFloor(t *testing.T) {
	pool := NewPool(&slowScorer{}, 0)
	if pool.workers != DefaultMaxWorkers {
		t.Errorf("workers = %d, want %d", pool.workers, DefaultMaxWorkers)
	}
}

func TestEnrich_MoreWorkersThanSegments(t *testing.T) {
	pool := NewPool(&failingScorer{}, 16)
	out := pool.Enrich(context.Background(), makeSegments(3))
	if len(out) != 3 {
		t.Fatalf("got %d segments, want 3", len(out))
	}
	for i, seg := range out {
		if seg.Sentiment != "positive" {
			t.Errorf("segment %d not annotated", i)
		}
	}
}
