package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/msto63/mTA/internal/archive"
	"github.com/msto63/mTA/internal/asr"
	"github.com/msto63/mTA/internal/enrich"
	"github.com/msto63/mTA/internal/sentiment"
)

// fakeEngine returns canned segments, or an error for paths containing
// "broken"
type fakeEngine struct {
	calls int
}

func (e *fakeEngine) Transcribe(ctx context.Context, path string, opts asr.Options) (asr.Result, error) {
	e.calls++
	if strings.Contains(path, "broken") {
		return asr.Result{}, fmt.Errorf("decode failed for %s", path)
	}
	return asr.Result{
		Language: "en",
		Duration: 5,
		Segments: []asr.Segment{
			{Start: 0, End: 2.5, Text: "hello world"},
			{Start: 2.5, End: 5, Text: "goodbye"},
		},
	}, nil
}

func (e *fakeEngine) Close() error { return nil }

func newTestTranscriber(t *testing.T) (*Transcriber, *fakeEngine, *archive.Store) {
	t.Helper()
	store, err := archive.Open(filepath.Join(t.TempDir(), "archive.sqlite"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	engine := &fakeEngine{}
	pool := enrich.NewPool(sentiment.NewAnalyzer(), 2)
	return New(engine, pool, store), engine, store
}

func writeMedia(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("fake media"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProcess(t *testing.T) {
	tr, _, store := newTestTranscriber(t)
	src := writeMedia(t, t.TempDir(), "talk.mp3")
	sessionDir := t.TempDir()
	materialDir := filepath.Join(sessionDir, "material")
	transcriptsDir := filepath.Join(sessionDir, "transcripts")

	result, err := tr.Process(context.Background(), src, materialDir, transcriptsDir, Options{Move: true})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if result.RunID == "" {
		t.Error("missing run ID")
	}
	if result.Placed != filepath.Join(materialDir, "talk.mp3") {
		t.Errorf("Placed = %q", result.Placed)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source not moved")
	}
	if len(result.Segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(result.Segments))
	}
	if result.Segments[0].Sentiment == "" {
		t.Error("segments not enriched")
	}

	// Artifacts land in transcripts/ named after the media file
	for _, ext := range []string{".srt", ".json", ".txt"} {
		if _, err := os.Stat(filepath.Join(transcriptsDir, "talk"+ext)); err != nil {
			t.Errorf("missing artifact %s: %v", ext, err)
		}
	}

	// Archive holds the placed file and its segments
	f, err := store.GetFile(context.Background(), result.Placed)
	if err != nil || f == nil {
		t.Fatalf("archived file missing: %v", err)
	}
	if f.Parent != sessionDir {
		t.Errorf("Parent = %q, want %q", f.Parent, sessionDir)
	}
	segs, err := store.SegmentsForFile(context.Background(), f.ID)
	if err != nil {
		t.Fatalf("SegmentsForFile() error = %v", err)
	}
	if len(segs) != 2 {
		t.Errorf("got %d archived segments, want 2", len(segs))
	}
}

func TestProcess_EngineFailure(t *testing.T) {
	tr, _, store := newTestTranscriber(t)
	src := writeMedia(t, t.TempDir(), "broken.mp3")
	sessionDir := t.TempDir()
	transcriptsDir := filepath.Join(sessionDir, "transcripts")

	_, err := tr.Process(context.Background(), src, filepath.Join(sessionDir, "material"), transcriptsDir, Options{})
	if err == nil {
		t.Fatal("expected engine failure to propagate")
	}

	// Nothing exported, nothing archived
	if entries, _ := os.ReadDir(transcriptsDir); len(entries) != 0 {
		t.Errorf("artifacts written despite failure: %v", entries)
	}
	stats, _ := store.Statistics(context.Background())
	if stats["files"].(int64) != 0 {
		t.Errorf("archive touched despite failure: %v", stats)
	}
}

func TestProcessAll_FailureIsolation(t *testing.T) {
	tr, engine, _ := newTestTranscriber(t)
	srcDir := t.TempDir()
	good1 := writeMedia(t, srcDir, "a.mp3")
	bad := writeMedia(t, srcDir, "broken.mp3")
	good2 := writeMedia(t, srcDir, "z.mp3")
	sessionDir := t.TempDir()

	results, err := tr.ProcessAll(context.Background(),
		[]string{good1, bad, good2},
		filepath.Join(sessionDir, "material"),
		filepath.Join(sessionDir, "transcripts"),
		Options{})
	if err != nil {
		t.Fatalf("ProcessAll() error = %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if engine.calls != 3 {
		t.Errorf("engine called %d times, want 3", engine.calls)
	}
}

func TestProcessAll_AllFailed(t *testing.T) {
	tr, _, _ := newTestTranscriber(t)
	src := writeMedia(t, t.TempDir(), "broken.mp3")
	sessionDir := t.TempDir()

	_, err := tr.ProcessAll(context.Background(), []string{src},
		filepath.Join(sessionDir, "material"),
		filepath.Join(sessionDir, "transcripts"),
		Options{})
	if err == nil {
		t.Error("expected error when every file fails")
	}
}

func TestPlanFiles(t *testing.T) {
	src := writeMedia(t, t.TempDir(), "clip.mp3")

	plans := PlanFiles(context.Background(), []string{src}, asr.PresetAuto)
	if len(plans) != 1 {
		t.Fatalf("got %d plans, want 1", len(plans))
	}
	// ffprobe cannot read the fake file, so the duration stays unknown
	// and the standard preset applies
	if plans[0].Duration != nil {
		t.Errorf("Duration = %v, want nil", *plans[0].Duration)
	}
	if plans[0].Preset != asr.PresetStandard {
		t.Errorf("Preset = %v, want standard", plans[0].Preset)
	}
}

func TestPlanFiles_Override(t *testing.T) {
	src := writeMedia(t, t.TempDir(), "clip.mp3")

	plans := PlanFiles(context.Background(), []string{src}, asr.PresetLong)
	if plans[0].Preset != asr.PresetLong {
		t.Errorf("Preset = %v, want long override", plans[0].Preset)
	}
}
