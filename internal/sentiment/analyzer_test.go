package sentiment

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/msto63/mTA/internal/transcript"
)

func TestScore_Labels(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"positive english", "this is a great and wonderful result", transcript.SentimentPositive},
		{"negative english", "that was a terrible, awful failure", transcript.SentimentNegative},
		{"neutral", "the meeting starts at ten", transcript.SentimentNeutral},
		{"negated positive", "this is not good at all", transcript.SentimentNegative},
		{"positive german", "das ist wirklich super und wunderbar", transcript.SentimentPositive},
		{"negative german", "das war schrecklich und enttäuschend", transcript.SentimentNegative},
		{"empty", "", transcript.SentimentNeutral},
	}

	a := NewAnalyzer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := a.Score(context.Background(), tt.text)
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if result.Label != tt.expected {
				t.Errorf("Score(%q).Label = %v, want %v", tt.text, result.Label, tt.expected)
			}
		})
	}
}

func TestScore_Deterministic(t *testing.T) {
	a := NewAnalyzer()
	text := "I guess this is probably fine, not sure though"

	first, _ := a.Score(context.Background(), text)
	for i := 0; i < 5; i++ {
		again, _ := a.Score(context.Background(), text)
		if again.Label != first.Label || !reflect.DeepEqual(again.Tones, first.Tones) {
			t.Fatalf("Score is not deterministic: %+v vs %+v", first, again)
		}
	}
}

func TestToneTags_PriorityOrder(t *testing.T) {
	a := NewAnalyzer()

	// Text matching sad, annoyed and doubtful; the two highest-priority
	// rules (doubtful before annoyed) must win, in table order.
	result, _ := a.Score(context.Background(), "maybe I am just sad and so annoyed")

	want := []string{"doubtful", "annoyed"}
	if !reflect.DeepEqual(result.Tones, want) {
		t.Errorf("Tones = %v, want %v", result.Tones, want)
	}
}

func TestToneTags_Cap(t *testing.T) {
	a := NewAnalyzer()
	result, _ := a.Score(context.Background(), "maybe sad angry annoyed happy certainly")

	if len(result.Tones) != maxTones {
		t.Errorf("got %d tones, want cap of %d: %v", len(result.Tones), maxTones, result.Tones)
	}
}

func TestToneTags_TrailingQuestion(t *testing.T) {
	a := NewAnalyzer()
	result, _ := a.Score(context.Background(), "are we there yet?")

	if len(result.Tones) == 0 || result.Tones[0] != "doubtful" {
		t.Errorf("trailing question should tag doubtful, got %v", result.Tones)
	}
}

func TestToneTags_None(t *testing.T) {
	a := NewAnalyzer()
	result, _ := a.Score(context.Background(), "the report covers the third quarter")

	if len(result.Tones) != 0 {
		t.Errorf("plain text should carry no tones, got %v", result.Tones)
	}
}

func TestLoadToneRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tones.yaml")
	content := `
- label: excited
  patterns:
    - '\b(wow|incredible)\b'
- label: tired
  patterns:
    - '\b(exhausted|sleepy)\b'
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	rules, err := LoadToneRules(path)
	if err != nil {
		t.Fatalf("LoadToneRules() error = %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(rules))
	}
	// Declared sequence order is kept as priority
	if rules[0].Label != "excited" || rules[1].Label != "tired" {
		t.Errorf("rule order not preserved: %+v", rules)
	}

	a, err := NewAnalyzerWithTones(rules)
	if err != nil {
		t.Fatalf("NewAnalyzerWithTones() error = %v", err)
	}
	result, _ := a.Score(context.Background(), "wow, I am exhausted")
	if !reflect.DeepEqual(result.Tones, []string{"excited", "tired"}) {
		t.Errorf("Tones = %v, want [excited tired]", result.Tones)
	}
}

func TestLoadToneRules_Missing(t *testing.T) {
	if _, err := LoadToneRules(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadToneRules should fail for a missing file")
	}
}

func TestNewAnalyzerWithTones_InvalidPattern(t *testing.T) {
	_, err := NewAnalyzerWithTones([]ToneRule{{Label: "broken", Patterns: []string{`(`}}})
	if err == nil {
		t.Error("invalid pattern should fail compilation")
	}
}
