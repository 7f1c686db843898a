package export

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/msto63/mTA/internal/transcript"
)

var sampleSegments = []transcript.Segment{
	{Start: 0, End: 2.5, Text: "hello world", Sentiment: "positive", Tones: []string{"happy"}},
	{Start: 2.5, End: 65.042, Text: "goodbye", Sentiment: "negative", Tones: []string{"sad", "doubtful"}},
	{Start: 65.042, End: 70, Text: "plain closing words"},
}

func TestSRTTimestamp(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{0, "00:00:00,000"},
		{2.5, "00:00:02,500"},
		{65.042, "00:01:05,042"},
		{3661.999, "01:01:01,999"},
		{-1, "00:00:00,000"},
	}
	for _, tt := range tests {
		if got := srtTimestamp(tt.seconds); got != tt.expected {
			t.Errorf("srtTimestamp(%v) = %q, want %q", tt.seconds, got, tt.expected)
		}
	}
}

func TestToSRT(t *testing.T) {
	got := ToSRT(sampleSegments[:2])
	want := "1\n00:00:00,000 --> 00:00:02,500\nhello world\n\n" +
		"2\n00:00:02,500 --> 00:01:05,042\ngoodbye\n\n"
	if got != want {
		t.Errorf("ToSRT() = %q, want %q", got, want)
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	rendered, err := ToJSON(sampleSegments)
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	if !strings.Contains(rendered, "  \"start\"") {
		t.Errorf("JSON not indented: %q", rendered)
	}

	back, err := ParseJSON([]byte(rendered))
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	if !reflect.DeepEqual(back, sampleSegments) {
		t.Errorf("round trip changed segments:\n%+v\n%+v", back, sampleSegments)
	}
}

func TestJSONL_RoundTrip(t *testing.T) {
	rendered, err := ToJSONL(sampleSegments)
	if err != nil {
		t.Fatalf("ToJSONL() error = %v", err)
	}
	if lines := strings.Count(rendered, "\n"); lines != len(sampleSegments) {
		t.Errorf("got %d lines, want %d", lines, len(sampleSegments))
	}

	back, err := ParseJSONL([]byte(rendered + "\n\n"))
	if err != nil {
		t.Fatalf("ParseJSONL() error = %v", err)
	}
	if !reflect.DeepEqual(back, sampleSegments) {
		t.Errorf("round trip changed segments:\n%+v\n%+v", back, sampleSegments)
	}
}

func TestToText(t *testing.T) {
	got := ToText(sampleSegments, DefaultTextOptions())
	want := "[0.00-2.50] hello world  (positive; happy)\n" +
		"[2.50-65.04] goodbye  (negative; sad, doubtful)\n" +
		"[65.04-70.00] plain closing words\n"
	if got != want {
		t.Errorf("ToText() = %q, want %q", got, want)
	}
}

func TestToText_Bare(t *testing.T) {
	got := ToText(sampleSegments[:1], TextOptions{})
	if got != "hello world\n" {
		t.Errorf("ToText() = %q, want bare text line", got)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		expected Format
		wantErr  bool
	}{
		{"srt", FormatSRT, false},
		{"JSON", FormatJSON, false},
		{"jsonl", FormatJSONL, false},
		{"text", FormatText, false},
		{" txt ", FormatText, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.name, got, tt.expected)
		}
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.srt")
	if err := WriteFile(sampleSegments, FormatSRT, path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.HasPrefix(string(data), "1\n00:00:00,000") {
		t.Errorf("unexpected content: %q", string(data)[:40])
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	if _, err := Render(sampleSegments, Format("csv")); err == nil {
		t.Error("unknown format should error")
	}
}
