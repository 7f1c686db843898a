// ============================================================================
// meinTRANSKRIPTARCHIV (mTA) - Lokales Transkriptionsarchiv
// ============================================================================
// Package: export
// Description: Transcript serialization to SRT, JSON, JSONL and
//              annotated plain text
// Author: Mike Stoffels with Claude
// Created: 2026-08-30
// License: MIT
// ============================================================================

package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/msto63/mTA/internal/transcript"
)

// Format names one export serialization
type Format string

const (
	FormatSRT   Format = "srt"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatText  Format = "txt"
)

// ParseFormat maps a user-supplied format name to a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "srt":
		return FormatSRT, nil
	case "json":
		return FormatJSON, nil
	case "jsonl":
		return FormatJSONL, nil
	case "txt", "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown export format %q", name)
	}
}

// srtTimestamp renders seconds as HH:MM:SS,mmm
func srtTimestamp(t float64) string {
	if t < 0 {
		t = 0
	}
	total := int(t)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	ms := int((t - float64(total)) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// ToSRT renders the segments as a SubRip subtitle file
func ToSRT(segments []transcript.Segment) string {
	var b strings.Builder
	for i, seg := range segments {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n",
			i+1, srtTimestamp(seg.Start), srtTimestamp(seg.End), seg.Text)
	}
	return b.String()
}

// ToJSON renders the segments as an indented JSON array
func ToJSON(segments []transcript.Segment) (string, error) {
	if segments == nil {
		segments = []transcript.Segment{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(segments); err != nil {
		return "", fmt.Errorf("failed to encode segments: %w", err)
	}
	return buf.String(), nil
}

// ParseJSON reads a JSON array of segments back
func ParseJSON(data []byte) ([]transcript.Segment, error) {
	var segments []transcript.Segment
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, fmt.Errorf("failed to parse segments: %w", err)
	}
	return segments, nil
}

// ToJSONL renders one JSON object per segment per line
func ToJSONL(segments []transcript.Segment) (string, error) {
	var b strings.Builder
	for _, seg := range segments {
		line, err := json.Marshal(seg)
		if err != nil {
			return "", fmt.Errorf("failed to encode segment: %w", err)
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// ParseJSONL reads line-delimited segments back, skipping blank lines
func ParseJSONL(data []byte) ([]transcript.Segment, error) {
	var segments []transcript.Segment
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var seg transcript.Segment
		if err := json.Unmarshal([]byte(line), &seg); err != nil {
			return nil, fmt.Errorf("failed to parse segment line: %w", err)
		}
		segments = append(segments, seg)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read segment lines: %w", err)
	}
	return segments, nil
}

// TextOptions controls the plain-text rendering
type TextOptions struct {
	Timestamps  bool
	Annotations bool
}

// DefaultTextOptions includes timestamps and annotations
func DefaultTextOptions() TextOptions {
	return TextOptions{Timestamps: true, Annotations: true}
}

// ToText renders one line per segment. With annotations enabled, the
// sentiment and tone tags trail the text in parentheses.
func ToText(segments []transcript.Segment, opts TextOptions) string {
	var b strings.Builder
	for _, seg := range segments {
		if opts.Timestamps {
			fmt.Fprintf(&b, "[%.2f-%.2f] ", seg.Start, seg.End)
		}
		b.WriteString(seg.Text)
		if opts.Annotations && (seg.Sentiment != "" || len(seg.Tones) > 0) {
			b.WriteString("  (")
			b.WriteString(seg.Sentiment)
			if len(seg.Tones) > 0 {
				b.WriteString("; ")
				b.WriteString(strings.Join(seg.Tones, ", "))
			}
			b.WriteString(")")
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Render serializes the segments in the given format
func Render(segments []transcript.Segment, format Format) (string, error) {
	switch format {
	case FormatSRT:
		return ToSRT(segments), nil
	case FormatJSON:
		return ToJSON(segments)
	case FormatJSONL:
		return ToJSONL(segments)
	case FormatText:
		return ToText(segments, DefaultTextOptions()), nil
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
}

// WriteFile renders the segments and writes them to path, creating
// parent directories as needed
func WriteFile(segments []transcript.Segment, format Format, path string) error {
	content, err := Render(segments, format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
